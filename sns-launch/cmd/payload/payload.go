// Package payload implements the initialization payload sub-commands.
package payload

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/oasisprotocol/sns-launch/common/logging"
	cmdCommon "github.com/oasisprotocol/sns-launch/sns-launch/cmd/common"
	"github.com/oasisprotocol/sns-launch/sns-launch/cmd/common/flags"
	"github.com/oasisprotocol/sns-launch/sns/api"
	"github.com/oasisprotocol/sns-launch/sns/validation"
)

var (
	payloadCmd = &cobra.Command{
		Use:   "payload",
		Short: "SNS initialization payload utilities",
	}

	validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "validate an SNS initialization payload",
		Run:   doValidate,
	}

	logger = logging.GetLogger("cmd/payload")

	validateFlags = flag.NewFlagSet("", flag.ContinueOnError)
)

func doValidate(cmd *cobra.Command, args []string) {
	if err := cmdCommon.Init(); err != nil {
		cmdCommon.EarlyLogAndExit(err)
	}

	if err := validatePayload(os.Stdout, flags.Payload(), flags.Verbose()); err != nil {
		cmdCommon.LogAndExit(logger, "payload validation failed", err)
	}
	cmdCommon.PushMetrics("payload_validate")
}

func loadPayload(path, format string) (*api.InitPayload, error) {
	if path == "" {
		return nil, fmt.Errorf("no payload specified, use --%s", flags.CfgPayload)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload '%s': %w", path, err)
	}

	var payload api.InitPayload
	if err = cmdCommon.Decode(data, format, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode payload '%s': %w", path, err)
	}
	return &payload, nil
}

func validatePayload(w io.Writer, path string, verbose bool) error {
	format, err := flags.Format()
	if err != nil {
		return err
	}
	mode, err := flags.Mode()
	if err != nil {
		return err
	}

	payload, err := loadPayload(path, format)
	if err != nil {
		return err
	}
	if _, err = validation.Validate(payload, mode); err != nil {
		return err
	}

	logger.Info("payload is valid",
		"payload", path,
		"mode", mode,
	)

	if verbose {
		payload.PrettyPrint(context.Background(), "", w)
	}
	fmt.Fprintf(w, "OK (%s-execution): %s\n", mode, payload.Fingerprint())
	return nil
}

// Register registers the payload sub-command and all of its children.
func Register(parentCmd *cobra.Command) {
	validateFlags.AddFlagSet(flags.PayloadFlags)
	validateFlags.AddFlagSet(flags.ModeFlags)
	validateFlags.AddFlagSet(flags.FormatFlags)
	validateFlags.AddFlagSet(flags.VerboseFlags)

	validateCmd.Flags().AddFlagSet(validateFlags)

	payloadCmd.AddCommand(validateCmd)
	parentCmd.AddCommand(payloadCmd)
}
