// Package proposal implements the launch document sub-commands.
package proposal

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/oasisprotocol/sns-launch/common/logging"
	"github.com/oasisprotocol/sns-launch/common/prettyprint"
	"github.com/oasisprotocol/sns-launch/common/quantity"
	"github.com/oasisprotocol/sns-launch/humanize"
	cmdCommon "github.com/oasisprotocol/sns-launch/sns-launch/cmd/common"
	"github.com/oasisprotocol/sns-launch/sns-launch/cmd/common/flags"
	"github.com/oasisprotocol/sns-launch/sns/api"
	"github.com/oasisprotocol/sns-launch/sns/config"
	"github.com/oasisprotocol/sns-launch/sns/convert"
	"github.com/oasisprotocol/sns-launch/sns/validation"
)

var (
	proposalCmd = &cobra.Command{
		Use:   "proposal",
		Short: "launch document utilities",
	}

	convertCmd = &cobra.Command{
		Use:   "convert",
		Short: "convert a launch document into a CreateServiceNervousSystem proposal payload",
		Run:   doConvert,
	}

	initCmd = &cobra.Command{
		Use:   "init",
		Short: "convert a launch document into an executed SNS initialization payload",
		Run:   doInit,
	}

	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "check a launch document and summarize the resulting payloads",
		Run:   doCheck,
	}

	logger = logging.GetLogger("cmd/proposal")

	outputFlags = flag.NewFlagSet("", flag.ContinueOnError)
)

func doConvert(cmd *cobra.Command, args []string) {
	if err := cmdCommon.Init(); err != nil {
		cmdCommon.EarlyLogAndExit(err)
	}

	if err := convertDocument(os.Stdout, flags.Document(), flags.Output()); err != nil {
		cmdCommon.LogAndExit(logger, "failed to convert launch document", err)
	}
	cmdCommon.PushMetrics("proposal_convert")
}

func doInit(cmd *cobra.Command, args []string) {
	if err := cmdCommon.Init(); err != nil {
		cmdCommon.EarlyLogAndExit(err)
	}

	if err := initDocument(os.Stdout, flags.Document(), flags.Output(), time.Now()); err != nil {
		cmdCommon.LogAndExit(logger, "failed to derive initialization payload", err)
	}
	cmdCommon.PushMetrics("proposal_init")
}

func doCheck(cmd *cobra.Command, args []string) {
	if err := cmdCommon.Init(); err != nil {
		cmdCommon.EarlyLogAndExit(err)
	}

	if err := checkDocument(os.Stdout, flags.Document(), flags.Verbose()); err != nil {
		cmdCommon.LogAndExit(logger, "launch document check failed", err)
	}
	cmdCommon.PushMetrics("proposal_check")
}

func convertDocument(w io.Writer, path, output string) error {
	format, err := flags.Format()
	if err != nil {
		return err
	}

	doc, err := config.LoadDocument(path)
	if err != nil {
		return err
	}
	proposal, err := convert.ToProposal(doc)
	if err != nil {
		return err
	}

	logger.Info("converted launch document",
		"document", path,
		"fingerprint", proposal.Fingerprint(),
	)
	return cmdCommon.WriteOutput(w, output, proposal, format)
}

func initDocument(w io.Writer, path, output string, now time.Time) error {
	format, err := flags.Format()
	if err != nil {
		return err
	}

	doc, err := config.LoadDocument(path)
	if err != nil {
		return err
	}
	payload, err := convert.ToExecutedInitPayload(doc, now)
	if err != nil {
		return err
	}

	logger.Info("derived initialization payload",
		"document", path,
		"fingerprint", payload.Fingerprint(),
	)
	return cmdCommon.WriteOutput(w, output, payload, format)
}

func checkDocument(w io.Writer, path string, verbose bool) error {
	doc, err := config.LoadDocument(path)
	if err != nil {
		return err
	}
	proposal, err := convert.ToProposal(doc)
	if err != nil {
		return err
	}
	payload, err := convert.ToInitPayload(proposal)
	if err != nil {
		return err
	}
	executed, err := convert.ToExecutedInitPayload(doc, time.Now())
	if err != nil {
		return err
	}

	ctx := context.WithValue(context.Background(), prettyprint.ContextKeyTokenSymbol, doc.Token.Symbol)
	if verbose {
		proposal.PrettyPrint(ctx, "", w)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Initial token distribution (%s):\n", prettyprint.TokenSymbol(ctx, "tokens"))
	distributionTable(w, proposal.InitialTokenDistribution)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Proposal fingerprint:           %s\n", proposal.Fingerprint())
	fmt.Fprintf(w, "Initialization fingerprint:     %s\n", payload.Fingerprint())
	fmt.Fprintf(w, "Pre-execution validation:       %s\n", outcome(validation.ValidatePreExecution(payload)))
	fmt.Fprintf(w, "Post-execution validation:      %s\n", outcome(validation.ValidatePostExecution(executed)))
	return nil
}

func outcome(_ *api.InitPayload, err error) string {
	if err != nil {
		return "FAILED"
	}
	return "OK"
}

func distributionTable(w io.Writer, dist *api.InitialTokenDistribution) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Recipient", "Amount", "Dissolve delay", "Vesting period"})
	table.SetBorder(false)

	var amounts []uint64
	add := func(t *api.Tokens) string {
		if t == nil {
			return "(unset)"
		}
		amounts = append(amounts, t.E8s)
		return t.String()
	}

	if dev := dist.DeveloperDistribution; dev != nil {
		for _, n := range dev.DeveloperNeurons {
			controller := "(unset)"
			if n.Controller != nil {
				controller = n.Controller.String()
			}
			table.Append([]string{controller, add(n.Stake), durationString(n.DissolveDelay), durationString(n.VestingPeriod)})
		}
	}
	if treasury := dist.TreasuryDistribution; treasury != nil {
		table.Append([]string{"Treasury", add(treasury.Total), "", ""})
	}
	if swap := dist.SwapDistribution; swap != nil {
		table.Append([]string{"Swap", add(swap.Total), "", ""})
	}

	total := quantity.Sum(amounts...)
	totalText := total.String() + " e8s"
	if e8s, err := total.ToUint64(); err == nil {
		totalText = humanize.Tokens(e8s).String()
	}
	table.Append([]string{"Total", totalText, "", ""})
	table.Render()
}

func durationString(d *api.Duration) string {
	if d == nil {
		return "(unset)"
	}
	return d.String()
}

// Register registers the proposal sub-command and all of its children.
func Register(parentCmd *cobra.Command) {
	outputFlags.AddFlagSet(flags.DocumentFlags)
	outputFlags.AddFlagSet(flags.FormatFlags)
	outputFlags.AddFlagSet(flags.OutputFlags)

	convertCmd.Flags().AddFlagSet(outputFlags)
	initCmd.Flags().AddFlagSet(outputFlags)
	checkCmd.Flags().AddFlagSet(flags.DocumentFlags)
	checkCmd.Flags().AddFlagSet(flags.VerboseFlags)

	for _, v := range []*cobra.Command{
		convertCmd,
		initCmd,
		checkCmd,
	} {
		proposalCmd.AddCommand(v)
	}

	parentCmd.AddCommand(proposalCmd)
}
