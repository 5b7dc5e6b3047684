// Package flags implements common flags used across multiple commands.
package flags

import (
	"fmt"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/oasisprotocol/sns-launch/sns/validation"
)

const (
	// CfgDocument is the flag used to specify a launch document.
	CfgDocument = "document"
	// CfgPayload is the flag used to specify an initialization payload file.
	CfgPayload = "payload"
	// CfgMode is the flag used to specify the validation mode.
	CfgMode = "mode"
	// CfgFormat is the flag used to specify the payload encoding.
	CfgFormat = "format"
	// CfgOutput is the flag used to specify an output file.
	CfgOutput = "output"

	cfgVerbose = "verbose"

	// FormatJSON is the pretty-printed JSON payload encoding.
	FormatJSON = "json"
	// FormatCBOR is the canonical CBOR payload encoding.
	FormatCBOR = "cbor"
)

var (
	// VerboseFlags has the verbose flag.
	VerboseFlags = flag.NewFlagSet("", flag.ContinueOnError)
	// DocumentFlags has the launch document flag.
	DocumentFlags = flag.NewFlagSet("", flag.ContinueOnError)
	// PayloadFlags has the initialization payload file flag.
	PayloadFlags = flag.NewFlagSet("", flag.ContinueOnError)
	// ModeFlags has the validation mode flag.
	ModeFlags = flag.NewFlagSet("", flag.ContinueOnError)
	// FormatFlags has the payload encoding flag.
	FormatFlags = flag.NewFlagSet("", flag.ContinueOnError)
	// OutputFlags has the output file flag.
	OutputFlags = flag.NewFlagSet("", flag.ContinueOnError)
)

// Verbose returns true iff the verbose flag is set.
func Verbose() bool {
	return viper.GetBool(cfgVerbose)
}

// Document returns the launch document path.
func Document() string {
	return viper.GetString(CfgDocument)
}

// Payload returns the initialization payload path.
func Payload() string {
	return viper.GetString(CfgPayload)
}

// Output returns the output path, empty for standard output.
func Output() string {
	return viper.GetString(CfgOutput)
}

// Format returns the payload encoding.
func Format() (string, error) {
	switch f := viper.GetString(CfgFormat); f {
	case FormatJSON, FormatCBOR:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported payload format: '%s'", f)
	}
}

// Mode returns the validation mode.
func Mode() (validation.Mode, error) {
	switch m := viper.GetString(CfgMode); m {
	case validation.PreExecution.String():
		return validation.PreExecution, nil
	case validation.PostExecution.String():
		return validation.PostExecution, nil
	default:
		return 0, fmt.Errorf("unsupported validation mode: '%s'", m)
	}
}

func init() {
	VerboseFlags.BoolP(cfgVerbose, "v", false, "verbose output")

	DocumentFlags.StringP(CfgDocument, "d", "sns_init.yaml", "path to the launch document")
	PayloadFlags.StringP(CfgPayload, "p", "", "path to the initialization payload")
	ModeFlags.String(CfgMode, validation.PreExecution.String(), "validation mode (pre, post)")
	FormatFlags.String(CfgFormat, FormatJSON, "payload encoding (json, cbor)")
	OutputFlags.StringP(CfgOutput, "o", "", "output file (default: standard output)")

	for _, v := range []*flag.FlagSet{
		VerboseFlags,
		DocumentFlags,
		PayloadFlags,
		ModeFlags,
		FormatFlags,
		OutputFlags,
	} {
		_ = viper.BindPFlags(v)
	}
}
