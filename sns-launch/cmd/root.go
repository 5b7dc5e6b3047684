// Package cmd implements the commands for the sns-launch executable.
package cmd

import (
	"os"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oasisprotocol/sns-launch/common/version"
	cmdCommon "github.com/oasisprotocol/sns-launch/sns-launch/cmd/common"
	"github.com/oasisprotocol/sns-launch/sns-launch/cmd/humanize"
	"github.com/oasisprotocol/sns-launch/sns-launch/cmd/payload"
	"github.com/oasisprotocol/sns-launch/sns-launch/cmd/proposal"
)

var rootCmd = &cobra.Command{
	Use:     "sns-launch",
	Short:   "SNS launch tooling",
	Version: version.SoftwareVersion,
}

// RootCommand returns the root (top level) cobra.Command.
func RootCommand() *cobra.Command {
	return rootCmd
}

// Execute spawns the main entry point after handling the config file
// and command line arguments.
func Execute() {
	// Payloads written by sns-launch are only readable by the owner.
	syscall.Umask(0o077)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initVersions() {
	cobra.AddTemplateFunc("launchVersion", func() interface{} { return version.Versions })

	rootCmd.SetVersionTemplate(`Software version: {{.Version}}
{{- with launchVersion }}
Payload format version: {{ .PayloadFormat }}
Go toolchain version: {{ .Toolchain }}
{{ end -}}
`)
}

func init() {
	cobra.OnInitialize(cmdCommon.InitConfig)
	initVersions()

	rootCmd.PersistentFlags().AddFlagSet(cmdCommon.RootFlags)

	// Register all of the sub-commands.
	for _, v := range []func(*cobra.Command){
		proposal.Register,
		payload.Register,
		humanize.Register,
	} {
		v(rootCmd)
	}
}
