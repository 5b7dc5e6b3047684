// Package humanize implements the human friendly value sub-commands.
package humanize

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/oasisprotocol/sns-launch/common/logging"
	"github.com/oasisprotocol/sns-launch/humanize"
	cmdCommon "github.com/oasisprotocol/sns-launch/sns-launch/cmd/common"
)

var (
	humanizeCmd = &cobra.Command{
		Use:   "humanize",
		Short: "parse human friendly launch document values",
	}

	tokensCmd = &cobra.Command{
		Use:     "tokens <amount>",
		Short:   "parse a token amount, e.g. \"1_000.5 tokens\"",
		Args:    cobra.ExactArgs(1),
		Example: `  sns-launch humanize tokens "10_000 e8s"`,
		Run:     doParse(parseTokens),
	}

	durationCmd = &cobra.Command{
		Use:     "duration <duration>",
		Short:   "parse a duration, e.g. \"1 year 2 months\"",
		Args:    cobra.ExactArgs(1),
		Example: `  sns-launch humanize duration "4 days 12h"`,
		Run:     doParse(parseDuration),
	}

	percentageCmd = &cobra.Command{
		Use:     "percentage <percentage>",
		Short:   "parse a percentage, e.g. \"2.25%\"",
		Args:    cobra.ExactArgs(1),
		Example: `  sns-launch humanize percentage 2.25%`,
		Run:     doParse(parsePercentage),
	}

	timeOfDayCmd = &cobra.Command{
		Use:     "time-of-day <time>",
		Short:   "parse a UTC time of day, e.g. \"10:30 UTC\"",
		Args:    cobra.ExactArgs(1),
		Example: `  sns-launch humanize time-of-day "10:30 UTC"`,
		Run:     doParse(parseTimeOfDay),
	}

	logger = logging.GetLogger("cmd/humanize")
)

type parseFn func(w io.Writer, s string) error

func doParse(fn parseFn) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if err := cmdCommon.Init(); err != nil {
			cmdCommon.EarlyLogAndExit(err)
		}

		if err := fn(os.Stdout, args[0]); err != nil {
			cmdCommon.LogAndExit(logger, "failed to parse value", err)
		}
	}
}

func parseTokens(w io.Writer, s string) error {
	t, err := humanize.ParseTokens(s)
	if err != nil {
		return fmt.Errorf("invalid token amount '%s': %w", s, err)
	}
	_, err = fmt.Fprintf(w, "%s (%d e8s)\n", t, t.E8s())
	return err
}

func parseDuration(w io.Writer, s string) error {
	d, err := humanize.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration '%s': %w", s, err)
	}
	_, err = fmt.Fprintf(w, "%s (%d seconds)\n", d, d.Seconds())
	return err
}

func parsePercentage(w io.Writer, s string) error {
	p, err := humanize.ParsePercentage(s)
	if err != nil {
		return fmt.Errorf("invalid percentage '%s': %w", s, err)
	}
	_, err = fmt.Fprintf(w, "%s (%d basis points)\n", p, p.BasisPoints())
	return err
}

func parseTimeOfDay(w io.Writer, s string) error {
	t, err := humanize.ParseTimeOfDay(s)
	if err != nil {
		return fmt.Errorf("invalid time of day '%s': %w", s, err)
	}
	_, err = fmt.Fprintf(w, "%s (%d seconds after midnight)\n", t, t.SecondsAfterMidnight())
	return err
}

// Register registers the humanize sub-command and all of its children.
func Register(parentCmd *cobra.Command) {
	for _, v := range []*cobra.Command{
		tokensCmd,
		durationCmd,
		percentageCmd,
		timeOfDayCmd,
	} {
		humanizeCmd.AddCommand(v)
	}

	parentCmd.AddCommand(humanizeCmd)
}
