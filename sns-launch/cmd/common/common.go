// Package common implements common sns-launch command options and utilities.
package common

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/oasisprotocol/sns-launch/common/logging"
	"github.com/oasisprotocol/sns-launch/config"
	"github.com/oasisprotocol/sns-launch/sns-launch/cmd/common/metrics"
	"github.com/oasisprotocol/sns-launch/sns/validation"
)

// CfgConfigFile is the flag used to specify a configuration file.
const CfgConfigFile = "config"

var (
	// RootFlags has the flags that are common across all commands.
	RootFlags = flag.NewFlagSet("", flag.ContinueOnError)

	rootLog = logging.GetLogger("sns-launch")

	isInitialized bool
)

// InitConfig loads the configuration file, if one was given.
func InitConfig() {
	cfgFile := viper.GetString(CfgConfigFile)
	if cfgFile == "" {
		return
	}
	if err := config.InitConfig(normalizePath(cfgFile)); err != nil {
		EarlyLogAndExit(err)
	}
}

// Init initializes the common environment across all commands: logging and
// the sanity check of the built-in nervous system parameters.
func Init() error {
	if isInitialized {
		return nil
	}

	if err := initLogging(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	if err := validation.SanityCheckDefaults(); err != nil {
		rootLog.Error("built-in nervous system parameters are invalid",
			"err", err,
		)
		return err
	}

	rootLog.Debug("common initialization complete")
	isInitialized = true

	return nil
}

// EarlyLogAndExit logs the error and exits.
//
// Note: This routine should only be used prior to the logging system
// being initialized.
func EarlyLogAndExit(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// LogAndExit logs the error with the logger and exits.
func LogAndExit(logger *logging.Logger, msg string, err error) {
	logger.Error(msg,
		"err", err,
	)
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func normalizePath(f string) string {
	if filepath.IsAbs(f) {
		return f
	}
	abs, err := filepath.Abs(f)
	if err != nil {
		return f
	}
	return abs
}

func init() {
	initLoggingFlags()

	RootFlags.String(CfgConfigFile, "", "config file")
	RootFlags.AddFlagSet(loggingFlags)
	_ = viper.BindPFlags(RootFlags)
}

// PushMetrics pushes the metrics collected by the command, when metrics
// are enabled. Failures are logged and otherwise ignored.
func PushMetrics(command string) {
	if !metrics.Enabled() {
		return
	}
	if err := metrics.Push(context.Background(), metrics.EscapeLabelCharacters(command)); err != nil {
		rootLog.Warn("failed to push metrics",
			"command", command,
			"err", err,
		)
	}
}
