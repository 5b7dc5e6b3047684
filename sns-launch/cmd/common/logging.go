package common

import (
	"io"
	"os"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/oasisprotocol/sns-launch/common/logging"
	"github.com/oasisprotocol/sns-launch/config"
)

const (
	cfgLogFile  = "log.file"
	cfgLogFmt   = "log.format"
	cfgLogLevel = "log.level"
	// Per-module log levels are only supported by the config file.

	defaultLevelKey = "default"
)

var loggingFlags = flag.NewFlagSet("", flag.ContinueOnError)

// initLogging initializes logging from the config file, with the command
// line flags taking precedence.
func initLogging() error {
	cfg := config.GlobalConfig.Log

	logFile := cfg.File
	if viper.IsSet(cfgLogFile) {
		logFile = viper.GetString(cfgLogFile)
	}

	format := cfg.Format
	if viper.IsSet(cfgLogFmt) {
		format = viper.GetString(cfgLogFmt)
	}
	logFmt := logging.FmtLogfmt
	if format != "" {
		if err := logFmt.Set(format); err != nil {
			return err
		}
	}

	logLevel := logging.LevelWarn
	moduleLevels := map[string]logging.Level{}
	for module, v := range cfg.Level {
		var lvl logging.Level
		if err := lvl.Set(v); err != nil {
			return err
		}
		if module == defaultLevelKey {
			logLevel = lvl
			continue
		}
		moduleLevels[module] = lvl
	}
	if viper.IsSet(cfgLogLevel) {
		if err := logLevel.Set(viper.GetString(cfgLogLevel)); err != nil {
			return err
		}
	}

	var w io.Writer = os.Stderr
	if logFile != "" {
		logFile = normalizePath(logFile)

		var err error
		if w, err = os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err != nil {
			return err
		}
	}

	return logging.Initialize(w, logFmt, logLevel, moduleLevels)
}

func initLoggingFlags() {
	logFmt := logging.FmtLogfmt
	logLevel := logging.LevelWarn

	loggingFlags.String(cfgLogFile, "", "log file")
	loggingFlags.Var(&logFmt, cfgLogFmt, "log format")
	loggingFlags.Var(&logLevel, cfgLogLevel, "log level")

	_ = viper.BindPFlags(loggingFlags)
}
