// Package metrics pushes the metrics collected by a sns-launch command to a
// Prometheus push gateway.
package metrics

import (
	"context"
	"regexp"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	cmnBackoff "github.com/oasisprotocol/sns-launch/common/backoff"
	"github.com/oasisprotocol/sns-launch/common/logging"
	"github.com/oasisprotocol/sns-launch/common/version"
	"github.com/oasisprotocol/sns-launch/config"
)

const (
	MetricsLabelCommand         = "command"
	MetricsLabelGitBranch       = "git_branch"
	MetricsLabelSoftwareVersion = "software_version"
)

var (
	logger = logging.GetLogger("cmd/metrics")

	invalidLabelCharactersRegexp = regexp.MustCompile(`[^a-zA-Z0-9_]`)

	newBackOff = func(cfg *config.MetricsConfig) backoff.BackOff {
		return cmnBackoff.NewExponentialBackOff(cfg.Timeout)
	}
)

// Enabled returns if metrics are enabled.
func Enabled() bool {
	return config.GlobalConfig.Metrics.Mode != config.MetricsModeNone
}

// EscapeLabelCharacters replaces invalid prometheus label name characters with "_".
func EscapeLabelCharacters(l string) string {
	return invalidLabelCharactersRegexp.ReplaceAllString(l, "_")
}

// Labels returns the grouping labels of a push made by the given command.
// Configured labels take precedence, and empty label values are dropped.
func Labels(command string) map[string]string {
	labels := map[string]string{
		MetricsLabelCommand:         command,
		MetricsLabelSoftwareVersion: version.SoftwareVersion,
	}
	if version.GitBranch != "" {
		labels[MetricsLabelGitBranch] = version.GitBranch
	}
	for k, v := range config.GlobalConfig.Metrics.Labels {
		labels[EscapeLabelCharacters(k)] = v
	}

	// Remove empty label values - workaround for
	// https://github.com/prometheus/pushgateway/issues/344
	for k, v := range labels {
		if v == "" {
			delete(labels, k)
		}
	}
	return labels
}

// Push pushes the default registry to the configured push gateway, retrying
// with exponential backoff. It is a no-op unless push mode is configured.
func Push(ctx context.Context, command string) error {
	cfg := config.GlobalConfig.Metrics
	if cfg.Mode != config.MetricsModePush {
		return nil
	}

	updateProcessTimes()

	labels := Labels(command)
	logger.Debug("pushing metrics",
		"addr", cfg.Address,
		"job_name", cfg.JobName,
		"labels", labels,
	)

	pusher := newPusher(&cfg, labels)
	return backoff.Retry(func() error {
		if err := pusher.Push(); err != nil {
			logger.Warn("Push: failed",
				"err", err,
			)

			// Once a pusher fails to push, it fails forever,
			// so re-create the pusher.
			pusher = newPusher(&cfg, labels)
			return err
		}
		return nil
	}, backoff.WithContext(newBackOff(&cfg), ctx))
}

func newPusher(cfg *config.MetricsConfig, labels map[string]string) *push.Pusher {
	pusher := push.New(cfg.Address, cfg.JobName).Gatherer(prometheus.DefaultGatherer)
	for k, v := range labels {
		pusher = pusher.Grouping(k, v)
	}
	return pusher
}
