package metrics

import (
	"fmt"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/procfs"
)

const (
	MetricCPUUTimeSeconds = "sns_launch_cpu_utime_seconds"
	MetricCPUSTimeSeconds = "sns_launch_cpu_stime_seconds"

	// ClockTicks is getconf CLK_TCK
	ClockTicks = 100
)

var (
	utimeGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricCPUUTimeSeconds,
			Help: "CPU user time spent by the command as reported by /proc/<PID>/stat (seconds).",
		},
	)

	stimeGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricCPUSTimeSeconds,
			Help: "CPU system time spent by the command as reported by /proc/<PID>/stat (seconds).",
		},
	)

	cpuCollectors = []prometheus.Collector{utimeGauge, stimeGauge}
	cpuOnce       sync.Once
)

// readProcessTimes reads the user and system CPU time of the process.
func readProcessTimes(pid int) (utime, stime float64, err error) {
	proc, err := procfs.NewProc(pid)
	if err != nil {
		return 0, 0, fmt.Errorf("CPU metric: failed to obtain proc object for PID %d: %w", pid, err)
	}
	procStat, err := proc.Stat()
	if err != nil {
		return 0, 0, fmt.Errorf("CPU metric: failed to obtain procStat object %d: %w", pid, err)
	}
	return float64(procStat.UTime) / float64(ClockTicks), float64(procStat.STime) / float64(ClockTicks), nil
}

// updateProcessTimes records the CPU time spent by the command so far. It
// is best effort, as procfs is not available everywhere.
func updateProcessTimes() {
	// CPU metrics are singletons per process. Ensure to register them only once.
	cpuOnce.Do(func() {
		prometheus.MustRegister(cpuCollectors...)
	})

	utime, stime, err := readProcessTimes(os.Getpid())
	if err != nil {
		logger.Debug("failed to read process CPU times",
			"err", err,
		)
		return
	}
	utimeGauge.Set(utime)
	stimeGauge.Set(stime)
}
