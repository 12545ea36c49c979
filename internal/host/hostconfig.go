package host

import (
	"bufio"
	"os"
	"runtime"
	"strings"
	"sync"

	"scaling-bench/internal/logging"

	"github.com/sirupsen/logrus"
)

// HostConfig describes the machine that aggregated and plotted a set of
// results. It is recorded in spool artifacts next to the data.
type HostConfig struct {
	Hostname      string `json:"hostname"`
	OSInfo        string `json:"os_info"`
	KernelVersion string `json:"kernel_version"`
	CPUVendor     string `json:"cpu_vendor"`
	CPUModel      string `json:"cpu_model"`
	TotalThreads  int    `json:"total_threads"`
}

var (
	globalHostConfig *HostConfig
	hostConfigOnce   sync.Once
)

// GetHostConfig returns the host description, collecting it on first call.
func GetHostConfig() *HostConfig {
	hostConfigOnce.Do(func() {
		globalHostConfig = collectHostConfig("/proc")
	})
	return globalHostConfig
}

func collectHostConfig(procRoot string) *HostConfig {
	logger := logging.GetLogger()

	hc := &HostConfig{
		OSInfo:        runtime.GOOS + "/" + runtime.GOARCH,
		TotalThreads:  runtime.NumCPU(),
		KernelVersion: "unknown",
		CPUVendor:     "unknown",
		CPUModel:      "unknown",
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	hc.Hostname = hostname

	if data, err := os.ReadFile(procRoot + "/version"); err == nil {
		parts := strings.Fields(string(data))
		if len(parts) >= 3 {
			hc.KernelVersion = parts[2]
		}
	}

	if f, err := os.Open(procRoot + "/cpuinfo"); err == nil {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			key, value, ok := strings.Cut(scanner.Text(), ":")
			if !ok {
				continue
			}
			switch strings.TrimSpace(key) {
			case "vendor_id":
				hc.CPUVendor = strings.TrimSpace(value)
			case "model name":
				hc.CPUModel = strings.TrimSpace(value)
			}
			if hc.CPUVendor != "unknown" && hc.CPUModel != "unknown" {
				break
			}
		}
	}

	logger.WithFields(logrus.Fields{
		"hostname": hc.Hostname,
		"kernel":   hc.KernelVersion,
		"cpu":      hc.CPUModel,
	}).Debug("Host configuration collected")
	return hc
}
