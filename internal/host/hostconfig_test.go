package host

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCollectHostConfig_ParsesProcFiles(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "version"), []byte("Linux version 6.1.0-test (gcc) #1 SMP\n"), 0o644); err != nil {
		t.Fatalf("write version: %v", err)
	}
	cpuinfo := "processor\t: 0\nvendor_id\t: GenuineIntel\nmodel name\t: Intel(R) Xeon(R) Gold 6148\n\nprocessor\t: 1\n"
	if err := os.WriteFile(filepath.Join(root, "cpuinfo"), []byte(cpuinfo), 0o644); err != nil {
		t.Fatalf("write cpuinfo: %v", err)
	}

	hc := collectHostConfig(root)
	if hc.KernelVersion != "6.1.0-test" {
		t.Fatalf("unexpected kernel %q", hc.KernelVersion)
	}
	if hc.CPUVendor != "GenuineIntel" || hc.CPUModel != "Intel(R) Xeon(R) Gold 6148" {
		t.Fatalf("unexpected cpu %q / %q", hc.CPUVendor, hc.CPUModel)
	}
	if hc.TotalThreads <= 0 {
		t.Fatalf("expected positive thread count")
	}
}

func TestCollectHostConfig_MissingProc(t *testing.T) {
	hc := collectHostConfig(filepath.Join(t.TempDir(), "missing"))
	if hc.KernelVersion != "unknown" || hc.CPUModel != "unknown" {
		t.Fatalf("expected unknown fallbacks, got %+v", hc)
	}
}
