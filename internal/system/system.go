package system

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/sirupsen/logrus"
)

// DefaultWorkers returns the number of physical cores, or the logical
// CPU count when the platform does not report cores.
func DefaultWorkers() int {
	n, err := cpu.Counts(false)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}
	return n
}

// FrameBudget caps how many decoded frames of frameBytes each may be held at
// once: at most workers, and no more than a quarter of available memory.
func FrameBudget(frameBytes uint64, workers int) int {
	if workers < 1 {
		workers = 1
	}
	if frameBytes == 0 {
		return workers
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "FrameBudget",
			"error":    err.Error(),
		}).Debug("Memory stats unavailable, using worker count")
		return workers
	}

	limit := int(vm.Available / 4 / frameBytes)
	if limit < 1 {
		limit = 1
	}
	if limit < workers {
		logrus.WithFields(logrus.Fields{
			"function":    "FrameBudget",
			"available":   vm.Available,
			"frame_bytes": frameBytes,
			"limit":       limit,
		}).Warn("Limiting frames in flight by available memory")
		return limit
	}
	return workers
}

// FindLatestFile returns the most recently modified file in dir whose
// extension (case-insensitive) is one of exts.
func FindLatestFile(dir string, exts ...string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !hasExt(f.Name(), exts) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no %s files found in %s", strings.Join(exts, "/"), dir)
	}

	return latestFile, nil
}

func hasExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
