package system

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось получить лимит файлов: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось установить лимит файлов: %v", err)
	} else {
		Logger().Debug("open file limit raised", "limit", rLimit.Cur)
	}
}

// DefaultWorkers returns the number of logical CPUs, falling back to the Go
// runtime's view when the host cannot be queried.
func DefaultWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// MemoryReport describes host memory pressure for the performance report.
func MemoryReport() string {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%% used (%d MiB of %d MiB)",
		vm.UsedPercent, vm.Used/(1<<20), vm.Total/(1<<20))
}

// FindLatest returns the most recently modified file in dir whose extension
// is one of extensions.
func FindLatest(dir string, extensions ...string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		matched := false
		for _, ext := range extensions {
			if strings.HasSuffix(strings.ToLower(f.Name()), ext) {
				matched = true
				break
			}
		}
		if !matched {
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
		return "", fmt.Errorf("в папке %s не найдено файлов %s", dir, strings.Join(extensions, ", "))
	}

	return latestFile, nil
}
