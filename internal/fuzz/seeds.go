package fuzztests

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"errfmt/internal/config"
)

const (
	maxSeedBytes = 4 << 10 // 4 KiB: строки инструментов длиннее почти не бывают
)

// addFormatSeeds adds every built-in preset plus a few edge-case formats.
func addFormatSeeds(f *testing.F) {
	for _, p := range config.Builtins() {
		f.Add(p.Format)
	}
	for _, s := range []string{"", "%", "%%", "%m%f", "%f%l%c", "100%% %m", "%x", "%f %f", "[%k] %m (%f)"} {
		f.Add(s)
	}
}

// addPairSeeds adds (format, line) pairs from the driver snapshots and the
// built-in presets.
func addPairSeeds(f *testing.F) {
	root := filepath.Join("..", "driver", "testdata", "snapshots")
	dirs, err := os.ReadDir(root)
	if err == nil {
		for _, d := range dirs {
			if !d.IsDir() {
				continue
			}
			dir := filepath.Join(root, d.Name())
			// #nosec G304 -- paths come from repository testdata
			format, err := os.ReadFile(filepath.Join(dir, "errfmt"))
			if err != nil {
				continue
			}
			// #nosec G304 -- paths come from repository testdata
			input, err := os.ReadFile(filepath.Join(dir, "input"))
			if err != nil {
				continue
			}
			tpl := strings.TrimSuffix(string(format), "\n")
			for _, line := range strings.Split(string(input), "\n") {
				f.Add(tpl, clampSeed(line))
			}
		}
	}
	// добавляем хотя бы минимальные примеры на случай пустого testdata
	f.Add("%f:%l:%c: %k: %m", "main.c:1:2: error: boom")
	f.Add("%m:%f:%l", "a:b:c:d:12")
	f.Add("%f%l", "abc123")
	f.Add("", "")
}

func clampSeed(s string) string {
	if len(s) <= maxSeedBytes {
		return s
	}
	return s[:maxSeedBytes]
}
