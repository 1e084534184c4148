package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"errfmt/internal/template"
)

// FileName is the config file looked up from the working directory upwards.
const FileName = ".errfmt.toml"

// ErrUnknownPreset is returned by Resolve for names that are neither
// built-in nor configured.
var ErrUnknownPreset = errors.New("unknown preset")

// Defaults are the [defaults] table. Zero values mean "not set".
type Defaults struct {
	Preset         string `toml:"preset"`
	Errfmt         string `toml:"errfmt"`
	Format         string `toml:"format"`
	File           string `toml:"file"`
	ForceFile      bool   `toml:"force_file"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Jobs           int    `toml:"jobs"`
}

type fileConfig struct {
	Defaults Defaults          `toml:"defaults"`
	Presets  map[string]string `toml:"presets"`
}

// Config is a loaded .errfmt.toml. The zero value is the configuration used
// when no file exists.
type Config struct {
	// Path is empty when no file was found.
	Path     string
	Defaults Defaults
	presets  map[string]string
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the nearest config file. A missing file is not
// an error; the zero Config is returned.
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Config{}, nil
	}
	return Load(path)
}

// Load decodes and validates the file at path. Every error names the file.
func Load(path string) (*Config, error) {
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	cfg := &Config{Path: path, Defaults: fc.Defaults, presets: fc.Presets}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	for _, name := range slices.Sorted(maps.Keys(c.presets)) {
		if strings.TrimSpace(name) == "" {
			return errors.New("[presets]: empty preset name")
		}
		if _, err := template.Compile(c.presets[name]); err != nil {
			return fmt.Errorf("[presets].%s: %w", name, err)
		}
	}
	d := c.Defaults
	if d.Preset != "" && d.Errfmt != "" {
		return errors.New("[defaults]: preset and errfmt are mutually exclusive")
	}
	if d.Errfmt != "" {
		if _, err := template.Compile(d.Errfmt); err != nil {
			return fmt.Errorf("[defaults].errfmt: %w", err)
		}
	}
	if d.Preset != "" {
		if _, err := c.Resolve(d.Preset); err != nil {
			return fmt.Errorf("[defaults].preset: %w", err)
		}
	}
	if _, err := safecast.Conv[uint](d.MaxDiagnostics); err != nil {
		return fmt.Errorf("[defaults].max_diagnostics: %w", err)
	}
	if _, err := safecast.Conv[uint](d.Jobs); err != nil {
		return fmt.Errorf("[defaults].jobs: %w", err)
	}
	return nil
}

// Presets lists built-in presets followed by configured ones sorted by name.
// A configured preset with a built-in name replaces it in place.
func (c *Config) Presets() []Preset {
	out := Builtins()
	var extra []string
	for name := range c.presets {
		idx := slices.IndexFunc(out, func(p Preset) bool { return p.Name == name })
		if idx < 0 {
			extra = append(extra, name)
			continue
		}
		out[idx] = c.userPreset(name)
	}
	slices.Sort(extra)
	for _, name := range extra {
		out = append(out, c.userPreset(name))
	}
	return out
}

func (c *Config) userPreset(name string) Preset {
	desc := "from config"
	if c.Path != "" {
		desc = "from " + c.Path
	}
	return Preset{Name: name, Format: c.presets[name], Description: desc}
}

// Resolve looks a preset up by name; configured presets shadow built-ins.
// An empty name selects [defaults].preset, falling back to DefaultPreset.
func (c *Config) Resolve(name string) (Preset, error) {
	if name == "" {
		name = c.Defaults.Preset
	}
	if name == "" {
		name = DefaultPreset
	}
	if _, ok := c.presets[name]; ok {
		return c.userPreset(name), nil
	}
	if p, ok := Builtin(name); ok {
		return p, nil
	}
	names := make([]string, 0, len(builtins)+len(c.presets))
	for _, p := range c.Presets() {
		names = append(names, p.Name)
	}
	return Preset{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownPreset, name, strings.Join(names, ", "))
}

// Template picks the template a run uses when no flag overrides it:
// [defaults].errfmt if set, otherwise the resolved default preset.
func (c *Config) Template() (string, error) {
	if c.Defaults.Errfmt != "" {
		return c.Defaults.Errfmt, nil
	}
	p, err := c.Resolve("")
	if err != nil {
		return "", err
	}
	return p.Format, nil
}
