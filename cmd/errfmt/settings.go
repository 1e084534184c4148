package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"errfmt/internal/config"
	"errfmt/internal/diagfmt"
)

// filterFlags are the raw filter flag values plus which ones the user set.
type filterFlags struct {
	errfmt           string
	preset           string
	file             string
	forceFile        bool
	format           string
	jobs             int
	maxDiagnostics   int
	width            int
	noWarnings       bool
	warningsAsErrors bool
	failOnError      bool
	dedup            bool
	changed          map[string]bool
}

// filterSettings are the effective settings after merging flags over the
// config file over built-in defaults.
type filterSettings struct {
	template string
	// origin says where the template came from.
	origin           string
	format           diagfmt.Format
	file             string
	forceFile        bool
	jobs             int
	maxDiagnostics   int
	width            int
	noWarnings       bool
	warningsAsErrors bool
	failOnError      bool
	dedup            bool
}

func readFilterFlags(cmd *cobra.Command) (filterFlags, error) {
	var ff filterFlags
	var err error
	flags := cmd.Flags()

	if ff.errfmt, err = flags.GetString("errfmt"); err != nil {
		return ff, fmt.Errorf("failed to get errfmt flag: %w", err)
	}
	if ff.preset, err = flags.GetString("preset"); err != nil {
		return ff, fmt.Errorf("failed to get preset flag: %w", err)
	}
	if ff.file, err = flags.GetString("file"); err != nil {
		return ff, fmt.Errorf("failed to get file flag: %w", err)
	}
	if ff.forceFile, err = flags.GetBool("force-file"); err != nil {
		return ff, fmt.Errorf("failed to get force-file flag: %w", err)
	}
	if ff.format, err = flags.GetString("format"); err != nil {
		return ff, fmt.Errorf("failed to get format flag: %w", err)
	}
	if ff.jobs, err = flags.GetInt("jobs"); err != nil {
		return ff, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if ff.width, err = flags.GetInt("width"); err != nil {
		return ff, fmt.Errorf("failed to get width flag: %w", err)
	}
	if ff.noWarnings, err = flags.GetBool("no-warnings"); err != nil {
		return ff, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if ff.warningsAsErrors, err = flags.GetBool("warnings-as-errors"); err != nil {
		return ff, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if ff.failOnError, err = flags.GetBool("fail-on-error"); err != nil {
		return ff, fmt.Errorf("failed to get fail-on-error flag: %w", err)
	}
	if ff.dedup, err = flags.GetBool("dedup"); err != nil {
		return ff, fmt.Errorf("failed to get dedup flag: %w", err)
	}
	if ff.maxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return ff, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	ff.changed = make(map[string]bool)
	for _, name := range []string{"errfmt", "preset", "file", "force-file", "format", "jobs"} {
		ff.changed[name] = flags.Changed(name)
	}
	ff.changed["max-diagnostics"] = cmd.Root().PersistentFlags().Changed("max-diagnostics")
	return ff, nil
}

// mergeSettings layers flags over cfg. cfg may be the zero Config.
func mergeSettings(cfg *config.Config, ff filterFlags) (filterSettings, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if ff.noWarnings && ff.warningsAsErrors {
		return filterSettings{}, errors.New("no-warnings and warnings-as-errors flags cannot be used together")
	}

	st := filterSettings{
		width:            ff.width,
		noWarnings:       ff.noWarnings,
		warningsAsErrors: ff.warningsAsErrors,
		failOnError:      ff.failOnError,
		dedup:            ff.dedup,
	}

	switch {
	case ff.changed["errfmt"] && ff.changed["preset"]:
		return filterSettings{}, errors.New("--errfmt and --preset cannot be used together")
	case ff.changed["errfmt"]:
		st.template = ff.errfmt
		st.origin = "--errfmt"
	case ff.changed["preset"]:
		p, err := cfg.Resolve(ff.preset)
		if err != nil {
			return filterSettings{}, err
		}
		st.template = p.Format
		st.origin = "preset " + p.Name
	default:
		tpl, err := cfg.Template()
		if err != nil {
			return filterSettings{}, err
		}
		st.template = tpl
		st.origin = templateOrigin(cfg)
	}

	formatName := ff.format
	if !ff.changed["format"] && cfg.Defaults.Format != "" {
		formatName = cfg.Defaults.Format
	}
	format, err := diagfmt.ParseFormat(formatName)
	if err != nil {
		return filterSettings{}, err
	}
	st.format = format

	st.file = ff.file
	if !ff.changed["file"] {
		st.file = cfg.Defaults.File
	}
	st.forceFile = ff.forceFile
	if !ff.changed["force-file"] {
		st.forceFile = cfg.Defaults.ForceFile
	}
	st.jobs = ff.jobs
	if !ff.changed["jobs"] && cfg.Defaults.Jobs != 0 {
		st.jobs = cfg.Defaults.Jobs
	}
	st.maxDiagnostics = ff.maxDiagnostics
	if !ff.changed["max-diagnostics"] && cfg.Defaults.MaxDiagnostics != 0 {
		st.maxDiagnostics = cfg.Defaults.MaxDiagnostics
	}
	return st, nil
}

func templateOrigin(cfg *config.Config) string {
	switch {
	case cfg.Defaults.Errfmt != "":
		return cfg.Path + " [defaults].errfmt"
	case cfg.Defaults.Preset != "":
		return "preset " + cfg.Defaults.Preset
	}
	return "preset " + config.DefaultPreset
}

// loadConfig honours --config, otherwise searches upwards from the working
// directory.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	return config.Discover(".")
}
