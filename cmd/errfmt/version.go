package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"errfmt/internal/config"
	"errfmt/internal/version"
)

type versionFlags struct {
	format  string
	hash    bool
	message bool
	date    bool
	full    bool
}

var versionOpts versionFlags

func init() {
	f := versionCmd.Flags()
	f.BoolVar(&versionOpts.hash, "hash", false, "include git commit hash")
	f.BoolVar(&versionOpts.message, "message", false, "include git commit message")
	f.BoolVar(&versionOpts.date, "date", false, "include build timestamp")
	f.BoolVar(&versionOpts.full, "full", false, "include build metadata, toolchain and built-in presets")
	f.StringVar(&versionOpts.format, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show errfmt build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report := buildVersionReport(versionOpts)
		switch strings.ToLower(versionOpts.format) {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		case "pretty":
			colorOn, err := useColor(cmd)
			if err != nil {
				return err
			}
			renderVersion(cmd.OutOrStdout(), report, colorOn)
			return nil
		}
		return fmt.Errorf("unsupported format %q (must be pretty or json)", versionOpts.format)
	},
}

// versionReport is printed by `errfmt version`. Empty fields were not
// requested.
type versionReport struct {
	Version  string   `json:"version"`
	Commit   string   `json:"commit,omitempty"`
	Message  string   `json:"message,omitempty"`
	Built    string   `json:"built,omitempty"`
	Go       string   `json:"go,omitempty"`
	Template string   `json:"default_template,omitempty"`
	Presets  []string `json:"presets,omitempty"`
}

func buildVersionReport(f versionFlags) versionReport {
	r := versionReport{Version: strings.TrimSpace(version.Version)}
	if r.Version == "" {
		r.Version = "dev"
	}
	if f.hash || f.full {
		r.Commit = valueOrUnknown(version.Commit())
	}
	if f.message || f.full {
		r.Message = valueOrUnknown(strings.TrimSpace(version.GitMessage))
	}
	if f.date || f.full {
		r.Built = valueOrUnknown(version.Date())
	}
	if f.full {
		r.Go = runtime.Version()
		if p, ok := config.Builtin(config.DefaultPreset); ok {
			r.Template = p.Format
		}
		for _, p := range config.Builtins() {
			r.Presets = append(r.Presets, p.Name)
		}
	}
	return r
}

func renderVersion(out io.Writer, r versionReport, colorOn bool) {
	v := r.Version
	if colorOn {
		v = version.Colorize(v)
	}
	fmt.Fprintf(out, "errfmt %s\n", v)

	rows := []struct{ key, value string }{
		{"commit", r.Commit},
		{"message", r.Message},
		{"built", r.Built},
		{"go", r.Go},
		{"template", r.Template},
		{"presets", strings.Join(r.Presets, ", ")},
	}
	for _, row := range rows {
		if row.value != "" {
			fmt.Fprintf(out, "  %-9s %s\n", row.key, row.value)
		}
	}
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
