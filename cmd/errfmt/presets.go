package main

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"errfmt/internal/config"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List built-in and configured templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		renderPresets(cmd.OutOrStdout(), cfg)
		return nil
	},
}

func renderPresets(out io.Writer, cfg *config.Config) {
	presets := cfg.Presets()
	nameWidth, formatWidth := 0, 0
	for _, p := range presets {
		nameWidth = max(nameWidth, runewidth.StringWidth(p.Name))
		formatWidth = max(formatWidth, runewidth.StringWidth(p.Format))
	}
	def, _ := cfg.Resolve("")
	for _, p := range presets {
		marker := " "
		if p.Name == def.Name && cfg.Defaults.Errfmt == "" {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s  %s  %s\n", marker,
			runewidth.FillRight(p.Name, nameWidth),
			runewidth.FillRight(p.Format, formatWidth),
			p.Description)
	}
}
