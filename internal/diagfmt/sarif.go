package diagfmt

import (
	"encoding/json"
	"io"
	"strings"

	"errfmt/internal/diag"
)

const sarifSchema = "https://json.schemastore.org/sarif-2.1.0.json"

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

type sarifInvocation struct {
	CommandLine         string            `json:"commandLine,omitempty"`
	ExecutionSuccessful bool              `json:"executionSuccessful"`
	Properties          map[string]string `json:"properties,omitempty"`
}

type sarifResult struct {
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint64 `json:"startLine"`
	StartColumn uint64 `json:"startColumn"`
}

func sarifLevel(e Entry) string {
	switch e.Kind {
	case "warning":
		return "warning"
	case "info":
		return "note"
	}
	return "error"
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0)
func Sarif(w io.Writer, bag *diag.Bag, opts Opts, meta SarifRunMeta) error {
	entries := Entries(bag, opts)
	results := make([]sarifResult, 0, len(entries))
	for _, e := range entries {
		res := sarifResult{
			Level:   sarifLevel(e),
			Message: sarifMessage{Text: strings.TrimSpace(e.Message)},
		}
		if e.File != "" {
			res.Locations = []sarifLocation{{
				PhysicalLocation: sarifPhysical{
					ArtifactLocation: sarifArtifact{URI: e.File},
					Region:           sarifRegion{StartLine: e.Line, StartColumn: e.Column},
				},
			}}
		}
		results = append(results, res)
	}

	run := sarifRun{
		Tool:    sarifTool{Driver: sarifDriver{Name: meta.ToolName, Version: meta.ToolVersion}},
		Results: results,
	}
	if len(meta.InvocationArgs) > 0 || meta.Template != "" {
		inv := sarifInvocation{
			CommandLine:         strings.Join(meta.InvocationArgs, " "),
			ExecutionSuccessful: true,
		}
		if meta.Template != "" {
			inv.Properties = map[string]string{"errfmt": meta.Template}
		}
		run.Invocations = []sarifInvocation{inv}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sarifLog{
		Version: "2.1.0",
		Schema:  sarifSchema,
		Runs:    []sarifRun{run},
	})
}
