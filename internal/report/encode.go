package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/kidoz/zabbix-template-lint-go/internal/validator"
)

// FileReport is the machine-readable view of one file's findings.
type FileReport struct {
	File     string   `json:"file" yaml:"file"`
	Passed   bool     `json:"passed" yaml:"passed"`
	Errors   []string `json:"errors" yaml:"errors"`
	Warnings []string `json:"warnings" yaml:"warnings"`
	Info     []string `json:"info" yaml:"info"`
}

// BatchReport is the machine-readable view of a whole run.
type BatchReport struct {
	Files      []FileReport `json:"files" yaml:"files"`
	YAMLListed []string     `json:"yaml_listed,omitempty" yaml:"yaml_listed,omitempty"`
	Passed     bool         `json:"passed" yaml:"passed"`
}

// NewFileReport converts a validation result into its serializable form.
func NewFileReport(res *validator.Result) FileReport {
	return FileReport{
		File:     res.File,
		Passed:   res.Passed(),
		Errors:   res.Errors(),
		Warnings: res.Warnings(),
		Info:     res.Info(),
	}
}

// Encode writes the batch report to w in the requested format (json or yaml).
func Encode(w io.Writer, format string, batch BatchReport) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(batch)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer func() { _ = enc.Close() }()
		return enc.Encode(batch)
	default:
		return fmt.Errorf("unsupported report format: %q", format)
	}
}
