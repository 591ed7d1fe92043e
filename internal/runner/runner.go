// Package runner drives validation over one file or a discovered batch,
// printing reports and aggregating the overall verdict.
package runner

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/kidoz/zabbix-template-lint-go/internal/config"
	"github.com/kidoz/zabbix-template-lint-go/internal/discovery"
	"github.com/kidoz/zabbix-template-lint-go/internal/report"
	"github.com/kidoz/zabbix-template-lint-go/internal/telemetry"
	"github.com/kidoz/zabbix-template-lint-go/internal/validator"
)

// Runner resolves input files and runs one Validator pass per file.
// Validation is strictly sequential; nothing is shared across files.
type Runner struct {
	cfg     *config.Config
	log     *zap.Logger
	console *report.Console
	scanner *discovery.Scanner
}

// New assembles a Runner from its dependencies.
func New(cfg *config.Config, log *zap.Logger, console *report.Console, scanner *discovery.Scanner) *Runner {
	return &Runner{
		cfg:     cfg,
		log:     log,
		console: console,
		scanner: scanner,
	}
}

// Options selects what to validate.
type Options struct {
	// Path names one file to validate. Empty in batch mode.
	Path string
	// All enables batch discovery under the configured root.
	All bool
}

// Summary aggregates a whole run.
type Summary struct {
	Reports    []report.FileReport
	YAMLListed []string
	Validated  int
	Failed     int
}

// Passed reports whether every validated file passed.
func (s *Summary) Passed() bool { return s.Failed == 0 }

// Run validates the selected files. Fatal conditions (missing explicit
// file, empty batch discovery, unreadable tree) return an error before any
// Validator runs; per-file failures are accumulated in the Summary instead
// so one bad file never aborts the batch.
func (r *Runner) Run(ctx context.Context, opts Options) (*Summary, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "Runner.Run")
	defer span.End()

	files, yamlFiles, err := r.resolve(opts)
	if err != nil {
		return nil, err
	}

	structured := r.cfg.Report.Format != "text"
	summary := &Summary{YAMLListed: yamlFiles}

	if !structured {
		r.console.YAMLListing(yamlFiles)
	}

	var progress validator.Progress = r.console
	if structured {
		progress = validator.NopProgress()
	}
	v := validator.New(r.cfg, progress)

	for _, file := range files {
		if !structured {
			r.console.Banner(file)
		}

		res := v.ValidateFile(ctx, file)

		if !structured {
			r.console.Results(res)
		}
		summary.Reports = append(summary.Reports, report.NewFileReport(res))
		summary.Validated++
		if !res.Passed() {
			summary.Failed++
			r.log.Debug("file failed validation",
				zap.String("file", file),
				zap.Int("errors", len(res.Errors())),
			)
		}
	}

	if structured {
		batch := report.BatchReport{
			Files:      summary.Reports,
			YAMLListed: yamlFiles,
			Passed:     summary.Passed(),
		}
		if err := report.Encode(r.console.Writer(), r.cfg.Report.Format, batch); err != nil {
			return nil, err
		}
	} else if opts.All && len(files) == 0 && len(yamlFiles) > 0 {
		// Only YAML templates in the tree; nothing for us to rule-check.
		r.console.Noticef("All template files validated successfully!")
	}

	span.SetAttributes(
		attribute.Int("files", summary.Validated),
		attribute.Int("failed", summary.Failed),
	)
	return summary, nil
}

// resolve turns Options into the list of XML files to validate plus the
// YAML files to list.
func (r *Runner) resolve(opts Options) (xmlFiles, yamlFiles []string, err error) {
	if opts.All {
		found, err := r.scanner.Find()
		if err != nil {
			return nil, nil, err
		}
		if found.Empty() {
			return nil, nil, fmt.Errorf("no Zabbix template files found (XML or YAML)")
		}
		r.log.Debug("discovered template files",
			zap.Int("xml", len(found.XML)),
			zap.Int("yaml", len(found.YAML)),
		)
		return found.XML, found.YAML, nil
	}

	if _, err := os.Stat(opts.Path); err != nil {
		return nil, nil, fmt.Errorf("file not found: %s", opts.Path)
	}
	return []string{opts.Path}, nil, nil
}
