// Package agent2 implements a Zabbix Agent 2 plugin that periodically
// re-validates all discoverable template files under a configured root, so
// a Zabbix server can monitor the health of a template repository.
package agent2

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.zabbix.com/sdk/plugin"

	"github.com/kidoz/zabbix-template-lint-go/internal/config"
	"github.com/kidoz/zabbix-template-lint-go/internal/discovery"
	"github.com/kidoz/zabbix-template-lint-go/internal/report"
	"github.com/kidoz/zabbix-template-lint-go/internal/runner"
)

// DefaultLintInterval is the default seconds between background lint runs.
const DefaultLintInterval = 300

// LintPlugin implements Configurator, Runner and Exporter for Zabbix Agent 2.
type LintPlugin struct {
	plugin.Base

	cfg          *config.Config
	lintInterval int
	cache        *LintCache

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPlugin creates a new LintPlugin instance.
func NewPlugin() *LintPlugin {
	return &LintPlugin{
		cache:        NewLintCache(),
		lintInterval: DefaultLintInterval,
	}
}

// --- Configurator ---

// Configure is called by Agent 2 to pass config options
// (Plugins.ZabbixTemplateLint.* keys from the agent2 config file).
func (p *LintPlugin) Configure(globalOptions *plugin.GlobalOptions, privateOptions any) {
	opts, ok := privateOptions.(map[string]string)
	if !ok {
		p.Errf("unexpected privateOptions type: %T", privateOptions)
		return
	}

	cfg := config.DefaultConfig()

	if v, ok := opts["Root"]; ok {
		cfg.Discovery.Root = v
	}
	if v, ok := opts["MinVersion"]; ok {
		if mv, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Validation.MinVersion = mv
		}
	}
	if v, ok := opts["LintInterval"]; ok {
		if li, err := strconv.Atoi(v); err == nil {
			p.lintInterval = li
		}
	}

	p.cfg = cfg
}

// Validate checks mandatory configuration.
func (p *LintPlugin) Validate(privateOptions any) error {
	opts, ok := privateOptions.(map[string]string)
	if !ok {
		return fmt.Errorf("unexpected privateOptions type: %T", privateOptions)
	}
	if opts["Root"] == "" {
		return fmt.Errorf("Plugins.ZabbixTemplateLint.Root is required")
	}
	return nil
}

// --- Runner ---

// Start is called when Agent 2 starts the plugin.
func (p *LintPlugin) Start() {
	p.Infof("starting ZabbixTemplateLint plugin (lint interval: %ds)", p.lintInterval)

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.wg.Add(1)
	go p.lintLoop(ctx)
}

// Stop is called when Agent 2 shuts down.
func (p *LintPlugin) Stop() {
	p.Infof("stopping ZabbixTemplateLint plugin")
	p.cancel()
	p.wg.Wait()
}

func (p *LintPlugin) lintLoop(ctx context.Context) {
	defer p.wg.Done()

	// Run immediately on start, then periodically.
	p.runLint(ctx)

	interval := p.lintInterval
	if interval <= 0 {
		interval = DefaultLintInterval
	}
	ticker := time.NewTicker(time.Duration(interval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.runLint(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *LintPlugin) runLint(ctx context.Context) {
	if p.cfg == nil {
		p.Errf("plugin not configured, skipping lint run")
		return
	}

	summary, err := lintOnce(ctx, p.cfg)
	if err != nil {
		p.Errf("lint run failed: %s", err)
		return
	}

	p.cache.Update(summary)

	p.Infof("lint run completed: %d templates, %d failed", summary.Validated, summary.Failed)
}

// lintOnce validates every discoverable template under the configured root.
// Console output is discarded; plugin logging goes through p.Base (SDK
// logger) and results are served from the cache.
func lintOnce(ctx context.Context, cfg *config.Config) (*runner.Summary, error) {
	r := runner.New(
		cfg,
		zap.NewNop(),
		report.NewConsole(io.Discard, false),
		discovery.NewScanner(cfg.Discovery.Root),
	)
	return r.Run(ctx, runner.Options{All: true})
}

// --- Exporter ---

type lldEntry struct {
	Template string `json:"{#TEMPLATE}"`
}

type lldData struct {
	Data []lldEntry `json:"data"`
}

// Export handles item key requests from Agent 2.
func (p *LintPlugin) Export(key string, params []string, ctx plugin.ContextProvider) (any, error) {
	summary := p.cache.Summary()
	if summary == nil {
		return nil, fmt.Errorf("no lint data available yet")
	}

	switch key {
	case "ztl.templates.discovery":
		entries := make([]lldEntry, 0, len(summary.Reports))
		for _, fr := range summary.Reports {
			entries = append(entries, lldEntry{Template: fr.File})
		}
		b, err := json.Marshal(lldData{Data: entries})
		if err != nil {
			return "", fmt.Errorf("failed to marshal LLD data: %w", err)
		}
		return string(b), nil

	case "ztl.templates.total":
		return summary.Validated, nil

	case "ztl.templates.failed":
		return summary.Failed, nil

	case "ztl.template.passed":
		fr, err := p.fileReport(params)
		if err != nil {
			return nil, err
		}
		if fr.Passed {
			return 1, nil
		}
		return 0, nil

	case "ztl.template.errors":
		fr, err := p.fileReport(params)
		if err != nil {
			return nil, err
		}
		return len(fr.Errors), nil

	case "ztl.template.warnings":
		fr, err := p.fileReport(params)
		if err != nil {
			return nil, err
		}
		return len(fr.Warnings), nil

	default:
		return nil, fmt.Errorf("unknown key: %s", key)
	}
}

func (p *LintPlugin) fileReport(params []string) (report.FileReport, error) {
	if len(params) < 1 {
		return report.FileReport{}, fmt.Errorf("template file parameter is required")
	}
	fr, ok := p.cache.File(params[0])
	if !ok {
		return report.FileReport{}, fmt.Errorf("unknown template file: %s", params[0])
	}
	return fr, nil
}
