package agent2

import (
	"sync"

	"github.com/kidoz/zabbix-template-lint-go/internal/report"
	"github.com/kidoz/zabbix-template-lint-go/internal/runner"
)

// LintCache holds the most recent lint run in a thread-safe manner.
type LintCache struct {
	mu      sync.RWMutex
	summary *runner.Summary
	byFile  map[string]report.FileReport
}

// NewLintCache creates a new empty cache.
func NewLintCache() *LintCache {
	return &LintCache{byFile: make(map[string]report.FileReport)}
}

// Update replaces the cached data atomically.
func (c *LintCache) Update(summary *runner.Summary) {
	byFile := make(map[string]report.FileReport, len(summary.Reports))
	for _, fr := range summary.Reports {
		byFile[fr.File] = fr
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.summary = summary
	c.byFile = byFile
}

// Summary returns the cached run summary (nil if no run has completed).
func (c *LintCache) Summary() *runner.Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.summary
}

// File returns the cached report for one template file.
func (c *LintCache) File(path string) (report.FileReport, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fr, ok := c.byFile[path]
	return fr, ok
}
