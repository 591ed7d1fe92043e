package runner

import (
	"os"

	"go.uber.org/fx"

	"github.com/kidoz/zabbix-template-lint-go/internal/config"
	"github.com/kidoz/zabbix-template-lint-go/internal/discovery"
	"github.com/kidoz/zabbix-template-lint-go/internal/report"
)

// Module provides all runner dependencies for fx injection.
var Module = fx.Module("runner",
	fx.Provide(
		New,
		ProvideConsole,
		ProvideScanner,
	),
)

// ProvideConsole creates the stdout console renderer.
func ProvideConsole(cfg *config.Config) *report.Console {
	return report.NewConsole(os.Stdout, cfg.Report.Color)
}

// ProvideScanner creates the batch-mode file scanner.
func ProvideScanner(cfg *config.Config) *discovery.Scanner {
	return discovery.NewScanner(cfg.Discovery.Root)
}
