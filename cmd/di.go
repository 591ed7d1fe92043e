package cmd

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/kidoz/zabbix-template-lint-go/internal/config"
	"github.com/kidoz/zabbix-template-lint-go/internal/runner"
)

func initRunner(cfg *config.Config, log *zap.Logger) (*runner.Runner, error) {
	var r *runner.Runner
	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg, log),
		runner.Module,
		fx.Populate(&r),
	)
	if err := app.Err(); err != nil {
		return nil, err
	}
	return r, nil
}
