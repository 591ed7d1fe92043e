package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kidoz/zabbix-template-lint-go/internal/runner"
)

var (
	checkAll    bool
	checkWatch  bool
	checkFormat string
)

var checkCmd = &cobra.Command{
	Use:   "check [template file]",
	Short: "Validate Zabbix template export files",
	Long: `Validate one template export file, or all discoverable template files
under the configured root with --all.

Batch mode finds XML files whose name contains 'zabbix' or starts with
'template'. YAML template files are listed but left to yamllint.

The exit code is 0 only when every validated file has zero errors.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if checkAll {
			if len(args) != 0 {
				return fmt.Errorf("--all does not take a file argument")
			}
			return nil
		}
		if len(args) != 1 {
			return fmt.Errorf("requires a template file argument (or --all)")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		log := GetLogger()
		cfg := GetConfig()

		if checkFormat != "" {
			cfg.Report.Format = checkFormat
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		r, err := initRunner(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize runner: %w", err)
		}

		if checkWatch {
			if checkAll {
				return fmt.Errorf("--watch requires a single file, not --all")
			}
			return r.Watch(ctx, args[0])
		}

		opts := runner.Options{All: checkAll}
		if !checkAll {
			opts.Path = args[0]
		}

		summary, err := r.Run(ctx, opts)
		if err != nil {
			return err
		}

		log.Debug("run finished",
			zap.Int("validated", summary.Validated),
			zap.Int("failed", summary.Failed),
		)

		if !summary.Passed() {
			return fmt.Errorf("validation failed: %d of %d file(s) had errors", summary.Failed, summary.Validated)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkAll, "all", false, "validate all discoverable template files")
	checkCmd.Flags().BoolVar(&checkWatch, "watch", false, "re-validate the file on every change")
	checkCmd.Flags().StringVar(&checkFormat, "format", "", "report format: text, json or yaml (default from config)")

	rootCmd.AddCommand(checkCmd)
}
