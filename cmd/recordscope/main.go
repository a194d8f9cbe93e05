package main

import (
	"fmt"
	"os"

	"github.com/shaurya/recordscope/config"
	"github.com/shaurya/recordscope/i18n"
	"github.com/shaurya/recordscope/logger"
	"github.com/shaurya/recordscope/orm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const version = "1.0.0"

type app struct {
	configDir string
	env       string
	cfg       *config.Config
	log       *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "recordscope",
		Short:         "Inspect and run activity and created-date scopes against PostgreSQL tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.boot()
		},
	}
	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "config", "Directory holding app.yaml")
	root.PersistentFlags().StringVarP(&a.env, "env", "e", "", "Environment (development, production, test)")

	root.AddCommand(sqlCmd(a))
	root.AddCommand(countCmd(a))
	root.AddCommand(dbCmd(a))
	root.AddCommand(versionCmd())
	return root
}

func (a *app) boot() error {
	if a.env != "" {
		os.Setenv("APP_ENV", a.env)
	}
	cfg, err := config.Load(a.configDir)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log, err = logger.Init(cfg.App.Env, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	orm.SetLogger(a.log)

	if err := i18n.Init(cfg.Scopes.LocalesDir); err != nil {
		a.log.Warn("failed to load locales", zap.Error(err))
	}
	i18n.SetLocale(cfg.Scopes.Locale)
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "recordscope v%s\n", version)
		},
	}
}
