package main

import (
	"github.com/shaurya/recordscope/db"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func dbCmd(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database migration commands",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "Migrations directory (defaults to database.migrations_dir)")

	migrationsDir := func() string {
		if dir != "" {
			return dir
		}
		return a.cfg.Database.MigrationsDir
	}
	connect := func(cmd *cobra.Command) (*gorm.DB, error) {
		return db.Connect(cmd.Context(), a.cfg.Database, a.cfg.App.Env, a.log)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Run pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, err := connect(cmd)
			if err != nil {
				return err
			}
			return db.Migrate(gdb, migrationsDir())
		},
	})

	var steps int
	rollback := &cobra.Command{
		Use:   "rollback",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, err := connect(cmd)
			if err != nil {
				return err
			}
			return db.Rollback(gdb, migrationsDir(), steps)
		},
	}
	rollback.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")
	cmd.AddCommand(rollback)

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, err := connect(cmd)
			if err != nil {
				return err
			}
			return db.MigrationStatus(gdb, migrationsDir())
		},
	})
	return cmd
}
