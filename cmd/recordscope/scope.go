package main

import (
	"fmt"

	"github.com/shaurya/recordscope/config"
	"github.com/shaurya/recordscope/dates"
	"github.com/shaurya/recordscope/db"
	"github.com/shaurya/recordscope/orm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// scopeArgs are the flags shared by sql and count.
type scopeArgs struct {
	scope string
	from  string
	to    string
	on    string
	field string
	check []string
}

func (s *scopeArgs) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&s.scope, "scope", "active", "active, inactive, created-between, created-between-dates or created-on")
	f.StringVar(&s.from, "from", "", "Lower bound for created-between scopes")
	f.StringVar(&s.to, "to", "now", "Upper bound for created-between scopes")
	f.StringVar(&s.on, "on", "today", "Day for created-on")
	f.StringVar(&s.field, "field", "", "Column to filter on instead of the created-at column")
	f.StringArrayVar(&s.check, "check", nil, "Override the active/inactive check, e.g. status=Delivered|Shipped (repeatable)")
}

// scopes builds the Scopes for a table from the config and flag overrides.
func (s *scopeArgs) scopes(cfg config.ScopeConfig) (*orm.Scopes, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	opts := []orm.ScopeOption{
		orm.WithCreatedAtColumn(cfg.CreatedAtColumn),
		orm.WithDateParser(dates.New(dates.WithLocation(loc))),
	}

	active, inactive := cfg.ActiveCheck, cfg.InactiveCheck
	if len(s.check) > 0 {
		active, inactive = s.check, s.check
	}
	if len(active) > 0 {
		c, err := orm.ParseCheck(active)
		if err != nil {
			return nil, err
		}
		opts = append(opts, orm.WithActiveCheck(c))
	}
	if len(inactive) > 0 {
		c, err := orm.ParseCheck(inactive)
		if err != nil {
			return nil, err
		}
		opts = append(opts, orm.WithInactiveCheck(c))
	}
	return orm.NewScopes(opts...), nil
}

func (s *scopeArgs) build(cfg config.ScopeConfig) (orm.ScopeFunc, error) {
	sc, err := s.scopes(cfg)
	if err != nil {
		return nil, err
	}
	switch s.scope {
	case "active":
		return sc.Active(), nil
	case "inactive":
		return sc.Inactive(), nil
	case "created-between":
		if s.from == "" {
			return nil, fmt.Errorf("--from is required for %s", s.scope)
		}
		return sc.CreatedBetween(s.from, s.to, s.field), nil
	case "created-between-dates":
		if s.from == "" {
			return nil, fmt.Errorf("--from is required for %s", s.scope)
		}
		return sc.CreatedBetweenDates(s.from, s.to, s.field), nil
	case "created-on":
		return sc.CreatedOn(s.on, s.field), nil
	default:
		return nil, fmt.Errorf("unknown scope %q", s.scope)
	}
}

// renderSQL returns the statement a scoped select on table produces, with
// its bind variables inlined.
func renderSQL(gdb *gorm.DB, table string, scope orm.ScopeFunc) (string, error) {
	tx := gdb.Table(table).Scopes(scope).Find(&[]map[string]any{})
	if tx.Error != nil {
		return "", tx.Error
	}
	return gdb.Dialector.Explain(tx.Statement.SQL.String(), tx.Statement.Vars...), nil
}

func sqlCmd(a *app) *cobra.Command {
	var args scopeArgs
	cmd := &cobra.Command{
		Use:   "sql <table>",
		Short: "Print the SQL a scope produces for a table (no database needed)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, pos []string) error {
			scope, err := args.build(a.cfg.Scopes)
			if err != nil {
				return err
			}
			gdb, err := db.DryRun(a.cfg.Database)
			if err != nil {
				return err
			}
			sql, err := renderSQL(gdb, pos[0], scope)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sql)
			return nil
		},
	}
	args.register(cmd)
	return cmd
}

func countCmd(a *app) *cobra.Command {
	var args scopeArgs
	cmd := &cobra.Command{
		Use:   "count <table>",
		Short: "Count the rows of a table matching a scope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, pos []string) error {
			scope, err := args.build(a.cfg.Scopes)
			if err != nil {
				return err
			}
			gdb, err := db.Connect(cmd.Context(), a.cfg.Database, a.cfg.App.Env, a.log)
			if err != nil {
				return err
			}

			var n int64
			if err := gdb.WithContext(cmd.Context()).Table(pos[0]).Scopes(scope).Count(&n).Error; err != nil {
				return err
			}
			a.log.Debug("counted rows", zap.String("table", pos[0]), zap.String("scope", args.scope), zap.Int64("count", n))
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
	args.register(cmd)
	return cmd
}
