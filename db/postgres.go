package db

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shaurya/recordscope/config"
	"github.com/shaurya/recordscope/orm"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DSN renders cfg as a libpq keyword/value connection string. Empty
// settings are left out so libpq defaults apply.
func DSN(cfg config.DatabaseConfig) string {
	var parts []string
	add := func(key, value string) {
		if value != "" {
			parts = append(parts, key+"="+value)
		}
	}
	add("host", cfg.Host)
	add("user", cfg.User)
	add("password", cfg.Password)
	add("dbname", cfg.Name)
	if cfg.Port != 0 {
		add("port", strconv.Itoa(cfg.Port))
	}
	add("sslmode", cfg.SSLMode)
	return strings.Join(parts, " ")
}

// Connect opens a PostgreSQL connection, pings it and installs the
// validation callbacks. SQL is logged through log.
func Connect(ctx context.Context, cfg config.DatabaseConfig, env string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		Logger: newGormLogger(cfg, env, log),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to PostgreSQL at %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Pool > 0 {
		sqlDB.SetMaxIdleConns(cfg.Pool / 2)
		sqlDB.SetMaxOpenConns(cfg.Pool)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("cannot connect to PostgreSQL at %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	if err := orm.RegisterValidation(db); err != nil {
		return nil, err
	}
	log.Info("connected to database", zap.String("host", cfg.Host), zap.String("name", cfg.Name))
	return db, nil
}

// DryRun returns a Postgres handle that renders statements without ever
// opening a connection.
func DryRun(cfg config.DatabaseConfig) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               gormlogger.Discard,
	})
}

func newGormLogger(cfg config.DatabaseConfig, env string, log *zap.Logger) gormlogger.Interface {
	// every query in development, only warnings and slow queries elsewhere
	level := gormlogger.Warn
	if env == "development" {
		level = gormlogger.Info
	}

	slow := time.Duration(cfg.SlowQueryMs) * time.Millisecond
	if slow == 0 {
		slow = 200 * time.Millisecond
	}

	return NewSQLLogger(log.Named("sql"), level, slow)
}
