package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	dbdriver "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	src "github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// migrations/ 內的 SQL 會編進執行檔
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrationsTable 記錄 schema 版本的表名
const migrationsTable = "taskboard_schema_migrations"

// migrator is the part of *migrate.Migrate used here.
type migrator interface {
	Up() error
	Down() error
}

// 測試可覆寫
var (
	pgxpoolNewWithConfig = pgxpool.NewWithConfig
	sqlOpenDB            = sql.Open
	postgresWithInstance = postgres.WithInstance
	iofsNew              = iofs.New
	newMigrate           = func(source src.Driver, db dbdriver.Driver) (migrator, error) {
		return migrate.NewWithInstance("iofs", source, "postgres", db)
	}
)

// NewPgxPool parses url and opens a pool. Connections are made lazily;
// the health check Pings when it needs to know.
func NewPgxPool(ctx context.Context, url string) (DB, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("NewPgxPool: %w", err)
	}
	pool, err := pgxpoolNewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("NewPgxPool: %w", err)
	}
	return pool, nil
}

// withMigrator opens a short lived database/sql handle through the pgx
// driver, hands a migrator over the embedded files to fn and closes it.
func withMigrator(dbURL string, fn func(m migrator) error) error {
	sqlDB, err := sqlOpenDB("pgx", dbURL)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	driver, err := postgresWithInstance(sqlDB, &postgres.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return err
	}
	source, err := iofsNew(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	m, err := newMigrate(source, driver)
	if err != nil {
		return err
	}
	if err := fn(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// RunMigrations applies every embedded migration that has not run yet.
func RunMigrations(dbURL string) error {
	if err := withMigrator(dbURL, migrator.Up); err != nil {
		return fmt.Errorf("RunMigrations: %w", err)
	}
	return nil
}

// RollbackAll 回滾所有 migration，清空看板相關的表
func RollbackAll(dbURL string) error {
	if err := withMigrator(dbURL, migrator.Down); err != nil {
		return fmt.Errorf("RollbackAll: %w", err)
	}
	return nil
}
