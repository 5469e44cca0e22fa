package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"

	"campdirectory/internal/config"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const migrationsDir = "migrations"

type MethodsDB interface {
	CloseDB() error
	RunMigrations(ctx context.Context) error
	HealthCheck(ctx context.Context) error
}

type DB struct {
	*sqlx.DB
}

// goose entry points, replaced in tests.
var (
	gooseUp     = goose.UpContext
	gooseDown   = goose.DownContext
	gooseStatus = goose.StatusContext
)

func ConnectDB(ctx context.Context, cfg *config.Config) (*DB, error) {
	logrus.WithFields(logrus.Fields{
		"host":   cfg.DB.DbHOST,
		"dbname": cfg.DB.DbNAME,
	}).Info("connecting to postgres")

	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DB.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	dbStruct := &DB{db}

	if err := dbStruct.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	logrus.Info("connected to postgres")
	return dbStruct, nil
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

func setupGoose() error {
	goose.SetBaseFS(embedMigrations)
	return goose.SetDialect("postgres")
}

// RunMigrations applies every pending embedded migration.
func (db *DB) RunMigrations(ctx context.Context) error {
	if err := setupGoose(); err != nil {
		return fmt.Errorf("failed to set up migrations: %w", err)
	}
	if err := gooseUp(ctx, db.DB.DB, migrationsDir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	logrus.Info("migrations applied")
	return nil
}

// RollbackMigration reverts the latest applied migration.
func (db *DB) RollbackMigration(ctx context.Context) error {
	if err := setupGoose(); err != nil {
		return fmt.Errorf("failed to set up migrations: %w", err)
	}
	if err := gooseDown(ctx, db.DB.DB, migrationsDir); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}

// MigrationStatus logs the state of every embedded migration.
func (db *DB) MigrationStatus(ctx context.Context) error {
	if err := setupGoose(); err != nil {
		return fmt.Errorf("failed to set up migrations: %w", err)
	}
	if err := gooseStatus(ctx, db.DB.DB, migrationsDir); err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}
	return nil
}

func (db *DB) HealthCheck(ctx context.Context) error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	return db.PingContext(ctx)
}

// FromSQL wraps an existing connection, used by tests and tooling.
func FromSQL(db *sql.DB) *DB {
	return &DB{sqlx.NewDb(db, "postgres")}
}
