package db

import (
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/creatorlens/creatorlens-go/internal/db/migrations"
)

// Migrate applies the embedded schema migrations through goose, bridging
// pgx into database/sql for the duration of the run.
func Migrate(databaseURL string) error {
	cfg, err := pgx.ParseConfig(databaseURL)
	if err != nil {
		return fmt.Errorf("parse database url: %w", err)
	}

	sqlDB := stdlib.OpenDB(*cfg)
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(sqlDB, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	if version, err := goose.GetDBVersion(sqlDB); err == nil {
		log.Printf("database schema at version %d", version)
	}
	return nil
}
