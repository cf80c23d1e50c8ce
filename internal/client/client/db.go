package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/jobintake/internal/client/migrations"
	"github.com/dmitrijs2005/jobintake/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/jobintake/internal/client/repositories/receipts"
	"github.com/dmitrijs2005/jobintake/internal/dbx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Repositories bundles the local stores used by the CLI.
type Repositories struct {
	Metadata metadata.Repository
	Receipts receipts.Repository
}

func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Metadata: metadata.NewSQLiteRepository(db),
		Receipts: receipts.NewSQLiteRepository(db),
	}
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return gooseUpContext(ctx, db, ".")
}

// InitDatabase opens the sqlite database at dsn and applies migrations.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", dsn, err)
	}

	return db, nil
}

// WipeLocalData deletes the stored settings and every receipt. Either both
// stores are emptied or neither is.
func WipeLocalData(ctx context.Context, db *sql.DB) error {
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := metadata.NewSQLiteRepository(tx).Clear(ctx); err != nil {
			return err
		}
		return receipts.NewSQLiteRepository(tx).Clear(ctx)
	})
}
