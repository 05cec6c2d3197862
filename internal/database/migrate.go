package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"course-compass/internal/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	createMigrationsTableSQL = `CREATE TABLE IF NOT EXISTS SCHEMA_MIGRATIONS (VERSION NUMBER(19) PRIMARY KEY, APPLIED_AT TIMESTAMP DEFAULT SYSTIMESTAMP NOT NULL)`
	selectAppliedSQL         = `SELECT VERSION FROM SCHEMA_MIGRATIONS`
	insertAppliedSQL         = `INSERT INTO SCHEMA_MIGRATIONS (VERSION) VALUES (:1)`
)

// Migrator applies up-migrations read through a golang-migrate source driver.
// go-ora has no golang-migrate database driver, so statements are executed
// with sqlx and versions are tracked in SCHEMA_MIGRATIONS.
type Migrator struct {
	db  *sqlx.DB
	src source.Driver
}

// NewMigrator uses the migrations embedded in the binary.
func NewMigrator(db *sqlx.DB) (*Migrator, error) {
	return NewMigratorFromFS(db, migrationsFS, "migrations")
}

// NewMigratorFromFS reads {version}_{title}.up.sql files from dir in fsys.
func NewMigratorFromFS(db *sqlx.DB, fsys fs.FS, dir string) (*Migrator, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not open migration source: %w", err)
	}
	return &Migrator{db: db, src: src}, nil
}

// Up applies every pending migration in version order and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if _, err := m.db.ExecContext(ctx, createMigrationsTableSQL); err != nil {
		return 0, fmt.Errorf("could not create migrations table: %w", err)
	}

	var versions []uint
	if err := m.db.SelectContext(ctx, &versions, selectAppliedSQL); err != nil {
		return 0, fmt.Errorf("could not read applied migrations: %w", err)
	}
	applied := make(map[uint]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}

	count := 0
	version, err := m.src.First()
	for err == nil {
		if !applied[version] {
			if applyErr := m.apply(ctx, version); applyErr != nil {
				return count, applyErr
			}
			count++
		}
		version, err = m.src.Next(version)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return count, fmt.Errorf("could not list migrations: %w", err)
	}

	logger.Get().Info("Migrations completed", zap.Int("applied", count))
	return count, nil
}

func (m *Migrator) apply(ctx context.Context, version uint) error {
	r, identifier, err := m.src.ReadUp(version)
	if err != nil {
		return fmt.Errorf("could not read migration %d: %w", version, err)
	}
	body, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		return fmt.Errorf("could not read migration %d: %w", version, err)
	}

	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	for _, stmt := range SplitStatements(string(body)) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("could not execute migration %d_%s: %w", version, identifier, err)
		}
	}
	if _, err := tx.ExecContext(ctx, insertAppliedSQL, version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("could not record migration %d: %w", version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", version, err)
	}

	logger.Get().Info("Executed migration", zap.Uint("version", version), zap.String("name", identifier))
	return nil
}

// SplitStatements splits a script on semicolons that end a line. Oracle
// rejects a trailing semicolon on a single statement.
func SplitStatements(script string) []string {
	var stmts []string
	var current strings.Builder
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSuffix(strings.TrimSpace(current.String()), ";")
			stmts = append(stmts, strings.TrimSpace(stmt))
			current.Reset()
		}
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		stmts = append(stmts, rest)
	}
	return stmts
}
