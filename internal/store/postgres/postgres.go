// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/egovernments/digit-config-service/internal/model"
	"github.com/egovernments/digit-config-service/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateConfigSet(ctx context.Context, cs *model.ConfigSet) error {
	return queryCreateConfigSet(ctx, s.db, cs)
}

func (s *PostgresStore) UpdateConfigSet(ctx context.Context, cs *model.ConfigSet) error {
	return queryUpdateConfigSet(ctx, s.db, cs)
}

func (s *PostgresStore) SearchConfigSets(ctx context.Context, criteria model.ConfigSetCriteria) ([]*model.ConfigSet, int, error) {
	return querySearchConfigSets(ctx, s.db, criteria)
}

func (s *PostgresStore) FindActiveSetID(ctx context.Context, tenantID string) (string, error) {
	return queryFindActiveSetID(ctx, s.db, tenantID)
}

func (s *PostgresStore) ActivateConfigSet(ctx context.Context, setID, userID string, now time.Time) error {
	return queryActivateConfigSet(ctx, s.db, setID, userID, now)
}

func (s *PostgresStore) DeactivateOtherSets(ctx context.Context, setID, tenantID, userID string, now time.Time) error {
	return queryDeactivateOtherSets(ctx, s.db, setID, tenantID, userID, now)
}

func (s *PostgresStore) RecordActivation(ctx context.Context, a *model.ConfigSetActivation) error {
	return queryRecordActivation(ctx, s.db, a)
}

func (s *PostgresStore) CreateConfig(ctx context.Context, c *model.Config) error {
	return queryCreateConfig(ctx, s.db, c)
}

func (s *PostgresStore) UpdateConfig(ctx context.Context, c *model.Config) error {
	return queryUpdateConfig(ctx, s.db, c)
}

func (s *PostgresStore) SearchConfigs(ctx context.Context, criteria model.ConfigCriteria) ([]*model.Config, int, error) {
	return querySearchConfigs(ctx, s.db, criteria)
}

func (s *PostgresStore) CreateVersion(ctx context.Context, v *model.ConfigVersion) error {
	return queryCreateVersion(ctx, s.db, v)
}

func (s *PostgresStore) DeactivateVersions(ctx context.Context, configID, userID string, now time.Time) error {
	return queryDeactivateVersions(ctx, s.db, configID, userID, now)
}

func (s *PostgresStore) GetVersionsByConfigID(ctx context.Context, configID string) ([]*model.ConfigVersion, error) {
	return queryGetVersionsByConfigID(ctx, s.db, configID)
}

func (s *PostgresStore) GetActiveVersion(ctx context.Context, configID string) (*model.ConfigVersion, error) {
	return queryGetActiveVersion(ctx, s.db, configID)
}

func (s *PostgresStore) SaveEntry(ctx context.Context, e *model.Entry) error {
	return querySaveEntry(ctx, s.db, e)
}

func (s *PostgresStore) UpdateEntry(ctx context.Context, e *model.Entry, expectedRevision int) error {
	return queryUpdateEntry(ctx, s.db, e, expectedRevision)
}

func (s *PostgresStore) SearchEntries(ctx context.Context, criteria model.EntryCriteria) ([]*model.Entry, int, error) {
	return querySearchEntries(ctx, s.db, criteria)
}

func (s *PostgresStore) ResolveEntry(ctx context.Context, code, module string, tenantChain, localeChain []string) (*model.Entry, error) {
	return queryResolveEntry(ctx, s.db, code, module, tenantChain, localeChain)
}

// RunInTransaction begins a database transaction, creates a txStore that
// delegates to it, calls fn, and commits on success or rolls back on error.
func (s *PostgresStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txS := &txStore{tx: tx}
	if err := fn(txS); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txStore implements store.Store using a *sql.Tx.
type txStore struct {
	tx *sql.Tx
}

// Compile-time check that txStore implements store.Store.
var _ store.Store = (*txStore)(nil)

func (s *txStore) CreateConfigSet(ctx context.Context, cs *model.ConfigSet) error {
	return queryCreateConfigSet(ctx, s.tx, cs)
}

func (s *txStore) UpdateConfigSet(ctx context.Context, cs *model.ConfigSet) error {
	return queryUpdateConfigSet(ctx, s.tx, cs)
}

func (s *txStore) SearchConfigSets(ctx context.Context, criteria model.ConfigSetCriteria) ([]*model.ConfigSet, int, error) {
	return querySearchConfigSets(ctx, s.tx, criteria)
}

func (s *txStore) FindActiveSetID(ctx context.Context, tenantID string) (string, error) {
	return queryFindActiveSetID(ctx, s.tx, tenantID)
}

func (s *txStore) ActivateConfigSet(ctx context.Context, setID, userID string, now time.Time) error {
	return queryActivateConfigSet(ctx, s.tx, setID, userID, now)
}

func (s *txStore) DeactivateOtherSets(ctx context.Context, setID, tenantID, userID string, now time.Time) error {
	return queryDeactivateOtherSets(ctx, s.tx, setID, tenantID, userID, now)
}

func (s *txStore) RecordActivation(ctx context.Context, a *model.ConfigSetActivation) error {
	return queryRecordActivation(ctx, s.tx, a)
}

func (s *txStore) CreateConfig(ctx context.Context, c *model.Config) error {
	return queryCreateConfig(ctx, s.tx, c)
}

func (s *txStore) UpdateConfig(ctx context.Context, c *model.Config) error {
	return queryUpdateConfig(ctx, s.tx, c)
}

func (s *txStore) SearchConfigs(ctx context.Context, criteria model.ConfigCriteria) ([]*model.Config, int, error) {
	return querySearchConfigs(ctx, s.tx, criteria)
}

func (s *txStore) CreateVersion(ctx context.Context, v *model.ConfigVersion) error {
	return queryCreateVersion(ctx, s.tx, v)
}

func (s *txStore) DeactivateVersions(ctx context.Context, configID, userID string, now time.Time) error {
	return queryDeactivateVersions(ctx, s.tx, configID, userID, now)
}

func (s *txStore) GetVersionsByConfigID(ctx context.Context, configID string) ([]*model.ConfigVersion, error) {
	return queryGetVersionsByConfigID(ctx, s.tx, configID)
}

func (s *txStore) GetActiveVersion(ctx context.Context, configID string) (*model.ConfigVersion, error) {
	return queryGetActiveVersion(ctx, s.tx, configID)
}

func (s *txStore) SaveEntry(ctx context.Context, e *model.Entry) error {
	return querySaveEntry(ctx, s.tx, e)
}

func (s *txStore) UpdateEntry(ctx context.Context, e *model.Entry, expectedRevision int) error {
	return queryUpdateEntry(ctx, s.tx, e, expectedRevision)
}

func (s *txStore) SearchEntries(ctx context.Context, criteria model.EntryCriteria) ([]*model.Entry, int, error) {
	return querySearchEntries(ctx, s.tx, criteria)
}

func (s *txStore) ResolveEntry(ctx context.Context, code, module string, tenantChain, localeChain []string) (*model.Entry, error) {
	return queryResolveEntry(ctx, s.tx, code, module, tenantChain, localeChain)
}

// RunInTransaction on a txStore reuses the existing transaction (no nesting).
func (s *txStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(s)
}

// Close is a no-op for a transaction store; the parent store owns the connection.
func (s *txStore) Close() error {
	return nil
}
