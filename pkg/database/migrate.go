package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"

	migrate "github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// LatestSchemaVersion is the newest migration shipped in migrations/.
const LatestSchemaVersion = 5

//go:embed migrations
var migrationFS embed.FS

// managedTables are dropped when the schema has to be rebuilt.
var managedTables = []string{"notifications", "transactions", "stock_items", "scan_results", "schema_migrations"}

var errRebuild = errors.New("schema must be rebuilt")

// Migrate brings the schema to LatestSchemaVersion. Additive migrations are
// applied in order. A dirty schema or one newer than this build knows is
// dropped and recreated from scratch, losing its data.
func Migrate(s *Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.migrateUp()
	if !errors.Is(err, errRebuild) {
		return err
	}

	log.Printf("Warning: %v, dropping and recreating all tables", err)
	if err := s.db.Migrator().DropTable(toAny(managedTables)...); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	return s.migrateUp()
}

// SchemaVersion reports the applied migration version. Zero means none.
func SchemaVersion(s *Store) (uint, bool, error) {
	m, release, err := s.newMigrator()
	if err != nil {
		return 0, false, err
	}
	defer release()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (s *Store) migrateUp() error {
	m, release, err := s.newMigrator()
	if err != nil {
		return err
	}
	defer release()

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	if dirty || version > LatestSchemaVersion {
		return fmt.Errorf("%w: version %d dirty=%t", errRebuild, version, dirty)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		if _, dirty, verr := m.Version(); verr == nil && dirty {
			return fmt.Errorf("%w: %v", errRebuild, err)
		}
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// newMigrator builds a migrator on the store's own handle. The returned
// release func must be called instead of m.Close, which would close the
// shared *sql.DB.
func (s *Store) newMigrator() (*migrate.Migrate, func(), error) {
	noop := func() {}

	sqlDB, err := s.db.DB()
	if err != nil {
		return nil, noop, err
	}

	src, err := iofs.New(migrationFS, "migrations/"+s.driver)
	if err != nil {
		return nil, noop, fmt.Errorf("migration source: %w", err)
	}

	var (
		drv     migratedb.Driver
		release = noop
	)
	switch s.driver {
	case DriverPostgres:
		ctx := context.Background()
		var conn *sql.Conn
		conn, err = sqlDB.Conn(ctx)
		if err != nil {
			return nil, noop, err
		}
		release = func() { conn.Close() }
		drv, err = migratepg.WithConnection(ctx, conn, &migratepg.Config{})
	default:
		drv, err = sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
	}
	if err != nil {
		release()
		return nil, noop, fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, s.driver, drv)
	if err != nil {
		release()
		return nil, noop, err
	}
	return m, release, nil
}

func toAny(names []string) []interface{} {
	out := make([]interface{}, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}
