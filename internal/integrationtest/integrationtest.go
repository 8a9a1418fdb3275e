// Package integrationtest provides db helpers used in integration tests.
package integrationtest

import (
	"database/sql"
	"sync"
	"testing"

	"github.com/go-petr/pet-wallet/db/migration"
	"github.com/go-petr/pet-wallet/pkg/configpkg"
	"github.com/go-petr/pet-wallet/pkg/dbpkg"

	_ "github.com/lib/pq"
)

const configPath = "../../configs"

var migrateOnce sync.Once

// Config loads the test configuration.
func Config(t *testing.T) configpkg.Config {
	t.Helper()

	config, err := configpkg.Load(configPath)
	if err != nil {
		t.Fatalf(`configpkg.Load(%q) returned error: %v`, configPath, err)
	}

	return config
}

func open(t *testing.T) *sql.DB {
	t.Helper()

	config := Config(t)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	var migrateErr error

	migrateOnce.Do(func() {
		migrateErr = dbpkg.Migrate(db, migration.FS, migration.Dir)
	})

	if migrateErr != nil {
		t.Fatalf("dbpkg.Migrate failed. err: %v", migrateErr)
	}

	return db
}

// Flush removes every user owned row. The seeded catalog is kept.
func Flush(t *testing.T, db *sql.DB) {
	t.Helper()

	const truncateQuery = `TRUNCATE TABLE transactions, balances, invoice_sequences, users CASCADE`

	if _, err := db.Exec(truncateQuery); err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}

	// services created by helpers.SeedService
	if _, err := db.Exec(`DELETE FROM services WHERE service_code LIKE 'T\_%'`); err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}
}

// SetupDB sets up connection with a migrated database for testing and then cleans it.
func SetupDB(t *testing.T) *sql.DB {
	t.Helper()

	db := open(t)

	t.Cleanup(func() {
		Flush(t, db)

		if err := db.Close(); err != nil {
			t.Fatalf("db cleanup failed. err: %v", err)
		}
	})

	return db
}

// SetupTX sets up a database transaction to be used in tests.
//
// Once the tests are done it will rollback the transaction.
func SetupTX(t *testing.T) *sql.Tx {
	t.Helper()

	db := open(t)

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("db.Begin() failed: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Fatalf("tx.Rollback() failed: %v", err)
		}
		if err := db.Close(); err != nil {
			t.Fatalf("db.Close() failed: %v", err)
		}
	})

	return tx
}
