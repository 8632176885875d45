package test

import (
	"database/sql"
	"log"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Masterminds/squirrel"

	"tasktracker/internal/adapter/database/sqlite"
	"tasktracker/pkg"
)

type TestSetup[T any] struct {
	DB   *sql.DB
	Repo *T
}

// InitTestDB opens an in-memory database with the full schema applied.
func InitTestDB() *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")

	if err != nil {
		log.Fatal(err)
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON")

	if err != nil {
		log.Fatal(err)
	}

	migrationsPath := filepath.Join(pkg.FindProjectRoot(), "db", "migrations")
	sqlite.RunMigrations(db, migrationsPath)

	return db
}

// InitTestDatabase wraps InitTestDB with the query builder the
// repositories expect.
func InitTestDatabase() *sqlite.DB {
	queryBuilder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

	return &sqlite.DB{
		DB:           InitTestDB(),
		QueryBuilder: &queryBuilder,
	}
}

func SetupTest[T any](t *testing.T, repo *T) *TestSetup[T] {
	db := InitTestDB()

	return &TestSetup[T]{
		DB:   db,
		Repo: repo,
	}
}

func TeardownTest[T any](t *testing.T, setup *TestSetup[T]) {
	if setup.DB != nil {
		CleanDB(t, setup)
		setup.DB.Close()
	}
}

// CleanDB truncates every application table between tests.
func CleanDB[T any](t *testing.T, setup *TestSetup[T]) {
	rows, err := setup.DB.Query("SELECT name FROM sqlite_master WHERE type = 'table' and name not in ('sqlite_sequence', 'schema_migrations')")
	if err != nil {
		t.Fatalf("Failed to query tables: %v", err)
	}
	defer rows.Close()

	var tables []string

	for rows.Next() {
		var table string

		if err := rows.Scan(&table); err != nil {
			t.Fatalf("Failed to scan table name: %v", err)
		}

		tables = append(tables, strings.TrimSpace(table))
	}

	if err := rows.Err(); err != nil {
		t.Fatalf("Error iterating over rows: %v", err)
	}

	for _, table := range tables {
		if _, err := setup.DB.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}
