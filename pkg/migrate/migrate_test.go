package migrate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestEmbeddedMigrationsValidate(t *testing.T) {
	if err := ValidateEmbedded(); err != nil {
		t.Fatalf("embedded migrations invalid: %v", err)
	}
}

func TestListingsMigrationContainsSchema(t *testing.T) {
	data, err := embedded.ReadFile("migrations/postgres/20250301120000_create_listings_table.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	for _, sub := range []string{
		"CREATE TABLE IF NOT EXISTS listings",
		"images text[] NOT NULL",
		"CREATE INDEX IF NOT EXISTS listings_position_idx",
	} {
		if !strings.Contains(string(data), sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestRunUpOnSQLite(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := Run(ctx, sqlDB, DialectSQLite, "up"); err != nil {
		t.Fatalf("goose up: %v", err)
	}

	for _, table := range []string{"listings", "state_entries"} {
		if !conn.Migrator().HasTable(table) {
			t.Fatalf("expected table %s after migration", table)
		}
	}

	version, err := CurrentVersion(ctx, sqlDB, DialectSQLite)
	if err != nil {
		t.Fatalf("current version: %v", err)
	}
	if version != 20250301120500 {
		t.Fatalf("unexpected version %d", version)
	}

	if err := MigrateToVersion(ctx, sqlDB, DialectSQLite, "20250301120000"); err != nil {
		t.Fatalf("migrate down: %v", err)
	}
	if conn.Migrator().HasTable("state_entries") {
		t.Fatal("expected state_entries to be dropped")
	}
}

func TestRunRejectsUnknownDialect(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := conn.DB()
	if err := Run(context.Background(), sqlDB, "mysql", "up"); err == nil {
		t.Fatal("expected dialect error")
	}
}

func TestCreateSQLMigrationWritesEveryDialect(t *testing.T) {
	root := t.TempDir()
	paths, err := CreateSQLMigration(root, "Add Listing Tags")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 files, got %d", len(paths))
	}
	for _, p := range paths {
		if !strings.HasSuffix(p, "_add_listing_tags.sql") {
			t.Fatalf("unexpected filename %s", p)
		}
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("stat %s: %v", p, err)
		}
	}
	if err := ValidateDir(root); err != nil {
		t.Fatalf("validate created tree: %v", err)
	}
}

func TestValidateDirDetectsDialectDrift(t *testing.T) {
	root := t.TempDir()
	if _, err := CreateSQLMigration(root, "first"); err != nil {
		t.Fatalf("create: %v", err)
	}
	extra := filepath.Join(root, "postgres", "20990101000000_only_pg.sql")
	if err := os.WriteFile(extra, []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ValidateDir(root); err == nil {
		t.Fatal("expected drift error")
	}
}
