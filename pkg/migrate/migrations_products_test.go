package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dukahq/duka-backend/pkg/migrate"
)

func TestProductsMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_products_table.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no product migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TYPE product_status AS ENUM",
		"CREATE TYPE product_source AS ENUM",
		"CREATE TYPE media_kind AS ENUM",
		"CREATE TABLE IF NOT EXISTS products",
		"CREATE TABLE IF NOT EXISTS product_variants",
		"CREATE TABLE IF NOT EXISTS inventory_items",
		"CREATE TABLE IF NOT EXISTS media",
		"CREATE TABLE IF NOT EXISTS product_media",
		"CREATE UNIQUE INDEX IF NOT EXISTS ux_products_store_slug",
		"CREATE UNIQUE INDEX IF NOT EXISTS ux_inventory_items_variant",
		"CREATE UNIQUE INDEX IF NOT EXISTS ux_product_media_product_position",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}
