package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStoresMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_stores_table.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no stores migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TYPE store_status AS ENUM",
		"CREATE TYPE currency AS ENUM",
		"CREATE TYPE page_type AS ENUM",
		"CREATE TABLE IF NOT EXISTS stores",
		"CREATE TABLE IF NOT EXISTS store_themes",
		"CREATE TABLE IF NOT EXISTS store_pages",
		"CREATE TABLE IF NOT EXISTS store_settings",
		"CREATE UNIQUE INDEX IF NOT EXISTS ux_stores_slug",
		"CREATE UNIQUE INDEX IF NOT EXISTS ux_store_themes_store",
		"CREATE UNIQUE INDEX IF NOT EXISTS ux_store_pages_store_slug",
		"CREATE UNIQUE INDEX IF NOT EXISTS ux_store_settings_store",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestTemplatesMigrationSeedsDefaultTemplate(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_templates_table.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no templates migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS templates",
		"CREATE UNIQUE INDEX IF NOT EXISTS ux_templates_slug",
		"INSERT INTO templates",
		"'default'",
		"--font-size-base",
		"--container-width",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
