// Package dbtest opens throwaway sqlite databases mirroring the production
// schema so repository and service tests can run without Postgres.
package dbtest

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dukahq/duka-backend/pkg/db"
)

var schemaStatements = []string{
	`CREATE TABLE tenants (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  status TEXT NOT NULL DEFAULT 'active',
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE tenant_memberships (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  role TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (tenant_id, user_id)
);`,
	`CREATE TABLE templates (
  id TEXT PRIMARY KEY,
  slug TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  default_css_variables TEXT,
  default_home_page TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE stores (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  status TEXT NOT NULL DEFAULT 'draft',
  description TEXT,
  logo_url TEXT,
  currency TEXT NOT NULL DEFAULT 'KES',
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE store_themes (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL UNIQUE,
  template_id TEXT,
  css_variables TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE store_pages (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  slug TEXT NOT NULL,
  title TEXT NOT NULL,
  type TEXT NOT NULL,
  is_system INTEGER NOT NULL DEFAULT 0,
  puck_data TEXT NOT NULL,
  is_published INTEGER NOT NULL DEFAULT 0,
  published_puck_data TEXT,
  published_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (store_id, slug)
);`,
	`CREATE TABLE store_settings (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL UNIQUE,
  contact_email TEXT,
  support_phone TEXT,
  checkout_message TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE products (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  title TEXT NOT NULL,
  slug TEXT NOT NULL,
  description TEXT,
  status TEXT NOT NULL DEFAULT 'active',
  source TEXT NOT NULL DEFAULT 'manual',
  tags TEXT,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (store_id, slug)
);`,
	`CREATE TABLE product_variants (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  title TEXT NOT NULL,
  sku TEXT,
  price NUMERIC NOT NULL,
  currency TEXT NOT NULL DEFAULT 'KES',
  options TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE inventory_items (
  id TEXT PRIMARY KEY,
  variant_id TEXT NOT NULL UNIQUE,
  available_qty INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE media (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  kind TEXT NOT NULL,
  url TEXT NOT NULL,
  content_type TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE product_media (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  media_id TEXT NOT NULL,
  position INTEGER NOT NULL DEFAULT 0,
  is_featured INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  UNIQUE (product_id, position)
);`,
	`CREATE TABLE outbox_events (
  id TEXT PRIMARY KEY,
  event_type TEXT NOT NULL,
  aggregate_type TEXT NOT NULL,
  aggregate_id TEXT NOT NULL,
  payload TEXT NOT NULL,
  created_at DATETIME,
  published_at DATETIME,
  attempt_count INTEGER NOT NULL DEFAULT 0,
  last_error TEXT
);`,
}

// Open returns a db.Client backed by an in-memory sqlite database with the
// full schema applied. Each test gets its own database.
func Open(t *testing.T) *db.Client {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	// sqlite allows one writer at a time; a single connection serializes
	// concurrent service code instead of surfacing lock errors.
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range schemaStatements {
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to apply schema: %v", err)
		}
	}

	return db.FromConn(conn)
}
