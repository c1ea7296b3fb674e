package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Primary keys default to gen_random_uuid() in Postgres; the hooks below keep
// inserts working on drivers without a server-side generator.

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (m *Tenant) BeforeCreate(*gorm.DB) error           { ensureID(&m.ID); return nil }
func (m *TenantMembership) BeforeCreate(*gorm.DB) error { ensureID(&m.ID); return nil }
func (m *Store) BeforeCreate(*gorm.DB) error            { ensureID(&m.ID); return nil }
func (m *StoreTheme) BeforeCreate(*gorm.DB) error       { ensureID(&m.ID); return nil }
func (m *StorePage) BeforeCreate(*gorm.DB) error        { ensureID(&m.ID); return nil }
func (m *StoreSettings) BeforeCreate(*gorm.DB) error    { ensureID(&m.ID); return nil }
func (m *Template) BeforeCreate(*gorm.DB) error         { ensureID(&m.ID); return nil }
func (m *Product) BeforeCreate(*gorm.DB) error          { ensureID(&m.ID); return nil }
func (m *ProductVariant) BeforeCreate(*gorm.DB) error   { ensureID(&m.ID); return nil }
func (m *InventoryItem) BeforeCreate(*gorm.DB) error    { ensureID(&m.ID); return nil }
func (m *Media) BeforeCreate(*gorm.DB) error            { ensureID(&m.ID); return nil }
func (m *ProductMedia) BeforeCreate(*gorm.DB) error     { ensureID(&m.ID); return nil }
func (m *OutboxEvent) BeforeCreate(*gorm.DB) error      { ensureID(&m.ID); return nil }
