package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PuckDocument is the opaque structured-content document edited by the page
// builder. The backend treats it as a unit; only the skeleton shape matters.
type PuckDocument struct {
	Content []json.RawMessage          `json:"content"`
	Root    PuckRoot                   `json:"root"`
	Zones   map[string]json.RawMessage `json:"zones"`
}

// PuckRoot carries the document-level props.
type PuckRoot struct {
	Props map[string]any `json:"props"`
}

// EmptyPuckDocument returns the skeleton assigned to new pages when no
// template content applies.
func EmptyPuckDocument() PuckDocument {
	return PuckDocument{
		Content: []json.RawMessage{},
		Root:    PuckRoot{Props: map[string]any{}},
		Zones:   map[string]json.RawMessage{},
	}
}

// IsZero reports whether the document has never been populated.
func (p PuckDocument) IsZero() bool {
	return len(p.Content) == 0 && len(p.Zones) == 0 && len(p.Root.Props) == 0
}

// Value implements driver.Valuer.
func (p PuckDocument) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner.
func (p *PuckDocument) Scan(value any) error {
	if value == nil {
		*p = EmptyPuckDocument()
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported puck document type %T", value)
	}
}
