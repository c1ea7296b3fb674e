package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// CSSVariables maps CSS custom-property names to string values. Stored as jsonb.
type CSSVariables map[string]string

// Value implements driver.Valuer.
func (c CSSVariables) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner.
func (c *CSSVariables) Scan(value any) error {
	if value == nil {
		*c = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("unsupported css variables type %T", value)
	}
}

// Clone returns a copy so callers can mutate without aliasing the stored map.
func (c CSSVariables) Clone() CSSVariables {
	if c == nil {
		return nil
	}
	out := make(CSSVariables, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Merge overlays each layer in order, later layers winning per key.
func (c CSSVariables) Merge(layers ...CSSVariables) CSSVariables {
	out := c.Clone()
	if out == nil {
		out = CSSVariables{}
	}
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = v
		}
	}
	return out
}
