package models

import (
	"encoding/json"
	"fmt"
)

// ToMap converts a record to the generic form sent to the API.
func ToMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %T: %w", v, err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("failed to decode %T: %w", v, err)
	}
	return m, nil
}

// FromMap decodes a generic object into the typed record out points to.
func FromMap(m map[string]any, out any) error {
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode object: %w", err)
	}
	return json.Unmarshal(b, out)
}
