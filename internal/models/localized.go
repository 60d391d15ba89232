package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// LocalizedText maps a locale code ("en", "ar") to translated text.
// Stored as JSONB.
type LocalizedText map[string]string

func (t LocalizedText) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

func (t *LocalizedText) Scan(src any) error {
	if src == nil {
		*t = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	}
	return errors.New("localized text: unsupported scan type")
}

// Get returns the text for locale, falling back to English.
func (t LocalizedText) Get(locale string) string {
	if s, ok := t[locale]; ok {
		return s
	}
	return t["en"]
}

// Attributes holds free-form variant attributes (size, color, ...).
// Stored as JSONB.
type Attributes map[string]any

func (a Attributes) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *Attributes) Scan(src any) error {
	if src == nil {
		*a = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	}
	return errors.New("attributes: unsupported scan type")
}
