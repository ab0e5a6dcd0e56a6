package common

import (
	"strings"

	"github.com/aarondl/null/v8"
)

// NullStringAdapter binds a string to a null.String. Empty and blank strings
// become an invalid (null) value.
type NullStringAdapter struct{}

func (NullStringAdapter) Unmarshal(v string) (null.String, error) {
	if strings.TrimSpace(v) == "" {
		return null.String{}, nil
	}
	return null.StringFrom(v), nil
}

func (NullStringAdapter) Marshal(b null.String) (string, error) {
	if !b.Valid {
		return "", nil
	}
	return b.String, nil
}
