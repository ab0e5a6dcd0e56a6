package common

import (
	"github.com/aarondl/null/v8"
)

// NullBoolAdapter binds a JSON boolean to a valid null.Bool. A JSON null
// arrives as a nil *bool and yields an invalid null.Bool.
type NullBoolAdapter struct{}

func (NullBoolAdapter) Unmarshal(v *bool) (null.Bool, error) {
	return null.BoolFromPtr(v), nil
}

func (NullBoolAdapter) Marshal(b null.Bool) (*bool, error) {
	return b.Ptr(), nil
}
