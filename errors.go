package xmladapters

import (
	"errors"
	"fmt"
	"reflect"
)

const Namespace = "xmladapters"

// Sentinel errors. Use errors.Is to match.
var (
	ErrNilTarget        = errors.New(Namespace + ": target must not be nil")
	ErrNotPointer       = errors.New(Namespace + ": target must be a non-nil pointer")
	ErrNotStruct        = errors.New(Namespace + ": value must be a struct or pointer to struct")
	ErrNoValueBinder    = errors.New(Namespace + ": no value binder for type")
	ErrUnknownValueType = errors.New(Namespace + ": adapter value type cannot be determined")
	ErrNotAnAdapter     = errors.New(Namespace + ": value has no Unmarshal(V) (B, error) method")
	ErrUnknownProperty  = errors.New(Namespace + ": unknown property")
	ErrMissingTypeID    = errors.New(Namespace + ": missing type id")
	ErrUnknownTypeID    = errors.New(Namespace + ": unknown type id")
	ErrSelfAdapter      = errors.New(Namespace + ": adapter value type equals its bound type")
	ErrRootName         = errors.New(Namespace + ": root wrapper mismatch")
)

// MappingError reports that a materialized value could not be mapped onto its
// target type. It always carries the underlying cause.
type MappingError struct {
	Type     reflect.Type
	Property string
	Msg      string
	Err      error
}

func (e *MappingError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = fmt.Sprintf("Unable to unmarshal (to type %s)", typeName(e.Type))
	}
	if e.Property != "" {
		msg = fmt.Sprintf("%s (property %q)", msg, e.Property)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *MappingError) Unwrap() error { return e.Err }

// withProperty annotates a mapping error with the property being bound.
// Errors of any other kind pass through untouched.
func withProperty(err error, name string) error {
	if me, ok := err.(*MappingError); ok && me.Property == "" {
		cp := *me
		cp.Property = name
		return &cp
	}
	return err
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t == UnknownType {
		return "[unknown type]"
	}
	return t.String()
}
