package xmladapters

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/goccy/go-json"
)

// UnknownType marks a value type that could not be determined. Binders
// resolved for it materialize generic JSON values (map[string]any, []any,
// string, float64, bool or nil).
var UnknownType = reflect.TypeOf((*any)(nil)).Elem()

// ValueBinder turns a decoder positioned at the start of a JSON value into a
// materialized Go value. Bind must consume exactly one JSON value.
type ValueBinder interface {
	// HandledType is the type of the values Bind produces.
	HandledType() reflect.Type
	Bind(dec *json.Decoder, ctx BindingContext) (any, error)
	// BindWithType is used when the value may carry an embedded type id.
	BindWithType(dec *json.Decoder, ctx BindingContext, td TypeDeserializer) (any, error)
}

// BindingContext resolves value binders while a single document is processed.
type BindingContext interface {
	// FindValueBinder returns the binder for t. prop, when non-nil, scopes the
	// lookup to a struct property so property-level overrides apply.
	FindValueBinder(t reflect.Type, prop *Property) (ValueBinder, error)
}

// Property describes the struct field a value is being bound to.
type Property struct {
	Name  string
	Owner reflect.Type
	Field reflect.StructField
}

// decodeBinder is the fallback binder: it hands the value to goccy/go-json.
type decodeBinder struct {
	typ reflect.Type
}

func newDecodeBinder(t reflect.Type) (*decodeBinder, error) {
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Invalid:
		return nil, fmt.Errorf("%w %s", ErrNoValueBinder, t)
	}
	return &decodeBinder{typ: t}, nil
}

func (b *decodeBinder) HandledType() reflect.Type { return b.typ }

func (b *decodeBinder) Bind(dec *json.Decoder, _ BindingContext) (any, error) {
	ptr := reflect.New(b.typ)
	if err := dec.Decode(ptr.Interface()); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, err
		}
		return nil, &MappingError{Type: b.typ, Msg: fmt.Sprintf("Cannot bind value of type %s", typeName(b.typ)), Err: err}
	}
	return ptr.Elem().Interface(), nil
}

func (b *decodeBinder) BindWithType(dec *json.Decoder, ctx BindingContext, td TypeDeserializer) (any, error) {
	return td.DeserializeTypedFromAny(dec, ctx)
}

// BinderFunc adapts a plain decode function into a ValueBinder for type T.
type BinderFunc[T any] func(dec *json.Decoder, ctx BindingContext) (T, error)

func (f BinderFunc[T]) HandledType() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

func (f BinderFunc[T]) Bind(dec *json.Decoder, ctx BindingContext) (any, error) {
	v, err := f(dec, ctx)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (f BinderFunc[T]) BindWithType(dec *json.Decoder, ctx BindingContext, td TypeDeserializer) (any, error) {
	return td.DeserializeTypedFromAny(dec, ctx)
}
