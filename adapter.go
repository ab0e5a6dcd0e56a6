package xmladapters

import (
	"bytes"
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/goccy/go-json"
)

// Unmarshaler converts a bound value of type V into the domain type B.
// It is the unmarshal half of an XML adapter.
type Unmarshaler[V, B any] interface {
	Unmarshal(v V) (B, error)
}

// XMLAdapter is a two-way adapter between a value type V, the shape found in
// the document, and a bound domain type B.
type XMLAdapter[V, B any] interface {
	Unmarshaler[V, B]
	Marshal(b B) (V, error)
}

// AdapterFunc is a one-directional adapter built from a function.
type AdapterFunc[V, B any] func(v V) (B, error)

func (f AdapterFunc[V, B]) Unmarshal(v V) (B, error) { return f(v) }

var errorType = reflect.TypeOf((*error)(nil)).Elem()

type binderCell struct{ ValueBinder }

// AdapterBinder presents an XML adapter as a ValueBinder. The adapter's value
// type is bound from the document first, then handed to the adapter.
//
// The binder for the value type is resolved from the BindingContext on first
// use and cached for the lifetime of the AdapterBinder. Concurrent first uses
// may each resolve a binder; the last store wins and all of them are
// equivalent.
type AdapterBinder struct {
	valueType reflect.Type
	boundType reflect.Type
	unmarshal func(any) (any, error)
	marshal   func(any) (any, error)
	binder    atomic.Pointer[binderCell]
}

// NewAdapterBinder wraps a statically typed adapter. The value type is taken
// from V. If u also implements XMLAdapter[V, B] the binder can marshal too.
func NewAdapterBinder[V, B any](u Unmarshaler[V, B]) *AdapterBinder {
	ab := &AdapterBinder{
		valueType: reflect.TypeOf((*V)(nil)).Elem(),
		boundType: reflect.TypeOf((*B)(nil)).Elem(),
	}
	ab.unmarshal = func(v any) (any, error) {
		var in V
		if v != nil {
			typed, ok := v.(V)
			if !ok {
				return nil, fmt.Errorf("adapter expects %s, got %T", ab.valueType, v)
			}
			in = typed
		}
		return u.Unmarshal(in)
	}
	if m, ok := u.(XMLAdapter[V, B]); ok {
		ab.marshal = func(b any) (any, error) {
			var in B
			if b != nil {
				typed, ok := b.(B)
				if !ok {
					return nil, fmt.Errorf("adapter expects %s, got %T", ab.boundType, b)
				}
				in = typed
			}
			return m.Marshal(in)
		}
	}
	return ab
}

// NewAdapterBinderFor wraps an adapter whose types are only known at runtime.
// The value type is the parameter type of its Unmarshal method; an empty
// interface parameter yields UnknownType. It fails only when adapter has no
// method of the form Unmarshal(V) (B, error).
func NewAdapterBinderFor(adapter any) (*AdapterBinder, error) {
	if adapter == nil {
		return nil, ErrNotAnAdapter
	}
	rv := reflect.ValueOf(adapter)
	um, ok := adapterMethod(rv, "Unmarshal")
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotAnAdapter, adapter)
	}
	ab := &AdapterBinder{
		valueType: erasedOrType(um.Type().In(0)),
		boundType: erasedOrType(um.Type().Out(0)),
		unmarshal: reflectCall(um),
	}
	if mm, ok := adapterMethod(rv, "Marshal"); ok {
		ab.marshal = reflectCall(mm)
	}
	return ab, nil
}

func adapterMethod(rv reflect.Value, name string) (reflect.Value, bool) {
	m := rv.MethodByName(name)
	if !m.IsValid() {
		return reflect.Value{}, false
	}
	mt := m.Type()
	if mt.NumIn() != 1 || mt.NumOut() != 2 || mt.IsVariadic() || mt.Out(1) != errorType {
		return reflect.Value{}, false
	}
	return m, true
}

func erasedOrType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Interface && t.NumMethod() == 0 {
		return UnknownType
	}
	return t
}

func reflectCall(m reflect.Value) func(any) (any, error) {
	in := m.Type().In(0)
	return func(v any) (any, error) {
		arg := reflect.Zero(in)
		if v != nil {
			av := reflect.ValueOf(v)
			switch {
			case av.Type().AssignableTo(in):
				arg = av
			case av.Type().ConvertibleTo(in):
				arg = av.Convert(in)
			default:
				return nil, fmt.Errorf("adapter expects %s, got %T", in, v)
			}
		}
		out := m.Call([]reflect.Value{arg})
		if errV := out[1]; !errV.IsNil() {
			return nil, errV.Interface().(error)
		}
		return out[0].Interface(), nil
	}
}

// ValueType is the type bound from the document before the adapter runs.
func (a *AdapterBinder) ValueType() reflect.Type { return a.valueType }

// HandledType is the type the adapter produces.
func (a *AdapterBinder) HandledType() reflect.Type { return a.boundType }

// Resolved reports whether the value binder has been resolved and cached.
func (a *AdapterBinder) Resolved() bool { return a.binder.Load() != nil }

// Bind materializes the value type from dec and converts it with the adapter.
// Adapter failures are returned as *MappingError; a failure to resolve the
// value binder is returned as-is.
//
// A JSON null yields the zero bound value without calling the adapter, unless
// the value type is a pointer: such adapters receive nil.
func (a *AdapterBinder) Bind(dec *json.Decoder, ctx BindingContext) (any, error) {
	cell := a.binder.Load()
	if cell == nil {
		vb, err := ctx.FindValueBinder(a.valueType, nil)
		if err != nil {
			return nil, err
		}
		cell = &binderCell{vb}
		a.binder.Store(cell)
	}
	raw, err := readRaw(dec)
	if err != nil {
		return nil, err
	}
	if bytes.Equal(raw, nullLiteral) && a.valueType.Kind() != reflect.Ptr {
		return reflect.Zero(a.boundType).Interface(), nil
	}
	bound, err := cell.Bind(rawDecoder(raw), ctx)
	if err != nil {
		return nil, err
	}
	out, err := a.unmarshal(bound)
	if err != nil {
		return nil, &MappingError{Type: a.valueType, Err: err}
	}
	return out, nil
}

// BindWithType handles values carrying a type id. The token shape is not known
// up front, so the whole value goes to td.
func (a *AdapterBinder) BindWithType(dec *json.Decoder, ctx BindingContext, td TypeDeserializer) (any, error) {
	return td.DeserializeTypedFromAny(dec, ctx)
}

// CanMarshal reports whether the wrapped adapter has a Marshal method.
func (a *AdapterBinder) CanMarshal() bool { return a.marshal != nil }

// MarshalValue converts a bound value back into the adapter's value type.
func (a *AdapterBinder) MarshalValue(b any) (any, error) {
	if a.marshal == nil {
		return nil, fmt.Errorf("%s: adapter for %s cannot marshal", Namespace, typeName(a.boundType))
	}
	out, err := a.marshal(b)
	if err != nil {
		return nil, &MappingError{Type: a.boundType, Msg: fmt.Sprintf("Unable to marshal (from type %s)", typeName(a.boundType)), Err: err}
	}
	return out, nil
}
