package xmladapters

import (
	"bytes"
	"encoding"
	"fmt"
	"reflect"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	jsonUnmarshalerType = reflect.TypeOf((*interface{ UnmarshalJSON([]byte) error })(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	rawMessageType      = reflect.TypeOf(json.RawMessage{})
)

var nullLiteral = []byte("null")

// bindingContext is the BindingContext for one document. It reads a single
// registry snapshot so registrations during a read do not affect it.
type bindingContext struct {
	m   *Mapper
	reg *binderRegistry
}

func (m *Mapper) newContext() *bindingContext {
	return &bindingContext{m: m, reg: m.loadRegistry()}
}

// FindValueBinder resolves in order: field-scoped adapter, named adapter from
// the property's adapter tag, adapter registered for t, then a standard binder.
func (c *bindingContext) FindValueBinder(t reflect.Type, prop *Property) (ValueBinder, error) {
	if prop != nil {
		if b := c.reg.byField[prop.Owner][prop.Field.Name]; b != nil {
			return b, nil
		}
		if name := c.m.options.Introspector.FindAdapterName(prop.Field); name != "" {
			b := c.reg.byName[name]
			if b == nil {
				return nil, fmt.Errorf("%w %s: adapter %q is not registered", ErrNoValueBinder, t, name)
			}
			return b, nil
		}
	}
	if b := c.reg.byType[t]; b != nil {
		return b, nil
	}
	return c.m.standardBinder(t)
}

func (c *bindingContext) typeDeserializer(t reflect.Type) TypeDeserializer {
	return c.reg.typed[t]
}

// bindValue reads one value for type t, routing polymorphic types through
// their type deserializer.
func bindValue(dec *json.Decoder, ctx BindingContext, t reflect.Type, prop *Property) (any, error) {
	vb, err := ctx.FindValueBinder(t, prop)
	if err != nil {
		return nil, err
	}
	if tc, ok := ctx.(interface {
		typeDeserializer(reflect.Type) TypeDeserializer
	}); ok {
		if td := tc.typeDeserializer(t); td != nil {
			return vb.BindWithType(dec, ctx, td)
		}
	}
	return vb.Bind(dec, ctx)
}

// standardBinder returns the binder used when nothing is registered for t.
// These binders depend only on t, so they are cached per Mapper.
func (m *Mapper) standardBinder(t reflect.Type) (ValueBinder, error) {
	if cached, ok := m.binderCache.Load(t); ok {
		return cached.(ValueBinder), nil
	}
	var vb ValueBinder
	switch {
	case t.Kind() == reflect.Ptr:
		vb = &ptrBinder{typ: t}
	case t == rawMessageType, selfDecoding(t):
		db, err := newDecodeBinder(t)
		if err != nil {
			return nil, err
		}
		vb = db
	case t.Kind() == reflect.Slice && t.Elem().Kind() != reflect.Uint8:
		vb = &sliceBinder{typ: t}
	case t.Kind() == reflect.Map:
		vb = &mapBinder{typ: t}
	case t.Kind() == reflect.Struct:
		vb = &structBinder{m: m, typ: t}
	default:
		db, err := newDecodeBinder(t)
		if err != nil {
			return nil, err
		}
		vb = db
	}
	actual, loaded := m.binderCache.LoadOrStore(t, vb)
	if !loaded {
		m.log.Debug("resolved value binder", zap.Stringer("type", t), zap.String("binder", fmt.Sprintf("%T", vb)))
	}
	return actual.(ValueBinder), nil
}

func selfDecoding(t reflect.Type) bool {
	pt := reflect.PointerTo(t)
	return t.Implements(jsonUnmarshalerType) || pt.Implements(jsonUnmarshalerType) ||
		t.Implements(textUnmarshalerType) || pt.Implements(textUnmarshalerType)
}

func readRaw(dec *json.Decoder) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return bytes.TrimSpace(raw), nil
}

func rawDecoder(raw []byte) *json.Decoder {
	return json.NewDecoder(bytes.NewReader(raw))
}

// assign stores v into dst, converting where Go allows it.
func assign(dst reflect.Value, v any, t reflect.Type) error {
	if v == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.Type().AssignableTo(dst.Type()):
		dst.Set(rv)
	case rv.Type().ConvertibleTo(dst.Type()):
		dst.Set(rv.Convert(dst.Type()))
	default:
		return &MappingError{Type: t, Msg: fmt.Sprintf("Binder produced %s, expected %s", rv.Type(), dst.Type())}
	}
	return nil
}

// ptrBinder reads null as a nil pointer and anything else through the
// element type's binder.
type ptrBinder struct {
	typ reflect.Type
}

func (b *ptrBinder) HandledType() reflect.Type { return b.typ }

func (b *ptrBinder) Bind(dec *json.Decoder, ctx BindingContext) (any, error) {
	raw, err := readRaw(dec)
	if err != nil {
		return nil, err
	}
	if bytes.Equal(raw, nullLiteral) {
		return reflect.Zero(b.typ).Interface(), nil
	}
	v, err := bindValue(rawDecoder(raw), ctx, b.typ.Elem(), nil)
	if err != nil {
		return nil, err
	}
	out := reflect.New(b.typ.Elem())
	if err := assign(out.Elem(), v, b.typ.Elem()); err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

func (b *ptrBinder) BindWithType(dec *json.Decoder, ctx BindingContext, td TypeDeserializer) (any, error) {
	return td.DeserializeTypedFromAny(dec, ctx)
}

// sliceBinder binds each element through the element type's binder, so
// adapters registered for the element type apply.
type sliceBinder struct {
	typ reflect.Type
}

func (b *sliceBinder) HandledType() reflect.Type { return b.typ }

func (b *sliceBinder) Bind(dec *json.Decoder, ctx BindingContext) (any, error) {
	raw, err := readRaw(dec)
	if err != nil {
		return nil, err
	}
	if bytes.Equal(raw, nullLiteral) {
		return reflect.Zero(b.typ).Interface(), nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &MappingError{Type: b.typ, Msg: fmt.Sprintf("Cannot bind value of type %s", b.typ), Err: err}
	}
	out := reflect.MakeSlice(b.typ, len(items), len(items))
	for i, item := range items {
		v, err := bindValue(rawDecoder(item), ctx, b.typ.Elem(), nil)
		if err != nil {
			return nil, err
		}
		if err := assign(out.Index(i), v, b.typ.Elem()); err != nil {
			return nil, err
		}
	}
	return out.Interface(), nil
}

func (b *sliceBinder) BindWithType(dec *json.Decoder, ctx BindingContext, td TypeDeserializer) (any, error) {
	return td.DeserializeTypedFromAny(dec, ctx)
}

// mapBinder binds each value through the value type's binder. Keys are
// decoded by goccy/go-json.
type mapBinder struct {
	typ reflect.Type
}

func (b *mapBinder) HandledType() reflect.Type { return b.typ }

func (b *mapBinder) Bind(dec *json.Decoder, ctx BindingContext) (any, error) {
	raw, err := readRaw(dec)
	if err != nil {
		return nil, err
	}
	if bytes.Equal(raw, nullLiteral) {
		return reflect.Zero(b.typ).Interface(), nil
	}
	items := reflect.New(reflect.MapOf(b.typ.Key(), rawMessageType))
	if err := json.Unmarshal(raw, items.Interface()); err != nil {
		return nil, &MappingError{Type: b.typ, Msg: fmt.Sprintf("Cannot bind value of type %s", b.typ), Err: err}
	}
	out := reflect.MakeMapWithSize(b.typ, items.Elem().Len())
	iter := items.Elem().MapRange()
	for iter.Next() {
		v, err := bindValue(rawDecoder(iter.Value().Bytes()), ctx, b.typ.Elem(), nil)
		if err != nil {
			return nil, err
		}
		elem := reflect.New(b.typ.Elem()).Elem()
		if err := assign(elem, v, b.typ.Elem()); err != nil {
			return nil, err
		}
		out.SetMapIndex(iter.Key(), elem)
	}
	return out.Interface(), nil
}

func (b *mapBinder) BindWithType(dec *json.Decoder, ctx BindingContext, td TypeDeserializer) (any, error) {
	return td.DeserializeTypedFromAny(dec, ctx)
}

// structBinder routes each property of a struct to its own binder.
type structBinder struct {
	m   *Mapper
	typ reflect.Type
}

func (b *structBinder) HandledType() reflect.Type { return b.typ }

func (b *structBinder) Bind(dec *json.Decoder, ctx BindingContext) (any, error) {
	raw, err := readRaw(dec)
	if err != nil {
		return nil, err
	}
	out := reflect.New(b.typ).Elem()
	if bytes.Equal(raw, nullLiteral) {
		return out.Interface(), nil
	}
	if err := b.m.bindStruct(raw, ctx, out); err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

func (b *structBinder) BindWithType(dec *json.Decoder, ctx BindingContext, td TypeDeserializer) (any, error) {
	return td.DeserializeTypedFromAny(dec, ctx)
}
