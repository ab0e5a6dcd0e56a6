package xmladapters

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/aarondl/null/v8"
	boilertypes "github.com/aarondl/sqlboiler/v4/types"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type Options struct {
	Introspector                   Introspector // property metadata source; defaults to Pair(JSONIntrospector, XMLIntrospector)
	Logger                         *zap.Logger  // debug logging of registrations and binder resolution; defaults to a no-op logger
	StrictAdapterTypes             bool         // when true, reject adapters whose value type is UnknownType at registration
	DisallowUnknownFields          bool         // when true, properties matching no field are an error (unless collected in AdditionalData)
	CaseInsensitiveProperties      bool         // when true, properties match field names case-insensitively
	WrapRootValue                  bool         // when true, documents are wrapped in an object keyed by the root name
	DisableMarshalAdditionalData   bool         // when true, AdditionalData is not merged into written documents
	DisableUnmarshalAdditionalData bool         // when true, unmatched properties are not collected into AdditionalData
}

type Option func(*Options)

func WithIntrospector(i Introspector) Option { return func(o *Options) { o.Introspector = i } }
func WithLogger(l *zap.Logger) Option        { return func(o *Options) { o.Logger = l } }
func WithStrictAdapterTypes(v bool) Option   { return func(o *Options) { o.StrictAdapterTypes = v } }
func WithDisallowUnknownFields(v bool) Option {
	return func(o *Options) { o.DisallowUnknownFields = v }
}
func WithCaseInsensitiveProperties(v bool) Option {
	return func(o *Options) { o.CaseInsensitiveProperties = v }
}
func WithWrapRootValue(v bool) Option { return func(o *Options) { o.WrapRootValue = v } }
func WithDisableMarshalAdditionalData(v bool) Option {
	return func(o *Options) { o.DisableMarshalAdditionalData = v }
}
func WithDisableUnmarshalAdditionalData(v bool) Option {
	return func(o *Options) { o.DisableUnmarshalAdditionalData = v }
}

// Mapper reads and writes JSON documents, naming properties from struct tags
// and routing values through registered adapters.
// See doc.go for precedence rules.
type Mapper struct {
	registry      atomic.Value // holds *binderRegistry
	regMu         sync.Mutex
	binderCache   sync.Map // map[reflect.Type]ValueBinder
	metadataCache sync.Map // map[reflect.Type]*structMetadata
	options       Options
	log           *zap.Logger
}

// New creates a Mapper with default options.
func New() *Mapper { return NewWithOptions() }

// NewWithOptions creates a Mapper with the provided options.
func NewWithOptions(opts ...Option) *Mapper {
	o := Options{}
	for _, f := range opts {
		f(&o)
	}
	if o.Introspector == nil {
		o.Introspector = DefaultIntrospector()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	m := &Mapper{options: o, log: o.Logger}
	m.registry.Store(newBinderRegistry())
	return m
}

// Options returns a copy of the Mapper's options.
func (m *Mapper) Options() Options { return m.options }

// WarmMetadata pre-builds metadata for example values (T or *T).
func (m *Mapper) WarmMetadata(examples ...any) {
	for _, e := range examples {
		if e == nil {
			continue
		}
		t := baseType(e)
		if t.Kind() != reflect.Struct {
			continue
		}
		_ = m.getOrBuildMetadata(t)
	}
}

// RootName is the wrapper name used for v's type: the introspector's root
// name, or the Go type name.
func (m *Mapper) RootName(v any) string {
	t := baseType(v)
	if t == nil {
		return ""
	}
	if name := m.options.Introspector.FindRootName(t); name != "" {
		return name
	}
	return t.Name()
}

// ReadValue binds the JSON document in data into v, which must be a non-nil pointer.
func (m *Mapper) ReadValue(data []byte, v any) error {
	return m.Decode(json.NewDecoder(bytes.NewReader(data)), v)
}

// Decode binds the next JSON value from dec into v, which must be a non-nil pointer.
func (m *Mapper) Decode(dec *json.Decoder, v any) error {
	if v == nil {
		return ErrNilTarget
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return ErrNotPointer
	}
	target := rv.Elem()
	if m.options.WrapRootValue {
		inner, err := m.unwrapRoot(dec, target.Type())
		if err != nil {
			return err
		}
		dec = rawDecoder(inner)
	}
	return m.decodeInto(dec, target)
}

func (m *Mapper) decodeInto(dec *json.Decoder, target reflect.Value) error {
	out, err := bindValue(dec, m.newContext(), target.Type(), nil)
	if err != nil {
		return err
	}
	return assign(target, out, target.Type())
}

func (m *Mapper) unwrapRoot(dec *json.Decoder, t reflect.Type) (json.RawMessage, error) {
	var wrapper map[string]json.RawMessage
	if err := dec.Decode(&wrapper); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRootName, err)
	}
	want := m.RootName(t)
	inner, ok := wrapper[want]
	if !ok || len(wrapper) != 1 {
		keys := make([]string, 0, len(wrapper))
		for k := range wrapper {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%w: expected single property %q, got %v", ErrRootName, want, keys)
	}
	return inner, nil
}

// bindStruct fills out (a settable struct value) from the JSON object in raw.
func (m *Mapper) bindStruct(raw []byte, ctx BindingContext, out reflect.Value) error {
	t := out.Type()
	var props map[string]json.RawMessage
	if err := json.Unmarshal(raw, &props); err != nil {
		return &MappingError{Type: t, Msg: fmt.Sprintf("Cannot bind value of type %s from non-object", t), Err: err}
	}
	meta := m.getOrBuildMetadata(t)
	for key, val := range props {
		fi := m.lookupField(meta, key)
		if fi == nil {
			continue
		}
		if key != fi.name {
			// an exact match wins over a case-insensitive one
			if _, exact := props[fi.name]; exact {
				continue
			}
		}
		prop := &Property{Name: fi.name, Owner: t, Field: fi.field}
		v, err := bindValue(rawDecoder(val), ctx, fi.typ, prop)
		if err != nil {
			return withProperty(err, key)
		}
		if err := assign(fieldForRead(out, fi.index), v, fi.typ); err != nil {
			return withProperty(err, key)
		}
	}
	return m.handleUnknown(props, meta, out)
}

func (m *Mapper) handleUnknown(props map[string]json.RawMessage, meta *structMetadata, out reflect.Value) error {
	unknown := make(map[string]json.RawMessage)
	for key, val := range props {
		if m.lookupField(meta, key) == nil {
			unknown[key] = val
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	if meta.additionalData != nil && !m.options.DisableUnmarshalAdditionalData {
		return setAdditionalData(fieldForRead(out, meta.additionalData.index), unknown)
	}
	if m.options.DisallowUnknownFields {
		keys := make([]string, 0, len(unknown))
		for k := range unknown {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return &MappingError{Type: out.Type(), Msg: fmt.Sprintf("Unrecognized properties %v for type %s", keys, out.Type()), Err: ErrUnknownProperty}
	}
	return nil
}

func setAdditionalData(dst reflect.Value, unknown map[string]json.RawMessage) error {
	switch dst.Type() {
	case genericMapType:
		generic := make(map[string]any, len(unknown))
		for k, raw := range unknown {
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			generic[k] = v
		}
		dst.Set(reflect.ValueOf(generic))
		return nil
	}
	data, err := json.Marshal(unknown)
	if err != nil {
		return err
	}
	switch dst.Type() {
	case nullJSONType:
		dst.Set(reflect.ValueOf(null.JSONFrom(data)))
	case boilerJSONType:
		dst.Set(reflect.ValueOf(boilertypes.JSON(data)))
	}
	return nil
}

func readAdditionalData(src reflect.Value) (map[string]any, error) {
	var data []byte
	switch v := src.Interface().(type) {
	case map[string]any:
		return v, nil
	case null.JSON:
		if !v.Valid {
			return nil, nil
		}
		data = v.JSON
	case boilertypes.JSON:
		data = []byte(v)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%s: AdditionalData: %w", Namespace, err)
	}
	return out, nil
}

// WriteValue serializes v to JSON using the Mapper's property naming and
// marshal-capable adapters.
func (m *Mapper) WriteValue(v any) ([]byte, error) {
	out, err := m.toPlain(reflect.ValueOf(v), m.loadRegistry(), nil)
	if err != nil {
		return nil, err
	}
	if m.options.WrapRootValue {
		out = map[string]any{m.RootName(v): out}
	}
	return json.Marshal(out)
}

// WriteMap returns the property map v (a struct or pointer to struct) would be written as.
func (m *Mapper) WriteMap(v any) (map[string]any, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}
	return m.structToMap(rv, m.loadRegistry())
}

func (m *Mapper) structToMap(rv reflect.Value, reg *binderRegistry) (map[string]any, error) {
	t := rv.Type()
	meta := m.getOrBuildMetadata(t)
	out := make(map[string]any, len(meta.fields))
	for i := range meta.fields {
		fi := &meta.fields[i]
		if cur, ok := meta.byName[fi.name]; ok && cur != fi {
			continue
		}
		fv, ok := fieldForWrite(rv, fi.index)
		if !ok {
			continue
		}
		if fi.omitEmpty && fv.IsZero() {
			continue
		}
		prop := &Property{Name: fi.name, Owner: t, Field: fi.field}
		pv, err := m.toPlain(fv, reg, prop)
		if err != nil {
			return nil, withProperty(err, fi.name)
		}
		out[fi.name] = pv
	}
	if meta.additionalData != nil && !m.options.DisableMarshalAdditionalData {
		if ad, ok := fieldForWrite(rv, meta.additionalData.index); ok {
			extra, err := readAdditionalData(ad)
			if err != nil {
				return nil, err
			}
			for k, v := range extra {
				if _, taken := out[k]; !taken {
					out[k] = v
				}
			}
		}
	}
	return out, nil
}

// marshalAdapter finds an adapter able to marshal values of prop / t.
func (m *Mapper) marshalAdapter(t reflect.Type, reg *binderRegistry, prop *Property) *AdapterBinder {
	var vb ValueBinder
	if prop != nil {
		vb = reg.byField[prop.Owner][prop.Field.Name]
		if vb == nil {
			if name := m.options.Introspector.FindAdapterName(prop.Field); name != "" {
				vb = reg.byName[name]
			}
		}
	}
	if vb == nil {
		vb = reg.byType[t]
	}
	if ab, ok := vb.(*AdapterBinder); ok && ab.CanMarshal() {
		return ab
	}
	return nil
}

// toPlain converts rv into values goccy/go-json can write directly.
func (m *Mapper) toPlain(rv reflect.Value, reg *binderRegistry, prop *Property) (any, error) {
	if !rv.IsValid() {
		return nil, nil
	}
	if ab := m.marshalAdapter(rv.Type(), reg, prop); ab != nil {
		return ab.MarshalValue(rv.Interface())
	}
	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		inner, err := m.toPlain(rv.Elem(), reg, nil)
		if err != nil {
			return nil, err
		}
		if ids, ok := reg.typed[rv.Type()].(TypeIDResolver); ok {
			return withTypeID(ids, rv.Elem().Type(), inner)
		}
		return inner, nil
	case reflect.Ptr:
		if rv.IsNil() {
			return nil, nil
		}
		return m.toPlain(rv.Elem(), reg, nil)
	case reflect.Struct:
		if selfEncoding(rv.Type()) {
			return rv.Interface(), nil
		}
		return m.structToMap(rv, reg)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 || selfEncoding(rv.Type()) {
			return rv.Interface(), nil
		}
		items := make([]any, rv.Len())
		for i := range items {
			item, err := m.toPlain(rv.Index(i), reg, nil)
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return items, nil
	case reflect.Map:
		if rv.IsNil() {
			return nil, nil
		}
		if selfEncoding(rv.Type()) {
			return rv.Interface(), nil
		}
		out := reflect.MakeMapWithSize(reflect.MapOf(rv.Type().Key(), genericMapType.Elem()), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			item, err := m.toPlain(iter.Value(), reg, nil)
			if err != nil {
				return nil, err
			}
			pv := reflect.New(genericMapType.Elem()).Elem()
			if item != nil {
				pv.Set(reflect.ValueOf(item))
			}
			out.SetMapIndex(iter.Key(), pv)
		}
		return out.Interface(), nil
	}
	if !rv.CanInterface() {
		return nil, errors.New(Namespace + ": unexported value")
	}
	return rv.Interface(), nil
}

var (
	jsonMarshalerType = reflect.TypeOf((*interface{ MarshalJSON() ([]byte, error) })(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*interface{ MarshalText() ([]byte, error) })(nil)).Elem()
)

func selfEncoding(t reflect.Type) bool {
	pt := reflect.PointerTo(t)
	return t.Implements(jsonMarshalerType) || pt.Implements(jsonMarshalerType) ||
		t.Implements(textMarshalerType) || pt.Implements(textMarshalerType)
}
