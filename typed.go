package xmladapters

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"

	"github.com/goccy/go-json"
)

// DefaultTypeProperty is the object property carrying the type id.
const DefaultTypeProperty = "@type"

// TypeDeserializer resolves values that carry an embedded type id.
type TypeDeserializer interface {
	// DeserializeTypedFromAny reads one value of any shape (object, array or
	// scalar) and binds it to the type its id names.
	DeserializeTypedFromAny(dec *json.Decoder, ctx BindingContext) (any, error)
}

// PropertyTypeDeserializer reads type ids from a property of a JSON object,
// and also accepts the wrapper-array form ["id", value]. Scalars carry no id
// and are bound to DefaultImpl when one is set. A JSON null yields nil.
type PropertyTypeDeserializer struct {
	Property    string
	DefaultImpl reflect.Type
	types       map[string]reflect.Type
}

// NewPropertyTypeDeserializer creates a deserializer using the given type id
// property; an empty name means DefaultTypeProperty.
func NewPropertyTypeDeserializer(property string) *PropertyTypeDeserializer {
	if property == "" {
		property = DefaultTypeProperty
	}
	return &PropertyTypeDeserializer{Property: property, types: make(map[string]reflect.Type)}
}

// RegisterSubtype maps a type id to the type of example (value or pointer).
func (p *PropertyTypeDeserializer) RegisterSubtype(id string, example any) *PropertyTypeDeserializer {
	p.types[id] = reflect.TypeOf(example)
	return p
}

// WithDefaultImpl sets the type used when no type id is present.
func (p *PropertyTypeDeserializer) WithDefaultImpl(example any) *PropertyTypeDeserializer {
	p.DefaultImpl = reflect.TypeOf(example)
	return p
}

// TypeIDResolver maps concrete types back to type ids when writing
// polymorphic values.
type TypeIDResolver interface {
	TypeProperty() string
	IDForType(t reflect.Type) (string, bool)
}

func (p *PropertyTypeDeserializer) TypeProperty() string { return p.Property }

func (p *PropertyTypeDeserializer) IDForType(t reflect.Type) (string, bool) {
	for _, id := range p.knownIDs() {
		if p.types[id] == t {
			return id, true
		}
	}
	if t.Kind() == reflect.Ptr {
		return p.IDForType(t.Elem())
	}
	return "", false
}

// withTypeID embeds the type id of concrete into a written value: as a
// property for objects, as a wrapper array otherwise.
func withTypeID(ids TypeIDResolver, concrete reflect.Type, value any) (any, error) {
	id, ok := ids.IDForType(concrete)
	if !ok {
		return nil, &MappingError{Type: concrete, Msg: fmt.Sprintf("No type id registered for %s", concrete), Err: ErrUnknownTypeID}
	}
	if obj, isObj := value.(map[string]any); isObj {
		out := make(map[string]any, len(obj)+1)
		for k, v := range obj {
			out[k] = v
		}
		out[ids.TypeProperty()] = id
		return out, nil
	}
	return []any{id, value}, nil
}

func (p *PropertyTypeDeserializer) knownIDs() []string {
	ids := make([]string, 0, len(p.types))
	for id := range p.types {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (p *PropertyTypeDeserializer) DeserializeTypedFromAny(dec *json.Decoder, ctx BindingContext) (any, error) {
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, &MappingError{Type: p.DefaultImpl, Msg: "Empty typed value", Err: ErrMissingTypeID}
	}
	if bytes.Equal(trimmed, nullLiteral) {
		return nil, nil
	}
	switch trimmed[0] {
	case '{':
		return p.fromObject(trimmed, ctx)
	case '[':
		return p.fromArray(trimmed, ctx)
	default:
		if p.DefaultImpl == nil {
			return nil, &MappingError{Type: UnknownType, Msg: fmt.Sprintf("Missing type id (property %q) for scalar value", p.Property), Err: ErrMissingTypeID}
		}
		return p.bindAs(p.DefaultImpl, trimmed, ctx)
	}
}

func (p *PropertyTypeDeserializer) fromObject(raw []byte, ctx BindingContext) (any, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &MappingError{Type: UnknownType, Msg: "Malformed typed object", Err: err}
	}
	idRaw, ok := fields[p.Property]
	if !ok {
		if p.DefaultImpl == nil {
			return nil, &MappingError{Type: UnknownType, Msg: fmt.Sprintf("Missing type id property %q", p.Property), Err: ErrMissingTypeID}
		}
		return p.bindAs(p.DefaultImpl, raw, ctx)
	}
	var id string
	if err := json.Unmarshal(idRaw, &id); err != nil {
		return nil, &MappingError{Type: UnknownType, Msg: fmt.Sprintf("Type id property %q must be a string", p.Property), Err: err}
	}
	t, err := p.lookup(id)
	if err != nil {
		return nil, err
	}
	delete(fields, p.Property)
	rest, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	return p.bindAs(t, rest, ctx)
}

func (p *PropertyTypeDeserializer) fromArray(raw []byte, ctx BindingContext) (any, error) {
	var pair []json.RawMessage
	if err := json.Unmarshal(raw, &pair); err != nil {
		return nil, &MappingError{Type: UnknownType, Msg: "Malformed wrapper array", Err: err}
	}
	if len(pair) != 2 {
		return nil, &MappingError{Type: UnknownType, Msg: fmt.Sprintf("Wrapper array must have 2 elements, got %d", len(pair)), Err: ErrMissingTypeID}
	}
	var id string
	if err := json.Unmarshal(pair[0], &id); err != nil {
		return nil, &MappingError{Type: UnknownType, Msg: "Wrapper array type id must be a string", Err: err}
	}
	t, err := p.lookup(id)
	if err != nil {
		return nil, err
	}
	return p.bindAs(t, pair[1], ctx)
}

func (p *PropertyTypeDeserializer) lookup(id string) (reflect.Type, error) {
	if t, ok := p.types[id]; ok {
		return t, nil
	}
	return nil, &MappingError{Type: UnknownType, Msg: fmt.Sprintf("Could not resolve type id %q (known ids: %v)", id, p.knownIDs()), Err: ErrUnknownTypeID}
}

func (p *PropertyTypeDeserializer) bindAs(t reflect.Type, raw []byte, ctx BindingContext) (any, error) {
	vb, err := ctx.FindValueBinder(t, nil)
	if err != nil {
		return nil, err
	}
	return vb.Bind(json.NewDecoder(bytes.NewReader(raw)), ctx)
}
