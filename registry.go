package xmladapters

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// binderRegistry holds binders at three scopes plus type deserializers. It is
// never mutated once published; writers clone it and swap (copy-on-write).
type binderRegistry struct {
	byType  map[reflect.Type]ValueBinder
	byField map[reflect.Type]map[string]ValueBinder // [owner struct type][Go field name]
	byName  map[string]ValueBinder
	typed   map[reflect.Type]TypeDeserializer
}

func newBinderRegistry() *binderRegistry {
	return &binderRegistry{
		byType:  make(map[reflect.Type]ValueBinder),
		byField: make(map[reflect.Type]map[string]ValueBinder),
		byName:  make(map[string]ValueBinder),
		typed:   make(map[reflect.Type]TypeDeserializer),
	}
}

func (r *binderRegistry) clone() *binderRegistry {
	c := &binderRegistry{
		byType:  make(map[reflect.Type]ValueBinder, len(r.byType)+1),
		byField: make(map[reflect.Type]map[string]ValueBinder, len(r.byField)+1),
		byName:  make(map[string]ValueBinder, len(r.byName)+1),
		typed:   make(map[reflect.Type]TypeDeserializer, len(r.typed)+1),
	}
	for k, v := range r.byType {
		c.byType[k] = v
	}
	for k, v := range r.byField {
		m := make(map[string]ValueBinder, len(v))
		for fk, fv := range v {
			m[fk] = fv
		}
		c.byField[k] = m
	}
	for k, v := range r.byName {
		c.byName[k] = v
	}
	for k, v := range r.typed {
		c.typed[k] = v
	}
	return c
}

func (m *Mapper) loadRegistry() *binderRegistry {
	return m.registry.Load().(*binderRegistry)
}

func (m *Mapper) update(fn func(*binderRegistry)) {
	m.regMu.Lock()
	defer m.regMu.Unlock()
	next := m.loadRegistry().clone()
	fn(next)
	m.registry.Store(next)
}

// baseType normalizes an example value (T, *T or a reflect.Type) to T.
func baseType(example any) reflect.Type {
	t, ok := example.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(example)
	}
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func (m *Mapper) checkBinder(b ValueBinder) error {
	if b == nil {
		return fmt.Errorf("%w: nil binder", ErrNoValueBinder)
	}
	ab, ok := b.(*AdapterBinder)
	if !ok {
		return nil
	}
	if ab == nil {
		return fmt.Errorf("%w: nil adapter binder", ErrNoValueBinder)
	}
	if m.options.StrictAdapterTypes && ab.ValueType() == UnknownType {
		return fmt.Errorf("%w: adapter producing %s", ErrUnknownValueType, typeName(ab.HandledType()))
	}
	return nil
}

// checkTypeBinder additionally rejects binders that cannot be keyed by type.
// An adapter whose value type is its bound type would resolve itself.
func (m *Mapper) checkTypeBinder(b ValueBinder) error {
	if err := m.checkBinder(b); err != nil {
		return err
	}
	t := b.HandledType()
	if t == nil || t == UnknownType {
		return fmt.Errorf("%w: cannot register by type an adapter producing %s", ErrUnknownValueType, typeName(t))
	}
	if ab, ok := b.(*AdapterBinder); ok && ab.ValueType() == t {
		return fmt.Errorf("%w: %s", ErrSelfAdapter, t)
	}
	return nil
}

// RegisterAdapter registers b for every property whose type is b.HandledType().
func (m *Mapper) RegisterAdapter(b ValueBinder) error {
	if err := m.checkTypeBinder(b); err != nil {
		return err
	}
	t := b.HandledType()
	m.update(func(r *binderRegistry) { r.byType[t] = b })
	m.log.Debug("registered adapter", zap.String("scope", "type"), zap.Stringer("type", t))
	return nil
}

// RegisterAdapterFor registers b for one field (by Go field name) of dst's struct type.
func (m *Mapper) RegisterAdapterFor(dst any, fieldName string, b ValueBinder) error {
	if err := m.checkBinder(b); err != nil {
		return err
	}
	dt := baseType(dst)
	if dt == nil || dt.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %v", ErrNotStruct, dt)
	}
	m.update(func(r *binderRegistry) {
		fields := r.byField[dt]
		if fields == nil {
			fields = make(map[string]ValueBinder)
			r.byField[dt] = fields
		}
		fields[fieldName] = b
	})
	m.log.Debug("registered adapter", zap.String("scope", "field"), zap.Stringer("owner", dt), zap.String("field", fieldName))
	return nil
}

// RegisterNamedAdapter registers b under a name referenced by `xmladapter:"name"` tags.
func (m *Mapper) RegisterNamedAdapter(name string, b ValueBinder) error {
	if err := m.checkBinder(b); err != nil {
		return err
	}
	m.update(func(r *binderRegistry) { r.byName[name] = b })
	m.log.Debug("registered adapter", zap.String("scope", "name"), zap.String("name", name))
	return nil
}

// RegisterTypeDeserializer makes properties of the given static type (pass
// (*Iface)(nil) for interfaces) polymorphic: they are read through td.
func (m *Mapper) RegisterTypeDeserializer(static any, td TypeDeserializer) {
	t := baseType(static)
	m.update(func(r *binderRegistry) { r.typed[t] = td })
	m.log.Debug("registered type deserializer", zap.Stringer("type", t))
}
