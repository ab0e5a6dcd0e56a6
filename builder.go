package xmladapters

import "reflect"

// Builder provides a fluent API to construct a Mapper with options, adapters
// and type deserializers pre-registered.
type Builder struct {
	opts    []Option
	byType  []ValueBinder
	byField map[reflect.Type]map[string]ValueBinder
	byName  map[string]ValueBinder
	typed   map[reflect.Type]TypeDeserializer
}

// NewBuilder creates a new builder.
func NewBuilder() *Builder {
	return &Builder{
		byField: make(map[reflect.Type]map[string]ValueBinder),
		byName:  make(map[string]ValueBinder),
		typed:   make(map[reflect.Type]TypeDeserializer),
	}
}

// WithOptions appends mapper options to the builder.
func (b *Builder) WithOptions(opts ...Option) *Builder { b.opts = append(b.opts, opts...); return b }

// AddAdapter registers an adapter for its handled type.
func (b *Builder) AddAdapter(vb ValueBinder) *Builder {
	b.byType = append(b.byType, vb)
	return b
}

// AddAdapterFor registers an adapter for a destination type and Go field name.
func (b *Builder) AddAdapterFor(dst any, field string, vb ValueBinder) *Builder {
	dt := baseType(dst)
	m := b.byField[dt]
	if m == nil {
		m = make(map[string]ValueBinder)
		b.byField[dt] = m
	}
	m[field] = vb
	return b
}

// AddNamedAdapter registers an adapter referenced by `xmladapter:"name"` tags.
func (b *Builder) AddNamedAdapter(name string, vb ValueBinder) *Builder {
	b.byName[name] = vb
	return b
}

// AddTypeDeserializer makes properties of the given static type polymorphic.
func (b *Builder) AddTypeDeserializer(static any, td TypeDeserializer) *Builder {
	b.typed[baseType(static)] = td
	return b
}

// Build constructs a Mapper using a single registry swap. It fails on the
// first adapter the Mapper's options reject.
func (b *Builder) Build() (*Mapper, error) {
	m := NewWithOptions(b.opts...)
	reg := newBinderRegistry()
	for _, vb := range b.byType {
		if err := m.checkTypeBinder(vb); err != nil {
			return nil, err
		}
		reg.byType[vb.HandledType()] = vb
	}
	for t, fields := range b.byField {
		if t == nil || t.Kind() != reflect.Struct {
			return nil, ErrNotStruct
		}
		sub := make(map[string]ValueBinder, len(fields))
		for name, vb := range fields {
			if err := m.checkBinder(vb); err != nil {
				return nil, err
			}
			sub[name] = vb
		}
		reg.byField[t] = sub
	}
	for name, vb := range b.byName {
		if err := m.checkBinder(vb); err != nil {
			return nil, err
		}
		reg.byName[name] = vb
	}
	for t, td := range b.typed {
		reg.typed[t] = td
	}
	m.registry.Store(reg)
	return m, nil
}
