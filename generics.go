package xmladapters

// Generic helpers as top-level functions (methods cannot have type parameters yet)

// Register wraps u in an AdapterBinder and registers it for B.
func Register[V, B any](m *Mapper, u Unmarshaler[V, B]) error {
	return m.RegisterAdapter(NewAdapterBinder(u))
}

// RegisterFunc registers a function adapter for B.
func RegisterFunc[V, B any](m *Mapper, fn func(V) (B, error)) error {
	return m.RegisterAdapter(NewAdapterBinder[V, B](AdapterFunc[V, B](fn)))
}

// RegisterFor wraps u and registers it for one field of dst's struct type.
func RegisterFor[V, B any](m *Mapper, dst any, field string, u Unmarshaler[V, B]) error {
	return m.RegisterAdapterFor(dst, field, NewAdapterBinder(u))
}

func ReadAs[T any](m *Mapper, data []byte) (*T, error) {
	var d T
	if err := m.ReadValue(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func Make[T any](m *Mapper, data []byte) (T, error) {
	var d T
	err := m.ReadValue(data, &d)
	return d, err
}
