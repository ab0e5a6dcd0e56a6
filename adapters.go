package xmladapters

import (
	"fmt"
	"reflect"

	"github.com/goccy/go-json"
)

// Convert rebinds src into a new T by writing it with m and reading the
// result back. Property names on both sides come from m's introspector, so an
// xml-tagged struct can be converted into a json-tagged one. Root wrapping is
// not applied.
// This is a lossy mapping if source and destination do not share property names.
func Convert[T any](m *Mapper, src any) (*T, error) {
	var out T
	if err := convert(m, src, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func convert(m *Mapper, src any, dst any) error {
	plain, err := m.toPlain(reflect.ValueOf(src), m.loadRegistry(), nil)
	if err != nil {
		return fmt.Errorf("%s: write failed: %w", Namespace, err)
	}
	data, err := json.Marshal(plain)
	if err != nil {
		return fmt.Errorf("%s: marshal failed: %w", Namespace, err)
	}
	if err = m.decodeInto(rawDecoder(data), reflect.ValueOf(dst).Elem()); err != nil {
		return fmt.Errorf("%s: read failed: %w", Namespace, err)
	}
	return nil
}
