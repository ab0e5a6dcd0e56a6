package xmladapters

import "fmt"

// ConvertSlice converts each element of src into a new T, as Convert does.
// The first failing element aborts the conversion.
func ConvertSlice[T, S any](m *Mapper, src []S) ([]T, error) {
	if src == nil {
		return nil, nil
	}
	out := make([]T, 0, len(src))
	for i := range src {
		var item T
		if err := convert(m, src[i], &item); err != nil {
			return nil, fmt.Errorf("converting element %d: %w", i, err)
		}
		out = append(out, item)
	}
	return out, nil
}
