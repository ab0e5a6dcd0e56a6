package sqlite

import (
	"strconv"

	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/xmladapters/converters"
)

// FrequencyAdapter binds a frequency in MHz, as a string or a number, to the
// float64 sqlite models store.
type FrequencyAdapter struct{}

func (FrequencyAdapter) Unmarshal(v any) (float64, error) {
	const op errors.Op = "converters.sqlite.FrequencyAdapter.Unmarshal"
	retVal, err := converters.ParseMHz(op, v)
	if err != nil {
		return 0, errors.New(op).Err(err)
	}
	return retVal, nil
}

func (FrequencyAdapter) Marshal(b float64) (any, error) {
	const op errors.Op = "converters.sqlite.FrequencyAdapter.Marshal"
	srcVal, err := converters.CheckFloat64(op, b)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	return strconv.FormatFloat(srcVal, 'f', -1, 64), nil
}
