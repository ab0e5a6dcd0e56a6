package common

import (
	"math"
	"strconv"

	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/xmladapters/converters"
)

// FrequencyAdapter binds a frequency in MHz, given as a string or a number, to
// an int64 in Hz. It writes the frequency back as a string in MHz with 3
// decimal places.
//
// The value type is left open (any), so the binder materializes whatever
// JSON shape is present and the adapter decides.
type FrequencyAdapter struct{}

func (FrequencyAdapter) Unmarshal(v any) (int64, error) {
	const op errors.Op = "converters.common.FrequencyAdapter.Unmarshal"
	mhz, err := converters.ParseMHz(op, v)
	if err != nil {
		return 0, errors.New(op).Err(err)
	}
	return int64(math.Round(mhz * 1e6)), nil
}

func (FrequencyAdapter) Marshal(b int64) (any, error) {
	const op errors.Op = "converters.common.FrequencyAdapter.Marshal"
	hz, err := converters.CheckInt64(op, b)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	return strconv.FormatFloat(float64(hz)/1e6, 'f', 3, 64), nil
}
