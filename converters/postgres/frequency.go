package postgres

import (
	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/xmladapters/converters"
	"github.com/aarondl/sqlboiler/v4/types"
	"github.com/ericlagergren/decimal"
)

// FrequencyAdapter binds a frequency in MHz, as a string or a number, to a
// types.Decimal; the underlying value is a decimal.Big.
type FrequencyAdapter struct{}

func (FrequencyAdapter) Unmarshal(v any) (types.Decimal, error) {
	const op errors.Op = "converters.postgres.FrequencyAdapter.Unmarshal"
	retVal, err := converters.ParseMHz(op, v)
	if err != nil {
		return types.Decimal{}, errors.New(op).Err(err)
	}
	val := types.NewDecimal(new(decimal.Big))
	val.SetFloat64(retVal)
	return val, nil
}

func (FrequencyAdapter) Marshal(b types.Decimal) (any, error) {
	const op errors.Op = "converters.postgres.FrequencyAdapter.Marshal"
	if b.Big == nil {
		return nil, errors.New(op).Msg(converters.ErrMsgFreqParamEmpty)
	}
	return b.String(), nil
}
