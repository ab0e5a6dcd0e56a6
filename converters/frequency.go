package converters

import (
	"strconv"

	"github.com/Station-Manager/errors"
)

// ParseMHz reads a frequency in MHz given either as a JSON string ("14.320")
// or as a JSON number (14.32).
func ParseMHz(op errors.Op, src any) (float64, error) {
	if f, ok := src.(float64); ok {
		return CheckFloat64(op, f)
	}
	srcVal, err := CheckString(op, src)
	if err != nil {
		return 0, err
	}
	retVal, err := strconv.ParseFloat(srcVal, 64)
	if err != nil {
		return 0, errors.New(op).Err(err)
	}
	return retVal, nil
}
