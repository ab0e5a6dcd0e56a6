package sqlite

import (
	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/xmladapters/converters"
)

// DateAdapter normalizes a YYYYMMDD or YYYY-MM-DD date string to the
// YYYYMMDD text sqlite models store. It writes the date back as YYYY-MM-DD.
//
// The value and bound types are both string, so register it per field or by
// name, never by type.
type DateAdapter struct{}

func (DateAdapter) Unmarshal(v string) (string, error) {
	const op errors.Op = "converters.sqlite.DateAdapter.Unmarshal"
	srcVal, err := converters.CheckString(op, v)
	if err != nil {
		return "", errors.New(op).Err(err).Msg(converters.ErrMsgBadDateFormat)
	}
	retVal, err := converters.ParseDate(op, srcVal)
	if err != nil {
		return "", err
	}
	return retVal.Format("20060102"), nil
}

func (DateAdapter) Marshal(b string) (string, error) {
	const op errors.Op = "converters.sqlite.DateAdapter.Marshal"
	if len(b) != 8 {
		return "", errors.New(op).Msg(converters.ErrMsgBadDateFormat)
	}
	retVal, err := converters.ParseDate(op, b)
	if err != nil {
		return "", err
	}
	return retVal.Format("2006-01-02"), nil
}

// TimeAdapter normalizes an HHMM or HH:MM time string to HHMM.
type TimeAdapter struct{}

func (TimeAdapter) Unmarshal(v string) (string, error) {
	const op errors.Op = "converters.sqlite.TimeAdapter.Unmarshal"
	srcVal, err := converters.CheckString(op, v)
	if err != nil {
		return "", errors.New(op).Err(err).Msg(converters.ErrMsgBadTimeFormat)
	}
	retVal, err := converters.ParseTime(op, srcVal)
	if err != nil {
		return "", err
	}
	return retVal.Format("1504"), nil
}
