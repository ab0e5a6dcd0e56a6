package common

import (
	"time"

	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/xmladapters/converters"
)

// DateAdapter binds a date string in YYYYMMDD or YYYY-MM-DD format to a
// time.Time, and writes it back as YYYY-MM-DD.
//
// This is a common adapter that can be used by both sqlite3 and postgres models but
// is dependent on both databases storing the date as a time.Time.
type DateAdapter struct{}

func (DateAdapter) Unmarshal(v string) (time.Time, error) {
	const op errors.Op = "converters.common.DateAdapter.Unmarshal"
	srcVal, err := converters.CheckString(op, v)
	if err != nil {
		return time.Time{}, errors.New(op).Err(err).Msg(converters.ErrMsgBadDateFormat)
	}
	return converters.ParseDate(op, srcVal)
}

func (DateAdapter) Marshal(b time.Time) (string, error) {
	const op errors.Op = "converters.common.DateAdapter.Marshal"
	if b.IsZero() {
		return "", errors.New(op).Msg(converters.ErrMsgZeroValue)
	}
	return b.Format("2006-01-02"), nil
}

// TimeAdapter binds a time of day in HHMM or HH:MM format to a time.Time, and
// writes it back as HH:MM.
type TimeAdapter struct{}

func (TimeAdapter) Unmarshal(v string) (time.Time, error) {
	const op errors.Op = "converters.common.TimeAdapter.Unmarshal"
	srcVal, err := converters.CheckString(op, v)
	if err != nil {
		return time.Time{}, errors.New(op).Err(err).Msg(converters.ErrMsgBadTimeFormat)
	}
	return converters.ParseTime(op, srcVal)
}

func (TimeAdapter) Marshal(b time.Time) (string, error) {
	return b.Format("15:04"), nil
}
