package converters

import (
	"time"

	"github.com/Station-Manager/errors"
)

// ParseDate accepts a date in YYYYMMDD or YYYY-MM-DD format.
func ParseDate(op errors.Op, src string) (time.Time, error) {
	var retVal time.Time
	var err error
	switch len(src) {
	case 8:
		retVal, err = time.Parse("20060102", src)
	case 10:
		if src[4] != '-' || src[7] != '-' {
			return time.Time{}, errors.New(op).Msg(ErrMsgBadDateFormat)
		}
		retVal, err = time.Parse("2006-01-02", src)
	default:
		return time.Time{}, errors.New(op).Msg(ErrMsgBadDateFormat)
	}
	if err != nil {
		return time.Time{}, errors.New(op).Err(err).Msg(ErrMsgBadDateFormat)
	}
	return retVal, nil
}

// ParseTime accepts a time of day in HHMM or HH:MM format. The date part of
// the result is zero.
func ParseTime(op errors.Op, src string) (time.Time, error) {
	layout := ""
	switch {
	case len(src) == 5 && src[2] == ':':
		layout = "15:04"
	case len(src) == 4:
		layout = "1504"
	default:
		return time.Time{}, errors.New(op).Msg(ErrMsgBadTimeFormat)
	}
	retVal, err := time.Parse(layout, src)
	if err != nil {
		return time.Time{}, errors.New(op).Err(err).Msg(ErrMsgBadTimeFormat)
	}
	return retVal, nil
}
