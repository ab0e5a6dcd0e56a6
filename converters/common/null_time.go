package common

import (
	"time"

	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/xmladapters/converters"
	"github.com/aarondl/null/v8"
)

// NullTimeAdapter binds an RFC 3339 timestamp, or a bare YYYYMMDD /
// YYYY-MM-DD date, to a null.Time. An empty string is null.
type NullTimeAdapter struct{}

func (NullTimeAdapter) Unmarshal(v string) (null.Time, error) {
	const op errors.Op = "converters.common.NullTimeAdapter.Unmarshal"
	if v == "" {
		return null.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339, v); err == nil {
		return null.TimeFrom(ts), nil
	}
	d, err := converters.ParseDate(op, v)
	if err != nil {
		return null.Time{}, errors.New(op).Err(err)
	}
	return null.TimeFrom(d), nil
}

func (NullTimeAdapter) Marshal(b null.Time) (string, error) {
	if !b.Valid {
		return "", nil
	}
	return b.Time.UTC().Format(time.RFC3339), nil
}
