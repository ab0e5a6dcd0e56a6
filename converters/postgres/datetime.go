package postgres

import (
	"time"

	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/xmladapters/converters"
	"github.com/Station-Manager/xmladapters/converters/common"
)

// DateAdapter binds YYYYMMDD or YYYY-MM-DD to the time.Time postgres models store.
type DateAdapter = common.DateAdapter

// TimeAdapter binds HHMM or HH:MM to a time.Time and writes it back as HH:MM.
// A zero time cannot be written.
type TimeAdapter struct {
	common.TimeAdapter
}

func (a TimeAdapter) Marshal(b time.Time) (string, error) {
	const op errors.Op = "converters.postgres.TimeAdapter.Marshal"
	if b.IsZero() {
		return "", errors.New(op).Msg(converters.ErrMsgBadTimeFormat)
	}
	return a.TimeAdapter.Marshal(b)
}
