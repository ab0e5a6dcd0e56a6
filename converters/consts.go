package converters

const (
	ErrMsgFreqParamEmpty = "Frequency parameter cannot be empty."
	ErrMsgBadTimeFormat  = "Bad time format, expected HH:MM or HHMM"
	ErrMsgBadDateFormat  = "Bad date format, expected YYYYMMDD or YYYY-MM-DD"
	ErrMsgBadUUID        = "Bad UUID, expected canonical 8-4-4-4-12 form"
	ErrMsgZeroValue      = "Zero value cannot be marshaled."
)
