package xmladapters

import (
	"errors"
	"testing"
	"time"

	"github.com/Station-Manager/xmladapters/converters/common"
	"github.com/Station-Manager/xmladapters/converters/postgres"
	"github.com/Station-Manager/xmladapters/converters/sqlite"
	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/types"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// qsoRecord mirrors a sqlite-backed contact log row.
type qsoRecord struct {
	ID             uuid.UUID   `json:"id"`
	Call           string      `json:"call"`
	QsoDate        time.Time   `json:"qso_date"`
	TimeOn         string      `json:"time_on" xmladapter:"sqlite-time"`
	Freq           int64       `json:"freq"`
	Country        null.String `json:"country"`
	Confirmed      null.Bool   `json:"confirmed"`
	Uploaded       null.Time   `json:"uploaded"`
	AdditionalData null.JSON
}

// pgRecord mirrors a postgres-backed row.
type pgRecord struct {
	Call   string        `json:"call"`
	Freq   types.Decimal `json:"freq"`
	Extras types.JSON    `json:"extras"`
}

func qsoMapper(t *testing.T) *Mapper {
	t.Helper()
	m, err := NewBuilder().
		AddAdapter(NewAdapterBinder[string, time.Time](common.DateAdapter{})).
		AddAdapter(NewAdapterBinder[string, uuid.UUID](common.UUIDAdapter{})).
		AddAdapter(NewAdapterBinder[string, null.String](sqlite.CountryAdapter{})).
		AddAdapter(NewAdapterBinder[*bool, null.Bool](common.NullBoolAdapter{})).
		AddAdapter(NewAdapterBinder[string, null.Time](common.NullTimeAdapter{})).
		AddNamedAdapter("sqlite-time", NewAdapterBinder[string, string](sqlite.TimeAdapter{})).
		AddAdapterFor(&qsoRecord{}, "Freq", NewAdapterBinder[any, int64](common.FrequencyAdapter{})).
		Build()
	require.NoError(t, err)
	return m
}

func TestRealWorld_ReadQso(t *testing.T) {
	m := qsoMapper(t)
	id := uuid.New()

	doc := `{
		"id": "` + id.String() + `",
		"call": "M0CMC",
		"qso_date": "20251107",
		"time_on": "12:05",
		"freq": "14.320",
		"country": " England ",
		"confirmed": true,
		"uploaded": "",
		"grid": "IO91"
	}`

	var q qsoRecord
	require.NoError(t, m.ReadValue([]byte(doc), &q))

	assert.Equal(t, id, q.ID)
	assert.Equal(t, "M0CMC", q.Call)
	assert.Equal(t, time.Date(2025, 11, 7, 0, 0, 0, 0, time.UTC), q.QsoDate)
	assert.Equal(t, "1205", q.TimeOn)
	assert.Equal(t, int64(14320000), q.Freq)
	assert.Equal(t, null.StringFrom("England"), q.Country)
	assert.Equal(t, null.BoolFrom(true), q.Confirmed)
	assert.False(t, q.Uploaded.Valid)
	assert.JSONEq(t, `{"grid":"IO91"}`, string(q.AdditionalData.JSON))
}

func TestRealWorld_NumericFrequencyAndNulls(t *testing.T) {
	m := qsoMapper(t)

	var q qsoRecord
	doc := `{"call":"G4ABC","qso_date":"2025-11-08","freq":7.074,"country":"","confirmed":null,"uploaded":"2025-11-08T10:00:00Z"}`
	require.NoError(t, m.ReadValue([]byte(doc), &q))

	assert.Equal(t, int64(7074000), q.Freq)
	assert.False(t, q.Country.Valid)
	assert.False(t, q.Confirmed.Valid)
	require.True(t, q.Uploaded.Valid)
	assert.Equal(t, 10, q.Uploaded.Time.Hour())
}

func TestRealWorld_WriteQso(t *testing.T) {
	m := qsoMapper(t)
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	q := qsoRecord{
		ID:             id,
		Call:           "M0CMC",
		QsoDate:        time.Date(2025, 11, 7, 0, 0, 0, 0, time.UTC),
		TimeOn:         "1205",
		Freq:           14320000,
		Country:        null.StringFrom("England"),
		Confirmed:      null.BoolFrom(true),
		AdditionalData: null.JSONFrom([]byte(`{"grid":"IO91"}`)),
	}

	out, err := m.WriteValue(q)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		"call": "M0CMC",
		"qso_date": "2025-11-07",
		"time_on": "1205",
		"freq": "14.320",
		"country": "England",
		"confirmed": true,
		"uploaded": "",
		"grid": "IO91"
	}`, string(out))

	var back qsoRecord
	require.NoError(t, m.ReadValue(out, &back))
	assert.Equal(t, q.ID, back.ID)
	assert.Equal(t, q.Freq, back.Freq)
	assert.Equal(t, q.QsoDate, back.QsoDate)
}

func TestRealWorld_BadFieldReportsProperty(t *testing.T) {
	m := qsoMapper(t)

	var q qsoRecord
	err := m.ReadValue([]byte(`{"call":"M0CMC","qso_date":"07/11/2025"}`), &q)
	require.Error(t, err)

	var me *MappingError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "qso_date", me.Property)
	assert.Equal(t, reflectTypeOf[string](), me.Type)

	err = m.ReadValue([]byte(`{"freq":"abc"}`), &q)
	require.True(t, errors.As(err, &me))
	assert.Equal(t, UnknownType, me.Type)
	assert.Equal(t, "freq", me.Property)
}

func TestRealWorld_Postgres(t *testing.T) {
	m := New()
	require.NoError(t, RegisterFor[any, types.Decimal](m, &pgRecord{}, "Freq", postgres.FrequencyAdapter{}))
	require.NoError(t, Register[json.RawMessage, types.JSON](m, postgres.JSONAdapter{}))

	var r pgRecord
	require.NoError(t, m.ReadValue([]byte(`{"call":"M0CMC","freq":"14.074","extras":{"rig":"IC-7300"}}`), &r))
	require.NotNil(t, r.Freq.Big)
	f, ok := r.Freq.Float64()
	require.True(t, ok)
	assert.InDelta(t, 14.074, f, 1e-9)
	assert.JSONEq(t, `{"rig":"IC-7300"}`, string(r.Extras))

	out, err := m.WriteMap(r)
	require.NoError(t, err)
	assert.Equal(t, "M0CMC", out["call"])
	assert.IsType(t, "", out["freq"])
	assert.JSONEq(t, `{"rig":"IC-7300"}`, string(out["extras"].(json.RawMessage)))
}
