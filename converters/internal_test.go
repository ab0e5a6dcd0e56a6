package converters

import (
	"testing"
	"time"

	"github.com/Station-Manager/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckString(t *testing.T) {
	op := errors.Op("test.CheckString")

	tests := []struct {
		name    string
		input   interface{}
		want    string
		wantErr bool
	}{
		{name: "valid string", input: "test string", want: "test string"},
		{name: "empty string", input: "", wantErr: true},
		{name: "non-string (int)", input: 123, wantErr: true},
		{name: "non-string (nil)", input: nil, wantErr: true},
		{name: "non-string (bool)", input: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckString(op, tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckFloat64(t *testing.T) {
	op := errors.Op("test.CheckFloat64")

	tests := []struct {
		name    string
		input   interface{}
		want    float64
		wantErr bool
	}{
		{name: "valid float64", input: 123.45, want: 123.45},
		{name: "zero float64", input: 0.0, wantErr: true},
		{name: "non-float64 (int)", input: 123, wantErr: true},
		{name: "non-float64 (string)", input: "123.45", wantErr: true},
		{name: "non-float64 (nil)", input: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckFloat64(op, tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckInt64(t *testing.T) {
	op := errors.Op("test.CheckInt64")

	tests := []struct {
		name    string
		input   interface{}
		want    int64
		wantErr bool
	}{
		{name: "int64", input: int64(123), want: 123},
		{name: "int", input: 123, want: 123},
		{name: "int8", input: int8(123), want: 123},
		{name: "uint32", input: uint32(123), want: 123},
		{name: "negative int64", input: int64(-123), want: -123},
		{name: "float64 from JSON unmarshalling", input: float64(14320000), want: 14320000},
		{name: "float64 with decimal (invalid)", input: 123.45, want: -1, wantErr: true},
		{name: "non-integer (string)", input: "123", want: -1, wantErr: true},
		{name: "non-integer (nil)", input: nil, want: -1, wantErr: true},
		{name: "non-integer (bool)", input: true, want: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckInt64(op, tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	op := errors.Op("test.ParseDate")

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "YYYYMMDD", input: "20240101", want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "YYYY-MM-DD", input: "2024-01-01", want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "leap day", input: "2024-02-29", want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{name: "not a leap year", input: "2025-02-29", wantErr: true},
		{name: "wrong separators", input: "2024/01/01", wantErr: true},
		{name: "too short", input: "2024-01", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(op, tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func TestParseTime(t *testing.T) {
	op := errors.Op("test.ParseTime")

	for _, in := range []string{"1205", "12:05"} {
		got, err := ParseTime(op, in)
		require.NoError(t, err, in)
		assert.Equal(t, 12, got.Hour())
		assert.Equal(t, 5, got.Minute())
	}

	for _, in := range []string{"", "12", "2505", "12-05", "12:5"} {
		_, err := ParseTime(op, in)
		assert.Error(t, err, in)
	}
}

func TestParseMHz(t *testing.T) {
	op := errors.Op("test.ParseMHz")

	got, err := ParseMHz(op, "14.320")
	require.NoError(t, err)
	assert.InDelta(t, 14.32, got, 1e-9)

	got, err = ParseMHz(op, 7.074)
	require.NoError(t, err)
	assert.InDelta(t, 7.074, got, 1e-9)

	_, err = ParseMHz(op, "abc")
	assert.Error(t, err)
	_, err = ParseMHz(op, "")
	assert.Error(t, err)
	_, err = ParseMHz(op, 0.0)
	assert.Error(t, err)
	_, err = ParseMHz(op, true)
	assert.Error(t, err)
}
