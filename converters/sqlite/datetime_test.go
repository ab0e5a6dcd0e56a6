package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateAdapter_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "YYYY-MM-DD format", input: "2025-11-08", want: "20251108"},
		{name: "YYYYMMDD format", input: "20251108", want: "20251108"},
		{name: "leap year date", input: "2024-02-29", want: "20240229"},
		{name: "invalid date format (too short)", input: "2025-11", wantErr: true},
		{name: "invalid date format (too long)", input: "2025-11-089", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "wrong separator", input: "2025/11/08", wantErr: true},
		{name: "invalid day", input: "2025-02-30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DateAdapter{}.Unmarshal(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateAdapter_Marshal(t *testing.T) {
	got, err := DateAdapter{}.Marshal("20251108")
	require.NoError(t, err)
	assert.Equal(t, "2025-11-08", got)

	_, err = DateAdapter{}.Marshal("2025-11-08")
	assert.Error(t, err, "stored dates are always 8 characters")
	_, err = DateAdapter{}.Marshal("")
	assert.Error(t, err)
}

func TestTimeAdapter_Unmarshal(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "12:05", want: "1205"},
		{input: "0000", want: "0000"},
		{input: "23:59", want: "2359"},
		{input: "24:00", wantErr: true},
		{input: "", wantErr: true},
		{input: "12.05", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := TimeAdapter{}.Unmarshal(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFrequencyAdapter(t *testing.T) {
	got, err := FrequencyAdapter{}.Unmarshal("14.074")
	require.NoError(t, err)
	assert.InDelta(t, 14.074, got, 1e-9)

	got, err = FrequencyAdapter{}.Unmarshal(7.1)
	require.NoError(t, err)
	assert.InDelta(t, 7.1, got, 1e-9)

	_, err = FrequencyAdapter{}.Unmarshal("")
	assert.Error(t, err)

	out, err := FrequencyAdapter{}.Marshal(14.074)
	require.NoError(t, err)
	assert.Equal(t, "14.074", out)

	_, err = FrequencyAdapter{}.Marshal(0)
	assert.Error(t, err)
}

func TestCountryAdapter(t *testing.T) {
	got, err := CountryAdapter{}.Unmarshal("  England ")
	require.NoError(t, err)
	assert.True(t, got.Valid)
	assert.Equal(t, "England", got.String)

	got, err = CountryAdapter{}.Unmarshal("")
	require.NoError(t, err)
	assert.False(t, got.Valid)

	out, err := CountryAdapter{}.Marshal(got)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}
