package station

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadingIngest(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		healthy bool
		value   float64
	}{
		{
			name:    "plain value with unit",
			text:    "23.5 ppm",
			healthy: true,
			value:   23.5,
		},
		{
			name:    "integer value",
			text:    "42",
			healthy: true,
			value:   42,
		},
		{
			name:    "value after garbage tokens",
			text:    "abc 42 xyz",
			healthy: true,
			value:   42,
		},
		{
			name:    "trailing decimal point",
			text:    "12.",
			healthy: true,
			value:   12,
		},
		{
			name:    "leading decimal point",
			text:    ".5",
			healthy: true,
			value:   0.5,
		},
		{
			name:    "empty text",
			text:    "",
			healthy: false,
		},
		{
			name:    "non-numeric text",
			text:    "N/A",
			healthy: false,
		},
		{
			name:    "bare dot is not a number",
			text:    ".",
			healthy: false,
		},
		{
			name:    "negative sign disqualifies the token",
			text:    "-5.2",
			healthy: false,
		},
		{
			name:    "two decimal points disqualify the token",
			text:    "1.2.3",
			healthy: false,
		},
		{
			name:    "first numeric token wins",
			text:    "10 20",
			healthy: true,
			value:   10,
		},
		{
			name:    "embedded unit is not a numeric token",
			text:    "23.5ppm",
			healthy: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReading("ppm")
			r.Ingest(tt.text)

			require.NotNil(t, r.Raw)
			assert.Equal(t, tt.text, *r.Raw)
			assert.Equal(t, tt.healthy, r.Healthy)

			if tt.healthy {
				require.NotNil(t, r.Value)
				assert.Equal(t, tt.value, *r.Value)
			} else {
				assert.Nil(t, r.Value)
			}
		})
	}
}

func TestReadingIngestOverwritesFully(t *testing.T) {
	r := NewReading("ppm")

	r.Ingest("10 ppm")
	require.True(t, r.Healthy)

	// A bad cycle must not keep the previous value around.
	r.Ingest("garbage")
	assert.False(t, r.Healthy)
	assert.Nil(t, r.Value)
	require.NotNil(t, r.Raw)
	assert.Equal(t, "garbage", *r.Raw)
}

func TestReadingString(t *testing.T) {
	tests := []struct {
		name string
		prep func(r *Reading)
		want string
	}{
		{
			name: "uninitialized",
			prep: func(r *Reading) {},
			want: "Uninitialized - No Value fetched",
		},
		{
			name: "invalid data quotes the raw text",
			prep: func(r *Reading) { r.Ingest("N/A") },
			want: `Invalid Data - Raw value: "N/A"`,
		},
		{
			name: "healthy renders value and unit",
			prep: func(r *Reading) { r.Ingest("23.5 ppm") },
			want: "23.5 ppm",
		},
		{
			name: "integer value renders without decimals",
			prep: func(r *Reading) { r.Ingest("42") },
			want: "42 ppm",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReading("ppm")
			tt.prep(r)
			assert.Equal(t, tt.want, r.String())
		})
	}
}
