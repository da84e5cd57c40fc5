package rates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Checker-Finance/rates-publisher/pkg/model"
)

func sampleRaw() model.RawInstrument {
	return model.RawInstrument{
		Ticker:        "KT5NYC",
		Brand:         "Kaiko",
		Type:          "Benchmark_Reference_Rate",
		ShortName:     "Bitcoin_Reference_Rate NYC",
		Dissemination: "NYC Fixing",
		LaunchDate:    "2021-04-06T14:00:00.000000Z",
		InceptionDate: "2019-01-01T00:00:00Z",
		Base:          "btc",
		Quote:         "usd",
	}
}

func TestNormalize(t *testing.T) {
	row, err := Normalize(sampleRaw())
	require.NoError(t, err)

	assert.Equal(t, "KT5NYC", row.Ticker)
	assert.Equal(t, "Kaiko", row.Brand)
	assert.Equal(t, "Single-Asset", row.Family)
	assert.Equal(t, "Bitcoin Reference Rate NYC", row.Name, "underscores become spaces")
	assert.Equal(t, "BTC", row.Base, "base uppercased")
	assert.Equal(t, "USD", row.Quote, "quote uppercased")
	assert.Equal(t, "NYC Fixing", row.Dissemination)
	assert.Equal(t, "2021-04-06", row.LaunchDate)
	assert.Equal(t, "2019-01-01", row.InceptionDate)
	assert.Equal(t, model.Placeholder, row.Exchanges, "exchanges left for enrichment")
	assert.Equal(t, model.Placeholder, row.CalcWindow)
	assert.Empty(t, row.Factsheet)
}

func TestNormalize_TimestampForms(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"without fractional seconds", "2023-06-01T21:00:00Z", true},
		{"with fractional seconds", "2023-06-01T21:00:00.123456Z", true},
		{"date only", "2023-06-01", false},
		{"garbage", "not-a-date", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := sampleRaw()
			raw.LaunchDate = tt.value

			_, err := Normalize(raw)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrMalformedTimestamp)
			}
		})
	}
}

func TestNormalize_MalformedInceptionDropsRecord(t *testing.T) {
	raw := sampleRaw()
	raw.InceptionDate = "yesterday"

	_, err := Normalize(raw)
	require.ErrorIs(t, err, ErrMalformedTimestamp)
	assert.Contains(t, err.Error(), "KT5NYC", "error names the offending record")
}
