package rates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTicker(t *testing.T) {
	tests := []struct {
		name     string
		ticker   string
		base     string
		location Location
	}{
		{
			name:   "no suffix is the real-time variant",
			ticker: "KT5",
			base:   "KT5",
		},
		{
			name:     "bare NYC suffix",
			ticker:   "KT5NYC",
			base:     "KT5",
			location: LocationNYC,
		},
		{
			name:     "bare LDN suffix",
			ticker:   "KT5LDN",
			base:     "KT5",
			location: LocationLDN,
		},
		{
			name:     "bare SGP suffix",
			ticker:   "KT5SGP",
			base:     "KT5",
			location: LocationSGP,
		},
		{
			name:     "underscore-delimited suffix",
			ticker:   "EGLX_NYC",
			base:     "EGLX",
			location: LocationNYC,
		},
		{
			name:   "trailing underscores stripped",
			ticker: "EGLX__",
			base:   "EGLX",
		},
		{
			name:     "trailing underscores before suffix",
			ticker:   "EGLX_LDN_",
			base:     "EGLX",
			location: LocationLDN,
		},
		{
			name:   "suffix alone is not a variant",
			ticker: "NYC",
			base:   "NYC",
		},
		{
			name:   "empty ticker",
			ticker: "",
			base:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ParseTicker(tt.ticker)
			assert.Equal(t, tt.base, v.Base)
			assert.Equal(t, tt.location, v.Location)
			assert.Equal(t, tt.location == "", v.RealTime())
		})
	}
}

func TestParseTicker_PureFunction(t *testing.T) {
	// Same input, same output, regardless of call order.
	first := ParseTicker("BTCUSDLDN")
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, ParseTicker("BTCUSDLDN"))
	}
}

func TestStripNameSuffix(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trailing NYC", "Bitcoin Reference Rate NYC", "Bitcoin Reference Rate"},
		{"trailing LDN", "Ethereum Rate LDN", "Ethereum Rate"},
		{"trailing SGP", "Solana Rate SGP", "Solana Rate"},
		{"no suffix", "Bitcoin Reference Rate", "Bitcoin Reference Rate"},
		{"location not at end", "NYC Composite Rate", "NYC Composite Rate"},
		{"suffix without space untouched", "RateNYC", "RateNYC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripNameSuffix(tt.input))
		})
	}
}
