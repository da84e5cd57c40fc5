package model

import "time"

// RawInstrument is one reference-rate definition as returned by the
// instrument source, flattened from the API's nested shape. Immutable.
type RawInstrument struct {
	Ticker        string `json:"ticker"`
	Brand         string `json:"brand"`
	Type          string `json:"type"` // raw type code, e.g. "Benchmark_Reference_Rate"
	ShortName     string `json:"short_name"`
	Dissemination string `json:"dissemination"`
	LaunchDate    string `json:"launch_date"`    // ISO 8601, fractional seconds optional
	InceptionDate string `json:"inception_date"` // ISO 8601, fractional seconds optional
	Base          string `json:"base"`           // base asset code
	Quote         string `json:"quote"`          // quote asset code
}

// RateDatapoint is the most recent published data point for one ticker,
// used to enrich a row with its exchange list, calculation window and
// publication time.
type RateDatapoint struct {
	Exchanges     []string  `json:"exchanges"`   // exchange codes
	CalcWindowSec int       `json:"calc_window"` // seconds
	PublishedAt   time.Time `json:"published_at"`
}
