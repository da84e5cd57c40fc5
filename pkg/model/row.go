package model

import "time"

// Placeholder is the value published for enrichment columns when the
// upstream data is unavailable (missing API key, timeout, empty payload).
const Placeholder = "-"

// RateRow is the canonical publication row for one reference rate. It is
// produced by the normalizer from a single API record and is the unit the
// rest of the pipeline (carry-forward, filters, merger, overlay) operates on.
type RateRow struct {
	Ticker        string `json:"ticker"`         // e.g. "KT5NYC"
	Brand         string `json:"brand"`          // e.g. "Kaiko"
	Family        string `json:"family"`         // classified family label, e.g. "Single-Asset"
	Name          string `json:"name"`           // display name, e.g. "Bitcoin Reference Rate NYC"
	Base          string `json:"base"`           // uppercased base asset code, e.g. "BTC"
	Quote         string `json:"quote"`          // uppercased quote asset code, e.g. "USD"
	Dissemination string `json:"dissemination"`  // e.g. "NYC Fixing", "Real-time (5s)"
	LaunchDate    string `json:"launch_date"`    // formatted 2006-01-02
	InceptionDate string `json:"inception_date"` // formatted 2006-01-02
	Exchanges     string `json:"exchanges"`      // display names joined with ", ", or Placeholder
	CalcWindow    string `json:"calc_window"`    // e.g. "5s", or Placeholder
	Factsheet     string `json:"factsheet"`      // curated link markup, empty when none assigned

	// LastPublished is the timestamp of the most recent published data point
	// for this ticker, filled by enrichment. Zero means unknown; the
	// staleness filter treats unknown as fresh. Not a CSV column.
	LastPublished time.Time `json:"-"`
}

// FactsheetIndex maps ticker to the factsheet link published for it in the
// previous run. Built once per run and read-only afterwards.
type FactsheetIndex map[string]string
