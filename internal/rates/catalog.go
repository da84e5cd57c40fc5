package rates

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/Checker-Finance/rates-publisher/pkg/model"
)

// catalogFile is the on-disk shape of the fixed catalog: a hand-maintained
// list of instruments with no API representation.
type catalogFile struct {
	Rows []catalogEntry `toml:"rows"`
}

type catalogEntry struct {
	Ticker        string `toml:"ticker"`
	Brand         string `toml:"brand"`
	Family        string `toml:"family"`
	Name          string `toml:"name"`
	Base          string `toml:"base"`
	Quote         string `toml:"quote"`
	Dissemination string `toml:"dissemination"`
	LaunchDate    string `toml:"launch_date"`
	InceptionDate string `toml:"inception_date"`
	Exchanges     string `toml:"exchanges"`
	CalcWindow    string `toml:"calc_window"`
	Factsheet     string `toml:"factsheet"`
}

// LoadCatalog reads the fixed catalog from a TOML file. An unreadable file
// is a configuration error and fails the run before anything is written.
func LoadCatalog(path string) ([]model.RateRow, error) {
	var file catalogFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("load fixed catalog %s: %w", path, err)
	}

	rows := make([]model.RateRow, 0, len(file.Rows))
	for _, e := range file.Rows {
		row := model.RateRow{
			Ticker:        e.Ticker,
			Brand:         e.Brand,
			Family:        e.Family,
			Name:          e.Name,
			Base:          e.Base,
			Quote:         e.Quote,
			Dissemination: e.Dissemination,
			LaunchDate:    e.LaunchDate,
			InceptionDate: e.InceptionDate,
			Exchanges:     e.Exchanges,
			CalcWindow:    e.CalcWindow,
			Factsheet:     e.Factsheet,
		}
		if row.Exchanges == "" {
			row.Exchanges = model.Placeholder
		}
		if row.CalcWindow == "" {
			row.CalcWindow = model.Placeholder
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Overlay combines catalog rows with API-derived rows. Catalog rows come
// first, in file order; an API row whose ticker matches a catalog entry is
// discarded in favor of the catalog row. shadowed is called once per
// discarded API row.
func Overlay(catalog, apiRows []model.RateRow, shadowed func(ticker string)) []model.RateRow {
	claimed := make(map[string]bool, len(catalog))
	for _, row := range catalog {
		claimed[row.Ticker] = true
	}

	out := make([]model.RateRow, 0, len(catalog)+len(apiRows))
	out = append(out, catalog...)
	for _, row := range apiRows {
		if claimed[row.Ticker] {
			if shadowed != nil {
				shadowed(row.Ticker)
			}
			continue
		}
		out = append(out, row)
	}
	return out
}
