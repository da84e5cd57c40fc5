package rates

import (
	"strings"

	"github.com/Checker-Finance/rates-publisher/pkg/model"
)

const anchorOpen = `<a href="`

// CarryForward reattaches operator-maintained factsheet links from the
// previous run to matching tickers. Keyed by exact ticker match; a non-empty
// current link is never overwritten and no link is ever fabricated. Known
// upstream defects in the carried value (trailing commas, a duplicated
// anchor opening) are repaired. Idempotent.
func CarryForward(rows []model.RateRow, prior model.FactsheetIndex) []model.RateRow {
	out := make([]model.RateRow, len(rows))
	for i, row := range rows {
		if row.Factsheet == "" {
			row.Factsheet = prior[row.Ticker]
		}
		row.Factsheet = cleanLink(row.Factsheet)
		out[i] = row
	}
	return out
}

// cleanLink repairs artifacts observed in historical output: trailing comma
// separators picked up from CSV edits, and the doubled `<a href="<a href="`
// markup produced by a past upstream bug.
func cleanLink(link string) string {
	link = strings.TrimRight(strings.TrimSpace(link), ",")
	for strings.HasPrefix(link, anchorOpen+anchorOpen) {
		link = strings.TrimPrefix(link, anchorOpen)
	}
	return link
}
