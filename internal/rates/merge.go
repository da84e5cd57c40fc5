package rates

import (
	"strings"

	"github.com/Checker-Finance/rates-publisher/pkg/model"
)

const (
	dailyFixingPrefix = "Daily Fixing "
	realTimeLabel     = "Real-time (5s)"
)

// variantGroup accumulates the location-variant rows of one base identity.
type variantGroup struct {
	base      string
	realTime  bool
	locations map[Location]bool
	rep       model.RateRow // real-time variant row if present, else first-seen
	hasRTRep  bool
}

// Merge partitions rows into variant groups keyed by base identity and
// collapses each group into a single row whose dissemination descriptor
// reflects the union of variant kinds present. Group order equals the
// first-seen order of base identities in the input, so output stays
// diff-friendly across runs. Merging already-merged output is a no-op.
func Merge(rows []model.RateRow) []model.RateRow {
	var order []string
	groups := make(map[string]*variantGroup, len(rows))

	for _, row := range rows {
		v := ParseTicker(row.Ticker)
		g, ok := groups[v.Base]
		if !ok {
			g = &variantGroup{
				base:      v.Base,
				locations: make(map[Location]bool),
				rep:       row,
			}
			groups[v.Base] = g
			order = append(order, v.Base)
		}

		if v.RealTime() {
			// A suffix-less ticker is the real-time variant of itself,
			// unless its descriptor is a pure daily-fixing one (i.e. the
			// row is itself a previous merge result without a real-time
			// component).
			locs, rt := parseDescriptor(row.Dissemination)
			for _, loc := range locs {
				g.locations[loc] = true
			}
			if rt {
				g.realTime = true
			}
			if !g.hasRTRep {
				g.rep = row
				g.hasRTRep = true
			}
		} else {
			g.locations[v.Location] = true
		}
	}

	out := make([]model.RateRow, 0, len(order))
	for _, base := range order {
		g := groups[base]
		merged := g.rep
		merged.Ticker = g.base
		merged.Name = StripNameSuffix(merged.Name)
		merged.Dissemination = renderDescriptor(g.locations, g.realTime)
		out = append(out, merged)
	}
	return out
}

// parseDescriptor classifies a suffix-less row's dissemination label. A
// "Daily Fixing …" descriptor contributes its location tokens; anything
// else means the row is a real-time variant.
func parseDescriptor(dissemination string) ([]Location, bool) {
	rest, isFixing := strings.CutPrefix(dissemination, dailyFixingPrefix)
	if !isFixing {
		return nil, true
	}

	var locs []Location
	for _, tok := range strings.Split(rest, ",") {
		tok = strings.TrimSpace(tok)
		for _, loc := range locationOrder {
			if tok == string(loc) {
				locs = append(locs, loc)
			}
		}
	}
	return locs, strings.Contains(rest, realTimeLabel)
}

// renderDescriptor renders the combined descriptor: fixing locations in
// canonical order, real-time mentioned once at the end.
func renderDescriptor(locations map[Location]bool, realTime bool) string {
	var parts []string
	for _, loc := range locationOrder {
		if locations[loc] {
			parts = append(parts, string(loc))
		}
	}

	switch {
	case len(parts) > 0 && realTime:
		return dailyFixingPrefix + strings.Join(parts, ", ") + ", " + realTimeLabel
	case len(parts) > 0:
		return dailyFixingPrefix + strings.Join(parts, ", ")
	case realTime:
		return realTimeLabel
	default:
		return ""
	}
}
