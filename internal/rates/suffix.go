package rates

import "strings"

// Location is a daily-fixing location code.
type Location string

const (
	LocationLDN Location = "LDN"
	LocationNYC Location = "NYC"
	LocationSGP Location = "SGP"
)

// locationOrder is the canonical rendering order for fixing locations in a
// combined dissemination descriptor.
var locationOrder = []Location{LocationLDN, LocationNYC, LocationSGP}

// Variant identifies which published flavour of an instrument a ticker is.
// A ticker with no recognized location suffix is the real-time variant of
// itself.
type Variant struct {
	Base     string   // ticker with location suffix and trailing underscores removed
	Location Location // empty for the real-time variant
}

// RealTime reports whether the variant is the continuously-disseminated one.
func (v Variant) RealTime() bool { return v.Location == "" }

// ParseTicker derives an instrument's base identity and variant kind from
// its ticker. Trailing underscores are stripped first, then a bare 3-letter
// location suffix, then trailing underscores again; one rule covers both
// "KT5NYC" and "EGLX_NYC". Pure function of the ticker string.
func ParseTicker(ticker string) Variant {
	t := strings.TrimRight(ticker, "_")
	for _, loc := range locationOrder {
		suffix := string(loc)
		if len(t) > len(suffix) && strings.HasSuffix(t, suffix) {
			base := strings.TrimRight(strings.TrimSuffix(t, suffix), "_")
			return Variant{Base: base, Location: loc}
		}
	}
	return Variant{Base: t}
}

// StripNameSuffix removes a trailing space-delimited location token from a
// display name ("Bitcoin Reference Rate NYC" -> "Bitcoin Reference Rate").
// Independent of the ticker rule.
func StripNameSuffix(name string) string {
	for _, loc := range locationOrder {
		if s, ok := strings.CutSuffix(name, " "+string(loc)); ok {
			return s
		}
	}
	return name
}
