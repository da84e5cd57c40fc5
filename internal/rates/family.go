package rates

import "strings"

// Published family labels.
const (
	FamilySectorThematic = "Sector & Thematic"
	FamilySingleAsset    = "Single-Asset"
)

// ClassifyFamily collapses a raw API type code into a published family
// label. Matching is insensitive to case and to underscore/space spelling.
// Unknown codes pass through verbatim (after underscore normalization) so
// new upstream type codes surface in the output instead of failing the run.
func ClassifyFamily(rawType string) string {
	display := strings.ReplaceAll(rawType, "_", " ")
	code := strings.ToLower(display)

	switch {
	case strings.Contains(code, "thematic"), strings.Contains(code, "sector"):
		return FamilySectorThematic
	case strings.Contains(code, "reference rate"), strings.Contains(code, "custom rate"),
		strings.Contains(code, "single-asset"):
		return FamilySingleAsset
	default:
		return display
	}
}
