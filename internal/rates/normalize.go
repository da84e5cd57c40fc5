package rates

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Checker-Finance/rates-publisher/pkg/model"
)

// ErrMalformedTimestamp marks a record whose launch or inception timestamp
// parses under none of the accepted layouts. The record is dropped; the run
// continues.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

const dateLayout = "2006-01-02"

// apiTimeLayouts are the two timestamp forms the source emits: with and
// without fractional seconds.
var apiTimeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05Z07:00"}

// ParseAPITime parses a source timestamp in either accepted form.
func ParseAPITime(s string) (time.Time, error) {
	for _, layout := range apiTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
}

// Normalize maps one raw instrument record to a canonical row. Asset codes
// are uppercased, free-text fields have underscores replaced by spaces, and
// the family label is classified from the raw type code. Enrichment columns
// are left at their placeholders. Pure function of its input.
func Normalize(raw model.RawInstrument) (model.RateRow, error) {
	launch, err := ParseAPITime(raw.LaunchDate)
	if err != nil {
		return model.RateRow{}, fmt.Errorf("ticker %s launch date: %w", raw.Ticker, err)
	}
	inception, err := ParseAPITime(raw.InceptionDate)
	if err != nil {
		return model.RateRow{}, fmt.Errorf("ticker %s inception date: %w", raw.Ticker, err)
	}

	return model.RateRow{
		Ticker:        raw.Ticker,
		Brand:         raw.Brand,
		Family:        ClassifyFamily(raw.Type),
		Name:          strings.ReplaceAll(raw.ShortName, "_", " "),
		Base:          strings.ToUpper(raw.Base),
		Quote:         strings.ToUpper(raw.Quote),
		Dissemination: raw.Dissemination,
		LaunchDate:    launch.UTC().Format(dateLayout),
		InceptionDate: inception.UTC().Format(dateLayout),
		Exchanges:     model.Placeholder,
		CalcWindow:    model.Placeholder,
		Factsheet:     "",
	}, nil
}
