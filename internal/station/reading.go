package station

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Reading holds one parameter's latest value: the raw fetched text, the
// parsed number (when the text was numeric), the display unit, and a
// health flag. Each poll cycle overwrites it fully; values never merge
// across cycles.
type Reading struct {
	Raw       *string
	Value     *float64
	Unit      string
	Healthy   bool
	UpdatedAt time.Time
}

// NewReading creates an uninitialized reading for the given unit.
func NewReading(unit string) *Reading {
	return &Reading{
		Unit:      unit,
		UpdatedAt: time.Now(),
	}
}

// Ingest records the fetched text and parses it. The first
// whitespace-delimited token that, after removing at most one decimal
// point, is a non-empty string of digits becomes the value. A token of
// just "." does not count, and a leading "-" disqualifies a token; the
// dashboard is not expected to show negative readings and a sign there
// means garbled data.
func (r *Reading) Ingest(text string) {
	r.Raw = &text
	r.UpdatedAt = time.Now()
	r.Value = nil
	r.Healthy = false

	for _, token := range strings.Fields(text) {
		if v, ok := parseNumericToken(token); ok {
			r.Value = &v
			r.Healthy = true
			return
		}
	}
}

// String renders the reading for station output.
func (r *Reading) String() string {
	switch {
	case r.Raw == nil:
		return "Uninitialized - No Value fetched"
	case !r.Healthy:
		return fmt.Sprintf("Invalid Data - Raw value: %q", *r.Raw)
	default:
		return strconv.FormatFloat(*r.Value, 'f', -1, 64) + " " + r.Unit
	}
}

// parseNumericToken accepts tokens made of decimal digits and at most
// one '.', with at least one digit remaining.
func parseNumericToken(token string) (float64, bool) {
	dots, digits := 0, 0
	for _, c := range token {
		switch {
		case c == '.':
			dots++
			if dots > 1 {
				return 0, false
			}
		case c >= '0' && c <= '9':
			digits++
		default:
			return 0, false
		}
	}
	if digits == 0 {
		return 0, false
	}

	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
