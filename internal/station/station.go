// Package station models the monitored entities: a named station with
// a fixed, ordered set of parameter readings, polled once per cycle
// from the dashboard source.
package station

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/agentjill/eqms-ntpc-korba-scrape/internal/source"
)

// Category identifies which monitoring system a station belongs to.
// Each category lives on its own dashboard tab and carries its own
// fixed parameter set.
type Category int

const (
	// CategoryAirQuality is an ambient air-quality monitoring point (AAQMS).
	CategoryAirQuality Category = iota + 1
	// CategoryStackEmission is a continuous stack-emission unit (CEMS).
	CategoryStackEmission
	// CategoryEffluent is the effluent treatment monitoring point (EQMS).
	CategoryEffluent
)

// Tab returns the dashboard tab for the category.
func (c Category) Tab() int {
	switch c {
	case CategoryAirQuality:
		return source.TabAirQuality
	case CategoryStackEmission:
		return source.TabStackEmission
	default:
		return source.TabEffluent
	}
}

// String returns a short category label.
func (c Category) String() string {
	switch c {
	case CategoryAirQuality:
		return "air-quality"
	case CategoryStackEmission:
		return "stack-emission"
	case CategoryEffluent:
		return "effluent"
	default:
		return "unknown"
	}
}

// params returns the category's parameter names and units, in display order.
func (c Category) params() []param {
	switch c {
	case CategoryAirQuality:
		return []param{
			{"co", "mg/m³"},
			{"co2", "ppm"},
			{"nox", "μg/m³"},
			{"pm10", "μg/m³"},
			{"pm2_5", "μg/m³"},
			{"so2", "μg/m³"},
		}
	case CategoryStackEmission:
		return []param{
			{"nox", "mg/nm³"},
			{"pm", "mg/nm³"},
			{"so2", "mg/nm³"},
		}
	default:
		return []param{
			{"bod_toc", "mg/L"},
			{"cod_toc", "mg/L"},
			{"ph", "pH"},
			{"toc", "mg/L"},
			{"tss", "mg/L"},
			{"temperature", "°C"},
		}
	}
}

type param struct {
	name string
	unit string
}

// NamedReading pairs a parameter name with its reading. The slice order
// is the fixed poll and display order.
type NamedReading struct {
	Name    string
	Reading *Reading
}

// Station is one monitored entity. The parameter set and its order are
// fixed at construction; only the name and output file name may be
// rewritten, once, when the title lookup first succeeds.
type Station struct {
	name       string
	category   Category
	index      int // 1-based index within the category's tab
	readings   []NamedReading
	discovered bool
	outputFile string
}

// New creates a station with uninitialized readings.
func New(name string, category Category, index int) *Station {
	params := category.params()
	readings := make([]NamedReading, 0, len(params))
	for _, p := range params {
		readings = append(readings, NamedReading{Name: p.name, Reading: NewReading(p.unit)})
	}

	return &Station{
		name:     name,
		category: category,
		index:    index,
		readings: readings,
		// The effluent point has no title to discover.
		discovered: category == CategoryEffluent,
		outputFile: strings.TrimSpace(name) + ".txt",
	}
}

// NewFleet builds the full fleet in fixed poll order: air-quality
// points, then stack-emission units, then the effluent point.
func NewFleet(airQuality, stackEmission int) []*Station {
	fleet := make([]*Station, 0, airQuality+stackEmission+1)
	for i := 1; i <= airQuality; i++ {
		fleet = append(fleet, New("AAQMS ", CategoryAirQuality, i))
	}
	for i := 1; i <= stackEmission; i++ {
		fleet = append(fleet, New("CEMS UNIT# ", CategoryStackEmission, i))
	}
	fleet = append(fleet, New("ETP", CategoryEffluent, 1))
	return fleet
}

// Name returns the station name, including any discovered suffix.
func (s *Station) Name() string { return s.name }

// Category returns the station's category.
func (s *Station) Category() Category { return s.category }

// OutputFile returns the per-station output file name.
func (s *Station) OutputFile() string { return s.outputFile }

// Discovered reports whether the one-time title lookup has succeeded.
func (s *Station) Discovered() bool { return s.discovered }

// Readings returns the station's readings in fixed order.
func (s *Station) Readings() []NamedReading { return s.readings }

// Poll refreshes all readings from the source. The tab is selected
// first, then (until it succeeds) the title lookup runs, then each
// parameter is fetched in fixed order. The first error aborts the
// remaining parameters for this cycle and is returned to the caller;
// readings already ingested this cycle are kept.
func (s *Station) Poll(ctx context.Context, src source.Source) error {
	if err := src.SelectTab(ctx, s.category.Tab()); err != nil {
		return err
	}

	if !s.discovered {
		if err := s.discoverTitle(ctx, src); err != nil {
			return err
		}
	}

	for i := range s.readings {
		q := source.Query{Tab: s.category.Tab(), Station: s.index, Param: i + 1}
		text, err := src.ParamText(ctx, q)
		if err != nil {
			return err
		}
		s.readings[i].Reading.Ingest(text)
	}
	return nil
}

// discoverTitle performs the one-time name/unit suffix lookup. An
// unusable title is not an error; the lookup simply runs again next
// cycle, guarded by the discovered flag.
func (s *Station) discoverTitle(ctx context.Context, src source.Source) error {
	title, err := src.TitleText(ctx, source.Query{Tab: s.category.Tab(), Station: s.index})
	if err != nil {
		return err
	}

	suffix, ok := s.category.titleSuffix(title)
	if !ok {
		return nil
	}

	s.name += suffix
	s.outputFile = s.name + ".txt"
	s.discovered = true
	return nil
}

// titleSuffix extracts the name suffix from a station title. Air-quality
// titles carry a printable location code after the last underscore;
// stack-emission titles carry a numeric unit index there.
func (c Category) titleSuffix(title string) (string, bool) {
	fields := strings.Split(title, "_")
	last := fields[len(fields)-1]

	switch c {
	case CategoryAirQuality:
		for _, r := range last {
			if !unicode.IsPrint(r) {
				return "", false
			}
		}
		suffix := strings.TrimSpace(strings.ToUpper(last))
		return suffix, suffix != ""
	case CategoryStackEmission:
		if last == "" {
			return "", false
		}
		for _, r := range last {
			if r < '0' || r > '9' {
				return "", false
			}
		}
		return last, true
	default:
		return "", false
	}
}

// String renders the canonical one-line station text.
func (s *Station) String() string {
	parts := make([]string, 0, len(s.readings))
	for _, nr := range s.readings {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.ToUpper(nr.Name), nr.Reading))
	}
	return fmt.Sprintf("%s DATA:- %s", s.name, strings.Join(parts, ", "))
}

// WriteOutput overwrites the station's output file in dir with its
// rendered text.
func (s *Station) WriteOutput(dir string) error {
	return os.WriteFile(filepath.Join(dir, s.outputFile), []byte(s.String()), 0o644)
}
