// Package records defines the raw and canonical heat-record model and the
// merge step that consolidates rows from multiple sources into one canonical
// table keyed by racer identity.
package records

import (
	"fmt"

	"github.com/packleader/derbytally/pkg/classes"
)

// Raw is one heat attempt as exported by a source, before normalization.
// FinishTime is in seconds; zero or negative means the heat was not finished.
// Unfinished rows are excluded from averaging but retained for audit.
type Raw struct {
	Year        int     `json:"year" yaml:"year"`
	FirstName   string  `json:"first_name" yaml:"first_name"`
	LastName    string  `json:"last_name" yaml:"last_name"`
	CarNumber   int     `json:"car_number" yaml:"car_number"`
	CarName     string  `json:"car_name" yaml:"car_name"`
	ClassLabel  string  `json:"class" yaml:"class"`
	RoundID     int     `json:"round" yaml:"round"`
	Heat        int     `json:"heat" yaml:"heat"`
	Lane        int     `json:"lane" yaml:"lane"`
	Completed   bool    `json:"completed" yaml:"completed"`
	FinishTime  float64 `json:"finish_time" yaml:"finish_time"`
	FinishPlace int     `json:"finish_place" yaml:"finish_place"`
}

// Finished reports whether the row carries a usable finish time.
func (r Raw) Finished() bool {
	return r.FinishTime > 0
}

// RacerKey is the composite identity of a racer: first name, last name, and
// car number. Car numbers are only unique within a season and division, and
// source-assigned internal identifiers do not survive across files, so this
// tuple is the unit of identity across the whole engine.
type RacerKey struct {
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	CarNumber int    `json:"car_number" yaml:"car_number"`
}

// Key derives the racer identity of a raw row.
func (r Raw) Key() RacerKey {
	return RacerKey{FirstName: r.FirstName, LastName: r.LastName, CarNumber: r.CarNumber}
}

// FullName returns "First Last".
func (k RacerKey) FullName() string {
	return k.FirstName + " " + k.LastName
}

// String returns the display form of the key, e.g. "Sam Harper #42".
func (k RacerKey) String() string {
	return fmt.Sprintf("%s #%d", k.FullName(), k.CarNumber)
}

// Canonical is one heat attempt after class normalization: the raw row plus
// the original label it carried, the standard class it mapped to, and the
// derived racer key.
type Canonical struct {
	Raw           `json:",inline" yaml:",inline"`
	OriginalLabel string       `json:"original_class" yaml:"original_class"`
	StandardClass classes.Name `json:"standard_class" yaml:"standard_class"`
	Racer         RacerKey     `json:"racer" yaml:"racer"`
}

// RacerClassID returns the racer-class identity string used in the audit
// export, e.g. "Sam Harper #42 / Wolf".
func (c Canonical) RacerClassID() string {
	return c.Racer.String() + " / " + c.StandardClass.String()
}

// Table is the canonical record table produced by a merge run. Row order is
// source order; multiple heats per racer are expected and required for
// statistics, so no row-level deduplication ever happens.
type Table []Canonical

// Racers returns the distinct racer keys in first-appearance order.
func (t Table) Racers() []RacerKey {
	seen := make(map[RacerKey]bool, len(t))
	keys := make([]RacerKey, 0, len(t))
	for _, row := range t {
		if !seen[row.Racer] {
			seen[row.Racer] = true
			keys = append(keys, row.Racer)
		}
	}
	return keys
}

// Classes returns the distinct standard classes in first-appearance order.
func (t Table) Classes() []classes.Name {
	seen := make(map[classes.Name]bool)
	names := make([]classes.Name, 0, 8)
	for _, row := range t {
		if !seen[row.StandardClass] {
			seen[row.StandardClass] = true
			names = append(names, row.StandardClass)
		}
	}
	return names
}

// Bundle is the merge input for one source: its raw rows, the class mapping
// that covers them, and the season year the file belongs to. Rows without a
// year inherit the bundle year.
type Bundle struct {
	Source  string          `json:"source" yaml:"source"`
	Year    int             `json:"year" yaml:"year"`
	Mapping classes.Mapping `json:"-" yaml:"-"`
	Records []Raw           `json:"records" yaml:"records"`
}

// Labels returns the distinct raw class labels observed in the bundle, in
// first-appearance order.
func (b Bundle) Labels() []string {
	seen := make(map[string]bool)
	labels := make([]string, 0, 8)
	for _, r := range b.Records {
		if !seen[r.ClassLabel] {
			seen[r.ClassLabel] = true
			labels = append(labels, r.ClassLabel)
		}
	}
	return labels
}
