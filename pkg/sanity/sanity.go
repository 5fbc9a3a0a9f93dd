// Package sanity validates identity integrity of the canonical record table:
// every racer key must participate in exactly one non-finals class. Findings
// are never fatal; computation proceeds, but error-severity findings mark the
// output as unfit for authoritative use until resolved.
package sanity

import (
	"fmt"

	"github.com/packleader/derbytally/pkg/classes"
	"github.com/packleader/derbytally/pkg/records"
)

// Severity classifies a finding.
type Severity string

const (
	// SeverityError blocks the correctness guarantee of the run output.
	SeverityError Severity = "error"
	// SeverityWarning is informational but notable.
	SeverityWarning Severity = "warning"
	// SeverityInfo is reserved for secondary observations.
	SeverityInfo Severity = "info"
)

// String returns the string representation of a severity.
func (s Severity) String() string {
	return string(s)
}

// Finding is one validation observation about a racer identity.
type Finding struct {
	Severity Severity         `json:"severity" yaml:"severity"`
	Racer    records.RacerKey `json:"racer" yaml:"racer"`
	Classes  []classes.Name   `json:"classes,omitempty" yaml:"classes,omitempty"`
	Message  string           `json:"message" yaml:"message"`
}

// Report is the structured result of a sanity check.
type Report struct {
	Findings []Finding `json:"findings" yaml:"findings"`
}

// Valid reports whether the table passed validation, i.e. no error-severity
// finding exists. Warning and info findings do not affect validity.
func (r Report) Valid() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Errors returns the error-severity findings.
func (r Report) Errors() []Finding {
	return r.bySeverity(SeverityError)
}

// Warnings returns the warning-severity findings.
func (r Report) Warnings() []Finding {
	return r.bySeverity(SeverityWarning)
}

func (r Report) bySeverity(s Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == s {
			out = append(out, f)
		}
	}
	return out
}

// Check validates that every racer identity appears in at most one non-finals
// class. A racer spanning multiple den classes yields an error finding: their
// statistics would be silently pooled across classes they do not belong to.
// A racer appearing only in the finals class yields a warning finding.
// Racers are visited in first-appearance order so findings are stable across
// runs over the same table.
func Check(table records.Table, set classes.Set) Report {
	denClasses := make(map[records.RacerKey][]classes.Name)
	inFinals := make(map[records.RacerKey]bool)

	for _, row := range table {
		if set.IsFinals(row.StandardClass) {
			inFinals[row.Racer] = true
			continue
		}
		seen := false
		for _, n := range denClasses[row.Racer] {
			if n == row.StandardClass {
				seen = true
				break
			}
		}
		if !seen {
			denClasses[row.Racer] = append(denClasses[row.Racer], row.StandardClass)
		}
	}

	var report Report
	for _, key := range table.Racers() {
		dens := denClasses[key]
		switch {
		case len(dens) > 1:
			report.Findings = append(report.Findings, Finding{
				Severity: SeverityError,
				Racer:    key,
				Classes:  dens,
				Message: fmt.Sprintf("%s appears in %d den classes; statistics are ambiguous",
					key, len(dens)),
			})
		case len(dens) == 0 && inFinals[key]:
			report.Findings = append(report.Findings, Finding{
				Severity: SeverityWarning,
				Racer:    key,
				Message:  fmt.Sprintf("%s appears only in the finals class", key),
			})
		}
	}
	return report
}
