// Package ranking derives per-class orderings from aggregated racer
// statistics and selects the award lists: one finalist per den class,
// wildcard fill-ins for the finals field, and the grand-finals-winner
// exclusion applied to den-class placement numbering.
package ranking

import (
	"sort"

	"github.com/packleader/derbytally/pkg/classes"
	"github.com/packleader/derbytally/pkg/errors"
	"github.com/packleader/derbytally/pkg/records"
	"github.com/packleader/derbytally/pkg/stats"
)

// Method selects the scoring key used to order racers within a class.
type Method string

const (
	// MethodAverage scores by the mean of all qualifying heat times.
	MethodAverage Method = "average"
	// MethodDropSlowest scores by the mean excluding the single worst heat.
	MethodDropSlowest Method = "drop-slowest"
)

// String returns the string representation of a method.
func (m Method) String() string {
	return string(m)
}

// ParseMethod converts a string to a Method with validation.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodAverage:
		return MethodAverage, nil
	case MethodDropSlowest, "":
		return MethodDropSlowest, nil
	default:
		return "", errors.NewValidationError("method", s,
			"must be one of: average, drop-slowest")
	}
}

// Score returns the scoring-key value of a stats group under the method.
func (m Method) Score(g stats.RacerClass) float64 {
	if m == MethodAverage {
		return g.AvgTime
	}
	return g.AvgExceptSlowest
}

// Defaults for the finals field and the winner exclusion policy.
const (
	DefaultFieldSize   = 12
	DefaultWinnerCount = 3
)

// Row is one racer in a class standing. Place is 1-based; 0 means no place
// label, either because the racer is an excluded grand-finals winner or
// because they never finished a heat.
type Row struct {
	Stats    stats.RacerClass `json:"stats" yaml:"stats"`
	Score    float64          `json:"score" yaml:"score"`
	Place    int              `json:"place" yaml:"place"`
	Excluded bool             `json:"excluded" yaml:"excluded"`
}

// ClassStanding is the ordered result list for one standard class.
type ClassStanding struct {
	Class  classes.Name `json:"class" yaml:"class"`
	Finals bool         `json:"finals" yaml:"finals"`
	Rows   []Row        `json:"rows" yaml:"rows"`
}

// Standings is the full ranking output for one merge run.
type Standings struct {
	Method          Method             `json:"method" yaml:"method"`
	Classes         []ClassStanding    `json:"classes" yaml:"classes"`
	Finalists       []records.RacerKey `json:"finalists" yaml:"finalists"`
	Wildcards       []records.RacerKey `json:"wildcards" yaml:"wildcards"`
	ExcludedWinners []records.RacerKey `json:"excluded_winners" yaml:"excluded_winners"`
}

// Class returns the standing for the named class, or nil.
func (s *Standings) Class(name classes.Name) *ClassStanding {
	for i := range s.Classes {
		if s.Classes[i].Class == name {
			return &s.Classes[i]
		}
	}
	return nil
}

// Option configures the ranking engine.
type Option func(*engine)

// WithMethod selects the scoring key policy.
func WithMethod(m Method) Option {
	return func(e *engine) { e.method = m }
}

// WithFieldSize sets the target finals-field size used for wildcard
// selection.
func WithFieldSize(n int) Option {
	return func(e *engine) {
		if n >= 0 {
			e.fieldSize = n
		}
	}
}

// WithWinnerExclusion enables the grand-finals-winner exclusion with the
// given excluded-winner count.
func WithWinnerExclusion(n int) Option {
	return func(e *engine) {
		e.exclude = true
		if n >= 0 {
			e.winnerCount = n
		}
	}
}

// WithoutWinnerExclusion disables the grand-finals-winner exclusion.
func WithoutWinnerExclusion() Option {
	return func(e *engine) { e.exclude = false }
}

type engine struct {
	method      Method
	fieldSize   int
	winnerCount int
	exclude     bool
}

// Rank orders every class by the selected scoring key and derives the award
// lists. The sort is stable: racers with equal scores keep their aggregation
// order, which is the merge order. Racers with no qualifying finish sort
// after all finishers and never take a place, a finalist slot, or a wildcard
// slot. The underlying statistical order is never altered by the winner
// exclusion; only place labels are.
func Rank(groups []stats.RacerClass, set classes.Set, opts ...Option) *Standings {
	e := &engine{
		method:      MethodDropSlowest,
		fieldSize:   DefaultFieldSize,
		winnerCount: DefaultWinnerCount,
		exclude:     true,
	}
	for _, opt := range opts {
		opt(e)
	}

	byClass := make(map[classes.Name][]stats.RacerClass)
	for _, g := range groups {
		byClass[g.Class] = append(byClass[g.Class], g)
	}

	standings := &Standings{Method: e.method}
	ordered := make(map[classes.Name][]Row, set.Len())
	for _, name := range set.Names() {
		rows := e.order(byClass[name])
		ordered[name] = rows
		standings.Classes = append(standings.Classes, ClassStanding{
			Class:  name,
			Finals: set.IsFinals(name),
			Rows:   rows,
		})
	}

	excluded := e.excludedWinners(ordered[set.Finals()])
	standings.ExcludedWinners = excluded
	excludedSet := make(map[records.RacerKey]bool, len(excluded))
	for _, key := range excluded {
		excludedSet[key] = true
	}

	finalistSet := make(map[records.RacerKey]bool)
	for i := range standings.Classes {
		cs := &standings.Classes[i]
		if cs.Finals {
			e.placeFinals(cs.Rows)
			continue
		}
		e.placeDen(cs.Rows, excludedSet)
		if key, ok := classWinner(cs.Rows); ok {
			standings.Finalists = append(standings.Finalists, key)
			finalistSet[key] = true
		}
	}

	standings.Wildcards = e.wildcards(standings.Classes, finalistSet)
	return standings
}

// order sorts one class ascending by score, stable, with non-finishers after
// all finishers in their original aggregation order.
func (e *engine) order(groups []stats.RacerClass) []Row {
	rows := make([]Row, 0, len(groups))
	var tail []Row
	for _, g := range groups {
		row := Row{Stats: g, Score: e.method.Score(g)}
		if g.RaceCount == 0 {
			tail = append(tail, row)
			continue
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score < rows[j].Score
	})
	return append(rows, tail...)
}

// excludedWinners returns the fastest N finishers of the finals class. An
// empty finals class yields an empty set.
func (e *engine) excludedWinners(finalsRows []Row) []records.RacerKey {
	if !e.exclude {
		return nil
	}
	keys := make([]records.RacerKey, 0, e.winnerCount)
	for _, row := range finalsRows {
		if len(keys) == e.winnerCount {
			break
		}
		if row.Stats.RaceCount == 0 {
			continue
		}
		keys = append(keys, row.Stats.Racer)
	}
	return keys
}

// placeDen assigns place labels within a den class. Excluded grand-finals
// winners keep their sort position but receive no place, and the place
// counter does not advance for them: the displayed place at sorted index i
// is i minus the number of excluded racers strictly before i, plus one.
func (e *engine) placeDen(rows []Row, excluded map[records.RacerKey]bool) {
	place := 0
	for i := range rows {
		if rows[i].Stats.RaceCount == 0 {
			continue
		}
		if excluded[rows[i].Stats.Racer] {
			rows[i].Excluded = true
			continue
		}
		place++
		rows[i].Place = place
	}
}

// placeFinals assigns ordinary contiguous placement in the finals class.
func (e *engine) placeFinals(rows []Row) {
	place := 0
	for i := range rows {
		if rows[i].Stats.RaceCount == 0 {
			continue
		}
		place++
		rows[i].Place = place
	}
}

// classWinner returns the rank-1 finisher of a den class. The winner is the
// first row of the statistical order regardless of exclusion: exclusion
// touches place labels only.
func classWinner(rows []Row) (records.RacerKey, bool) {
	for _, row := range rows {
		if row.Stats.RaceCount > 0 {
			return row.Stats.Racer, true
		}
	}
	return records.RacerKey{}, false
}

// wildcards pools every non-finalist den finisher, sorts ascending by score,
// and takes the fastest max(0, W - finalistCount) of them. A racer key takes
// at most one slot: a racer listed in several den classes (an identity the
// sanity check already flags) counts once, at their fastest score.
func (e *engine) wildcards(standings []ClassStanding, finalists map[records.RacerKey]bool) []records.RacerKey {
	want := e.fieldSize - len(finalists)
	if want <= 0 {
		return nil
	}

	var pool []Row
	for _, cs := range standings {
		if cs.Finals {
			continue
		}
		for _, row := range cs.Rows {
			if row.Stats.RaceCount == 0 || finalists[row.Stats.Racer] {
				continue
			}
			pool = append(pool, row)
		}
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Score < pool[j].Score
	})

	keys := make([]records.RacerKey, 0, want)
	seen := make(map[records.RacerKey]bool, want)
	for _, row := range pool {
		if len(keys) == want {
			break
		}
		if seen[row.Stats.Racer] {
			continue
		}
		seen[row.Stats.Racer] = true
		keys = append(keys, row.Stats.Racer)
	}
	return keys
}
