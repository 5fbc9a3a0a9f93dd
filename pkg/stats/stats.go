// Package stats aggregates the canonical record table into per-racer,
// per-class summary statistics. Aggregation is a total function over the
// table: groups with no qualifying finish time produce a zeroed record
// rather than being omitted, so "registered but never finished" is
// detectable explicitly.
package stats

import (
	"math"
	"sort"

	"github.com/packleader/derbytally/pkg/classes"
	"github.com/packleader/derbytally/pkg/records"
)

// RacerClass holds the aggregated statistics for one racer identity within
// one standard class. Times are the qualifying finish times in row order.
type RacerClass struct {
	Racer            records.RacerKey `json:"racer" yaml:"racer"`
	Class            classes.Name     `json:"class" yaml:"class"`
	CarName          string           `json:"car_name,omitempty" yaml:"car_name,omitempty"`
	Times            []float64        `json:"times,omitempty" yaml:"times,omitempty"`
	RaceCount        int              `json:"race_count" yaml:"race_count"`
	AvgTime          float64          `json:"avg_time" yaml:"avg_time"`
	AvgExceptSlowest float64          `json:"avg_except_slowest" yaml:"avg_except_slowest"`
	BestTime         float64          `json:"best_time" yaml:"best_time"`
	WorstTime        float64          `json:"worst_time" yaml:"worst_time"`
	Median           float64          `json:"median" yaml:"median"`
	StdDev           float64          `json:"std_dev" yaml:"std_dev"`
}

// groupKey identifies one aggregation group.
type groupKey struct {
	racer records.RacerKey
	class classes.Name
}

// Aggregate groups the canonical table by (racer key, standard class) and
// computes summary statistics per group. Only rows with a positive finish
// time qualify for the numbers; every heat row of a group is consumed, never
// just the first-seen instance of a racer. Group order is first appearance
// in the table, which downstream ranking relies on as its tie order.
func Aggregate(table records.Table) []RacerClass {
	index := make(map[groupKey]int)
	groups := make([]RacerClass, 0, len(table)/4+1)

	for _, row := range table {
		key := groupKey{racer: row.Racer, class: row.StandardClass}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, RacerClass{Racer: row.Racer, Class: row.StandardClass})
		}
		if groups[i].CarName == "" {
			groups[i].CarName = row.CarName
		}
		if row.Finished() {
			groups[i].Times = append(groups[i].Times, row.FinishTime)
		}
	}

	for i := range groups {
		compute(&groups[i])
	}
	return groups
}

// compute fills the derived fields of a group from its qualifying times.
func compute(g *RacerClass) {
	n := len(g.Times)
	g.RaceCount = n
	if n == 0 {
		return
	}

	sum := 0.0
	g.BestTime = g.Times[0]
	g.WorstTime = g.Times[0]
	for _, t := range g.Times {
		sum += t
		if t < g.BestTime {
			g.BestTime = t
		}
		if t > g.WorstTime {
			g.WorstTime = t
		}
	}
	g.AvgTime = sum / float64(n)

	// Official scoring discards each racer's single worst heat. With one
	// heat there is nothing to discard.
	if n > 1 {
		g.AvgExceptSlowest = (sum - g.WorstTime) / float64(n-1)
	} else {
		g.AvgExceptSlowest = g.AvgTime
	}

	sorted := make([]float64, n)
	copy(sorted, g.Times)
	sort.Float64s(sorted)
	if n%2 == 1 {
		g.Median = sorted[n/2]
	} else {
		g.Median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	// Population standard deviation: divide by n, not n-1.
	sq := 0.0
	for _, t := range g.Times {
		d := t - g.AvgTime
		sq += d * d
	}
	g.StdDev = math.Sqrt(sq / float64(n))
}
