// Package derbytally consolidates heat-race timing results from multiple
// independent sources into one canonical record table with verified identity
// integrity, then computes per-class rankings and award lists under a
// configurable scoring policy.
//
// The pipeline is a pure, synchronous transformation: merge source bundles
// under their class mappings, sanity-check racer identities, aggregate
// per-racer statistics, and rank. Each run recomputes everything from the
// canonical table; nothing is patched incrementally, and no process-wide
// mutable state is involved.
package derbytally

import (
	"context"

	"github.com/agentstation/utc"
	"github.com/google/uuid"

	"github.com/packleader/derbytally/pkg/classes"
	"github.com/packleader/derbytally/pkg/logging"
	"github.com/packleader/derbytally/pkg/ranking"
	"github.com/packleader/derbytally/pkg/records"
	"github.com/packleader/derbytally/pkg/sanity"
	"github.com/packleader/derbytally/pkg/stats"
)

// Result is the complete output of one merge run. Findings are always
// returned alongside the computed output: the engine never hides a
// validation problem behind a successful-looking result. Callers must treat
// the standings as non-authoritative while Report carries error findings.
type Result struct {
	RunID       string             `json:"run_id" yaml:"run_id"`
	GeneratedAt utc.Time           `json:"generated_at" yaml:"generated_at"`
	Records     records.Table      `json:"records" yaml:"records"`
	Report      sanity.Report      `json:"report" yaml:"report"`
	Stats       []stats.RacerClass `json:"stats" yaml:"stats"`
	Standings   *ranking.Standings `json:"standings" yaml:"standings"`
}

// Option configures a merge run.
type Option func(*config)

type config struct {
	set     classes.Set
	ranking []ranking.Option
}

// WithClassSet overrides the standard class vocabulary for the run.
func WithClassSet(set classes.Set) Option {
	return func(c *config) { c.set = set }
}

// WithMethod selects the scoring key policy.
func WithMethod(m ranking.Method) Option {
	return func(c *config) { c.ranking = append(c.ranking, ranking.WithMethod(m)) }
}

// WithFieldSize sets the target finals-field size for wildcard selection.
func WithFieldSize(n int) Option {
	return func(c *config) { c.ranking = append(c.ranking, ranking.WithFieldSize(n)) }
}

// WithWinnerExclusion enables the grand-finals-winner exclusion with the
// given count.
func WithWinnerExclusion(n int) Option {
	return func(c *config) { c.ranking = append(c.ranking, ranking.WithWinnerExclusion(n)) }
}

// WithoutWinnerExclusion disables the grand-finals-winner exclusion.
func WithoutWinnerExclusion() Option {
	return func(c *config) { c.ranking = append(c.ranking, ranking.WithoutWinnerExclusion()) }
}

// Run executes the full pipeline over the given source bundles. It fails
// only on the merge precondition (an observed class label without a mapping
// entry); sanity findings are returned in the Result, never as an error.
// The run ID is attached to the context logger, so every log line below the
// call carries it.
func Run(ctx context.Context, bundles []records.Bundle, opts ...Option) (*Result, error) {
	cfg := &config{set: classes.DefaultSet()}
	for _, opt := range opts {
		opt(cfg)
	}

	runID := uuid.NewString()
	ctx = logging.WithRun(ctx, runID)
	log := logging.FromContext(ctx)

	table, err := records.Merge(ctx, cfg.set, bundles...)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("rows", len(table)).Int("bundles", len(bundles)).
		Msg("Built canonical record table")

	report := sanity.Check(table, cfg.set)
	if !report.Valid() {
		log.Warn().Int("errors", len(report.Errors())).
			Msg("Sanity check found identity ambiguities; output is not authoritative until resolved")
	}

	groups := stats.Aggregate(table)
	standings := ranking.Rank(groups, cfg.set, cfg.ranking...)
	log.Debug().
		Int("groups", len(groups)).
		Int("finalists", len(standings.Finalists)).
		Int("wildcards", len(standings.Wildcards)).
		Msg("Computed standings")

	return &Result{
		RunID:       runID,
		GeneratedAt: utc.Now(),
		Records:     table,
		Report:      report,
		Stats:       groups,
		Standings:   standings,
	}, nil
}
