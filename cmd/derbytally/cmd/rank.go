package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/agentstation/utc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/packleader/derbytally"
	"github.com/packleader/derbytally/internal/cmd/output"
	"github.com/packleader/derbytally/internal/cmd/table"
	"github.com/packleader/derbytally/internal/config"
	"github.com/packleader/derbytally/internal/sources"
	"github.com/packleader/derbytally/pkg/ranking"
	"github.com/packleader/derbytally/pkg/sanity"
)

var (
	rankMappingFile string
	rankMethod      string
	rankFieldSize   int
	rankWinners     int
	rankNoExclusion bool
)

// rankCmd runs the full reconciliation and ranking pipeline.
var rankCmd = &cobra.Command{
	Use:   "rank [source files...]",
	Short: "Merge sources and compute per-class rankings and award lists",
	Long: `Rank merges the given source bundles into one canonical record table,
validates racer identity integrity, aggregates per-racer statistics, and
computes per-class standings, finalists, wildcards, and the grand-finals
winner exclusion.

Sanity findings are printed to stderr. Error-severity findings do not stop
the computation, but they mark the standings as non-authoritative until the
underlying mapping or entry problem is resolved.

Examples:
  derbytally rank pack42-2024.yaml
  derbytally rank --mapping classes.yaml day1.yaml day2.yaml
  derbytally rank --method average --no-exclusion results.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringVarP(&rankMappingFile, "mapping", "m", "",
		"Standalone class-mapping file applied over inline mappings")
	rankCmd.Flags().StringVar(&rankMethod, "method", "",
		"Scoring method: average or drop-slowest")
	rankCmd.Flags().IntVar(&rankFieldSize, "field-size", -1,
		"Target finals-field size for wildcard selection")
	rankCmd.Flags().IntVar(&rankWinners, "winners", -1,
		"Number of grand-finals winners excluded from den placement")
	rankCmd.Flags().BoolVar(&rankNoExclusion, "no-exclusion", false,
		"Disable the grand-finals-winner exclusion")
}

// rankView is the serialized shape of a rank run; the canonical rows are
// left to the export command.
type rankView struct {
	RunID       string             `json:"run_id" yaml:"run_id"`
	GeneratedAt utc.Time           `json:"generated_at" yaml:"generated_at"`
	Valid       bool               `json:"valid" yaml:"valid"`
	Report      sanity.Report      `json:"report" yaml:"report"`
	Standings   *ranking.Standings `json:"standings" yaml:"standings"`
}

func runRank(cmd *cobra.Command, args []string) error {
	result, err := runPipeline(cmd.Context(), args)
	if err != nil {
		return err
	}

	printFindings(result.Report)

	format, err := output.ParseFormat(globalFlags.Output)
	if err != nil {
		return err
	}

	if format == output.FormatJSON || format == output.FormatYAML {
		formatter := output.NewFormatter(format)
		return formatter.Format(os.Stdout, rankView{
			RunID:       result.RunID,
			GeneratedAt: result.GeneratedAt,
			Valid:       result.Report.Valid(),
			Report:      result.Report,
			Standings:   result.Standings,
		})
	}

	formatter := output.NewFormatter(format)
	wide := format == output.FormatWide
	for _, cs := range result.Standings.Classes {
		if len(cs.Rows) == 0 {
			continue
		}
		fmt.Fprintf(os.Stdout, "\n%s\n", cs.Class)
		if err := formatter.Format(os.Stdout, table.StandingToTableData(cs, wide)); err != nil {
			return err
		}
	}

	fmt.Fprintln(os.Stdout, "\nFinals field")
	return formatter.Format(os.Stdout, table.FinalsFieldToTableData(result.Standings))
}

// runPipeline loads the sources and executes the engine with options built
// from flags over config-file defaults.
func runPipeline(ctx context.Context, paths []string) (*derbytally.Result, error) {
	set, err := config.ClassSet()
	if err != nil {
		return nil, err
	}

	bundles, err := sources.LoadAll(ctx, paths, rankMappingFile, set)
	if err != nil {
		return nil, err
	}

	var method ranking.Method
	if rankMethod != "" {
		method, err = ranking.ParseMethod(rankMethod)
	} else {
		method, err = config.Method()
	}
	if err != nil {
		return nil, err
	}

	// -1 means "not set on the command line": 0 is a valid request for a
	// finals field with no wildcard slots.
	fieldSize := rankFieldSize
	if fieldSize < 0 {
		fieldSize = viper.GetInt(config.KeyFieldSize)
	}
	winners := rankWinners
	if winners < 0 {
		winners = viper.GetInt(config.KeyWinnerCount)
	}
	exclusion := viper.GetBool(config.KeyExclusion) && !rankNoExclusion

	opts := []derbytally.Option{
		derbytally.WithClassSet(set),
		derbytally.WithMethod(method),
		derbytally.WithFieldSize(fieldSize),
	}
	if exclusion {
		opts = append(opts, derbytally.WithWinnerExclusion(winners))
	} else {
		opts = append(opts, derbytally.WithoutWinnerExclusion())
	}

	return derbytally.Run(ctx, bundles, opts...)
}

// printFindings renders sanity findings to stderr so they stay visible even
// when stdout is piped.
func printFindings(report sanity.Report) {
	for _, f := range report.Findings {
		fmt.Fprintf(os.Stderr, "%s: %s\n", f.Severity, f.Message)
	}
	if !report.Valid() {
		fmt.Fprintln(os.Stderr,
			"error findings present: standings are not authoritative until resolved")
	}
}
