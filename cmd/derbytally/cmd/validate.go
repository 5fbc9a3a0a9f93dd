package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/packleader/derbytally/internal/cmd/output"
	"github.com/packleader/derbytally/internal/cmd/table"
	"github.com/packleader/derbytally/internal/config"
	"github.com/packleader/derbytally/internal/sources"
	"github.com/packleader/derbytally/pkg/records"
	"github.com/packleader/derbytally/pkg/sanity"
)

var validateMappingFile string

// validateCmd checks mapping completeness and racer identity integrity
// without computing standings.
var validateCmd = &cobra.Command{
	Use:   "validate [source files...]",
	Short: "Validate class mappings and racer identity integrity",
	Long: `Validate merges the given source bundles and runs the sanity check.

Merging fails outright when any observed class label lacks a mapping entry.
A racer identity appearing in more than one den class is reported as an
error finding; a finals-only participant is reported as a warning. The
command exits non-zero when error findings exist.

Examples:
  derbytally validate pack42-2024.yaml
  derbytally validate --mapping classes.yaml day1.yaml day2.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateMappingFile, "mapping", "m", "",
		"Standalone class-mapping file applied over inline mappings")
}

func runValidate(cmd *cobra.Command, args []string) error {
	set, err := config.ClassSet()
	if err != nil {
		return err
	}

	bundles, err := sources.LoadAll(cmd.Context(), args, validateMappingFile, set)
	if err != nil {
		return err
	}

	tbl, err := records.Merge(cmd.Context(), set, bundles...)
	if err != nil {
		return err
	}

	report := sanity.Check(tbl, set)

	format, err := output.ParseFormat(globalFlags.Output)
	if err != nil {
		return err
	}
	formatter := output.NewFormatter(format)

	if format == output.FormatJSON || format == output.FormatYAML {
		if err := formatter.Format(os.Stdout, report); err != nil {
			return err
		}
	} else {
		if len(report.Findings) == 0 {
			fmt.Fprintf(os.Stdout, "%d records over %d racers: no findings\n",
				len(tbl), len(tbl.Racers()))
		} else if err := formatter.Format(os.Stdout, table.FindingsToTableData(report)); err != nil {
			return err
		}
	}

	if !report.Valid() {
		return fmt.Errorf("validation failed: %d error finding(s)", len(report.Errors()))
	}
	return nil
}
