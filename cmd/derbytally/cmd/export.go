package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/packleader/derbytally/internal/cmd/output"
	"github.com/packleader/derbytally/internal/cmd/table"
	"github.com/packleader/derbytally/internal/config"
	"github.com/packleader/derbytally/internal/sources"
	"github.com/packleader/derbytally/pkg/records"
)

var exportMappingFile string

// exportCmd prints the canonical record table for audit and debugging.
var exportCmd = &cobra.Command{
	Use:   "export [source files...]",
	Short: "Export the merged canonical record table",
	Long: `Export merges the given source bundles and prints every canonical heat
row, including unfinished heats, with a stable column ordering. This is the
audit view: it shows exactly what the statistics and rankings were computed
from.

Examples:
  derbytally export results.yaml
  derbytally export --mapping classes.yaml day1.yaml day2.yaml -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportMappingFile, "mapping", "m", "",
		"Standalone class-mapping file applied over inline mappings")
}

func runExport(cmd *cobra.Command, args []string) error {
	set, err := config.ClassSet()
	if err != nil {
		return err
	}

	bundles, err := sources.LoadAll(cmd.Context(), args, exportMappingFile, set)
	if err != nil {
		return err
	}

	tbl, err := records.Merge(cmd.Context(), set, bundles...)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(globalFlags.Output)
	if err != nil {
		return err
	}
	formatter := output.NewFormatter(format)

	if format == output.FormatJSON || format == output.FormatYAML {
		return formatter.Format(os.Stdout, tbl)
	}
	return formatter.Format(os.Stdout, table.ExportToTableData(tbl))
}
