package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/packleader/derbytally/internal/config"
	"github.com/packleader/derbytally/internal/sources"
	"github.com/packleader/derbytally/pkg/classes"
)

// mappingCmd groups mapping utilities.
var mappingCmd = &cobra.Command{
	Use:   "mapping",
	Short: "Class-mapping utilities",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// mappingSuggestCmd emits a mapping skeleton with advisory guesses.
var mappingSuggestCmd = &cobra.Command{
	Use:   "suggest [source files...]",
	Short: "Suggest a class mapping for the labels observed in sources",
	Long: `Suggest collects every distinct class label across the given source
bundles and emits a YAML mapping skeleton. Labels matching a known keyword
family get a guessed standard class; the rest are left empty so a later
merge still fails until they are resolved by hand. Guesses are advisory
only and are never applied implicitly.

Example:
  derbytally mapping suggest day1.yaml day2.yaml > classes.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMappingSuggest,
}

func init() {
	rootCmd.AddCommand(mappingCmd)
	mappingCmd.AddCommand(mappingSuggestCmd)
}

func runMappingSuggest(cmd *cobra.Command, args []string) error {
	set, err := config.ClassSet()
	if err != nil {
		return err
	}

	// Distinct labels across all bundles, first-appearance order.
	seen := make(map[string]bool)
	var labels []string
	for _, path := range args {
		b, err := sources.Load(cmd.Context(), path, set)
		if err != nil {
			return err
		}
		for _, label := range b.Labels() {
			if !seen[label] {
				seen[label] = true
				labels = append(labels, label)
			}
		}
	}

	suggested := make(map[string]string, len(labels))
	var unresolved []string
	for _, label := range labels {
		if guess, ok := classes.Guess(label); ok && set.Contains(guess) {
			suggested[label] = guess.String()
			continue
		}
		suggested[label] = ""
		unresolved = append(unresolved, label)
	}

	data, err := yaml.MarshalWithOptions(map[string]any{"mapping": suggested},
		yaml.Indent(2))
	if err != nil {
		return err
	}
	if _, err := os.Stdout.Write(data); err != nil {
		return err
	}

	for _, label := range unresolved {
		fmt.Fprintf(os.Stderr, "no guess for label %q: fill in a class or %q\n",
			label, classes.Skip)
	}
	return nil
}
