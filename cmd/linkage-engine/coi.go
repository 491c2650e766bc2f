// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/linkage-engine/internal/coi"
	"github.com/pdiddy/linkage-engine/pkg/types"
)

var coiCmd = &cobra.Command{
	Use:   "coi <candidate-name>",
	Short: "Screen a candidate for co-authorship conflicts",
	Long: `Coi checks whether the candidate has published jointly with any of the
named researchers, typically a review panel. Names come from --with as a
comma-separated list or from --panel-file, one name per line.`,
	Args: cobra.ExactArgs(1),
	RunE: runCOI,
}

func runCOI(cmd *cobra.Command, args []string) error {
	others, err := panelNames(cmd)
	if err != nil {
		return err
	}
	if len(others) == 0 {
		return fmt.Errorf("no panel names given: use --with or --panel-file")
	}

	backend, _ := newSearchBackend()
	cfg := searchConfig()
	checker := coi.New(backend, coiConfig(), cfg.APIKey != "", os.Stderr)

	report, err := checker.Check(context.Background(), args[0], others)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	if !report.HasCOI {
		fmt.Printf("no conflicts found for %s across %d panel members\n", args[0], len(others))
		return nil
	}

	fmt.Printf("CONFLICTS for %s:\n", args[0])
	for _, d := range report.Details {
		fmt.Printf("  %s: %d joint publication(s)\n", d.Name, d.JointPublications)
		for _, title := range d.SampleTitles {
			fmt.Printf("    - %s\n", title)
		}
	}
	return nil
}

// panelNames collects the other names from --with and --panel-file.
func panelNames(cmd *cobra.Command) ([]string, error) {
	var names []string

	withCSV, _ := cmd.Flags().GetString("with")
	for _, n := range strings.Split(withCSV, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}

	panelFile, _ := cmd.Flags().GetString("panel-file")
	if panelFile != "" {
		data, err := os.ReadFile(panelFile)
		if err != nil {
			return nil, fmt.Errorf("reading panel file: %w", err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if line = strings.TrimSpace(line); line != "" && !strings.HasPrefix(line, "#") {
				names = append(names, line)
			}
		}
	}
	return names, nil
}

func coiConfig() types.COIConfig {
	return types.COIConfig{
		BatchSize:  viper.GetInt("coi.batch_size"),
		BatchPause: viper.GetDuration("coi.batch_pause"),
	}
}

func init() {
	coiCmd.Flags().String("with", "", "panel member names (comma-separated)")
	coiCmd.Flags().String("panel-file", "", "file with one panel member name per line")
	coiCmd.Flags().Bool("json", false, "output the report as JSON")

	rootCmd.AddCommand(coiCmd)
}
