// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/linkage-engine/internal/match"
)

var matchCmd = &cobra.Command{
	Use:   "match <name-a> <name-b>",
	Short: "Score whether two names refer to the same person",
	Long: `Match compares two person names and reports a confidence score with the
rule that produced it: exact match, nickname variant, order swap, initial
match, string similarity, and so on.

With --institution-a and --institution-b, agreement or disagreement of the
affiliations adjusts the final score.`,
	Args: cobra.ExactArgs(2),
	RunE: runMatch,
}

func runMatch(cmd *cobra.Command, args []string) error {
	result := match.Match(args[0], args[1])

	instA, _ := cmd.Flags().GetString("institution-a")
	instB, _ := cmd.Flags().GetString("institution-b")
	if result.Matches && instA != "" && instB != "" {
		result.Confidence = match.AdjustForInstitution(result.Confidence, instA, instB)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	verdict := "different people"
	if result.Matches {
		verdict = "same person"
	}
	fmt.Printf("%s (confidence %d, rule %s)\n", verdict, result.Confidence, result.Type)
	return nil
}

func init() {
	matchCmd.Flags().String("institution-a", "", "affiliation of the first person")
	matchCmd.Flags().String("institution-b", "", "affiliation of the second person")
	matchCmd.Flags().Bool("json", false, "output the match result as JSON")

	rootCmd.AddCommand(matchCmd)
}
