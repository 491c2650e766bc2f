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

	"github.com/pdiddy/linkage-engine/internal/names"
	"github.com/pdiddy/linkage-engine/internal/verify"
	"github.com/pdiddy/linkage-engine/pkg/types"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <name>",
	Short: "Verify a claimed researcher identity against PubMed",
	Long: `Verify searches PubMed for recent publications under the given name and
its common variants, filters the results to the right person, and reports
whether the publication record supports the claimed identity.

With --expertise and --institution, the report also flags publication
topics or extracted affiliations that contradict the claim.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	expertiseCSV, _ := cmd.Flags().GetString("expertise")
	institutionFlag, _ := cmd.Flags().GetString("institution")

	claim := verify.Claim{
		Name:        args[0],
		Institution: institutionFlag,
	}
	for _, e := range strings.Split(expertiseCSV, ",") {
		if e = strings.TrimSpace(e); e != "" {
			claim.Expertise = append(claim.Expertise, e)
		}
	}

	backend, delay := newSearchBackend()
	v := verify.New(backend, verifyConfig(), delay, os.Stderr)

	result, err := v.Verify(context.Background(), claim)
	if err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		key := names.Normalize(claim.Name).Full
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.SaveResearcher(context.Background(), types.MergedResearcher{
			Name:           claim.Name,
			NormalizedName: key,
			Affiliation:    result.Affiliation,
		}); err != nil {
			return err
		}
		if err := s.SaveVerification(context.Background(), key, result); err != nil {
			return err
		}
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printVerification(claim, result)
	return nil
}

func printVerification(claim verify.Claim, r types.VerificationResult) {
	if r.Verified {
		fmt.Printf("VERIFIED: %s (%d publications, expertise confidence %.2f)\n",
			claim.Name, r.PublicationCount, r.Confidence)
		if r.Affiliation != "" {
			fmt.Printf("  affiliation: %s\n", r.Affiliation)
		}
		if r.InstitutionMismatch {
			fmt.Printf("  WARNING: published affiliation disagrees with claimed institution %q\n", claim.Institution)
		}
		if r.ExpertiseMismatch {
			fmt.Printf("  WARNING: publications do not mention the claimed expertise\n")
		}
		return
	}
	fmt.Printf("NOT VERIFIED: %s (%s)\n", claim.Name, r.Reason)
}

// verifyConfig assembles verification settings from viper, falling back
// to the package defaults.
func verifyConfig() types.VerifyConfig {
	return types.VerifyConfig{
		MinPublications:            viper.GetInt("verify.min_publications"),
		YearsBack:                  viper.GetInt("verify.years_back"),
		MaxNameVariants:            viper.GetInt("verify.max_name_variants"),
		NeutralExpertiseConfidence: viper.GetFloat64("verify.neutral_expertise_confidence"),
	}
}

// storeConfig reads the data directory from viper.
func storeConfig() types.StoreConfig {
	dataDir := viper.GetString("store.data_dir")
	if dataDir == "" {
		dataDir = "data"
	}
	return types.StoreConfig{DataDir: dataDir}
}

func init() {
	verifyCmd.Flags().String("expertise", "", "claimed expertise areas (comma-separated)")
	verifyCmd.Flags().String("institution", "", "claimed institution")
	verifyCmd.Flags().Bool("save", false, "save the verification outcome to the local database")
	verifyCmd.Flags().Bool("json", false, "output the result as JSON")

	rootCmd.AddCommand(verifyCmd)
}
