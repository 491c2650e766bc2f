// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/linkage-engine/internal/group"
	"github.com/pdiddy/linkage-engine/internal/store"
	"github.com/pdiddy/linkage-engine/pkg/types"
)

var groupCmd = &cobra.Command{
	Use:   "group <candidates-file>",
	Short: "Group duplicate candidate records into merged profiles",
	Long: `Group reads candidate researcher records from a YAML or JSON file,
clusters records that refer to the same person, and merges each cluster
into a single profile. Output goes to stdout or, with --save, into the
local database for later verification runs.`,
	Args: cobra.ExactArgs(1),
	RunE: runGroup,
}

func runGroup(cmd *cobra.Command, args []string) error {
	candidates, err := readCandidates(args[0])
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return fmt.Errorf("no candidates found in %s", args[0])
	}

	merged := group.GroupAndMerge(candidates)
	fmt.Fprintf(os.Stderr, "%d candidates -> %d profiles\n", len(candidates), len(merged))

	if save, _ := cmd.Flags().GetBool("save"); save {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		for _, r := range merged {
			if err := s.SaveResearcher(context.Background(), r); err != nil {
				return err
			}
		}
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(merged)
	}

	data, err := yaml.Marshal(merged)
	if err != nil {
		return fmt.Errorf("marshaling profiles: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}

// readCandidates parses a candidates file, choosing the codec by
// extension: .json is JSON, everything else is YAML.
func readCandidates(path string) ([]types.Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading candidates file: %w", err)
	}

	var candidates []types.Candidate
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &candidates); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return candidates, nil
	}
	if err := yaml.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return candidates, nil
}

// openStore opens the local database using the configured data directory.
func openStore() (*store.Store, error) {
	return store.New(storeConfig())
}

func init() {
	groupCmd.Flags().Bool("json", false, "output merged profiles as JSON")
	groupCmd.Flags().Bool("save", false, "save merged profiles to the local database")

	rootCmd.AddCommand(groupCmd)
}
