// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/linkage-engine/internal/names"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect and export the local profile database",
	Long: `Store manages the local SQLite database of merged researcher profiles
and verification outcomes. Use subcommands to list profiles, show one
profile, or export everything to YAML or JSON.`,
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored researcher profiles",
	RunE:  runStoreList,
}

func runStoreList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	researchers, err := s.ListResearchers(context.Background())
	if err != nil {
		return err
	}
	if len(researchers) == 0 {
		fmt.Println("No profiles stored.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-30s  %-40s  %-8s  %s\n", "Name", "Affiliation", "H-index", "Sources")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, r := range researchers {
		aff := r.Affiliation
		if len(aff) > 40 {
			aff = aff[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-30s  %-40s  %-8d  %s\n",
			r.Name, aff, r.HIndex, strings.Join(r.Sources, ","))
	}
	fmt.Fprintf(os.Stdout, "\n%d profiles\n", len(researchers))
	return nil
}

var storeShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one stored profile with its verification outcome",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreShow,
}

func runStoreShow(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	key := names.Normalize(args[0]).Full
	r, err := s.GetResearcher(context.Background(), key)
	if err != nil {
		return err
	}

	out := map[string]any{"researcher": r}
	if v, err := s.GetVerification(context.Background(), key); err == nil {
		out["verification"] = v
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the profile database to YAML or JSON",
	RunE:  runStoreExport,
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	dataDir := storeConfig().DataDir
	switch format {
	case "yaml", "":
		if err := s.ExportYAML(context.Background()); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/export.yaml\n", dataDir)
	case "json":
		if err := s.ExportJSON(context.Background()); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/export.json\n", dataDir)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	return nil
}

func init() {
	storeExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeShowCmd)
	storeCmd.AddCommand(storeExportCmd)

	rootCmd.AddCommand(storeCmd)
}
