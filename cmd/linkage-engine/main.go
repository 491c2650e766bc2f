// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the linkage-engine CLI.
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/linkage-engine/internal/pubsearch"
	"github.com/pdiddy/linkage-engine/internal/secrets"
	"github.com/pdiddy/linkage-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the linkage-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "linkage-engine",
	Short: "Identity resolution for researcher records",
	Long: `linkage-engine resolves researcher identities across data sources. It
normalizes and compares person names, groups duplicate candidate records
into merged profiles, verifies claimed identities against the PubMed
corpus, and screens reviewer panels for conflicts of interest.

Each stage is a subcommand: match, group, verify, coi, and store. Stages
compose through files, so partial pipelines are first-class.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./linkage-engine.yaml or ~/.config/linkage-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("linkage-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "linkage-engine"))
		}
	}

	viper.SetEnvPrefix("LINKAGE_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// searchConfig assembles the PubMed search configuration from viper and
// the loaded secrets.
func searchConfig() types.SearchConfig {
	cfg := types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("search.timeout"),
			UserAgent: viper.GetString("search.user_agent"),
		},
		MaxResults:   viper.GetInt("search.max_results"),
		APIKey:       secretDefault("ncbi-api-key", viper.GetString("search.api_key")),
		RequestDelay: viper.GetDuration("search.request_delay"),
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "linkage-engine/" + version
	}
	return cfg
}

// newSearchBackend builds the Entrez client and its inter-request delay.
func newSearchBackend() (pubsearch.PublicationSearch, time.Duration) {
	client := pubsearch.NewEntrezClient(searchConfig())
	return client, client.RequestDelay()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
