// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pharma-papers CLI, which fetches
// PubMed records and reports the papers whose authors are affiliated with
// pharmaceutical or biotech companies.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pharma-papers/internal/secrets"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds NCBI credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the pharma-papers CLI.
var rootCmd = &cobra.Command{
	Use:   "pharma-papers",
	Short: "Find PubMed papers with pharmaceutical/biotech company authors",
	Long: `pharma-papers queries PubMed, classifies each author's affiliation as
academic or commercial, and writes a CSV report of the papers that have at
least one author from a pharmaceutical or biotech company.

The classification is heuristic: a company reference set is checked first,
then corporate suffixes, then the author's email domain. Academic markers
in the affiliation always win over commercial signals.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pharma-papers.yaml or ~/.config/pharma-papers/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pharma-papers")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pharma-papers"))
		}
	}

	viper.SetEnvPrefix("PHARMA_PAPERS")
	viper.AutomaticEnv()

	viper.SetDefault("fetch.timeout", "30s")
	viper.SetDefault("fetch.user_agent", "pharma-papers/"+version)
	viper.SetDefault("fetch.max_results", 100)
	viper.SetDefault("fetch.batch_size", 50)
	viper.SetDefault("fetch.requests_per_second", 0)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the stage configuration from viper and the secrets
// directory. Secrets fill in credentials the config file left empty.
func loadConfig() types.Config {
	timeout, err := time.ParseDuration(viper.GetString("fetch.timeout"))
	if err != nil {
		timeout = 0
	}

	return types.Config{
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   timeout,
				UserAgent: viper.GetString("fetch.user_agent"),
			},
			MaxResults:        viper.GetInt("fetch.max_results"),
			BatchSize:         viper.GetInt("fetch.batch_size"),
			RequestsPerSecond: viper.GetFloat64("fetch.requests_per_second"),
			APIKey:            secrets.Get(loadedSecrets, secrets.KeyEntrezAPIKey, viper.GetString("fetch.api_key")),
			Email:             secrets.Get(loadedSecrets, secrets.KeyEntrezEmail, viper.GetString("fetch.email")),
		},
		Classify: types.ClassifyConfig{
			CompaniesPath: viper.GetString("classify.companies_path"),
		},
		Report: types.ReportConfig{
			OutputPath: viper.GetString("report.output_path"),
			DBPath:     viper.GetString("report.db_path"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
