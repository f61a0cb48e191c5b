// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pharma-papers/internal/classify"
)

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "Print the loaded company reference set",
	Long: `Companies prints the canonical company names the classifier will
recognize, either from the embedded default set or from the file given
with --companies.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("companies")
		if path == "" {
			path = loadConfig().Classify.CompaniesPath
		}

		ref, err := classify.LoadReferenceSet(path)
		if err != nil {
			return err
		}

		names := ref.Companies()
		for _, name := range names {
			fmt.Fprintln(os.Stdout, name)
		}
		fmt.Fprintf(os.Stderr, "%d companies (%d aliases)\n", len(names), ref.AliasCount())
		return nil
	},
}

func init() {
	companiesCmd.Flags().String("companies", "", "company reference set YAML file (default: embedded set)")

	rootCmd.AddCommand(companiesCmd)
}
