// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pharma-papers/internal/classify"
	"github.com/pdiddy/pharma-papers/internal/entrez"
	"github.com/pdiddy/pharma-papers/internal/report"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch \"<query>\"",
	Short: "Fetch PubMed papers and report commercial-author matches",
	Long: `Fetch runs a PubMed query, classifies every author's affiliation, and
writes a CSV report of papers with at least one pharmaceutical/biotech
author. The query uses standard PubMed syntax, field tags included.

Examples:

  pharma-papers fetch "COVID-19 AND vaccine"
  pharma-papers fetch "cancer treatment" --file results.csv
  pharma-papers fetch "diabetes" --debug --max-results 500`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile, _ := cmd.Flags().GetString("file")
		debug, _ := cmd.Flags().GetBool("debug")
		maxResults, _ := cmd.Flags().GetInt("max-results")
		companiesPath, _ := cmd.Flags().GetString("companies")
		dbPath, _ := cmd.Flags().GetString("db")

		return runFetch(cmd, args[0], outputFile, companiesPath, dbPath, maxResults, debug)
	},
}

func init() {
	fetchCmd.Flags().StringP("file", "f", "", "write the CSV report to this file instead of stdout")
	fetchCmd.Flags().BoolP("debug", "d", false, "print debug information during execution")
	fetchCmd.Flags().Int("max-results", 0, "maximum number of PubMed records to fetch (default 100)")
	fetchCmd.Flags().String("companies", "", "company reference set YAML file (default: embedded set)")
	fetchCmd.Flags().String("db", "", "also record results in this SQLite database")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, query, outputFile, companiesPath, dbPath string, maxResults int, debug bool) error {
	ctx := cmd.Context()

	debugW := io.Discard
	if debug {
		debugW = os.Stderr
	}

	cfg := loadConfig()
	if companiesPath == "" {
		companiesPath = cfg.Classify.CompaniesPath
	}
	if dbPath == "" {
		dbPath = cfg.Report.DBPath
	}
	if outputFile == "" {
		outputFile = cfg.Report.OutputPath
	}

	// Validate all inputs before the first network call: a bad query or
	// filename must never leave partial output behind.
	if err := entrez.ValidateQuery(query); err != nil {
		return err
	}
	query = entrez.SanitizeQuery(query)

	if outputFile != "" {
		if err := report.ValidateOutputPath(outputFile); err != nil {
			return err
		}
	}

	ref, err := classify.LoadReferenceSet(companiesPath)
	if err != nil {
		return err
	}
	classifier := classify.New(ref)

	client := entrez.NewClient(cfg.Fetch)
	if maxResults <= 0 {
		maxResults = client.MaxResults()
	}

	fmt.Fprintf(debugW, "Searching PubMed for: %s (up to %d results)\n", query, maxResults)
	pmids, err := client.Search(ctx, query, maxResults)
	if err != nil {
		return err
	}
	if len(pmids) == 0 {
		fmt.Fprintln(os.Stderr, "No papers found for the given query.")
		return nil
	}

	fmt.Fprintf(debugW, "Found %d papers, fetching details in batches of %d...\n", len(pmids), client.BatchSize())
	papers, err := client.Fetch(ctx, pmids, debugW)
	if err != nil {
		return err
	}
	fmt.Fprintf(debugW, "Fetched details for %d papers\n", len(papers))

	rows := report.Process(papers, classifier)
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "No papers found with pharmaceutical/biotech company affiliations.")
		return nil
	}

	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		if err := report.WriteCSV(f, rows); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Results saved to %s\n", outputFile)
	} else {
		if err := report.WriteCSV(os.Stdout, rows); err != nil {
			return err
		}
	}

	if dbPath != "" {
		store, err := report.OpenStore(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		runID, err := store.RecordRun(ctx, query, rows)
		if err != nil {
			return err
		}
		fmt.Fprintf(debugW, "Recorded run %d in %s\n", runID, dbPath)
	}

	report.WriteSummary(os.Stderr, rows, debug)
	return nil
}
