// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report turns fetched papers into the output rows of the pharma
// affiliation report and serializes them as CSV or into a SQLite results
// database.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

// noEmailSentinel is written when no corresponding author email exists.
const noEmailSentinel = "Not available"

// noDateSentinel is written when the record carried no usable date.
const noDateSentinel = "Unknown"

// Classifier decides commercial vs. academic for one affiliation string.
type Classifier interface {
	Classify(affiliation, email string) types.Classification
}

// Row is one line of the report: a paper projected to its commercial
// authors. Papers with no commercial authors produce no Row.
type Row struct {
	PubmedID           string
	Title              string
	PublicationDate    string
	Authors            []string
	Companies          []string
	CorrespondingEmail string
}

// Process classifies every author of every paper and returns one Row per
// paper that has at least one commercial author. Author and company names
// keep source order and are deduplicated, first seen wins; company dedup is
// case-insensitive.
func Process(papers []types.Paper, c Classifier) []Row {
	var rows []Row
	for _, paper := range papers {
		var authors []string
		var companies []string
		seenAuthors := make(map[string]struct{})
		seenCompanies := make(map[string]struct{})

		for _, a := range paper.Authors {
			result := c.Classify(a.Affiliation, a.Email)
			if !result.IsCommercial {
				continue
			}
			if name := a.FullName(); name != "" {
				if _, ok := seenAuthors[name]; !ok {
					seenAuthors[name] = struct{}{}
					authors = append(authors, name)
				}
			}
			company := result.CompanyName
			if company == "" {
				continue
			}
			key := strings.ToLower(company)
			if _, ok := seenCompanies[key]; ok {
				continue
			}
			seenCompanies[key] = struct{}{}
			companies = append(companies, company)
		}

		if len(authors) == 0 {
			continue
		}

		rows = append(rows, Row{
			PubmedID:           paper.PubmedID,
			Title:              paper.Title,
			PublicationDate:    formatDate(paper),
			Authors:            authors,
			Companies:          companies,
			CorrespondingEmail: correspondingEmail(paper.Authors),
		})
	}
	return rows
}

// correspondingEmail resolves the report email: the explicitly flagged
// corresponding author first, then any author with an email, then the
// sentinel.
func correspondingEmail(authors []types.Author) string {
	for _, a := range authors {
		if a.IsCorresponding && a.Email != "" {
			return a.Email
		}
	}
	for _, a := range authors {
		if a.Email != "" {
			return a.Email
		}
	}
	return noEmailSentinel
}

// formatDate renders the filled publication date as ISO 8601. The fill
// policy (missing month/day become 01) is recorded in the paper's
// DatePrecision; dates with no source data at all render as the sentinel.
func formatDate(p types.Paper) string {
	if p.DatePrecision == types.PrecisionNone || p.Date.IsZero() {
		return noDateSentinel
	}
	return p.Date.Format("2006-01-02")
}

// WriteSummary prints the run summary. With debug set it also lists every
// distinct company found and a few sample titles.
func WriteSummary(w io.Writer, rows []Row, debug bool) {
	fmt.Fprintf(w, "\nFound %d papers with pharmaceutical/biotech affiliations\n", len(rows))

	if !debug || len(rows) == 0 {
		return
	}

	companies := make(map[string]struct{})
	for _, row := range rows {
		for _, c := range row.Companies {
			companies[c] = struct{}{}
		}
	}
	names := make([]string, 0, len(companies))
	for c := range companies {
		names = append(names, c)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "\nCompany affiliations found:")
	for _, c := range names {
		fmt.Fprintf(w, "  - %s\n", c)
	}

	fmt.Fprintln(w, "\nSample papers:")
	for i, row := range rows {
		if i == 3 {
			break
		}
		title := row.Title
		if len(title) > 80 {
			title = title[:77] + "..."
		}
		fmt.Fprintf(w, "  %d. %s\n", i+1, title)
	}
}
