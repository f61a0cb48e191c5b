// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Header is the fixed CSV column order of the report.
var Header = []string{
	"PubmedID",
	"Title",
	"Publication Date",
	"Non-academic Author(s)",
	"Company Affiliation(s)",
	"Corresponding Author Email",
}

// multiValueSeparator joins author and company lists inside one CSV field.
const multiValueSeparator = "; "

// WriteCSV serializes rows to w with the fixed header. encoding/csv quotes
// fields containing delimiters or quotes, so titles with commas survive a
// round trip. Behavior is identical for files and console streams.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.PubmedID,
			row.Title,
			row.PublicationDate,
			strings.Join(row.Authors, multiValueSeparator),
			strings.Join(row.Companies, multiValueSeparator),
			row.CorrespondingEmail,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV row for PMID %s: %w", row.PubmedID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// outputInvalidChars are rejected in output filenames.
const outputInvalidChars = `<>:"|?*`

// ValidateOutputPath checks an output filename before the run starts, so a
// bad path never produces partial output.
func ValidateOutputPath(path string) error {
	if path == "" {
		return fmt.Errorf("output filename cannot be empty")
	}
	for _, c := range path {
		if strings.ContainsRune(outputInvalidChars, c) {
			return fmt.Errorf("output filename contains invalid character %q", c)
		}
	}
	if !strings.HasSuffix(strings.ToLower(path), ".csv") {
		return fmt.Errorf("output filename must have .csv extension")
	}
	return nil
}
