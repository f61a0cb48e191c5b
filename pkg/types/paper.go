// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pharma-papers pipeline:
// the fetched paper records, per-author classification results, and the stage
// configurations.
package types

import "time"

// DatePrecision records how much of a publication date the source actually
// supplied. Partial dates are completed with a fixed fill (month=01, day=01),
// so the precision is the only way to tell a real January 1 from a filled one.
type DatePrecision string

const (
	PrecisionDay   DatePrecision = "day"
	PrecisionMonth DatePrecision = "month"
	PrecisionYear  DatePrecision = "year"
	PrecisionNone  DatePrecision = "none"
)

// Author holds one paper author as parsed from the PubMed record.
type Author struct {
	// FirstName is the author's fore name, or initials when the fore name
	// is absent.
	FirstName string `json:"first_name" yaml:"first_name"`

	// LastName is the author's family name.
	LastName string `json:"last_name" yaml:"last_name"`

	// Affiliation is the raw free-text affiliation string. No fixed schema.
	Affiliation string `json:"affiliation" yaml:"affiliation"`

	// Email is the address found embedded in the affiliation text, if any.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// IsCorresponding marks the author the source data identifies as the
	// corresponding author.
	IsCorresponding bool `json:"is_corresponding,omitempty" yaml:"is_corresponding,omitempty"`
}

// FullName returns "First Last" with surrounding whitespace trimmed.
func (a Author) FullName() string {
	if a.FirstName == "" {
		return a.LastName
	}
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// Paper holds one fetched PubMed record. Constructed once per record,
// immutable afterwards.
type Paper struct {
	// PubmedID is the PMID as a decimal string.
	PubmedID string `json:"pubmed_id" yaml:"pubmed_id"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// Date is the publication date with partial dates filled (day=01,
	// month=01). Zero when the record carried no usable date.
	Date time.Time `json:"date" yaml:"date"`

	// DatePrecision states how much of Date came from the source.
	DatePrecision DatePrecision `json:"date_precision" yaml:"date_precision"`

	// Authors lists the paper authors in source order.
	Authors []Author `json:"authors" yaml:"authors"`

	// Abstract is the article abstract, when present.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`
}
