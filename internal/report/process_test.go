// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

// stubClassifier classifies by an affiliation → result table.
type stubClassifier struct {
	results map[string]types.Classification
}

func (s *stubClassifier) Classify(affiliation, _ string) types.Classification {
	if r, ok := s.results[affiliation]; ok {
		return r
	}
	return types.Classification{Reason: types.ReasonNone}
}

func commercial(company string) types.Classification {
	return types.Classification{IsCommercial: true, CompanyName: company, Reason: types.ReasonKnownCompany}
}

func paperWithAuthors(pmid string, authors ...types.Author) types.Paper {
	return types.Paper{
		PubmedID:      pmid,
		Title:         "Paper " + pmid,
		Date:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DatePrecision: types.PrecisionDay,
		Authors:       authors,
	}
}

func TestProcessSkipsFullyAcademicPapers(t *testing.T) {
	c := &stubClassifier{results: map[string]types.Classification{}}
	papers := []types.Paper{
		paperWithAuthors("1",
			types.Author{FirstName: "A", LastName: "One", Affiliation: "Some University"},
			types.Author{FirstName: "B", LastName: "Two", Affiliation: "Some Hospital"},
		),
	}

	rows := Process(papers, c)
	if len(rows) != 0 {
		t.Errorf("len(rows) = %d, want 0 for paper with no commercial authors", len(rows))
	}
}

func TestProcessCollectsCommercialAuthors(t *testing.T) {
	c := &stubClassifier{results: map[string]types.Classification{
		"Acme Pharma":   commercial("Acme Pharma"),
		"ACME PHARMA":   commercial("ACME Pharma"), // same company, different case
		"Beta Biotech":  commercial("Beta Biotech"),
	}}

	papers := []types.Paper{
		paperWithAuthors("42",
			types.Author{FirstName: "Anna", LastName: "Keller", Affiliation: "Acme Pharma"},
			types.Author{FirstName: "Ben", LastName: "Okoro", Affiliation: "State University"},
			types.Author{FirstName: "Cara", LastName: "Lind", Affiliation: "ACME PHARMA"},
			types.Author{FirstName: "Dev", LastName: "Shah", Affiliation: "Beta Biotech"},
			// Some records list the same author more than once.
			types.Author{FirstName: "Anna", LastName: "Keller", Affiliation: "Acme Pharma"},
		),
	}

	rows := Process(papers, c)
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	row := rows[0]

	// Authors dedup by full name, first occurrence wins.
	wantAuthors := []string{"Anna Keller", "Cara Lind", "Dev Shah"}
	if strings.Join(row.Authors, "|") != strings.Join(wantAuthors, "|") {
		t.Errorf("Authors = %v, want %v", row.Authors, wantAuthors)
	}

	// Companies dedup case-insensitively, first spelling wins.
	wantCompanies := []string{"Acme Pharma", "Beta Biotech"}
	if strings.Join(row.Companies, "|") != strings.Join(wantCompanies, "|") {
		t.Errorf("Companies = %v, want %v", row.Companies, wantCompanies)
	}

	if row.PublicationDate != "2024-03-01" {
		t.Errorf("PublicationDate = %q", row.PublicationDate)
	}
}

func TestProcessCorrespondingEmail(t *testing.T) {
	c := &stubClassifier{results: map[string]types.Classification{
		"Acme Pharma": commercial("Acme Pharma"),
	}}

	tests := []struct {
		name    string
		authors []types.Author
		want    string
	}{
		{
			name: "flagged corresponding author wins",
			authors: []types.Author{
				{LastName: "First", Affiliation: "Acme Pharma", Email: "first@acme.com"},
				{LastName: "Second", Affiliation: "Uni", Email: "second@uni.edu", IsCorresponding: true},
			},
			want: "second@uni.edu",
		},
		{
			name: "falls back to any email",
			authors: []types.Author{
				{LastName: "First", Affiliation: "Acme Pharma"},
				{LastName: "Second", Affiliation: "Uni", Email: "second@uni.edu"},
			},
			want: "second@uni.edu",
		},
		{
			name: "sentinel when no email anywhere",
			authors: []types.Author{
				{LastName: "First", Affiliation: "Acme Pharma"},
			},
			want: "Not available",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Process([]types.Paper{paperWithAuthors("7", tt.authors...)}, c)
			if len(rows) != 1 {
				t.Fatalf("len(rows) = %d, want 1", len(rows))
			}
			if rows[0].CorrespondingEmail != tt.want {
				t.Errorf("CorrespondingEmail = %q, want %q", rows[0].CorrespondingEmail, tt.want)
			}
		})
	}
}

func TestProcessDateSentinel(t *testing.T) {
	c := &stubClassifier{results: map[string]types.Classification{
		"Acme Pharma": commercial("Acme Pharma"),
	}}

	p := paperWithAuthors("9", types.Author{LastName: "Solo", Affiliation: "Acme Pharma"})
	p.Date = time.Time{}
	p.DatePrecision = types.PrecisionNone

	rows := Process([]types.Paper{p}, c)
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].PublicationDate != "Unknown" {
		t.Errorf("PublicationDate = %q, want Unknown", rows[0].PublicationDate)
	}
}

func TestWriteSummary(t *testing.T) {
	rows := []Row{
		{PubmedID: "1", Title: "First paper", Companies: []string{"Acme Pharma", "Beta Biotech"}},
		{PubmedID: "2", Title: "Second paper", Companies: []string{"Acme Pharma"}},
	}

	var buf bytes.Buffer
	WriteSummary(&buf, rows, true)
	out := buf.String()

	if !strings.Contains(out, "Found 2 papers") {
		t.Errorf("summary missing count: %q", out)
	}
	if !strings.Contains(out, "Acme Pharma") || !strings.Contains(out, "Beta Biotech") {
		t.Errorf("debug summary should list companies: %q", out)
	}
	if strings.Count(out, "Acme Pharma") != 1 {
		t.Errorf("companies must be listed once: %q", out)
	}

	buf.Reset()
	WriteSummary(&buf, rows, false)
	if strings.Contains(buf.String(), "Company affiliations") {
		t.Errorf("non-debug summary should skip company list: %q", buf.String())
	}
}
