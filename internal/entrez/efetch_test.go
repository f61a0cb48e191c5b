// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entrez

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

const sampleEFetchXML = `<?xml version="1.0" ?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID Version="1">38012345</PMID>
      <Article>
        <Journal>
          <JournalIssue>
            <PubDate><Year>2024</Year><Month>Mar</Month></PubDate>
          </JournalIssue>
        </Journal>
        <ArticleTitle>A phase II trial of a novel kinase inhibitor.</ArticleTitle>
        <Abstract>
          <AbstractText>Background text.</AbstractText>
          <AbstractText>Results text.</AbstractText>
        </Abstract>
        <ArticleDate DateType="Electronic">
          <Year>2024</Year><Month>02</Month><Day>15</Day>
        </ArticleDate>
        <AuthorList>
          <Author>
            <LastName>Keller</LastName>
            <ForeName>Anna</ForeName>
            <AffiliationInfo>
              <Affiliation>Oncology Research, Helvetia Pharma AG, Basel, Switzerland. Electronic address: anna.keller@helvetiapharma.com.</Affiliation>
            </AffiliationInfo>
          </Author>
          <Author>
            <LastName>Moreau</LastName>
            <Initials>JP</Initials>
            <AffiliationInfo>
              <Affiliation>Sorbonne Universite, Paris, France</Affiliation>
            </AffiliationInfo>
          </Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <PMID Version="1">37998877</PMID>
      <Article>
        <Journal>
          <JournalIssue>
            <PubDate><MedlineDate>2023 Nov-Dec</MedlineDate></PubDate>
          </JournalIssue>
        </Journal>
        <ArticleTitle>Observational cohort without electronic dates.</ArticleTitle>
        <AuthorList>
          <Author>
            <LastName>Sato</LastName>
            <ForeName>Yuki</ForeName>
          </Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

func withEFetchServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(handler)
	orig := efetchBase
	efetchBase = ts.URL
	t.Cleanup(func() {
		efetchBase = orig
		ts.Close()
	})
	return ts
}

func TestFetchParsesRecords(t *testing.T) {
	withEFetchServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("retmode"); got != "xml" {
			t.Errorf("retmode = %q, want xml", got)
		}
		w.Write([]byte(sampleEFetchXML))
	})

	c := NewClient(testFetchConfig())
	var buf bytes.Buffer
	papers, err := c.Fetch(context.Background(), []string{"38012345", "37998877"}, &buf)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("len(papers) = %d, want 2", len(papers))
	}

	p := papers[0]
	if p.PubmedID != "38012345" {
		t.Errorf("PubmedID = %q", p.PubmedID)
	}
	if p.Title != "A phase II trial of a novel kinase inhibitor." {
		t.Errorf("Title = %q", p.Title)
	}
	// Electronic date preferred over journal PubDate.
	want := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	if !p.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", p.Date, want)
	}
	if p.DatePrecision != types.PrecisionDay {
		t.Errorf("DatePrecision = %q, want day", p.DatePrecision)
	}
	if p.Abstract != "Background text. Results text." {
		t.Errorf("Abstract = %q", p.Abstract)
	}

	if len(p.Authors) != 2 {
		t.Fatalf("len(Authors) = %d, want 2", len(p.Authors))
	}
	a := p.Authors[0]
	if a.FullName() != "Anna Keller" {
		t.Errorf("author = %q", a.FullName())
	}
	if a.Email != "anna.keller@helvetiapharma.com" {
		t.Errorf("email = %q", a.Email)
	}
	if !a.IsCorresponding {
		t.Error("author with embedded email should be corresponding")
	}
	// Initials fall back for the fore name.
	if p.Authors[1].FullName() != "JP Moreau" {
		t.Errorf("author = %q", p.Authors[1].FullName())
	}
	if p.Authors[1].IsCorresponding {
		t.Error("author without email must not be corresponding")
	}

	// MedlineDate degrades to year precision with the documented fill.
	p2 := papers[1]
	if p2.DatePrecision != types.PrecisionYear {
		t.Errorf("DatePrecision = %q, want year", p2.DatePrecision)
	}
	if !p2.Date.Equal(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v", p2.Date)
	}
}

func TestFetchChunksBatches(t *testing.T) {
	var batches []string
	withEFetchServer(t, func(w http.ResponseWriter, r *http.Request) {
		batches = append(batches, r.URL.Query().Get("id"))
		w.Write([]byte(`<PubmedArticleSet></PubmedArticleSet>`))
	})

	cfg := testFetchConfig()
	cfg.BatchSize = 2
	c := NewClient(cfg)

	var buf bytes.Buffer
	_, err := c.Fetch(context.Background(), []string{"1", "2", "3", "4", "5"}, &buf)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	want := []string{"1,2", "3,4", "5"}
	if len(batches) != len(want) {
		t.Fatalf("batches = %v, want %v", batches, want)
	}
	for i := range want {
		if batches[i] != want[i] {
			t.Errorf("batches[%d] = %q, want %q", i, batches[i], want[i])
		}
	}
}

func TestFetchFailedBatchAborts(t *testing.T) {
	var calls int
	withEFetchServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`<PubmedArticleSet></PubmedArticleSet>`))
	})

	cfg := testFetchConfig()
	cfg.BatchSize = 1
	c := NewClient(cfg)

	var buf bytes.Buffer
	_, err := c.Fetch(context.Background(), []string{"11", "22", "33"}, &buf)
	if err == nil {
		t.Fatal("expected error from failed batch")
	}
	if !strings.Contains(err.Error(), "batch 2") || !strings.Contains(err.Error(), "22") {
		t.Errorf("error should identify the failing batch: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, the run must abort at the failed batch", calls)
	}
}

func TestFetchSkipsUnparseableRecord(t *testing.T) {
	const xmlWithBadRecord = `<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>123</PMID>
      <Article><ArticleTitle>Good record.</ArticleTitle></Article>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <Article><ArticleTitle>No PMID here.</ArticleTitle></Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

	withEFetchServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(xmlWithBadRecord))
	})

	c := NewClient(testFetchConfig())
	var buf bytes.Buffer
	papers, err := c.Fetch(context.Background(), []string{"123", "456"}, &buf)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(papers) != 1 {
		t.Errorf("len(papers) = %d, want 1", len(papers))
	}
	if !strings.Contains(buf.String(), "warning: skipping record") {
		t.Errorf("expected skip warning, got %q", buf.String())
	}
}

func TestFetchEmptyInput(t *testing.T) {
	c := NewClient(testFetchConfig())
	var buf bytes.Buffer
	papers, err := c.Fetch(context.Background(), nil, &buf)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if papers != nil {
		t.Errorf("papers = %v, want nil", papers)
	}
}
