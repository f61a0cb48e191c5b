// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entrez

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

// emailPattern finds addresses embedded in affiliation free text
// (PubMed appends "Electronic address: x@y.com." to many affiliations).
var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// Fetch retrieves article metadata for pmids in fixed-size batches,
// strictly sequentially, and returns the parsed papers in input order.
// A failed batch aborts the run: the error names the offending batch.
// Per-record parse problems are reported to w and the record is skipped.
func (c *Client) Fetch(ctx context.Context, pmids []string, w io.Writer) ([]types.Paper, error) {
	if len(pmids) == 0 {
		return nil, nil
	}

	var papers []types.Paper
	batchSize := c.cfg.BatchSize

	for start := 0; start < len(pmids); start += batchSize {
		end := start + batchSize
		if end > len(pmids) {
			end = len(pmids)
		}
		batch := pmids[start:end]

		got, err := c.fetchBatch(ctx, batch, w)
		if err != nil {
			return nil, fmt.Errorf("fetching batch %d (PMIDs %s..%s): %w",
				start/batchSize+1, batch[0], batch[len(batch)-1], err)
		}
		papers = append(papers, got...)
	}

	return papers, nil
}

func (c *Client) fetchBatch(ctx context.Context, pmids []string, w io.Writer) ([]types.Paper, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(pmids, ",")},
		"retmode": {"xml"},
		"tool":    {toolName},
	}
	c.addIdentity(params)

	reqURL := efetchBase + "?" + params.Encode()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating efetch request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("efetch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("efetch returned HTTP %d", resp.StatusCode)
	}

	var set pubmedArticleSet
	if err := xml.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing efetch response: %w", err)
	}

	var papers []types.Paper
	for _, art := range set.Articles {
		paper, err := parseArticle(art)
		if err != nil {
			fmt.Fprintf(w, "warning: skipping record: %v\n", err)
			continue
		}
		papers = append(papers, paper)
	}
	return papers, nil
}

// parseArticle maps one PubmedArticle XML node to a Paper.
func parseArticle(art pubmedArticle) (types.Paper, error) {
	cit := art.MedlineCitation
	if cit.PMID == "" {
		return types.Paper{}, fmt.Errorf("record has no PMID")
	}
	if cit.Article.ArticleTitle == "" {
		return types.Paper{}, fmt.Errorf("PMID %s has no title", cit.PMID)
	}

	date, precision := parsePubDate(cit.Article)

	paper := types.Paper{
		PubmedID:      cit.PMID,
		Title:         strings.TrimSpace(cit.Article.ArticleTitle),
		Date:          date,
		DatePrecision: precision,
		Abstract:      strings.TrimSpace(strings.Join(cit.Article.Abstract.Sections, " ")),
	}

	for _, a := range cit.Article.AuthorList.Authors {
		author := types.Author{
			FirstName: strings.TrimSpace(a.ForeName),
			LastName:  strings.TrimSpace(a.LastName),
		}
		if author.FirstName == "" {
			author.FirstName = strings.TrimSpace(a.Initials)
		}
		if len(a.AffiliationInfo) > 0 {
			author.Affiliation = strings.TrimSpace(a.AffiliationInfo[0].Affiliation)
		}
		// An email embedded in the affiliation marks the corresponding
		// author in PubMed exports.
		if m := emailPattern.FindString(author.Affiliation); m != "" {
			author.Email = m
			author.IsCorresponding = true
		}
		if author.FirstName == "" && author.LastName == "" {
			continue
		}
		paper.Authors = append(paper.Authors, author)
	}

	return paper, nil
}

// PubMed efetch XML structures. Only the fields the pipeline reads are
// declared; the rest of the document is ignored by the decoder.
type pubmedArticleSet struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	MedlineCitation medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	PMID    string        `xml:"PMID"`
	Article pubmedArticleNode `xml:"Article"`
}

type pubmedArticleNode struct {
	ArticleTitle string         `xml:"ArticleTitle"`
	Journal      journalNode    `xml:"Journal"`
	ArticleDate  []dateNode     `xml:"ArticleDate"`
	AuthorList   authorListNode `xml:"AuthorList"`
	Abstract     abstractNode   `xml:"Abstract"`
}

type journalNode struct {
	JournalIssue journalIssueNode `xml:"JournalIssue"`
}

type journalIssueNode struct {
	PubDate pubDateNode `xml:"PubDate"`
}

type pubDateNode struct {
	Year        string `xml:"Year"`
	Month       string `xml:"Month"`
	Day         string `xml:"Day"`
	MedlineDate string `xml:"MedlineDate"`
}

type dateNode struct {
	Year  string `xml:"Year"`
	Month string `xml:"Month"`
	Day   string `xml:"Day"`
}

type authorListNode struct {
	Authors []authorNode `xml:"Author"`
}

type authorNode struct {
	LastName        string            `xml:"LastName"`
	ForeName        string            `xml:"ForeName"`
	Initials        string            `xml:"Initials"`
	AffiliationInfo []affiliationNode `xml:"AffiliationInfo"`
}

type affiliationNode struct {
	Affiliation string `xml:"Affiliation"`
}

type abstractNode struct {
	Sections []string `xml:"AbstractText"`
}
