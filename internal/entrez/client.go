// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package entrez queries the NCBI E-utilities API for PubMed records:
// esearch resolves a query to PMIDs, efetch resolves PMIDs to article
// metadata. All outbound calls go through one rate limiter so the process
// never exceeds NCBI's request budget.
package entrez

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

// E-utilities endpoints. Declared as vars so tests can substitute an
// httptest server.
var (
	esearchBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	efetchBase  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultUserAgent  = "pharma-papers/0.1"
	defaultMaxResults = 100
	defaultBatchSize  = 50

	// NCBI allows 3 requests per second without an API key, 10 with one.
	defaultRate       = 3
	defaultKeyedRate  = 10
	toolName          = "pharma-papers"
)

// Client is a rate-limited PubMed E-utilities client.
type Client struct {
	client  *http.Client
	limiter *rate.Limiter
	cfg     types.FetchConfig
}

// NewClient builds a Client from cfg, filling unset fields with defaults.
func NewClient(cfg types.FetchConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.RequestsPerSecond <= 0 {
		if cfg.APIKey != "" {
			cfg.RequestsPerSecond = defaultKeyedRate
		} else {
			cfg.RequestsPerSecond = defaultRate
		}
	}

	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		cfg:     cfg,
	}
}

// BatchSize returns the effective efetch batch size.
func (c *Client) BatchSize() int { return c.cfg.BatchSize }

// MaxResults returns the effective esearch result cap.
func (c *Client) MaxResults() int { return c.cfg.MaxResults }
