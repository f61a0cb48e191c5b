// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pharma-papers/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the PubMed fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults caps the number of PMIDs requested from esearch (default 100).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// BatchSize is the number of PMIDs fetched per efetch call (default 50).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// RequestsPerSecond is the outbound request rate ceiling. NCBI allows
	// 3 req/s without an API key and 10 req/s with one.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// APIKey is the optional NCBI E-utilities API key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Email is the contact address sent with every E-utilities request, as
	// NCBI's usage policy asks.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// ClassifyConfig holds settings for the affiliation classification stage.
type ClassifyConfig struct {
	// CompaniesPath points at a company reference set YAML file. Empty means
	// the embedded default set.
	CompaniesPath string `json:"companies_path,omitempty" yaml:"companies_path,omitempty"`
}

// ReportConfig holds settings for report output.
type ReportConfig struct {
	// OutputPath is the CSV destination. Empty means stdout.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// DBPath is an optional SQLite database that accumulates run results.
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// Config groups all stage configurations.
type Config struct {
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch"`
	Classify ClassifyConfig `json:"classify" yaml:"classify"`
	Report   ReportConfig   `json:"report" yaml:"report"`
}
