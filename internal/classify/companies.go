// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify decides whether a free-text author affiliation belongs to
// a commercial pharmaceutical/biotech organization or an academic
// institution, and extracts a company name where it can.
package classify

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"go.yaml.in/yaml/v3"
)

//go:embed companies.yaml
var defaultCompaniesYAML []byte

// referenceFile is the on-disk YAML schema of a company reference set.
type referenceFile struct {
	Pharmaceutical    map[string]string `yaml:"pharmaceutical"`
	Biotech           map[string]string `yaml:"biotech"`
	AcademicMarkers   []string          `yaml:"academic_markers"`
	CorporateSuffixes []string          `yaml:"corporate_suffixes"`
	IndustryKeywords  []string          `yaml:"industry_keywords"`
}

// companyEntry pairs a pre-normalized alias with its canonical display name.
type companyEntry struct {
	alias     string
	canonical string
}

// ReferenceSet is the immutable lookup structure built once at startup from
// a company reference file. It is never mutated after construction.
type ReferenceSet struct {
	companies         []companyEntry
	academicMarkers   []string
	corporateSuffixes map[string]struct{}
	industryKeywords  map[string]struct{}
}

// DefaultReferenceSet builds the reference set compiled into the binary.
func DefaultReferenceSet() (*ReferenceSet, error) {
	return parseReferenceSet(defaultCompaniesYAML)
}

// LoadReferenceSet reads a company reference file from path. An empty path
// returns the embedded default set.
func LoadReferenceSet(path string) (*ReferenceSet, error) {
	if path == "" {
		return DefaultReferenceSet()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading company reference file: %w", err)
	}
	rs, err := parseReferenceSet(data)
	if err != nil {
		return nil, fmt.Errorf("parsing company reference file %s: %w", path, err)
	}
	return rs, nil
}

func parseReferenceSet(data []byte) (*ReferenceSet, error) {
	var rf referenceFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing reference set: %w", err)
	}

	if len(rf.Pharmaceutical)+len(rf.Biotech) == 0 {
		return nil, fmt.Errorf("reference set lists no companies")
	}

	rs := &ReferenceSet{
		corporateSuffixes: make(map[string]struct{}),
		industryKeywords:  make(map[string]struct{}),
	}

	for _, section := range []map[string]string{rf.Pharmaceutical, rf.Biotech} {
		for alias, canonical := range section {
			norm := NormalizeText(alias)
			if norm == "" || canonical == "" {
				return nil, fmt.Errorf("reference set entry %q → %q is empty after normalization", alias, canonical)
			}
			rs.companies = append(rs.companies, companyEntry{alias: norm, canonical: canonical})
		}
	}

	// Longest aliases first so "bristol myers squibb" wins over any
	// shorter alias it happens to contain.
	sort.Slice(rs.companies, func(i, j int) bool {
		if len(rs.companies[i].alias) != len(rs.companies[j].alias) {
			return len(rs.companies[i].alias) > len(rs.companies[j].alias)
		}
		return rs.companies[i].alias < rs.companies[j].alias
	})

	for _, m := range rf.AcademicMarkers {
		rs.academicMarkers = append(rs.academicMarkers, strings.ToLower(strings.TrimSpace(m)))
	}
	for _, s := range rf.CorporateSuffixes {
		rs.corporateSuffixes[NormalizeText(s)] = struct{}{}
	}
	for _, k := range rf.IndustryKeywords {
		rs.industryKeywords[NormalizeText(k)] = struct{}{}
	}

	return rs, nil
}

// Companies returns the canonical names in the set, deduplicated and sorted.
func (rs *ReferenceSet) Companies() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, e := range rs.companies {
		if _, ok := seen[e.canonical]; ok {
			continue
		}
		seen[e.canonical] = struct{}{}
		names = append(names, e.canonical)
	}
	sort.Strings(names)
	return names
}

// AliasCount returns the number of alias entries in the set.
func (rs *ReferenceSet) AliasCount() int { return len(rs.companies) }

// lookupCompany returns the canonical name of the first (longest) alias
// contained in the normalized affiliation text.
func (rs *ReferenceSet) lookupCompany(normalized string) (string, bool) {
	padded := " " + normalized + " "
	for _, e := range rs.companies {
		if strings.Contains(padded, " "+e.alias+" ") {
			return e.canonical, true
		}
	}
	return "", false
}

// containsAcademicMarker reports whether the raw affiliation text contains
// any academic marker, case-insensitively.
func (rs *ReferenceSet) containsAcademicMarker(affiliation string) bool {
	lower := strings.ToLower(affiliation)
	for _, m := range rs.academicMarkers {
		if m != "" && strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// NormalizeText lowercases s, replaces punctuation with spaces, and
// collapses runs of whitespace. Matching aliases and keywords on normalized
// text makes the lookup insensitive to case and punctuation.
func NormalizeText(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
