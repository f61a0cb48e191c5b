// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entrez

import (
	"fmt"
	"strings"
)

// queryInvalidChars are rejected outright: they have no meaning in the
// PubMed query grammar and tend to come from shell quoting accidents.
const queryInvalidChars = `<>"';\`

// ValidateQuery checks a raw PubMed query string before any network call.
func ValidateQuery(query string) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return fmt.Errorf("query cannot be empty")
	}
	if len(trimmed) < 2 {
		return fmt.Errorf("query must be at least 2 characters long")
	}
	for _, c := range trimmed {
		if strings.ContainsRune(queryInvalidChars, c) {
			return fmt.Errorf("query contains invalid character %q", c)
		}
	}
	return nil
}

// SanitizeQuery collapses whitespace and strips characters that
// ValidateQuery rejects, preserving PubMed field tags and boolean operators.
func SanitizeQuery(query string) string {
	var b strings.Builder
	for _, c := range query {
		if !strings.ContainsRune(queryInvalidChars, c) {
			b.WriteRune(c)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
