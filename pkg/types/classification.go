// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MatchReason identifies which classifier rule produced a result.
type MatchReason string

const (
	// ReasonKnownCompany means the affiliation contained an entry from the
	// company reference set.
	ReasonKnownCompany MatchReason = "known_company"

	// ReasonKeyword means a corporate suffix or industry keyword matched.
	ReasonKeyword MatchReason = "keyword"

	// ReasonEmailDomain means only the email domain looked commercial.
	ReasonEmailDomain MatchReason = "email_domain"

	// ReasonNone means no rule classified the affiliation as commercial.
	ReasonNone MatchReason = "none"
)

// Classification is the result of classifying one affiliation string.
// Invariant: IsCommercial=false implies CompanyName=="".
type Classification struct {
	// IsCommercial reports whether the affiliation belongs to a for-profit
	// pharmaceutical/biotech organization rather than an academic or
	// government institution.
	IsCommercial bool `json:"is_commercial" yaml:"is_commercial"`

	// CompanyName is the canonical company name when a reference-set entry
	// matched, the best-effort extracted name on a keyword match, or the
	// bare email domain on an email-domain match.
	CompanyName string `json:"company_name,omitempty" yaml:"company_name,omitempty"`

	// Reason identifies the rule that matched.
	Reason MatchReason `json:"reason" yaml:"reason"`
}
