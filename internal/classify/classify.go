// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"strings"
	"unicode"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

// rule is one step of the classification chain. A rule either produces a
// final Classification (ok=true) or passes to the next rule (ok=false).
type rule struct {
	reason types.MatchReason
	match  func(c *Classifier, affiliation, email string) (types.Classification, bool)
}

// Classifier applies an ordered chain of rules to affiliation strings.
// The chain order is the precedence policy: academic exclusion, then
// known-company lookup, then corporate keywords, then email domain.
type Classifier struct {
	ref   *ReferenceSet
	rules []rule
}

// New builds a Classifier over the given reference set.
func New(ref *ReferenceSet) *Classifier {
	c := &Classifier{ref: ref}
	c.rules = []rule{
		{reason: types.ReasonNone, match: (*Classifier).matchAcademic},
		{reason: types.ReasonKnownCompany, match: (*Classifier).matchKnownCompany},
		{reason: types.ReasonKeyword, match: (*Classifier).matchKeyword},
		{reason: types.ReasonEmailDomain, match: (*Classifier).matchEmailDomain},
	}
	return c
}

// Classify maps one affiliation string and optional email to a
// Classification. Rules are evaluated in order and the first match wins;
// ambiguous input falls through silently to the next rule and ultimately to
// a not-commercial result.
func (c *Classifier) Classify(affiliation, email string) types.Classification {
	for _, r := range c.rules {
		if result, ok := r.match(c, affiliation, email); ok {
			result.Reason = r.reason
			if !result.IsCommercial {
				// Not-commercial results never carry a company.
				result.CompanyName = ""
				result.Reason = types.ReasonNone
			}
			return result
		}
	}
	return types.Classification{Reason: types.ReasonNone}
}

// matchAcademic short-circuits the chain for academic institutions. The
// exclusion beats every commercial signal: a sponsor company named inside an
// academic affiliation does not make the author commercial.
func (c *Classifier) matchAcademic(affiliation, _ string) (types.Classification, bool) {
	if affiliation == "" {
		return types.Classification{}, false
	}
	if c.ref.containsAcademicMarker(affiliation) {
		return types.Classification{IsCommercial: false}, true
	}
	return types.Classification{}, false
}

// matchKnownCompany looks the normalized affiliation up in the company
// reference set and returns the canonical name on a hit.
func (c *Classifier) matchKnownCompany(affiliation, _ string) (types.Classification, bool) {
	if affiliation == "" {
		return types.Classification{}, false
	}
	if canonical, ok := c.ref.lookupCompany(NormalizeText(affiliation)); ok {
		return types.Classification{IsCommercial: true, CompanyName: canonical}, true
	}
	return types.Classification{}, false
}

// matchKeyword looks for corporate suffixes first, then industry words, and
// extracts the company name as the run of capitalized tokens immediately
// preceding the matched keyword. Extraction is best effort; a keyword hit
// with no extractable name still classifies as commercial.
func (c *Classifier) matchKeyword(affiliation, _ string) (types.Classification, bool) {
	if affiliation == "" {
		return types.Classification{}, false
	}
	tokens := strings.Fields(affiliation)

	for _, keywords := range []map[string]struct{}{c.ref.corporateSuffixes, c.ref.industryKeywords} {
		for i, tok := range tokens {
			if _, ok := keywords[NormalizeText(tok)]; !ok {
				continue
			}
			return types.Classification{
				IsCommercial: true,
				CompanyName:  extractNamePreceding(tokens, i),
			}, true
		}
	}
	return types.Classification{}, false
}

// matchEmailDomain classifies by the email domain when the affiliation text
// itself was inconclusive. Domains outside the recognized academic and
// government suffixes count as commercial. Personal mail providers are a
// known false positive of this rule and are deliberately not special-cased.
func (c *Classifier) matchEmailDomain(_, email string) (types.Classification, bool) {
	domain := emailDomain(email)
	if domain == "" {
		return types.Classification{}, false
	}
	if isAcademicDomain(domain) {
		return types.Classification{}, false
	}
	return types.Classification{IsCommercial: true, CompanyName: domain}, true
}

// extractNamePreceding walks backwards from tokens[keywordIdx] collecting
// capitalized tokens. The walk stops at a clause boundary (a token ending in
// ',' or ';') or at the first non-capitalized token.
func extractNamePreceding(tokens []string, keywordIdx int) string {
	var name []string
	for j := keywordIdx - 1; j >= 0; j-- {
		tok := tokens[j]
		word := strings.TrimFunc(tok, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '&'
		})
		if word == "" || !startsUpper(word) {
			break
		}
		boundary := strings.HasSuffix(tok, ",") || strings.HasSuffix(tok, ";")
		if boundary && j != keywordIdx-1 {
			// tok closes an earlier clause; it is not part of the name.
			break
		}
		name = append([]string{word}, name...)
		if boundary {
			// "Acme, Inc." keeps Acme but nothing before the comma.
			break
		}
	}

	joined := strings.Join(name, " ")
	joined = strings.TrimPrefix(joined, "The ")
	if len(joined) < 2 {
		return ""
	}
	return joined
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

// academicLabels are DNS labels that mark a domain suffix as academic or
// governmental: "jdoe@ox.ac.uk" and "jdoe@cdc.gov" stay non-commercial.
var academicLabels = map[string]struct{}{
	"edu": {},
	"ac":  {},
	"gov": {},
	"mil": {},
	"org": {},
}

// isAcademicDomain checks the last two labels of the domain, covering both
// bare TLDs (harvard.edu) and country-code forms (ox.ac.uk). A label deeper
// in the name, as in gov.startup.com, does not count.
func isAcademicDomain(domain string) bool {
	labels := strings.Split(domain, ".")
	if len(labels) > 2 {
		labels = labels[len(labels)-2:]
	}
	for _, label := range labels {
		if _, ok := academicLabels[label]; ok {
			return true
		}
	}
	return false
}

// emailDomain returns the lowercased domain part of an email address, or ""
// when the address has no usable domain.
func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	domain := strings.ToLower(strings.TrimSpace(email[at+1:]))
	domain = strings.TrimSuffix(domain, ".")
	if !strings.Contains(domain, ".") {
		return ""
	}
	return domain
}
