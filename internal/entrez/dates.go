// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entrez

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

var monthNames = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

var yearPattern = regexp.MustCompile(`\b(1[89]\d\d|20\d\d)\b`)

// parsePubDate extracts a publication date from an article record. The
// electronic ArticleDate is preferred; the journal issue PubDate is the
// fallback. Missing month and day are filled with 01 and the returned
// precision records how much of the date the source actually supplied, so
// the fill is never mistaken for an exact date.
func parsePubDate(art pubmedArticleNode) (time.Time, types.DatePrecision) {
	if len(art.ArticleDate) > 0 {
		d := art.ArticleDate[0]
		if t, p, ok := buildDate(d.Year, d.Month, d.Day); ok {
			return t, p
		}
	}

	pd := art.Journal.JournalIssue.PubDate
	if t, p, ok := buildDate(pd.Year, pd.Month, pd.Day); ok {
		return t, p
	}

	// MedlineDate holds free-form ranges like "2000 Jan-Feb" or
	// "1998-1999". The first recognizable year gives year precision.
	if m := yearPattern.FindString(pd.MedlineDate); m != "" {
		year, _ := strconv.Atoi(m)
		return time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC), types.PrecisionYear
	}

	return time.Time{}, types.PrecisionNone
}

// buildDate assembles a date from string components. The year is required;
// month and day degrade the precision when absent or unparseable.
func buildDate(yearStr, monthStr, dayStr string) (time.Time, types.DatePrecision, bool) {
	year, err := strconv.Atoi(strings.TrimSpace(yearStr))
	if err != nil || year < 1000 {
		return time.Time{}, types.PrecisionNone, false
	}

	precision := types.PrecisionDay
	month, ok := parseMonth(monthStr)
	if !ok {
		month = 1
		precision = types.PrecisionYear
	}

	day, err := strconv.Atoi(strings.TrimSpace(dayStr))
	if err != nil || day < 1 || day > 31 {
		day = 1
		if precision == types.PrecisionDay {
			precision = types.PrecisionMonth
		}
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), precision, true
}

// parseMonth accepts numeric months ("6", "06") and English month names or
// abbreviations ("Jun", "June").
func parseMonth(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return n, true
		}
		return 0, false
	}
	if len(s) >= 3 {
		if n, ok := monthNames[strings.ToLower(s[:3])]; ok {
			return n, true
		}
	}
	return 0, false
}
