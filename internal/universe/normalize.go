package universe

import (
	"regexp"
	"sort"
	"strings"
)

var tsxTicker = regexp.MustCompile(`^[A-Z0-9\-.]{1,12}\.TO$`)

// symbolColumns are accepted (case-insensitive) header names for the ticker
// column of a constituents table.
var symbolColumns = []string{"symbol", "ticker", "ticker symbol", "symbole"}

// Normalize maps raw symbol strings to Yahoo-style TSX tickers: uppercase,
// spaces stripped, unit suffixes .UN/.U rewritten to -UN/-U, the .TO
// exchange suffix appended, junk filtered out. The result is sorted and
// deduplicated.
func Normalize(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
		if s == "" || s == "NAN" || s == "NONE" {
			continue
		}
		s = strings.ReplaceAll(s, ".UN", "-UN")
		s = strings.ReplaceAll(s, ".U", "-U")
		if !strings.HasSuffix(s, ".TO") {
			s += ".TO"
		}
		if !tsxTicker.MatchString(s) || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// symbolColumnIndex returns the index of the first header cell naming a
// ticker column, or -1.
func symbolColumnIndex(header []string) int {
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		for _, want := range symbolColumns {
			if name == want {
				return i
			}
		}
	}
	return -1
}
