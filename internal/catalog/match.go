package catalog

import "strings"

// MatchSpans returns the non-overlapping, first-match-per-occurrence byte
// spans where term appears in name, case-insensitively. The scan resumes
// after each match, so overlapping occurrences are not reported twice.
// An empty term yields no spans.
func MatchSpans(name, term string) []Span {
	if term == "" {
		return nil
	}
	lowName := strings.ToLower(name)
	lowTerm := strings.ToLower(term)

	var spans []Span
	for start := 0; start < len(lowName); {
		idx := strings.Index(lowName[start:], lowTerm)
		if idx < 0 {
			break
		}
		from := start + idx
		to := from + len(lowTerm)
		spans = append(spans, Span{Start: from, End: to})
		start = to
	}
	return spans
}
