package catalog

import "passcheq/internal/password/domain"

// Summary aggregates the scores of a catalog.
type Summary struct {
	Count        int
	Average      float64
	Min          int
	Max          int
	Distribution [domain.MaxScore + 1]int
}

// Summarize computes score statistics. Scores outside 0..5 count towards
// the average and bounds but not the distribution.
func Summarize[E Entry[E]](entries []E) Summary {
	var s Summary
	if len(entries) == 0 {
		return s
	}

	total := 0
	s.Min = entries[0].SortScore()
	s.Max = entries[0].SortScore()
	for _, e := range entries {
		score := e.SortScore()
		total += score
		s.Min = min(s.Min, score)
		s.Max = max(s.Max, score)
		if domain.ValidScore(score) {
			s.Distribution[score]++
		}
	}
	s.Count = len(entries)
	s.Average = float64(total) / float64(s.Count)
	return s
}
