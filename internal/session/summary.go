package session

// Result is the end-of-lesson summary.
type Result struct {
	Title   string  `json:"title"`
	Correct int     `json:"correct"`
	Total   int     `json:"total"`
	Score   float64 `json:"score"`
	Points  int     `json:"points"`
	Hearts  int     `json:"hearts"`
	Bonus   int     `json:"bonus"`
	Passed  bool    `json:"passed"`
}

// Percent returns the score as a rounded percentage.
func (r Result) Percent() int {
	return int(r.Score*100 + 0.5)
}

// Summary returns the lesson outcome. Points include the perfect-health
// bonus once the lesson is finished.
func (s *Session) Summary() Result {
	return Result{
		Title:   s.section.Title,
		Correct: s.correct,
		Total:   len(s.section.Questions),
		Score:   s.Score(),
		Points:  s.points + s.bonus,
		Hearts:  s.hearts,
		Bonus:   s.bonus,
		Passed:  s.Passed(),
	}
}

// ReviewConcepts lists the concepts answered incorrectly, first miss
// first, without repeats.
func (s *Session) ReviewConcepts() []string {
	seen := make(map[string]bool, len(s.missed))
	var out []string
	for _, c := range s.missed {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
