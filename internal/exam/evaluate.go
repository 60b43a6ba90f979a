package exam

import "sort"

// Result is the outcome of an exam attempt.
type Result struct {
	TotalCorrect int
	PerCategory  map[string]int
	Passed       bool

	// Answered and Total count answered and sampled questions.
	Answered int
	Total    int

	// Failed lists categories below their minimum under a PerCategory rule.
	Failed []string
}

// Evaluate grades the answers (question id → option id) against the
// sampled questions. Unanswered questions count as incorrect.
func Evaluate(cfg Config, sampled []TaggedQuestion, answers map[string]string) Result {
	res := Result{
		PerCategory: make(map[string]int),
		Total:       len(sampled),
	}
	for _, tq := range sampled {
		chosen, ok := answers[tq.ID]
		if !ok {
			continue
		}
		res.Answered++
		if tq.IsCorrect(chosen) {
			res.TotalCorrect++
			res.PerCategory[tq.CategoryID]++
		}
	}

	switch cfg.Passing.Kind {
	case PerCategory:
		for categoryID, minCorrect := range cfg.Passing.PerCategory {
			if res.PerCategory[categoryID] < minCorrect {
				res.Failed = append(res.Failed, categoryID)
			}
		}
		sort.Strings(res.Failed)
		res.Passed = len(res.Failed) == 0
	case Total:
		res.Passed = res.TotalCorrect >= cfg.Passing.MinTotal
	}
	return res
}
