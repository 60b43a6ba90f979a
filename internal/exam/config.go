package exam

import (
	"errors"
	"fmt"
	"time"
)

// RuleKind selects how an exam is passed.
type RuleKind string

const (
	// PerCategory requires a minimum of correct answers in each listed category.
	PerCategory RuleKind = "perCategory"
	// Total requires a minimum of correct answers overall.
	Total RuleKind = "total"
)

// Requirement draws SampleCount questions from one category.
// MinCorrect is informational; the PassingRule decides the outcome.
type Requirement struct {
	CategoryID  string `json:"categoryId"`
	SampleCount int    `json:"count"`
	MinCorrect  int    `json:"minCorrect,omitempty"`
}

// PassingRule is either a per-category minimum map or a total minimum.
type PassingRule struct {
	Kind        RuleKind       `json:"type"`
	PerCategory map[string]int `json:"rules,omitempty"`
	MinTotal    int            `json:"total,omitempty"`
}

// Config describes one official exam variant.
type Config struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Duration     time.Duration `json:"duration"`
	Requirements []Requirement `json:"requirements"`
	Passing      PassingRule   `json:"passingRules"`
}

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("exam: invalid config")

// DurationSeconds returns the countdown start value.
func (c Config) DurationSeconds() int {
	return int(c.Duration / time.Second)
}

// TotalQuestions returns the number of questions an attempt contains.
func (c Config) TotalQuestions() int {
	n := 0
	for _, r := range c.Requirements {
		n += r.SampleCount
	}
	return n
}

// CategoryIDs returns the distinct required categories in requirement order.
func (c Config) CategoryIDs() []string {
	seen := make(map[string]bool, len(c.Requirements))
	var ids []string
	for _, r := range c.Requirements {
		if !seen[r.CategoryID] {
			seen[r.CategoryID] = true
			ids = append(ids, r.CategoryID)
		}
	}
	return ids
}

// Validate checks that the config can be composed and evaluated.
func (c Config) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidConfig)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: %s: non-positive duration", ErrInvalidConfig, c.ID)
	}
	if len(c.Requirements) == 0 {
		return fmt.Errorf("%w: %s: no requirements", ErrInvalidConfig, c.ID)
	}
	for _, r := range c.Requirements {
		if r.CategoryID == "" || r.SampleCount <= 0 {
			return fmt.Errorf("%w: %s: bad requirement %+v", ErrInvalidConfig, c.ID, r)
		}
	}
	switch c.Passing.Kind {
	case PerCategory:
		if len(c.Passing.PerCategory) == 0 {
			return fmt.Errorf("%w: %s: empty per-category rule", ErrInvalidConfig, c.ID)
		}
	case Total:
		if c.Passing.MinTotal <= 0 {
			return fmt.Errorf("%w: %s: non-positive total", ErrInvalidConfig, c.ID)
		}
	default:
		return fmt.Errorf("%w: %s: unknown rule kind %q", ErrInvalidConfig, c.ID, c.Passing.Kind)
	}
	return nil
}
