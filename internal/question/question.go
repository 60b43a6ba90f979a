package question

import (
	"errors"
	"fmt"
)

// Option is a single answer choice of a question.
type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Question is one multiple-choice item from a license question bank.
// Questions are immutable once loaded; other packages hold pointers into
// the loaded slice rather than copies.
type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"question"`
	Image   string   `json:"image,omitempty"`
	Options []Option `json:"options"`

	// CategoryID and LicenseID are set when the source knows them. A bank
	// query for a single category may leave them empty.
	CategoryID string `json:"category,omitempty"`
	LicenseID  string `json:"license,omitempty"`
}

// ErrInvalidQuestion is matched by every ValidationError.
var ErrInvalidQuestion = errors.New("invalid question")

// ValidationError describes why a question failed validation.
type ValidationError struct {
	QuestionID string
	Reason     string
}

func (e *ValidationError) Error() string {
	if e.QuestionID == "" {
		return fmt.Sprintf("invalid question: %s", e.Reason)
	}
	return fmt.Sprintf("invalid question %q: %s", e.QuestionID, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidQuestion }

// Validate checks structural invariants: an id, a prompt, at least two
// options with unique ids, and exactly one correct option.
func (q *Question) Validate() error {
	if q.ID == "" {
		return &ValidationError{Reason: "missing id"}
	}
	if q.Prompt == "" {
		return &ValidationError{QuestionID: q.ID, Reason: "missing prompt"}
	}
	if len(q.Options) < 2 {
		return &ValidationError{QuestionID: q.ID, Reason: "needs at least two options"}
	}

	seen := make(map[string]bool, len(q.Options))
	correct := 0
	for _, o := range q.Options {
		if o.ID == "" {
			return &ValidationError{QuestionID: q.ID, Reason: "option without id"}
		}
		if seen[o.ID] {
			return &ValidationError{QuestionID: q.ID, Reason: fmt.Sprintf("duplicate option id %q", o.ID)}
		}
		seen[o.ID] = true
		if o.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return &ValidationError{QuestionID: q.ID, Reason: fmt.Sprintf("has %d correct options, want exactly 1", correct)}
	}
	return nil
}

// Option returns the option with the given id, or nil.
func (q *Question) Option(id string) *Option {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i]
		}
	}
	return nil
}

// CorrectOption returns the correct option, or nil for an invalid question.
func (q *Question) CorrectOption() *Option {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	return nil
}

// IsCorrect reports whether optionID names the correct option.
// Unknown option ids are incorrect.
func (q *Question) IsCorrect(optionID string) bool {
	o := q.Option(optionID)
	return o != nil && o.IsCorrect
}

// ValidateAll validates every question and rejects duplicate question ids.
func ValidateAll(qs []Question) error {
	seen := make(map[string]bool, len(qs))
	for i := range qs {
		if err := qs[i].Validate(); err != nil {
			return err
		}
		if seen[qs[i].ID] {
			return &ValidationError{QuestionID: qs[i].ID, Reason: "duplicate question id"}
		}
		seen[qs[i].ID] = true
	}
	return nil
}

// Index maps question ids to their position in qs.
func Index(qs []Question) map[string]int {
	idx := make(map[string]int, len(qs))
	for i := range qs {
		idx[qs[i].ID] = i
	}
	return idx
}
