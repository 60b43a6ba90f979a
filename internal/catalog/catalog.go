// Package catalog holds the static license, category and exam tables.
package catalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/sbfquiz/internal/exam"
)

// License is a boating license with its own question bank.
type License struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"desc"`
}

// Category groups questions within a license.
type Category struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	ExpectedQuestionCount int    `json:"questionCount"`
}

// ErrNotFound is matched by every NotFoundError.
var ErrNotFound = errors.New("not found")

// NotFoundError reports an unknown license, category or exam id.
type NotFoundError struct {
	Kind string // "license", "category" or "exam"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// License ids.
const (
	SBFBinnen = "sbf-binnen"
	SBFSee    = "sbf-see"
)

var licenses = []License{
	{ID: SBFBinnen, Name: "SBF-Binnen", Description: "Für Binnengewässer"},
	{ID: SBFSee, Name: "SBF-See", Description: "Für Küstengewässer"},
}

var categories = map[string][]Category{
	SBFBinnen: {
		{ID: "basisfragen", Name: "Basisfragen", ExpectedQuestionCount: 72},
		{ID: "fragen-binnen", Name: "Spezifische Fragen Binnen", ExpectedQuestionCount: 179},
		{ID: "fragen-segeln", Name: "Spezifische Fragen Segeln", ExpectedQuestionCount: 57},
	},
	SBFSee: {},
}

func perCategory(rules map[string]int) exam.PassingRule {
	return exam.PassingRule{Kind: exam.PerCategory, PerCategory: rules}
}

func total(n int) exam.PassingRule {
	return exam.PassingRule{Kind: exam.Total, MinTotal: n}
}

var exams = map[string][]exam.Config{
	SBFBinnen: {
		{
			ID:       "motor-segel",
			Title:    "SBF-Binnen unter Motor und unter Segel",
			Duration: 60 * time.Minute,
			Requirements: []exam.Requirement{
				{CategoryID: "basisfragen", SampleCount: 7, MinCorrect: 5},
				{CategoryID: "fragen-binnen", SampleCount: 23, MinCorrect: 18},
				{CategoryID: "fragen-segeln", SampleCount: 7, MinCorrect: 5},
			},
			Passing: perCategory(map[string]int{"basisfragen": 5, "fragen-binnen": 18, "fragen-segeln": 5}),
		},
		{
			ID:       "motor-segel-sbfsee",
			Title:    "SBF-Binnen unter Motor und unter Segel (Inhaber SBF-See)",
			Duration: 50 * time.Minute,
			Requirements: []exam.Requirement{
				{CategoryID: "fragen-binnen", SampleCount: 23, MinCorrect: 18},
				{CategoryID: "fragen-segeln", SampleCount: 7, MinCorrect: 5},
			},
			Passing: perCategory(map[string]int{"fragen-binnen": 18, "fragen-segeln": 5}),
		},
		{
			ID:       "motor",
			Title:    "SBF-Binnen nur unter Motor",
			Duration: 45 * time.Minute,
			Requirements: []exam.Requirement{
				{CategoryID: "basisfragen", SampleCount: 7, MinCorrect: 5},
				{CategoryID: "fragen-binnen", SampleCount: 23, MinCorrect: 18},
			},
			Passing: perCategory(map[string]int{"basisfragen": 5, "fragen-binnen": 18}),
		},
		{
			ID:       "motor-sbfsee",
			Title:    "SBF-Binnen nur unter Motor (Inhaber SBF-See)",
			Duration: 35 * time.Minute,
			Requirements: []exam.Requirement{
				{CategoryID: "fragen-binnen", SampleCount: 23, MinCorrect: 18},
			},
			Passing: perCategory(map[string]int{"fragen-binnen": 18}),
		},
		{
			ID:       "segel",
			Title:    "SBF-Binnen nur unter Segel",
			Duration: 35 * time.Minute,
			Requirements: []exam.Requirement{
				{CategoryID: "basisfragen", SampleCount: 18},
				{CategoryID: "fragen-segeln", SampleCount: 7},
			},
			Passing: total(20),
		},
		{
			ID:       "segel-sbfsee",
			Title:    "SBF-Binnen nur unter Segel (Inhaber SBF-See)",
			Duration: 35 * time.Minute,
			Requirements: []exam.Requirement{
				{CategoryID: "basisfragen", SampleCount: 14},
				{CategoryID: "fragen-segeln", SampleCount: 7},
			},
			Passing: total(17),
		},
		{
			ID:       "segel-nach-motor",
			Title:    "SBF-Binnen unter Segel (Inhaber SBF-Binnen Motor)",
			Duration: 15 * time.Minute,
			Requirements: []exam.Requirement{
				{CategoryID: "fragen-segeln", SampleCount: 7, MinCorrect: 5},
			},
			Passing: perCategory(map[string]int{"fragen-segeln": 5}),
		},
	},
}

// Licenses returns all licenses.
func Licenses() []License {
	out := make([]License, len(licenses))
	copy(out, licenses)
	return out
}

// LookupLicense returns the license with the given id.
func LookupLicense(id string) (License, error) {
	for _, l := range licenses {
		if l.ID == id {
			return l, nil
		}
	}
	return License{}, &NotFoundError{Kind: "license", ID: id}
}

// Categories returns the categories of a license.
func Categories(licenseID string) ([]Category, error) {
	if _, err := LookupLicense(licenseID); err != nil {
		return nil, err
	}
	cs := categories[licenseID]
	out := make([]Category, len(cs))
	copy(out, cs)
	return out, nil
}

// LookupCategory returns a category of a license.
func LookupCategory(licenseID, categoryID string) (Category, error) {
	cs, err := Categories(licenseID)
	if err != nil {
		return Category{}, err
	}
	for _, c := range cs {
		if c.ID == categoryID {
			return c, nil
		}
	}
	return Category{}, &NotFoundError{Kind: "category", ID: categoryID}
}

// Exams returns the exam variants of a license. A known license without
// exams returns an empty list.
func Exams(licenseID string) ([]exam.Config, error) {
	if _, err := LookupLicense(licenseID); err != nil {
		return nil, err
	}
	cs := exams[licenseID]
	out := make([]exam.Config, len(cs))
	copy(out, cs)
	return out, nil
}

// LookupExam returns one exam variant of a license.
func LookupExam(licenseID, examID string) (exam.Config, error) {
	cs, err := Exams(licenseID)
	if err != nil {
		return exam.Config{}, err
	}
	for _, c := range cs {
		if c.ID == examID {
			return c, nil
		}
	}
	return exam.Config{}, &NotFoundError{Kind: "exam", ID: examID}
}
