package exam

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sbfquiz/internal/bank"
	"github.com/abhisek/sbfquiz/internal/question"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// pool builds n valid questions in category; option "a" is correct.
func pool(category string, n int) []question.Question {
	qs := make([]question.Question, n)
	for i := range qs {
		qs[i] = question.Question{
			ID:         fmt.Sprintf("%s-%d", category, i),
			Prompt:     "Frage?",
			CategoryID: category,
			LicenseID:  "sbf-binnen",
			Options: []question.Option{
				{ID: "a", Text: "richtig", IsCorrect: true},
				{ID: "b", Text: "falsch"},
			},
		}
	}
	return qs
}

func singleRequirement(n int) Config {
	return Config{
		ID:           "t",
		Duration:     time.Minute,
		Requirements: []Requirement{{CategoryID: "basisfragen", SampleCount: n}},
		Passing:      PassingRule{Kind: Total, MinTotal: 1},
	}
}

func TestCompose_SevenFromTen(t *testing.T) {
	p := pool("basisfragen", 10)
	got, err := Compose(singleRequirement(7), Pools{"basisfragen": p}, testRand())
	require.NoError(t, err)
	require.Len(t, got, 7)

	inPool := make(map[string]bool)
	for _, q := range p {
		inPool[q.ID] = true
	}
	seen := make(map[string]bool)
	for _, tq := range got {
		assert.True(t, inPool[tq.ID], "%s not from pool", tq.ID)
		assert.False(t, seen[tq.ID], "%s drawn twice", tq.ID)
		assert.Equal(t, "basisfragen", tq.CategoryID)
		seen[tq.ID] = true
	}
}

func TestCompose_InsufficientQuestions(t *testing.T) {
	_, err := Compose(singleRequirement(7), Pools{"basisfragen": pool("basisfragen", 5)}, testRand())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientQuestions))

	var ie *InsufficientQuestionsError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, 7, ie.Need)
	assert.Equal(t, 5, ie.Have)
}

func TestCompose_RequirementOrderAndTagging(t *testing.T) {
	cfg := Config{
		ID:       "motor",
		Duration: 45 * time.Minute,
		Requirements: []Requirement{
			{CategoryID: "basisfragen", SampleCount: 3},
			{CategoryID: "fragen-binnen", SampleCount: 2},
		},
		Passing: PassingRule{Kind: Total, MinTotal: 1},
	}
	pools := Pools{
		"basisfragen":   pool("basisfragen", 4),
		"fragen-binnen": pool("fragen-binnen", 4),
	}
	got, err := Compose(cfg, pools, testRand())
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, tq := range got {
		want := "basisfragen"
		if i >= 3 {
			want = "fragen-binnen"
		}
		if tq.CategoryID != want {
			t.Errorf("question %d category = %s, want %s", i, tq.CategoryID, want)
		}
	}
}

func TestCompose_ExactPoolSizeUsesEveryQuestion(t *testing.T) {
	got, err := Compose(singleRequirement(5), Pools{"basisfragen": pool("basisfragen", 5)}, testRand())
	require.NoError(t, err)
	ids := make(map[string]bool)
	for _, tq := range got {
		ids[tq.ID] = true
	}
	assert.Len(t, ids, 5)
}

// answered builds a sample with the given number of correct answers per
// category; the rest are answered wrong.
func answered(correct map[string]int, total map[string]int) ([]TaggedQuestion, map[string]string) {
	var sampled []TaggedQuestion
	answers := make(map[string]string)
	for category, n := range total {
		qs := pool(category, n)
		for i := range qs {
			sampled = append(sampled, TaggedQuestion{Question: &qs[i], CategoryID: category})
			if i < correct[category] {
				answers[qs[i].ID] = "a"
			} else {
				answers[qs[i].ID] = "b"
			}
		}
	}
	return sampled, answers
}

func TestEvaluate_PerCategoryUnderMinimumFails(t *testing.T) {
	cfg := Config{
		Passing: PassingRule{Kind: PerCategory, PerCategory: map[string]int{
			"basisfragen": 5, "fragen-binnen": 18, "fragen-segeln": 5,
		}},
	}
	sampled, answers := answered(
		map[string]int{"basisfragen": 6, "fragen-binnen": 18, "fragen-segeln": 4},
		map[string]int{"basisfragen": 7, "fragen-binnen": 23, "fragen-segeln": 7},
	)

	res := Evaluate(cfg, sampled, answers)
	assert.False(t, res.Passed)
	assert.Equal(t, 28, res.TotalCorrect)
	assert.Equal(t, []string{"fragen-segeln"}, res.Failed)
	assert.Equal(t, 6, res.PerCategory["basisfragen"])
	assert.Equal(t, 37, res.Answered)
}

func TestEvaluate_TotalRule(t *testing.T) {
	cfg := Config{Passing: PassingRule{Kind: Total, MinTotal: 20}}
	tests := []struct {
		correct int
		want    bool
	}{
		{20, true},
		{19, false},
		{25, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.correct), func(t *testing.T) {
			sampled, answers := answered(
				map[string]int{"basisfragen": tt.correct},
				map[string]int{"basisfragen": 25},
			)
			res := Evaluate(cfg, sampled, answers)
			if res.Passed != tt.want {
				t.Errorf("Passed = %v, want %v (correct %d)", res.Passed, tt.want, res.TotalCorrect)
			}
		})
	}
}

func TestEvaluate_UnansweredCountsIncorrect(t *testing.T) {
	cfg := Config{Passing: PassingRule{Kind: Total, MinTotal: 1}}
	qs := pool("basisfragen", 3)
	sampled := []TaggedQuestion{
		{Question: &qs[0], CategoryID: "basisfragen"},
		{Question: &qs[1], CategoryID: "basisfragen"},
	}
	res := Evaluate(cfg, sampled, nil)
	assert.False(t, res.Passed)
	assert.Equal(t, 0, res.Answered)
	assert.Equal(t, 2, res.Total)
}

func TestEvaluate_RuleIgnoresUnlistedCategory(t *testing.T) {
	cfg := Config{Passing: PassingRule{Kind: PerCategory, PerCategory: map[string]int{"basisfragen": 1}}}
	sampled, answers := answered(
		map[string]int{"basisfragen": 1, "fragen-segeln": 0},
		map[string]int{"basisfragen": 1, "fragen-segeln": 3},
	)
	assert.True(t, Evaluate(cfg, sampled, answers).Passed)
}

func TestConfigValidate(t *testing.T) {
	valid := singleRequirement(3)
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"no id", func(c *Config) { c.ID = "" }},
		{"zero duration", func(c *Config) { c.Duration = 0 }},
		{"no requirements", func(c *Config) { c.Requirements = nil }},
		{"zero sample", func(c *Config) { c.Requirements = []Requirement{{CategoryID: "x"}} }},
		{"unknown kind", func(c *Config) { c.Passing.Kind = "vibes" }},
		{"empty per-category", func(c *Config) { c.Passing = PassingRule{Kind: PerCategory} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := singleRequirement(3)
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoadPools_FetchesEachCategoryOnce(t *testing.T) {
	all := append(pool("basisfragen", 10), pool("fragen-segeln", 10)...)
	repo := bank.NewMemoryRepository(all)
	cfg := Config{
		ID:       "segel",
		Duration: 35 * time.Minute,
		Requirements: []Requirement{
			{CategoryID: "basisfragen", SampleCount: 2},
			{CategoryID: "fragen-segeln", SampleCount: 2},
			{CategoryID: "basisfragen", SampleCount: 1},
		},
		Passing: PassingRule{Kind: Total, MinTotal: 3},
	}

	pools, err := LoadPools(context.Background(), repo, "sbf-binnen", cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.Calls())
	assert.Len(t, pools["basisfragen"], 10)
}

func TestLoadPools_PropagatesLoadError(t *testing.T) {
	repo := bank.NewMemoryRepository(nil)
	repo.Err = &bank.LoadError{CategoryID: "basisfragen", Status: 503}

	_, err := LoadPools(context.Background(), repo, "sbf-binnen", singleRequirement(1))
	assert.ErrorIs(t, err, bank.ErrLoad)
}
