package exam

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/sbfquiz/internal/bank"
	"github.com/abhisek/sbfquiz/internal/question"
)

// ErrInsufficientQuestions is matched by every InsufficientQuestionsError.
var ErrInsufficientQuestions = errors.New("insufficient questions")

// InsufficientQuestionsError reports a category pool smaller than its
// requirement. It is fatal for the attempt.
type InsufficientQuestionsError struct {
	CategoryID string
	Need       int
	Have       int
}

func (e *InsufficientQuestionsError) Error() string {
	return fmt.Sprintf("category %s has %d questions, exam needs %d", e.CategoryID, e.Have, e.Need)
}

func (e *InsufficientQuestionsError) Is(target error) bool { return target == ErrInsufficientQuestions }

// TaggedQuestion is a sampled question together with the category it was
// drawn from.
type TaggedQuestion struct {
	*question.Question
	CategoryID string
}

// Pools maps category ids to their question banks.
type Pools map[string][]question.Question

// Compose draws each requirement's sample without replacement and
// concatenates the samples in requirement order.
func Compose(cfg Config, pools Pools, rng *rand.Rand) ([]TaggedQuestion, error) {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	out := make([]TaggedQuestion, 0, cfg.TotalQuestions())
	for _, req := range cfg.Requirements {
		pool := pools[req.CategoryID]
		if len(pool) < req.SampleCount {
			return nil, &InsufficientQuestionsError{
				CategoryID: req.CategoryID,
				Need:       req.SampleCount,
				Have:       len(pool),
			}
		}
		for _, i := range sample(len(pool), req.SampleCount, rng) {
			out = append(out, TaggedQuestion{Question: &pool[i], CategoryID: req.CategoryID})
		}
	}
	return out, nil
}

// sample returns k distinct indices in [0, n) using a partial Fisher–Yates shuffle.
func sample(n, k int, rng *rand.Rand) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}

// LoadPools fetches every category the config requires, once each.
func LoadPools(ctx context.Context, repo bank.Repository, licenseID string, cfg Config) (Pools, error) {
	pools := make(Pools)
	for _, categoryID := range cfg.CategoryIDs() {
		qs, err := repo.Questions(ctx, licenseID, categoryID)
		if err != nil {
			return nil, fmt.Errorf("load pool %s: %w", categoryID, err)
		}
		pools[categoryID] = qs
	}
	return pools, nil
}
