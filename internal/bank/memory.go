package bank

import (
	"context"
	"sync"

	"github.com/abhisek/sbfquiz/internal/question"
)

// MemoryRepository serves questions from memory. Empty filters match
// everything, mirroring the HTTP API.
type MemoryRepository struct {
	mu        sync.Mutex
	questions []question.Question
	calls     int

	// Err, when set, is returned from every Questions call.
	Err error
}

// NewMemoryRepository returns a repository over qs.
func NewMemoryRepository(qs []question.Question) *MemoryRepository {
	return &MemoryRepository{questions: qs}
}

func (m *MemoryRepository) Questions(ctx context.Context, licenseID, categoryID string) ([]question.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.Err != nil {
		return nil, m.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []question.Question
	for _, q := range m.questions {
		if licenseID != "" && q.LicenseID != licenseID {
			continue
		}
		if categoryID != "" && q.CategoryID != categoryID {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

// Calls returns how many times Questions was invoked.
func (m *MemoryRepository) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
