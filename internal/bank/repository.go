package bank

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/sbfquiz/internal/question"
)

// Repository returns the question bank of one license category.
type Repository interface {
	Questions(ctx context.Context, licenseID, categoryID string) ([]question.Question, error)
}

// ErrLoad is matched by every LoadError.
var ErrLoad = errors.New("question bank unavailable")

// LoadError indicates the question bank could not be fetched. Status is
// the HTTP status for non-success responses and 0 for transport failures.
type LoadError struct {
	LicenseID  string
	CategoryID string
	Status     int
	Err        error
}

func (e *LoadError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("load questions %s/%s: status %d: %v", e.LicenseID, e.CategoryID, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("load questions %s/%s: status %d", e.LicenseID, e.CategoryID, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("load questions %s/%s: %v", e.LicenseID, e.CategoryID, e.Err)
	}
	return fmt.Sprintf("load questions %s/%s failed", e.LicenseID, e.CategoryID)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// Checked wraps a Repository so that every load failure surfaces as a
// *LoadError and every returned question has been validated.
func Checked(r Repository) Repository {
	return &checkedRepository{inner: r}
}

type checkedRepository struct {
	inner Repository
}

func (c *checkedRepository) Questions(ctx context.Context, licenseID, categoryID string) ([]question.Question, error) {
	qs, err := c.inner.Questions(ctx, licenseID, categoryID)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			return nil, err
		}
		return nil, &LoadError{LicenseID: licenseID, CategoryID: categoryID, Err: err}
	}
	if err := question.ValidateAll(qs); err != nil {
		return nil, &LoadError{LicenseID: licenseID, CategoryID: categoryID, Err: err}
	}
	return qs, nil
}
