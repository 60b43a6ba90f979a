package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ProgressVersion is the snapshot schema written by this build. Version 0
// marks snapshots from before reviews were tracked (answers/correctMap only).
const ProgressVersion = 2

// ErrMalformedSnapshot indicates persisted progress could not be decoded.
// Callers recover by discarding the snapshot and starting empty.
var ErrMalformedSnapshot = errors.New("malformed progress snapshot")

// Scope identifies one practice quiz: a category within a license.
type Scope struct {
	LicenseID  string
	CategoryID string
}

// Key returns the storage key for the scope.
func (s Scope) Key() string {
	return fmt.Sprintf("quiz-progress-%s-%s", s.LicenseID, s.CategoryID)
}

func (s Scope) String() string {
	return s.LicenseID + "/" + s.CategoryID
}

// ReviewData is the persisted form of one question's review record.
type ReviewData struct {
	ConsecutiveCorrect int     `json:"count"`
	Ease               float64 `json:"ef"`
	IntervalDays       int     `json:"interval"`
	Due                string  `json:"due"` // RFC3339Nano
}

// ProgressData is the JSON snapshot persisted per scope.
type ProgressData struct {
	Version int                    `json:"version,omitempty"`
	Reviews map[string]*ReviewData `json:"reviews,omitempty"`
	Current string                 `json:"current,omitempty"`
	Answers map[string]string      `json:"answers,omitempty"`

	// CorrectMap is only present in legacy snapshots.
	CorrectMap map[string]bool `json:"correctMap,omitempty"`
}

// IsLegacy reports whether the snapshot predates review records.
func (p *ProgressData) IsLegacy() bool {
	return p.Reviews == nil && p.CorrectMap != nil
}

// ProgressRepo is key-value persistence for progress snapshots. Values are
// opaque JSON; callers encode and decode with EncodeProgress/DecodeProgress.
type ProgressRepo interface {
	// Get returns the raw snapshot for scope, or nil if none exists.
	Get(ctx context.Context, scope Scope) ([]byte, error)

	// Put replaces the snapshot for scope.
	Put(ctx context.Context, scope Scope, data []byte) error

	// Delete removes the snapshot for scope. Deleting a missing scope is not an error.
	Delete(ctx context.Context, scope Scope) error
}

// DecodeProgress parses a raw snapshot. Unknown fields are ignored and
// absent fields decode to their zero values. Anything that is not a JSON
// object of the expected shape yields ErrMalformedSnapshot.
func DecodeProgress(raw []byte) (*ProgressData, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: not a JSON object", ErrMalformedSnapshot)
	}

	var data ProgressData
	if err := json.Unmarshal(trimmed, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	for id, rd := range data.Reviews {
		if rd == nil {
			delete(data.Reviews, id)
		}
	}
	return &data, nil
}

// EncodeProgress serializes a snapshot, stamping the current version.
func EncodeProgress(data *ProgressData) ([]byte, error) {
	out := *data
	out.Version = ProgressVersion
	out.CorrectMap = nil
	b, err := json.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("encode progress: %w", err)
	}
	return b, nil
}
