package store

import (
	"context"
	"errors"
	"testing"
)

func TestScopeKey(t *testing.T) {
	s := Scope{LicenseID: "sbf-binnen", CategoryID: "basisfragen"}
	if got, want := s.Key(), "quiz-progress-sbf-binnen-basisfragen"; got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
}

func TestDecodeProgress(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantErr   bool
		wantRevs  int
		wantCur   string
		wantLegac bool
	}{
		{"current schema", `{"version":2,"reviews":{"1":{"count":1,"ef":2.6,"interval":1,"due":"2025-01-02T00:00:00Z"}},"current":"1"}`, false, 1, "1", false},
		{"legacy correctMap", `{"answers":{"1":"2"},"correctMap":{"1":false,"2":true},"current":"2"}`, false, 0, "2", true},
		{"empty object", `{}`, false, 0, "", false},
		{"unknown fields ignored", `{"foo":[1,2,3],"current":"9"}`, false, 0, "9", false},
		{"null review entry dropped", `{"reviews":{"1":null}}`, false, 0, "", false},
		{"not json", `not json`, true, 0, "", false},
		{"array", `[1,2]`, true, 0, "", false},
		{"null", `null`, true, 0, "", false},
		{"empty", ``, true, 0, "", false},
		{"wrong field type", `{"reviews":[1]}`, true, 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeProgress([]byte(tt.raw))
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedSnapshot) {
					t.Fatalf("error = %v, want ErrMalformedSnapshot", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got.Reviews) != tt.wantRevs {
				t.Errorf("len(Reviews) = %d, want %d", len(got.Reviews), tt.wantRevs)
			}
			if got.Current != tt.wantCur {
				t.Errorf("Current = %q, want %q", got.Current, tt.wantCur)
			}
			if got.IsLegacy() != tt.wantLegac {
				t.Errorf("IsLegacy() = %v, want %v", got.IsLegacy(), tt.wantLegac)
			}
		})
	}
}

func TestEncodeProgressStampsVersion(t *testing.T) {
	raw, err := EncodeProgress(&ProgressData{
		Reviews:    map[string]*ReviewData{"1": {ConsecutiveCorrect: 1, Ease: 2.6, IntervalDays: 1, Due: "2025-01-02T00:00:00Z"}},
		Current:    "1",
		CorrectMap: map[string]bool{"1": true},
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeProgress(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Version != ProgressVersion {
		t.Errorf("Version = %d, want %d", got.Version, ProgressVersion)
	}
	if got.CorrectMap != nil {
		t.Error("legacy correctMap should not be written back")
	}
	if got.Reviews["1"].Ease != 2.6 {
		t.Errorf("Ease = %v, want 2.6", got.Reviews["1"].Ease)
	}
}

func TestMemoryProgressRepo(t *testing.T) {
	repo := NewMemoryProgressRepo()
	ctx := context.Background()
	scope := Scope{LicenseID: "a", CategoryID: "b"}

	if b, _ := repo.Get(ctx, scope); b != nil {
		t.Fatal("expected nil before put")
	}
	if err := repo.Put(ctx, scope, []byte(`{}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if repo.Len() != 1 {
		t.Errorf("Len() = %d, want 1", repo.Len())
	}
	if err := repo.Delete(ctx, scope); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if repo.Len() != 0 {
		t.Errorf("Len() = %d, want 0", repo.Len())
	}

	repo.PutErr = errors.New("disk full")
	if err := repo.Put(ctx, scope, []byte(`{}`)); err == nil {
		t.Error("expected PutErr to be returned")
	}
}
