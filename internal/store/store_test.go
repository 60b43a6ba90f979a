package store

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sbfquiz/internal/question"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"progress", "questions"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestProgressRepo_PutGetDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()
	scope := Scope{LicenseID: "sbf-binnen", CategoryID: "basisfragen"}

	got, err := repo.Get(ctx, scope)
	require.NoError(t, err)
	assert.Nil(t, got, "expected nil snapshot before first put")

	require.NoError(t, repo.Put(ctx, scope, []byte(`{"current":"1"}`)))
	require.NoError(t, repo.Put(ctx, scope, []byte(`{"current":"2"}`)))

	got, err = repo.Get(ctx, scope)
	require.NoError(t, err)
	assert.JSONEq(t, `{"current":"2"}`, string(got), "last write wins")

	other, err := repo.Get(ctx, Scope{LicenseID: "sbf-binnen", CategoryID: "fragen-segeln"})
	require.NoError(t, err)
	assert.Nil(t, other, "scopes are independent")

	require.NoError(t, repo.Delete(ctx, scope))
	got, err = repo.Get(ctx, scope)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Delete(ctx, scope), "deleting a missing scope is not an error")
}

func testQuestion(id, license, category string) question.Question {
	return question.Question{
		ID:         id,
		Prompt:     "Frage " + id + "?",
		LicenseID:  license,
		CategoryID: category,
		Options: []question.Option{
			{ID: "1", Text: "richtig", IsCorrect: true},
			{ID: "2", Text: "falsch"},
		},
	}
}

func TestQuestionRepo_ReplaceAllAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuestionRepo()
	ctx := context.Background()

	first := []question.Question{
		testQuestion("old", "sbf-binnen", "basisfragen"),
	}
	require.NoError(t, repo.ReplaceAll(ctx, first))

	qs := []question.Question{
		testQuestion("1", "sbf-binnen", "basisfragen"),
		testQuestion("2", "sbf-binnen", "fragen-segeln"),
		testQuestion("3", "sbf-binnen", "basisfragen"),
	}
	qs[2].Image = "media/sbf-binnen/basisfragen/3.png"
	require.NoError(t, repo.ReplaceAll(ctx, qs))

	got, err := repo.Questions(ctx, "sbf-binnen", "basisfragen")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
	assert.Equal(t, "media/sbf-binnen/basisfragen/3.png", got[1].Image)
	assert.Equal(t, qs[0].Options, got[0].Options)

	all, err := repo.Questions(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3, "import wipes previous questions")

	n, err := repo.Count(ctx, "sbf-binnen", "fragen-segeln")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestQuestionRepo_ReplaceAllRollsBack(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuestionRepo()
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, []question.Question{testQuestion("1", "sbf-binnen", "basisfragen")}))

	bad := []question.Question{
		testQuestion("2", "sbf-binnen", "basisfragen"),
		testQuestion("3", "", "basisfragen"),
	}
	require.Error(t, repo.ReplaceAll(ctx, bad))

	all, err := repo.Questions(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "1", all[0].ID)
}
