package bank

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImport(t *testing.T) {
	raw := `[
		{"license":"sbf-binnen","category":"basisfragen","question":"Was ist Luv?","option1":"dem Wind zugewandt","option2":"abgewandt","option3":"vorne","option4":"hinten","image":null},
		{"license":"sbf-binnen","category":"fragen-binnen ","question":"Tafelzeichen?","option1":"a","option2":"b","option3":"c","option4":"d","image":"media/t.png"}
	]`

	qs, err := ParseImport([]byte(raw))
	require.NoError(t, err)
	require.Len(t, qs, 2)

	assert.Equal(t, "1", qs[0].ID)
	assert.Equal(t, "2", qs[1].ID)
	assert.Equal(t, "basisfragen", qs[0].CategoryID)
	assert.Equal(t, "fragen-binnen", qs[1].CategoryID, "category id should be trimmed")
	assert.Equal(t, "", qs[0].Image)
	assert.Equal(t, "media/t.png", qs[1].Image)

	correct := qs[0].CorrectOption()
	require.NotNil(t, correct)
	assert.Equal(t, "dem Wind zugewandt", correct.Text)
	assert.Len(t, qs[0].Options, 4)
}

func TestParseImport_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{{`},
		{"object instead of array", `{"license":"x"}`},
		{"missing option4", `[{"license":"l","category":"c","question":"q","option1":"a","option2":"b","option3":"c"}]`},
		{"empty question", `[{"license":"l","category":"c","question":"","option1":"a","option2":"b","option3":"c","option4":"d"}]`},
		{"numeric image", `[{"license":"l","category":"c","question":"q","option1":"a","option2":"b","option3":"c","option4":"d","image":3}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseImport([]byte(tt.raw))
			if !errors.Is(err, ErrInvalidImport) {
				t.Errorf("ParseImport() error = %v, want ErrInvalidImport", err)
			}
		})
	}
}

func TestParseImport_Empty(t *testing.T) {
	qs, err := ParseImport([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, qs)
}
