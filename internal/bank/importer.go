package bank

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/sbfquiz/internal/question"
)

// ErrInvalidImport is matched by every ImportError.
var ErrInvalidImport = errors.New("invalid import file")

// ImportError describes an import file that failed to parse or validate.
type ImportError struct {
	Err error
}

func (e *ImportError) Error() string { return fmt.Sprintf("invalid import file: %v", e.Err) }

func (e *ImportError) Unwrap() error { return e.Err }

func (e *ImportError) Is(target error) bool { return target == ErrInvalidImport }

// ImportEntry is one row of an import file. Option1 is always the correct
// answer; the server shuffles options when serving them.
type ImportEntry struct {
	License  string  `json:"license"`
	Category string  `json:"category"`
	Question string  `json:"question"`
	Option1  string  `json:"option1"`
	Option2  string  `json:"option2"`
	Option3  string  `json:"option3"`
	Option4  string  `json:"option4"`
	Image    *string `json:"image,omitempty"`
}

// importSchema is the JSON Schema of an import file.
var importSchema = map[string]any{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type":    "array",
	"items": map[string]any{
		"type":     "object",
		"required": []string{"license", "category", "question", "option1", "option2", "option3", "option4"},
		"properties": map[string]any{
			"license":  nonEmptyString,
			"category": nonEmptyString,
			"question": nonEmptyString,
			"option1":  nonEmptyString,
			"option2":  nonEmptyString,
			"option3":  nonEmptyString,
			"option4":  nonEmptyString,
			"image":    map[string]any{"type": []string{"string", "null"}},
		},
	},
}

var nonEmptyString = map[string]any{"type": "string", "minLength": 1}

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// getImportSchema compiles the import schema once.
func getImportSchema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		// The compiler wants a plain decoded JSON value.
		defBytes, err := json.Marshal(importSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal import schema: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse import schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://import.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// ParseImport validates raw against the import schema and converts its
// entries to questions. Ids are assigned sequentially from 1 in file
// order and option 1 is marked correct.
func ParseImport(raw []byte) ([]question.Question, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ImportError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := getImportSchema()
	if err != nil {
		return nil, fmt.Errorf("compile import schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, &ImportError{Err: err}
	}

	var entries []ImportEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, &ImportError{Err: err}
	}

	qs := make([]question.Question, 0, len(entries))
	for i, e := range entries {
		q := e.toQuestion(strconv.Itoa(i + 1))
		if err := q.Validate(); err != nil {
			return nil, &ImportError{Err: fmt.Errorf("entry %d: %w", i+1, err)}
		}
		qs = append(qs, q)
	}
	return qs, nil
}

func (e ImportEntry) toQuestion(id string) question.Question {
	q := question.Question{
		ID:         id,
		Prompt:     e.Question,
		LicenseID:  strings.TrimSpace(e.License),
		CategoryID: strings.TrimSpace(e.Category),
		Options: []question.Option{
			{ID: "1", Text: e.Option1, IsCorrect: true},
			{ID: "2", Text: e.Option2},
			{ID: "3", Text: e.Option3},
			{ID: "4", Text: e.Option4},
		},
	}
	if e.Image != nil {
		q.Image = *e.Image
	}
	return q
}
