package examiner

import (
	"errors"
	"fmt"
)

// errEmptyResponse indicates the LLM returned no usable text.
var errEmptyResponse = errors.New("empty LLM response")

// GenerationError indicates question generation failed.
type GenerationError struct {
	Concept string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate question for %q: %v", e.Concept, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// EvaluationError indicates answer evaluation failed.
type EvaluationError struct {
	Err error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluate answer: %v", e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }

// SearchError indicates a doubt search failed.
type SearchError struct {
	Query string
	Err   error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search doubt %q: %v", e.Query, e.Err)
}

func (e *SearchError) Unwrap() error { return e.Err }
