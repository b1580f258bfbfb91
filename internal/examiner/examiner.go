// Package examiner is the LLM-facing gateway for exam practice: it
// generates board-style questions, evaluates student answers, and
// resolves free-form doubts with web-grounded search.
package examiner

import "context"

// Mode tunes question difficulty to the learner.
type Mode string

const (
	// ModeFast targets application-level, multi-step questions.
	ModeFast Mode = "A"
	// ModeSlow targets repeated board questions and essential
	// definitions only.
	ModeSlow Mode = "C"
)

// Valid reports whether m is a known learner mode.
func (m Mode) Valid() bool {
	return m == ModeFast || m == ModeSlow
}

// Label returns a short human-readable name for the mode.
func (m Mode) Label() string {
	switch m {
	case ModeFast:
		return "Fast Learner (A)"
	case ModeSlow:
		return "Slow Learner (C)"
	default:
		return string(m)
	}
}

// Evaluation is the verdict on one student answer.
type Evaluation struct {
	IsCorrect   bool   `json:"isCorrect"`
	FinalAnswer string `json:"finalAnswer"`
	Explanation string `json:"explanation"`
}

// DoubtAnswer is a grounded answer to a free-form question with its
// web sources.
type DoubtAnswer struct {
	Text    string
	Sources []SourceRef
}

// SourceRef is one web reference backing a doubt answer.
type SourceRef struct {
	Title string
	URI   string
}

// Gateway is the examiner's interface to the LLM.
type Gateway interface {
	// GenerateQuestion produces one board-style question for the
	// concept, tuned to the learner mode.
	GenerateQuestion(ctx context.Context, concept string, mode Mode) (string, error)

	// EvaluateAnswer judges a student answer against the question and
	// returns the verdict with the textbook answer.
	EvaluateAnswer(ctx context.Context, question, answer string, mode Mode) (*Evaluation, error)

	// SearchDoubt answers a free-form student question with web
	// grounding and source attributions.
	SearchDoubt(ctx context.Context, query string) (*DoubtAnswer, error)

	// SupportsDoubtSearch reports whether the backing provider can
	// serve grounded search.
	SupportsDoubtSearch() bool
}
