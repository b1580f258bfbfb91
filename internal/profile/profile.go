// Package profile holds the per-student learning record: the raw answer
// score log, per-concept mastery, and the session history derived from
// both. All state lives in memory; persistence is handled elsewhere.
package profile

import (
	"time"

	"github.com/google/uuid"
)

// Default tuning for mastery movement.
const (
	DefaultCorrectDelta = 12
	DefaultWrongDelta   = -18
	DefaultFirstTouch   = 50
)

// Params controls how mastery moves on each answer.
type Params struct {
	// CorrectDelta is added to a concept's mastery on a correct answer.
	CorrectDelta int
	// WrongDelta is added on a wrong answer (negative).
	WrongDelta int
	// FirstTouch is the mastery assigned to a concept never seen before,
	// applied before the delta.
	FirstTouch int
}

// DefaultParams returns the standard mastery tuning.
func DefaultParams() Params {
	return Params{
		CorrectDelta: DefaultCorrectDelta,
		WrongDelta:   DefaultWrongDelta,
		FirstTouch:   DefaultFirstTouch,
	}
}

// SessionResult is one answered question in a student's history.
type SessionResult struct {
	// ID uniquely identifies this entry across devices and exports.
	ID string `json:"id"`
	// Concept is the sub-topic label the question was drawn from.
	Concept string `json:"concept"`
	// Score is 100 for a correct answer, 0 for a wrong one.
	Score int `json:"score"`
	// Confidence is the concept's mastery after this answer was applied.
	Confidence int `json:"confidence"`
	// Timestamp is when the answer was recorded.
	Timestamp time.Time `json:"timestamp"`
	// Feedback holds the reference answer shown when the student was
	// wrong, empty otherwise.
	Feedback string `json:"feedback,omitempty"`
}

// Profile is the full record for one student.
type Profile struct {
	Name     string          `json:"name"`
	Scores   []int           `json:"scores"`
	Mastery  map[string]int  `json:"mastery"`
	Sessions []SessionResult `json:"sessions"`
}

// New creates an empty profile for a student.
func New(name string) *Profile {
	return &Profile{
		Name:    name,
		Mastery: make(map[string]int),
	}
}

// MasteryOf returns the mastery for a concept, or firstTouch if the
// concept has never been practiced.
func (p *Profile) MasteryOf(concept string, params Params) int {
	if m, ok := p.Mastery[concept]; ok {
		return m
	}
	return params.FirstTouch
}

// RecordAnswer applies one answered question to the profile: appends a
// 0/100 entry to the score log, moves the concept's mastery by the
// configured delta clamped to [0,100], and appends a session entry.
// The score log is append-only; entries are never rewritten.
func (p *Profile) RecordAnswer(concept string, correct bool, feedback string, now time.Time, params Params) SessionResult {
	score := 0
	delta := params.WrongDelta
	if correct {
		score = 100
		delta = params.CorrectDelta
	}
	p.Scores = append(p.Scores, score)

	if p.Mastery == nil {
		p.Mastery = make(map[string]int)
	}
	current, ok := p.Mastery[concept]
	if !ok {
		current = params.FirstTouch
	}
	updated := clamp(current+delta, 0, 100)
	p.Mastery[concept] = updated

	result := SessionResult{
		ID:         uuid.NewString(),
		Concept:    concept,
		Score:      score,
		Confidence: updated,
		Timestamp:  now,
	}
	if !correct {
		result.Feedback = feedback
	}
	p.Sessions = append(p.Sessions, result)
	return result
}

// AverageScore returns the mean of the score log, and false if the log
// is empty.
func (p *Profile) AverageScore() (float64, bool) {
	if len(p.Scores) == 0 {
		return 0, false
	}
	sum := 0
	for _, s := range p.Scores {
		sum += s
	}
	return float64(sum) / float64(len(p.Scores)), true
}

// Attempts returns the number of answered questions on record.
func (p *Profile) Attempts() int {
	return len(p.Scores)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
