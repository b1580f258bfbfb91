// Package session holds the practice session state machine: syllabus
// selection, the question/answer lifecycle, and application of verdicts
// to the student profile. It is pure state; all I/O is driven by the
// screens.
package session

import (
	"time"

	"github.com/abhisek/mindflow/internal/examiner"
	"github.com/abhisek/mindflow/internal/profile"
)

// Phase is the session lifecycle stage.
type Phase int

const (
	// PhaseIdle: selecting subject, topic, sub-topic, and mode.
	PhaseIdle Phase = iota
	// PhaseLoading: a question is being generated.
	PhaseLoading
	// PhaseQuestion: a question is on screen awaiting an answer.
	PhaseQuestion
	// PhaseEvaluating: an answer was submitted and awaits a verdict.
	PhaseEvaluating
	// PhaseResult: a verdict is on screen.
	PhaseResult
)

// Guard warnings shown when Start is refused.
const (
	WarnSelectPath = "Select Subject, Topic, and Sub-Topic first."
	WarnChooseMode = "Choose A or C first."
)

// Session is the state of one student's practice flow.
type Session struct {
	Student *profile.Profile
	Params  profile.Params

	Subject  string
	Topic    string
	Subtopic string
	Mode     examiner.Mode

	Phase    Phase
	Question string
	Answer   string
	Verdict  *examiner.Evaluation
	Warning  string
	Err      error

	// Epoch stamps every async request issued for this session. It is
	// bumped on exit so responses from an abandoned session are
	// recognized as stale and discarded.
	Epoch int
}

// New creates an idle session for the student.
func New(student *profile.Profile, params profile.Params) *Session {
	return &Session{
		Student: student,
		Params:  params,
		Phase:   PhaseIdle,
	}
}

// SetSubject selects a subject. Changing it clears the dependent topic
// and sub-topic.
func (s *Session) SetSubject(subject string) {
	if s.Subject == subject {
		return
	}
	s.Subject = subject
	s.Topic = ""
	s.Subtopic = ""
	s.Warning = ""
}

// SetTopic selects a topic. Changing it clears the dependent sub-topic.
func (s *Session) SetTopic(topic string) {
	if s.Topic == topic {
		return
	}
	s.Topic = topic
	s.Subtopic = ""
	s.Warning = ""
}

// SetSubtopic selects the sub-topic to practice.
func (s *Session) SetSubtopic(subtopic string) {
	s.Subtopic = subtopic
	s.Warning = ""
}

// SetMode selects the learner mode.
func (s *Session) SetMode(mode examiner.Mode) {
	s.Mode = mode
	s.Warning = ""
}

// Concept returns the label questions and mastery are keyed by.
func (s *Session) Concept() string {
	return s.Subtopic
}

// Start checks the selection guards and, if they pass, moves to
// PhaseLoading. The caller then issues question generation stamped
// with the current Epoch. Returns false with Warning set when refused.
func (s *Session) Start() bool {
	if s.Phase != PhaseIdle {
		return false
	}
	if s.Subject == "" || s.Topic == "" || s.Subtopic == "" {
		s.Warning = WarnSelectPath
		return false
	}
	if !s.Mode.Valid() {
		s.Warning = WarnChooseMode
		return false
	}
	s.Warning = ""
	s.Err = nil
	s.Phase = PhaseLoading
	return true
}

// QuestionReady installs a generated question. Responses stamped with a
// stale epoch are discarded. Returns true if the question was accepted.
func (s *Session) QuestionReady(epoch int, question string) bool {
	if epoch != s.Epoch || s.Phase != PhaseLoading {
		return false
	}
	s.Question = question
	s.Answer = ""
	s.Verdict = nil
	s.Phase = PhaseQuestion
	return true
}

// GenerationFailed aborts question loading and returns to PhaseIdle
// with the error recorded. The session never re-issues the request
// itself; the student decides whether to start again.
func (s *Session) GenerationFailed(epoch int, err error) bool {
	if epoch != s.Epoch || s.Phase != PhaseLoading {
		return false
	}
	s.Err = err
	s.Phase = PhaseIdle
	return true
}

// Submit records the student's answer and moves to PhaseEvaluating.
// The caller then issues evaluation stamped with the current Epoch.
func (s *Session) Submit(answer string) bool {
	if s.Phase != PhaseQuestion || answer == "" {
		return false
	}
	s.Answer = answer
	s.Phase = PhaseEvaluating
	return true
}

// VerdictReady installs an evaluation verdict and applies it to the
// student profile: the score log is appended and the concept's mastery
// moves by the configured delta. Stale-epoch verdicts are discarded
// and leave the profile untouched.
func (s *Session) VerdictReady(epoch int, verdict *examiner.Evaluation, now time.Time) bool {
	if epoch != s.Epoch || s.Phase != PhaseEvaluating {
		return false
	}
	s.Verdict = verdict

	feedback := ""
	if !verdict.IsCorrect {
		feedback = verdict.FinalAnswer
	}
	s.Student.RecordAnswer(s.Concept(), verdict.IsCorrect, feedback, now, s.Params)

	s.Phase = PhaseResult
	return true
}

// EvaluationFailed returns to PhaseQuestion so the answer can be
// resubmitted. The score log is untouched.
func (s *Session) EvaluationFailed(epoch int, err error) bool {
	if epoch != s.Epoch || s.Phase != PhaseEvaluating {
		return false
	}
	s.Err = err
	s.Phase = PhaseQuestion
	return true
}

// Next leaves the result screen and loads another question for the
// same concept. Returns false outside PhaseResult.
func (s *Session) Next() bool {
	if s.Phase != PhaseResult {
		return false
	}
	s.Question = ""
	s.Answer = ""
	s.Verdict = nil
	s.Err = nil
	s.Phase = PhaseLoading
	return true
}

// Exit abandons the current question flow and returns to PhaseIdle.
// The epoch is bumped so any response still in flight is discarded on
// arrival. Syllabus and mode selections are kept.
func (s *Session) Exit() {
	s.Epoch++
	s.Question = ""
	s.Answer = ""
	s.Verdict = nil
	s.Warning = ""
	s.Err = nil
	s.Phase = PhaseIdle
}
