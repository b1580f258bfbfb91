package session

import (
	"errors"
	"testing"
	"time"

	"github.com/abhisek/mindflow/internal/examiner"
	"github.com/abhisek/mindflow/internal/profile"
)

var now = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func newReady(t *testing.T) *Session {
	t.Helper()
	s := New(profile.New("Asha"), profile.DefaultParams())
	s.SetSubject("Science")
	s.SetTopic("The Human Eye")
	s.SetSubtopic("Myopia and Hypermetropia")
	s.SetMode(examiner.ModeSlow)
	return s
}

func TestStartGuardMissingSelection(t *testing.T) {
	s := New(profile.New("x"), profile.DefaultParams())
	s.SetMode(examiner.ModeFast)

	if s.Start() {
		t.Fatal("Start succeeded without a syllabus selection")
	}
	if s.Warning != WarnSelectPath {
		t.Errorf("warning = %q", s.Warning)
	}
	if s.Phase != PhaseIdle {
		t.Errorf("phase = %v, want idle", s.Phase)
	}
}

func TestStartGuardMissingMode(t *testing.T) {
	s := newReady(t)
	s.Mode = ""

	if s.Start() {
		t.Fatal("Start succeeded without a mode")
	}
	if s.Warning != WarnChooseMode {
		t.Errorf("warning = %q", s.Warning)
	}
}

func TestStartClearsWarning(t *testing.T) {
	s := newReady(t)
	s.Warning = WarnChooseMode

	if !s.Start() {
		t.Fatal("Start refused with full selection")
	}
	if s.Warning != "" {
		t.Errorf("warning = %q, want cleared", s.Warning)
	}
	if s.Phase != PhaseLoading {
		t.Errorf("phase = %v, want loading", s.Phase)
	}
}

func TestSubjectChangeCascades(t *testing.T) {
	s := newReady(t)
	s.SetSubject("Mathematics")

	if s.Topic != "" || s.Subtopic != "" {
		t.Errorf("topic/subtopic = %q/%q, want cleared", s.Topic, s.Subtopic)
	}
}

func TestTopicChangeClearsSubtopic(t *testing.T) {
	s := newReady(t)
	s.SetTopic("Electricity")

	if s.Subtopic != "" {
		t.Errorf("subtopic = %q, want cleared", s.Subtopic)
	}
	if s.Subject != "Science" {
		t.Errorf("subject = %q, should be untouched", s.Subject)
	}
}

func TestSameSubjectDoesNotCascade(t *testing.T) {
	s := newReady(t)
	s.SetSubject("Science")

	if s.Topic == "" || s.Subtopic == "" {
		t.Error("re-selecting the same subject cleared the topic path")
	}
}

func TestFullQuestionFlow(t *testing.T) {
	s := newReady(t)
	s.Start()

	if !s.QuestionReady(s.Epoch, "Which lens corrects myopia?") {
		t.Fatal("question rejected")
	}
	if s.Phase != PhaseQuestion {
		t.Fatalf("phase = %v", s.Phase)
	}

	if !s.Submit("Concave lens") {
		t.Fatal("submit rejected")
	}
	if s.Phase != PhaseEvaluating {
		t.Fatalf("phase = %v", s.Phase)
	}

	ok := s.VerdictReady(s.Epoch, &examiner.Evaluation{
		IsCorrect:   true,
		FinalAnswer: "Concave lens",
	}, now)
	if !ok {
		t.Fatal("verdict rejected")
	}
	if s.Phase != PhaseResult {
		t.Fatalf("phase = %v", s.Phase)
	}

	// The verdict must have been applied to the profile.
	if len(s.Student.Scores) != 1 || s.Student.Scores[0] != 100 {
		t.Errorf("scores = %v", s.Student.Scores)
	}
	if got := s.Student.Mastery["Myopia and Hypermetropia"]; got != 62 {
		t.Errorf("mastery = %d, want 62", got)
	}
}

func TestWrongAnswerStoresFeedback(t *testing.T) {
	s := newReady(t)
	s.Start()
	s.QuestionReady(s.Epoch, "q")
	s.Submit("Convex lens")

	s.VerdictReady(s.Epoch, &examiner.Evaluation{
		IsCorrect:   false,
		FinalAnswer: "Concave lens",
		Explanation: "Myopia needs a diverging lens.",
	}, now)

	if s.Student.Scores[0] != 0 {
		t.Errorf("scores = %v", s.Student.Scores)
	}
	if got := s.Student.Mastery["Myopia and Hypermetropia"]; got != 32 {
		t.Errorf("mastery = %d, want 32", got)
	}
	if s.Student.Sessions[0].Feedback != "Concave lens" {
		t.Errorf("feedback = %q", s.Student.Sessions[0].Feedback)
	}
}

func TestEmptyAnswerRejected(t *testing.T) {
	s := newReady(t)
	s.Start()
	s.QuestionReady(s.Epoch, "q")

	if s.Submit("") {
		t.Error("empty answer accepted")
	}
	if s.Phase != PhaseQuestion {
		t.Errorf("phase = %v", s.Phase)
	}
}

func TestStaleQuestionDiscardedAfterExit(t *testing.T) {
	s := newReady(t)
	s.Start()
	staleEpoch := s.Epoch

	s.Exit()

	if s.QuestionReady(staleEpoch, "late question") {
		t.Fatal("stale question accepted after exit")
	}
	if s.Question != "" || s.Phase != PhaseIdle {
		t.Errorf("state mutated by stale response: phase=%v question=%q", s.Phase, s.Question)
	}
}

func TestStaleVerdictLeavesProfileUntouched(t *testing.T) {
	s := newReady(t)
	s.Start()
	s.QuestionReady(s.Epoch, "q")
	s.Submit("a")
	staleEpoch := s.Epoch

	s.Exit()

	ok := s.VerdictReady(staleEpoch, &examiner.Evaluation{IsCorrect: true}, now)
	if ok {
		t.Fatal("stale verdict accepted")
	}
	if len(s.Student.Scores) != 0 {
		t.Errorf("stale verdict reached the profile: %v", s.Student.Scores)
	}
}

func TestExitKeepsSelections(t *testing.T) {
	s := newReady(t)
	s.Start()
	s.Exit()

	if s.Subject != "Science" || s.Subtopic != "Myopia and Hypermetropia" || s.Mode != examiner.ModeSlow {
		t.Error("exit cleared the syllabus selection")
	}
	if s.Phase != PhaseIdle {
		t.Errorf("phase = %v", s.Phase)
	}
}

func TestGenerationFailureReturnsToIdle(t *testing.T) {
	s := newReady(t)
	s.Start()

	failure := errors.New("provider down")
	if !s.GenerationFailed(s.Epoch, failure) {
		t.Fatal("failure rejected")
	}
	if s.Phase != PhaseIdle {
		t.Errorf("phase = %v, want idle", s.Phase)
	}
	if !errors.Is(s.Err, failure) {
		t.Errorf("err = %v", s.Err)
	}

	// No automatic retry: starting again is an explicit user action.
	if !s.Start() {
		t.Error("restart refused after failure")
	}
}

func TestEvaluationFailureKeepsQuestion(t *testing.T) {
	s := newReady(t)
	s.Start()
	s.QuestionReady(s.Epoch, "q")
	s.Submit("a")

	s.EvaluationFailed(s.Epoch, errors.New("timeout"))

	if s.Phase != PhaseQuestion {
		t.Errorf("phase = %v, want question", s.Phase)
	}
	if s.Question != "q" {
		t.Errorf("question = %q", s.Question)
	}
	if len(s.Student.Scores) != 0 {
		t.Error("failed evaluation touched the score log")
	}
}

func TestNextLoadsAnotherQuestion(t *testing.T) {
	s := newReady(t)
	s.Start()
	s.QuestionReady(s.Epoch, "q1")
	s.Submit("a")
	s.VerdictReady(s.Epoch, &examiner.Evaluation{IsCorrect: true}, now)

	if !s.Next() {
		t.Fatal("Next refused from result")
	}
	if s.Phase != PhaseLoading {
		t.Errorf("phase = %v", s.Phase)
	}
	if s.Question != "" || s.Verdict != nil {
		t.Error("previous question state not cleared")
	}

	s.QuestionReady(s.Epoch, "q2")
	s.Submit("b")
	s.VerdictReady(s.Epoch, &examiner.Evaluation{IsCorrect: false, FinalAnswer: "x"}, now)

	if len(s.Student.Scores) != 2 {
		t.Errorf("scores = %v, want 2 entries", s.Student.Scores)
	}
}
