package practice

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindflow/internal/examiner"
	"github.com/abhisek/mindflow/internal/profile"
	"github.com/abhisek/mindflow/internal/router"
	"github.com/abhisek/mindflow/internal/screen"
	"github.com/abhisek/mindflow/internal/session"
)

type fakeGateway struct {
	question    string
	questionErr error
	verdict     *examiner.Evaluation
	verdictErr  error
}

func (f *fakeGateway) GenerateQuestion(context.Context, string, examiner.Mode) (string, error) {
	return f.question, f.questionErr
}

func (f *fakeGateway) EvaluateAnswer(context.Context, string, string, examiner.Mode) (*examiner.Evaluation, error) {
	return f.verdict, f.verdictErr
}

func (f *fakeGateway) SearchDoubt(context.Context, string) (*examiner.DoubtAnswer, error) {
	return nil, errors.New("unsupported")
}

func (f *fakeGateway) SupportsDoubtSearch() bool { return false }

type fakeProfiles struct {
	mu    sync.Mutex
	saved []*profile.Profile
}

func (f *fakeProfiles) Get(context.Context, string) (*profile.Profile, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProfiles) GetOrCreate(_ context.Context, name string) (*profile.Profile, error) {
	return profile.New(name), nil
}

func (f *fakeProfiles) Save(_ context.Context, p *profile.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, p)
	return nil
}

func (f *fakeProfiles) List(context.Context) ([]*profile.Profile, error) { return nil, nil }

func (f *fakeProfiles) Delete(context.Context, string) error { return nil }

type recordSpeaker struct {
	spoken []string
}

func (r *recordSpeaker) Speak(text string) { r.spoken = append(r.spoken, text) }
func (r *recordSpeaker) Close()            {}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testScreen(gw *fakeGateway) (*PracticeScreen, *session.Session, *fakeProfiles, *recordSpeaker) {
	sess := session.New(profile.New("Asha"), profile.DefaultParams())
	profiles := &fakeProfiles{}
	speaker := &recordSpeaker{}
	return New(sess, profiles, gw, speaker), sess, profiles, speaker
}

// selectPath walks the selection menus by accepting the highlighted
// item at each stage, ending on the mode pick which starts the loop.
func selectPath(t *testing.T, p *PracticeScreen) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	var scr screen.Screen = p
	for i := 0; i < 4; i++ {
		scr, cmd = scr.Update(specialKey(tea.KeyEnter))
	}
	return cmd
}

func TestFullQuestionFlow(t *testing.T) {
	gw := &fakeGateway{
		question: "Prove that root 2 is irrational.",
		verdict:  &examiner.Evaluation{IsCorrect: true, FinalAnswer: "root 2 is irrational", Explanation: "Standard contradiction proof."},
	}
	p, sess, profiles, speaker := testScreen(gw)

	cmd := selectPath(t, p)
	if cmd == nil {
		t.Fatal("mode pick did not start generation")
	}
	if sess.Phase != session.PhaseLoading {
		t.Fatalf("phase = %v, want PhaseLoading", sess.Phase)
	}

	// Run the generate command and deliver its message.
	msg := cmd()
	if _, cmd = p.Update(msg); sess.Phase != session.PhaseQuestion {
		t.Fatalf("phase = %v, want PhaseQuestion", sess.Phase)
	}
	if sess.Question != gw.question {
		t.Errorf("question = %q", sess.Question)
	}

	// Answer and submit.
	p.answer.Model.SetValue("contradiction proof")
	_, cmd = p.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("submit did not evaluate")
	}
	if sess.Phase != session.PhaseEvaluating {
		t.Fatalf("phase = %v, want PhaseEvaluating", sess.Phase)
	}

	msg = cmd()
	_, cmd = p.Update(msg)
	if sess.Phase != session.PhaseResult {
		t.Fatalf("phase = %v, want PhaseResult", sess.Phase)
	}
	if len(sess.Student.Scores) != 1 || sess.Student.Scores[0] != 100 {
		t.Errorf("scores = %v, want [100]", sess.Student.Scores)
	}
	if got := sess.Student.Mastery[sess.Concept()]; got != 62 {
		t.Errorf("mastery = %d, want 62", got)
	}
	// Mode activation, then the question, then the verdict.
	if len(speaker.spoken) != 3 || speaker.spoken[2] != "Correct." {
		t.Errorf("spoken = %v, want verdict cue last", speaker.spoken)
	}
	if speaker.spoken[0] != "Fast learner mode A activated." {
		t.Errorf("spoken[0] = %q", speaker.spoken[0])
	}
	if speaker.spoken[1] != gw.question {
		t.Errorf("spoken[1] = %q, want the question", speaker.spoken[1])
	}

	// The follow-up command saves the profile.
	if cmd == nil {
		t.Fatal("no save command after verdict")
	}
	p.Update(cmd())
	if len(profiles.saved) != 1 {
		t.Errorf("saved %d profiles, want 1", len(profiles.saved))
	}
}

func TestWrongAnswerSpeaksReference(t *testing.T) {
	gw := &fakeGateway{
		question: "State Pythagoras theorem.",
		verdict:  &examiner.Evaluation{IsCorrect: false, FinalAnswer: "In a right triangle the square of the hypotenuse equals the sum of squares of the other two sides.", Explanation: "Definition."},
	}
	p, sess, _, speaker := testScreen(gw)

	cmd := selectPath(t, p)
	p.Update(cmd())
	p.answer.Model.SetValue("no idea")
	_, cmd = p.Update(specialKey(tea.KeyEnter))
	_, _ = p.Update(cmd())

	if n := len(speaker.spoken); n == 0 || speaker.spoken[n-1] != "Wrong." {
		t.Fatalf("spoken = %v, want Wrong. last", speaker.spoken)
	}

	// The delayed cue names the reference answer.
	p.Update(speakAnswerMsg{epoch: sess.Epoch})
	want := "The answer is " + gw.verdict.FinalAnswer
	if n := len(speaker.spoken); speaker.spoken[n-1] != want {
		t.Errorf("last spoken = %q, want %q", speaker.spoken[n-1], want)
	}
}

func TestStaleVerdictDiscarded(t *testing.T) {
	gw := &fakeGateway{
		question: "Q",
		verdict:  &examiner.Evaluation{IsCorrect: true, FinalAnswer: "A", Explanation: "E"},
	}
	p, sess, _, speaker := testScreen(gw)

	cmd := selectPath(t, p)
	p.Update(cmd())
	p.answer.Model.SetValue("a")
	_, cmd = p.Update(specialKey(tea.KeyEnter))

	// Leave the question while evaluation is in flight.
	oldEpoch := sess.Epoch
	p.Update(specialKey(tea.KeyEscape))
	if sess.Phase != session.PhaseIdle {
		t.Fatalf("phase after esc = %v, want PhaseIdle", sess.Phase)
	}

	spokenBefore := len(speaker.spoken)
	p.Update(verdictReadyMsg{epoch: oldEpoch, verdict: gw.verdict})
	if len(sess.Student.Scores) != 0 {
		t.Errorf("stale verdict touched the score log: %v", sess.Student.Scores)
	}
	if len(speaker.spoken) != spokenBefore {
		t.Errorf("stale verdict spoke: %v", speaker.spoken)
	}
}

func TestGenerationFailureReturnsToSelection(t *testing.T) {
	gw := &fakeGateway{questionErr: errors.New("rate limited")}
	p, sess, _, _ := testScreen(gw)

	cmd := selectPath(t, p)
	p.Update(cmd())

	if sess.Phase != session.PhaseIdle {
		t.Fatalf("phase = %v, want PhaseIdle after failure", sess.Phase)
	}
	if sess.Err == nil {
		t.Error("failure not recorded")
	}
}

func TestEscFromSubjectStagePops(t *testing.T) {
	gw := &fakeGateway{}
	p, _, _, _ := testScreen(gw)

	_, cmd := p.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc at the first stage should pop the screen")
	}
}

func TestEscStepsBackThroughStages(t *testing.T) {
	gw := &fakeGateway{}
	p, sess, _, _ := testScreen(gw)

	var scr screen.Screen = p
	scr, _ = scr.Update(specialKey(tea.KeyEnter)) // subject
	scr, _ = scr.Update(specialKey(tea.KeyEnter)) // topic
	if p.step != stepSubtopic {
		t.Fatalf("step = %v, want stepSubtopic", p.step)
	}

	scr.Update(specialKey(tea.KeyEscape))
	if p.step != stepTopic {
		t.Errorf("step = %v, want stepTopic after esc", p.step)
	}
	if sess.Subject == "" {
		t.Error("stepping back cleared the subject")
	}
}
