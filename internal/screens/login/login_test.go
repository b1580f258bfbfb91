package login

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindflow/internal/examiner"
	"github.com/abhisek/mindflow/internal/profile"
	"github.com/abhisek/mindflow/internal/router"
	"github.com/abhisek/mindflow/internal/session"
	"github.com/abhisek/mindflow/internal/speech"
)

type fakeProfiles struct {
	created []string
	err     error
}

func (f *fakeProfiles) Get(context.Context, string) (*profile.Profile, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProfiles) GetOrCreate(_ context.Context, name string) (*profile.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, name)
	return profile.New(name), nil
}

func (f *fakeProfiles) Save(context.Context, *profile.Profile) error { return nil }

func (f *fakeProfiles) List(context.Context) ([]*profile.Profile, error) { return nil, nil }

func (f *fakeProfiles) Delete(context.Context, string) error { return nil }

type stubGateway struct{}

func (stubGateway) GenerateQuestion(context.Context, string, examiner.Mode) (string, error) {
	return "", errors.New("not implemented")
}

func (stubGateway) EvaluateAnswer(context.Context, string, string, examiner.Mode) (*examiner.Evaluation, error) {
	return nil, errors.New("not implemented")
}

func (stubGateway) SearchDoubt(context.Context, string) (*examiner.DoubtAnswer, error) {
	return nil, errors.New("not implemented")
}

func (stubGateway) SupportsDoubtSearch() bool { return false }

func enterKey() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func testLogin(profiles *fakeProfiles) (*LoginScreen, *session.Session) {
	sess := session.New(nil, profile.DefaultParams())
	l := New(sess, profiles, stubGateway{}, speech.NopSpeaker{}, profile.DefaultThresholds())
	return l, sess
}

func TestLoginLoadsProfileAndHandsOver(t *testing.T) {
	profiles := &fakeProfiles{}
	l, sess := testLogin(profiles)

	l.input.Model.SetValue("Asha")
	_, cmd := l.Update(enterKey())
	if cmd == nil {
		t.Fatal("enter did not start loading")
	}

	_, cmd = l.Update(cmd())
	if len(profiles.created) != 1 || profiles.created[0] != "Asha" {
		t.Errorf("created = %v, want [Asha]", profiles.created)
	}
	if sess.Student == nil || sess.Student.Name != "Asha" {
		t.Fatalf("session student = %+v", sess.Student)
	}

	if cmd == nil {
		t.Fatal("no handover command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("login should replace itself with the home screen")
	}
}

func TestLoginTrimsName(t *testing.T) {
	profiles := &fakeProfiles{}
	l, _ := testLogin(profiles)

	l.input.Model.SetValue("  Ravi  ")
	_, cmd := l.Update(enterKey())
	l.Update(cmd())

	if len(profiles.created) != 1 || profiles.created[0] != "Ravi" {
		t.Errorf("created = %v, want [Ravi]", profiles.created)
	}
}

func TestLoginEmptyNameIgnored(t *testing.T) {
	l, _ := testLogin(&fakeProfiles{})

	l.input.Model.SetValue("")
	_, cmd := l.Update(enterKey())
	if cmd != nil || l.loading {
		t.Error("empty name started a load")
	}
}

func TestLoginErrorShownAndRetryable(t *testing.T) {
	profiles := &fakeProfiles{err: errors.New("disk full")}
	l, sess := testLogin(profiles)

	l.input.Model.SetValue("Asha")
	_, cmd := l.Update(enterKey())
	l.Update(cmd())

	if l.err == nil {
		t.Fatal("load error not recorded")
	}
	if l.loading {
		t.Error("still loading after failure")
	}
	if sess.Student != nil {
		t.Error("student set despite failure")
	}
	if view := l.View(100, 30); view == "" {
		t.Error("empty view in error state")
	}
}
