package doubt

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindflow/internal/examiner"
	"github.com/abhisek/mindflow/internal/router"
	"github.com/abhisek/mindflow/internal/speech"
)

type fakeGateway struct {
	answer *examiner.DoubtAnswer
	err    error
	calls  []string
}

func (f *fakeGateway) GenerateQuestion(context.Context, string, examiner.Mode) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeGateway) EvaluateAnswer(context.Context, string, string, examiner.Mode) (*examiner.Evaluation, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeGateway) SearchDoubt(_ context.Context, query string) (*examiner.DoubtAnswer, error) {
	f.calls = append(f.calls, query)
	return f.answer, f.err
}

func (f *fakeGateway) SupportsDoubtSearch() bool { return true }

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestSearchFlow(t *testing.T) {
	gw := &fakeGateway{
		answer: &examiner.DoubtAnswer{
			Text: "Board questions on quadratic equations repeat the discriminant pattern.",
			Sources: []examiner.SourceRef{
				{Title: "KSEAB model paper", URI: "https://example.org/paper"},
			},
		},
	}
	d := New(gw, speech.NopSpeaker{})

	d.input.Model.SetValue("Why does the discriminant decide root nature?")
	_, cmd := d.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("enter did not start a search")
	}
	if !d.searching {
		t.Fatal("not in searching state")
	}

	d.Update(cmd())
	if d.searching {
		t.Error("still searching after result")
	}
	if d.answer == nil || d.answer.Text != gw.answer.Text {
		t.Errorf("answer = %+v", d.answer)
	}
	if len(gw.calls) != 1 {
		t.Errorf("gateway calls = %v", gw.calls)
	}
}

func TestStaleResultDiscarded(t *testing.T) {
	gw := &fakeGateway{answer: &examiner.DoubtAnswer{Text: "late"}}
	d := New(gw, speech.NopSpeaker{})

	d.input.Model.SetValue("first question")
	_, cmd := d.Update(specialKey(tea.KeyEnter))

	// Cancel before the result lands.
	d.Update(specialKey(tea.KeyEscape))
	if d.searching {
		t.Fatal("esc did not cancel the search")
	}

	d.Update(cmd())
	if d.answer != nil {
		t.Errorf("stale result installed: %+v", d.answer)
	}
}

func TestSearchErrorShown(t *testing.T) {
	gw := &fakeGateway{err: errors.New("no network")}
	d := New(gw, speech.NopSpeaker{})

	d.input.Model.SetValue("anything")
	_, cmd := d.Update(specialKey(tea.KeyEnter))
	d.Update(cmd())

	if d.err == nil {
		t.Error("search error not recorded")
	}
	if view := d.View(100, 30); view == "" {
		t.Error("empty view in error state")
	}
}

func TestEscPopsWhenIdle(t *testing.T) {
	d := New(&fakeGateway{}, speech.NopSpeaker{})
	_, cmd := d.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc with no answer should pop the screen")
	}
}

func TestEmptyQueryIgnored(t *testing.T) {
	gw := &fakeGateway{}
	d := New(gw, speech.NopSpeaker{})

	d.input.Model.SetValue("   ")
	_, cmd := d.Update(specialKey(tea.KeyEnter))
	if cmd != nil || d.searching {
		t.Error("blank query started a search")
	}
}
