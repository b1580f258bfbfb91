package doubt

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindflow/internal/examiner"
	"github.com/abhisek/mindflow/internal/router"
	"github.com/abhisek/mindflow/internal/screen"
	"github.com/abhisek/mindflow/internal/speech"
	"github.com/abhisek/mindflow/internal/ui/components"
	"github.com/abhisek/mindflow/internal/ui/layout"
	"github.com/abhisek/mindflow/internal/ui/theme"
)

const (
	searchTimeout = 90 * time.Second
	maxQueryLen   = 200
)

type searchDoneMsg struct {
	seq    int
	answer *examiner.DoubtAnswer
	err    error
}

// DoubtScreen answers free-form questions with web-grounded search and
// lists the sources the answer came from.
type DoubtScreen struct {
	gateway examiner.Gateway
	speaker speech.Speaker

	input     components.TextInput
	searching bool
	// seq stamps each search so an abandoned one is ignored on return.
	seq    int
	query  string
	answer *examiner.DoubtAnswer
	err    error
}

var _ screen.Screen = (*DoubtScreen)(nil)
var _ screen.KeyHintProvider = (*DoubtScreen)(nil)

// New creates a DoubtScreen.
func New(gateway examiner.Gateway, speaker speech.Speaker) *DoubtScreen {
	return &DoubtScreen{
		gateway: gateway,
		speaker: speaker,
		input:   components.NewTextInput("Ask anything from the SSLC syllabus", false, maxQueryLen),
	}
}

func (d *DoubtScreen) Title() string {
	return "Ask a Doubt"
}

func (d *DoubtScreen) Init() tea.Cmd {
	return d.input.Init()
}

func (d *DoubtScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case searchDoneMsg:
		if msg.seq != d.seq {
			return d, nil
		}
		d.searching = false
		d.answer = msg.answer
		d.err = msg.err
		if msg.err == nil && msg.answer != nil {
			d.speaker.Speak(msg.answer.Text)
		}
		return d, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			if d.searching {
				d.seq++
				d.searching = false
				return d, nil
			}
			if d.answer != nil || d.err != nil {
				d.answer = nil
				d.err = nil
				d.query = ""
				d.input = components.NewTextInput("Ask anything from the SSLC syllabus", false, maxQueryLen)
				return d, d.input.Init()
			}
			return d, func() tea.Msg { return router.PopScreenMsg{} }

		case "enter":
			if d.searching {
				return d, nil
			}
			query := strings.TrimSpace(d.input.Value())
			if query == "" {
				return d, nil
			}
			d.searching = true
			d.query = query
			d.answer = nil
			d.err = nil
			d.seq++
			return d, d.searchCmd(query)
		}
	}

	if d.searching {
		return d, nil
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

func (d *DoubtScreen) searchCmd(query string) tea.Cmd {
	seq := d.seq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()
		answer, err := d.gateway.SearchDoubt(ctx, query)
		return searchDoneMsg{seq: seq, answer: answer, err: err}
	}
}

func (d *DoubtScreen) View(width, height int) string {
	cardWidth := width - 16
	if cardWidth > 80 {
		cardWidth = 80
	}
	if cardWidth < 30 {
		cardWidth = 30
	}

	var lines []string
	switch {
	case d.searching:
		lines = []string{
			theme.Body.Render(d.query),
			"",
			theme.Hint.Render("Searching..."),
		}
	case d.err != nil:
		lines = []string{
			theme.Body.Render(d.query),
			"",
			lipgloss.NewStyle().Foreground(theme.Error).Render("Search failed: " + d.err.Error()),
			theme.Hint.Render("Esc to ask something else"),
		}
	case d.answer != nil:
		lines = []string{
			theme.Subtitle.Render(d.query),
			"",
			theme.Card.Width(cardWidth).Render(theme.Body.Render(d.answer.Text)),
		}
		if len(d.answer.Sources) > 0 {
			lines = append(lines, "", theme.Hint.Render("Sources:"))
			for _, src := range d.answer.Sources {
				lines = append(lines, theme.SourceLink.Render(src.Title)+theme.Hint.Render("  "+src.URI))
			}
		}
	default:
		lines = []string{
			theme.Title.Render("What's on your mind?"),
			"",
			d.input.View(),
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (d *DoubtScreen) KeyHints() []layout.KeyHint {
	if d.searching {
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
	if d.answer != nil || d.err != nil {
		return []layout.KeyHint{
			{Key: "Esc", Description: "New question"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Search"},
		{Key: "Esc", Description: "Back"},
	}
}
