package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindflow/internal/examiner"
	"github.com/abhisek/mindflow/internal/profile"
	"github.com/abhisek/mindflow/internal/router"
	"github.com/abhisek/mindflow/internal/screen"
	"github.com/abhisek/mindflow/internal/screens/login"
	"github.com/abhisek/mindflow/internal/session"
	"github.com/abhisek/mindflow/internal/speech"
	"github.com/abhisek/mindflow/internal/store"
	"github.com/abhisek/mindflow/internal/ui/layout"
)

// Deps are the wired services the TUI runs on.
type Deps struct {
	Profiles   store.ProfileRepo
	Gateway    examiner.Gateway
	Speaker    speech.Speaker
	Params     profile.Params
	Thresholds profile.Thresholds
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router     *router.Router
	sess       *session.Session
	thresholds profile.Thresholds
	width      int
	height     int
}

// newAppModel creates the root model starting at the login screen. The
// session is shared across screens; login fills in the student.
func newAppModel(deps Deps) AppModel {
	sess := session.New(nil, deps.Params)
	start := login.New(sess, deps.Profiles, deps.Gateway, deps.Speaker, deps.Thresholds)
	return AppModel{
		router:     router.New(start),
		sess:       sess,
		thresholds: deps.Thresholds,
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	student, prediction := "", ""
	if m.sess.Student != nil {
		student = m.sess.Student.Name
		prediction = string(m.sess.Student.Predict(m.thresholds))
	}

	header := layout.RenderHeader(title, student, prediction, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hinter, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(hinter.KeyHints(), footerHints...)
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
