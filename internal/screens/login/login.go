package login

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindflow/internal/examiner"
	"github.com/abhisek/mindflow/internal/profile"
	"github.com/abhisek/mindflow/internal/router"
	"github.com/abhisek/mindflow/internal/screen"
	"github.com/abhisek/mindflow/internal/screens/home"
	"github.com/abhisek/mindflow/internal/session"
	"github.com/abhisek/mindflow/internal/speech"
	"github.com/abhisek/mindflow/internal/store"
	"github.com/abhisek/mindflow/internal/ui/components"
	"github.com/abhisek/mindflow/internal/ui/layout"
	"github.com/abhisek/mindflow/internal/ui/theme"
)

const maxNameLen = 32

type profileLoadedMsg struct {
	student *profile.Profile
	err     error
}

// LoginScreen asks for the student's name and loads (or creates) their
// profile before handing over to the home screen.
type LoginScreen struct {
	sess       *session.Session
	profiles   store.ProfileRepo
	gateway    examiner.Gateway
	speaker    speech.Speaker
	thresholds profile.Thresholds

	input   components.TextInput
	loading bool
	err     error
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen.
func New(sess *session.Session, profiles store.ProfileRepo, gateway examiner.Gateway, speaker speech.Speaker, thresholds profile.Thresholds) *LoginScreen {
	return &LoginScreen{
		sess:       sess,
		profiles:   profiles,
		gateway:    gateway,
		speaker:    speaker,
		thresholds: thresholds,
		input:      components.NewTextInput("Your name", false, maxNameLen),
	}
}

func (l *LoginScreen) Title() string {
	return "Welcome"
}

func (l *LoginScreen) Init() tea.Cmd {
	return l.input.Init()
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		l.loading = false
		if msg.err != nil {
			l.err = msg.err
			return l, nil
		}
		l.sess.Student = msg.student
		loginFactory := func() screen.Screen {
			return New(l.sess, l.profiles, l.gateway, l.speaker, l.thresholds)
		}
		next := home.New(l.sess, l.profiles, l.gateway, l.speaker, l.thresholds, loginFactory)
		return l, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}

	case tea.KeyMsg:
		if l.loading {
			return l, nil
		}
		if msg.String() == "enter" {
			name := strings.TrimSpace(l.input.Value())
			if name == "" {
				return l, nil
			}
			l.loading = true
			l.err = nil
			return l, l.loadCmd(name)
		}
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd
}

// loadCmd fetches the student's profile, creating it on first login.
func (l *LoginScreen) loadCmd(name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		p, err := l.profiles.GetOrCreate(ctx, name)
		return profileLoadedMsg{student: p, err: err}
	}
}

func (l *LoginScreen) View(width, height int) string {
	title := theme.Title.Render("MindFlow")
	subtitle := theme.Subtitle.Render("SSLC board exam practice")

	var body string
	switch {
	case l.loading:
		body = theme.Hint.Render("Loading profile...")
	case l.err != nil:
		body = lipgloss.NewStyle().Foreground(theme.Error).Render("Could not load profile: "+l.err.Error()) +
			"\n\n" + theme.Hint.Render("Press Enter to try again")
	default:
		body = theme.Body.Render("Who is studying today?") + "\n\n" + l.input.View()
	}

	card := theme.Card.Width(48).Render(body)

	content := lipgloss.JoinVertical(lipgloss.Center, title, subtitle, "", card)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
