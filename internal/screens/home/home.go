package home

import (
	"fmt"
	"image/color"
	"sort"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindflow/internal/examiner"
	"github.com/abhisek/mindflow/internal/profile"
	"github.com/abhisek/mindflow/internal/router"
	"github.com/abhisek/mindflow/internal/screen"
	"github.com/abhisek/mindflow/internal/screens/doubt"
	"github.com/abhisek/mindflow/internal/screens/practice"
	"github.com/abhisek/mindflow/internal/session"
	"github.com/abhisek/mindflow/internal/speech"
	"github.com/abhisek/mindflow/internal/store"
	"github.com/abhisek/mindflow/internal/ui/components"
	"github.com/abhisek/mindflow/internal/ui/layout"
	"github.com/abhisek/mindflow/internal/ui/theme"
)

const maxMasteryRows = 5

// HomeScreen is the main menu plus a snapshot of the student's standing.
type HomeScreen struct {
	sess       *session.Session
	thresholds profile.Thresholds
	menu       components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen for a logged-in student. loginFactory
// rebuilds the login screen when the student logs out.
func New(sess *session.Session, profiles store.ProfileRepo, gateway examiner.Gateway, speaker speech.Speaker, thresholds profile.Thresholds, loginFactory func() screen.Screen) *HomeScreen {
	items := []components.MenuItem{
		{
			Label: "Start Practice",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: practice.New(sess, profiles, gateway, speaker)}
				}
			},
		},
		{
			Label:    doubtLabel(gateway),
			Disabled: !gateway.SupportsDoubtSearch(),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: doubt.New(gateway, speaker)}
				}
			},
		},
		{
			Label: "Switch Student",
			Action: func() tea.Cmd {
				sess.Exit()
				sess.Student = nil
				return func() tea.Msg {
					return router.ReplaceScreenMsg{Screen: loginFactory()}
				}
			},
		},
		{
			Label: "Quit",
			Action: func() tea.Cmd {
				return tea.Quit
			},
		},
	}

	return &HomeScreen{
		sess:       sess,
		thresholds: thresholds,
		menu:       components.NewMenu(items),
	}
}

func doubtLabel(gateway examiner.Gateway) string {
	if gateway.SupportsDoubtSearch() {
		return "Ask a Doubt"
	}
	return "Ask a Doubt (needs a Gemini key)"
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.menu.Init()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	student := h.sess.Student

	greeting := theme.Title.Render(fmt.Sprintf("Hello, %s", student.Name))
	menu := h.menu.View()

	standing := h.renderStanding(student, width)

	content := lipgloss.JoinVertical(lipgloss.Left, greeting, "", menu, "", standing)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// renderStanding shows the exam prediction and the weakest concepts so
// the student knows where to spend the next session.
func (h *HomeScreen) renderStanding(student *profile.Profile, width int) string {
	pred := student.Predict(h.thresholds)

	var lines []string
	lines = append(lines,
		theme.Body.Render("Predicted result: ")+
			lipgloss.NewStyle().Foreground(predictionColor(pred)).Bold(true).Render(string(pred)))

	avg, ok := student.AverageScore()
	if !ok {
		lines = append(lines, theme.Hint.Render("No attempts yet. Start practicing!"))
		return theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	}
	lines = append(lines, theme.Hint.Render(fmt.Sprintf("%d attempts, average score %.1f", student.Attempts(), avg)))

	barWidth := width / 2
	if barWidth > 50 {
		barWidth = 50
	}
	for _, concept := range weakestConcepts(student, maxMasteryRows) {
		mastery := student.Mastery[concept]
		bar := components.NewProgressBar(concept, float64(mastery)/100, true, barWidth)
		bar.Fill = h.masteryColor(mastery)
		lines = append(lines, bar.View())
	}

	return theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// weakestConcepts returns up to n practiced concepts, lowest mastery first.
func weakestConcepts(student *profile.Profile, n int) []string {
	concepts := make([]string, 0, len(student.Mastery))
	for c := range student.Mastery {
		concepts = append(concepts, c)
	}
	sort.Slice(concepts, func(i, j int) bool {
		mi, mj := student.Mastery[concepts[i]], student.Mastery[concepts[j]]
		if mi != mj {
			return mi < mj
		}
		return concepts[i] < concepts[j]
	})
	if len(concepts) > n {
		concepts = concepts[:n]
	}
	return concepts
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
}

// masteryColor grades a concept bar by the same bands the prediction
// uses, so a weak concept reads red before the overall average does.
func (h *HomeScreen) masteryColor(mastery int) color.Color {
	m := float64(mastery)
	switch {
	case m < h.thresholds.FailRiskBelow:
		return theme.BandFailRisk
	case m < h.thresholds.PassBelow:
		return theme.BandPass
	case m < h.thresholds.FirstClassBelow:
		return theme.BandFirstClass
	default:
		return theme.BandDistinction
	}
}

func predictionColor(p profile.Prediction) color.Color {
	switch p {
	case profile.PredictionFailRisk:
		return theme.BandFailRisk
	case profile.PredictionPass:
		return theme.BandPass
	case profile.PredictionFirstClass:
		return theme.BandFirstClass
	case profile.PredictionDistinction:
		return theme.BandDistinction
	default:
		return theme.BandUnknown
	}
}
