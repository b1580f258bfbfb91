package practice

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindflow/internal/examiner"
	"github.com/abhisek/mindflow/internal/router"
	"github.com/abhisek/mindflow/internal/screen"
	"github.com/abhisek/mindflow/internal/session"
	"github.com/abhisek/mindflow/internal/speech"
	"github.com/abhisek/mindflow/internal/store"
	"github.com/abhisek/mindflow/internal/syllabus"
	"github.com/abhisek/mindflow/internal/ui/components"
	"github.com/abhisek/mindflow/internal/ui/layout"
	"github.com/abhisek/mindflow/internal/ui/theme"
)

const (
	llmTimeout  = 60 * time.Second
	saveTimeout = 5 * time.Second

	// Delay before the reference answer is spoken after a wrong verdict,
	// so "Wrong." lands first.
	answerSpeechDelay = time.Second

	maxAnswerLen = 400
)

// step is the selection stage shown while the session is idle.
type step int

const (
	stepSubject step = iota
	stepTopic
	stepSubtopic
	stepMode
)

type questionReadyMsg struct {
	epoch    int
	question string
}

type questionFailedMsg struct {
	epoch int
	err   error
}

type verdictReadyMsg struct {
	epoch   int
	verdict *examiner.Evaluation
}

type evaluationFailedMsg struct {
	epoch int
	err   error
}

type speakAnswerMsg struct {
	epoch int
}

type profileSavedMsg struct {
	err error
}

// PracticeScreen drives the question loop: pick a concept and learner
// mode, answer generated questions, and hear spoken verdicts.
type PracticeScreen struct {
	sess     *session.Session
	profiles store.ProfileRepo
	gateway  examiner.Gateway
	speaker  speech.Speaker

	step    step
	menu    components.Menu
	answer  components.TextInput
	saveErr error
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New creates a PracticeScreen. Selections surviving from a previous
// visit are kept, and the selection flow resumes at the first unset
// stage.
func New(sess *session.Session, profiles store.ProfileRepo, gateway examiner.Gateway, speaker speech.Speaker) *PracticeScreen {
	p := &PracticeScreen{
		sess:     sess,
		profiles: profiles,
		gateway:  gateway,
		speaker:  speaker,
	}
	p.step = p.resumeStep()
	p.menu = p.menuForStep()
	return p
}

func (p *PracticeScreen) resumeStep() step {
	switch {
	case p.sess.Subject == "":
		return stepSubject
	case p.sess.Topic == "":
		return stepTopic
	case p.sess.Subtopic == "":
		return stepSubtopic
	default:
		return stepMode
	}
}

func (p *PracticeScreen) Title() string {
	return "Practice"
}

func (p *PracticeScreen) Init() tea.Cmd {
	return nil
}

func (p *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionReadyMsg:
		if p.sess.QuestionReady(msg.epoch, msg.question) {
			p.speaker.Speak(msg.question)
			p.answer = components.NewTextInput("Type your answer", false, maxAnswerLen)
			return p, p.answer.Init()
		}
		return p, nil

	case questionFailedMsg:
		p.sess.GenerationFailed(msg.epoch, msg.err)
		return p, nil

	case verdictReadyMsg:
		if !p.sess.VerdictReady(msg.epoch, msg.verdict, time.Now()) {
			return p, nil
		}
		if msg.verdict.IsCorrect {
			p.speaker.Speak("Correct.")
			return p, p.saveCmd()
		}
		p.speaker.Speak("Wrong.")
		epoch := p.sess.Epoch
		return p, tea.Batch(
			p.saveCmd(),
			tea.Tick(answerSpeechDelay, func(time.Time) tea.Msg {
				return speakAnswerMsg{epoch: epoch}
			}),
		)

	case evaluationFailedMsg:
		p.sess.EvaluationFailed(msg.epoch, msg.err)
		return p, nil

	case speakAnswerMsg:
		v := p.sess.Verdict
		if msg.epoch == p.sess.Epoch && p.sess.Phase == session.PhaseResult && v != nil && !v.IsCorrect {
			p.speaker.Speak("The answer is " + v.FinalAnswer)
		}
		return p, nil

	case profileSavedMsg:
		p.saveErr = msg.err
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	if p.sess.Phase == session.PhaseQuestion {
		var cmd tea.Cmd
		p.answer, cmd = p.answer.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch p.sess.Phase {
	case session.PhaseIdle:
		switch key {
		case "esc":
			return p.stepBack()
		case "enter":
			return p, p.choose(p.menu.Selected)
		}
		var cmd tea.Cmd
		p.menu, cmd = p.menu.Update(msg)
		return p, cmd

	case session.PhaseLoading, session.PhaseEvaluating:
		if key == "esc" {
			p.abandon()
		}
		return p, nil

	case session.PhaseQuestion:
		switch key {
		case "esc":
			p.abandon()
			return p, nil
		case "enter":
			answer := strings.TrimSpace(p.answer.Value())
			if !p.sess.Submit(answer) {
				return p, nil
			}
			return p, p.evaluateCmd()
		}
		var cmd tea.Cmd
		p.answer, cmd = p.answer.Update(msg)
		return p, cmd

	case session.PhaseResult:
		switch key {
		case "esc":
			p.abandon()
			return p, nil
		case "enter", "n":
			if p.sess.Next() {
				return p, p.generateCmd()
			}
			return p, nil
		}
	}

	return p, nil
}

// stepBack walks the selection flow backwards and pops the screen from
// the first stage.
func (p *PracticeScreen) stepBack() (screen.Screen, tea.Cmd) {
	if p.step == stepSubject {
		return p, func() tea.Msg { return router.PopScreenMsg{} }
	}
	p.step--
	p.menu = p.menuForStep()
	return p, nil
}

// abandon drops the in-flight question and returns to the mode stage.
// Responses still travelling are stale after this.
func (p *PracticeScreen) abandon() {
	p.sess.Exit()
	p.step = stepMode
	p.menu = p.menuForStep()
}

func (p *PracticeScreen) menuForStep() components.Menu {
	var labels []string
	switch p.step {
	case stepSubject:
		labels = syllabus.Subjects()
	case stepTopic:
		labels = syllabus.Topics(p.sess.Subject)
	case stepSubtopic:
		labels = syllabus.Subtopics(p.sess.Subject, p.sess.Topic)
	default:
		for _, mode := range practiceModes {
			labels = append(labels, mode.Label())
		}
	}
	items := make([]components.MenuItem, 0, len(labels))
	for _, label := range labels {
		items = append(items, components.MenuItem{Label: label})
	}
	return components.NewMenu(items)
}

var practiceModes = []examiner.Mode{examiner.ModeFast, examiner.ModeSlow}

// choose applies the highlighted menu item for the current stage and
// advances the flow. Picking a mode starts the question loop.
func (p *PracticeScreen) choose(idx int) tea.Cmd {
	if idx < 0 || idx >= len(p.menu.Items) {
		return nil
	}
	label := p.menu.Items[idx].Label

	switch p.step {
	case stepSubject:
		p.sess.SetSubject(label)
		p.step = stepTopic
	case stepTopic:
		p.sess.SetTopic(label)
		p.step = stepSubtopic
	case stepSubtopic:
		p.sess.SetSubtopic(label)
		p.step = stepMode
	default:
		p.sess.SetMode(practiceModes[idx])
		return p.begin()
	}

	p.menu = p.menuForStep()
	return nil
}

// begin runs the session guards and kicks off question generation.
func (p *PracticeScreen) begin() tea.Cmd {
	if !p.sess.Start() {
		return nil
	}
	if p.sess.Mode == examiner.ModeFast {
		p.speaker.Speak("Fast learner mode A activated.")
	} else {
		p.speaker.Speak("Slow learner mode C activated. Starting Mission Forty Plus.")
	}
	return p.generateCmd()
}

func (p *PracticeScreen) generateCmd() tea.Cmd {
	epoch := p.sess.Epoch
	concept := p.sess.Concept()
	mode := p.sess.Mode
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), llmTimeout)
		defer cancel()
		question, err := p.gateway.GenerateQuestion(ctx, concept, mode)
		if err != nil {
			return questionFailedMsg{epoch: epoch, err: err}
		}
		return questionReadyMsg{epoch: epoch, question: question}
	}
}

func (p *PracticeScreen) evaluateCmd() tea.Cmd {
	epoch := p.sess.Epoch
	question := p.sess.Question
	answer := p.sess.Answer
	mode := p.sess.Mode
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), llmTimeout)
		defer cancel()
		verdict, err := p.gateway.EvaluateAnswer(ctx, question, answer, mode)
		if err != nil {
			return evaluationFailedMsg{epoch: epoch, err: err}
		}
		return verdictReadyMsg{epoch: epoch, verdict: verdict}
	}
}

func (p *PracticeScreen) saveCmd() tea.Cmd {
	student := p.sess.Student
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		return profileSavedMsg{err: p.profiles.Save(ctx, student)}
	}
}

func (p *PracticeScreen) View(width, height int) string {
	var body string
	switch p.sess.Phase {
	case session.PhaseLoading:
		body = p.renderWaiting("Generating question...")
	case session.PhaseQuestion:
		body = p.renderQuestion(width)
	case session.PhaseEvaluating:
		body = p.renderWaiting("Evaluating your answer...")
	case session.PhaseResult:
		body = p.renderResult(width)
	default:
		body = p.renderSelection(width)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (p *PracticeScreen) renderSelection(width int) string {
	titles := map[step]string{
		stepSubject:  "Pick a subject",
		stepTopic:    "Pick a topic",
		stepSubtopic: "Pick a sub-topic",
		stepMode:     "How do you learn?",
	}

	lines := []string{
		theme.Title.Render(titles[p.step]),
		"",
		p.menu.View(),
	}

	if crumb := p.breadcrumb(); crumb != "" {
		lines = append(lines, "", theme.Hint.Render(crumb))
	}
	if p.sess.Warning != "" {
		lines = append(lines, "", theme.Warn.Render(p.sess.Warning))
	}
	if p.sess.Err != nil {
		lines = append(lines, "",
			lipgloss.NewStyle().Foreground(theme.Error).Render("Question failed: "+p.sess.Err.Error()),
			theme.Hint.Render("Pick a mode to try again"))
	}

	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (p *PracticeScreen) breadcrumb() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.sess.Subject, p.sess.Topic, p.sess.Subtopic} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " › ")
}

func (p *PracticeScreen) renderWaiting(text string) string {
	return lipgloss.JoinVertical(lipgloss.Center,
		theme.Hint.Render(text),
		"",
		theme.Hint.Render("Esc to cancel"),
	)
}

func (p *PracticeScreen) renderQuestion(width int) string {
	cardWidth := cardWidthFor(width)

	lines := []string{
		theme.Subtitle.Render(p.breadcrumb()+" · "+p.sess.Mode.Label()),
		"",
		theme.Card.Width(cardWidth).Render(theme.Body.Render(p.sess.Question)),
		"",
		p.answer.View(),
	}
	if p.sess.Err != nil {
		lines = append(lines, "",
			lipgloss.NewStyle().Foreground(theme.Error).Render("Evaluation failed: "+p.sess.Err.Error()),
			theme.Hint.Render("Press Enter to resubmit"))
	}

	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (p *PracticeScreen) renderResult(width int) string {
	cardWidth := cardWidthFor(width)
	v := p.sess.Verdict

	var banner string
	if v.IsCorrect {
		banner = theme.Correct.Render("✓ Correct")
	} else {
		banner = theme.Incorrect.Render("✗ Wrong")
	}

	concept := p.sess.Concept()
	mastery := p.sess.Student.MasteryOf(concept, p.sess.Params)
	bar := components.NewProgressBar(concept, float64(mastery)/100, true, cardWidth)

	detail := theme.Body.Render("Answer: "+v.FinalAnswer) + "\n\n" +
		theme.Body.Render(v.Explanation)

	lines := []string{
		banner,
		"",
		theme.Card.Width(cardWidth).Render(detail),
		"",
		bar.View(),
	}
	if p.saveErr != nil {
		lines = append(lines, "",
			lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf("Progress not saved: %v", p.saveErr)))
	}

	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func cardWidthFor(width int) int {
	w := width - 20
	if w > 72 {
		w = 72
	}
	if w < 30 {
		w = 30
	}
	return w
}

func (p *PracticeScreen) KeyHints() []layout.KeyHint {
	switch p.sess.Phase {
	case session.PhaseQuestion:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Leave question"},
		}
	case session.PhaseResult:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next question"},
			{Key: "Esc", Description: "Change selection"},
		}
	case session.PhaseLoading, session.PhaseEvaluating:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Cancel"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Back"},
		}
	}
}
