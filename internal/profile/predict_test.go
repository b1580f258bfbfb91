package profile

import (
	"testing"
	"time"
)

func profileWithScores(scores ...int) *Profile {
	p := New("x")
	p.Scores = append(p.Scores, scores...)
	return p
}

func TestPredictEmpty(t *testing.T) {
	if got := New("x").Predict(DefaultThresholds()); got != PredictionUnknown {
		t.Errorf("Predict() = %q, want Unknown", got)
	}
}

func TestPredictBands(t *testing.T) {
	cases := []struct {
		name   string
		scores []int
		want   Prediction
	}{
		{"all wrong", []int{0, 0, 0}, PredictionFailRisk},
		{"just below fail boundary", []int{100, 0, 0, 0, 0}, PredictionFailRisk}, // avg 20
		{"at pass boundary", []int{100, 0, 100, 0, 0}, PredictionPass},           // avg 40
		{"mid pass", []int{100, 0}, PredictionPass},                              // avg 50
		{"at first class boundary", []int{100, 100, 100, 0, 0}, PredictionFirstClass}, // avg 60
		{"at distinction boundary", []int{100, 100, 100, 100, 0}, PredictionDistinction}, // avg 80
		{"all correct", []int{100, 100}, PredictionDistinction},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := profileWithScores(tc.scores...).Predict(DefaultThresholds()); got != tc.want {
				t.Errorf("Predict(%v) = %q, want %q", tc.scores, got, tc.want)
			}
		})
	}
}

func TestPredictAfterSingleCorrectAnswer(t *testing.T) {
	p := New("Asha")
	p.RecordAnswer("Empirical Probability", true, "", time.Now(), DefaultParams())

	if got := p.Predict(DefaultThresholds()); got != PredictionDistinction {
		t.Errorf("Predict() = %q, want DISTINCTION", got)
	}
	if got := p.Mastery["Empirical Probability"]; got != 62 {
		t.Errorf("mastery = %d, want 62", got)
	}
}

func TestSummaryNoAttempts(t *testing.T) {
	got := New("Asha").Summary(DefaultThresholds())
	if got != "Asha: no attempts yet" {
		t.Errorf("Summary() = %q", got)
	}
}
