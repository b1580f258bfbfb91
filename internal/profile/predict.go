package profile

import "fmt"

// Prediction is a projected exam outcome band.
type Prediction string

const (
	PredictionUnknown     Prediction = "Unknown"
	PredictionFailRisk    Prediction = "FAIL RISK"
	PredictionPass        Prediction = "PASS"
	PredictionFirstClass  Prediction = "FIRST CLASS"
	PredictionDistinction Prediction = "DISTINCTION"
)

// Default band boundaries on the average score.
const (
	DefaultFailRiskBelow   = 40
	DefaultPassBelow       = 60
	DefaultFirstClassBelow = 80
)

// Thresholds are the upper bounds (exclusive) of the lower three bands.
// Averages at or above FirstClassBelow land in DISTINCTION.
type Thresholds struct {
	FailRiskBelow   float64
	PassBelow       float64
	FirstClassBelow float64
}

// DefaultThresholds returns the standard band boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		FailRiskBelow:   DefaultFailRiskBelow,
		PassBelow:       DefaultPassBelow,
		FirstClassBelow: DefaultFirstClassBelow,
	}
}

// Predict maps the profile's average score to an outcome band. A
// profile with no recorded answers predicts Unknown.
func (p *Profile) Predict(t Thresholds) Prediction {
	avg, ok := p.AverageScore()
	if !ok {
		return PredictionUnknown
	}
	switch {
	case avg < t.FailRiskBelow:
		return PredictionFailRisk
	case avg < t.PassBelow:
		return PredictionPass
	case avg < t.FirstClassBelow:
		return PredictionFirstClass
	default:
		return PredictionDistinction
	}
}

// Summary returns a one-line description of the profile's standing.
func (p *Profile) Summary(t Thresholds) string {
	avg, ok := p.AverageScore()
	if !ok {
		return fmt.Sprintf("%s: no attempts yet", p.Name)
	}
	return fmt.Sprintf("%s: %d attempts, avg %.1f, predicted %s",
		p.Name, p.Attempts(), avg, p.Predict(t))
}
