package examiner

import (
	"fmt"
	"strings"
)

// paperAnalysis encodes the exam pattern intelligence extracted from
// the 2026 preparatory papers. It is sent as the system instruction on
// every question and evaluation request.
const paperAnalysis = `
PAPER PATTERN & WEIGHTAGE:
- Highly Repeated: Myopia (causes/lens), Ohm's Law (factors/formula), Magnetic Field Lines (properties), Circuit Resistance (Parallel/Series calculation), Sex Determination (XY chromosomes), Hydrogenation (Vanaspati), Solder/Amalgam/Hydrocarbons.
- Science Pattern: One-word definitions, Application of laws, Ray diagrams (F1 location), Balancing Equations.
- Math Pattern: HCF/LCM formula, Trigonometric identities, Section formula, Statistics (Mean/Median).

STRICT RULES:
1. Fast Learner (A): Use Application-level questions. Mixed concepts. Multi-step numericals.
2. Slow Learner (C): MISSION 40+. Use ONLY repeated questions and board-essential definitions.
3. Science Flow: Generate ONE clear exam question. Wait for answer.
4. Feedback Flow: Return 'Correct' or 'Wrong'. ONLY show explanation if Wrong.
5. Voice: Strict examiner + kind teacher. No emojis. No greetings. Short replies.
`

// buildQuestionPrompt constructs the user message for question generation.
func buildQuestionPrompt(concept string, mode Mode) string {
	var b strings.Builder
	fmt.Fprintf(&b, "MISSION: Generate ONE board-style question for %q for a Learner Mode %s.\n", concept, mode)
	fmt.Fprintf(&b, "If %s is C: Focus on REPEATED questions from 2026 prep papers (e.g., definitions, basic properties).\n", mode)
	fmt.Fprintf(&b, "If %s is A: Focus on numericals, diagrams, or deeper logic.\n", mode)
	b.WriteString("Return ONLY the question.")
	return b.String()
}

// buildEvaluationPrompt constructs the user message for answer evaluation.
func buildEvaluationPrompt(question, answer string, mode Mode) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", question)
	fmt.Fprintf(&b, "Student Answer: %s\n", answer)
	fmt.Fprintf(&b, "Evaluate for Learner Mode %s.", mode)
	return b.String()
}

// buildDoubtPrompt constructs the grounded-search query for a doubt.
func buildDoubtPrompt(query string) string {
	return fmt.Sprintf("Solve SSLC doubt: %q using KSEAB patterns.", query)
}
