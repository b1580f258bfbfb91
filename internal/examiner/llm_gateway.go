package examiner

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/abhisek/mindflow/internal/llm"
)

// Config bounds LLM output for examiner requests.
type Config struct {
	// MaxTokens caps the response length for questions and verdicts.
	MaxTokens int
	// DoubtMaxTokens caps the response length for grounded answers.
	DoubtMaxTokens int
	// Temperature controls question variety.
	Temperature float64
}

// DefaultConfig returns the standard examiner tuning.
func DefaultConfig() Config {
	return Config{
		MaxTokens:      1024,
		DoubtMaxTokens: 2048,
		Temperature:    0.7,
	}
}

// LLMGateway implements Gateway over an LLM provider.
type LLMGateway struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMGateway with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGateway {
	return &LLMGateway{provider: provider, config: cfg}
}

// GenerateQuestion produces one board-style question for the concept.
func (g *LLMGateway) GenerateQuestion(ctx context.Context, concept string, mode Mode) (string, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	req := llm.Request{
		System: paperAnalysis,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuestionPrompt(concept, mode)},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return "", &GenerationError{Concept: concept, Err: err}
	}

	question := strings.TrimSpace(strings.Trim(string(resp.Content), `"`))
	if question == "" {
		return "", &GenerationError{Concept: concept, Err: errEmptyResponse}
	}
	return question, nil
}

// EvaluateAnswer judges a student answer and returns the verdict.
func (g *LLMGateway) EvaluateAnswer(ctx context.Context, question, answer string, mode Mode) (*Evaluation, error) {
	ctx = llm.WithPurpose(ctx, "evaluation")

	req := llm.Request{
		System: paperAnalysis + "\nEvaluate the answer. Return JSON only.",
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildEvaluationPrompt(question, answer, mode)},
		},
		Schema:    EvaluationSchema,
		MaxTokens: g.config.MaxTokens,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, &EvaluationError{Err: err}
	}

	var ev Evaluation
	if err := json.Unmarshal(resp.Content, &ev); err != nil {
		return nil, &EvaluationError{Err: err}
	}
	return &ev, nil
}

// SearchDoubt answers a free-form question with web grounding.
func (g *LLMGateway) SearchDoubt(ctx context.Context, query string) (*DoubtAnswer, error) {
	grounded, ok := g.provider.(llm.GroundedGenerator)
	if !ok {
		return nil, &SearchError{Query: query, Err: llm.ErrUnsupported}
	}

	ctx = llm.WithPurpose(ctx, "doubt-search")

	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildDoubtPrompt(query)},
		},
		MaxTokens: g.config.DoubtMaxTokens,
	}

	resp, err := grounded.GenerateGrounded(ctx, req)
	if err != nil {
		return nil, &SearchError{Query: query, Err: err}
	}

	out := &DoubtAnswer{Text: resp.Text}
	for _, s := range resp.Sources {
		title := s.Title
		if title == "" {
			title = "Reference"
		}
		out.Sources = append(out.Sources, SourceRef{Title: title, URI: s.URI})
	}
	return out, nil
}

// SupportsDoubtSearch reports whether the provider chain can serve
// grounded search.
func (g *LLMGateway) SupportsDoubtSearch() bool {
	return llm.SupportsGrounding(g.provider)
}
