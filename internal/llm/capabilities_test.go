package llm

import (
	"context"
	"testing"
	"time"
)

func TestBaseUnwrapsDecoratorChain(t *testing.T) {
	mock := NewMockProvider()
	wrapped := WithRetry(mock, RetryConfig{MaxAttempts: 1, InitialWait: time.Millisecond, MaxWait: time.Millisecond, Multiplier: 1})

	if Base(wrapped) != Provider(mock) {
		t.Error("Base did not unwrap to the mock provider")
	}
}

func TestSupportsGrounding(t *testing.T) {
	mock := NewMockProvider()
	wrapped := WithRetry(mock, RetryConfig{MaxAttempts: 1, InitialWait: time.Millisecond, MaxWait: time.Millisecond, Multiplier: 1})

	if !SupportsGrounding(wrapped) {
		t.Error("mock provider should support grounding")
	}
	if !SupportsSpeech(wrapped) {
		t.Error("mock provider should support speech")
	}
}

func TestSupportsGroundingFalseForPlainProvider(t *testing.T) {
	if SupportsGrounding(plainProvider{}) {
		t.Error("plain provider reported grounding support")
	}
	if SupportsSpeech(plainProvider{}) {
		t.Error("plain provider reported speech support")
	}
}

// plainProvider implements only the core Provider interface.
type plainProvider struct{}

func (plainProvider) Generate(context.Context, Request) (*Response, error) {
	return &Response{}, nil
}

func (plainProvider) ModelID() string { return "plain" }

func TestRetryForwardsGrounded(t *testing.T) {
	mock := NewMockProvider()
	mock.AddGroundedResponse(MockGroundedResponse{
		Text:    "Photosynthesis converts light into chemical energy.",
		Sources: []Source{{Title: "Biology Notes", URI: "https://example.org/photo"}},
	})
	wrapped := WithRetry(mock, RetryConfig{MaxAttempts: 1, InitialWait: time.Millisecond, MaxWait: time.Millisecond, Multiplier: 1})

	g, ok := wrapped.(GroundedGenerator)
	if !ok {
		t.Fatal("retry wrapper should forward grounded generation")
	}

	resp, err := g.GenerateGrounded(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "What is photosynthesis?"}},
	})
	if err != nil {
		t.Fatalf("GenerateGrounded: %v", err)
	}
	if len(resp.Sources) != 1 || resp.Sources[0].URI != "https://example.org/photo" {
		t.Errorf("sources = %+v", resp.Sources)
	}
}

func TestRetryGroundedUnsupported(t *testing.T) {
	wrapped := WithRetry(plainProvider{}, RetryConfig{MaxAttempts: 1, InitialWait: time.Millisecond, MaxWait: time.Millisecond, Multiplier: 1})

	g := wrapped.(GroundedGenerator)
	_, err := g.GenerateGrounded(context.Background(), Request{})
	if err != ErrUnsupported {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
}
