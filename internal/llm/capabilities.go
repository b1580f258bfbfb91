package llm

import "context"

// GroundedGenerator is implemented by providers that can answer a
// free-form question using web search grounding and return source
// attributions alongside the text.
type GroundedGenerator interface {
	GenerateGrounded(ctx context.Context, req Request) (*GroundedResponse, error)
}

// Source is one web attribution backing a grounded answer.
type Source struct {
	Title string
	URI   string
}

// GroundedResponse holds a grounded answer with its sources.
type GroundedResponse struct {
	Text    string
	Sources []Source
	Usage   Usage
	Model   string
}

// Synthesizer is implemented by providers that can turn short text into
// speech audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (*SpeechResponse, error)
}

// SpeechResponse carries raw audio from speech synthesis.
type SpeechResponse struct {
	// Audio is 16-bit little-endian PCM.
	Audio      []byte
	SampleRate int
	Channels   int
}

// unwrapper is implemented by decorator providers.
type unwrapper interface {
	Unwrap() Provider
}

// Base returns the innermost provider of a decorator chain.
func Base(p Provider) Provider {
	for {
		u, ok := p.(unwrapper)
		if !ok {
			return p
		}
		p = u.Unwrap()
	}
}

// SupportsGrounding reports whether the chain's base provider can serve
// grounded generation.
func SupportsGrounding(p Provider) bool {
	_, ok := Base(p).(GroundedGenerator)
	return ok
}

// SupportsSpeech reports whether the chain's base provider can serve
// speech synthesis.
func SupportsSpeech(p Provider) bool {
	_, ok := Base(p).(Synthesizer)
	return ok
}
