// Package speech plays short spoken feedback through the system audio
// player. Speaking is fire and forget: failures are logged and dropped,
// never surfaced to the session.
package speech

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/abhisek/mindflow/internal/llm"
)

// Speaker voices short text cues.
type Speaker interface {
	// Speak queues text for playback and returns immediately.
	Speak(text string)

	// Close cancels any in-flight synthesis and playback.
	Close()
}

// NopSpeaker discards all speech. Used when the provider has no speech
// capability or audio is disabled.
type NopSpeaker struct{}

func (NopSpeaker) Speak(string) {}
func (NopSpeaker) Close()       {}

// SynthSpeaker synthesizes text with an LLM speech model and plays the
// audio through a command-line player.
type SynthSpeaker struct {
	synth  llm.Synthesizer
	ctx    context.Context
	cancel context.CancelFunc

	// play is swapped out in tests.
	play func(ctx context.Context, wavPath string) error
}

// NewSynthSpeaker creates a speaker backed by the given synthesizer.
func NewSynthSpeaker(synth llm.Synthesizer) *SynthSpeaker {
	ctx, cancel := context.WithCancel(context.Background())
	return &SynthSpeaker{
		synth:  synth,
		ctx:    ctx,
		cancel: cancel,
		play:   playWAV,
	}
}

// Speak synthesizes and plays text in the background.
func (s *SynthSpeaker) Speak(text string) {
	if text == "" {
		return
	}
	go func() {
		if err := s.speak(text); err != nil && s.ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "warning: speech playback failed: %v\n", err)
		}
	}()
}

// Close cancels in-flight speech.
func (s *SynthSpeaker) Close() {
	s.cancel()
}

func (s *SynthSpeaker) speak(text string) error {
	ctx, cancel := context.WithTimeout(s.ctx, 30*time.Second)
	defer cancel()
	ctx = llm.WithPurpose(ctx, "speech")

	resp, err := s.synth.Synthesize(ctx, text)
	if err != nil {
		return err
	}

	wav := encodeWAV(resp.Audio, resp.SampleRate, resp.Channels)

	f, err := os.CreateTemp("", "mindflow-speech-*.wav")
	if err != nil {
		return err
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(wav); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return s.play(ctx, path)
}

// players lists command-line audio players in preference order.
var players = [][]string{
	{"afplay"},
	{"paplay"},
	{"aplay", "-q"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
	{"mpv", "--no-video", "--really-quiet"},
}

// playWAV plays a WAV file with the first available system player.
func playWAV(ctx context.Context, path string) error {
	for _, p := range players {
		bin, err := exec.LookPath(p[0])
		if err != nil {
			continue
		}
		args := append(p[1:], path)
		cmd := exec.CommandContext(ctx, bin, args...)
		return cmd.Run()
	}
	return fmt.Errorf("no audio player found for %s", filepath.Base(path))
}
