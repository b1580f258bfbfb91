package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindflow/internal/app"
	"github.com/abhisek/mindflow/internal/examiner"
	"github.com/abhisek/mindflow/internal/llm"
	"github.com/abhisek/mindflow/internal/profile"
	"github.com/abhisek/mindflow/internal/speech"
	"github.com/abhisek/mindflow/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		return fmt.Errorf("LLM provider not configured (set GEMINI_API_KEY or a MINDFLOW_* key): %w", err)
	}

	// Spoken verdicts need a provider with a speech model behind it.
	var speaker speech.Speaker = speech.NopSpeaker{}
	if llm.SupportsSpeech(provider) {
		if synth, ok := provider.(llm.Synthesizer); ok {
			s := speech.NewSynthSpeaker(synth)
			defer s.Close()
			speaker = s
		}
	}

	deps := app.Deps{
		Profiles:   st.ProfileRepo(),
		Gateway:    examiner.New(provider, examiner.DefaultConfig()),
		Speaker:    speaker,
		Params:     profile.DefaultParams(),
		Thresholds: profile.DefaultThresholds(),
	}

	return app.Run(deps)
}
