package llm

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "gemini" {
		t.Errorf("default provider = %q, want gemini", cfg.Provider)
	}
	if cfg.Gemini.Model != "gemini-flash" {
		t.Errorf("default gemini model = %q", cfg.Gemini.Model)
	}
	if cfg.Gemini.SpeechModel != "gemini-2.5-flash-preview-tts" {
		t.Errorf("default speech model = %q", cfg.Gemini.SpeechModel)
	}
	if cfg.Gemini.Voice != "Kore" {
		t.Errorf("default voice = %q", cfg.Gemini.Voice)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("MINDFLOW_LLM_PROVIDER", "openai")
	t.Setenv("MINDFLOW_OPENAI_API_KEY", "sk-test")
	t.Setenv("MINDFLOW_OPENAI_MODEL", "gpt-4o")
	t.Setenv("MINDFLOW_GEMINI_VOICE", "Puck")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("openai config = %+v", cfg.OpenAI)
	}
	if cfg.Gemini.Voice != "Puck" {
		t.Errorf("voice = %q", cfg.Gemini.Voice)
	}
}

func TestDiscoverConfigPrefersGemini(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENAI_API_KEY", "o-key")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected discovery to succeed")
	}
	if cfg.Provider != "gemini" || cfg.Gemini.APIKey != "g-key" {
		t.Errorf("cfg = %+v", cfg)
	}
}
