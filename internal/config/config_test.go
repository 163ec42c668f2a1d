package config

import (
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != "8080" {
		t.Errorf("unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.Server.SessionTTL <= 0 {
		t.Error("session TTL default must be positive")
	}
	if cfg.Generator.RateLimit <= 0 || cfg.Generator.MaxRetries <= 0 {
		t.Errorf("unexpected generator defaults: %+v", cfg.Generator)
	}
	if cfg.Knowledge.DBPath == "" {
		t.Error("knowledge db path default missing")
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Setenv("LABDEC_TEST_KEY", "secret-value")

	tests := []struct {
		input    string
		expected string
	}{
		{"${LABDEC_TEST_KEY}", "secret-value"},
		{"prefix-${LABDEC_TEST_KEY}-suffix", "prefix-secret-value-suffix"},
		{"no-vars-here", "no-vars-here"},
		{"${LABDEC_UNSET_VAR}", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ResolveEnvVars(tt.input); got != tt.expected {
			t.Errorf("ResolveEnvVars(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestToOpenAIConfig(t *testing.T) {
	t.Setenv("LABDEC_TEST_API_KEY", "sk-test")

	g := GeneratorConfig{
		Model:      "gpt-4o",
		APIKey:     "${LABDEC_TEST_API_KEY}",
		RateLimit:  30,
		MaxRetries: 5,
	}

	cfg := g.ToOpenAIConfig()
	if cfg.APIKey != "sk-test" {
		t.Errorf("API key not resolved: %q", cfg.APIKey)
	}
	if cfg.Model != "gpt-4o" || cfg.RateLimit != 30 || cfg.MaxRetries != 5 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}
