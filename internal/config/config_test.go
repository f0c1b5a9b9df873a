package config

import (
	"testing"
	"time"
)

func TestParseEnv(t *testing.T) {
	tests := []struct {
		in   string
		want Environment
	}{
		{"prod", EnvProduction},
		{"PROD", EnvProduction},
		{"test", EnvTest},
		{"dev", EnvDevelopment},
		{"", EnvDevelopment},
		{"unknown", EnvDevelopment},
	}

	for _, tt := range tests {
		if got := parseEnv(tt.in); got != tt.want {
			t.Errorf("parseEnv(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.APIPort == "" {
		t.Error("APIPort should have a default")
	}
	if cfg.MongoURI == "" {
		t.Error("MongoURI should have a default")
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h default", cfg.TokenTTL)
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("MONGODB_URI", "mongodb://override:27017")
	t.Setenv("TOKEN_TTL", "1h")

	cfg := Load()

	if cfg.APIPort != "9999" {
		t.Errorf("APIPort = %q, want 9999", cfg.APIPort)
	}
	if cfg.MongoURI != "mongodb://override:27017" {
		t.Errorf("MongoURI = %q", cfg.MongoURI)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v, want 1h", cfg.TokenTTL)
	}
}

func TestInvalidTokenTTLFallsBack(t *testing.T) {
	t.Setenv("TOKEN_TTL", "not-a-duration")

	cfg := Load()
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h fallback", cfg.TokenTTL)
	}
}
