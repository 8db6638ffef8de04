package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8081" || cfg.LogLevel != "info" || cfg.Hourglass != 0 {
		t.Fatalf("defaults = %+v", cfg)
	}
	if !cfg.OriginAllowed("http://anywhere") {
		t.Fatal("empty allow list should accept every origin")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GALAXY_PORT", "9000")
	t.Setenv("GALAXY_HOURGLASS", "5s")
	t.Setenv("GALAXY_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9000" || cfg.Hourglass != 5*time.Second {
		t.Fatalf("cfg = %+v", cfg)
	}
	if !cfg.OriginAllowed("http://b.test") || cfg.OriginAllowed("http://c.test") {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadError(t *testing.T) {
	t.Setenv("GALAXY_HOURGLASS", "soon")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLogger(t *testing.T) {
	if _, err := (Config{LogLevel: "debug"}).Logger(); err != nil {
		t.Fatal(err)
	}
	if _, err := (Config{LogLevel: "loud"}).Logger(); err == nil {
		t.Fatal("expected a bad level error")
	}
}
