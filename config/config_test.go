package config

import "testing"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "123:token")
	t.Setenv("DB_URL", "postgres://localhost:5432/remindbot")
	t.Setenv("DEFAULT_TIMEZONE", "")
	t.Setenv("PORT", "")
	t.Setenv("REDIS_DB", "")
}

func TestLoadReadsDefaultTimezone(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DEFAULT_TIMEZONE", "America/Chicago")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultTimezone != "America/Chicago" {
		t.Errorf("DefaultTimezone = %q, want America/Chicago", cfg.DefaultTimezone)
	}
}

func TestLoadFallsBackToMoscow(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultTimezone != "Europe/Moscow" {
		t.Errorf("DefaultTimezone = %q, want Europe/Moscow", cfg.DefaultTimezone)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DEFAULT_TIMEZONE", "Atlantis/Nowhere")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an unknown DEFAULT_TIMEZONE")
	}
}

func TestLoadRequiresBotToken(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BOT_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error when BOT_TOKEN is missing")
	}
}
