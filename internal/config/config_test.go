package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/store"
)

// isolate points the default search paths at an empty directory and
// clears provider keys inherited from the developer's shell.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)
	for _, k := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY", "REDIS_ADDR"} {
		t.Setenv(k, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Backend != store.BackendSQLite {
		t.Errorf("backend = %q", cfg.Store.Backend)
	}
	if cfg.Lesson.Questions != 7 {
		t.Errorf("questions = %d, want 7", cfg.Lesson.Questions)
	}
	if cfg.Difficulty() != content.HighSchool {
		t.Errorf("difficulty = %q", cfg.Difficulty())
	}
	if cfg.LLM.Retry.MaxAttempts != 4 || cfg.LLM.Retry.InitialWait != time.Second {
		t.Errorf("retry = %+v", cfg.LLM.Retry)
	}
	if cfg.LLM.Timeout != 3*time.Minute {
		t.Errorf("timeout = %v", cfg.LLM.Timeout)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	if cfg.ReportsDir != "reports" {
		t.Errorf("reports dir = %q", cfg.ReportsDir)
	}
	if cfg.Theme != "dark" {
		t.Errorf("theme = %q", cfg.Theme)
	}
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	yaml := `
llm:
  provider: anthropic
  retry:
    initial_wait: 250ms
store:
  backend: redis
  redis:
    addr: localhost:6379
lesson:
  difficulty: college
  questions: 5
server:
  addr: ":9000"
reports_dir: /tmp/reports
theme: light
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Provider != "anthropic" {
		t.Errorf("provider = %q", cfg.LLM.Provider)
	}
	if cfg.LLM.Retry.InitialWait != 250*time.Millisecond {
		t.Errorf("initial wait = %v", cfg.LLM.Retry.InitialWait)
	}
	if cfg.LLM.Retry.MaxAttempts != 4 {
		t.Errorf("unset keys should keep defaults, max attempts = %d", cfg.LLM.Retry.MaxAttempts)
	}
	if cfg.Store.Backend != store.BackendRedis || cfg.Store.Redis.Addr != "localhost:6379" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Difficulty() != content.College || cfg.Lesson.Questions != 5 {
		t.Errorf("lesson = %+v", cfg.Lesson)
	}
	if cfg.Tutor().Questions != 5 {
		t.Errorf("tutor questions = %d", cfg.Tutor().Questions)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}
	if cfg.Theme != "light" {
		t.Errorf("theme = %q", cfg.Theme)
	}
}

func TestLoad_DefaultFileInWorkingDir(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, "lumen.yaml"), []byte("store:\n  backend: file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Backend != store.BackendFile {
		t.Errorf("backend = %q", cfg.Store.Backend)
	}
}

func TestLoad_Env(t *testing.T) {
	isolate(t)
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("LUMEN_STORE_BACKEND", "memory")
	t.Setenv("LUMEN_LESSON_DIFFICULTY", "elementary")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Gemini.APIKey != "g-key" {
		t.Errorf("gemini key not bound")
	}
	if cfg.Store.Backend != store.BackendMemory {
		t.Errorf("backend = %q", cfg.Store.Backend)
	}
	if cfg.Difficulty() != content.Elementary {
		t.Errorf("difficulty = %q", cfg.Difficulty())
	}
	if !cfg.LLM.Resolve() || cfg.LLM.Provider != "gemini" {
		t.Errorf("provider = %q", cfg.LLM.Provider)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad difficulty", "lesson:\n  difficulty: kindergarten\n"},
		{"zero questions", "lesson:\n  questions: 0\n"},
		{"unknown theme", "theme: neon\n"},
		{"malformed yaml", "lesson: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "lumen.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	t.Run("missing explicit file", func(t *testing.T) {
		dir := isolate(t)
		if _, err := Load(filepath.Join(dir, "nope.yaml")); err == nil {
			t.Fatal("expected error")
		}
	})
}
