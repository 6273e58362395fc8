// Package config loads lumen's settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/llm"
	"github.com/abhisek/lumen/internal/logger"
	"github.com/abhisek/lumen/internal/store"
	"github.com/abhisek/lumen/internal/tutor"
	"github.com/abhisek/lumen/internal/ui/theme"
)

// EnvPrefix is prepended to every automatic environment variable, so
// llm.provider is read from LUMEN_LLM_PROVIDER.
const EnvPrefix = "LUMEN"

// FileName is the config file searched for when no path is given.
const FileName = "lumen"

type Config struct {
	LLM        llm.Config    `mapstructure:"llm"`
	Store      store.Config  `mapstructure:"store"`
	Log        logger.Config `mapstructure:"log"`
	Server     ServerConfig  `mapstructure:"server"`
	Lesson     LessonConfig  `mapstructure:"lesson"`
	ReportsDir string        `mapstructure:"reports_dir"`
	// Theme is the palette used until the learner picks one: dark or
	// light. A picked theme is stored and wins over this value.
	Theme string `mapstructure:"theme"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	// Mode is the gin mode: debug, release or test.
	Mode string `mapstructure:"mode"`
}

type LessonConfig struct {
	Difficulty      string `mapstructure:"difficulty"`
	Questions       int    `mapstructure:"questions"`
	FeedSize        int    `mapstructure:"feed_size"`
	FeedConcurrency int    `mapstructure:"feed_concurrency"`
}

// Load reads path, or lumen.yaml from the working directory or the user
// config directory when path is empty. A missing default file is not an
// error; a missing explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Provider keys are also read under their conventional names.
	_ = v.BindEnv("llm.gemini.api_key", "LUMEN_LLM_GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY")
	_ = v.BindEnv("llm.openai.api_key", "LUMEN_LLM_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("llm.anthropic.api_key", "LUMEN_LLM_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("llm.openrouter.api_key", "LUMEN_LLM_OPENROUTER_API_KEY", "OPENROUTER_API_KEY")
	_ = v.BindEnv("store.redis.addr", "LUMEN_STORE_REDIS_ADDR", "REDIS_ADDR")
	_ = v.BindEnv("store.redis.password", "LUMEN_STORE_REDIS_PASSWORD", "REDIS_PASSWORD")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "lumen"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if _, err := content.ParseDifficulty(cfg.Lesson.Difficulty); err != nil {
		return nil, fmt.Errorf("lesson.difficulty: %w", err)
	}
	if _, err := theme.ParseMode(cfg.Theme); err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	if cfg.Lesson.Questions < 1 {
		return nil, fmt.Errorf("lesson.questions must be positive, got %d", cfg.Lesson.Questions)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	l := llm.DefaultConfig()
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", l.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", l.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", l.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", l.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", l.OpenRouter.BaseURL)
	v.SetDefault("llm.retry.max_attempts", l.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", l.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", l.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", l.Retry.Multiplier)
	v.SetDefault("llm.retry.jitter", l.Retry.Jitter)
	v.SetDefault("llm.rate_limit.requests_per_minute", l.RateLimit.RequestsPerMinute)
	v.SetDefault("llm.rate_limit.burst", l.RateLimit.Burst)
	v.SetDefault("llm.temperature", l.Temperature)
	v.SetDefault("llm.max_tokens", l.MaxTokens)
	v.SetDefault("llm.timeout", l.Timeout)

	v.SetDefault("store.backend", store.BackendSQLite)
	v.SetDefault("store.db_path", "")
	v.SetDefault("store.data_dir", "")
	v.SetDefault("store.redis.addr", "")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)

	lg := logger.DefaultConfig()
	v.SetDefault("log.level", lg.Level)
	v.SetDefault("log.console_level", lg.ConsoleLevel)
	v.SetDefault("log.file", lg.File)
	v.SetDefault("log.max_size_mb", lg.MaxSizeMB)
	v.SetDefault("log.max_backups", lg.MaxBackups)
	v.SetDefault("log.max_age_days", lg.MaxAgeDays)
	v.SetDefault("log.compress", lg.Compress)

	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.mode", "release")

	t := tutor.DefaultConfig()
	v.SetDefault("lesson.difficulty", string(content.HighSchool))
	v.SetDefault("lesson.questions", t.Questions)
	v.SetDefault("lesson.feed_size", t.FeedSize)
	v.SetDefault("lesson.feed_concurrency", t.FeedConcurrency)

	v.SetDefault("reports_dir", "reports")
	v.SetDefault("theme", string(theme.Dark))
}

// Difficulty returns the configured lesson level.
func (c *Config) Difficulty() content.Difficulty {
	d, err := content.ParseDifficulty(c.Lesson.Difficulty)
	if err != nil {
		return content.HighSchool
	}
	return d
}

// Tutor returns generation settings derived from the lesson and LLM
// sections.
func (c *Config) Tutor() tutor.Config {
	t := tutor.DefaultConfig()
	t.Questions = c.Lesson.Questions
	if c.Lesson.FeedSize > 0 {
		t.FeedSize = c.Lesson.FeedSize
	}
	if c.Lesson.FeedConcurrency > 0 {
		t.FeedConcurrency = c.Lesson.FeedConcurrency
	}
	if c.LLM.Temperature > 0 {
		t.Temperature = c.LLM.Temperature
	}
	return t
}
