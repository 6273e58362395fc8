package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lumen/internal/config"
	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/history"
	"github.com/abhisek/lumen/internal/knowledge"
	"github.com/abhisek/lumen/internal/llm"
	"github.com/abhisek/lumen/internal/logger"
	"github.com/abhisek/lumen/internal/metrics"
	"github.com/abhisek/lumen/internal/navigator"
	"github.com/abhisek/lumen/internal/queue"
	"github.com/abhisek/lumen/internal/screens/lesson"
	"github.com/abhisek/lumen/internal/store"
	"github.com/abhisek/lumen/internal/tutor"
	"github.com/abhisek/lumen/internal/ui/theme"
)

// env holds what the commands share. tutor is nil unless the command
// asked for generation.
type env struct {
	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Metrics
	store   *store.Opened
	tutor   *tutor.Service
	history *history.History
	tracker *knowledge.Tracker
	queue   *queue.Queue
}

// loadConfig reads the config file and applies the global flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.Store.Backend, _ = flags.GetString("store")
	}
	if flags.Changed("db") {
		cfg.Store.DBPath, _ = flags.GetString("db")
		if err := store.EnsureDir(cfg.Store.DBPath); err != nil {
			return nil, fmt.Errorf("prepare database path: %w", err)
		}
	}
	if flags.Changed("data-dir") {
		cfg.Store.DataDir, _ = flags.GetString("data-dir")
	}
	if flags.Changed("difficulty") {
		raw, _ := flags.GetString("difficulty")
		d, err := content.ParseDifficulty(raw)
		if err != nil {
			return nil, fmt.Errorf("--difficulty: %w", err)
		}
		cfg.Lesson.Difficulty = string(d)
	}
	if flags.Changed("theme") {
		raw, _ := flags.GetString("theme")
		if _, err := theme.ParseMode(raw); err != nil {
			return nil, fmt.Errorf("--theme: %w", err)
		}
		cfg.Theme = raw
	}
	return cfg, nil
}

// applyTheme picks the palette: an explicit --theme is applied and
// stored, otherwise the stored choice, otherwise the configured one.
func (e *env) applyTheme(ctx context.Context, explicit bool) {
	mode, _ := theme.ParseMode(e.cfg.Theme)
	if explicit {
		if err := e.saveTheme(ctx, mode); err != nil {
			e.log.Warn("saving theme", "error", err)
		}
	} else if saved, err := store.LoadJSON[theme.Mode](ctx, e.store.Store, store.KeyTheme); err == nil {
		if m, err := theme.ParseMode(string(saved)); err == nil {
			mode = m
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		e.log.Warn("loading theme", "error", err)
	}
	theme.Apply(mode)
}

func (e *env) saveTheme(ctx context.Context, m theme.Mode) error {
	return store.SaveJSON(ctx, e.store.Store, store.KeyTheme, m)
}

// openEnv loads settings, opens the store and restores history and
// knowledge. With withTutor a provider must be configured.
func openEnv(cmd *cobra.Command, withTutor bool) (*env, error) {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	opened, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	e := &env{
		cfg:     cfg,
		log:     log,
		metrics: metrics.New(),
		store:   opened,
		history: history.New(opened.Store, log),
		tracker: knowledge.NewTracker(opened.Store, knowledge.WithLogger(log)),
		queue:   queue.New(opened.Store, log),
	}
	if err := errors.Join(e.history.Load(ctx), e.tracker.Load(ctx)); err != nil {
		e.Close()
		return nil, err
	}
	e.applyTheme(ctx, cmd.Flags().Changed("theme"))

	if withTutor {
		provider, err := llm.NewProvider(ctx, cfg.LLM, llm.Deps{
			Events:  opened.Events,
			Metrics: e.metrics,
			Log:     log,
		})
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("LLM provider not configured: %w", err)
		}
		e.tutor = tutor.New(provider, cfg.Tutor(), log)
	}
	return e, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("closing store", "error", err)
	}
	e.log.Sync()
}

func (e *env) difficulty() content.Difficulty {
	return e.cfg.Difficulty()
}

func (e *env) navigator(source navigator.ModuleSource) *navigator.Navigator {
	return navigator.New(e.store.Store, source, navigator.WithLogger(e.log))
}

func (e *env) lessonDeps() lesson.Deps {
	deps := lesson.Deps{
		Tracker:    e.tracker,
		History:    e.history,
		Difficulty: e.difficulty(),
		Log:        e.log,
		Metrics:    e.metrics,
	}
	if e.tutor != nil {
		deps.Generator = e.tutor
		deps.Answers = e.tutor
		deps.Explanations = e.tutor
	}
	return deps
}

func (e *env) saveHistory(ctx context.Context) {
	if err := e.history.Save(ctx); err != nil {
		e.log.Warn("saving history", "error", err)
	}
}
