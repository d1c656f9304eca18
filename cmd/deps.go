package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/studyplan/internal/content"
	"github.com/abhisek/studyplan/internal/llm"
	"github.com/abhisek/studyplan/internal/progress"
	"github.com/abhisek/studyplan/internal/quiz"
	"github.com/abhisek/studyplan/internal/store"
)

// deps are the opened application services shared by commands.
type deps struct {
	store    *store.Store
	progress *progress.Store
	content  *content.Adapter
	quiz     *quiz.Engine
	logger   *zap.Logger
	closers  []func() error
}

// openDeps opens the store and progress. With withLLM it also configures
// the provider, tip cache, content adapter and quiz engine; a missing
// provider is reported on stderr and leaves the adapter degraded.
func openDeps(cmd *cobra.Command, withLLM, interactive bool) (*deps, error) {
	ctx := cmd.Context()
	logger := newLogger(cmd, interactive)

	st, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	d := &deps{
		store:   st,
		logger:  logger,
		closers: []func() error{st.Close},
	}
	var slot progress.Slot = st.Slot(progress.SlotName)
	if ephemeral(cmd) {
		slot = progress.NewMemorySlot()
	}
	d.progress = progress.Open(ctx, slot, progress.WithLogger(logger))

	if !withLLM {
		return d, nil
	}

	cfg := content.ConfigFromEnv()
	opts := []content.Option{content.WithConfig(cfg), content.WithLogger(logger)}

	cache, closeCache, err := content.OpenCache(ctx, cfg)
	if err != nil {
		logger.Warn("tip cache unavailable, using memory", zap.Error(err))
		cache, closeCache = content.NewMemoryCache(), nil
	}
	opts = append(opts, content.WithCache(cache))
	if closeCache != nil {
		d.closers = append(d.closers, closeCache)
	}

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo(), logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
		provider = nil
	}

	d.content = content.New(provider, opts...)
	d.quiz = quiz.NewEngine(d.content, d.progress, quiz.WithLogger(logger))
	return d, nil
}

// Close releases everything in reverse open order.
func (d *deps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	_ = d.logger.Sync()
	return errors.Join(errs...)
}
