// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-link-sync/internal/logger"
)

// tickFunc is one unit of background work.
type tickFunc func(ctx context.Context) error

// intervalWorker calls tick once immediately and then every interval until
// ctx is done. A failing tick is logged and retried on the next interval.
type intervalWorker struct {
	name     string
	interval time.Duration
	tick     tickFunc

	logger *logger.Logger
}

func newIntervalWorker(name string, interval time.Duration, tick tickFunc, log *logger.Logger) *intervalWorker {
	return &intervalWorker{
		name:     name,
		interval: interval,
		tick:     tick,
		logger:   log.WithComponent(name),
	}
}

func (w *intervalWorker) Run(ctx context.Context) {
	if w.interval <= 0 {
		w.logger.Warn().Str("func", "*intervalWorker.Run").Msg("worker disabled: interval is not positive")
		return
	}

	w.logger.Info().Str("func", "*intervalWorker.Run").Dur("interval", w.interval).Msg("worker started")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.runTick(ctx)

		select {
		case <-ctx.Done():
			w.logger.Info().Str("func", "*intervalWorker.Run").Msg("worker stopped")
			return
		case <-ticker.C:
		}
	}
}

func (w *intervalWorker) runTick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := w.tick(ctx); err != nil && ctx.Err() == nil {
		w.logger.Err(err).Str("func", "*intervalWorker.runTick").Msg("worker tick failed")
	}
}

// onceWorker runs its tick a single time.
type onceWorker struct {
	name string
	tick tickFunc

	logger *logger.Logger
}

func newOnceWorker(name string, tick tickFunc, log *logger.Logger) *onceWorker {
	return &onceWorker{name: name, tick: tick, logger: log.WithComponent(name)}
}

func (w *onceWorker) Run(ctx context.Context) {
	if err := w.tick(ctx); err != nil {
		w.logger.Err(err).Str("func", "*onceWorker.Run").Msg("worker failed")
		return
	}
	w.logger.Info().Str("func", "*onceWorker.Run").Msg("worker finished")
}
