// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-image-gateway/internal/logger"
)

// Periodic calls a task every interval until its context is cancelled.
// Task errors are logged and do not stop the worker.
type Periodic struct {
	name     string
	interval time.Duration
	task     func(ctx context.Context) error
	logger   *logger.Logger
}

func NewPeriodic(name string, interval time.Duration, task func(ctx context.Context) error, logger *logger.Logger) *Periodic {
	return &Periodic{
		name:     name,
		interval: interval,
		task:     task,
		logger:   logger,
	}
}

func (p *Periodic) Run(ctx context.Context) {
	if p.interval <= 0 {
		p.logger.Warn().Str("worker", p.name).Msg("non-positive interval, worker disabled")
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Debug().Str("worker", p.name).Dur("interval", p.interval).Msg("worker started")
	for {
		select {
		case <-ctx.Done():
			p.logger.Debug().Str("worker", p.name).Msg("worker stopped")
			return
		case <-ticker.C:
			if err := p.task(ctx); err != nil {
				p.logger.Err(err).Str("worker", p.name).Msg("worker task failed")
			}
		}
	}
}
