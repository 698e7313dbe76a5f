// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package probe runs periodic backend connectivity checks independent
// of user-triggered requests. The latest status is held in an atomic
// snapshot so readers never block on a probe in flight.
package probe

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pdiddy/research-assistant/internal/llm"
)

// defaultInterval between probes.
const defaultInterval = 10 * time.Second

// Prober reports backend connectivity. *llm.Gateway implements it.
type Prober interface {
	Probe(ctx context.Context) llm.Status
}

// Monitor probes connectivity on a fixed interval.
type Monitor struct {
	prober  Prober
	cron    *cron.Cron
	current atomic.Value // llm.Status
}

// NewMonitor builds a monitor probing p every interval (default 10s).
func NewMonitor(p Prober, interval time.Duration) (*Monitor, error) {
	if interval <= 0 {
		interval = defaultInterval
	}

	m := &Monitor{
		prober: p,
		cron:   cron.New(),
	}
	m.current.Store(llm.Status{})

	if _, err := m.cron.AddFunc(fmt.Sprintf("@every %s", interval), m.check); err != nil {
		return nil, fmt.Errorf("scheduling probe: %w", err)
	}
	return m, nil
}

// Start probes once immediately, then begins the periodic schedule.
func (m *Monitor) Start() {
	m.check()
	m.cron.Start()
}

// Stop halts the schedule. A probe already in flight finishes.
func (m *Monitor) Stop() {
	m.cron.Stop()
}

// Current returns the most recent status without blocking.
func (m *Monitor) Current() llm.Status {
	return m.current.Load().(llm.Status)
}

func (m *Monitor) check() {
	m.current.Store(m.prober.Probe(context.Background()))
}
