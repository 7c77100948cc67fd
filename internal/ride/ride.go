// Package ride drives ride progress along the track once per tick.
//
// The editor core never schedules anything itself: while riding, this
// collaborator reads the ride speed each tick and pushes the advanced
// progress fraction back into the store.
package ride

import (
	"context"
	"math"
	"time"

	"github.com/Kazi584/roller-coaster-builder/internal/coaster"
	"github.com/Kazi584/roller-coaster-builder/internal/monitoring"
	"github.com/Kazi584/roller-coaster-builder/internal/timeutil"
)

// Config holds the ride loop's timing parameters.
type Config struct {
	// Tick is the update period.
	Tick time.Duration
	// CircuitTime is how long one full traversal takes at ride speed 1.
	CircuitTime time.Duration
}

// DefaultConfig returns the default ride loop configuration: 60 updates per
// second, 30 seconds per circuit.
func DefaultConfig() Config {
	return Config{
		Tick:        time.Second / 60,
		CircuitTime: 30 * time.Second,
	}
}

// Loop advances the editor's ride progress on a fixed tick.
type Loop struct {
	editor *coaster.Editor
	clock  timeutil.Clock
	cfg    Config
}

// NewLoop creates a ride loop bound to the given editor and clock.
func NewLoop(editor *coaster.Editor, clock timeutil.Clock, cfg Config) *Loop {
	return &Loop{
		editor: editor,
		clock:  clock,
		cfg:    cfg,
	}
}

// Run ticks until the context is cancelled. It is the only writer of ride
// progress, so each tick is a read-modify-write against the store.
func (l *Loop) Run(ctx context.Context) {
	ticker := l.clock.NewTicker(l.cfg.Tick)
	defer ticker.Stop()

	last := l.clock.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C():
			l.step(now.Sub(last))
			last = now
		}
	}
}

// step advances progress by the elapsed wall time scaled by the ride speed.
// Progress wraps at 1.0 so the train keeps circulating until the ride stops.
// Outside ride mode the tick is inert.
func (l *Loop) step(dt time.Duration) {
	if !l.editor.IsRiding() {
		return
	}

	speed := l.editor.RideSpeed()
	delta := dt.Seconds() / l.cfg.CircuitTime.Seconds() * speed

	progress := l.editor.RideProgress() + delta
	if progress >= 1 {
		progress = math.Mod(progress, 1)
		monitoring.Logf("ride: circuit complete, wrapping progress")
	}
	if progress < 0 {
		progress = 0
	}
	l.editor.SetRideProgress(progress)
}
