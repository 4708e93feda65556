package game

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const subscriberBuffer = 8

// Loop drives an Engine at a fixed tick rate and fans each published
// snapshot out to subscribers.
type Loop struct {
	engine *Engine
	period time.Duration
	log    zerolog.Logger

	mu          sync.Mutex
	subscribers map[string]chan *Snapshot
	last        time.Time
}

// NewLoop creates a loop ticking tickRate times per second.
func NewLoop(engine *Engine, tickRate int, log zerolog.Logger) *Loop {
	if tickRate <= 0 {
		tickRate = TickRate
	}
	return &Loop{
		engine:      engine,
		period:      time.Second / time.Duration(tickRate),
		log:         log.With().Str("component", "loop").Logger(),
		subscribers: make(map[string]chan *Snapshot),
	}
}

// Engine returns the engine the loop drives.
func (l *Loop) Engine() *Engine {
	return l.engine
}

// Subscribe registers a receiver for published snapshots. A slow receiver
// loses its oldest pending snapshot, never the newest.
func (l *Loop) Subscribe(id string) <-chan *Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ch, ok := l.subscribers[id]; ok {
		return ch
	}
	ch := make(chan *Snapshot, subscriberBuffer)
	l.subscribers[id] = ch
	return ch
}

// Unsubscribe removes a receiver and closes its channel.
func (l *Loop) Unsubscribe(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ch, ok := l.subscribers[id]; ok {
		delete(l.subscribers, id)
		close(ch)
	}
}

// Broadcast hands snap to every subscriber without blocking.
func (l *Loop) Broadcast(snap *Snapshot) {
	if snap == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for id, ch := range l.subscribers {
		select {
		case ch <- snap:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
			l.log.Debug().Str("subscriber", id).Uint64("seq", snap.Seq).Msg("snapshot dropped")
		}
	}
}

// step ticks the engine with the wall time elapsed since the previous step.
func (l *Loop) step(now time.Time) *Snapshot {
	dt := l.period
	if !l.last.IsZero() {
		dt = now.Sub(l.last)
	}
	l.last = now
	return l.engine.Tick(now, dt)
}

// Run ticks until ctx is cancelled or the match ends. The final snapshot is
// always broadcast before Run returns.
func (l *Loop) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	updates := make(chan *Snapshot, 1)

	g.Go(func() error {
		defer close(updates)

		ticker := time.NewTicker(l.period)
		defer ticker.Stop()

		l.log.Info().Dur("period", l.period).Msg("game loop started")
		for {
			select {
			case <-ctx.Done():
				l.log.Info().Msg("game loop stopped")
				return nil
			case now := <-ticker.C:
				before := l.engine.Snapshot()
				snap := l.step(now)
				if snap != before {
					select {
					case updates <- snap:
					case <-ctx.Done():
						return nil
					}
				}
				if snap.Phase == PhaseEnded {
					l.log.Info().Str("winner", snap.Winner).Msg("game loop finished")
					return nil
				}
			}
		}
	})

	g.Go(func() error {
		for snap := range updates {
			l.Broadcast(snap)
		}
		return nil
	})

	return g.Wait()
}
