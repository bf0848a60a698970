package fetch

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"krimiwiki/internal/logging"
)

// Pacer spaces consecutive downloads by a random delay of
// min + jitter*rand.
type Pacer struct {
	min     time.Duration
	jitter  time.Duration
	random  func() float64
	sleep   func(context.Context, time.Duration) error
	logger  *slog.Logger
	started bool
}

// PacerOption configures a Pacer.
type PacerOption func(*Pacer)

// WithRandom replaces the random source (tests).
func WithRandom(fn func() float64) PacerOption {
	return func(p *Pacer) {
		if fn != nil {
			p.random = fn
		}
	}
}

// WithSleep replaces the sleep function (tests).
func WithSleep(fn func(context.Context, time.Duration) error) PacerOption {
	return func(p *Pacer) {
		if fn != nil {
			p.sleep = fn
		}
	}
}

// WithPacerLogger sets the logger announcing each pause.
func WithPacerLogger(logger *slog.Logger) PacerOption {
	return func(p *Pacer) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPacer creates a pacer.
func NewPacer(minDelay, jitter time.Duration, opts ...PacerOption) *Pacer {
	p := &Pacer{
		min:    minDelay,
		jitter: jitter,
		random: rand.Float64,
		sleep:  sleepContext,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Wait returns immediately on the first call and sleeps before every later
// one. It returns the context error when cancelled while sleeping.
func (p *Pacer) Wait(ctx context.Context) error {
	if !p.started {
		p.started = true
		return nil
	}
	delay := p.min + time.Duration(p.random()*float64(p.jitter))
	if delay <= 0 {
		return ctx.Err()
	}
	p.logger.Info("sleeping before next download", logging.Duration("delay", delay.Round(time.Millisecond)))
	return p.sleep(ctx, delay)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
