// Package playground implements the chat playground session machinery: an
// adaptive log poller, partial-message merging, and scroll preservation.
//
// The poller gives the illusion of token-by-token streaming without a push
// channel: it tails server-side session logs at a variable interval, speeding
// up while a query is producing output and backing off when nothing happens.
package playground

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/pluggedin/pluggedin/internal/contracts"
	"github.com/pluggedin/pluggedin/internal/domain"
)

// Poller tails the logs of one playground session at an adaptive interval.
// All lifecycle state lives behind the handle: Start arms the loop, Stop (or
// cancellation of the Start context) deterministically cancels it, and
// starting again first tears down any previous loop so two loops can never
// run concurrently. NewPoller should be used to create instances of Poller.
type Poller struct {
	logger    hclog.Logger
	fetcher   contracts.LogFetcher
	sessionID uuid.UUID
	sink      func(domain.FetchResult)
	opts      Options

	mu           sync.Mutex
	interval     time.Duration
	lastLogCount int
	thinking     bool
	restart      chan struct{}
	cancel       context.CancelFunc
	done         chan struct{}
}

// NewPoller creates a poller for one session. The sink receives every
// successful fetch result; it is called from the polling goroutine.
func NewPoller(
	logger hclog.Logger,
	fetcher contracts.LogFetcher,
	sessionID uuid.UUID,
	sink func(domain.FetchResult),
	opt ...Option,
) (*Poller, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if fetcher == nil {
		return nil, fmt.Errorf("log fetcher cannot be nil")
	}
	if sink == nil {
		return nil, fmt.Errorf("sink cannot be nil")
	}

	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, fmt.Errorf("invalid poller options: %w", err)
	}

	return &Poller{
		logger:    logger.Named("poller"),
		fetcher:   fetcher,
		sessionID: sessionID,
		sink:      sink,
		opts:      opts,
		interval:  opts.baselineInterval,
	}, nil
}

// Start begins polling. If a query was just submitted (thinking), the first
// tick fires at the thinking interval, otherwise at the baseline interval.
// Any previously running loop is stopped first.
func (p *Poller) Start(ctx context.Context, thinking bool) {
	p.Stop()

	ctx, cancel := context.WithCancel(ctx)

	p.mu.Lock()
	p.cancel = cancel
	p.done = make(chan struct{})
	p.restart = make(chan struct{}, 1)
	p.thinking = thinking
	if thinking {
		p.interval = p.opts.thinkingInterval
	} else {
		p.interval = p.opts.baselineInterval
	}
	done := p.done
	restart := p.restart
	p.mu.Unlock()

	go p.loop(ctx, done, restart)
}

// Stop cancels the poll loop and waits for it to exit. It is safe to call on
// a poller that was never started. No further ticks fire after Stop returns.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	done := p.done
	p.cancel = nil
	p.done = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// NoteMessageSent records that a query is now in flight and re-arms the timer
// at the thinking interval, so the first post-submission poll is fast
// regardless of how far the interval had loosened before.
func (p *Poller) NoteMessageSent() {
	p.mu.Lock()
	p.thinking = true
	p.interval = p.opts.thinkingInterval
	restart := p.restart
	p.mu.Unlock()

	if restart != nil {
		select {
		case restart <- struct{}{}:
		default:
		}
	}
}

// NoteResponseComplete records that the in-flight query has finished, moving
// the adjustment policy back to its idle bounds.
func (p *Poller) NoteResponseComplete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.thinking = false
}

// Interval returns the current polling interval.
func (p *Poller) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

func (p *Poller) loop(ctx context.Context, done chan struct{}, restart chan struct{}) {
	defer close(done)

	timer := time.NewTimer(p.Interval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("Poll loop stopped", "session", p.sessionID)
			return
		case <-restart:
			// A message was just sent: re-arm at the (already reset) interval.
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(p.Interval())
		case <-timer.C:
			p.tick(ctx)
			timer.Reset(p.Interval())
		}
	}
}

// tick performs one fetch and interval adjustment.
// The fetch is bounded by the loop context only; a slow fetch may overlap the
// next tick, which is an accepted race given idempotent reads.
func (p *Poller) tick(ctx context.Context) {
	result, err := p.fetcher.FetchLogs(ctx, p.sessionID)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.Warn("Log fetch failed, backing off", "session", p.sessionID, "error", err)
		p.adjust(0, true)
		return
	}

	p.mu.Lock()
	delta := len(result.Logs) - p.lastLogCount
	p.lastLogCount = len(result.Logs)
	p.mu.Unlock()

	p.adjust(delta, false)
	p.sink(result)
}

// adjust applies the adaptive interval policy for one tick.
//
// While a query is in flight, a burst of new log lines tightens the interval
// toward the thinking floor and silence loosens it toward the thinking
// ceiling. While idle, any activity tightens toward the idle floor and
// silence loosens toward the idle ceiling. Fetch errors loosen toward the
// error ceiling instead of retrying at the same rate.
func (p *Poller) adjust(delta int, fetchErr bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case fetchErr:
		p.interval = min(p.interval+p.opts.step, p.opts.errorCeiling)
	case p.thinking && delta > p.opts.activityThreshold:
		p.interval = max(p.interval-p.opts.step, p.opts.thinkingFloor)
	case p.thinking && delta == 0:
		p.interval = min(p.interval+p.opts.step, p.opts.thinkingCeiling)
	case p.thinking:
		// Low but non-zero activity while thinking: hold steady.
	case delta > 0:
		p.interval = max(p.interval-p.opts.step, p.opts.idleFloor)
	default:
		p.interval = min(p.interval+p.opts.step, p.opts.idleCeiling)
	}
}
