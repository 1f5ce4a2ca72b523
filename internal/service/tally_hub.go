package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"team-vote/internal/domain"
	"team-vote/internal/repository"

	"go.uber.org/zap"
)

// DefaultTallyInterval is how often live results are recomputed
const DefaultTallyInterval = 2 * time.Second

// ErrHubStopped is returned by Subscribe once the hub has been stopped
var ErrHubStopped = errors.New("tally hub stopped")

// Subscription receives live tallies until it is closed. C is closed when
// the subscription ends, either through Close or because the hub stopped.
type Subscription struct {
	C <-chan []domain.TeamTally

	ch     chan []domain.TeamTally
	hub    *TallyHub
	id     uint64
	closed bool
}

// Close unregisters the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	s.hub.closeLocked(s)
}

// offer replaces whatever is waiting in the mailbox with tally. Callers
// hold hub.mu.
func (s *Subscription) offer(tally []domain.TeamTally) {
	if s.closed {
		return
	}
	select {
	case s.ch <- tally:
		return
	default:
	}
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- tally:
	default:
	}
}

// TallyHub recomputes per-team vote counts on a single ticker and fans the
// result out to every subscriber.
type TallyHub struct {
	teams    repository.TeamRepository
	cache    *CacheService
	logger   *zap.Logger
	interval time.Duration

	mu        sync.Mutex
	subs      map[uint64]*Subscription
	nextID    uint64
	ticker    *time.Ticker
	stop      chan struct{}
	done      chan struct{}
	cancel    context.CancelFunc
	isRunning bool
	stopped   bool
}

// NewTallyHub creates a new hub. A non-positive interval uses
// DefaultTallyInterval.
func NewTallyHub(teams repository.TeamRepository, cache *CacheService, logger *zap.Logger, interval time.Duration) *TallyHub {
	if interval <= 0 {
		interval = DefaultTallyInterval
	}
	return &TallyHub{
		teams:    teams,
		cache:    cache,
		logger:   logger,
		interval: interval,
		subs:     make(map[uint64]*Subscription),
	}
}

var _ TallyBroadcaster = (*TallyHub)(nil)

// Start begins the periodic tally loop
func (h *TallyHub) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		return ErrHubStopped
	}
	if h.isRunning {
		return nil
	}

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	h.cancel = cancel
	h.ticker = time.NewTicker(h.interval)
	h.stop = make(chan struct{})
	h.done = make(chan struct{})
	go h.run(loopCtx)

	h.isRunning = true
	h.logger.Info("Tally hub started", zap.Duration("interval", h.interval))
	return nil
}

// Stop ends the loop and closes every open subscription
func (h *TallyHub) Stop(ctx context.Context) error {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return nil
	}
	h.stopped = true

	wasRunning := h.isRunning
	if wasRunning {
		h.ticker.Stop()
		close(h.stop)
		h.cancel()
		h.isRunning = false
	}
	h.mu.Unlock()

	var err error
	if wasRunning {
		select {
		case <-h.done:
		case <-ctx.Done():
			err = fmt.Errorf("tally hub did not stop in time: %w", ctx.Err())
		}
	}

	h.mu.Lock()
	for _, sub := range h.subs {
		h.closeLocked(sub)
	}
	h.mu.Unlock()

	h.logger.Info("Tally hub stopped")
	return err
}

// Subscribe registers a listener and hands it a freshly computed tally.
func (h *TallyHub) Subscribe(ctx context.Context) (*Subscription, error) {
	tally, err := h.teams.ListTallies(ctx)
	if err != nil {
		cached, ok := h.cache.GetTally(ctx)
		if !ok {
			return nil, fmt.Errorf("failed to compute tally: %w", err)
		}
		h.logger.Warn("Serving cached tally to new subscriber", zap.Error(err))
		tally = cached
	}

	ch := make(chan []domain.TeamTally, 1)
	sub := &Subscription{C: ch, ch: ch, hub: h}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		return nil, ErrHubStopped
	}

	h.nextID++
	sub.id = h.nextID
	h.subs[sub.id] = sub
	sub.offer(tally)

	h.logger.Debug("Tally subscriber added", zap.Int("subscribers", len(h.subs)))
	return sub, nil
}

// Subscribers returns the number of open subscriptions
func (h *TallyHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *TallyHub) run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-h.ticker.C:
			h.tick(ctx)
		case <-h.stop:
			h.logger.Debug("Tally loop stopped")
			return
		}
	}
}

// tick recomputes the tally and offers it to the subscribers that existed
// when the query started. Anyone who subscribed later already holds a
// snapshot at least as new, and must never be handed an older one.
func (h *TallyHub) tick(ctx context.Context) {
	h.mu.Lock()
	subscribers, newest := len(h.subs), h.nextID
	h.mu.Unlock()

	if subscribers == 0 {
		return
	}

	tally, err := h.teams.ListTallies(ctx)
	if err != nil {
		if ctx.Err() == nil {
			h.logger.Error("Failed to compute live tally", zap.Error(err))
		}
		return
	}

	h.cache.SetTally(ctx, tally)

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, sub := range h.subs {
		if id <= newest {
			sub.offer(tally)
		}
	}
}

func (h *TallyHub) closeLocked(sub *Subscription) {
	if sub.closed {
		return
	}
	sub.closed = true
	delete(h.subs, sub.id)
	close(sub.ch)
}
