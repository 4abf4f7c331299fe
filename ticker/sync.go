package ticker

import (
	"context"
	"sort"
	"sync"
	"time"

	"trading_journal/interfaces"
	"trading_journal/logger"
	"trading_journal/models"
)

// FetchErrorMessage is shown instead of the transport error when a poll fails.
const FetchErrorMessage = "Failed to load prices. Retrying shortly."

// DefaultInterval is the delay between the end of a poll and the next one.
const DefaultInterval = 30 * time.Second

// State is the position of the client in its polling cycle.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateReady
	StateError
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent copy of the client's observable state.
type Snapshot struct {
	Tickers       []models.Ticker
	State         State
	Loading       bool
	Error         string // empty when the last poll succeeded
	LastUpdated   string // display time of the last successful poll
	LastUpdatedAt time.Time
}

// HasError reports whether the last poll failed.
func (s Snapshot) HasError() bool {
	return s.Error != ""
}

// Option configures a SyncClient.
type Option func(*SyncClient)

// WithInterval sets the delay between polls.
func WithInterval(d time.Duration) Option {
	return func(c *SyncClient) { c.interval = d }
}

// WithScheduler replaces the runtime timer scheduler.
func WithScheduler(s Scheduler) Option {
	return func(c *SyncClient) { c.scheduler = s }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *SyncClient) { c.now = now }
}

// WithTimeLayout sets how LastUpdated is formatted.
func WithTimeLayout(layout string) Option {
	return func(c *SyncClient) { c.timeLayout = layout }
}

// WithOnUpdate registers a callback run after every completed poll, outside
// the client's lock.
func WithOnUpdate(fn func(Snapshot)) Option {
	return func(c *SyncClient) { c.onUpdate = fn }
}

// SyncClient keeps the latest 24h quotes of a fixed symbol list by polling
// a QuoteSource. A poll is scheduled only after the previous one completed,
// so a slow response delays the next poll instead of stacking them.
type SyncClient struct {
	source     interfaces.QuoteSource
	symbols    []string
	rank       map[string]int
	interval   time.Duration
	scheduler  Scheduler
	now        func() time.Time
	timeLayout string
	onUpdate   func(Snapshot)

	mu            sync.Mutex
	state         State
	tickers       []models.Ticker
	loading       bool
	errMsg        string
	lastUpdated   string
	lastUpdatedAt time.Time
	started       bool
	stopped       bool
	timer         Timer
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewSyncClient creates a client for symbols, in that display order.
func NewSyncClient(source interfaces.QuoteSource, symbols []string, opts ...Option) *SyncClient {
	c := &SyncClient{
		source:     source,
		symbols:    append([]string(nil), symbols...),
		rank:       make(map[string]int, len(symbols)),
		interval:   DefaultInterval,
		scheduler:  RealScheduler,
		now:        time.Now,
		timeLayout: "15:04:05",
	}
	for i, s := range c.symbols {
		c.rank[s] = i
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start fetches immediately and keeps polling until Stop. Only the first
// call on a client has an effect.
func (c *SyncClient) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started || c.stopped {
		return
	}
	c.started = true
	c.state = StateFetching
	c.loading = true
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.timer = c.scheduler.AfterFunc(0, c.poll)

	logger.Infof("Ticker sync started for %d symbols every %s", len(c.symbols), c.interval)
}

// Stop cancels the schedule and any in-flight request. Once Stop returns the
// observable state no longer changes.
func (c *SyncClient) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}
	c.stopped = true
	c.state = StateStopped
	c.loading = false
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancel != nil {
		c.cancel()
	}
	logger.Info("Ticker sync stopped")
}

// Snapshot returns a copy of the current state.
func (c *SyncClient) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *SyncClient) snapshotLocked() Snapshot {
	return Snapshot{
		Tickers:       append([]models.Ticker(nil), c.tickers...),
		State:         c.state,
		Loading:       c.loading,
		Error:         c.errMsg,
		LastUpdated:   c.lastUpdated,
		LastUpdatedAt: c.lastUpdatedAt,
	}
}

func (c *SyncClient) poll() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.state = StateFetching
	c.loading = true
	ctx := c.ctx
	c.mu.Unlock()

	tickers, err := c.source.FetchTickers(ctx, c.symbols)

	c.mu.Lock()
	if c.stopped {
		// Result of a poll that outlived Stop.
		c.mu.Unlock()
		return
	}

	if err != nil {
		logger.Warnf("Failed to fetch ticker data: %v", err)
		c.state = StateError
		c.errMsg = FetchErrorMessage
	} else {
		c.tickers = c.ordered(tickers)
		c.state = StateReady
		c.errMsg = ""
		c.lastUpdatedAt = c.now()
		c.lastUpdated = c.lastUpdatedAt.Format(c.timeLayout)
		logger.Debugf("Fetched %d tickers", len(c.tickers))
	}
	c.loading = false
	c.timer = c.scheduler.AfterFunc(c.interval, c.poll)

	snap := c.snapshotLocked()
	onUpdate := c.onUpdate
	c.mu.Unlock()

	if onUpdate != nil {
		onUpdate(snap)
	}
}

// ordered sorts tickers into the configured symbol order. Symbols the client
// did not ask for go last, in upstream order.
func (c *SyncClient) ordered(tickers []models.Ticker) []models.Ticker {
	out := append([]models.Ticker(nil), tickers...)
	rankOf := func(t models.Ticker) int {
		if r, ok := c.rank[t.Symbol]; ok {
			return r
		}
		return len(c.rank)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rankOf(out[i]) < rankOf(out[j])
	})
	return out
}
