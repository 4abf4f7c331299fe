package ticker

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"trading_journal/models"
)

// fakeScheduler records callbacks and runs them only when the test says so.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	delay   time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped && !t.fired
	t.stopped = true
	return was
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{delay: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// pending returns the timers that neither fired nor were stopped.
func (s *fakeScheduler) pending() []*fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// fire runs the oldest pending callback.
func (s *fakeScheduler) fire(t *testing.T) *fakeTimer {
	t.Helper()
	p := s.pending()
	if len(p) == 0 {
		t.Fatal("no pending timer")
	}
	timer := p[0]
	timer.fired = true
	timer.f()
	return timer
}

type result struct {
	tickers []models.Ticker
	err     error
}

// fakeSource returns queued results in order.
type fakeSource struct {
	mu      sync.Mutex
	results []result
	calls   int
	symbols []string
}

func (s *fakeSource) push(tickers []models.Ticker, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result{tickers, err})
}

func (s *fakeSource) FetchTickers(_ context.Context, symbols []string) ([]models.Ticker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.symbols = symbols
	if len(s.results) == 0 {
		return nil, errors.New("no result queued")
	}
	r := s.results[0]
	s.results = s.results[1:]
	return r.tickers, r.err
}

var symbols = []string{"BTCUSDT", "ETHUSDT", "XRPUSDT"}

func tk(symbol, price string) models.Ticker {
	return models.Ticker{Symbol: symbol, LastPrice: price, PriceChangePercent: "1.00"}
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestSyncClient_StartFetchesImmediately(t *testing.T) {
	sched := &fakeScheduler{}
	src := &fakeSource{}
	src.push([]models.Ticker{tk("XRPUSDT", "0.5"), tk("BTCUSDT", "64000"), tk("ETHUSDT", "3000")}, nil)

	now := time.Date(2024, 4, 5, 13, 14, 15, 0, time.UTC)
	c := NewSyncClient(src, symbols, WithScheduler(sched), WithClock(fixedClock(now)))

	if got := c.Snapshot().State; got != StateIdle {
		t.Errorf("State before Start = %v, want idle", got)
	}

	c.Start(context.Background())
	snap := c.Snapshot()
	if snap.State != StateFetching || !snap.Loading {
		t.Errorf("after Start: state %v loading %v, want fetching/true", snap.State, snap.Loading)
	}

	first := sched.fire(t)
	if first.delay != 0 {
		t.Errorf("first poll delay = %v, want 0", first.delay)
	}

	snap = c.Snapshot()
	if snap.State != StateReady || snap.Loading || snap.HasError() {
		t.Errorf("snapshot = %+v, want ready without error", snap)
	}
	var order []string
	for _, tk := range snap.Tickers {
		order = append(order, tk.Symbol)
	}
	if !reflect.DeepEqual(order, symbols) {
		t.Errorf("order = %v, want %v", order, symbols)
	}
	if snap.LastUpdated != "13:14:15" {
		t.Errorf("LastUpdated = %q, want 13:14:15", snap.LastUpdated)
	}
	if !reflect.DeepEqual(src.symbols, symbols) {
		t.Errorf("requested symbols = %v, want %v", src.symbols, symbols)
	}

	p := sched.pending()
	if len(p) != 1 || p[0].delay != DefaultInterval {
		t.Fatalf("pending = %d timers, want one at %v", len(p), DefaultInterval)
	}
}

func TestSyncClient_FailureKeepsSnapshot(t *testing.T) {
	sched := &fakeScheduler{}
	src := &fakeSource{}
	clock := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	c := NewSyncClient(src, symbols, WithScheduler(sched), WithClock(func() time.Time { return clock }))

	src.push([]models.Ticker{tk("BTCUSDT", "1"), tk("ETHUSDT", "2")}, nil)
	c.Start(context.Background())
	sched.fire(t)
	good := c.Snapshot()

	clock = clock.Add(time.Minute)
	src.push(nil, errors.New("connection reset"))
	sched.fire(t)

	failed := c.Snapshot()
	if failed.State != StateError {
		t.Errorf("State = %v, want error", failed.State)
	}
	if failed.Error != FetchErrorMessage {
		t.Errorf("Error = %q, want %q", failed.Error, FetchErrorMessage)
	}
	if !reflect.DeepEqual(failed.Tickers, good.Tickers) {
		t.Errorf("Tickers changed on failure: %+v", failed.Tickers)
	}
	if failed.LastUpdated != good.LastUpdated || !failed.LastUpdatedAt.Equal(good.LastUpdatedAt) {
		t.Errorf("LastUpdated moved on failure: %q", failed.LastUpdated)
	}
	if len(sched.pending()) != 1 {
		t.Fatalf("failure did not schedule a retry")
	}

	clock = clock.Add(time.Minute)
	src.push([]models.Ticker{tk("XRPUSDT", "9"), tk("ETHUSDT", "8"), tk("BTCUSDT", "7")}, nil)
	sched.fire(t)

	recovered := c.Snapshot()
	if recovered.HasError() || recovered.State != StateReady {
		t.Errorf("recovered = %+v, want ready without error", recovered)
	}
	want := []models.Ticker{tk("BTCUSDT", "7"), tk("ETHUSDT", "8"), tk("XRPUSDT", "9")}
	if !reflect.DeepEqual(recovered.Tickers, want) {
		t.Errorf("Tickers = %+v, want %+v", recovered.Tickers, want)
	}
	if recovered.LastUpdated != "10:02:00" {
		t.Errorf("LastUpdated = %q, want 10:02:00", recovered.LastUpdated)
	}
}

func TestSyncClient_FailureBeforeFirstSuccess(t *testing.T) {
	sched := &fakeScheduler{}
	src := &fakeSource{}
	src.push(nil, errors.New("boom"))

	c := NewSyncClient(src, symbols, WithScheduler(sched))
	c.Start(context.Background())
	sched.fire(t)

	snap := c.Snapshot()
	if len(snap.Tickers) != 0 || snap.Error != FetchErrorMessage || snap.LastUpdated != "" {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestSyncClient_KeepsPollingAfterFailures(t *testing.T) {
	sched := &fakeScheduler{}
	src := &fakeSource{}
	c := NewSyncClient(src, symbols, WithScheduler(sched), WithInterval(5*time.Second))
	c.Start(context.Background())

	for i := 0; i < 5; i++ {
		sched.fire(t)
	}
	if src.calls != 5 {
		t.Errorf("calls = %d, want 5", src.calls)
	}
	p := sched.pending()
	if len(p) != 1 || p[0].delay != 5*time.Second {
		t.Errorf("pending = %+v, want one retry after 5s", p)
	}
}

func TestSyncClient_UnknownSymbolsGoLast(t *testing.T) {
	sched := &fakeScheduler{}
	src := &fakeSource{}
	src.push([]models.Ticker{tk("ZZZUSDT", "1"), tk("ETHUSDT", "2"), tk("BTCUSDT", "3")}, nil)

	c := NewSyncClient(src, symbols, WithScheduler(sched))
	c.Start(context.Background())
	sched.fire(t)

	var order []string
	for _, tk := range c.Snapshot().Tickers {
		order = append(order, tk.Symbol)
	}
	if want := []string{"BTCUSDT", "ETHUSDT", "ZZZUSDT"}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestSyncClient_StartTwice(t *testing.T) {
	sched := &fakeScheduler{}
	c := NewSyncClient(&fakeSource{}, symbols, WithScheduler(sched))

	c.Start(context.Background())
	c.Start(context.Background())

	if n := len(sched.pending()); n != 1 {
		t.Errorf("pending timers = %d, want 1", n)
	}
}

func TestSyncClient_StopCancelsSchedule(t *testing.T) {
	sched := &fakeScheduler{}
	src := &fakeSource{}
	src.push([]models.Ticker{tk("BTCUSDT", "1")}, nil)

	c := NewSyncClient(src, symbols, WithScheduler(sched))
	c.Start(context.Background())
	sched.fire(t)
	before := c.Snapshot()

	scheduled := sched.pending()
	c.Stop()

	if len(sched.pending()) != 0 {
		t.Errorf("Stop left a pending timer")
	}

	// A callback that slipped past Stop must not touch state.
	src.push([]models.Ticker{tk("ETHUSDT", "2")}, nil)
	scheduled[0].f()

	after := c.Snapshot()
	if after.State != StateStopped {
		t.Errorf("State = %v, want stopped", after.State)
	}
	if !reflect.DeepEqual(after.Tickers, before.Tickers) || after.LastUpdated != before.LastUpdated || after.Error != before.Error {
		t.Errorf("state changed after Stop: %+v", after)
	}
	if src.calls != 1 {
		t.Errorf("calls = %d, want 1", src.calls)
	}

	c.Start(context.Background())
	if len(sched.pending()) != 0 {
		t.Error("Start after Stop scheduled a poll")
	}
}

// blockingSource blocks every fetch until release is closed.
type blockingSource struct {
	entered chan struct{}
	release chan struct{}
	ctxErr  atomic.Value
}

func (s *blockingSource) FetchTickers(ctx context.Context, _ []string) ([]models.Ticker, error) {
	close(s.entered)
	<-s.release
	if err := ctx.Err(); err != nil {
		s.ctxErr.Store(err)
	}
	return []models.Ticker{tk("BTCUSDT", "123")}, nil
}

func TestSyncClient_StopDiscardsInFlight(t *testing.T) {
	sched := &fakeScheduler{}
	src := &blockingSource{entered: make(chan struct{}), release: make(chan struct{})}
	c := NewSyncClient(src, symbols, WithScheduler(sched))
	c.Start(context.Background())

	timer := sched.pending()[0]
	timer.fired = true
	done := make(chan struct{})
	go func() {
		timer.f()
		close(done)
	}()

	<-src.entered
	c.Stop()
	before := c.Snapshot()
	close(src.release)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poll did not return")
	}

	after := c.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("in-flight result mutated state: before %+v after %+v", before, after)
	}
	if len(after.Tickers) != 0 {
		t.Errorf("Tickers = %+v, want none", after.Tickers)
	}
	if src.ctxErr.Load() == nil {
		t.Error("in-flight request context was not canceled")
	}
	if len(sched.pending()) != 0 {
		t.Error("discarded poll scheduled another one")
	}
}

func TestSyncClient_OnUpdate(t *testing.T) {
	sched := &fakeScheduler{}
	src := &fakeSource{}
	src.push([]models.Ticker{tk("BTCUSDT", "1")}, nil)

	var got []Snapshot
	c := NewSyncClient(src, symbols, WithScheduler(sched), WithOnUpdate(func(s Snapshot) {
		got = append(got, s)
	}))
	c.Start(context.Background())
	sched.fire(t)
	sched.fire(t)

	if len(got) != 2 {
		t.Fatalf("updates = %d, want 2", len(got))
	}
	if got[0].State != StateReady || got[1].State != StateError {
		t.Errorf("states = %v, %v", got[0].State, got[1].State)
	}
}

// countingSource counts calls and reports each on a channel.
type countingSource struct {
	calls chan struct{}
}

func (s *countingSource) FetchTickers(context.Context, []string) ([]models.Ticker, error) {
	s.calls <- struct{}{}
	return []models.Ticker{tk("BTCUSDT", "1")}, nil
}

func TestSyncClient_RealScheduler(t *testing.T) {
	src := &countingSource{calls: make(chan struct{}, 16)}
	c := NewSyncClient(src, symbols, WithInterval(10*time.Millisecond))
	c.Start(context.Background())
	defer c.Stop()

	for i := 0; i < 3; i++ {
		select {
		case <-src.calls:
		case <-time.After(2 * time.Second):
			t.Fatalf("poll %d did not happen", i+1)
		}
	}
}

func TestState_String(t *testing.T) {
	if StateReady.String() != "ready" || State(42).String() != "unknown" {
		t.Errorf("unexpected State strings")
	}
}
