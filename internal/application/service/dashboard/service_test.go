package dashboard

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	market "github.com/banjiubanjiu/Nickle-System/internal/domain/entity/market"
	interfaces "github.com/banjiubanjiu/Nickle-System/internal/domain/interfaces"
)

func ptr(v float64) *float64 { return &v }

func snapshotAt(captured time.Time, price float64) *market.Snapshot {
	return &market.Snapshot{
		Exchange:    "shfe",
		Contract:    "NI2511",
		CapturedAt:  captured,
		LatestPrice: ptr(price),
		ChangePct:   ptr(0.31),
	}
}

// fakeSource hands out scripted snapshots and records call counts.
type fakeSource struct {
	mu        sync.Mutex
	snapshots []*market.Snapshot
	errs      []error
	calls     int

	health    *market.Health
	healthErr error
}

func (f *fakeSource) Health(ctx context.Context) (*market.Health, error) {
	if f.healthErr != nil {
		return nil, f.healthErr
	}
	if f.health != nil {
		return f.health, nil
	}
	return &market.Health{Status: "ok"}, nil
}

func (f *fakeSource) Latest(ctx context.Context, exchange string) (*market.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.snapshots) {
		return f.snapshots[i], nil
	}
	return nil, errors.New("no more scripted snapshots")
}

func (f *fakeSource) Intraday(ctx context.Context, exchange string, limit int) ([]market.Snapshot, error) {
	return nil, nil
}

func (f *fakeSource) Daily(ctx context.Context, query interfaces.DailyQuery) ([]market.DailyRecord, error) {
	return nil, nil
}

type fakeProvider struct {
	dataset *market.MarketDataset
}

func (f *fakeProvider) Dataset(exchange string) *market.MarketDataset {
	return f.dataset
}

func (f *fakeProvider) Exchanges() []market.ExchangeOption {
	return []market.ExchangeOption{{Key: "shfe", Label: "上期所"}}
}

type sinkEvent struct {
	fallback    bool
	snap        *market.Snapshot
	lastUpdated string
}

// recordingSink captures sink calls for assertion.
type recordingSink struct {
	mu     sync.Mutex
	events []sinkEvent
}

func (r *recordingSink) ApplyFallback(dataset *market.MarketDataset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, sinkEvent{fallback: true})
}

func (r *recordingSink) ApplySnapshot(snap *market.Snapshot, primary, secondary []market.MetricView, lastUpdated string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, sinkEvent{snap: snap, lastUpdated: lastUpdated})
}

func (r *recordingSink) snapshot() []sinkEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]sinkEvent, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recordingSink) waitFor(t *testing.T, cond func([]sinkEvent) bool) []sinkEvent {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		events := r.snapshot()
		if cond(events) {
			return events
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline, events: %+v", r.snapshot())
	return nil
}

func newTestService(source *fakeSource) *Service {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewService(source, &fakeProvider{dataset: &market.MarketDataset{PriceUnit: "元/吨"}}, logger, Options{
		DefaultInterval: 20 * time.Millisecond,
		MinInterval:     10 * time.Millisecond,
	})
}

func TestStartAppliesFallbackSynchronously(t *testing.T) {
	source := &fakeSource{errs: []error{errors.New("collector down")}}
	svc := newTestService(source)
	sink := &recordingSink{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := svc.Start(ctx, "shfe", sink)
	defer svc.Stop(sess)

	// The fallback lands before Start returns, never leaving a blank view.
	events := sink.snapshot()
	require.NotEmpty(t, events)
	assert.True(t, events[0].fallback)
}

func TestPollAppliesLiveSnapshot(t *testing.T) {
	captured := time.Date(2025, 11, 3, 6, 30, 0, 0, time.UTC)
	source := &fakeSource{snapshots: []*market.Snapshot{snapshotAt(captured, 18527.09)}}
	svc := newTestService(source)
	sink := &recordingSink{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := svc.Start(ctx, "shfe", sink)
	defer svc.Stop(sess)

	events := sink.waitFor(t, func(events []sinkEvent) bool {
		for _, e := range events {
			if e.snap != nil {
				return true
			}
		}
		return false
	})

	var live *sinkEvent
	for i := range events {
		if events[i].snap != nil {
			live = &events[i]
			break
		}
	}
	require.NotNil(t, live)
	assert.Equal(t, 18527.09, *live.snap.LatestPrice)
	assert.Equal(t, "2025/11/03 14:30:00", live.lastUpdated)
}

func TestFetchFailureAfterLiveDataLeavesViewAlone(t *testing.T) {
	captured := time.Date(2025, 11, 3, 6, 30, 0, 0, time.UTC)
	source := &fakeSource{
		snapshots: []*market.Snapshot{snapshotAt(captured, 18527.09), nil, nil, nil},
		errs:      []error{nil, errors.New("timeout"), errors.New("timeout"), errors.New("timeout")},
	}
	svc := newTestService(source)
	sink := &recordingSink{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := svc.Start(ctx, "shfe", sink)
	defer svc.Stop(sess)

	sink.waitFor(t, func(events []sinkEvent) bool {
		source.mu.Lock()
		defer source.mu.Unlock()
		return source.calls >= 3
	})

	fallbacks := 0
	for _, e := range sink.snapshot() {
		if e.fallback {
			fallbacks++
		}
	}
	// Only the synchronous apply from Start; failures after live data do not
	// re-apply the fallback.
	assert.Equal(t, 1, fallbacks)
}

func TestStaleSnapshotIgnored(t *testing.T) {
	newer := time.Date(2025, 11, 3, 6, 30, 0, 0, time.UTC)
	older := newer.Add(-time.Minute)
	source := &fakeSource{snapshots: []*market.Snapshot{
		snapshotAt(newer, 18527.09),
		snapshotAt(older, 18400),
		snapshotAt(older, 18400),
	}}
	svc := newTestService(source)
	sink := &recordingSink{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := svc.Start(ctx, "shfe", sink)
	defer svc.Stop(sess)

	sink.waitFor(t, func(events []sinkEvent) bool {
		source.mu.Lock()
		defer source.mu.Unlock()
		return source.calls >= 3
	})

	for _, e := range sink.snapshot() {
		if e.snap != nil {
			assert.Equal(t, newer, e.snap.CapturedAt, "regressed capture time must not reach the sink")
		}
	}
}

func TestStopPreventsFurtherSinkCalls(t *testing.T) {
	captured := time.Date(2025, 11, 3, 6, 30, 0, 0, time.UTC)
	snaps := make([]*market.Snapshot, 50)
	for i := range snaps {
		snaps[i] = snapshotAt(captured.Add(time.Duration(i)*time.Second), 18500)
	}
	source := &fakeSource{snapshots: snaps}
	svc := newTestService(source)
	sink := &recordingSink{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := svc.Start(ctx, "shfe", sink)
	sink.waitFor(t, func(events []sinkEvent) bool {
		return len(events) >= 2
	})

	svc.Stop(sess)
	assert.True(t, sess.Cancelled())

	settled := len(sink.snapshot())
	time.Sleep(100 * time.Millisecond)
	assert.LessOrEqual(t, len(sink.snapshot()), settled+1,
		"at most one in-flight apply may land after Stop")

	final := len(sink.snapshot())
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, final, len(sink.snapshot()), "a stopped session stays silent")
}

func TestStopIsIdempotentAndNilSafe(t *testing.T) {
	source := &fakeSource{errs: []error{errors.New("down")}}
	svc := newTestService(source)

	svc.Stop(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sess := svc.Start(ctx, "shfe", &recordingSink{})
	svc.Stop(sess)
	svc.Stop(sess)
	assert.True(t, sess.Cancelled())
}

func TestResolveIntervalHonorsFloorAndDefault(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	provider := &fakeProvider{dataset: &market.MarketDataset{PriceUnit: "元/吨"}}
	opts := Options{DefaultInterval: 30 * time.Second, MinInterval: 5 * time.Second}

	ctx := context.Background()

	svc := NewService(&fakeSource{health: &market.Health{IntradayIntervalSeconds: 60}}, provider, logger, opts)
	assert.Equal(t, 60*time.Second, svc.resolveInterval(ctx))

	svc = NewService(&fakeSource{health: &market.Health{IntradayIntervalSeconds: 1}}, provider, logger, opts)
	assert.Equal(t, 5*time.Second, svc.resolveInterval(ctx))

	svc = NewService(&fakeSource{healthErr: errors.New("unreachable")}, provider, logger, opts)
	assert.Equal(t, 30*time.Second, svc.resolveInterval(ctx))
}

func TestSessionsGetDistinctIDs(t *testing.T) {
	source := &fakeSource{errs: []error{errors.New("down"), errors.New("down")}}
	svc := newTestService(source)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := svc.Start(ctx, "shfe", &recordingSink{})
	b := svc.Start(ctx, "lme", &recordingSink{})
	defer svc.Stop(a)
	defer svc.Stop(b)

	assert.NotEqual(t, a.ID, b.ID)
}
