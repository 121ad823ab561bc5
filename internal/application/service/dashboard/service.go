// Package dashboard runs the poll sessions that keep the realtime view fed
// with collector snapshots, falling back to the static dataset when the
// collector is unreachable.
package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	projection "github.com/banjiubanjiu/Nickle-System/internal/application/service/projection"
	market "github.com/banjiubanjiu/Nickle-System/internal/domain/entity/market"
	interfaces "github.com/banjiubanjiu/Nickle-System/internal/domain/interfaces"
)

const (
	defaultPollInterval = 30 * time.Second
	minPollInterval     = 5 * time.Second
)

// Sink receives display updates from a poll session. All calls after Start
// returns happen on the session goroutine; a stopped session never calls its
// sink again.
type Sink interface {
	// ApplyFallback replaces the whole view with the static dataset.
	ApplyFallback(dataset *market.MarketDataset)
	// ApplySnapshot applies a live snapshot's metric projection together
	// with the formatted capture time for the footer.
	ApplySnapshot(snap *market.Snapshot, primary, secondary []market.MetricView, lastUpdated string)
}

// Options tunes poll cadence. Zero values use the collector defaults: 30s
// when the health descriptor cannot be fetched, a 5s floor otherwise.
type Options struct {
	DefaultInterval time.Duration
	MinInterval     time.Duration
}

// Service starts and stops poll sessions against a snapshot source.
type Service struct {
	source   interfaces.SnapshotSource
	fallback interfaces.DatasetProvider
	logger   *logrus.Logger
	opts     Options
}

// NewService wires the poller to its snapshot source and fallback provider.
func NewService(source interfaces.SnapshotSource, fallback interfaces.DatasetProvider, logger *logrus.Logger, opts Options) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	if opts.DefaultInterval <= 0 {
		opts.DefaultInterval = defaultPollInterval
	}
	if opts.MinInterval <= 0 {
		opts.MinInterval = minPollInterval
	}
	return &Service{
		source:   source,
		fallback: fallback,
		logger:   logger,
		opts:     opts,
	}
}

// Session is the lifecycle-scoped state of one exchange selection: one
// recurring timer, one cancellation flag, the last snapshot applied.
// lastKnown is touched only by the session goroutine.
type Session struct {
	ID       uuid.UUID
	Exchange string

	cancelled atomic.Bool
	stopOnce  sync.Once
	done      chan struct{}

	lastKnown *market.Snapshot
}

// Cancelled reports whether Stop has been called.
func (s *Session) Cancelled() bool {
	return s.cancelled.Load()
}

// Start applies the static fallback synchronously so the view is never
// blank, then begins polling the collector on its suggested interval. The
// caller owns at most one active session per view and must Stop the previous
// session before starting another.
func (s *Service) Start(ctx context.Context, exchange string, sink Sink) *Session {
	sess := &Session{
		ID:       uuid.New(),
		Exchange: exchange,
		done:     make(chan struct{}),
	}
	sink.ApplyFallback(s.fallback.Dataset(exchange))

	s.logger.WithFields(logrus.Fields{
		"session":  sess.ID,
		"exchange": exchange,
	}).Info("poll session started")

	go s.run(ctx, sess, sink)
	return sess
}

// Stop cancels a session. The flag flips before the timer is released, so an
// in-flight fetch resolving afterwards cannot mutate the view. Stop is
// idempotent and safe on a nil session.
func (s *Service) Stop(sess *Session) {
	if sess == nil {
		return
	}
	sess.cancelled.Store(true)
	sess.stopOnce.Do(func() { close(sess.done) })
}

func (s *Service) run(ctx context.Context, sess *Session, sink Sink) {
	s.pollOnce(ctx, sess, sink)

	interval := s.resolveInterval(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sess.done:
			return
		case <-ticker.C:
			s.pollOnce(ctx, sess, sink)
		}
	}
}

// pollOnce fetches the latest snapshot and applies it. Failures fall back to
// the static dataset only while no snapshot has ever been applied in this
// session; once live data is on screen a transient failure leaves it alone.
func (s *Service) pollOnce(ctx context.Context, sess *Session, sink Sink) {
	if sess.cancelled.Load() {
		return
	}

	snap, err := s.source.Latest(ctx, sess.Exchange)
	if sess.cancelled.Load() {
		return
	}
	if err != nil {
		s.logger.WithError(err).WithField("exchange", sess.Exchange).Warn("fetch latest snapshot failed")
		if sess.lastKnown == nil {
			sink.ApplyFallback(s.fallback.Dataset(sess.Exchange))
		}
		return
	}

	// captured_at must never regress within a session.
	if sess.lastKnown != nil && snap.CapturedAt.Before(sess.lastKnown.CapturedAt) {
		s.logger.WithFields(logrus.Fields{
			"exchange":    sess.Exchange,
			"captured_at": snap.CapturedAt,
			"displayed":   sess.lastKnown.CapturedAt,
		}).Warn("stale snapshot ignored")
		return
	}

	sess.lastKnown = snap
	unit := s.fallback.Dataset(sess.Exchange).PriceUnit
	primary, secondary := projection.Project(snap, unit)
	sink.ApplySnapshot(snap, primary, secondary, projection.LastUpdated(snap))
}

// resolveInterval asks the collector's health descriptor for the suggested
// poll cadence. Failures degrade the interval choice only; snapshot polling
// proceeds regardless.
func (s *Service) resolveInterval(ctx context.Context) time.Duration {
	health, err := s.source.Health(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("health fetch failed, using default poll interval")
		return s.opts.DefaultInterval
	}

	suggested := time.Duration(health.IntradayIntervalSeconds) * time.Second
	if suggested < s.opts.MinInterval {
		return s.opts.MinInterval
	}
	return suggested
}
