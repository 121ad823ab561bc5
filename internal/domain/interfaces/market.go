package interfaces

import (
	"context"

	market "github.com/banjiubanjiu/Nickle-System/internal/domain/entity/market"
)

// DailyQuery narrows a daily-record lookup to an exchange and an optional
// inclusive date range (YYYY-MM-DD).
type DailyQuery struct {
	Exchange  string
	StartDate string
	EndDate   string
}

// SnapshotSource is the remote collector consumed by the poller. All calls
// are blocking and honor context cancellation; failures are recoverable and
// must never be treated as fatal by callers.
type SnapshotSource interface {
	Health(ctx context.Context) (*market.Health, error)
	Latest(ctx context.Context, exchange string) (*market.Snapshot, error)
	Intraday(ctx context.Context, exchange string, limit int) ([]market.Snapshot, error)
	Daily(ctx context.Context, query DailyQuery) ([]market.DailyRecord, error)
}

// DatasetProvider supplies the statically-known display dataset used as a
// fallback whenever the collector has not delivered a snapshot yet.
type DatasetProvider interface {
	Dataset(exchange string) *market.MarketDataset
	Exchanges() []market.ExchangeOption
}

// YearlySource loads the extracted yearly report slides.
type YearlySource interface {
	YearlySlide(ctx context.Context, slide int) (*market.YearlySlide, error)
}
