package market

import "time"

// Snapshot is one backend-reported observation of a market's current state
// as returned by /api/v1/dashboard/latest and /api/v1/dashboard/intraday.
//
// Numeric fields are pointers because the collector reports them as nullable:
// an absent value means "not available" and must render as a placeholder,
// never as zero.
type Snapshot struct {
	ID             int64     `json:"id"`
	Exchange       string    `json:"exchange"`
	Contract       string    `json:"contract"`
	CapturedAt     time.Time `json:"captured_at"`
	QuoteDate      *string   `json:"quote_date"`
	LatestPrice    *float64  `json:"latest_price"`
	Open           *float64  `json:"open"`
	High           *float64  `json:"high"`
	Low            *float64  `json:"low"`
	Close          *float64  `json:"close"`
	Settlement     *float64  `json:"settlement"`
	PrevSettlement *float64  `json:"prev_settlement"`
	Volume         *float64  `json:"volume"`
	OpenInterest   *float64  `json:"open_interest"`
	Bid            *float64  `json:"bid"`
	Ask            *float64  `json:"ask"`
	Change         *float64  `json:"change"`
	ChangePct      *float64  `json:"change_pct"`
	TickTime       *string   `json:"tick_time"`
	ElapsedSeconds *float64  `json:"elapsed_seconds"`
}

// DailyRecord is one settled trading day as returned by /api/v1/dashboard/daily.
type DailyRecord struct {
	ID             int64    `json:"id"`
	Exchange       string   `json:"exchange"`
	Contract       string   `json:"contract"`
	TradeDate      string   `json:"trade_date"`
	Open           *float64 `json:"open"`
	High           *float64 `json:"high"`
	Low            *float64 `json:"low"`
	Close          *float64 `json:"close"`
	Settlement     *float64 `json:"settlement"`
	PrevSettlement *float64 `json:"prev_settlement"`
	Change         *float64 `json:"change"`
	ChangePct      *float64 `json:"change_pct"`
	Volume         *float64 `json:"volume"`
	OpenInterest   *float64 `json:"open_interest"`
	ElapsedSeconds *float64 `json:"elapsed_seconds"`
}

// Health mirrors the collector's /health readiness payload. The intraday
// interval is the backend's suggested polling cadence in seconds.
type Health struct {
	Status                  string  `json:"status"`
	Database                string  `json:"database"`
	LatestLMESnapshot       *string `json:"latest_lme_snapshot"`
	IntradayIntervalSeconds int     `json:"intraday_interval_seconds"`
	RetentionHours          int     `json:"retention_hours"`
	Timestamp               string  `json:"timestamp"`
}
