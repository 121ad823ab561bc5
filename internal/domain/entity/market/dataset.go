package market

// DatasetMeta carries the dashboard header fields for one market.
type DatasetMeta struct {
	Title       string `json:"title"`
	Exchange    string `json:"exchange"`
	Contract    string `json:"contract"`
	LastUpdated string `json:"lastUpdated"`
}

// ContractOption is one selectable contract under an exchange.
type ContractOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ExchangeOption is one selectable exchange with its contracts.
type ExchangeOption struct {
	Key       string           `json:"key"`
	Label     string           `json:"label"`
	Contracts []ContractOption `json:"contracts"`
}

// MarketDataset is the full display payload for one exchange selection:
// candles, derived series, depth, tape and pre-formatted summary metrics.
// It is replaced wholesale when the dataset regenerates or a new exchange is
// selected.
type MarketDataset struct {
	Meta                 DatasetMeta      `json:"meta"`
	Contracts            []ContractOption `json:"contracts"`
	PriceUnit            string           `json:"priceUnit"`
	SummaryMetrics       []MetricView     `json:"summaryMetrics"`
	OrderBook            OrderBook        `json:"orderBook"`
	TimelineCandles      []Candle         `json:"timelineCandles"`
	TimelineVisibleRange *VisibleRange    `json:"timelineVisibleRange,omitempty"`
	PriceSeries          []PricePoint     `json:"priceSeries"`
	VolumeSeries         []VolumePoint    `json:"volumeSeries"`
	SessionStats         []MetricView     `json:"sessionStats"`
	Trades               []TradeRecord    `json:"trades"`
}
