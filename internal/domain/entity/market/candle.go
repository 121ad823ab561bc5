package market

import "time"

// Candle represents one OHLC bar for a fixed time bucket. Time is the bucket
// start and is unique and ascending within a series.
type Candle struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Unix returns the bucket start as a unix timestamp in seconds, the axis
// domain used by the chart viewport.
func (c Candle) Unix() int64 {
	return c.Time.Unix()
}

// VisibleRange is the time-axis sub-interval currently rendered in a chart,
// expressed as unix seconds with From < To.
type VisibleRange struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// Width returns the range span in seconds.
func (r VisibleRange) Width() int64 {
	return r.To - r.From
}

// PricePoint is one sample of a labelled secondary line/area series.
type PricePoint struct {
	Time  string  `json:"time"`
	Value float64 `json:"value"`
}

// VolumePoint is one sample of the paired volume/open-interest bar series.
type VolumePoint struct {
	Time         string `json:"time"`
	Volume       int64  `json:"volume"`
	OpenInterest int64  `json:"openInterest"`
}
