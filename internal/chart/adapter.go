package chart

import (
	market "github.com/banjiubanjiu/Nickle-System/internal/domain/entity/market"
)

// CandlePoint is the OHLC series representation understood by a renderer.
// Volume is deliberately stripped: it belongs to the histogram series, not
// the candlestick series.
type CandlePoint struct {
	Time  int64
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// HistogramPoint is one volume bar. Rising selects the up/down bar color.
type HistogramPoint struct {
	Time   int64
	Value  float64
	Rising bool
}

// Renderer is the charting engine the adapter feeds: full series
// replacements followed by explicit visible-range applications.
type Renderer interface {
	SetCandles([]CandlePoint)
	SetVolume([]HistogramPoint)
	ApplyVisibleRange(market.VisibleRange)
}

// Adapter binds market candles into renderer series and keeps the viewport
// clamped across data replacements and user navigation.
type Adapter struct {
	renderer      Renderer
	viewport      *Viewport
	defaultPoints int
}

// NewAdapter wires a renderer to a fresh viewport. defaultPoints is the
// most-recent-N fallback window used when a dataset carries no default
// visible range.
func NewAdapter(renderer Renderer, defaultPoints int) *Adapter {
	if defaultPoints < 1 {
		defaultPoints = DefaultVisiblePoints
	}
	return &Adapter{
		renderer:      renderer,
		viewport:      NewViewport(),
		defaultPoints: defaultPoints,
	}
}

// Viewport exposes the clamp engine owned by this adapter.
func (a *Adapter) Viewport() *Viewport {
	return a.viewport
}

// SetData replaces the bound series wholesale, rebinding the viewport and
// re-anchoring the chart to the most recent data.
func (a *Adapter) SetData(candles []market.Candle, defaultRange *market.VisibleRange) {
	a.renderer.SetCandles(CandleSeries(candles))
	a.renderer.SetVolume(VolumeSeries(candles))
	if rng, ok := a.viewport.SetData(candles, defaultRange, a.defaultPoints); ok {
		a.renderer.ApplyVisibleRange(rng)
	}
}

// Navigate feeds a user-driven range change through the clamp engine and
// applies the effective range: the correction when one is issued, the
// requested range otherwise.
func (a *Adapter) Navigate(r market.VisibleRange) market.VisibleRange {
	effective, _ := a.viewport.ObserveRange(r)
	a.renderer.ApplyVisibleRange(effective)
	return effective
}

// CandleSeries converts candles into the renderer's OHLC representation.
func CandleSeries(candles []market.Candle) []CandlePoint {
	points := make([]CandlePoint, len(candles))
	for i, c := range candles {
		points[i] = CandlePoint{
			Time:  c.Unix(),
			Open:  c.Open,
			High:  c.High,
			Low:   c.Low,
			Close: c.Close,
		}
	}
	return points
}

// VolumeSeries converts candles into histogram bars colored by direction.
func VolumeSeries(candles []market.Candle) []HistogramPoint {
	points := make([]HistogramPoint, len(candles))
	for i, c := range candles {
		points[i] = HistogramPoint{
			Time:   c.Unix(),
			Value:  c.Volume,
			Rising: c.Close >= c.Open,
		}
	}
	return points
}

// Downsample collapses a high-frequency series into fixed-size averaged
// buckets, labelling each bucket with its last sample's time. A trailing
// partial bucket is averaged over the samples it holds. Bucket sizes below
// two return a copy of the input.
func Downsample(points []market.PricePoint, bucket int) []market.PricePoint {
	if bucket < 2 || len(points) == 0 {
		out := make([]market.PricePoint, len(points))
		copy(out, points)
		return out
	}

	out := make([]market.PricePoint, 0, (len(points)+bucket-1)/bucket)
	for start := 0; start < len(points); start += bucket {
		end := start + bucket
		if end > len(points) {
			end = len(points)
		}
		sum := 0.0
		for _, p := range points[start:end] {
			sum += p.Value
		}
		out = append(out, market.PricePoint{
			Time:  points[end-1].Time,
			Value: sum / float64(end-start),
		})
	}
	return out
}

// PriceScale computes nice-number axis boundaries from a secondary series.
func PriceScale(points []market.PricePoint, targetTicks int) Scale {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	return NiceScale(values, targetTicks)
}
