package chart

import (
	market "github.com/banjiubanjiu/Nickle-System/internal/domain/entity/market"
)

// DefaultVisiblePoints is the fallback window size for the candle pane: the
// most recent 12 buckets.
const DefaultVisiblePoints = 12

// Viewport keeps a chart's visible time-range inside the bounds of the bound
// dataset while preserving the user's chosen window width.
//
// It is a two-state machine: unbound until SetData binds a series, bound
// until Reset. The remembered window width survives clamp corrections so a
// correction restores position without snapping the zoom level back to a
// fixed width. A Viewport is owned by exactly one chart instance and is not
// safe for concurrent use.
type Viewport struct {
	bounds      *market.VisibleRange
	windowWidth int64
}

// NewViewport returns an unbound viewport.
func NewViewport() *Viewport {
	return &Viewport{}
}

// SetData binds a candle series, recomputing bounds and resetting the
// remembered window width. The returned range re-anchors the chart to the
// newest data: a caller-supplied defaultRange wins, otherwise the window
// covers the most recent fallbackPoints candles. ok is false for an empty
// series, which unbinds the viewport.
func (v *Viewport) SetData(candles []market.Candle, defaultRange *market.VisibleRange, fallbackPoints int) (market.VisibleRange, bool) {
	if len(candles) == 0 {
		v.Reset()
		return market.VisibleRange{}, false
	}

	v.bounds = &market.VisibleRange{
		From: candles[0].Unix(),
		To:   candles[len(candles)-1].Unix(),
	}
	v.windowWidth = 0

	if defaultRange != nil && defaultRange.From < defaultRange.To {
		rng := *defaultRange
		if rng.From < v.bounds.From {
			rng.From = v.bounds.From
		}
		if rng.To > v.bounds.To {
			rng.To = v.bounds.To
		}
		return rng, true
	}

	if fallbackPoints < 1 {
		fallbackPoints = DefaultVisiblePoints
	}
	start := len(candles) - fallbackPoints
	if start < 0 {
		start = 0
	}
	return market.VisibleRange{From: candles[start].Unix(), To: v.bounds.To}, true
}

// ObserveRange processes a visible-range-change event. It remembers any
// positive width as the user's chosen window and returns a corrective range
// with issued=true when the observed range escapes the data bounds. A range
// already inside bounds, or a correction equal to the observed range, issues
// nothing so redundant range-set calls cannot feed back into the engine.
func (v *Viewport) ObserveRange(r market.VisibleRange) (market.VisibleRange, bool) {
	if v.bounds == nil {
		return r, false
	}

	if w := r.Width(); w > 0 {
		v.windowWidth = w
	}
	target := v.windowWidth
	if target <= 0 {
		target = v.bounds.Width()
	}

	switch {
	case r.To > v.bounds.To:
		from := v.bounds.To - target
		if from < v.bounds.From {
			from = v.bounds.From
		}
		corrected := market.VisibleRange{From: from, To: v.bounds.To}
		if corrected == r {
			return r, false
		}
		return corrected, true
	case r.From < v.bounds.From:
		to := v.bounds.From + target
		if to > v.bounds.To {
			to = v.bounds.To
		}
		corrected := market.VisibleRange{From: v.bounds.From, To: to}
		if corrected == r {
			return r, false
		}
		return corrected, true
	}
	return r, false
}

// Bounds returns the bound dataset's time bounds.
func (v *Viewport) Bounds() (market.VisibleRange, bool) {
	if v.bounds == nil {
		return market.VisibleRange{}, false
	}
	return *v.bounds, true
}

// WindowWidth returns the remembered window width in seconds, or zero when
// no navigation has been observed since the last SetData.
func (v *Viewport) WindowWidth() int64 {
	return v.windowWidth
}

// Reset returns the viewport to the unbound state. Called on chart teardown;
// the viewport never expires on its own.
func (v *Viewport) Reset() {
	v.bounds = nil
	v.windowWidth = 0
}
