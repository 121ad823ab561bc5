package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	market "github.com/banjiubanjiu/Nickle-System/internal/domain/entity/market"
)

func hourlyCandles(t *testing.T, n int) []market.Candle {
	t.Helper()
	base := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]market.Candle, n)
	for i := range candles {
		candles[i] = market.Candle{
			Time:  base.Add(time.Duration(i) * time.Hour),
			Open:  18500,
			High:  18520,
			Low:   18480,
			Close: 18510,
		}
	}
	return candles
}

func TestViewportUnboundPassesThrough(t *testing.T) {
	v := NewViewport()
	r := market.VisibleRange{From: 100, To: 200}

	got, issued := v.ObserveRange(r)
	assert.False(t, issued)
	assert.Equal(t, r, got)
}

func TestViewportSetDataEmptyUnbinds(t *testing.T) {
	v := NewViewport()
	_, ok := v.SetData(hourlyCandles(t, 5), nil, DefaultVisiblePoints)
	require.True(t, ok)

	_, ok = v.SetData(nil, nil, DefaultVisiblePoints)
	assert.False(t, ok)
	_, bound := v.Bounds()
	assert.False(t, bound)
}

func TestViewportDefaultWindowLastTwelveHours(t *testing.T) {
	candles := hourlyCandles(t, 48)
	v := NewViewport()

	defaultRange := &market.VisibleRange{
		From: candles[36].Unix(),
		To:   candles[47].Unix(),
	}
	rng, ok := v.SetData(candles, defaultRange, DefaultVisiblePoints)
	require.True(t, ok)

	bounds, bound := v.Bounds()
	require.True(t, bound)
	assert.Equal(t, candles[0].Unix(), bounds.From)
	assert.Equal(t, candles[47].Unix(), bounds.To)
	assert.Equal(t, candles[36].Unix(), rng.From)
	assert.Equal(t, candles[47].Unix(), rng.To)
}

func TestViewportFallbackWindowMostRecentPoints(t *testing.T) {
	candles := hourlyCandles(t, 48)
	v := NewViewport()

	rng, ok := v.SetData(candles, nil, DefaultVisiblePoints)
	require.True(t, ok)
	assert.Equal(t, candles[36].Unix(), rng.From)
	assert.Equal(t, candles[47].Unix(), rng.To)
}

func TestViewportFallbackWindowShortSeries(t *testing.T) {
	candles := hourlyCandles(t, 5)
	v := NewViewport()

	rng, ok := v.SetData(candles, nil, DefaultVisiblePoints)
	require.True(t, ok)
	assert.Equal(t, candles[0].Unix(), rng.From)
	assert.Equal(t, candles[4].Unix(), rng.To)
}

func TestViewportClampRight(t *testing.T) {
	candles := hourlyCandles(t, 48)
	v := NewViewport()
	_, ok := v.SetData(candles, nil, DefaultVisiblePoints)
	require.True(t, ok)

	bounds, _ := v.Bounds()
	width := int64(12 * 3600)

	// Scroll one hour past the newest data.
	got, issued := v.ObserveRange(market.VisibleRange{
		From: bounds.To - width + 3600,
		To:   bounds.To + 3600,
	})
	require.True(t, issued)
	assert.Equal(t, bounds.To, got.To)
	assert.Equal(t, bounds.To-width, got.From)
	assert.Equal(t, width, got.Width())
}

func TestViewportClampLeft(t *testing.T) {
	candles := hourlyCandles(t, 48)
	v := NewViewport()
	_, ok := v.SetData(candles, nil, DefaultVisiblePoints)
	require.True(t, ok)

	bounds, _ := v.Bounds()
	width := int64(12 * 3600)

	got, issued := v.ObserveRange(market.VisibleRange{
		From: bounds.From - 7200,
		To:   bounds.From - 7200 + width,
	})
	require.True(t, issued)
	assert.Equal(t, bounds.From, got.From)
	assert.Equal(t, bounds.From+width, got.To)
	assert.Equal(t, width, got.Width())
}

func TestViewportInBoundsIssuesNothing(t *testing.T) {
	candles := hourlyCandles(t, 48)
	v := NewViewport()
	_, ok := v.SetData(candles, nil, DefaultVisiblePoints)
	require.True(t, ok)

	bounds, _ := v.Bounds()
	r := market.VisibleRange{From: bounds.From + 3600, To: bounds.From + 10*3600}
	got, issued := v.ObserveRange(r)
	assert.False(t, issued)
	assert.Equal(t, r, got)
}

func TestViewportCorrectionEqualToObservedSuppressed(t *testing.T) {
	candles := hourlyCandles(t, 48)
	v := NewViewport()
	_, ok := v.SetData(candles, nil, DefaultVisiblePoints)
	require.True(t, ok)

	bounds, _ := v.Bounds()
	width := int64(6 * 3600)

	// Establish the window width, then land exactly on the correction the
	// engine would issue: nothing new may be emitted.
	_, issued := v.ObserveRange(market.VisibleRange{From: bounds.To + 1, To: bounds.To + 1 + width})
	require.True(t, issued)
	_, issued = v.ObserveRange(market.VisibleRange{From: bounds.To - width, To: bounds.To})
	assert.False(t, issued)
}

func TestViewportWindowWidthPreserved(t *testing.T) {
	candles := hourlyCandles(t, 48)
	v := NewViewport()
	_, ok := v.SetData(candles, nil, DefaultVisiblePoints)
	require.True(t, ok)

	bounds, _ := v.Bounds()
	width := int64(6 * 3600)

	// A user zoom to six hours is remembered.
	_, issued := v.ObserveRange(market.VisibleRange{From: bounds.From, To: bounds.From + width})
	require.False(t, issued)
	assert.Equal(t, width, v.WindowWidth())

	// Overscroll in either direction keeps the six-hour window.
	got, issued := v.ObserveRange(market.VisibleRange{From: bounds.To, To: bounds.To + width})
	require.True(t, issued)
	assert.Equal(t, width, got.Width())

	got, issued = v.ObserveRange(market.VisibleRange{From: bounds.From - width, To: bounds.From})
	require.True(t, issued)
	assert.Equal(t, width, got.Width())
}

func TestViewportContainmentUnderRandomWalk(t *testing.T) {
	candles := hourlyCandles(t, 48)
	v := NewViewport()
	_, ok := v.SetData(candles, nil, DefaultVisiblePoints)
	require.True(t, ok)
	bounds, _ := v.Bounds()

	// A drifting pan sequence, including jumps far outside the data.
	offsets := []int64{3600, -7200, 50 * 3600, -200 * 3600, 7 * 3600, 100000, -100000}
	r := market.VisibleRange{From: bounds.From, To: bounds.From + 12*3600}
	for _, off := range offsets {
		proposed := market.VisibleRange{From: r.From + off, To: r.To + off}
		got, issued := v.ObserveRange(proposed)
		if issued {
			r = got
		} else {
			r = proposed
		}
		if issued {
			assert.GreaterOrEqual(t, r.From, bounds.From)
			assert.LessOrEqual(t, r.To, bounds.To)
			assert.Less(t, r.From, r.To)
		}
	}
}

func TestViewportSetDataResetsWindowWidth(t *testing.T) {
	candles := hourlyCandles(t, 48)
	v := NewViewport()
	_, ok := v.SetData(candles, nil, DefaultVisiblePoints)
	require.True(t, ok)

	_, _ = v.ObserveRange(market.VisibleRange{From: candles[0].Unix(), To: candles[6].Unix()})
	require.NotZero(t, v.WindowWidth())

	_, ok = v.SetData(candles, nil, DefaultVisiblePoints)
	require.True(t, ok)
	assert.Zero(t, v.WindowWidth())
}
