package chart

import "math"

const (
	// DefaultTargetTicks is the tick count requested when the caller has no
	// preference.
	DefaultTargetTicks = 6

	paddingRatio = 0.05
	minPadding   = 5.0
)

// Scale holds human-friendly axis boundaries for a price series: an evenly
// spaced tick ladder at a step of 1, 2, 5 or 10 times a power of ten. The
// zero Scale means "no constraint" and tells the caller to keep automatic
// axis scaling.
type Scale struct {
	Domain [2]float64
	Ticks  []float64
	Base   float64
}

// Constrained reports whether the scale carries usable boundaries.
func (s Scale) Constrained() bool {
	return len(s.Ticks) > 0
}

// NiceScale computes axis boundaries covering all samples plus a 5% padding
// margin (minimum 5 units). Degenerate input (empty, non-finite, min == max)
// never fails: equal extremes are widened by one unit each way and anything
// unusable yields the unconstrained zero Scale.
func NiceScale(samples []float64, targetTicks int) Scale {
	if len(samples) == 0 {
		return Scale{}
	}
	if targetTicks < 2 {
		targetTicks = DefaultTargetTicks
	}

	min, max := samples[0], samples[0]
	for _, v := range samples[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if !isFinite(min) || !isFinite(max) {
		return Scale{}
	}
	if min == max {
		min--
		max++
	}

	padding := math.Max((max-min)*paddingRatio, minPadding)
	lo := min - padding
	hi := max + padding

	span := niceNumber(hi-lo, false)
	step := niceNumber(span/float64(targetTicks-1), true)
	floor := math.Floor(lo/step) * step
	ceil := math.Ceil(hi/step) * step
	precision := int(math.Max(0, -math.Floor(math.Log10(step))))

	ticks := make([]float64, 0, targetTicks+2)
	for tick := floor; tick <= ceil+step/2; tick += step {
		ticks = append(ticks, roundTo(tick, precision))
	}

	return Scale{
		Domain: [2]float64{floor, ceil},
		Ticks:  ticks,
		Base:   step,
	}
}

// niceNumber rounds value to a "nice" magnitude. With round set the result
// may round down within a decade (tick steps); otherwise the value is only
// ever rounded up (axis spans).
func niceNumber(value float64, round bool) float64 {
	exp := math.Floor(math.Log10(value))
	frac := value / math.Pow(10, exp)

	var nice float64
	if round {
		switch {
		case frac < 1.5:
			nice = 1
		case frac < 3:
			nice = 2
		case frac < 7:
			nice = 5
		default:
			nice = 10
		}
	} else {
		switch {
		case frac <= 1:
			nice = 1
		case frac <= 2:
			nice = 2
		case frac <= 5:
			nice = 5
		default:
			nice = 10
		}
	}
	return nice * math.Pow(10, exp)
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
