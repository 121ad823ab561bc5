// Package projection maps raw market snapshots into display-ready metric
// groups for the dashboard.
package projection

import (
	market "github.com/banjiubanjiu/Nickle-System/internal/domain/entity/market"
)

// Metric labels, in the fixed dashboard order.
const (
	LabelLatestPrice    = "最新价"
	LabelChangePct      = "涨跌幅"
	LabelHigh           = "最高价"
	LabelLow            = "最低价"
	LabelBid            = "买价"
	LabelAsk            = "卖价"
	LabelOpen           = "开盘价"
	LabelPrevSettlement = "昨日结算"
)

// Project maps a snapshot into the eight dashboard metrics, split into the
// primary card row (latest price with attached change% trend, change%, high,
// low) and the secondary stats row (bid, ask, open, previous settlement).
// Absent fields render the placeholder; the whole record is still projected.
func Project(snap *market.Snapshot, unitLabel string) (primary, secondary []market.MetricView) {
	latest := market.MetricView{
		Label:          LabelLatestPrice,
		Value:          market.FormatOptionalPrice(snap.LatestPrice),
		Unit:           unitLabel,
		TrendDirection: Direction(snap.ChangePct),
	}
	if snap.ChangePct != nil {
		latest.Trend = market.FormatPercent(*snap.ChangePct)
	}

	primary = []market.MetricView{
		latest,
		{Label: LabelChangePct, Value: market.FormatOptionalPercent(snap.ChangePct)},
		{Label: LabelHigh, Value: market.FormatOptionalPrice(snap.High)},
		{Label: LabelLow, Value: market.FormatOptionalPrice(snap.Low)},
	}
	secondary = []market.MetricView{
		{Label: LabelBid, Value: market.FormatOptionalPrice(snap.Bid)},
		{Label: LabelAsk, Value: market.FormatOptionalPrice(snap.Ask)},
		{Label: LabelOpen, Value: market.FormatOptionalPrice(snap.Open)},
		{Label: LabelPrevSettlement, Value: market.FormatOptionalPrice(snap.PrevSettlement)},
	}
	return primary, secondary
}

// Direction resolves the trend direction for a change percentage. An absent
// value defaults to up, matching the collector dashboard's behavior for
// fresh contracts with no reference settlement yet.
func Direction(changePct *float64) market.TrendDirection {
	if changePct != nil && *changePct < 0 {
		return market.TrendDown
	}
	return market.TrendUp
}

// LastUpdated renders the snapshot's capture instant for the footer. The
// snapshot's own captured_at is authoritative, not the local clock.
func LastUpdated(snap *market.Snapshot) string {
	return market.FormatDateTime(snap.CapturedAt)
}
