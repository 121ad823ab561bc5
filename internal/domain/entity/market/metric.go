package market

// TrendDirection marks whether a metric is moving up or down.
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
)

// MetricView is a display-ready projection of a snapshot field. It is
// recomputed on every snapshot application and never persisted.
type MetricView struct {
	Label          string         `json:"label"`
	Value          string         `json:"value"`
	Unit           string         `json:"unit,omitempty"`
	Trend          string         `json:"trend,omitempty"`
	TrendDirection TrendDirection `json:"trendDirection,omitempty"`
}
