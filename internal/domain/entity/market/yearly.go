package market

// YearlySeries is one plotted series inside a yearly report chart. Values
// may be numbers, strings or null in the extracted JSON, so they are decoded
// loosely.
type YearlySeries struct {
	Name     string  `json:"name"`
	Values   []any   `json:"values"`
	Range    *string `json:"range,omitempty"`
	Color    *string `json:"color,omitempty"`
	RenderAs string  `json:"renderAs,omitempty"`
}

// YearlyValueRange carries the extracted value-axis hints for a chart.
type YearlyValueRange struct {
	DataMin      float64  `json:"dataMin"`
	DataMax      float64  `json:"dataMax"`
	SuggestedMin *float64 `json:"suggestedMin,omitempty"`
	SuggestedMax *float64 `json:"suggestedMax,omitempty"`
}

// YearlyChart is one chart extracted from a yearly report slide.
type YearlyChart struct {
	ChartPath      string            `json:"chartPath"`
	ChartType      string            `json:"chartType"`
	Title          *string           `json:"title,omitempty"`
	Workbook       *string           `json:"workbook,omitempty"`
	CategoryLabels []any             `json:"categoryLabels,omitempty"`
	CategoryRange  *string           `json:"categoryRange,omitempty"`
	Series         []YearlySeries    `json:"series"`
	Notes          []string          `json:"notes,omitempty"`
	HasDateAxis    bool              `json:"hasDateAxis,omitempty"`
	ValueRange     *YearlyValueRange `json:"valueRange,omitempty"`
}

// YearlySlide is one slide of the yearly report chart pack, fetched by path
// pattern /yearly/slide-<NN>.json.
type YearlySlide struct {
	Slide  int           `json:"slide"`
	Title  *string       `json:"title"`
	Charts []YearlyChart `json:"charts"`
}
