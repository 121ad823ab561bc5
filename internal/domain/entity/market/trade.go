package market

// TradeSide is the display label of the taker direction.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "买入"
	TradeSideSell TradeSide = "卖出"
)

// TradeRecord is one row of the recent-trades tape, pre-formatted for
// display.
type TradeRecord struct {
	Time   string    `json:"time"`
	Price  string    `json:"price"`
	Volume string    `json:"volume"`
	Side   TradeSide `json:"side"`
}
