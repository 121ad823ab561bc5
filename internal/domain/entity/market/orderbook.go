package market

// OrderBookLevel holds a formatted price and its resting volume for one
// depth level.
type OrderBookLevel struct {
	Price  string `json:"price"`
	Volume int64  `json:"volume"`
}

// OrderBook is a five-level depth view around the best price.
type OrderBook struct {
	BestPrice string           `json:"bestPrice"`
	Asks      []OrderBookLevel `json:"asks"`
	Bids      []OrderBookLevel `json:"bids"`
}
