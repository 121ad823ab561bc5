package api

import (
	"context"
	"fmt"

	market "github.com/banjiubanjiu/Nickle-System/internal/domain/entity/market"
)

// YearlySlide loads one extracted yearly report slide from the static chart
// payloads published next to the API, path pattern /yearly/slide-<NN>.json
// with a zero-padded two-digit slide number.
func (c *Client) YearlySlide(ctx context.Context, slide int) (*market.YearlySlide, error) {
	if slide <= 0 {
		return nil, ErrInvalidSlide
	}
	path := fmt.Sprintf("%s/slide-%02d.json", c.yearlyBase, slide)

	var payload market.YearlySlide
	if err := c.getJSON(ctx, path, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
