package service

import "context"

// ClosedPnl возвращает закрытые сделки. extra — дополнительные параметры
// (например startTime/endTime); пустые значения выкидываются до подписи.
func (c *Client) ClosedPnl(ctx context.Context, extra map[string]string) ([]ClosedTrade, error) {
	params := map[string]string{
		"category":   "linear",
		"settleCoin": "USDT",
	}
	for k, v := range extra {
		params[k] = v
	}

	result, err := c.call(ctx, "position/closed-pnl", params)
	if err != nil {
		return nil, err
	}

	return normalizeClosedTrades(result)
}
