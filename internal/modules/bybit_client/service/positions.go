package service

import "context"

// OpenPositions возвращает открытые линейные USDT-позиции.
// Записи с нулевым размером отфильтрованы, порядок биржи сохранён.
func (c *Client) OpenPositions(ctx context.Context) ([]Position, error) {
	result, err := c.call(ctx, "position/list", map[string]string{
		"category":   "linear",
		"settleCoin": "USDT",
	})
	if err != nil {
		return nil, err
	}

	return normalizePositions(result)
}
