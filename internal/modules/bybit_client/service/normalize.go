package service

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
)

// Нормализация сырых ответов в типизированные записи. Чистые функции:
// принимают result из конверта, сетью не занимаются.

func normalizeBalance(result json.RawMessage) (Balance, error) {
	var raw rawWalletResult
	if err := sonic.Unmarshal(result, &raw); err != nil {
		return Balance{}, &ShapeError{Field: "list"}
	}
	if len(raw.List) == 0 {
		// Отсутствие аккаунта — ошибка, а не нулевой баланс.
		return Balance{}, &ShapeError{Field: "list"}
	}

	// Аккаунт есть, но эквити нет — это тоже ошибка, а не ноль.
	account := raw.List[0]
	equity, err := strconv.ParseFloat(string(account.TotalEquity), 64)
	if err != nil {
		return Balance{}, &ShapeError{Field: "totalEquity"}
	}

	return Balance{TotalEquity: equity}, nil
}

func normalizePositions(result json.RawMessage) ([]Position, error) {
	var raw rawPositionResult
	if err := sonic.Unmarshal(result, &raw); err != nil {
		return nil, &ShapeError{Field: "list"}
	}
	if raw.List == nil {
		return nil, &ShapeError{Field: "list"}
	}

	positions := make([]Position, 0, len(*raw.List))
	for _, p := range *raw.List {
		// Нулевой размер — нет открытой экспозиции, запись не нужна.
		if p.Size.Float(0) <= 0 {
			continue
		}
		positions = append(positions, Position{
			Symbol:   stringOr(p.Symbol, "N/A"),
			Side:     stringOr(p.Side, "N/A"),
			Size:     p.Size.Float(0),
			Entry:    p.AvgPrice.Float(0),
			Pnl:      p.UnrealisedPnl.Float(0),
			Leverage: p.Leverage.Float(1),
			LiqPrice: p.LiqPrice.Float(0),
		})
	}
	return positions, nil
}

func normalizeClosedTrades(result json.RawMessage) ([]ClosedTrade, error) {
	var raw rawClosedPnlResult
	if err := sonic.Unmarshal(result, &raw); err != nil {
		return nil, &ShapeError{Field: "list"}
	}
	if raw.List == nil {
		return nil, &ShapeError{Field: "list"}
	}

	trades := make([]ClosedTrade, 0, len(*raw.List))
	for _, t := range *raw.List {
		trades = append(trades, ClosedTrade{
			Symbol:    stringOr(t.Symbol, "N/A"),
			Side:      stringOr(t.Side, "N/A"),
			Qty:       t.Qty.Float(0),
			Entry:     t.AvgEntry.Float(0),
			Exit:      t.AvgExit.Float(0),
			Pnl:       t.ClosedPnl.Float(0),
			CreatedAt: time.UnixMilli(t.CreatedTime.Int64(0)).UTC(),
			UpdatedAt: time.UnixMilli(t.UpdatedTime.Int64(0)).UTC(),
		})
	}
	return trades, nil
}

func stringOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
