package service

import (
	"testing"

	bybitsvc "bybit_monitor/internal/modules/bybit_client/service"

	"github.com/stretchr/testify/assert"
)

func TestVolumeLine(t *testing.T) {
	const balance = 100.0

	t.Run("day thresholds", func(t *testing.T) {
		assert.Contains(t, volumeLine(balance, 80, false), "✅")
		assert.Contains(t, volumeLine(balance, 100, false), "✅")
		assert.Contains(t, volumeLine(balance, 150, false), "⚠️")
		assert.Contains(t, volumeLine(balance, 200, false), "⚠️")
		assert.Contains(t, volumeLine(balance, 201, false), "🔴")
	})

	t.Run("night tightens the cap to 0.2x", func(t *testing.T) {
		assert.Contains(t, volumeLine(balance, 20, true), "✅")
		assert.Contains(t, volumeLine(balance, 21, true), "🔴")
		// днём тот же объём ещё в норме
		assert.Contains(t, volumeLine(balance, 21, false), "✅")
	})
}

func noPrice(string) (float64, bool) { return 0, false }

func TestFormatPositions(t *testing.T) {
	positions := []bybitsvc.Position{
		{Symbol: "BTCUSDT", Side: "Buy", Size: 1.5, Entry: 50000, Pnl: 120.5, Leverage: 10, LiqPrice: 45000},
	}

	t.Run("full card with link", func(t *testing.T) {
		out := formatPositions(positions, noPrice)
		assert.Contains(t, out, `<a href="https://www.bybit.com/trade/usdt/BTCUSDT">BTCUSDT</a>`)
		assert.Contains(t, out, "(Buy)")
		assert.Contains(t, out, "Объем: 1.5000")
		assert.Contains(t, out, "Объем в $: 75000.00")
		assert.Contains(t, out, "PnL: 🟢 120.50 USDT")
		assert.Contains(t, out, "Плечо: 10.0x")
		assert.Contains(t, out, "Ликвидация: 45000")
		assert.NotContains(t, out, "Цена:")
	})

	t.Run("streamed price shown when known", func(t *testing.T) {
		out := formatPositions(positions, func(sym string) (float64, bool) {
			if sym == "BTCUSDT" {
				return 51234.5, true
			}
			return 0, false
		})
		assert.Contains(t, out, "Цена: 51234.5")
	})
}

func TestFormatCombined(t *testing.T) {
	balance := bybitsvc.Balance{TotalEquity: 282.65}
	positions := []bybitsvc.Position{
		{Symbol: "ETHUSDT", Side: "Sell", Size: 2, Entry: 100, Pnl: -5},
	}
	const noPos = "🔎 Нет открытых позиций"

	t.Run("no positions", func(t *testing.T) {
		out := formatCombined(balance, nil, 12, noPos)
		assert.Contains(t, out, "💵 Баланс: 282.65 USDT")
		assert.Contains(t, out, noPos)
	})

	t.Run("day view", func(t *testing.T) {
		out := formatCombined(balance, positions, 12, noPos)
		assert.Contains(t, out, "📊 Позиции:")
		assert.NotContains(t, out, "🌙")
		assert.Contains(t, out, "PnL: 🔴 -5.00")
		// 200 < 282.65 — в пределах дневной нормы
		assert.Contains(t, out, "✅ Объем в $: 200.00")
	})

	t.Run("night header after 20:00", func(t *testing.T) {
		out := formatCombined(balance, positions, 20, noPos)
		assert.Contains(t, out, "🌙 - Режим")
		// ночью 200 > 0.2x баланса
		assert.Contains(t, out, "🔴️ Объем в $: 200.00")
	})
}
