package service

import (
	"fmt"
	"strings"

	bybitsvc "bybit_monitor/internal/modules/bybit_client/service"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func mainKeyboard() tgbot.ReplyKeyboardMarkup {
	kb := tgbot.NewReplyKeyboard(
		tgbot.NewKeyboardButtonRow(
			tgbot.NewKeyboardButton(btnRefresh),
		),
		tgbot.NewKeyboardButtonRow(
			tgbot.NewKeyboardButton(btnBalance),
			tgbot.NewKeyboardButton(btnInfo),
		),
		tgbot.NewKeyboardButtonRow(
			tgbot.NewKeyboardButton(btnPositions),
			tgbot.NewKeyboardButton(btnStats),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func statsKeyboard() tgbot.ReplyKeyboardMarkup {
	kb := tgbot.NewReplyKeyboard(
		tgbot.NewKeyboardButtonRow(tgbot.NewKeyboardButton(btnStatsToday)),
		tgbot.NewKeyboardButtonRow(tgbot.NewKeyboardButton(btnStatsYesterdy)),
		tgbot.NewKeyboardButtonRow(tgbot.NewKeyboardButton(btnStatsWeek)),
		tgbot.NewKeyboardButtonRow(tgbot.NewKeyboardButton(btnBack)),
	)
	kb.ResizeKeyboard = true
	return kb
}

func symbolURL(name string) string {
	return "https://www.bybit.com/trade/usdt/" + name
}

func pnlIcon(pnl float64) string {
	if pnl >= 0 {
		return "🟢"
	}
	return "🔴"
}

// volumeLine — классификация долларового объёма позиции против баланса.
// Ночью (после 18:00) планка жёстче: не больше 0.2x баланса.
func volumeLine(balance, value float64, night bool) string {
	if night {
		if value <= balance*0.2 {
			return fmt.Sprintf("✅ Объем в $: %.2f", value)
		}
		return fmt.Sprintf("🔴️ Объем в $: %.2f", value)
	}
	switch {
	case value <= balance:
		return fmt.Sprintf("✅ Объем в $: %.2f", value)
	case value <= balance*2:
		return fmt.Sprintf("⚠️ Объем в $: %.2f", value)
	default:
		return fmt.Sprintf("🔴️ Объем в $: %.2f", value)
	}
}

// formatPositions — развёрнутый список для «📊 Мои позиции».
// price — последняя цена из стрима, если уже есть.
func formatPositions(positions []bybitsvc.Position, price func(string) (float64, bool)) string {
	var b strings.Builder
	b.WriteString("📈 Ваши позиции:\n\n")
	for _, pos := range positions {
		fmt.Fprintf(&b, "▫️ <b><a href=\"%s\">%s</a></b> (%s)\n", symbolURL(pos.Symbol), pos.Symbol, pos.Side)
		fmt.Fprintf(&b, "  Объем: %.4f\n", pos.Size)
		fmt.Fprintf(&b, "  Объем в $: %.2f\n", pos.Size*pos.Entry)
		fmt.Fprintf(&b, "  Вход: %g\n", pos.Entry)
		if last, ok := price(pos.Symbol); ok {
			fmt.Fprintf(&b, "  Цена: %g\n", last)
		}
		fmt.Fprintf(&b, "  PnL: %s %.2f USDT\n", pnlIcon(pos.Pnl), pos.Pnl)
		fmt.Fprintf(&b, "  Плечо: %.1fx\n", pos.Leverage)
		fmt.Fprintf(&b, "  Ликвидация: %g\n\n", pos.LiqPrice)
	}
	return b.String()
}

// formatCombined — сводка «🔄 Просмотр Баланса и позиции».
func formatCombined(balance bybitsvc.Balance, positions []bybitsvc.Position, hour int, noPositions string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💵 Баланс: %.2f USDT\n\n", balance.TotalEquity)

	if len(positions) == 0 {
		b.WriteString(noPositions)
		return b.String()
	}

	if hour > 19 {
		b.WriteString("🌙 - Режим\n \n 📊 Позиции:\n")
	} else {
		b.WriteString("📊 Позиции:\n")
	}

	night := hour > 18
	for _, pos := range positions {
		fmt.Fprintf(&b, "\n▫️ <b><a href=\"%s\">%s</a></b> (%s)", symbolURL(pos.Symbol), pos.Symbol, pos.Side)
		fmt.Fprintf(&b, "\n  PnL: %s %.2f", pnlIcon(pos.Pnl), pos.Pnl)
		fmt.Fprintf(&b, "\n  %s\n", volumeLine(balance.TotalEquity, pos.Size*pos.Entry, night))
	}
	return b.String()
}

func (t *Telegram) formatPositions(positions []bybitsvc.Position) string {
	return formatPositions(positions, t.prices.LastPrice)
}

func (t *Telegram) formatCombined(balance bybitsvc.Balance, positions []bybitsvc.Position, hour int) string {
	return formatCombined(balance, positions, hour, t.replies.NoPositions)
}
