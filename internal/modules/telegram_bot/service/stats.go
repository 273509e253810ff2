package service

import (
	"fmt"
	"strings"
	"time"

	bybitsvc "bybit_monitor/internal/modules/bybit_client/service"
)

type Period string

const (
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	PeriodWeek      Period = "week"
)

const statsTradesShown = 5

// PeriodStats — агрегат закрытых сделок за период.
type PeriodStats struct {
	Name     string
	TotalPnl float64
	Count    int
	Last     []bybitsvc.ClosedTrade
}

// periodRange — границы периода от локальной полуночи. Неделя начинается
// с воскресенья и включает сегодняшний день.
func periodRange(p Period, now time.Time) (start, end time.Time, name string) {
	y, m, d := now.Date()
	loc := now.Location()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)

	switch p {
	case PeriodYesterday:
		return midnight.AddDate(0, 0, -1), midnight, "Вчера"
	case PeriodWeek:
		weekStart := midnight.AddDate(0, 0, -int(now.Weekday()))
		return weekStart, midnight.AddDate(0, 0, 1), "Неделя"
	default:
		return midnight, midnight.AddDate(0, 0, 1), "Сегодня"
	}
}

// summarize фильтрует сделки по UpdatedAt ∈ [start, end) и считает итоги.
func summarize(trades []bybitsvc.ClosedTrade, p Period, now time.Time) PeriodStats {
	start, end, name := periodRange(p, now)

	stats := PeriodStats{Name: name}
	for _, tr := range trades {
		if tr.UpdatedAt.Before(start) || !tr.UpdatedAt.Before(end) {
			continue
		}
		stats.TotalPnl += tr.Pnl
		stats.Count++
		if len(stats.Last) < statsTradesShown {
			stats.Last = append(stats.Last, tr)
		}
	}
	return stats
}

func formatStats(stats PeriodStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>Статистика за %s</b>\n\n", strings.ToLower(stats.Name))
	fmt.Fprintf(&b, "%s Суммарный PnL: %.2f USDT\n", pnlIcon(stats.TotalPnl), stats.TotalPnl)
	fmt.Fprintf(&b, "🔢 Количество сделок: %d\n\n", stats.Count)

	if stats.Count == 0 {
		b.WriteString("Нет сделок за этот период\n")
		return b.String()
	}

	b.WriteString("<b>Последние сделки:</b>\n")
	for i, tr := range stats.Last {
		icon := "✅"
		if tr.Pnl < 0 {
			icon = "❌"
		}
		fmt.Fprintf(&b, "%d. %s %s %s - %.2f USDT\n", i+1, icon, tr.Symbol, tr.Side, tr.Pnl)
	}
	return b.String()
}
