package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	bybitsvc "bybit_monitor/internal/modules/bybit_client/service"
	"bybit_monitor/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	btnRefresh       = "🔄 Просмотр Баланса и позиции"
	btnBalance       = "💰 Баланс USDT"
	btnInfo          = "ℹ️ Инфо"
	btnPositions     = "📊 Мои позиции"
	btnStats         = "📊 Статистика"
	btnStatsToday    = "📊 Статистика: Сегодня"
	btnStatsYesterdy = "📊 Статистика: Вчера"
	btnStatsWeek     = "📊 Статистика: Неделя"
	btnBack          = "🔙 Назад"
)

func (t *Telegram) handleUpdate(ctx context.Context, update tgbot.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	chatID := msg.Chat.ID
	callerID := strconv.FormatInt(msg.From.ID, 10)

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			t.handleStart(ctx, chatID, callerID, msg.From.FirstName)
		}
		return
	}

	switch strings.TrimSpace(msg.Text) {
	case btnBalance:
		t.handleBalance(ctx, chatID, callerID)
	case btnPositions:
		t.handlePositions(ctx, chatID, callerID)
	case btnRefresh:
		t.handleRefresh(ctx, chatID, callerID)
	case btnInfo:
		t.handleInfo(ctx, chatID, callerID)
	case btnStats:
		t.handleStatsMenu(ctx, chatID, callerID)
	case btnStatsToday:
		t.handleStats(ctx, chatID, callerID, PeriodToday)
	case btnStatsYesterdy:
		t.handleStats(ctx, chatID, callerID, PeriodYesterday)
	case btnStatsWeek:
		t.handleStats(ctx, chatID, callerID, PeriodWeek)
	case btnBack:
		msg := tgbot.NewMessage(chatID, "Главное меню:")
		msg.ReplyMarkup = mainKeyboard()
		_, _ = t.SendMessage(ctx, msg)
	}
}

func (t *Telegram) handleStart(ctx context.Context, chatID int64, callerID, firstName string) {
	if !t.gate.CanAccessBalance(callerID) && !t.gate.CanAccessPosition(callerID) {
		_, _ = t.SendF(ctx, chatID, t.replies.NoRights, firstName)
		return
	}

	greeting := t.replies.Greeting
	if callerID == t.cfg.PrimeID {
		greeting = t.replies.GreetingPrime
	}
	msg := tgbot.NewMessage(chatID, fmt.Sprintf(greeting, firstName))
	msg.ReplyMarkup = mainKeyboard()
	_, _ = t.SendMessage(ctx, msg)
}

// guard — граница отказов хэндлера: любой выход без успешного ответа
// превращается в канонический текст ошибки, наружу ничего не утекает.
func (t *Telegram) guard(ctx context.Context, chatID int64, fallback string, fn func() error) {
	if err := fn(); err != nil {
		logger.Error("telegram: команда не выполнена: %v", err)
		_, _ = t.Send(ctx, chatID, fallback)
	}
}

func (t *Telegram) handleBalance(ctx context.Context, chatID int64, callerID string) {
	if !t.gate.CanAccessBalance(callerID) {
		_, _ = t.Send(ctx, chatID, t.replies.AccessDenied)
		return
	}

	t.guard(ctx, chatID, t.replies.BalanceError, func() error {
		balance, err := t.bybit.WalletBalance(ctx)
		if err != nil {
			return err
		}
		_, err = t.SendF(ctx, chatID, "💵 Доступно: %.2f USDT", balance.TotalEquity)
		return err
	})
}

func (t *Telegram) handlePositions(ctx context.Context, chatID int64, callerID string) {
	if !t.gate.CanAccessPosition(callerID) {
		_, _ = t.Send(ctx, chatID, t.replies.AccessDenied)
		return
	}

	t.guard(ctx, chatID, t.replies.PositionsError, func() error {
		positions, err := t.bybit.OpenPositions(ctx)
		if err != nil {
			return err
		}
		if len(positions) == 0 {
			_, err = t.Send(ctx, chatID, t.replies.NoPositions)
			return err
		}

		t.trackSymbols(positions)

		msg := tgbot.NewMessage(chatID, t.formatPositions(positions))
		msg.ParseMode = "HTML"
		msg.DisableWebPagePreview = true
		_, err = t.SendMessage(ctx, msg)
		return err
	})
}

// handleRefresh — сводка баланс+позиции. Оба запроса идут параллельно,
// порядок между ними не важен, но успех нужен от обоих.
func (t *Telegram) handleRefresh(ctx context.Context, chatID int64, callerID string) {
	if !t.gate.CanAccessBalance(callerID) && !t.gate.CanAccessPosition(callerID) {
		_, _ = t.Send(ctx, chatID, t.replies.AccessDenied)
		return
	}

	t.guard(ctx, chatID, t.replies.RefreshError, func() error {
		type balRes struct {
			balance bybitsvc.Balance
			err     error
		}
		type posRes struct {
			positions []bybitsvc.Position
			err       error
		}

		balCh := make(chan balRes, 1)
		posCh := make(chan posRes, 1)
		go func() {
			b, err := t.bybit.WalletBalance(ctx)
			balCh <- balRes{balance: b, err: err}
		}()
		go func() {
			p, err := t.bybit.OpenPositions(ctx)
			posCh <- posRes{positions: p, err: err}
		}()

		bal := <-balCh
		pos := <-posCh
		if bal.err != nil {
			return bal.err
		}
		if pos.err != nil {
			return pos.err
		}

		t.trackSymbols(pos.positions)

		hour := time.Now().In(t.loc).Hour()
		msg := tgbot.NewMessage(chatID, t.formatCombined(bal.balance, pos.positions, hour))
		msg.ParseMode = "HTML"
		msg.DisableWebPagePreview = true
		_, err := t.SendMessage(ctx, msg)
		return err
	})
}

func (t *Telegram) handleInfo(ctx context.Context, chatID int64, callerID string) {
	if !t.gate.CanAccessPosition(callerID) {
		_, _ = t.Send(ctx, chatID, t.replies.AccessDenied)
		return
	}

	t.guard(ctx, chatID, t.replies.BalanceError, func() error {
		balance, err := t.bybit.WalletBalance(ctx)
		if err != nil {
			return err
		}

		b := balance.TotalEquity
		msg := tgbot.NewMessage(chatID, fmt.Sprintf(t.replies.Rules, b, b, b*2, b*2, b*0.2, b*0.2))
		msg.ParseMode = "Markdown"
		_, err = t.SendMessage(ctx, msg)
		return err
	})
}

func (t *Telegram) handleStatsMenu(ctx context.Context, chatID int64, callerID string) {
	if !t.gate.CanAccessBalance(callerID) {
		_, _ = t.Send(ctx, chatID, t.replies.AccessDenied)
		return
	}

	msg := tgbot.NewMessage(chatID, "Выбери период:")
	msg.ReplyMarkup = statsKeyboard()
	_, _ = t.SendMessage(ctx, msg)
}

func (t *Telegram) handleStats(ctx context.Context, chatID int64, callerID string, period Period) {
	if !t.gate.CanAccessBalance(callerID) {
		_, _ = t.Send(ctx, chatID, t.replies.AccessDenied)
		return
	}

	t.guard(ctx, chatID, t.replies.StatsError, func() error {
		trades, err := t.bybit.ClosedPnl(ctx, nil)
		if err != nil {
			return err
		}

		stats := summarize(trades, period, time.Now().In(t.loc))

		msg := tgbot.NewMessage(chatID, formatStats(stats))
		msg.ParseMode = "HTML"
		msg.ReplyMarkup = statsKeyboard()
		_, err = t.SendMessage(ctx, msg)
		return err
	})
}

func (t *Telegram) trackSymbols(positions []bybitsvc.Position) {
	symbols := make([]string, 0, len(positions))
	for _, p := range positions {
		symbols = append(symbols, p.Symbol)
	}
	t.prices.Track(symbols)
}
