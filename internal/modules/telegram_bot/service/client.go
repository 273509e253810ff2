package service

import (
	"context"
	"fmt"
	"time"

	accsvc "bybit_monitor/internal/modules/access/service"
	bybitsvc "bybit_monitor/internal/modules/bybit_client/service"
	wssvc "bybit_monitor/internal/modules/bybit_ws/service"
	"bybit_monitor/internal/modules/config"
	healthsvc "bybit_monitor/internal/modules/health/service"
	"bybit_monitor/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram — фронт бота: принимает команды, ходит в Bybit, отвечает.
// Состояния между командами нет, каждый апдейт обрабатывается независимо.
type Telegram struct {
	bot     *tgbot.BotAPI
	cfg     *config.Config
	replies *config.Replies
	gate    *accsvc.Gate
	bybit   *bybitsvc.Client
	prices  *wssvc.Client
	state   *healthsvc.State
	loc     *time.Location
}

func NewTelegram(
	cfg *config.Config,
	replies *config.Replies,
	gate *accsvc.Gate,
	bybit *bybitsvc.Client,
	prices *wssvc.Client,
	state *healthsvc.State,
) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: bad timezone %q: %w", cfg.Timezone, err)
	}

	return &Telegram{
		bot:     b,
		cfg:     cfg,
		replies: replies,
		gate:    gate,
		bybit:   bybit,
		prices:  prices,
		state:   state,
		loc:     loc,
	}, nil
}

func (t *Telegram) Send(ctx context.Context, chatID int64, msg string) (tgbot.Message, error) {
	return t.bot.Send(tgbot.NewMessage(chatID, msg))
}

func (t *Telegram) SendF(ctx context.Context, chatID int64, format string, args ...any) (tgbot.Message, error) {
	return t.Send(ctx, chatID, fmt.Sprintf(format, args...))
}

func (t *Telegram) SendMessage(_ context.Context, message tgbot.MessageConfig) (tgbot.Message, error) {
	return t.bot.Send(message)
}

// Start — основной цикл long-poll. Каждый апдейт уходит в свою горутину,
// чтобы медленный вызов биржи не задерживал чужие команды.
func (t *Telegram) Start(ctx context.Context) error {
	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	updates := t.bot.GetUpdatesChan(u)

	t.state.SetReady(true)
	logger.Info("telegram: бот запущен")

	for update := range updates {
		go t.handleUpdate(ctx, update)
	}
	return nil
}

func (t *Telegram) Stop() {
	t.state.SetReady(false)
	t.bot.StopReceivingUpdates()
}
