package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"bybit_monitor/internal/modules/config"
	healthsvc "bybit_monitor/internal/modules/health/service"
	"bybit_monitor/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

// Client — публичный тикер-стрим Bybit V5 (linear). Держит в памяти
// последнюю цену по каждому отслеживаемому символу. Приватных данных
// в этом канале нет, подпись не нужна.
type Client struct {
	cfg   *config.Config
	state *healthsvc.State

	dialer *websocket.Dialer

	mu      sync.RWMutex
	conn    *websocket.Conn
	writeMu sync.Mutex
	prices  map[string]float64
	watch   map[string]struct{}
}

func NewClient(cfg *config.Config, state *healthsvc.State) *Client {
	return &Client{
		cfg:    cfg,
		state:  state,
		dialer: &websocket.Dialer{},
		prices: make(map[string]float64),
		watch:  make(map[string]struct{}),
	}
}

// LastPrice — последняя цена символа, если стрим её уже приносил.
func (c *Client) LastPrice(symbol string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.prices[symbol]
	return p, ok
}

// Track добавляет символы в подписку. Уже отслеживаемые пропускаются,
// при живом соединении подписка уходит сразу, иначе — при реконнекте.
func (c *Client) Track(symbols []string) {
	c.mu.Lock()
	var added []string
	for _, s := range symbols {
		if s == "" || s == "N/A" {
			continue
		}
		if _, ok := c.watch[s]; !ok {
			c.watch[s] = struct{}{}
			added = append(added, s)
		}
	}
	conn := c.conn
	c.mu.Unlock()

	if conn == nil || len(added) == 0 {
		return
	}
	if err := c.subscribe(conn, added); err != nil {
		logger.Error("ws: подписка %v не ушла: %v", added, err)
	}
}

// Run — цикл соединения с реконнектом. Блокирует до отмены контекста.
func (c *Client) Run(ctx context.Context) {
	retry := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		conn, _, err := c.dialer.DialContext(ctx, c.cfg.Bybit.WSURL, nil)
		if err != nil {
			retry++
			logger.Error("ws: dial %s: %v", c.cfg.Bybit.WSURL, err)
			sleep := time.Duration(300*retry) * time.Millisecond
			if sleep > 5*time.Second {
				sleep = 5 * time.Second
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(sleep):
			}
			continue
		}
		retry = 0

		c.mu.Lock()
		c.conn = conn
		watch := make([]string, 0, len(c.watch))
		for s := range c.watch {
			watch = append(watch, s)
		}
		c.mu.Unlock()

		c.state.SetWSConnected(true)
		if len(watch) > 0 {
			if err := c.subscribe(conn, watch); err != nil {
				logger.Error("ws: ресабскрайб %d символов не ушёл: %v", len(watch), err)
			}
		}

		stopPing := make(chan struct{})
		go c.pingLoop(ctx, conn, stopPing)

		c.readLoop(conn)

		close(stopPing)
		_ = conn.Close()
		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()
		c.state.SetWSConnected(false)

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Second):
		}
	}
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var frame struct {
			Topic string `json:"topic"`
			Data  struct {
				Symbol    string `json:"symbol"`
				LastPrice string `json:"lastPrice"`
			} `json:"data"`
		}
		if err := sonic.Unmarshal(msg, &frame); err != nil {
			continue
		}
		if frame.Data.Symbol == "" || frame.Data.LastPrice == "" {
			continue
		}
		price, err := strconv.ParseFloat(frame.Data.LastPrice, 64)
		if err != nil || price == 0 {
			continue
		}

		c.mu.Lock()
		c.prices[frame.Data.Symbol] = price
		c.mu.Unlock()
		c.state.TouchPrice(time.Now())
	}
}

func (c *Client) pingLoop(ctx context.Context, conn *websocket.Conn, stop <-chan struct{}) {
	t := time.NewTicker(20 * time.Second)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-t.C:
			if err := c.writeJSON(conn, map[string]string{"op": "ping"}); err != nil {
				return
			}
		}
	}
}

func (c *Client) subscribe(conn *websocket.Conn, symbols []string) error {
	args := make([]string, 0, len(symbols))
	for _, s := range symbols {
		args = append(args, "tickers."+s)
	}
	return c.writeJSON(conn, map[string]any{
		"op":   "subscribe",
		"args": args,
	})
}

// writeJSON — у gorilla один писатель на соединение.
func (c *Client) writeJSON(conn *websocket.Conn, v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return conn.WriteJSON(v)
}
