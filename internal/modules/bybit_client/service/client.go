package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"bybit_monitor/internal/modules/config"
	"bybit_monitor/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
)

// Client — подписанный REST-клиент Bybit V5. Одна попытка на вызов:
// без ретраев, без кэша, таймаут 10 секунд.
type Client struct {
	http       *http.Client
	baseURL    string
	apiKey     string
	apiSecret  string
	recvWindow string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		http:       &http.Client{Timeout: 10 * time.Second},
		baseURL:    cfg.Bybit.BaseURL,
		apiKey:     cfg.Bybit.APIKey,
		apiSecret:  cfg.Bybit.APISecret,
		recvWindow: cfg.Bybit.RecvWindow,
	}
}

// call выполняет подписанный GET /v5/<endpoint> и возвращает result из конверта.
func (c *Client) call(ctx context.Context, endpoint string, params map[string]string) (json.RawMessage, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "bybit."+endpoint)
	defer span.Finish()

	// Биржа не принимает пустые параметры — выкидываем их до подписи,
	// чтобы подписанная и отправленная строки совпадали байт в байт.
	clean := make(map[string]string, len(params))
	for k, v := range params {
		if v != "" {
			clean[k] = v
		}
	}

	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
	queryString := encodeParams(clean)
	signature := sign(c.apiSecret, c.apiKey, timestamp, c.recvWindow, queryString)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v5/"+endpoint, nil)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	// Та же строка, что подписана.
	req.URL.RawQuery = queryString

	req.Header.Set("X-BAPI-API-KEY", c.apiKey)
	req.Header.Set("X-BAPI-TIMESTAMP", timestamp)
	req.Header.Set("X-BAPI-RECV-WINDOW", c.recvWindow)
	req.Header.Set("X-BAPI-SIGN", signature)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error("bybit %s: запрос не прошёл: params=%v err=%v", endpoint, clean, err)
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	if resp.StatusCode/100 != 2 {
		logger.Error("bybit %s: http %d: params=%v body=%s", endpoint, resp.StatusCode, clean, string(body))
		return nil, &TransportError{
			Endpoint: endpoint,
			Err:      fmt.Errorf("http %d: %s", resp.StatusCode, string(body)),
		}
	}

	var env envelope
	if err := sonic.Unmarshal(body, &env); err != nil {
		logger.Error("bybit %s: конверт не распарсился: body=%s", endpoint, string(body))
		return nil, &TransportError{Endpoint: endpoint, Err: errors.Wrap(err, "decode envelope")}
	}

	if env.RetCode != 0 {
		msg := env.RetMsg
		if msg == "" {
			msg = string(body)
		}
		logger.Error("bybit %s: retCode=%d: params=%v retMsg=%s", endpoint, env.RetCode, clean, msg)
		return nil, &APIError{Code: env.RetCode, Msg: msg}
	}

	return env.Result, nil
}
