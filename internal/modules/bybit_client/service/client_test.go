package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"bybit_monitor/internal/modules/config"
	"bybit_monitor/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.InfoLogger = zap.NewNop()
	logger.FatalLogger = zap.NewNop()
	os.Exit(m.Run())
}

func newTestClient(baseURL string) *Client {
	cfg := &config.Config{}
	cfg.Bybit.APIKey = testAPIKey
	cfg.Bybit.APISecret = testAPISecret
	cfg.Bybit.BaseURL = baseURL
	cfg.Bybit.RecvWindow = testRecvWin
	return NewClient(cfg)
}

func TestCallSignsAndSendsSameQuery(t *testing.T) {
	var gotQuery, gotSign, gotTS, gotRW, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotSign = r.Header.Get("X-BAPI-SIGN")
		gotTS = r.Header.Get("X-BAPI-TIMESTAMP")
		gotRW = r.Header.Get("X-BAPI-RECV-WINDOW")
		gotKey = r.Header.Get("X-BAPI-API-KEY")
		w.Write([]byte(`{"retCode":0,"retMsg":"OK","result":{"list":[{"totalEquity":"10"}]}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.WalletBalance(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "accountType=UNIFIED&coin=USDT", gotQuery)
	assert.Equal(t, testAPIKey, gotKey)
	assert.Equal(t, testRecvWin, gotRW)
	// Сервер пересчитывает подпись из того, что реально пришло на провод:
	// совпадение означает, что подписана и отправлена одна и та же строка.
	assert.Equal(t, sign(testAPISecret, testAPIKey, gotTS, gotRW, gotQuery), gotSign)
}

func TestCallStripsEmptyParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"retCode":0,"result":{"list":[]}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.ClosedPnl(context.Background(), map[string]string{
		"startTime": "",
		"limit":     "50",
	})
	require.NoError(t, err)
	assert.Equal(t, "category=linear&limit=50&settleCoin=USDT", gotQuery)
}

func TestCallAPIError(t *testing.T) {
	t.Run("carries retMsg", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"retCode":10001,"retMsg":"Invalid signature"}`))
		}))
		defer srv.Close()

		c := newTestClient(srv.URL)
		_, err := c.OpenPositions(context.Background())
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 10001, apiErr.Code)
		assert.Equal(t, "Invalid signature", apiErr.Msg)
	})

	t.Run("falls back to raw envelope when retMsg missing", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"retCode":10002}`))
		}))
		defer srv.Close()

		c := newTestClient(srv.URL)
		_, err := c.OpenPositions(context.Background())
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Contains(t, apiErr.Msg, `"retCode":10002`)
	})
}

func TestCallTransportError(t *testing.T) {
	t.Run("non-2xx", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gateway busted", http.StatusBadGateway)
		}))
		defer srv.Close()

		c := newTestClient(srv.URL)
		_, err := c.WalletBalance(context.Background())
		require.Error(t, err)
		assert.True(t, IsTransportError(err))
		assert.False(t, IsAPIError(err))
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		c := newTestClient(srv.URL)
		_, err := c.WalletBalance(context.Background())
		require.Error(t, err)
		assert.True(t, IsTransportError(err))
	})
}

func TestErrorKindsAreDistinct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Конверт валидный, но result без list — ошибка формы, не транспорта.
		w.Write([]byte(`{"retCode":0,"result":{}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.OpenPositions(context.Background())
	require.Error(t, err)
	assert.True(t, IsShapeError(err))
	assert.False(t, IsTransportError(err))
	assert.False(t, IsAPIError(err))
}
