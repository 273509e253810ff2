package service

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// envelope — общая обёртка всех ответов Bybit V5.
type envelope struct {
	RetCode int             `json:"retCode"`
	RetMsg  string          `json:"retMsg"`
	Result  json.RawMessage `json:"result"`
	Time    int64           `json:"time"`
}

// looseNumber принимает и JSON-строку, и голое число: биржа отдаёт
// числа строками, но полагаться на это нельзя.
type looseNumber string

func (n *looseNumber) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if bytes.Equal(b, []byte("null")) {
		b = nil
	}
	*n = looseNumber(b)
	return nil
}

// Float — разбор с дефолтом. "Строковые" числа не выходят за границу пакета.
func (n looseNumber) Float(def float64) float64 {
	if n == "" {
		return def
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return def
	}
	return f
}

func (n looseNumber) Int64(def int64) int64 {
	if n == "" {
		return def
	}
	i, err := strconv.ParseInt(string(n), 10, 64)
	if err != nil {
		return def
	}
	return i
}

// ----- сырые формы ответов -----

type rawWalletResult struct {
	List []rawAccount `json:"list"`
}

type rawAccount struct {
	AccountType string      `json:"accountType"`
	TotalEquity looseNumber `json:"totalEquity"`
}

type rawPositionResult struct {
	Category string         `json:"category"`
	List     *[]rawPosition `json:"list"`
}

type rawPosition struct {
	Symbol        string      `json:"symbol"`
	Side          string      `json:"side"`
	Size          looseNumber `json:"size"`
	AvgPrice      looseNumber `json:"avgPrice"`
	UnrealisedPnl looseNumber `json:"unrealisedPnl"`
	Leverage      looseNumber `json:"leverage"`
	LiqPrice      looseNumber `json:"liqPrice"`
}

type rawClosedPnlResult struct {
	NextPageCursor string            `json:"nextPageCursor"`
	List           *[]rawClosedTrade `json:"list"`
}

type rawClosedTrade struct {
	Symbol      string      `json:"symbol"`
	Side        string      `json:"side"`
	Qty         looseNumber `json:"qty"`
	AvgEntry    looseNumber `json:"avgEntryPrice"`
	AvgExit     looseNumber `json:"avgExitPrice"`
	ClosedPnl   looseNumber `json:"closedPnl"`
	CreatedTime looseNumber `json:"createdTime"`
	UpdatedTime looseNumber `json:"updatedTime"`
}

// ----- доменные записи -----

// Balance — эквити аккаунта в USDT.
type Balance struct {
	TotalEquity float64
}

// Position — открытая позиция, size всегда > 0: нулевые не материализуются.
type Position struct {
	Symbol   string
	Side     string
	Size     float64
	Entry    float64
	Pnl      float64
	Leverage float64
	LiqPrice float64
}

// ClosedTrade — закрытая сделка из closed-pnl.
type ClosedTrade struct {
	Symbol    string
	Side      string
	Qty       float64
	Entry     float64
	Exit      float64
	Pnl       float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
