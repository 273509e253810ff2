package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
)

// encodeParams кодирует параметры запроса. url.Values.Encode сортирует ключи
// по возрастанию — ровно эта строка и подписывается, и уходит на провод.
// Любое расхождение между ними ломает подпись на стороне биржи.
func encodeParams(params map[string]string) string {
	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	return values.Encode()
}

// sign считает подпись Bybit V5: HMAC-SHA256 от
// timestamp + apiKey + recvWindow + queryString, hex в нижнем регистре.
func sign(apiSecret, apiKey, timestamp, recvWindow, queryString string) string {
	signString := timestamp + apiKey + recvWindow + queryString

	h := hmac.New(sha256.New, []byte(apiSecret))
	h.Write([]byte(signString))
	return hex.EncodeToString(h.Sum(nil))
}
