package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testAPIKey    = "test-api-key"
	testAPISecret = "test-api-secret"
	testTimestamp = "1499827319559"
	testRecvWin   = "5000"
)

func TestEncodeParams(t *testing.T) {
	t.Run("sorts keys ascending", func(t *testing.T) {
		q := encodeParams(map[string]string{
			"settleCoin": "USDT",
			"category":   "linear",
		})
		assert.Equal(t, "category=linear&settleCoin=USDT", q)
	})

	t.Run("empty set encodes to empty string", func(t *testing.T) {
		assert.Equal(t, "", encodeParams(map[string]string{}))
		assert.Equal(t, "", encodeParams(nil))
	})

	t.Run("escapes special characters", func(t *testing.T) {
		q := encodeParams(map[string]string{
			"symbol": "BTC/USDT",
			"note":   "a b",
		})
		assert.Equal(t, "note=a+b&symbol=BTC%2FUSDT", q)
	})
}

func TestSign(t *testing.T) {
	t.Run("known vector", func(t *testing.T) {
		q := encodeParams(map[string]string{
			"category":   "linear",
			"settleCoin": "USDT",
		})
		got := sign(testAPISecret, testAPIKey, testTimestamp, testRecvWin, q)
		assert.Equal(t, "33df9a27f1f7ebdf2845d9a81dad218a9169710ebab4c86796cf02e694d54174", got)
	})

	t.Run("empty params", func(t *testing.T) {
		got := sign(testAPISecret, testAPIKey, testTimestamp, testRecvWin, "")
		assert.Equal(t, "e82d90c91e05fc181cd0e15d55ee368871480030a8cd1c615590601baa617adf", got)
	})

	t.Run("special characters", func(t *testing.T) {
		q := encodeParams(map[string]string{
			"symbol": "BTC/USDT",
			"note":   "a b",
		})
		got := sign(testAPISecret, testAPIKey, testTimestamp, testRecvWin, q)
		assert.Equal(t, "9603508a2c9767afaaf07c993b69cc56b9c0f7cba8eaf43c0d900e398dc6c315", got)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		q := encodeParams(map[string]string{"coin": "USDT", "accountType": "UNIFIED"})
		first := sign(testAPISecret, testAPIKey, testTimestamp, testRecvWin, q)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, sign(testAPISecret, testAPIKey, testTimestamp, testRecvWin, q))
		}
	})

	t.Run("insertion order does not matter", func(t *testing.T) {
		a := encodeParams(map[string]string{"a": "1", "b": "2", "c": "3"})
		b := encodeParams(map[string]string{"c": "3", "a": "1", "b": "2"})
		assert.Equal(t, a, b)
		assert.Equal(t,
			sign(testAPISecret, testAPIKey, testTimestamp, testRecvWin, a),
			sign(testAPISecret, testAPIKey, testTimestamp, testRecvWin, b),
		)
	})
}
