package service

import "context"

// WalletBalance возвращает эквити единого аккаунта в USDT.
func (c *Client) WalletBalance(ctx context.Context) (Balance, error) {
	result, err := c.call(ctx, "account/wallet-balance", map[string]string{
		"accountType": "UNIFIED",
		"coin":        "USDT",
	})
	if err != nil {
		return Balance{}, err
	}

	return normalizeBalance(result)
}
