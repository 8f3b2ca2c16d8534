package markets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const coinResponse = `{
	"id": "acme",
	"symbol": "acme",
	"market_data": {
		"current_price": {"usd": 1.25},
		"price_change_percentage_24h": -3.4,
		"total_volume": {"usd": 150000},
		"market_cap": {"usd": 5000000}
	}
}`

func TestParseCoin(t *testing.T) {
	d := parseCoin("acme", "acme", []byte(coinResponse))

	assert.Equal(t, "acme", d.ID)
	assert.Equal(t, "acme", d.Symbol)
	assert.Equal(t, 1.25, d.PriceUSD)
	assert.Equal(t, -3.4, d.Change24h)
	assert.Equal(t, 150000.0, d.Volume24h)
	assert.Equal(t, 5000000.0, d.MarketCapUSD)
}

func TestParseCoinMissingFields(t *testing.T) {
	d := parseCoin("acme", "acme", []byte(`{"id": "acme"}`))

	assert.Equal(t, 0.0, d.PriceUSD)
	assert.Equal(t, 0.0, d.MarketCapUSD)
}

func TestSymbolMapping(t *testing.T) {
	assert.Equal(t, "bitcoin", symbolToID["btc"])
	assert.Equal(t, "ethereum", symbolToID["eth"])
}
