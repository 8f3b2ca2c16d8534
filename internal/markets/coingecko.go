// Package markets fetches market data from the CoinGecko public API.
package markets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
)

const baseURL = "https://api.coingecko.com/api/v3"

// Common symbol -> CoinGecko id mappings. Unknown symbols fall through and
// are tried as ids directly.
var symbolToID = map[string]string{
	"btc":   "bitcoin",
	"eth":   "ethereum",
	"bnb":   "binancecoin",
	"sol":   "solana",
	"matic": "matic-network",
	"ada":   "cardano",
	"doge":  "dogecoin",
	"usdt":  "tether",
	"usdc":  "usd-coin",
	"ltc":   "litecoin",
	"avax":  "avalanche-2",
	"dot":   "polkadot",
	"link":  "chainlink",
	"shib":  "shiba-inu",
	"uni":   "uniswap",
	"atom":  "cosmos",
	"op":    "optimism",
	"arb":   "arbitrum",
}

// Data holds the values extracted from a coin response.
type Data struct {
	ID           string
	Symbol       string
	PriceUSD     float64
	Change24h    float64
	Volume24h    float64
	MarketCapUSD float64
	RetrievedAt  time.Time
}

type cacheEntry struct {
	data      Data
	expiresAt time.Time
}

// Client is a CoinGecko client with a per-symbol TTL cache.
type Client struct {
	http     *http.Client
	cacheTTL time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewClient returns a client caching responses for the given TTL.
func NewClient(cacheTTL time.Duration) *Client {
	return &Client{
		http:     &http.Client{Timeout: 10 * time.Second},
		cacheTTL: cacheTTL,
		cache:    make(map[string]cacheEntry),
	}
}

// FetchData fetches market data for a symbol or CoinGecko id.
func (c *Client) FetchData(ctx context.Context, symbol string) (Data, error) {
	sym := strings.ToLower(strings.TrimSpace(symbol))
	if sym == "" {
		return Data{}, fmt.Errorf("empty symbol")
	}

	c.mu.Lock()
	if e, ok := c.cache[sym]; ok && time.Now().Before(e.expiresAt) {
		c.mu.Unlock()
		return e.data, nil
	}
	c.mu.Unlock()

	id, ok := symbolToID[sym]
	if !ok {
		id = sym
	}

	url := fmt.Sprintf("%s/coins/%s?localization=false&tickers=false&market_data=true&community_data=false&developer_data=false&sparkline=false", baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Data{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Data{}, fmt.Errorf("coingecko request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Data{}, fmt.Errorf("coingecko returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Data{}, err
	}

	d := parseCoin(id, sym, body)
	d.RetrievedAt = time.Now()

	c.mu.Lock()
	c.cache[sym] = cacheEntry{data: d, expiresAt: time.Now().Add(c.cacheTTL)}
	c.mu.Unlock()

	return d, nil
}

// MarketCapUSD fetches just the market cap for a symbol. Returns 0 with no
// error only for coins that genuinely report no market cap.
func (c *Client) MarketCapUSD(ctx context.Context, symbol string) (float64, error) {
	d, err := c.FetchData(ctx, symbol)
	if err != nil {
		return 0, err
	}
	return d.MarketCapUSD, nil
}

func parseCoin(id, sym string, body []byte) Data {
	md := gjson.GetBytes(body, "market_data")
	return Data{
		ID:           id,
		Symbol:       sym,
		PriceUSD:     md.Get("current_price.usd").Float(),
		Change24h:    md.Get("price_change_percentage_24h").Float(),
		Volume24h:    md.Get("total_volume.usd").Float(),
		MarketCapUSD: md.Get("market_cap.usd").Float(),
	}
}
