package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/market"
)

const (
	baseURL             = "https://api.coingecko.com/api/v3"
	headerAPIKey        = "x-cg-demo-api-key"
	requestTimeout      = 10 * time.Second
	rateLimitRetryAfter = 60 * time.Second
)

// symbolIDs maps tickers onto CoinGecko coin IDs
var symbolIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"USDC":  "usd-coin",
	"USDT":  "tether",
	"SOL":   "solana",
	"BNB":   "binancecoin",
	"ADA":   "cardano",
	"DOT":   "polkadot",
	"MATIC": "matic-network",
	"AVAX":  "avalanche-2",
	"DOGE":  "dogecoin",
	"XRP":   "ripple",
	"LTC":   "litecoin",
}

// Client represents a CoinGecko API client
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new CoinGecko API client
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: baseURL,
	}
}

// WithBaseURL points the client at another host; used by tests
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

// CoinID resolves a ticker to a CoinGecko ID. Unknown tickers are passed through lowercased
// so that callers can use CoinGecko IDs directly.
func CoinID(symbol string) string {
	if id, ok := symbolIDs[market.NormalizeSymbol(symbol)]; ok {
		return id
	}
	return strings.ToLower(strings.TrimSpace(symbol))
}

// Name implements market.QuoteProvider
func (c *Client) Name() market.Source {
	return market.SourceCoinGecko
}

// Quote implements market.QuoteProvider
func (c *Client) Quote(ctx context.Context, symbol string) (decimal.Decimal, error) {
	id := CoinID(symbol)
	prices, err := c.GetCurrentPrices(ctx, []string{id})
	if err != nil {
		return decimal.Zero, err
	}
	price, ok := prices[id]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", market.ErrSymbolNotFound, symbol)
	}
	return price, nil
}

// GetCurrentPrices fetches current USD prices for multiple assets
// ids: coingecko IDs (e.g., "bitcoin", "ethereum", "usd-coin")
func (c *Client) GetCurrentPrices(ctx context.Context, ids []string) (map[string]decimal.Decimal, error) {
	if len(ids) == 0 {
		return make(map[string]decimal.Decimal), nil
	}

	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))
	params.Set("vs_currencies", "usd")
	params.Set("precision", "8")

	reqURL := fmt.Sprintf("%s/simple/price?%s", c.baseURL, params.Encode())

	var raw map[string]map[string]json.Number
	if err := c.getJSON(ctx, reqURL, &raw); err != nil {
		return nil, err
	}

	result := make(map[string]decimal.Decimal, len(raw))
	for id, currencies := range raw {
		usd, ok := currencies["usd"]
		if !ok {
			continue
		}
		price, err := decimal.NewFromString(usd.String())
		if err != nil {
			continue
		}
		result[id] = price
	}

	return result, nil
}

func (c *Client) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.apiKey != "" {
		req.Header.Set(headerAPIKey, c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{
			RetryAfter: rateLimitRetryAfter,
			Message:    "CoinGecko API rate limit exceeded",
		}
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// RateLimitError represents a rate limit error from CoinGecko API
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s (retry after %s)", e.Message, e.RetryAfter)
}

// IsRateLimitError checks if an error is a rate limit error
func IsRateLimitError(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

var _ market.QuoteProvider = (*Client)(nil)
