// Package alphavantage fetches daily closing prices from the Alpha Vantage
// API. Responses are cached on disk with a daily expiry, and the free-tier
// quota notes the API smuggles into 200 responses are surfaced as errors.
package alphavantage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"

	"github.com/folioperf/folioperf"
)

// DefaultBaseURL is the production query endpoint.
const DefaultBaseURL = "https://www.alphavantage.co/query"

// ErrRateLimited reports that the API answered with a quota note instead of
// data. The free tier does this with a 200 status.
var ErrRateLimited = errors.New("alphavantage: rate limited")

// Client queries the Alpha Vantage API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// New returns a client using the daily-expiring disk cache transport.
func New(apiKey string) *Client {
	return &Client{apiKey: apiKey, baseURL: DefaultBaseURL, http: daily()}
}

// NewWithClient returns a client with an explicit base URL and http client.
// Tests use it to point at a local server.
func NewWithClient(apiKey, baseURL string, httpClient *http.Client) *Client {
	return &Client{apiKey: apiKey, baseURL: baseURL, http: httpClient}
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}

// quotaNote detects the "Note" and "Information" fields the API returns in
// place of data when a free-tier key runs out of calls.
func quotaNote(jobj map[string]any) error {
	for _, field := range []string{"Note", "Information"} {
		if msg, ok := jobj[field].(string); ok {
			return fmt.Errorf("%w: %s", ErrRateLimited, msg)
		}
	}
	return nil
}

// Daily returns the daily closing prices for a ticker within the range,
// keyed by trading date.
func (c *Client) Daily(ticker string, rng folioperf.Range) (*folioperf.History[decimal.Decimal], error) {
	addr := fmt.Sprintf("%s?function=TIME_SERIES_DAILY&outputsize=full&symbol=%s&apikey=%s",
		c.baseURL, url.QueryEscape(ticker), c.apiKey)

	var jobj map[string]any
	if err := jwget(c.http, addr, &jobj); err != nil {
		return nil, fmt.Errorf("error retrieving %q: %w", ticker, err)
	}
	if err := quotaNote(jobj); err != nil {
		return nil, err
	}

	path := `$["Time Series (Daily)"]`
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %q %w", ticker, path, err)
	}
	series, ok := jval.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("error parsing %q: %q is not an object", ticker, path)
	}

	prices := &folioperf.History[decimal.Decimal]{}
	for dateStr, jday := range series {
		on, err := folioperf.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("error parsing %q: bad date %q: %w", ticker, dateStr, err)
		}
		if !rng.Contains(on) {
			continue
		}
		close, err := dailyClose(jday)
		if err != nil {
			return nil, fmt.Errorf("error parsing %q on %s: %w", ticker, on, err)
		}
		prices.Append(on, close)
	}
	return prices, nil
}

// dailyClose reads the "4. close" field of one day's bar. The API returns
// numbers as strings.
func dailyClose(jday any) (decimal.Decimal, error) {
	jval, err := jsonpath.Get(`$["4. close"]`, jday)
	if err != nil {
		return decimal.Zero, err
	}
	s, ok := jval.(string)
	if !ok {
		return decimal.Zero, fmt.Errorf("close is not a string: %v", jval)
	}
	close, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid close %q: %w", s, err)
	}
	return close, nil
}

// LatestQuote returns the most recent price and its trading day for a ticker,
// from the GLOBAL_QUOTE endpoint.
func (c *Client) LatestQuote(ticker string) (decimal.Decimal, folioperf.Date, error) {
	addr := fmt.Sprintf("%s?function=GLOBAL_QUOTE&symbol=%s&apikey=%s",
		c.baseURL, url.QueryEscape(ticker), c.apiKey)

	var jobj map[string]any
	if err := jwget(c.http, addr, &jobj); err != nil {
		return decimal.Zero, folioperf.Date{}, fmt.Errorf("error retrieving %q: %w", ticker, err)
	}
	if err := quotaNote(jobj); err != nil {
		return decimal.Zero, folioperf.Date{}, err
	}

	jval, err := jsonpath.Get(`$["Global Quote"]["05. price"]`, jobj)
	if err != nil {
		return decimal.Zero, folioperf.Date{}, fmt.Errorf("no quote for %q: %w", ticker, err)
	}
	s, _ := jval.(string)
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, folioperf.Date{}, fmt.Errorf("invalid price %q for %q: %w", s, ticker, err)
	}

	on := folioperf.Today()
	if jday, err := jsonpath.Get(`$["Global Quote"]["07. latest trading day"]`, jobj); err == nil {
		if s, ok := jday.(string); ok {
			if parsed, err := folioperf.ParseDate(s); err == nil {
				on = parsed
			}
		}
	}
	return price, on, nil
}
