package finance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/san-kum/tslab/internal/dynamo"
	"github.com/san-kum/tslab/internal/logging"
)

const (
	DefaultBaseURL = "https://stooq.com/q/d/l/"
	DefaultRetries = 20
	DefaultBackoff = 500 * time.Millisecond
	maxBackoff     = 10 * time.Second
	queryLayout    = "20060102"
)

// Client downloads daily quote CSVs over HTTP.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Retries int
	Backoff time.Duration
	Logger  *slog.Logger
}

func NewClient() *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Retries: DefaultRetries,
		Backoff: DefaultBackoff,
		Logger:  logging.Discard(),
	}
}

// Query selects what [Client.Fetch] downloads and how it shapes the result.
type Query struct {
	Symbols    []string
	Start      time.Time
	End        time.Time
	Descending bool
	Columns    []string
	Fill       string
}

func (q Query) validate() error {
	if len(q.Symbols) == 0 {
		return fmt.Errorf("finance: no symbols: %w", dynamo.ErrInvalidArgument)
	}
	if q.End.Before(q.Start) {
		return fmt.Errorf("finance: end %s before start %s: %w",
			q.End.Format(dateLayout), q.Start.Format(dateLayout), dynamo.ErrInvalidArgument)
	}
	switch q.Fill {
	case FillNone, FillForward, FillBackward:
	default:
		return fmt.Errorf("finance: fill %q: %w", q.Fill, dynamo.ErrUnknownMethod)
	}
	return nil
}

// Fetch downloads every symbol in q. Bars are sorted by date, ascending
// unless q.Descending. With q.Fill set they are first reindexed onto the
// business days of [q.Start, q.End].
func (c *Client) Fetch(ctx context.Context, q Query) (map[string]*History, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	out := make(map[string]*History, len(q.Symbols))
	for _, sym := range q.Symbols {
		bars, err := c.FetchBars(ctx, sym, q.Start, q.End)
		if err != nil {
			return nil, err
		}
		if q.Fill != FillNone {
			if bars, err = Reindex(bars, q.Start, q.End, q.Fill); err != nil {
				return nil, err
			}
		}

		h := &History{Symbol: sym, Bars: bars}
		if err := h.Select(q.Columns); err != nil {
			return nil, err
		}
		h.Sort(q.Descending)
		out[sym] = h
	}
	return out, nil
}

// FetchBars downloads the raw bars of one symbol, retrying transport errors
// and 5xx/429 responses with capped exponential backoff.
func (c *Client) FetchBars(ctx context.Context, symbol string, start, end time.Time) ([]Bar, error) {
	u, err := c.url(symbol, start, end)
	if err != nil {
		return nil, err
	}

	backoff := c.Backoff
	var lastErr error
	for attempt := 0; attempt <= c.Retries; attempt++ {
		if attempt > 0 {
			c.Logger.Warn("retrying quote download", "symbol", symbol, "attempt", attempt, "err", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, maxBackoff)
		}

		body, retry, err := c.get(ctx, u)
		if err == nil {
			c.Logger.Debug("downloaded quotes", "symbol", symbol, "bytes", len(body))
			bars, err := ParseCSV(bytes.NewReader(body))
			if err != nil {
				return nil, fmt.Errorf("finance: %s: %w", symbol, err)
			}
			return bars, nil
		}
		if !retry {
			return nil, fmt.Errorf("finance: %s: %w", symbol, err)
		}
		lastErr = err
	}
	return nil, fmt.Errorf("finance: %s: giving up after %d attempts: %w", symbol, c.Retries+1, lastErr)
}

func (c *Client) url(symbol string, start, end time.Time) (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("finance: base url: %w", err)
	}
	v := u.Query()
	v.Set("s", strings.ToLower(symbol))
	v.Set("d1", start.Format(queryLayout))
	v.Set("d2", end.Format(queryLayout))
	v.Set("i", "d")
	u.RawQuery = v.Encode()
	return u.String(), nil
}

var errStatus = errors.New("unexpected status")

func (c *Client) get(ctx context.Context, u string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, false, err
	}
	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		c.Logger.Log(ctx, logging.LevelTrace, "quote request failed", "url", u, "err", err)
		return nil, true, err
	}
	defer resp.Body.Close()
	c.Logger.Log(ctx, logging.LevelTrace, "quote request", "url", u, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		retry := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return nil, retry, fmt.Errorf("%w: %s", errStatus, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}
	return body, false, nil
}
