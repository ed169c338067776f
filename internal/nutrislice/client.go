// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package nutrislice

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/AnirudhJM24/TechJacked/internal/menu"
)

// DefaultBaseURL is the weekly school menu endpoint for Georgia Tech dining.
const DefaultBaseURL = "https://techdining.api.nutrislice.com/menu/api/weeks/school"

const (
	defaultTimeout  = 30 * time.Second
	defaultRetryMax = 3
)

// Client fetches weekly menus. The zero value is not usable, use NewClient.
type Client struct {
	BaseURL string
	http    *retryablehttp.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.BaseURL = strings.TrimSuffix(u, "/")
		}
	}
}

// WithRetryMax sets the number of retries after the first attempt.
func WithRetryMax(n int) Option {
	return func(c *Client) { c.http.RetryMax = n }
}

// WithRetryWait sets the backoff bounds between attempts.
func WithRetryWait(minWait, maxWait time.Duration) Option {
	return func(c *Client) {
		c.http.RetryWaitMin = minWait
		c.http.RetryWaitMax = maxWait
	}
}

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.HTTPClient.Timeout = d }
}

// NewClient returns a client with retrying transport.
func NewClient(opts ...Option) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = defaultRetryMax
	rc.HTTPClient.Timeout = defaultTimeout
	rc.Logger = leveledLogger{}

	c := &Client{
		BaseURL: DefaultBaseURL,
		http:    rc,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MenuURL builds the weekly menu URL for a hall, meal and date. The API
// returns the whole week containing date.
func (c *Client) MenuURL(hall string, meal string, date time.Time) string {
	return fmt.Sprintf("%s/%s/menu-type/%s/%d/%02d/%02d/",
		c.BaseURL, hall, meal, date.Year(), int(date.Month()), date.Day())
}

// FetchWeek downloads and parses the menu for the week containing date.
// Items are stamped with the hall's display name.
func (c *Client) FetchWeek(ctx context.Context, hall menu.Hall, meal string, date time.Time) ([]menu.Item, error) {
	url := c.MenuURL(hall.Slug, meal, date)
	log.Debugf("GET %s", url)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch menu from %s: %w", hall.Slug, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch menu from %s: %s", hall.Slug, resp.Status)
	}

	var doc bytes.Buffer
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	items, err := ParseWeek(doc.Bytes(), hall.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse menu from %s: %w", hall.Slug, err)
	}
	log.Debugf("parsed %d items from %s", len(items), hall.Slug)

	return items, nil
}

// leveledLogger routes retryablehttp's logging to apex.
type leveledLogger struct{}

func (leveledLogger) Error(msg string, kv ...interface{}) { log.WithFields(fields(kv)).Error(msg) }
func (leveledLogger) Warn(msg string, kv ...interface{})  { log.WithFields(fields(kv)).Warn(msg) }
func (leveledLogger) Info(msg string, kv ...interface{})  { log.WithFields(fields(kv)).Debug(msg) }
func (leveledLogger) Debug(msg string, kv ...interface{}) { log.WithFields(fields(kv)).Debug(msg) }

func fields(kv []interface{}) log.Fields {
	f := log.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		f[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return f
}
