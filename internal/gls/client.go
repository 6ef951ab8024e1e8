package gls

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"almanac/internal/almanac"
	"almanac/internal/metrics"
	"almanac/internal/models"
)

const (
	// DefaultURL is the LoRa Cloud full almanac endpoint
	DefaultURL = "https://gls.loracloud.com/api/v3/almanac/full"

	// SubscriptionKeyHeader carries the LoRa Cloud token
	SubscriptionKeyHeader = "Ocp-Apim-Subscription-Key"

	// maxBodySize bounds the response read; a full almanac is a few KiB of base64
	maxBodySize = 4 << 20
)

// Config holds what the client needs to reach the service
type Config struct {
	URL     string
	Token   string
	Timeout time.Duration // 0 means no timeout

	// HTTPClient is used when set, otherwise a plain http.Client
	HTTPClient *http.Client
}

// Client fetches almanac images from the geolocation service
type Client struct {
	url        string
	token      string
	timeout    time.Duration
	httpClient *http.Client
}

// Result is a successfully fetched almanac
type Result struct {
	// Status is the response status line, e.g. "HTTP/1.1 200 OK"
	Status     string
	StatusCode int
	Image      almanac.Image
	Warnings   []string
}

// NewClient validates the configuration and builds a Client
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid almanac URL %q: %w", cfg.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid almanac URL %q: scheme must be http or https", cfg.URL)
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("subscription token is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		url:        cfg.URL,
		token:      cfg.Token,
		timeout:    cfg.Timeout,
		httpClient: httpClient,
	}, nil
}

// Fetch issues the authenticated GET and decodes the almanac image.
// It makes exactly one request; failures are returned as *RequestError,
// *StatusError, *MissingFieldError or *DecodeError.
func (c *Client) Fetch(ctx context.Context) (*Result, error) {
	start := time.Now()
	res, err := c.fetch(ctx)
	metrics.FetchDuration.Observe(time.Since(start).Seconds())
	metrics.FetchRequests.WithLabelValues(resultLabel(err)).Inc()

	if err != nil {
		return nil, err
	}

	metrics.ImageBytes.Set(float64(len(res.Image)))
	metrics.LastSuccess.SetToCurrentTime()
	return res, nil
}

func (c *Client) fetch(ctx context.Context) (*Result, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &RequestError{URL: c.url, Err: err}
	}
	req.Header.Set(SubscriptionKeyHeader, c.token)
	req.Header.Set("Accept", "application/json")

	slog.Debug("Requesting full almanac", "url", c.url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	status := resp.Proto + " " + resp.Status
	slog.Info("Almanac service responded", "status", status)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, &RequestError{URL: c.url, Err: fmt.Errorf("failed to read body: %w", err)}
	}
	if len(body) > maxBodySize {
		return nil, &RequestError{URL: c.url, Err: fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxBodySize)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Messages:   errorMessages(body),
		}
	}

	image, warnings, err := decodeBody(body)
	if err != nil {
		return nil, err
	}

	return &Result{
		Status:     status,
		StatusCode: resp.StatusCode,
		Image:      image,
		Warnings:   warnings,
	}, nil
}

// decodeBody extracts and decodes result.almanac_image. The rest of the
// envelope is read best-effort and never fails the decode.
func decodeBody(body []byte) (almanac.Image, []string, error) {
	var envelope models.AlmanacResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, nil, &MissingFieldError{
			Field:    "result",
			Messages: []string{fmt.Sprintf("body is not a JSON object: %v", err)},
		}
	}
	if isNull(envelope.Result) {
		return nil, nil, &MissingFieldError{Field: "result", Messages: messages(envelope.Errors)}
	}

	var result models.AlmanacResult
	if err := json.Unmarshal(envelope.Result, &result); err != nil {
		return nil, nil, &MissingFieldError{
			Field:    "result",
			Messages: []string{fmt.Sprintf("result is not a JSON object: %v", err)},
		}
	}
	if isNull(result.AlmanacImage) {
		return nil, nil, &MissingFieldError{Field: "result.almanac_image", Messages: messages(envelope.Errors)}
	}

	var encoded string
	if err := json.Unmarshal(result.AlmanacImage, &encoded); err != nil {
		return nil, nil, &MissingFieldError{
			Field:    "result.almanac_image",
			Messages: []string{fmt.Sprintf("almanac_image is not a string: %s", result.AlmanacImage)},
		}
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, nil, &DecodeError{Err: err}
	}

	return almanac.Image(raw), messages(envelope.Warnings), nil
}

// errorMessages pulls diagnostics out of an error body, in either the
// service envelope or the gateway shape. Unknown bodies yield nothing.
func errorMessages(body []byte) []string {
	var envelope models.AlmanacResponse
	if err := json.Unmarshal(body, &envelope); err == nil {
		if msgs := messages(envelope.Errors); len(msgs) > 0 {
			return msgs
		}
	}

	var gateway models.ErrorResponse
	if err := json.Unmarshal(body, &gateway); err == nil && gateway.Message != "" {
		return []string{gateway.Message}
	}

	return nil
}

// messages turns an errors/warnings field into text: a list of strings or a
// single string as-is, each element of any other list as compact JSON, and
// any other value as compact JSON.
func messages(raw json.RawMessage) []string {
	if isNull(raw) {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil {
		out := make([]string, 0, len(items))
		for _, item := range items {
			out = append(out, compact(item))
		}
		return out
	}

	return []string{compact(raw)}
}

func compact(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func resultLabel(err error) string {
	var (
		requestErr *RequestError
		statusErr  *StatusError
		missingErr *MissingFieldError
		decodeErr  *DecodeError
	)

	switch {
	case err == nil:
		return "success"
	case errors.As(err, &requestErr):
		return "request_error"
	case errors.As(err, &statusErr):
		return "status_error"
	case errors.As(err, &missingErr):
		return "missing_field"
	case errors.As(err, &decodeErr):
		return "decode_error"
	default:
		return "error"
	}
}
