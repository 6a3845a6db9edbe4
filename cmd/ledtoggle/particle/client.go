// Copyright (C) 2026 Toitware ApS. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package particle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

const (
	accessTokenParam = "access_token"
	argsParam        = "args"
	redacted         = "REDACTED"
)

// HTTPClient is the part of *http.Client used by Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the Particle device cloud API.
type Client struct {
	apiURL     string
	token      string
	httpClient HTTPClient
	log        *zap.SugaredLogger
}

type Option func(*Client)

func WithHTTPClient(c HTTPClient) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(client *Client) {
		client.log = log
	}
}

func New(cfg Config, opts ...Option) *Client {
	apiURL := strings.TrimRight(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		apiURL: apiURL,
		token:  cfg.AccessToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) deviceURL(deviceID string, name string) string {
	return c.apiURL + "/v1/devices/" + url.PathEscape(deviceID) + "/" + name
}

// LEDStatus reads the led_status variable of the device.
// The response must be a JSON object; its `result` field goes through
// ParseStatus, so a missing or unknown value reads as Off.
func (c *Client) LEDStatus(ctx context.Context, deviceID string) (Status, error) {
	q := url.Values{}
	q.Set(accessTokenParam, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.deviceURL(deviceID, "led_status")+"?"+q.Encode(), nil)
	if err != nil {
		return "", c.redact(err)
	}

	c.log.Debugw("reading LED status", "device", deviceID)
	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to read LED status: %w", c.redact(err))
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read LED status: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", newStatusError(res, body)
	}

	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("could not parse LED status response: %w", err)
	}
	payload, ok := decoded.(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("could not parse LED status response: expected a JSON object, got '%s'", strings.TrimSpace(string(body)))
	}

	result := payload["result"]
	status := ParseStatus(result)
	if s, ok := result.(string); !ok || (s != string(On) && s != string(Off)) {
		c.log.Warnw("unrecognized LED status, treating it as off", "device", deviceID, "result", result)
	}
	c.log.Debugw("got LED status", "device", deviceID, "status", status)
	return status, nil
}

// SetLED calls the led function of the device with the given state.
// Only transport failures are reported; the reply is not inspected.
func (c *Client) SetLED(ctx context.Context, deviceID string, status Status) error {
	form := url.Values{}
	form.Set(argsParam, string(status))
	form.Set(accessTokenParam, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.deviceURL(deviceID, "led"), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.log.Debugw("sending LED command", "device", deviceID, "args", status)
	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send LED command: %w", c.redact(err))
	}
	defer res.Body.Close()

	io.Copy(io.Discard, res.Body) // Avoid closing connection prematurely.
	if res.StatusCode < 200 || res.StatusCode > 299 {
		c.log.Warnw("device cloud did not accept the LED command", "device", deviceID, "status", res.Status)
	} else {
		c.log.Debugw("LED command sent", "device", deviceID, "status", res.Status)
	}
	return nil
}

// redact hides the access token in errors that carry the request URL,
// including URLs that don't parse.
func (c *Client) redact(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	urlErr.URL = redactURL(urlErr.URL)
	if c.token != "" {
		urlErr.URL = strings.ReplaceAll(urlErr.URL, url.QueryEscape(c.token), redacted)
		urlErr.URL = strings.ReplaceAll(urlErr.URL, c.token, redacted)
	}
	return err
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if !q.Has(accessTokenParam) {
		return raw
	}
	q.Set(accessTokenParam, redacted)
	u.RawQuery = q.Encode()
	return u.String()
}
