// Package webhook предоставляет клиент для внешнего endpoint, принимающего заявки.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mmeshcher/reintegro-form/internal/model"
)

// Способы передачи секрета.
const (
	DeliveryQuery  = "query"
	DeliveryHeader = "header"
)

// Options описывает адрес endpoint и политику передачи секрета.
type Options struct {
	EndpointURL    string
	SecretKey      string
	SecretDelivery string
	QueryParamName string
	SecretHeader   string
}

// StatusError возвращается, если endpoint ответил статусом вне диапазона 2xx.
type StatusError struct {
	StatusCode int
	Details    string
}

func (e *StatusError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d - %s", e.StatusCode, e.Details)
}

// Client инкапсулирует HTTP-взаимодействие с endpoint.
type Client struct {
	opts       Options
	httpClient *http.Client
}

// NewClient создаёт клиент. Если httpClient не задан, используется клиент без таймаута.
func NewClient(opts Options, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if opts.SecretDelivery == "" {
		opts.SecretDelivery = DeliveryQuery
	}
	if opts.QueryParamName == "" {
		opts.QueryParamName = "code"
	}
	if opts.SecretHeader == "" {
		opts.SecretHeader = "x-api-key"
	}

	return &Client{
		opts:       opts,
		httpClient: httpClient,
	}
}

func (c *Client) hasSecret() bool {
	return strings.TrimSpace(c.opts.SecretKey) != ""
}

// TargetURL возвращает адрес запроса с учётом передачи секрета в query-параметре.
func (c *Client) TargetURL() string {
	base := c.opts.EndpointURL
	if !c.hasSecret() || c.opts.SecretDelivery != DeliveryQuery {
		return base
	}

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}

	return base + sep + c.opts.QueryParamName + "=" + url.QueryEscape(c.opts.SecretKey)
}

// Send отправляет полезную нагрузку методом POST.
func (c *Client) Send(ctx context.Context, payload model.Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.TargetURL(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.hasSecret() && c.opts.SecretDelivery == DeliveryHeader {
		req.Header.Set(c.opts.SecretHeader, c.opts.SecretKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	return &StatusError{
		StatusCode: resp.StatusCode,
		Details:    readDetails(resp),
	}
}

// readDetails извлекает диагностику из тела ответа; ошибки чтения игнорируются.
func readDetails(resp *http.Response) string {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return ""
		}
		return buf.String()
	}

	return string(raw)
}
