package melhorenvio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	defaultBaseURL              = "https://www.melhorenvio.com.br"
	calculatePath               = "/api/v2/me/shipment/calculate"
	responseBodyReadLimit int64 = 1 << 20
)

var errTokenRequired = errors.New("shipping api token is required")

// Client quotes parcel rates against the Melhor Envio calculator.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userAgent  string
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithUserAgent sets the contact string the API asks integrators to send.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

func NewClient(token string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, errTokenRequired
	}

	client := &Client{
		token:      trimmed,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

type PostalCode struct {
	PostalCode string `json:"postal_code"`
}

// Package dimensions are centimetres, weight is kilograms.
type Package struct {
	Height int     `json:"height"`
	Width  int     `json:"width"`
	Length int     `json:"length"`
	Weight float64 `json:"weight"`
}

type QuoteRequest struct {
	From    PostalCode `json:"from"`
	To      PostalCode `json:"to"`
	Package Package    `json:"package"`
}

type Company struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Service is one carrier option. Error is set when the carrier cannot serve the route.
type Service struct {
	ID           int              `json:"id"`
	Name         string           `json:"name"`
	Price        *decimal.Decimal `json:"price"`
	CustomPrice  *decimal.Decimal `json:"custom_price"`
	DeliveryTime int              `json:"delivery_time"`
	CustomTime   int              `json:"custom_delivery_time"`
	Company      Company          `json:"company"`
	Error        string           `json:"error"`
}

// FinalPrice prefers the negotiated price when the account has one.
func (s Service) FinalPrice() decimal.Decimal {
	if s.CustomPrice != nil {
		return *s.CustomPrice
	}

	if s.Price != nil {
		return *s.Price
	}

	return decimal.Zero
}

func (s Service) FinalDeliveryDays() int {
	if s.CustomTime > 0 {
		return s.CustomTime
	}

	return s.DeliveryTime
}

// APIError is a non-2xx response from the calculator.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("melhorenvio: status %d: %s", e.StatusCode, e.Message)
}

func (c *Client) Calculate(ctx context.Context, req QuoteRequest) ([]Service, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("melhorenvio: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.baseURL, "/")+calculatePath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("melhorenvio: build request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("melhorenvio: execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}

	var services []Service
	if err := json.NewDecoder(io.LimitReader(resp.Body, responseBodyReadLimit)).Decode(&services); err != nil {
		return nil, fmt.Errorf("melhorenvio: decode response: %w", err)
	}

	return services, nil
}
