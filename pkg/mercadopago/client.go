package mercadopago

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/mperror"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/mercadopago/sdk-go/pkg/user"
)

const (
	defaultBaseURL              = "https://api.mercadopago.com"
	responseBodyReadLimit int64 = 1 << 20
)

var errAccessTokenRequired = errors.New("mercado pago access token is required")

// Client talks to Mercado Pago through the official SDK with a server-side access token.
type Client struct {
	payments    payment.Client
	preferences preference.Client
	users       user.Client
	requester   *requester
	accessToken string
}

type clientOptions struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*clientOptions)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithBaseURL overrides the API host.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			o.baseURL = trimmed
		}
	}
}

func NewClient(accessToken string, opts ...Option) (*Client, error) {
	token := strings.TrimSpace(accessToken)
	if token == "" {
		return nil, errAccessTokenRequired
	}

	options := clientOptions{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	base, err := url.Parse(strings.TrimRight(options.baseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("mercadopago: invalid base url %q", options.baseURL)
	}

	rq := &requester{httpClient: options.httpClient, base: base}

	cfg, err := config.New(token, config.WithHTTPClient(rq))
	if err != nil {
		return nil, fmt.Errorf("mercadopago: %w", err)
	}

	return &Client{
		payments:    payment.NewClient(cfg),
		preferences: preference.NewClient(cfg),
		users:       user.NewClient(cfg),
		requester:   rq,
		accessToken: token,
	}, nil
}

// APIError is a non-2xx answer, or a 2xx answer carrying an error field.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("mercadopago: status %d: %s (%s)", e.StatusCode, e.Message, e.Code)
	}

	return fmt.Sprintf("mercadopago: status %d: %s", e.StatusCode, e.Message)
}

// CreatePreference opens a hosted checkout and returns its redirect point.
func (c *Client) CreatePreference(ctx context.Context, req preference.Request, idempotencyKey string) (*preference.Response, error) {
	if req.BackURLs == nil || req.BackURLs.Success == "" || req.BackURLs.Failure == "" || req.BackURLs.Pending == "" {
		return nil, errors.New("mercadopago: success, failure and pending back urls are required")
	}

	pref, err := c.preferences.Create(withIdempotencyKey(ctx, idempotencyKey), req)
	if err != nil {
		return nil, apiError(err)
	}

	if pref == nil || (pref.InitPoint == "" && pref.SandboxInitPoint == "") {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "preference has no redirect url"}
	}

	return pref, nil
}

// CreatePayment charges a card token, or issues a PIX or boleto depending on PaymentMethodID.
func (c *Client) CreatePayment(ctx context.Context, req payment.Request, idempotencyKey string) (*payment.Response, error) {
	created, err := c.payments.Create(withIdempotencyKey(ctx, idempotencyKey), req)
	if err != nil {
		return nil, apiError(err)
	}

	if created == nil || created.ID == 0 {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "payment has no id"}
	}

	return created, nil
}

func (c *Client) GetPayment(ctx context.Context, id string) (*payment.Response, error) {
	numeric, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil || numeric <= 0 {
		return nil, fmt.Errorf("mercadopago: invalid payment id %q", id)
	}

	found, err := c.payments.Get(ctx, numeric)
	if err != nil {
		return nil, apiError(err)
	}

	return found, nil
}

// GetInstallments lists payer costs for an amount and the first six card digits.
// The SDK has no client for this endpoint, so it goes through the same requester by hand.
func (c *Client) GetInstallments(ctx context.Context, amount, bin string) ([]InstallmentOption, error) {
	query := url.Values{}
	query.Set("amount", amount)

	if bin != "" {
		query.Set("bin", bin)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, defaultBaseURL+"/v1/payment_methods/installments?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.requester.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if err != nil {
		return nil, fmt.Errorf("mercadopago: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseErrorBody(resp.StatusCode, raw)
	}

	var options []InstallmentOption
	if err := json.Unmarshal(raw, &options); err != nil {
		if apiErr := parseErrorBody(resp.StatusCode, raw); apiErr.Code != "" {
			return nil, apiErr
		}

		return nil, fmt.Errorf("mercadopago: decode response: %w", err)
	}

	return options, nil
}

// Ping reads the account that owns the access token.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.users.Get(ctx); err != nil {
		return apiError(err)
	}

	return nil
}

type idempotencyKeyCtx struct{}

func withIdempotencyKey(ctx context.Context, key string) context.Context {
	if key == "" {
		return ctx
	}

	return context.WithValue(ctx, idempotencyKeyCtx{}, key)
}

// requester sends SDK requests through our HTTP client, points them at the configured host and
// replaces the SDK's random idempotency key with the caller's, so a retried charge is not duplicated.
type requester struct {
	httpClient *http.Client
	base       *url.URL
}

func (r *requester) Do(req *http.Request) (*http.Response, error) {
	if key, ok := req.Context().Value(idempotencyKeyCtx{}).(string); ok {
		req.Header.Set("X-Idempotency-Key", key)
	}

	req.URL.Scheme = r.base.Scheme
	req.URL.Host = r.base.Host
	req.Host = r.base.Host

	if r.base.Path != "" {
		req.URL.Path = r.base.Path + req.URL.Path
	}

	return r.httpClient.Do(req)
}

// apiError turns an SDK response error into an APIError. Transport errors pass through unchanged.
func apiError(err error) error {
	var respErr *mperror.ResponseError
	if errors.As(err, &respErr) {
		return parseErrorBody(respErr.StatusCode, []byte(respErr.Message))
	}

	return fmt.Errorf("mercadopago: %w", err)
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Cause   []struct {
		Code        any    `json:"code"`
		Description string `json:"description"`
	} `json:"cause"`
}

func parseErrorBody(status int, raw []byte) *APIError {
	var b errorBody
	_ = json.Unmarshal(raw, &b)

	apiErr := &APIError{StatusCode: status, Code: b.Error, Message: b.Message}

	if len(b.Cause) > 0 && b.Cause[0].Description != "" {
		apiErr.Message = b.Cause[0].Description
	}

	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}

	return apiErr
}
