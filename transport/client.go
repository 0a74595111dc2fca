// Package transport is the thin JSON-over-HTTP shim to the chain's REST
// endpoints. It is deliberately unaware of encryption: callers hand it
// opaque JSON bodies and get opaque JSON responses back, converting
// non-2xx responses into structured apierrors.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/scrt-labs/secret-sdk-go/apierrors"
)

// BroadcastMode selects how long PostTx waits before returning.
type BroadcastMode string

// Supported broadcast modes. Block is the default.
const (
	BroadcastBlock BroadcastMode = "block"
	BroadcastSync  BroadcastMode = "sync"
	BroadcastAsync BroadcastMode = "async"
)

// StdTx is the amino-style transaction envelope posted to /txs. Sign-bytes
// construction and amino encoding themselves are external collaborators;
// this struct only shapes the wire body of the broadcast.
type StdTx struct {
	Msg        []json.RawMessage `json:"msg"`
	Fee        json.RawMessage   `json:"fee"`
	Signatures []json.RawMessage `json:"signatures"`
	Memo       string            `json:"memo"`
}

// PostTxRequest is the broadcast envelope, StdTx plus the requested mode.
type PostTxRequest struct {
	Tx   StdTx         `json:"tx"`
	Mode BroadcastMode `json:"mode"`
}

// PostTxResponse is the chain's response to a broadcast.
type PostTxResponse struct {
	Height    string          `json:"height"`
	TxHash    string          `json:"txhash"`
	Code      uint32          `json:"code"`
	RawLog    string          `json:"raw_log"`
	Data      string          `json:"data"`
	Logs      json.RawMessage `json:"logs"`
	GasWanted string          `json:"gas_wanted"`
	GasUsed   string          `json:"gas_used"`
}

// Client is the general node connection interface consumed by the
// codehash and iopubkey caches, masterkeys, and the client facade.
type Client interface {
	// Get issues a GET request and returns the raw JSON body.
	Get(ctx context.Context, path string) ([]byte, error)

	// PostJSON issues a POST request with a JSON body and returns the raw
	// JSON response body.
	PostJSON(ctx context.Context, path string, body interface{}) ([]byte, error)

	// PostTx broadcasts a signed transaction.
	PostTx(ctx context.Context, tx StdTx, mode BroadcastMode) (*PostTxResponse, error)
}

type restClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a REST Client.
type Option func(*restClient)

// WithHTTPClient overrides the underlying *http.Client, e.g. to set custom
// TLS configuration or transport-level timeouts.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *restClient) { c.httpClient = hc }
}

// WithLogger overrides the zap logger used for request-level diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *restClient) { c.logger = l }
}

// New constructs a REST Client talking to baseURL (e.g.
// "https://lcd.secret.express").
func New(baseURL string, opts ...Option) Client {
	c := &restClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *restClient) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, apierrors.TransportError{Op: method + " " + path, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("secret transport request", zap.String("method", method), zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.TransportError{Op: method + " " + path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("secret transport non-2xx response",
			zap.String("path", path), zap.Int("status", resp.StatusCode))
		return nil, apierrors.ServerError{Status: resp.StatusCode, Body: extractErrorBody(raw)}
	}

	return raw, nil
}

// Get implements Client.
func (c *restClient) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// PostJSON implements Client.
func (c *restClient) PostJSON(ctx context.Context, path string, body interface{}) ([]byte, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("transport: failed to encode request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(encoded))
}

// PostTx implements Client.
func (c *restClient) PostTx(ctx context.Context, tx StdTx, mode BroadcastMode) (*PostTxResponse, error) {
	if mode == "" {
		mode = BroadcastBlock
	}
	raw, err := c.PostJSON(ctx, "/txs", PostTxRequest{Tx: tx, Mode: mode})
	if err != nil {
		return nil, err
	}
	var rsp PostTxResponse
	if err := json.Unmarshal(raw, &rsp); err != nil {
		return nil, apierrors.SchemaError{Reason: fmt.Sprintf("malformed tx broadcast response: %v", err)}
	}
	return &rsp, nil
}

type errorBody struct {
	Error string `json:"error"`
}

// extractErrorBody pulls the {"error": "..."} message a Cosmos-SDK LCD
// server puts in non-2xx bodies, falling back to the raw body verbatim.
func extractErrorBody(raw []byte) string {
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil && eb.Error != "" {
		return eb.Error
	}
	return string(bytes.TrimSpace(raw))
}

// UnmarshalStringField extracts a single named string field from a JSON
// response, used for the small {"result": "<hex>"} shaped code-hash and
// pubkey endpoints.
func UnmarshalStringField(raw []byte, field string) (string, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", fmt.Errorf("malformed JSON: %w", err)
	}
	v, ok := m[field]
	if !ok {
		return "", fmt.Errorf("missing field %q", field)
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", fmt.Errorf("field %q is not a string: %w", field, err)
	}
	return s, nil
}
