// Package jsonrpc talks to the ledger gateway over JSON-RPC 2.0 on HTTP.
package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bnema/primemall-cli/internal/domain"
	"github.com/bnema/primemall-cli/internal/ports"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	MethodPing            = "gen_ping"
	MethodCall            = "gen_call"
	MethodSendTransaction = "gen_sendTransaction"
	MethodGetTransaction  = "gen_getTransactionByHash"

	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 4 << 20
)

type Config struct {
	RPCURL  string
	Timeout time.Duration
	// RateLimit caps requests per second; zero disables limiting.
	RateLimit float64
	Burst     int
}

// Connector hands out clients that share one HTTP client and rate limiter.
type Connector struct {
	rpcURL     string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        logrus.FieldLogger
}

var _ ports.LedgerConnector = (*Connector)(nil)

func NewConnector(cfg Config, log logrus.FieldLogger) (*Connector, error) {
	if strings.TrimSpace(cfg.RPCURL) == "" {
		return nil, errors.New("rpc url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Connector{
		rpcURL:     cfg.RPCURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		log:        log.WithField("component", "jsonrpc"),
	}, nil
}

// Connect pings the gateway with the credential and returns a client bound to
// it.
func (c *Connector) Connect(ctx context.Context, credential string) (ports.LedgerClient, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, errors.New("credential is required")
	}

	client := &Client{
		rpcURL:     c.rpcURL,
		credential: credential,
		httpClient: c.httpClient,
		limiter:    c.limiter,
		log:        c.log,
	}
	if _, err := client.Call(ctx, MethodPing, nil); err != nil {
		return nil, fmt.Errorf("handshake: %w", err)
	}

	return client, nil
}

type Client struct {
	rpcURL     string
	credential string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        logrus.FieldLogger
	nextID     atomic.Uint64
}

var _ ports.LedgerClient = (*Client)(nil)

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      uint64 `json:"id"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
	ID      uint64          `json:"id"`
}

type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// callParams addresses one contract function.
type callParams struct {
	To       string `json:"to"`
	Function string `json:"function"`
	Args     []any  `json:"args"`
}

// Call performs one JSON-RPC request and returns the raw result.
func (c *Client) Call(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	if params == nil {
		params = []any{}
	}

	req := rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.nextID.Add(1),
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.credential)

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute %s: %w", method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", method, err)
	}

	c.log.WithFields(logrus.Fields{
		"method":   method,
		"id":       req.ID,
		"status":   resp.StatusCode,
		"duration": time.Since(started),
	}).Debug("rpc call")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected http status %d: %s", method, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return nil, fmt.Errorf("unmarshal %s response: %w", method, err)
	}
	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}

	return rpcResp.Result, nil
}

// ReadState runs a read-only contract call. String results are unquoted;
// anything else is returned as raw JSON text.
func (c *Client) ReadState(ctx context.Context, address string, function string, args []any) (string, error) {
	result, err := c.Call(ctx, MethodCall, []any{callParams{To: address, Function: function, Args: nonNilArgs(args)}})
	if err != nil {
		return "", err
	}

	parsed := gjson.ParseBytes(result)
	switch parsed.Type {
	case gjson.Null:
		return "", nil
	case gjson.String:
		return parsed.Str, nil
	default:
		return parsed.Raw, nil
	}
}

func (c *Client) Submit(ctx context.Context, address string, function string, args []any) (domain.TxID, error) {
	result, err := c.Call(ctx, MethodSendTransaction, []any{callParams{To: address, Function: function, Args: nonNilArgs(args)}})
	if err != nil {
		return "", err
	}

	hash := gjson.ParseBytes(result)
	if hash.Type != gjson.String || strings.TrimSpace(hash.Str) == "" {
		return "", fmt.Errorf("%s: expected transaction hash, got %s", MethodSendTransaction, string(result))
	}

	return domain.TxID(hash.Str), nil
}

func (c *Client) GetReceipt(ctx context.Context, txID domain.TxID) (domain.Receipt, error) {
	result, err := c.Call(ctx, MethodGetTransaction, []any{string(txID)})
	if err != nil {
		return domain.Receipt{}, err
	}

	parsed := gjson.ParseBytes(result)
	if len(result) == 0 || parsed.Type == gjson.Null {
		return domain.Receipt{}, fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, txID)
	}
	if !parsed.IsObject() {
		return domain.Receipt{}, fmt.Errorf("%s: unexpected receipt %s", MethodGetTransaction, string(result))
	}

	return domain.Receipt{
		TxID:   txID,
		Status: receiptStatus(parsed),
		Body:   append([]byte(nil), result...),
	}, nil
}

// statusCodes maps numeric receipt statuses to their names.
var statusCodes = map[int64]domain.TxStatus{
	1: domain.TxStatusPending,
	2: domain.TxStatusProposing,
	3: domain.TxStatusCommitting,
	4: domain.TxStatusRevealing,
	5: domain.TxStatusAccepted,
	6: domain.TxStatusUndetermined,
	7: domain.TxStatusFinalized,
	8: domain.TxStatusCanceled,
}

func receiptStatus(receipt gjson.Result) domain.TxStatus {
	if name := receipt.Get("status_name"); name.Type == gjson.String && name.Str != "" {
		return domain.NormalizeTxStatus(name.Str)
	}

	status := receipt.Get("status")
	switch status.Type {
	case gjson.String:
		return domain.NormalizeTxStatus(status.Str)
	case gjson.Number:
		if named, ok := statusCodes[status.Int()]; ok {
			return named
		}
	}

	return domain.TxStatusPending
}

func nonNilArgs(args []any) []any {
	if args == nil {
		return []any{}
	}

	return args
}
