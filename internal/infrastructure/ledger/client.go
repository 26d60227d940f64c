// Package ledger reads transactions from an Ethereum-compatible node over its
// JSON-RPC interface. It is strictly read-only: the two methods used are
// eth_getTransactionByHash and eth_getTransactionReceipt.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/chainboard/job-board-api/internal/api/metrics"
	"github.com/chainboard/job-board-api/internal/core/domain"
)

// Config describes the node endpoint. Timeout bounds each Lookup end to end
// so a stalled node cannot hold a confirmation request open indefinitely.
type Config struct {
	RPCURL  string
	Timeout time.Duration
}

// Client implements ports.LedgerReader against a JSON-RPC node.
type Client struct {
	rpcURL  string
	timeout time.Duration
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		rpcURL:  cfg.RPCURL,
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int    `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// rpcTransaction is the subset of eth_getTransactionByHash we care about.
// Value is a hex quantity in Wei.
type rpcTransaction struct {
	Hash  string `json:"hash"`
	To    string `json:"to"`
	Value string `json:"value"`
}

// rpcReceipt is the subset of eth_getTransactionReceipt we care about.
// Status is "0x1" for success, "0x0" for a reverted transaction.
type rpcReceipt struct {
	Status string `json:"status"`
}

// Lookup resolves a transaction and its receipt by hash. A hash the node has
// no record of (pending included) yields domain.ErrTxNotFound; transport
// failures yield domain.ErrLedgerUnavailable.
func (c *Client) Lookup(ctx context.Context, txHash string) (*domain.LedgerTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	tx, receipt, err := c.fetch(ctx, txHash)
	metrics.LedgerLookupDuration.WithLabelValues(lookupResult(err)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	value, err := parseHexWei(tx.Value)
	if err != nil {
		return nil, fmt.Errorf("ledger: transaction %s: %w", txHash, err)
	}

	return &domain.LedgerTransaction{
		Hash:      tx.Hash,
		Recipient: tx.To,
		Value:     value,
		Succeeded: receipt.Status == "0x1",
	}, nil
}

func (c *Client) fetch(ctx context.Context, txHash string) (*rpcTransaction, *rpcReceipt, error) {
	var tx rpcTransaction
	found, err := c.call(ctx, "eth_getTransactionByHash", txHash, &tx)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		return nil, nil, domain.ErrTxNotFound
	}

	var receipt rpcReceipt
	found, err = c.call(ctx, "eth_getTransactionReceipt", txHash, &receipt)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		// Known transaction without a receipt: still pending, not confirmed.
		return nil, nil, domain.ErrTxNotFound
	}

	return &tx, &receipt, nil
}

// call performs one JSON-RPC request. It returns found=false when the node
// answers with a null result, which is how Ethereum nodes report an unknown
// hash.
func (c *Client) call(ctx context.Context, method, txHash string, out any) (bool, error) {
	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  []any{txHash},
		ID:      1,
	})
	if err != nil {
		return false, fmt.Errorf("ledger: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("ledger: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", domain.ErrLedgerUnavailable, method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: %s: node returned %d", domain.ErrLedgerUnavailable, method, resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return false, fmt.Errorf("%w: %s: decode: %v", domain.ErrLedgerUnavailable, method, err)
	}
	if rpcResp.Error != nil {
		return false, fmt.Errorf("%w: %s: rpc error %d: %s", domain.ErrLedgerUnavailable, method, rpcResp.Error.Code, rpcResp.Error.Message)
	}
	if len(rpcResp.Result) == 0 || string(rpcResp.Result) == "null" {
		return false, nil
	}

	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return false, fmt.Errorf("%w: %s: unmarshal result: %v", domain.ErrLedgerUnavailable, method, err)
	}
	return true, nil
}

// parseHexWei converts a 0x-prefixed hex quantity into an exact integer.
// Floats never enter the picture: Wei amounts exceed float64 precision.
func parseHexWei(s string) (*big.Int, error) {
	trimmed := strings.TrimPrefix(s, "0x")
	if trimmed == "" {
		return nil, fmt.Errorf("empty value quantity %q", s)
	}
	value, ok := new(big.Int).SetString(trimmed, 16)
	if !ok {
		return nil, fmt.Errorf("invalid value quantity %q", s)
	}
	return value, nil
}

func lookupResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrTxNotFound):
		return "not_found"
	default:
		return "error"
	}
}
