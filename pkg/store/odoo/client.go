package odoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

// FieldMeta describes one field of a backend model.
type FieldMeta struct {
	Type     string `json:"type"`
	Label    string `json:"string"`
	Required bool   `json:"required"`
	Readonly bool   `json:"readonly"`
	Relation string `json:"relation,omitempty"`
	Help     string `json:"help,omitempty"`
}

// Client is the remote-model collaborator. Implementations are assumed
// reliable and synchronous; retry and timeout policy live outside this engine.
type Client interface {
	SearchRead(ctx context.Context, model string, domain Domain, fields []string, limit, offset int, order string) ([]Record, error)
	Execute(ctx context.Context, model, method string, args []any, kwargs map[string]any) (any, error)
	ReadRecords(ctx context.Context, model string, ids []int64, fields []string) ([]Record, error)
	GetModelFields(ctx context.Context, model string) (map[string]FieldMeta, error)
}

// ClientConfig carries the connection settings for the JSON-RPC client.
type ClientConfig struct {
	URL      string
	Database string
	Username string
	APIKey   string
}

type rpcClient struct {
	cfg  ClientConfig
	http *http.Client
	uid  int64
	seq  atomic.Int64
}

// NewClient builds a client speaking the backend's /jsonrpc endpoint.
// Authenticate must be called once before any model operation.
func NewClient(cfg ClientConfig) *rpcClient {
	return &rpcClient{
		cfg:  cfg,
		http: &http.Client{Timeout: 120 * time.Second},
	}
}

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      int64     `json:"id"`
}

type rpcParams struct {
	Service string `json:"service"`
	Method  string `json:"method"`
	Args    []any  `json:"args"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Message string `json:"message"`
	} `json:"data"`
}

func (e *rpcError) Error() string {
	if e.Data.Message != "" {
		return e.Data.Message
	}
	return e.Message
}

func (c *rpcClient) call(ctx context.Context, service, method string, args []any, out any) error {
	payload := rpcRequest{
		JSONRPC: "2.0",
		Method:  "call",
		Params:  rpcParams{Service: service, Method: method, Args: args},
		ID:      c.seq.Add(1),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode rpc request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL+"/jsonrpc", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("rpc call failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("failed to decode rpc response: %w", err)
	}
	if decoded.Error != nil {
		return decoded.Error
	}
	if out != nil && decoded.Result != nil {
		if err := json.Unmarshal(decoded.Result, out); err != nil {
			return fmt.Errorf("failed to decode rpc result: %w", err)
		}
	}
	return nil
}

// Authenticate resolves the user id for the configured credentials.
func (c *rpcClient) Authenticate(ctx context.Context) error {
	var uid int64
	args := []any{c.cfg.Database, c.cfg.Username, c.cfg.APIKey, map[string]any{}}
	if err := c.call(ctx, "common", "authenticate", args, &uid); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	if uid == 0 {
		return fmt.Errorf("authentication rejected for user %q on database %q", c.cfg.Username, c.cfg.Database)
	}
	c.uid = uid
	return nil
}

func (c *rpcClient) executeKw(ctx context.Context, model, method string, args []any, kwargs map[string]any, out any) error {
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	callArgs := []any{c.cfg.Database, c.uid, c.cfg.APIKey, model, method, args, kwargs}
	return c.call(ctx, "object", "execute_kw", callArgs, out)
}

func (c *rpcClient) SearchRead(
	ctx context.Context,
	model string,
	domain Domain,
	fields []string,
	limit, offset int,
	order string,
) ([]Record, error) {
	if domain == nil {
		domain = Domain{}
	}
	kwargs := map[string]any{}
	if len(fields) > 0 {
		kwargs["fields"] = fields
	}
	if limit > 0 {
		kwargs["limit"] = limit
	}
	if offset > 0 {
		kwargs["offset"] = offset
	}
	if order != "" {
		kwargs["order"] = order
	}

	var records []Record
	if err := c.executeKw(ctx, model, "search_read", []any{domain}, kwargs, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *rpcClient) Execute(ctx context.Context, model, method string, args []any, kwargs map[string]any) (any, error) {
	var result any
	if err := c.executeKw(ctx, model, method, args, kwargs, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *rpcClient) ReadRecords(ctx context.Context, model string, ids []int64, fields []string) ([]Record, error) {
	kwargs := map[string]any{}
	if len(fields) > 0 {
		kwargs["fields"] = fields
	}
	var records []Record
	if err := c.executeKw(ctx, model, "read", []any{ids}, kwargs, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *rpcClient) GetModelFields(ctx context.Context, model string) (map[string]FieldMeta, error) {
	kwargs := map[string]any{
		"attributes": []string{"type", "string", "required", "readonly", "relation", "help"},
	}
	var fields map[string]FieldMeta
	if err := c.executeKw(ctx, model, "fields_get", []any{}, kwargs, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
