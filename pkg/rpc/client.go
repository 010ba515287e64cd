package rpc

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/recrd-io/recrd-sdk-go/pkg/shared"
)

type Config struct {
	// Network is a network name or a full node URL.
	Network    string
	URL        string
	HTTPClient *http.Client
	Headers    map[string]string
}

type Client struct {
	url        string
	network    string
	httpClient *http.Client
	headers    map[string]string
	nextID     atomic.Uint64
}

// NewClient creates a new Client.
func NewClient(config Config) (*Client, error) {
	endpoint := strings.TrimSpace(config.URL)
	if endpoint == "" {
		endpoint = config.Network
	}
	resolved, network, err := shared.ResolveNodeURL(endpoint)
	if err != nil {
		return nil, err
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	headers := map[string]string{}
	for key, value := range config.Headers {
		headers[key] = value
	}

	return &Client{
		url:        resolved,
		network:    network,
		httpClient: httpClient,
		headers:    headers,
	}, nil
}

// URL returns the node endpoint.
func (c *Client) URL() string {
	return c.url
}

// Network returns the network label resolved from the configuration.
func (c *Client) Network() string {
	return c.network
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *Error          `json:"error"`
}

// Call invokes method with positional params and decodes the result into target.
func (c *Client) Call(ctx context.Context, method string, target any, params ...any) error {
	if params == nil {
		params = []any{}
	}
	payload, err := json.Marshal(request{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", method, err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("Accept", "application/json")
	httpRequest.Header.Set("Accept-Encoding", "gzip, br")
	for key, value := range c.headers {
		httpRequest.Header.Set(key, value)
	}

	httpResponse, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", method, err)
	}
	defer httpResponse.Body.Close()

	body, err := readBody(httpResponse)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", method, err)
	}

	if httpResponse.StatusCode < 200 || httpResponse.StatusCode >= 300 {
		return fmt.Errorf(
			"%s request failed with status %d: %s",
			method,
			httpResponse.StatusCode,
			strings.TrimSpace(string(body)),
		)
	}

	var decoded response
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	if decoded.Error != nil {
		decoded.Error.Method = method
		return decoded.Error
	}
	if target == nil {
		return nil
	}
	if len(decoded.Result) == 0 || string(decoded.Result) == "null" {
		return fmt.Errorf("%s returned an empty result", method)
	}
	if err := json.Unmarshal(decoded.Result, target); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", method, err)
	}
	return nil
}

func readBody(httpResponse *http.Response) ([]byte, error) {
	var reader io.Reader = httpResponse.Body
	switch strings.ToLower(strings.TrimSpace(httpResponse.Header.Get("Content-Encoding"))) {
	case "", "identity":
	case "gzip":
		gzipReader, err := gzip.NewReader(httpResponse.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	case "br":
		reader = brotli.NewReader(httpResponse.Body)
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", httpResponse.Header.Get("Content-Encoding"))
	}
	return io.ReadAll(reader)
}
