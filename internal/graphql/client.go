// Package graphql is the gateway to the external document store. Every call
// POSTs {query, variables} to one endpoint and decodes the data envelope.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/yukikurage/proposal-board-api/internal/metrics"
)

// Endpoints exposed by the document store, one per document type.
const (
	EndpointOrganization = "/graphql/dao"
	EndpointProposal     = "/graphql/proposal"
	EndpointTask         = "/graphql/task"
	EndpointSystem       = "/graphql/system"
)

// maxErrorBodySize limits how much of a failed response is kept in errors.
const maxErrorBodySize = 4096

// ErrNoData is returned when the store answers 2xx without data or errors.
var ErrNoData = errors.New("document store returned no data")

// TransportError reports an unreachable store or a non-2xx response.
// StatusCode is zero when no response was received.
type TransportError struct {
	Endpoint   string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("document store request to %s failed: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("document store request to %s failed: %d %s", e.Endpoint, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// GraphQLError reports a 2xx response carrying an errors array.
type GraphQLError struct {
	Endpoint string
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "document store error: " + strings.Join(e.Messages, "; ")
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Config is passed to NewClient; nothing in this package has defaults of its own.
type Config struct {
	BaseURL string
	// DriveID is the container documents are listed from and created in.
	DriveID    string
	HTTPClient *http.Client
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
}

// Client is safe for concurrent use.
type Client struct {
	baseURL    string
	driveID    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a gateway client.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		driveID:    cfg.DriveID,
		httpClient: httpClient,
		logger:     logger,
		metrics:    cfg.Metrics,
	}
}

// DriveID returns the configured container identifier.
func (c *Client) DriveID() string {
	return c.driveID
}

// Do executes query against endpoint and decodes the data object into out.
// out may be nil when the caller does not need the result.
func (c *Client) Do(ctx context.Context, endpoint, query string, variables map[string]any, out any) error {
	start := time.Now()
	err := c.do(ctx, endpoint, query, variables, out)
	c.metrics.ObserveGatewayRequest(endpoint, outcome(err), time.Since(start))
	return err
}

func (c *Client) do(ctx context.Context, endpoint, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		c.logger.Error("document store returned non-2xx",
			"endpoint", endpoint,
			"status", resp.StatusCode,
			"response", string(errBody),
		)
		return &TransportError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(errBody)}
	}

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}

	if len(result.Errors) > 0 {
		messages := make([]string, len(result.Errors))
		for i, e := range result.Errors {
			messages[i] = e.Message
		}
		return &GraphQLError{Endpoint: endpoint, Messages: messages}
	}

	if len(result.Data) == 0 || bytes.Equal(result.Data, []byte("null")) {
		return ErrNoData
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(result.Data, out); err != nil {
		return fmt.Errorf("decode data from %s: %w", endpoint, err)
	}
	return nil
}

func outcome(err error) string {
	var transportErr *TransportError
	var gqlErr *GraphQLError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &transportErr):
		return "transport_error"
	case errors.As(err, &gqlErr):
		return "graphql_error"
	default:
		return "error"
	}
}
