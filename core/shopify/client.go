package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	TraceAttributeStore     string = "shopify-store"
	TraceAttributeOperation string = "graphql-operation"
)

var tracer = otel.Tracer("catalog-sync/shopify")

// Doer executes one GraphQL operation and decodes "data" into out.
type Doer interface {
	Do(ctx context.Context, operation, query string, variables map[string]any, out any) error
}

// Client talks to one store's Admin GraphQL API.
type Client struct {
	endpoint   string
	store      string
	token      string
	maxRetries int
	backoff    time.Duration
	http       *http.Client
	logger     *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithEndpoint overrides the computed endpoint (used against test servers).
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithBackoff sets the base delay between throttled retries.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) {
		c.backoff = d
	}
}

// NewClient validates the config and builds an instrumented client.
func NewClient(cfg Config, logger *zap.Logger, options ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	c := &Client{
		endpoint:   cfg.Endpoint(),
		store:      cfg.StoreName,
		token:      cfg.AccessToken,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Second,
		http: &http.Client{
			Timeout:   time.Duration(timeout) * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger.With(zap.String("store", cfg.StoreName)),
	}
	for _, option := range options {
		option(c)
	}
	return c, nil
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// Do runs the operation, retrying throttled attempts up to the configured limit.
func (c *Client) Do(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	var err error

	ctx, span := tracer.Start(ctx, operation,
		trace.WithAttributes(attribute.String(TraceAttributeStore, c.store)),
		trace.WithAttributes(attribute.String(TraceAttributeOperation, operation)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	for attempt := 0; ; attempt++ {
		err = c.do(ctx, operation, query, variables, out)
		if err == nil || !IsThrottled(err) || attempt >= c.maxRetries {
			return err
		}

		wait := c.backoff * time.Duration(attempt+1)
		c.logger.Debug("Throttled, retrying",
			zap.String("operation", operation),
			zap.Int("attempt", attempt+1),
			zap.Duration("wait", wait))

		select {
		case <-ctx.Done():
			err = ctx.Err()
			return err
		case <-time.After(wait):
		}
	}
}

func (c *Client) do(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("shopify %s request failed: %w", operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Operation: operation, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var envelope response
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}
	if len(envelope.Errors) > 0 {
		return &RequestError{Operation: operation, Errors: envelope.Errors}
	}

	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode %s data: %w", operation, err)
	}
	return nil
}
