package termii

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/onurcolak/termii-gateway/pkg/logger"
)

const apiKeyField = "api_key"

type queryParam struct {
	key   string
	value string
}

// transport issues the HTTP calls for every facade. It never turns a status
// code into an error.
type transport struct {
	config     Config
	httpClient *resty.Client
	timeout    time.Duration
}

func newTransport(cfg Config, opts ...Option) *transport {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = resty.New().
			SetHeader("Accept", "application/json")
	}

	return &transport{
		config:     cfg,
		httpClient: httpClient,
		timeout:    o.timeout,
	}
}

// withDeadline applies the configured timeout to ctx.
func (t *transport) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if t.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, t.timeout)
}

// get issues a GET to path with api_key followed by params as the query.
func (t *transport) get(ctx context.Context, op, path string, params ...queryParam) (*Response, error) {
	query := append([]queryParam{{key: apiKeyField, value: t.config.APIKey}}, params...)
	endpoint := t.config.BaseURL + path + encodeQuery(query)

	ctx, cancel := t.withDeadline(ctx)
	defer cancel()

	startTime := time.Now()

	resp, err := t.httpClient.R().
		SetContext(ctx).
		Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("termii: %s: %w", op, err)
	}

	logger.Debugf("termii %s: GET %s completed in %v (status: %d)", op, path, time.Since(startTime), resp.StatusCode())

	return toResponse(resp), nil
}

// post issues a POST to path with payload merged over {"api_key": ...} as
// the JSON body.
func (t *transport) post(ctx context.Context, op, path string, payload any) (*Response, error) {
	body, err := withAPIKey(t.config.APIKey, payload)
	if err != nil {
		return nil, fmt.Errorf("termii: %s: %w", op, err)
	}

	ctx, cancel := t.withDeadline(ctx)
	defer cancel()

	startTime := time.Now()

	resp, err := t.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(t.config.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("termii: %s: %w", op, err)
	}

	logger.Debugf("termii %s: POST %s completed in %v (status: %d)", op, path, time.Since(startTime), resp.StatusCode())

	return toResponse(resp), nil
}

func toResponse(resp *resty.Response) *Response {
	return &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}
}

// withAPIKey serializes payload as a JSON object carrying api_key. A field
// named api_key in payload wins over the configured key.
func withAPIKey(apiKey string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("payload must serialize to a JSON object: %w", err)
	}
	if fields == nil {
		fields = make(map[string]json.RawMessage)
	}

	if _, ok := fields[apiKeyField]; !ok {
		key, err := json.Marshal(apiKey)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal api key: %w", err)
		}
		fields[apiKeyField] = key
	}

	return json.Marshal(fields)
}

// encodeQuery form-encodes params keeping their order.
func encodeQuery(params []queryParam) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}
