package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"github.com/octabyte/clinic-portal/otel"
	otellogger "github.com/octabyte/clinic-portal/otel/logger"
	"github.com/octabyte/clinic-portal/otel/metrics"
)

const clientName = "clinic-api"

type ClientConfig struct {
	BaseURL     string
	Timeout     time.Duration
	ServiceName string
}

// Client sends requests to the clinic API. Each call maps to exactly one
// HTTP request and is never retried.
type Client struct {
	rest        *resty.Client
	baseURL     string
	serviceName string
}

func NewClient(cfg ClientConfig) *Client {
	rest := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		SetRetryCount(0).
		OnBeforeRequest(otel.WithTraceHeaders)
	if cfg.Timeout > 0 {
		rest.SetTimeout(cfg.Timeout)
	}

	return &Client{
		rest:        rest,
		baseURL:     cfg.BaseURL,
		serviceName: cfg.ServiceName,
	}
}

type call struct {
	op         string
	method     string
	path       string
	pathParams map[string]string
	query      map[string]string
	body       interface{}
	// token is sent as a bearer credential; authenticated calls with an
	// empty token fail before any request is made.
	token         string
	authenticated bool
}

func (c *Client) do(ctx context.Context, in call) (*resty.Response, error) {
	if in.authenticated && in.token == "" {
		return nil, &Error{Kind: KindMissingToken, Op: in.op}
	}

	ctx, finish := otel.StartHTTPSpan(ctx, c.serviceName, clientName, in.op, in.method, c.baseURL, in.path)
	start := time.Now()

	req := c.rest.R().SetContext(ctx)
	if in.authenticated {
		req.SetAuthToken(in.token)
	}
	if len(in.pathParams) > 0 {
		req.SetPathParams(in.pathParams)
	}
	if len(in.query) > 0 {
		req.SetQueryParams(in.query)
	}
	if in.body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(in.body)
	}

	resp, err := req.Execute(in.method, in.path)
	if err != nil {
		finish(0, err)
		metrics.RecordDownstreamCall(ctx, in.op, time.Since(start), false)
		return nil, &Error{Kind: KindNetwork, Op: in.op, Err: err}
	}

	if resp.IsError() {
		apiErr := &Error{
			Kind:    KindStatus,
			Op:      in.op,
			Status:  resp.StatusCode(),
			Message: messageFrom(resp.Body()),
		}
		finish(resp.StatusCode(), nil)
		metrics.RecordDownstreamCall(ctx, in.op, time.Since(start), false)
		return nil, apiErr
	}

	finish(resp.StatusCode(), nil)
	metrics.RecordDownstreamCall(ctx, in.op, time.Since(start), true)
	return resp, nil
}

// messageFrom extracts the human readable message the API puts in error
// and success bodies alike.
func messageFrom(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, path := range []string{"message", "error"} {
		if v := gjson.GetBytes(body, path); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

// decodeList reads either a bare JSON array or an object carrying the array
// under envelope, e.g. {"doctors": [...]}.
func decodeList[T any](op string, body []byte, envelope string) ([]T, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, &Error{Kind: KindDecode, Op: op, Err: fmt.Errorf("empty response body")}
	}
	if !gjson.ValidBytes(body) {
		return nil, &Error{Kind: KindDecode, Op: op, Err: fmt.Errorf("response is not valid JSON")}
	}

	raw := body
	if doc := gjson.ParseBytes(body); !doc.IsArray() {
		list := doc.Get(envelope)
		if !list.IsArray() {
			return nil, &Error{Kind: KindDecode, Op: op, Err: fmt.Errorf("response has no %q list", envelope)}
		}
		raw = []byte(list.Raw)
	}

	items := []T{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &Error{Kind: KindDecode, Op: op, Err: err}
	}
	return items, nil
}

// decodeObject reads a single object, unwrapping it from envelope when the
// API nests it (e.g. {"patient": {...}}).
func decodeObject[T any](op string, body []byte, envelope string) (T, error) {
	var out T
	body = bytes.TrimSpace(body)
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return out, &Error{Kind: KindDecode, Op: op, Err: fmt.Errorf("response is not a JSON object")}
	}

	raw := body
	if nested := gjson.GetBytes(body, envelope); envelope != "" && nested.IsObject() {
		raw = []byte(nested.Raw)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &Error{Kind: KindDecode, Op: op, Err: err}
	}
	return out, nil
}

// tokenFrom pulls the bearer token out of a login response.
func tokenFrom(op string, body []byte) (string, error) {
	token := gjson.GetBytes(body, "token").String()
	if token == "" {
		return "", &Error{Kind: KindDecode, Op: op, Err: fmt.Errorf("response carries no token")}
	}
	return token, nil
}

func logFailure(ctx context.Context, op string, err error) {
	otellogger.ErrorCtx(ctx, "clinic api call failed: "+op, err)
}
