package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-cloud-sync/internal/config"
	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/internal/utils"
	"github.com/MKhiriev/go-cloud-sync/internal/workers"
	"github.com/MKhiriev/go-cloud-sync/models"
	"github.com/go-resty/resty/v2"
)

const (
	callPath      = "/rpc/{service}/{method}"
	traceIDHeader = "X-Trace-ID"
)

// HTTPCaller is the HTTP implementation of [Caller]. Each call is a
// POST {gateway}/rpc/{service}/{method} with body {"args": [...]}; the
// gateway answers {"error": ..., "result": ...}.
type HTTPCaller struct {
	client     *utils.HTTPClient
	dispatcher workers.Dispatcher

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPCaller constructs an [HTTPCaller]. It normalises and validates the
// base URL from gatewayCfg.Address and configures the underlying HTTP client
// with the resolved base URL and request timeout. Callbacks are posted to
// dispatcher; a nil dispatcher runs them on the transport goroutine.
//
// Returns an error if gatewayCfg.Address is empty or cannot be parsed as a
// valid URL.
func NewHTTPCaller(gatewayCfg config.ClientGateway, dispatcher workers.Dispatcher, log *logger.Logger) (*HTTPCaller, error) {
	baseURL, err := normalizeBaseURL(gatewayCfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid gateway address: %w", err)
	}
	if dispatcher == nil {
		dispatcher = workers.Inline{}
	}
	if log == nil {
		log = logger.Nop()
	}

	return &HTTPCaller{
		client:     utils.NewHTTPClient(baseURL, gatewayCfg.RequestTimeout),
		dispatcher: dispatcher,
		logger:     log,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken stores token (whitespace-trimmed) for use in the Authorization
// header of all subsequent calls. An empty token disables the header.
func (h *HTTPCaller) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token returns the bearer token currently held by the caller.
func (h *HTTPCaller) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Call implements [Caller]. The request runs on its own goroutine and cb is
// posted to the dispatcher once the response is mapped.
func (h *HTTPCaller) Call(ctx context.Context, service, method string, cb Callback, args ...any) {
	go func() {
		res, err := h.Do(ctx, service, method, args...)
		h.deliver(service, method, cb, res, err)
	}()
}

// Do performs service.method(args...) synchronously.
func (h *HTTPCaller) Do(ctx context.Context, service, method string, args ...any) (Result, error) {
	if args == nil {
		args = []any{}
	}

	resp, err := h.authedRequest(ctx).
		SetPathParams(map[string]string{"service": service, "method": method}).
		SetBody(models.CallRequest{Args: args}).
		Post(callPath)
	if err != nil {
		return Result{}, fmt.Errorf("%s.%s request: %w", service, method, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return Result{}, err
	}

	var body models.CallResponse
	if raw := resp.Body(); len(strings.TrimSpace(string(raw))) > 0 {
		if err = json.Unmarshal(raw, &body); err != nil {
			return Result{}, fmt.Errorf("%w: %s.%s: %w", ErrMalformedPayload, service, method, err)
		}
	}
	if err = mapGatewayError(service, method, body.Error); err != nil {
		return Result{}, err
	}

	return NewResult(body.Result, JSON), nil
}

func (h *HTTPCaller) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().
		SetContext(ctx).
		SetHeader(traceIDHeader, utils.TraceIDOrNew(ctx))
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func (h *HTTPCaller) deliver(service, method string, cb Callback, res Result, err error) {
	if err != nil {
		h.logger.Debug().Err(err).Str("service", service).Str("method", method).Msg("remote call failed")
	}
	if cb == nil {
		return
	}
	if !h.dispatcher.Post(func() { cb(res, err) }) {
		h.logger.Warn().Str("service", service).Str("method", method).Msg("dispatcher stopped, callback dropped")
	}
}
