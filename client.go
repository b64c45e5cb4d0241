package go_facturacom

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stremovskyy/go-facturacom/consts"
	internalhttp "github.com/stremovskyy/go-facturacom/internal/http"
	"github.com/stremovskyy/go-facturacom/log"
)

type client struct {
	http *internalhttp.Client
	cfg  *clientConfig

	// cfgMu guards credential/mode mutation. Changes take effect on the next
	// request, never retroactively on in-flight calls.
	cfgMu sync.RWMutex
}

var _ Facturacom = (*client)(nil)

var logger = log.NewLogger("Facturacom:")

func (c *client) SetLogLevel(level log.Level) {
	log.SetLevel(level)
}

// CFDI returns operations over CFDI 3.3 tax invoices.
func (c *client) CFDI() *CFDIService {
	return &CFDIService{client: c}
}

// Customers returns operations over customers (the "clients" resource).
func (c *client) Customers() *CustomerService {
	return &CustomerService{client: c}
}

// SetAPIKey replaces the F-API-KEY credential.
func (c *client) SetAPIKey(key string) {
	c.cfgMu.Lock()
	defer c.cfgMu.Unlock()
	c.cfg.apiKey = strings.TrimSpace(key)
}

// SetSecretKey replaces the F-SECRET-KEY credential.
func (c *client) SetSecretKey(secret string) {
	c.cfgMu.Lock()
	defer c.cfgMu.Unlock()
	c.cfg.secretKey = strings.TrimSpace(secret)
}

// SetMode switches between sandbox and production.
func (c *client) SetMode(mode Mode) error {
	if !mode.valid() {
		return &InvalidModeError{Mode: mode}
	}
	c.cfgMu.Lock()
	defer c.cfgMu.Unlock()
	c.cfg.mode = mode
	return nil
}

// BaseURL returns "<host>/api/v<version>" for the current mode.
// An empty version selects the API default (v3).
func (c *client) BaseURL(version string) (string, error) {
	if strings.TrimSpace(version) == "" {
		version = consts.DefaultAPIVersion
	}

	c.cfgMu.RLock()
	mode := c.cfg.mode
	override := c.cfg.baseURL
	c.cfgMu.RUnlock()

	host := override
	if host == "" {
		switch mode {
		case ModeSandbox:
			host = consts.SandboxHost
		case ModeProduction:
			host = consts.ProductionHost
		default:
			return "", &InvalidModeError{Mode: mode}
		}
	}
	return host + "/api/v" + version, nil
}

// classURL returns the URL where a resource type's operations reside:
// baseURL + "/" + escaped lowercase path segment.
func (c *client) classURL(segment, version string) (string, error) {
	base, err := c.BaseURL(version)
	if err != nil {
		return "", err
	}
	return base + "/" + url.PathEscape(strings.ToLower(segment)), nil
}

// instanceURL addresses one record on the server by its uid.
func (c *client) instanceURL(segment, version, uid string) (string, error) {
	class, err := c.classURL(segment, version)
	if err != nil {
		return "", err
	}
	return class + "/" + url.PathEscape(uid), nil
}

// headers builds the fixed header set sent with every request. Rebuilt per
// call so credential changes apply to the next request.
func (c *client) headers() map[string]string {
	c.cfgMu.RLock()
	defer c.cfgMu.RUnlock()
	return map[string]string{
		"Content-Type":         "application/json",
		consts.HeaderAPIKey:    c.cfg.apiKey,
		consts.HeaderSecretKey: c.cfg.secretKey,
		consts.HeaderUserAgent: c.cfg.userAgent,
	}
}

// request performs one API call and unwraps the response envelope.
//
// GET: non-empty params are appended as an URL-encoded query string.
// Other methods: params are sent as the JSON body (nil means no body).
//
// On a success envelope it returns the remaining envelope fields with the
// status field removed. A non-success envelope becomes an *APIError carrying
// those fields as Payload, unless the call runs with SilentErrors, in which
// case both results are nil. Transport failures and non-2xx statuses always
// error.
func (c *client) request(op, method, endpoint, uid string, params Params, ro *runOptions) (map[string]any, error) {
	var body []byte
	if method == http.MethodGet {
		if len(params) > 0 {
			endpoint = endpoint + "?" + encodeQuery(params)
		}
	} else if params != nil {
		encoded, err := json.Marshal(params)
		if err != nil {
			logger.Error("HTTP request: cannot encode params op=%s err=%v", op, err)
			return nil, &EncodeError{Op: op, Msg: "marshal params", Cause: err}
		}
		body = encoded
	}

	logger.Info("HTTP request: op=%s method=%s endpoint=%s", op, method, endpoint)
	if len(body) > 0 {
		logger.Debug("HTTP request: body=%s", trimBody(body, 4096))
	}

	if ro.isDryRun() {
		ro.handleDryRun(endpoint, params)
		return nil, nil
	}

	timeout := time.Duration(0)
	if c.cfg.httpOptions != nil {
		timeout = c.cfg.httpOptions.Timeout
	}
	ctx, cancel := internalhttp.WithTimeout(context.Background(), timeout)
	defer cancel()

	requestID := uuid.NewString()
	tags := map[string]string{"operation": op}
	if uid != "" {
		tags["uid"] = uid
	}
	recordPayload := body
	if len(recordPayload) == 0 {
		// GET calls have no body; keep the resolved endpoint as the record.
		recordPayload = []byte(endpoint)
	}
	c.recordRequest(ctx, requestID, recordPayload, tags)

	respBody, statusCode, err := c.sendBody(ctx, method, endpoint, body)
	if err != nil {
		c.recordError(ctx, requestID, err, tags)
		return nil, err
	}

	responseTags := map[string]string{"operation": op, "status_code": fmt.Sprintf("%d", statusCode)}
	if uid != "" {
		responseTags["uid"] = uid
	}
	c.recordResponse(ctx, requestID, respBody, responseTags)

	logger.Info("HTTP response: op=%s status=%d", op, statusCode)
	logger.Debug("HTTP response: body=%s", trimBody(respBody, 4096))

	if statusCode < 200 || statusCode >= 300 {
		apiErr := &APIError{
			Kind:       kindFromStatus(statusCode),
			Method:     method,
			Endpoint:   endpoint,
			StatusCode: statusCode,
			Body:       trimBody(respBody, 4096),
		}
		if statusCode >= 500 {
			logger.Error("HTTP response: non-2xx op=%s status=%d", op, statusCode)
		} else {
			logger.Warn("HTTP response: non-2xx op=%s status=%d", op, statusCode)
		}
		return nil, apiErr
	}

	var envelope map[string]any
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		logger.Error("HTTP response: decode error op=%s err=%v", op, err)
		return nil, &DecodeError{Op: op, Msg: "json unmarshal envelope", Body: trimBody(respBody, 4096), Cause: err}
	}

	status, ok := popStatus(envelope)
	if !ok {
		return nil, &UnexpectedResponseError{
			Op:         op,
			Method:     method,
			Endpoint:   endpoint,
			StatusCode: statusCode,
			Msg:        "envelope has no status field",
			Body:       trimBody(respBody, 4096),
		}
	}

	if status == "success" {
		return envelope, nil
	}

	logger.Warn("API response: op=%s status=%s", op, status)
	if ro.isSilent() {
		return nil, nil
	}
	return nil, &APIError{
		Method:     method,
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Status:     status,
		Payload:    envelope,
	}
}

// send issues the HTTP call with the fixed header set and returns the raw body.
func (c *client) send(ctx context.Context, method, endpoint string) ([]byte, int, error) {
	return c.sendBody(ctx, method, endpoint, nil)
}

func (c *client) sendBody(ctx context.Context, method, endpoint string, body []byte) ([]byte, int, error) {
	req, err := internalhttp.NewRequest(ctx, method, endpoint, body, c.headers())
	if err != nil {
		logger.Error("HTTP request: cannot build request method=%s endpoint=%s err=%v", method, endpoint, err)
		return nil, 0, &EncodeError{Op: "request", Msg: "build request", Cause: err}
	}

	resp, respBody, err := c.http.Do(req)
	if err != nil {
		logger.Error("HTTP request: transport error method=%s endpoint=%s err=%v", method, endpoint, err)
		return nil, 0, &TransportError{Op: "http.do", Method: method, URL: endpoint, Cause: err}
	}
	if resp == nil {
		logger.Error("HTTP request: nil response method=%s endpoint=%s", method, endpoint)
		return nil, 0, &UnexpectedResponseError{Op: "http.do", Method: method, Endpoint: endpoint, Msg: "response is nil"}
	}
	return respBody, resp.StatusCode, nil
}

// download fetches a derived document link (xml/pdf) and returns the raw
// bytes. These endpoints reply with the document itself, not an envelope.
func (c *client) download(op, endpoint, uid string) ([]byte, error) {
	timeout := time.Duration(0)
	if c.cfg.httpOptions != nil {
		timeout = c.cfg.httpOptions.Timeout
	}
	ctx, cancel := internalhttp.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Info("HTTP request: op=%s method=GET endpoint=%s", op, endpoint)

	requestID := uuid.NewString()
	tags := map[string]string{"operation": op}
	if uid != "" {
		tags["uid"] = uid
	}
	c.recordRequest(ctx, requestID, []byte(endpoint), tags)

	body, statusCode, err := c.send(ctx, http.MethodGet, endpoint)
	if err != nil {
		c.recordError(ctx, requestID, err, tags)
		return nil, err
	}
	c.recordResponse(ctx, requestID, trimBody(body, 4096), map[string]string{"operation": op, "status_code": fmt.Sprintf("%d", statusCode)})

	if statusCode < 200 || statusCode >= 300 {
		return nil, &APIError{
			Kind:       kindFromStatus(statusCode),
			Method:     http.MethodGet,
			Endpoint:   endpoint,
			StatusCode: statusCode,
			Body:       trimBody(body, 4096),
		}
	}
	return body, nil
}

// --- recording ---

func (c *client) recordRequest(ctx context.Context, requestID string, payload []byte, tags map[string]string) {
	if c.cfg.rec == nil {
		return
	}
	if err := c.cfg.rec.RecordRequest(ctx, nil, requestID, payload, tags); err != nil {
		logger.Warn("Recorder: cannot record request id=%s err=%v", requestID, err)
	}
}

func (c *client) recordResponse(ctx context.Context, requestID string, payload []byte, tags map[string]string) {
	if c.cfg.rec == nil {
		return
	}
	if err := c.cfg.rec.RecordResponse(ctx, nil, requestID, payload, tags); err != nil {
		logger.Warn("Recorder: cannot record response id=%s err=%v", requestID, err)
	}
}

func (c *client) recordError(ctx context.Context, requestID string, cause error, tags map[string]string) {
	if c.cfg.rec == nil {
		return
	}
	if err := c.cfg.rec.RecordError(ctx, nil, requestID, cause, tags); err != nil {
		logger.Warn("Recorder: cannot record error id=%s err=%v", requestID, err)
	}
}

// --- envelope helpers ---

// popStatus extracts and removes the envelope status indicator:
// "status" first, "response" as the documented fallback.
func popStatus(envelope map[string]any) (string, bool) {
	for _, key := range []string{"status", "response"} {
		if v, ok := envelope[key]; ok {
			delete(envelope, key)
			return anyToString(v), true
		}
	}
	return "", false
}

// envelopeData returns the data payload. The key is matched
// case-insensitively: most endpoints reply "data", the customers create
// endpoint replies "Data".
func envelopeData(envelope map[string]any) (any, bool) {
	if v, ok := envelope["data"]; ok {
		return v, true
	}
	for k, v := range envelope {
		if strings.ToLower(k) == "data" {
			return v, true
		}
	}
	return nil, false
}

// hydrateOne builds a Record from a single-object data payload.
func hydrateOne(op string, data any) (*Record, error) {
	obj, ok := data.(map[string]any)
	if !ok {
		return nil, &UnexpectedResponseError{Op: op, Msg: fmt.Sprintf("data is %T, want object", data)}
	}
	return NewRecord(obj), nil
}

// hydrateList builds Records from a list data payload, order preserved.
func hydrateList(op string, data any) ([]*Record, error) {
	items, ok := data.([]any)
	if !ok {
		return nil, &UnexpectedResponseError{Op: op, Msg: fmt.Sprintf("data is %T, want list", data)}
	}
	records := make([]*Record, 0, len(items))
	for _, item := range items {
		record, err := hydrateOne(op, item)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// --- generic helpers ---

// encodeQuery renders params as an URL-encoded query string. Slice values
// become repeated keys; everything else is rendered through anyToString.
func encodeQuery(params Params) string {
	values := url.Values{}
	for key, value := range params {
		switch v := value.(type) {
		case []string:
			for _, item := range v {
				values.Add(key, item)
			}
		case []any:
			for _, item := range v {
				values.Add(key, anyToString(item))
			}
		default:
			values.Add(key, anyToString(value))
		}
	}
	return values.Encode()
}

func anyToString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return fmt.Sprintf("%t", x)
	case float64:
		// JSON numbers are float64 by default.
		// We treat them as int-like where possible.
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%v", x)
	case int:
		return fmt.Sprintf("%d", x)
	case int32:
		return fmt.Sprintf("%d", x)
	case int64:
		return fmt.Sprintf("%d", x)
	case uint:
		return fmt.Sprintf("%d", x)
	case uint32:
		return fmt.Sprintf("%d", x)
	case uint64:
		return fmt.Sprintf("%d", x)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}
