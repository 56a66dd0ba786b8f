package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/oseyili/myspace-dashboard/internal/endpoint"
)

// Gateway handles all communication with the backend API. Every call is a
// single attempt: no retries, no caching.
type Gateway struct {
	Endpoint   endpoint.Endpoint
	HTTPClient *http.Client
}

// New creates a gateway for the resolved backend endpoint.
func New(ep endpoint.Endpoint) *Gateway {
	return &Gateway{
		Endpoint:   ep,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Get issues a GET request. credential may be empty; when set it is sent as
// a bearer token.
func (g *Gateway) Get(ctx context.Context, path, credential string) (any, error) {
	return g.do(ctx, http.MethodGet, path, nil, credential)
}

// Post issues a POST request with body serialized as JSON.
func (g *Gateway) Post(ctx context.Context, path string, body any, credential string) (any, error) {
	return g.do(ctx, http.MethodPost, path, body, credential)
}

// do is the single, unified helper for making API requests. The returned
// value is the decoded JSON payload; a body that fails to decode yields an
// empty object so downstream message extraction never has to care.
func (g *Gateway) do(ctx context.Context, method, path string, body any, credential string) (any, error) {
	if !g.Endpoint.Valid {
		return nil, &ConfigError{Reason: "Missing backend base URL"}
	}

	requestID := uuid.New().String()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &NetworkError{Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.Endpoint.BaseURL+path, reader)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		log.Printf("[GATEWAY] %s %s request_id=%s transport error: %v", method, path, requestID, err)
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	payload := decodeBody(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := MessageField(payload)
		if msg == "" {
			msg = fallbackMessage(method, path, resp.StatusCode)
		}
		log.Printf("[GATEWAY] %s %s request_id=%s status=%d msg=%s", method, path, requestID, resp.StatusCode, msg)
		return payload, &RequestError{Method: method, Path: path, Status: resp.StatusCode, Message: msg}
	}

	log.Printf("[GATEWAY] %s %s request_id=%s status=%d", method, path, requestID, resp.StatusCode)
	return payload, nil
}

// decodeBody parses a response body as JSON. Parse failures are swallowed
// and an empty object comes back instead, so error extraction downstream
// never itself fails.
func decodeBody(r io.Reader) any {
	data, err := io.ReadAll(r)
	if err != nil {
		return map[string]any{}
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil || payload == nil {
		return map[string]any{}
	}
	return payload
}

// StringField extracts a string field from a decoded JSON object. Missing
// keys, non-object payloads and non-string values all yield "".
func StringField(payload any, key string) string {
	obj, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := obj[key].(string)
	return s
}

// MessageField extracts the conventional error message from a payload,
// probing "message" first and "error" second.
func MessageField(payload any) string {
	if msg := StringField(payload, "message"); msg != "" {
		return msg
	}
	return StringField(payload, "error")
}
