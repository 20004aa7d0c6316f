package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
)

// Gateway routes. The pay route doubles as the checksum suffix for
// initiation; the status route prefix is extended with merchant and order
// IDs to form both the query path and the signed string.
const (
	PayRoute          = "/pg/v1/pay"
	StatusRoutePrefix = "/pg/v1/status"
)

// Gateway is the capability set this service needs from the payment gateway.
// Test doubles implement it for network-free orchestrator tests.
type Gateway interface {
	// Pay submits a signed, base64-encoded initiation payload and returns the
	// hosted-page redirect URL.
	Pay(ctx context.Context, base64Payload, checksum string) (string, error)
	// Status queries the signed status path and returns the gateway's
	// success verdict.
	Status(ctx context.Context, path, checksum string) (bool, error)
}

// HTTPGateway talks to a PhonePe-style gateway over HTTP. Every request
// carries the X-VERIFY integrity tag; status queries also carry
// X-MERCHANT-ID.
type HTTPGateway struct {
	baseURL    string
	merchantID string
	httpc      *http.Client
}

func NewHTTPGateway(baseURL, merchantID string, timeout time.Duration) *HTTPGateway {
	return &HTTPGateway{
		baseURL:    baseURL,
		merchantID: merchantID,
		httpc:      &http.Client{Timeout: timeout},
	}
}

type payResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		InstrumentResponse struct {
			RedirectInfo struct {
				URL string `json:"url"`
			} `json:"redirectInfo"`
		} `json:"instrumentResponse"`
	} `json:"data"`
}

func (g *HTTPGateway) Pay(ctx context.Context, base64Payload, checksum string) (string, error) {
	body, err := json.Marshal(map[string]string{"request": base64Payload})
	if err != nil {
		return "", errors.Wrap(err, "marshal pay request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+PayRoute, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "build pay request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-VERIFY", checksum)

	resp, err := g.httpc.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "pay request")
	}
	defer resp.Body.Close()

	var parsed payResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", errors.Wrap(err, "decode pay response")
	}
	if !parsed.Success || parsed.Data.InstrumentResponse.RedirectInfo.URL == "" {
		return "", errors.Newf("gateway declined initiation: code=%s message=%s", parsed.Code, parsed.Message)
	}
	return parsed.Data.InstrumentResponse.RedirectInfo.URL, nil
}

type statusResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (g *HTTPGateway) Status(ctx context.Context, path, checksum string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return false, errors.Wrap(err, "build status request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-VERIFY", checksum)
	req.Header.Set("X-MERCHANT-ID", g.merchantID)

	resp, err := g.httpc.Do(req)
	if err != nil {
		return false, errors.Wrap(err, "status request")
	}
	defer resp.Body.Close()

	var parsed statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return false, errors.Wrap(err, "decode status response")
	}
	return parsed.Success, nil
}
