package minting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultMintTimeout bounds the full mint round trip, which includes
// transaction confirmation on the service side.
const DefaultMintTimeout = 90 * time.Second

// HTTPMinter implements Minter against the minting service's HTTP API.
// A single attempt is made per call: retrying a submitted transaction
// risks a double mint, so transient failures surface to the caller.
type HTTPMinter struct {
	endpoint string
	client   *http.Client
}

// MinterOption configures HTTPMinter.
type MinterOption func(*HTTPMinter)

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) MinterOption {
	return func(m *HTTPMinter) {
		m.client.Timeout = d
	}
}

// WithHTTPClient sets custom http.Client.
func WithHTTPClient(client *http.Client) MinterOption {
	return func(m *HTTPMinter) {
		m.client = client
	}
}

// NewHTTPMinter creates a minting service client.
func NewHTTPMinter(endpoint string, opts ...MinterOption) *HTTPMinter {
	m := &HTTPMinter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: DefaultMintTimeout},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// mintRequestBody is the wire format of a mint call.
type mintRequestBody struct {
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	Decimals  int    `json:"decimals"`
	Supply    string `json:"supply"`
	ImageURI  string `json:"imageUri,omitempty"`
	Mintable  bool   `json:"mintable"`
	Freezable bool   `json:"freezable"`
	Updatable bool   `json:"updatable"`
}

// mintResponseBody is the wire format of the service's answer.
type mintResponseBody struct {
	MintAddress string `json:"mintAddress"`
	Signature   string `json:"signature"`
	Error       string `json:"error,omitempty"`
}

// Mint submits the creation to the minting service and returns the
// resulting mint address. All failures come back as *Error.
func (m *HTTPMinter) Mint(ctx context.Context, req MintRequest) (*MintResult, error) {
	body, err := json.Marshal(mintRequestBody{
		Name:      req.Name,
		Symbol:    req.Symbol,
		Decimals:  req.Decimals,
		Supply:    req.Supply,
		ImageURI:  req.ImageURI,
		Mintable:  req.Flags.Mintable,
		Freezable: req.Flags.Freezable,
		Updatable: req.Flags.Updatable,
	})
	if err != nil {
		return nil, &Error{Reason: "marshal request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Reason: "create request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(httpReq)
	if err != nil {
		return nil, &Error{Reason: "http request", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Reason: "read response", Err: err}
	}

	var mintResp mintResponseBody
	if err := json.Unmarshal(respBody, &mintResp); err != nil {
		return nil, &Error{Reason: fmt.Sprintf("unexpected response (status %d)", resp.StatusCode), Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		reason := mintResp.Error
		if reason == "" {
			reason = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, &Error{Reason: reason}
	}

	if err := ValidateMintAddress(mintResp.MintAddress); err != nil {
		return nil, &Error{Reason: "invalid mint address in response", Err: err}
	}

	return &MintResult{
		MintAddress: mintResp.MintAddress,
		Signature:   mintResp.Signature,
	}, nil
}

var _ Minter = (*HTTPMinter)(nil)
