package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/domain"
)

// Default Pinata endpoints and client configuration.
const (
	DefaultPinataBaseURL = "https://api.pinata.cloud"
	DefaultGatewayURL    = "https://gateway.pinata.cloud/ipfs"
	DefaultPinataTimeout = 60 * time.Second
)

// PinataClient pins assets to IPFS through the Pinata HTTP API.
// Credentials travel in the pinata_api_key / pinata_secret_api_key
// headers. A single attempt is made per upload; transient failures are
// surfaced immediately so the fallback tier can take over.
type PinataClient struct {
	baseURL    string
	gatewayURL string
	apiKey     string
	apiSecret  string
	client     *http.Client
}

// PinataOption configures PinataClient.
type PinataOption func(*PinataClient)

// WithBaseURL sets the Pinata API base URL.
func WithBaseURL(u string) PinataOption {
	return func(c *PinataClient) {
		c.baseURL = u
	}
}

// WithGatewayURL sets the IPFS gateway used to build reference URIs.
func WithGatewayURL(u string) PinataOption {
	return func(c *PinataClient) {
		c.gatewayURL = u
	}
}

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) PinataOption {
	return func(c *PinataClient) {
		c.client.Timeout = d
	}
}

// WithHTTPClient sets custom http.Client.
func WithHTTPClient(client *http.Client) PinataOption {
	return func(c *PinataClient) {
		c.client = client
	}
}

// NewPinataClient creates a new Pinata pinning client.
func NewPinataClient(apiKey, apiSecret string, opts ...PinataOption) *PinataClient {
	c := &PinataClient{
		baseURL:    DefaultPinataBaseURL,
		gatewayURL: DefaultGatewayURL,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		client:     &http.Client{Timeout: DefaultPinataTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// pinResponse is the Pinata pinFileToIPFS response body.
type pinResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

// Upload pins the asset and returns a gateway URI tagged remote-pinned.
// Missing credentials, network errors and non-success statuses all
// return *Error with stage pin.
func (c *PinataClient) Upload(ctx context.Context, data []byte, filename string) (*domain.AssetReference, error) {
	if len(data) == 0 {
		return nil, NewError(StagePin, errEmptyAsset)
	}
	if c.apiKey == "" || c.apiSecret == "" {
		return nil, NewError(StagePin, fmt.Errorf("pinata credentials not configured"))
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, NewError(StagePin, fmt.Errorf("create form file: %w", err))
	}
	if _, err := part.Write(data); err != nil {
		return nil, NewError(StagePin, fmt.Errorf("write form file: %w", err))
	}
	if err := writer.Close(); err != nil {
		return nil, NewError(StagePin, fmt.Errorf("close multipart writer: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pinning/pinFileToIPFS", &buf)
	if err != nil {
		return nil, NewError(StagePin, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.setAuthHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, NewError(StagePin, fmt.Errorf("http request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewError(StagePin, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, NewError(StagePin, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body)))
	}

	var pinResp pinResponse
	if err := json.Unmarshal(body, &pinResp); err != nil {
		return nil, NewError(StagePin, fmt.Errorf("unmarshal response: %w", err))
	}
	if pinResp.IpfsHash == "" {
		return nil, NewError(StagePin, fmt.Errorf("response missing IpfsHash"))
	}

	return &domain.AssetReference{
		URI:    fmt.Sprintf("%s/%s", c.gatewayURL, pinResp.IpfsHash),
		Origin: domain.OriginRemotePinned,
	}, nil
}

// TestAuthentication probes the configured credentials against the
// Pinata authentication endpoint. Returns nil when the credentials are
// valid.
func (c *PinataClient) TestAuthentication(ctx context.Context) error {
	if c.apiKey == "" || c.apiSecret == "" {
		return fmt.Errorf("pinata credentials not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/data/testAuthentication", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.setAuthHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("authentication failed, status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func (c *PinataClient) setAuthHeaders(req *http.Request) {
	req.Header.Set("pinata_api_key", c.apiKey)
	req.Header.Set("pinata_secret_api_key", c.apiSecret)
}

var _ Uploader = (*PinataClient)(nil)
