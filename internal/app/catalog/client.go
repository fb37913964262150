package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Client is the read interface to the catalog collaborator.
type Client interface {
	// FetchBatch retrieves one page of the full listing.
	FetchBatch(ctx context.Context, batchNumber int) (*Batch, error)

	// FetchProduct retrieves a single product by id.
	FetchProduct(ctx context.Context, productID string) (*Product, error)
}

// HTTPClient implements Client over the collaborator's HTTP JSON API.
// Every fetch carries its own timeout so a hung upstream cannot pin a pager
// in a loading state forever.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.Logger
}

// NewHTTPClient creates a catalog client for the given base URL.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		timeout:    timeout,
		logger:     logger,
	}
}

var _ Client = (*HTTPClient)(nil)

// FetchBatch retrieves one page of the full listing.
func (c *HTTPClient) FetchBatch(ctx context.Context, batchNumber int) (*Batch, error) {
	endpoint := fmt.Sprintf("%s?type=list&batchNumber=%d", c.baseURL, batchNumber)

	var batch Batch
	if err := c.getJSON(ctx, endpoint, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

// FetchProduct retrieves a single product by id.
func (c *HTTPClient) FetchProduct(ctx context.Context, productID string) (*Product, error) {
	endpoint := fmt.Sprintf("%s?productId=%s", c.baseURL, url.QueryEscape(productID))

	var product Product
	if err := c.getJSON(ctx, endpoint, &product); err != nil {
		return nil, err
	}
	if product.ProductID == "" {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// getJSON issues a GET with the per-fetch timeout and decodes the JSON body.
// Any transport error, non-2xx status, or undecodable body is reported as
// ErrUpstreamUnavailable.
func (c *HTTPClient) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrProductNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: unexpected status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: non-JSON response: %v", ErrUpstreamUnavailable, err)
	}
	return nil
}
