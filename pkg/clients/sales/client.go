package sales

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/salesboard/internal/domain/models"
)

// ErrNotFound is returned by GetSale when the API answers 404.
var ErrNotFound = errors.New("sale not found")

// Client exposes the sales API operations used by the CLI.
type Client interface {
	ListSales(ctx context.Context, params models.ListParams) (*models.Page, error)
	GetSale(ctx context.Context, id string) (*models.Sale, error)
	Filters(ctx context.Context) (*models.Catalog, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a sales API client for the server at baseURL.
func NewClient(baseURL string, timeout time.Duration) *APIClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")+"/api").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &APIClient{httpClient: restyClient}
}

// apiError mirrors the {"error": "..."} body the server sends on failure.
type apiError struct {
	Error string `json:"error"`
}

// ListSales fetches one page of sales.
func (c *APIClient) ListSales(ctx context.Context, params models.ListParams) (*models.Page, error) {
	result := new(models.Page)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(params.Values()).
		SetResult(result).
		SetError(apiErr).
		Get("/sales")
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, statusError(resp.StatusCode(), apiErr)
	}

	return result, nil
}

// GetSale fetches one sale by document id or transaction id.
func (c *APIClient) GetSale(ctx context.Context, id string) (*models.Sale, error) {
	result := new(models.Sale)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		SetError(apiErr).
		Get("/sales/" + url.PathEscape(id))
	if err != nil {
		return nil, fmt.Errorf("get sale %s: %w", id, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, statusError(resp.StatusCode(), apiErr)
	}

	return result, nil
}

// Filters fetches the filter catalog.
func (c *APIClient) Filters(ctx context.Context) (*models.Catalog, error) {
	result := new(models.Catalog)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		SetError(apiErr).
		Get("/filters")
	if err != nil {
		return nil, fmt.Errorf("get filters: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, statusError(resp.StatusCode(), apiErr)
	}

	return result, nil
}

func statusError(code int, apiErr *apiError) error {
	message := ""
	if apiErr != nil {
		message = apiErr.Error
	}
	return fmt.Errorf("sales api error: code=%d, message=%s", code, message)
}
