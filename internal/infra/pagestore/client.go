package pagestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"coupon-wallet/internal/infra"
	"coupon-wallet/internal/pkg/config"
	"coupon-wallet/internal/pkg/errs"
)

// Client talks to the hosted document store's JSON API. It is constructed
// explicitly and injected; nothing in this package holds a package-level
// instance.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	version    string
	logger     *slog.Logger
}

func NewClient(cfg config.StoreConfig, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		version:    cfg.Version,
		logger:     logger,
	}
}

// Configured reports whether the client has credentials at all. An
// unconfigured client fails every call with KindNotConfigured, which the API
// layer turns into a 503.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type queryRequest struct {
	Filter      map[string]any   `json:"filter,omitempty"`
	Sorts       []map[string]any `json:"sorts,omitempty"`
	StartCursor string           `json:"start_cursor,omitempty"`
}

type queryResponse struct {
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// QueryDataSource runs a filtered query against a data source, following
// pagination cursors until the result set is complete.
func (c *Client) QueryDataSource(ctx context.Context, dataSourceID string, filter map[string]any, sorts []map[string]any) ([]Page, error) {
	if !c.Configured() || dataSourceID == "" {
		return nil, infra.WrapRepoErr("document store is not configured", nil, infra.KindNotConfigured)
	}

	var pages []Page
	cursor := ""
	for {
		body := queryRequest{Filter: filter, Sorts: sorts, StartCursor: cursor}

		var resp queryResponse
		if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/v1/data_sources/%s/query", dataSourceID), body, &resp); err != nil {
			return nil, err
		}

		pages = append(pages, resp.Results...)
		if !resp.HasMore || resp.NextCursor == nil || *resp.NextCursor == "" {
			return pages, nil
		}
		cursor = *resp.NextCursor
	}
}

func (c *Client) RetrievePage(ctx context.Context, pageID string) (Page, error) {
	if !c.Configured() {
		return Page{}, infra.WrapRepoErr("document store is not configured", nil, infra.KindNotConfigured)
	}

	var page Page
	if err := c.do(ctx, http.MethodGet, "/v1/pages/"+pageID, nil, &page); err != nil {
		return Page{}, err
	}
	if !page.IsPage() {
		return Page{}, infra.WrapRepoErr("response is not a page object", nil)
	}
	return page, nil
}

func (c *Client) UpdatePage(ctx context.Context, pageID string, properties map[string]any) (Page, error) {
	if !c.Configured() {
		return Page{}, infra.WrapRepoErr("document store is not configured", nil, infra.KindNotConfigured)
	}

	body := map[string]any{"properties": properties}

	var page Page
	if err := c.do(ctx, http.MethodPatch, "/v1/pages/"+pageID, body, &page); err != nil {
		return Page{}, err
	}
	if !page.IsPage() {
		return Page{}, infra.WrapRepoErr("response is not a page object", nil)
	}
	return page, nil
}

func (c *Client) CreatePage(ctx context.Context, dataSourceID string, properties map[string]any) (Page, error) {
	if !c.Configured() || dataSourceID == "" {
		return Page{}, infra.WrapRepoErr("document store is not configured", nil, infra.KindNotConfigured)
	}

	body := map[string]any{
		"parent":     map[string]any{"data_source_id": dataSourceID},
		"properties": properties,
	}

	var page Page
	if err := c.do(ctx, http.MethodPost, "/v1/pages", body, &page); err != nil {
		return Page{}, err
	}
	if !page.IsPage() {
		return Page{}, infra.WrapRepoErr("response is not a page object", nil)
	}
	return page, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return infra.WrapRepoErr("failed to encode request body", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return infra.WrapRepoErr("failed to build store request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", c.version)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return infra.WrapRepoErr("store request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return infra.WrapRepoErr("record not found", readAPIError(resp.Body), infra.KindNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("store request failed",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
		)
		return infra.WrapRepoErr(fmt.Sprintf("store returned status %d", resp.StatusCode), readAPIError(resp.Body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return infra.WrapRepoErr("failed to decode store response", err)
	}
	return nil
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func readAPIError(r io.Reader) error {
	var apiErr apiError
	if err := json.NewDecoder(r).Decode(&apiErr); err != nil || apiErr.Message == "" {
		return nil
	}
	return errs.New(apiErr.Code + ": " + apiErr.Message)
}
