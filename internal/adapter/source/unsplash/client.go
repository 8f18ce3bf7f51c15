package unsplash

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mmcdole/shutter/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Shutter/1.0"
	apiVersion     = "v1"
)

// Client implements domain.CatalogRepository for the Unsplash REST API
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// NewClient creates a new Unsplash API client
func NewClient(baseURL, accessKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Authorization", "Client-ID "+accessKey).
		SetHeader("Accept-Version", apiVersion).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)

	return &Client{http: rc, logger: logger}
}

// ListPhotos returns one page of the editorial feed. An empty slice means
// the catalog has no more photos past this page.
func (c *Client) ListPhotos(ctx context.Context, page, perPage int) ([]domain.PhotoSummary, error) {
	var photos []photoDTO
	var apiErr errorDTO

	c.logger.Debug("unsplash list", "page", page, "per_page", perPage)

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"page":     strconv.Itoa(page),
			"per_page": strconv.Itoa(perPage),
		}).
		SetResult(&photos).
		SetError(&apiErr).
		Get("/photos")
	if err != nil {
		c.logger.Error("unsplash list failed", "page", page, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}

	if err := c.checkStatus(resp, &apiErr); err != nil {
		return nil, err
	}

	return MapSummaries(photos), nil
}

// GetPhoto returns the full record for a single photo
func (c *Client) GetPhoto(ctx context.Context, id string) (*domain.PhotoDetail, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrNotFound
	}

	var photo photoDTO
	var apiErr errorDTO

	c.logger.Debug("unsplash get", "id", id)

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(&photo).
		SetError(&apiErr).
		Get("/photos/{id}")
	if err != nil {
		c.logger.Error("unsplash get failed", "id", id, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}

	if err := c.checkStatus(resp, &apiErr); err != nil {
		return nil, err
	}

	if photo.ID == "" {
		return nil, fmt.Errorf("%w: empty photo record", domain.ErrNetworkFailure)
	}

	return MapDetail(photo), nil
}

// checkStatus maps non-2xx responses onto domain errors
func (c *Client) checkStatus(resp *resty.Response, apiErr *errorDTO) error {
	status := resp.StatusCode()
	if status >= 200 && status < 300 {
		return nil
	}

	msg := strings.Join(apiErr.Errors, "; ")
	if msg == "" {
		msg = http.StatusText(status)
	}

	c.logger.Error("unsplash request error", "status", status, "url", resp.Request.URL, "message", msg)

	switch status {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrAuthFailed, msg)
	default:
		return fmt.Errorf("%w: HTTP %d: %s", domain.ErrNetworkFailure, status, msg)
	}
}
