package bunny

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
)

const defaultStorageEndpoint = "https://sg.storage.bunnycdn.com"

// Config carries the Bunny storage zone credentials and the pull zone the
// uploaded objects are served from.
type Config struct {
	// StorageEndpoint is the regional storage API host. Defaults to the
	// Singapore endpoint when empty.
	StorageEndpoint string
	// StorageZone is the storage zone name.
	StorageZone string
	// AccessKey is the storage zone password.
	AccessKey string
	// PullZoneURL is the public base URL objects are served from.
	PullZoneURL string
	// Timeout bounds each storage API call. Defaults to 30s.
	Timeout time.Duration
}

// Client talks to the Bunny storage API. It implements
// interfaces.StorageProvider.
type Client struct {
	http        *resty.Client
	zone        string
	pullZoneURL string
}

// NewClient constructs a Bunny storage client from config.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.StorageZone) == "" {
		return nil, fmt.Errorf("bunny: storage zone is required")
	}
	if strings.TrimSpace(cfg.AccessKey) == "" {
		return nil, fmt.Errorf("bunny: access key is required")
	}
	if strings.TrimSpace(cfg.PullZoneURL) == "" {
		return nil, fmt.Errorf("bunny: pull zone url is required")
	}

	endpoint := strings.TrimSpace(cfg.StorageEndpoint)
	if endpoint == "" {
		endpoint = defaultStorageEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(endpoint, "/")).
		SetHeader("AccessKey", cfg.AccessKey).
		SetTimeout(timeout)

	return &Client{
		http:        httpClient,
		zone:        strings.Trim(cfg.StorageZone, "/"),
		pullZoneURL: strings.TrimRight(cfg.PullZoneURL, "/"),
	}, nil
}

func (c *Client) objectURL(path string) string {
	return "/" + c.zone + "/" + strings.TrimLeft(path, "/")
}

// Upload streams the object to the storage zone under path.
func (c *Client) Upload(ctx context.Context, path string, contentType string, body io.Reader) (*interfaces.StoredObject, error) {
	counted := &countingReader{reader: body}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(counted).
		Put(c.objectURL(path))
	if err != nil {
		return nil, fmt.Errorf("bunny: upload %s: %w", path, err)
	}
	if resp.StatusCode() != http.StatusCreated {
		return nil, fmt.Errorf("bunny: upload %s: unexpected status %d: %s", path, resp.StatusCode(), resp.String())
	}

	cleanPath := strings.TrimLeft(path, "/")
	return &interfaces.StoredObject{
		Path:      cleanPath,
		PublicURL: c.PublicURL(cleanPath),
		Size:      counted.n,
	}, nil
}

// Delete removes the remote object. Missing objects map to
// interfaces.ErrObjectNotFound so callers can treat them as already gone.
func (c *Client) Delete(ctx context.Context, path string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(c.objectURL(path))
	if err != nil {
		return fmt.Errorf("bunny: delete %s: %w", path, err)
	}
	switch resp.StatusCode() {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("bunny: delete %s: %w", path, interfaces.ErrObjectNotFound)
	default:
		return fmt.Errorf("bunny: delete %s: unexpected status %d: %s", path, resp.StatusCode(), resp.String())
	}
}

// PublicURL resolves the pull zone URL for a stored path.
func (c *Client) PublicURL(path string) string {
	return c.pullZoneURL + "/" + strings.TrimLeft(path, "/")
}

type countingReader struct {
	reader io.Reader
	n      int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	c.n += int64(n)
	return n, err
}
