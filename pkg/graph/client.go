package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/angelmondragon/shopadmin-backend/pkg/config"
)

const (
	defaultBaseURL = "https://graph.facebook.com"
	defaultVersion = "v19.0"
	defaultTimeout = 30 * time.Second

	EdgePhotos = "photos"
	EdgeFeed   = "feed"
)

var errPageIDRequired = errors.New("graph page id is required")

// Client publishes page content to the Facebook Graph API.
type Client struct {
	http    *resty.Client
	baseURL string
	version string
}

type options struct {
	httpClient *http.Client
}

// Option configures optional client behavior.
type Option func(*options)

// WithHTTPClient swaps the underlying transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		if hc != nil {
			o.httpClient = hc
		}
	}
}

// NewClient builds a Graph client from the facebook config section.
func NewClient(cfg config.FacebookConfig, opts ...Option) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.GraphBaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	version := strings.Trim(strings.TrimSpace(cfg.GraphVersion), "/")
	if version == "" {
		version = defaultVersion
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	rc := resty.New()
	if o.httpClient != nil {
		rc = resty.NewWithClient(o.httpClient)
	}
	rc.SetTimeout(timeout).SetHeader("Accept", "application/json")

	return &Client{http: rc, baseURL: baseURL, version: version}
}

// EdgeURL returns the absolute URL of a page edge, e.g. /v19.0/<page>/photos.
func (c *Client) EdgeURL(pageID, edge string) string {
	return fmt.Sprintf("%s/%s/%s/%s", c.baseURL, c.version, url.PathEscape(pageID), edge)
}

// Response is the raw Graph reply. Non-2xx replies are returned, not errored.
type Response struct {
	StatusCode int
	Body       []byte
}

// Successful reports a 2xx status.
func (r *Response) Successful() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON returns the body as raw JSON, or nil when the body is not valid JSON.
func (r *Response) JSON() json.RawMessage {
	if r == nil || len(r.Body) == 0 || !json.Valid(r.Body) {
		return nil
	}
	return json.RawMessage(r.Body)
}

// PostID extracts post_id, falling back to id. Photo uploads carry both.
func (r *Response) PostID() string {
	if r == nil {
		return ""
	}
	var body map[string]any
	if err := json.Unmarshal(r.Body, &body); err != nil {
		return ""
	}
	for _, key := range []string{"post_id", "id"} {
		switch v := body[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}

// PublishPhoto posts an image by URL with a caption.
func (c *Client) PublishPhoto(ctx context.Context, pageID, accessToken, imageURL, caption string) (*Response, error) {
	return c.post(ctx, pageID, EdgePhotos, map[string]string{
		"url":          imageURL,
		"caption":      caption,
		"access_token": accessToken,
	})
}

// PublishFeed posts a text-only message.
func (c *Client) PublishFeed(ctx context.Context, pageID, accessToken, message string) (*Response, error) {
	return c.post(ctx, pageID, EdgeFeed, map[string]string{
		"message":      message,
		"access_token": accessToken,
	})
}

func (c *Client) post(ctx context.Context, pageID, edge string, form map[string]string) (*Response, error) {
	if strings.TrimSpace(pageID) == "" {
		return nil, errPageIDRequired
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(form).
		Post(c.EdgeURL(pageID, edge))
	if err != nil {
		return nil, fmt.Errorf("graph %s request: %w", edge, err)
	}
	return &Response{StatusCode: resp.StatusCode(), Body: resp.Body()}, nil
}
