// Package vendors fetches search listings from each storefront and turns
// them into single-offer domain.Products.
package vendors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"partscout/internal/domain"
)

var ErrUpstream = errors.New("vendor request failed")

// Source searches one vendor.
type Source interface {
	Vendor() domain.Vendor
	Search(ctx context.Context, term string) ([]domain.Product, error)
}

// Client is the HTTP client shared by every source. When Proxy is set the
// full target URL is appended to it, CORS-proxy style.
type Client struct {
	HTTP      *http.Client
	Proxy     string
	UserAgent string
}

func NewClient(proxy string, timeout time.Duration) *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: timeout},
		Proxy:     proxy,
		UserAgent: "Mozilla/5.0 (compatible; partscout/1.0)",
	}
}

func (c *Client) target(rawURL string, params url.Values) string {
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		rawURL += sep + params.Encode()
	}
	if c.Proxy == "" {
		return rawURL
	}
	return strings.TrimRight(c.Proxy, "/") + "/" + rawURL
}

func (c *Client) do(ctx context.Context, method, rawURL string, params url.Values, body []byte, contentType string) ([]byte, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.target(rawURL, params), rd)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUpstream, method, rawURL, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUpstream, rawURL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s %s: status %d", ErrUpstream, method, rawURL, resp.StatusCode)
	}
	return b, nil
}

func (c *Client) getHTML(ctx context.Context, rawURL string, params url.Values) (*goquery.Document, error) {
	b, err := c.do(ctx, http.MethodGet, rawURL, params, nil, "")
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("parse html from %s: %w", rawURL, err)
	}
	return doc, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	b, err := c.do(ctx, http.MethodGet, rawURL, params, nil, "")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode json from %s: %w", rawURL, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, rawURL string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	b, err := c.do(ctx, http.MethodPost, rawURL, nil, payload, "application/json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode json from %s: %w", rawURL, err)
	}
	return nil
}

// joinURL resolves a possibly relative storefront link against base.
func joinURL(base, path string) string {
	switch {
	case path == "":
		return base
	case strings.HasPrefix(path, "http"):
		return path
	case strings.HasPrefix(path, "/"):
		return strings.TrimRight(base, "/") + path
	default:
		return strings.TrimRight(base, "/") + "/" + path
	}
}

// text is the trimmed text of the first element in sel.
func text(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.First().Text())
}

func inStock(label string) bool {
	return strings.EqualFold(strings.TrimSpace(label), "in stock")
}

// fallback stands in for a listing that could not be parsed.
func fallback(v domain.Vendor) domain.Product {
	return domain.Product{
		Name: "Error parsing product",
		Info: []domain.Offer{{
			Vendor:      v,
			Price:       "$0",
			Description: "Failed to parse product data",
		}},
	}
}
