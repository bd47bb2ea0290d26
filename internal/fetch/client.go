package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"listmerge/internal/model"

	"go.uber.org/zap"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 16 << 20

type Config struct {
	Endpoint  string
	ItemsPath string

	// Timeout bounds a whole fetch. Zero means no timeout.
	Timeout time.Duration
}

// Source loads the flat item records.
type Source interface {
	Fetch(ctx context.Context) ([]model.Item, error)
}

// Client fetches items from an http(s) or file:// endpoint.
type Client struct {
	cfg  Config
	http *http.Client
	log  *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(cl *Client) { cl.log = l }
}

func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:  cfg,
		http: newHTTPClient(),
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c
}

func newHTTPClient() *http.Client {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	// No client-level timeout: Config.Timeout (via context) is the only bound.
	return &http.Client{Transport: tr}
}


// Fetch performs one read of the endpoint. It never retries.
func (c *Client) Fetch(ctx context.Context) ([]model.Item, error) {
	endpoint := strings.TrimSpace(c.cfg.Endpoint)
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	body, status, err := c.read(ctx, endpoint)
	if err != nil {
		c.log.Warn("fetch failed",
			zap.String("endpoint", endpoint),
			zap.Int("status", status),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, &Error{Endpoint: endpoint, Status: status, Err: err}
	}

	items, err := Decode(body, c.cfg.ItemsPath)
	if err != nil {
		c.log.Warn("fetch decode failed", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, &Error{Endpoint: endpoint, Status: status, Err: err}
	}
	c.log.Info("fetch ok",
		zap.String("endpoint", endpoint),
		zap.Int("items", len(items)),
		zap.Duration("elapsed", time.Since(start)))
	return items, nil
}

func (c *Client) read(ctx context.Context, endpoint string) ([]byte, int, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, 0, fmt.Errorf("parse endpoint: %w", err)
	}
	switch u.Scheme {
	case "file":
		path := u.Path
		if u.Host != "" && u.Host != "localhost" {
			path = u.Host + u.Path
		}
		b, err := os.ReadFile(path)
		return b, 0, err
	case "http", "https":
	default:
		return nil, 0, fmt.Errorf("unsupported endpoint scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, resp.StatusCode, errors.New("unexpected status")
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return b, resp.StatusCode, nil
}
