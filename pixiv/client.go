package pixiv

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultScheme is used when no scheme is configured
	DefaultScheme = "https"
	// DefaultBaseURL is the pixiv web host
	DefaultBaseURL = "www.pixiv.net"
	// DefaultUserAgent mimics a desktop browser; pixiv rejects obvious bots
	DefaultUserAgent = "Mozilla/5.0 " +
		"(Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/97.0.4692.71 " +
		"Safari/537.36"
	// DefaultTimeout bounds a single request when no HTTP client is supplied
	DefaultTimeout = 30 * time.Second
)

// Client is a pixiv ajax API client. It is safe for concurrent use.
// Callers must Close it when done; Run does so automatically.
type Client struct {
	baseURL *url.URL
	logger  zerolog.Logger
	session *session
}

// session owns the transport. It is kept separate from Client so that the
// cleanup registered on Client can close it without keeping Client alive.
type session struct {
	httpClient *http.Client
	logger     zerolog.Logger
	closed     atomic.Bool
	closeOnce  sync.Once
}

// NewClient creates a new pixiv client
func NewClient(opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	scheme := strings.ToLower(o.scheme)
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("%w: scheme must be http or https, got %q", ErrInvalidConfig, o.scheme)
	}

	host := strings.TrimRight(o.baseURL, "/")
	baseURL, err := url.Parse(scheme + "://" + host)
	if err != nil || baseURL.Host == "" {
		return nil, fmt.Errorf("%w: invalid base URL %q", ErrInvalidConfig, o.baseURL)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: o.timeout,
			Transport: &headerTransport{
				base:      http.DefaultTransport.(*http.Transport).Clone(),
				referer:   baseURL.String() + "/",
				userAgent: o.userAgent,
			},
		}
	}

	c := &Client{
		baseURL: baseURL,
		logger:  o.logger,
		session: &session{
			httpClient: httpClient,
			logger:     o.logger,
		},
	}

	runtime.AddCleanup(c, func(s *session) { s.release() }, c.session)

	return c, nil
}

// Run creates a client, passes it to fn and closes it when fn returns.
func Run(fn func(c *Client) error, opts ...Option) error {
	c, err := NewClient(opts...)
	if err != nil {
		return err
	}
	defer c.Close()

	return fn(c)
}

// Close releases the underlying transport. Further calls are no-ops and every
// operation on a closed client returns ErrClientClosed.
func (c *Client) Close() error {
	c.session.close()
	return nil
}

// Closed reports whether Close has been called
func (c *Client) Closed() bool {
	return c.session.closed.Load()
}

func (s *session) close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.httpClient.CloseIdleConnections()
	})
}

// release is the garbage collection fallback for clients that were never
// closed. It runs on the runtime's cleanup goroutine and must not panic.
func (s *session) release() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn().Interface("panic", r).Msg("Failed to close pixiv client automatically")
		}
	}()

	if s.closed.Load() {
		return
	}
	s.logger.Warn().Msg("pixiv client was garbage collected without Close, closing it now")
	s.close()
}

// GetArtworkImages retrieves the pages of an artwork.
// lang is passed through as the lang query parameter when non-empty.
func (c *Client) GetArtworkImages(ctx context.Context, artworkID, lang string) (*ArtworkImageSet, error) {
	env, err := c.getJSON(ctx, "/ajax/illust/"+url.PathEscape(artworkID)+"/pages", lang)
	if err != nil {
		return nil, err
	}

	set, err := translateArtworkPages(artworkID, env)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("artwork_id", artworkID).
		Int("pages", set.Len()).
		Msg("Retrieved artwork pages from pixiv")

	return set, nil
}

// GetTag retrieves tag metadata, its translations and pixpedia entry.
func (c *Client) GetTag(ctx context.Context, tag, lang string) (*TagInfo, error) {
	env, err := c.getJSON(ctx, "/ajax/search/tags/"+url.PathEscape(tag), lang)
	if err != nil {
		return nil, err
	}

	info, err := translateTag(env)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("tag", info.Name).
		Int("translations", len(info.Translations)).
		Msg("Retrieved tag from pixiv")

	return info, nil
}

// GetImage downloads an image. imageURL should come from an ArtworkPage;
// relative URLs are resolved against the base URL.
func (c *Client) GetImage(ctx context.Context, imageURL string) ([]byte, error) {
	if c.Closed() {
		return nil, ErrClientClosed
	}

	ref, err := url.Parse(imageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid image URL %q: %w", imageURL, err)
	}
	requestURL := c.baseURL.ResolveReference(ref).String()

	status, body, err := c.doRequest(ctx, requestURL, "image/*")
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		return nil, &StatusError{
			StatusCode: status,
			URL:        requestURL,
			Body:       string(body),
		}
	}

	return body, nil
}

// Login is not supported.
func (c *Client) Login(ctx context.Context, identifier, password string) error {
	return fmt.Errorf("login: %w", ErrNotImplemented)
}

// getJSON fetches an ajax endpoint and decodes its envelope. pixiv answers
// errors with 4xx statuses and an error envelope, so the status code alone
// does not decide success.
func (c *Client) getJSON(ctx context.Context, endpoint, lang string) (*envelope, error) {
	requestURL := c.baseURL.String() + endpoint
	if lang != "" {
		requestURL += "?" + url.Values{"lang": {lang}}.Encode()
	}

	status, body, err := c.doRequest(ctx, requestURL, "application/json")
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope(body)
	if err != nil {
		if status != http.StatusOK {
			return nil, fmt.Errorf("status %d: %w", status, err)
		}
		return nil, err
	}

	return env, nil
}

// doRequest performs a single GET. Transport errors are returned unchanged.
func (c *Client) doRequest(ctx context.Context, requestURL, accept string) (int, []byte, error) {
	if c.session.closed.Load() {
		return 0, nil, ErrClientClosed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", accept)

	c.logger.Debug().Str("url", requestURL).Msg("Making pixiv request")

	resp, err := c.session.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	return resp.StatusCode, body, nil
}

// headerTransport adds the browser-like headers pixiv expects
type headerTransport struct {
	base      http.RoundTripper
	referer   string
	userAgent string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Referer") == "" || req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		if req.Header.Get("Referer") == "" {
			req.Header.Set("Referer", t.referer)
		}
		if req.Header.Get("User-Agent") == "" {
			req.Header.Set("User-Agent", t.userAgent)
		}
	}
	return t.base.RoundTrip(req)
}

func (t *headerTransport) CloseIdleConnections() {
	if ci, ok := t.base.(interface{ CloseIdleConnections() }); ok {
		ci.CloseIdleConnections()
	}
}
