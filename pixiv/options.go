package pixiv

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	scheme     string
	baseURL    string
	userAgent  string
	timeout    time.Duration
	httpClient *http.Client
	logger     zerolog.Logger
}

func defaultOptions() clientOptions {
	return clientOptions{
		scheme:    DefaultScheme,
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		timeout:   DefaultTimeout,
		logger:    zerolog.Nop(),
	}
}

// WithScheme sets the URL scheme, "http" or "https".
// Any other value makes NewClient fail with ErrInvalidConfig.
func WithScheme(scheme string) Option {
	return func(o *clientOptions) {
		if scheme != "" {
			o.scheme = scheme
		}
	}
}

// WithBaseURL sets the host (optionally with port) requests are sent to.
func WithBaseURL(host string) Option {
	return func(o *clientOptions) {
		if host != "" {
			o.baseURL = host
		}
	}
}

// WithUserAgent overrides the browser user agent sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithHTTPClient uses a pre-built HTTP client as-is.
// The user agent, referer and timeout options are ignored; the client is
// expected to carry whatever headers the caller needs.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}
