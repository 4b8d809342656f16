package pixiv

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by the pixiv client.
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid pixiv client configuration")
	// ErrArtworkNotFound indicates the artwork does not exist or was deleted
	ErrArtworkNotFound = errors.New("artwork not found")
	// ErrMalformedResponse indicates the response did not match the expected shape
	ErrMalformedResponse = errors.New("malformed response from pixiv")
	// ErrForbidden indicates the server refused to serve an image
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates the requested image does not exist
	ErrNotFound = errors.New("not found")
	// ErrInternal indicates a status code the client has no handling rule for.
	// Please report these upstream.
	ErrInternal = errors.New("unexpected response from pixiv")
	// ErrNotImplemented is returned by operations that are intentionally unsupported
	ErrNotImplemented = errors.New("not implemented")
	// ErrClientClosed is returned by every operation once the client is closed
	ErrClientClosed = errors.New("pixiv client is closed")
)

// ArtworkError is returned when pixiv reports an error for an artwork lookup.
type ArtworkError struct {
	ArtworkID string
	Message   string
}

// Error implements the error interface
func (e *ArtworkError) Error() string {
	return fmt.Sprintf("an error occurred while retrieving artwork %s: %s", e.ArtworkID, e.Message)
}

// Unwrap lets errors.Is match ErrArtworkNotFound
func (e *ArtworkError) Unwrap() error {
	return ErrArtworkNotFound
}

// StatusError represents a non-200 response to a raw image request.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	switch e.StatusCode {
	case http.StatusForbidden, http.StatusNotFound:
		return fmt.Sprintf("an error occurred while retrieving image %s: status %d: %s", e.URL, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("unexpected status code %d for %s: %s", e.StatusCode, e.URL, e.Body)
	}
}

// Unwrap maps the status code onto ErrForbidden, ErrNotFound or ErrInternal
func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrInternal
	}
}

// IsForbidden checks if the error indicates a 403 response
func (e *StatusError) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

// IsNotFound checks if the error indicates a 404 response
func (e *StatusError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// malformed wraps cause (which may be nil) so that it matches ErrMalformedResponse
func malformed(cause error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrMalformedResponse, msg)
	}
	return fmt.Errorf("%w: %s: %w", ErrMalformedResponse, msg, cause)
}
