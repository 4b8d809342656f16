// Package download fetches selected artwork pages to disk with bounded
// concurrency.
package download

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/pixfetch/filter"
	"github.com/s0up4200/pixfetch/pixiv"
)

const (
	// DefaultConcurrency is the number of pages fetched at once
	DefaultConcurrency = 4
	// MaxConcurrency caps user supplied concurrency; pixiv's image CDN
	// starts refusing connections well before this
	MaxConcurrency = 16
)

// ErrInvalidArtworkID is returned for IDs that are not a run of digits
var ErrInvalidArtworkID = errors.New("invalid artwork ID")

// ValidateArtworkID checks that id is a pixiv artwork ID. IDs end up in file
// paths, so anything but digits is rejected.
func ValidateArtworkID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidArtworkID)
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: %q", ErrInvalidArtworkID, id)
		}
	}
	return nil
}

// ImageFetcher downloads raw image bytes. *pixiv.Client implements it.
type ImageFetcher interface {
	GetImage(ctx context.Context, imageURL string) ([]byte, error)
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithConcurrency sets how many pages are fetched in parallel
func WithConcurrency(n int) Option {
	return func(d *Downloader) {
		if n > 0 {
			d.concurrency = min(n, MaxConcurrency)
		}
	}
}

// WithSize selects which URL variant of each page is downloaded
func WithSize(size pixiv.ImageSize) Option {
	return func(d *Downloader) {
		d.size = size
	}
}

// WithOverwrite replaces files that already exist instead of skipping them
func WithOverwrite(overwrite bool) Option {
	return func(d *Downloader) {
		d.overwrite = overwrite
	}
}

// Downloader writes artwork pages into a directory
type Downloader struct {
	fetcher     ImageFetcher
	logger      zerolog.Logger
	concurrency int
	size        pixiv.ImageSize
	overwrite   bool
}

// New creates a Downloader
func New(fetcher ImageFetcher, logger zerolog.Logger, opts ...Option) *Downloader {
	d := &Downloader{
		fetcher:     fetcher,
		logger:      logger,
		concurrency: DefaultConcurrency,
		size:        pixiv.SizeOriginal,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Result lists the files a download produced
type Result struct {
	Requested int
	Written   []string
	Skipped   []string
}

// PageError wraps the failure of a single page
type PageError struct {
	Index int
	URL   string
	Err   error
}

// Error implements the error interface
func (e *PageError) Error() string {
	return fmt.Sprintf("failed to download page %d (%s): %v", e.Index, e.URL, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// FileName returns the name page index of artworkID is saved under
func FileName(artworkID string, index int, imageURL string) string {
	ext := ".bin"
	if u, err := url.Parse(imageURL); err == nil && path.Ext(u.Path) != "" {
		ext = path.Ext(u.Path)
	}
	return fmt.Sprintf("%s_p%d%s", artworkID, index, ext)
}

// Download fetches pages concurrently into dir. The first failure cancels
// the remaining fetches and is returned; files already written are kept.
func (d *Downloader) Download(ctx context.Context, artworkID string, pages []filter.Selected, dir string) (*Result, error) {
	if err := ValidateArtworkID(artworkID); err != nil {
		return nil, err
	}

	result := &Result{Requested: len(pages)}
	if len(pages) == 0 {
		return result, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)

	var mu sync.Mutex

	for _, sel := range pages {
		imageURL := sel.Page.URL(d.size)
		target := filepath.Join(dir, FileName(artworkID, sel.Index, imageURL))

		g.Go(func() error {
			if !d.overwrite {
				if _, err := os.Stat(target); err == nil {
					d.logger.Debug().Str("file", target).Msg("File exists, skipping")
					mu.Lock()
					result.Skipped = append(result.Skipped, target)
					mu.Unlock()
					return nil
				}
			}

			data, err := d.fetcher.GetImage(ctx, imageURL)
			if err != nil {
				return &PageError{Index: sel.Index, URL: imageURL, Err: err}
			}

			if err := writeFile(target, data); err != nil {
				return &PageError{Index: sel.Index, URL: imageURL, Err: err}
			}

			d.logger.Info().
				Str("artwork_id", artworkID).
				Int("page", sel.Index).
				Int("bytes", len(data)).
				Str("file", target).
				Msg("Downloaded page")

			mu.Lock()
			result.Written = append(result.Written, target)
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()

	slices.Sort(result.Written)
	slices.Sort(result.Skipped)

	return result, err
}

// writeFile writes data next to target and renames it into place so a
// partially written image is never left under the final name
func writeFile(target string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".pixfetch-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}
