package pixiv

import (
	"context"
)

// API defines the interface for pixiv operations
type API interface {
	// GetArtworkImages retrieves the ordered pages of an artwork
	GetArtworkImages(ctx context.Context, artworkID, lang string) (*ArtworkImageSet, error)

	// GetTag retrieves tag metadata
	GetTag(ctx context.Context, tag, lang string) (*TagInfo, error)

	// GetImage downloads raw image bytes
	GetImage(ctx context.Context, imageURL string) ([]byte, error)

	// Close releases the underlying transport
	Close() error
}

var _ API = (*Client)(nil)
