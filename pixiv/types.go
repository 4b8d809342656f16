package pixiv

import (
	"fmt"
	"strings"
)

// ImageSize selects one of the URL variants pixiv publishes for a page
type ImageSize string

const (
	// SizeThumb is the small square thumbnail
	SizeThumb ImageSize = "thumb"
	// SizeSmall is the 540px preview
	SizeSmall ImageSize = "small"
	// SizeRegular is the 1200px master image
	SizeRegular ImageSize = "regular"
	// SizeOriginal is the uploaded file
	SizeOriginal ImageSize = "original"
)

// ParseImageSize parses a size name, case-insensitively
func ParseImageSize(s string) (ImageSize, error) {
	switch size := ImageSize(strings.ToLower(strings.TrimSpace(s))); size {
	case SizeThumb, SizeSmall, SizeRegular, SizeOriginal:
		return size, nil
	default:
		return "", fmt.Errorf("unknown image size %q (must be thumb, small, regular or original)", s)
	}
}

// ArtworkPage describes a single page of an artwork
type ArtworkPage struct {
	Thumb    string
	Small    string
	Regular  string
	Original string
	Width    int
	Height   int
}

// URL returns the URL of the requested variant, falling back to the original
func (p ArtworkPage) URL(size ImageSize) string {
	switch size {
	case SizeThumb:
		return p.Thumb
	case SizeSmall:
		return p.Small
	case SizeRegular:
		return p.Regular
	default:
		return p.Original
	}
}

// ArtworkImageSet is the ordered list of pages of one artwork.
// Page order matches the order pixiv returned them in.
type ArtworkImageSet struct {
	artworkID string
	pages     []ArtworkPage
}

// NewArtworkImageSet copies pages into a new set
func NewArtworkImageSet(artworkID string, pages []ArtworkPage) *ArtworkImageSet {
	return &ArtworkImageSet{
		artworkID: artworkID,
		pages:     append([]ArtworkPage(nil), pages...),
	}
}

// ArtworkID returns the ID of the artwork the pages belong to
func (s *ArtworkImageSet) ArtworkID() string {
	return s.artworkID
}

// Len returns the number of pages
func (s *ArtworkImageSet) Len() int {
	return len(s.pages)
}

// Page returns the i-th page
func (s *ArtworkImageSet) Page(i int) ArtworkPage {
	return s.pages[i]
}

// Pages returns a copy of all pages in order
func (s *ArtworkImageSet) Pages() []ArtworkPage {
	return append([]ArtworkPage(nil), s.pages...)
}

// TagInfo holds a tag's metadata
type TagInfo struct {
	Name         string
	Word         string
	Translations map[string]string // language code -> translated tag, e.g. "en" -> "cat"
	Pixpedia     PixpediaEntry
}

// Translation returns the tag translated to lang, if pixiv has one
func (t *TagInfo) Translation(lang string) (string, bool) {
	tr, ok := t.Translations[lang]
	return tr, ok
}

// PixpediaEntry is the encyclopedia entry attached to a tag.
// Every field is empty when pixiv has no entry for the tag.
type PixpediaEntry struct {
	ID          string
	Description string
	Image       string
	Parent      string
	Children    []string
	Siblings    []string
	Yomigana    string
}

// IsEmpty reports whether pixiv returned no encyclopedia data
func (p *PixpediaEntry) IsEmpty() bool {
	return p.ID == "" && p.Description == "" && p.Image == "" && p.Parent == "" &&
		len(p.Children) == 0 && len(p.Siblings) == 0 && p.Yomigana == ""
}
