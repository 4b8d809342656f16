package pixiv

import (
	"bytes"
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// The types in this file mirror the JSON pixiv returns, field for field.
// Pointer fields tagged `required` must be present; everything else falls
// back to its zero value. Unknown fields are ignored.

var validate = validator.New()

// envelope is the outermost shape of every ajax response
type envelope struct {
	Error   *bool           `json:"error" validate:"required"`
	Message string          `json:"message"`
	Body    json.RawMessage `json:"body"`
}

// failed reports the error flag; only valid after validation
func (e *envelope) failed() bool {
	return *e.Error
}

// artworkPageWire is one entry of ajax/illust/{id}/pages
type artworkPageWire struct {
	URLs   *artworkPageURLsWire `json:"urls" validate:"required"`
	Width  *int                 `json:"width" validate:"required,min=0"`
	Height *int                 `json:"height" validate:"required,min=0"`
}

type artworkPageURLsWire struct {
	ThumbMini *string `json:"thumb_mini" validate:"required"`
	Small     *string `json:"small" validate:"required"`
	Regular   *string `json:"regular" validate:"required"`
	Original  *string `json:"original" validate:"required"`
}

// tagBodyWire is the body of ajax/search/tags/{tag}
type tagBodyWire struct {
	Tag            *string          `json:"tag" validate:"required"`
	Word           *string          `json:"word" validate:"required"`
	TagTranslation translationTable `json:"tagTranslation"`
	Pixpedia       pixpediaWire     `json:"pixpedia"`
}

// translationTable maps tag name -> language -> translation.
// pixiv sends an empty JSON array instead of an empty object, at either level.
type translationTable map[string]translations

func (t *translationTable) UnmarshalJSON(data []byte) error {
	if isEmptyArray(data) {
		*t = translationTable{}
		return nil
	}
	var m map[string]translations
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*t = m
	return nil
}

// translations maps language -> translation for a single tag
type translations map[string]string

func (t *translations) UnmarshalJSON(data []byte) error {
	if isEmptyArray(data) {
		*t = translations{}
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*t = m
	return nil
}

type pixpediaWire struct {
	ID           string   `json:"id"`
	Abstract     string   `json:"abstract"`
	Image        string   `json:"image"`
	ParentTag    string   `json:"parentTag"`
	ChildrenTags []string `json:"childrenTags"`
	SiblingsTags []string `json:"siblingsTags"`
	Yomigana     string   `json:"yomigana"`
}

func (p *pixpediaWire) UnmarshalJSON(data []byte) error {
	if isEmptyArray(data) {
		*p = pixpediaWire{}
		return nil
	}
	type plain pixpediaWire
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = pixpediaWire(v)
	return nil
}

func isEmptyArray(data []byte) bool {
	data = bytes.TrimSpace(data)
	if len(data) < 2 || data[0] != '[' || data[len(data)-1] != ']' {
		return false
	}
	return len(bytes.TrimSpace(data[1:len(data)-1])) == 0
}

// decodeEnvelope decodes the outer envelope without touching the body
func decodeEnvelope(data []byte) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, malformed(err, "failed to decode response")
	}
	if err := validate.Struct(&env); err != nil {
		return nil, malformed(err, "invalid response envelope")
	}
	return &env, nil
}

func decodeArtworkPages(body json.RawMessage) ([]artworkPageWire, error) {
	if len(body) == 0 {
		return nil, malformed(nil, "response has no body")
	}
	var pages []artworkPageWire
	if err := json.Unmarshal(body, &pages); err != nil {
		return nil, malformed(err, "failed to decode artwork pages")
	}
	if pages == nil {
		return nil, malformed(nil, "artwork pages body is null")
	}
	for i := range pages {
		if err := validate.Struct(&pages[i]); err != nil {
			return nil, malformed(err, "invalid artwork page %d", i)
		}
	}
	return pages, nil
}

func decodeTagBody(body json.RawMessage) (*tagBodyWire, error) {
	if len(body) == 0 {
		return nil, malformed(nil, "response has no body")
	}
	var tag tagBodyWire
	if err := json.Unmarshal(body, &tag); err != nil {
		return nil, malformed(err, "failed to decode tag")
	}
	if err := validate.Struct(&tag); err != nil {
		return nil, malformed(err, "invalid tag")
	}
	return &tag, nil
}
