package pixiv

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func pagesBody(n int) json.RawMessage {
	entries := make([]string, n)
	for i := range entries {
		entries[i] = fmt.Sprintf(`{"urls":{"thumb_mini":"t%[1]d","small":"s%[1]d","regular":"r%[1]d","original":"o%[1]d"},"width":%[1]d,"height":%[2]d}`, i, i*2)
	}
	return json.RawMessage("[" + strings.Join(entries, ",") + "]")
}

func TestTranslateArtworkPages(t *testing.T) {
	t.Run("order and length preserved", func(t *testing.T) {
		for _, n := range []int{0, 1, 2, 17} {
			set, err := translateArtworkPages("42", &envelope{Error: boolPtr(false), Body: pagesBody(n)})
			require.NoError(t, err)
			require.Equal(t, n, set.Len())
			for i, page := range set.Pages() {
				assert.Equal(t, fmt.Sprintf("o%d", i), page.Original)
				assert.Equal(t, fmt.Sprintf("t%d", i), page.Thumb)
				assert.Equal(t, i, page.Width)
				assert.Equal(t, i*2, page.Height)
			}
		}
	})

	t.Run("error flag carries message verbatim", func(t *testing.T) {
		_, err := translateArtworkPages("42", &envelope{Error: boolPtr(true), Message: "  deleted\n"})
		require.ErrorIs(t, err, ErrArtworkNotFound)

		var artworkErr *ArtworkError
		require.ErrorAs(t, err, &artworkErr)
		assert.Equal(t, "  deleted\n", artworkErr.Message)
	})
}

func TestTranslateTag(t *testing.T) {
	body := json.RawMessage(`{
		"tag": "東方",
		"word": "東方Project",
		"tagTranslation": {"東方": {"en": "Touhou"}, "東方Project": {"en": "Touhou Project"}},
		"pixpedia": {"abstract": "弾幕STG", "childrenTags": ["博麗霊夢"]}
	}`)

	tag, err := translateTag(&envelope{Error: boolPtr(false), Body: body})
	require.NoError(t, err)

	assert.Equal(t, "東方", tag.Name)
	assert.Equal(t, "東方Project", tag.Word)
	assert.Equal(t, map[string]string{"en": "Touhou"}, tag.Translations)
	assert.Equal(t, "弾幕STG", tag.Pixpedia.Description)
	assert.Equal(t, []string{"博麗霊夢"}, tag.Pixpedia.Children)
	assert.Equal(t, []string{}, tag.Pixpedia.Siblings)
	assert.False(t, tag.Pixpedia.IsEmpty())

	_, ok := tag.Translation("ko")
	assert.False(t, ok)
}

func TestTranslationsAreNotShared(t *testing.T) {
	body := json.RawMessage(`{"tag":"a","word":"a","tagTranslation":{"a":{"en":"A"}}}`)
	env := &envelope{Error: boolPtr(false), Body: body}

	first, err := translateTag(env)
	require.NoError(t, err)
	first.Translations["en"] = "changed"

	second, err := translateTag(env)
	require.NoError(t, err)
	assert.Equal(t, "A", second.Translations["en"])
}

func TestTranslateTagEmptyOwnEntry(t *testing.T) {
	body := json.RawMessage(`{"tag":"a","word":"a","tagTranslation":{"a":[]}}`)

	tag, err := translateTag(&envelope{Error: boolPtr(false), Body: body})
	require.NoError(t, err)
	assert.NotNil(t, tag.Translations)
	assert.Empty(t, tag.Translations)
}
