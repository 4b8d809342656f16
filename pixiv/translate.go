package pixiv

// translateArtworkPages converts a pages envelope into an ArtworkImageSet.
// The body is only decoded when pixiv did not flag an error.
func translateArtworkPages(artworkID string, env *envelope) (*ArtworkImageSet, error) {
	if env.failed() {
		return nil, &ArtworkError{ArtworkID: artworkID, Message: env.Message}
	}

	wire, err := decodeArtworkPages(env.Body)
	if err != nil {
		return nil, err
	}

	pages := make([]ArtworkPage, 0, len(wire))
	for _, p := range wire {
		pages = append(pages, ArtworkPage{
			Thumb:    *p.URLs.ThumbMini,
			Small:    *p.URLs.Small,
			Regular:  *p.URLs.Regular,
			Original: *p.URLs.Original,
			Width:    *p.Width,
			Height:   *p.Height,
		})
	}

	return &ArtworkImageSet{artworkID: artworkID, pages: pages}, nil
}

// translateTag converts a tag envelope into TagInfo.
// pixiv has no "unknown tag" error, so any error flag is a protocol failure.
func translateTag(env *envelope) (*TagInfo, error) {
	if env.failed() {
		return nil, malformed(nil, "tag lookup returned an error: %s", env.Message)
	}

	wire, err := decodeTagBody(env.Body)
	if err != nil {
		return nil, err
	}

	// tagTranslation may carry entries for related tags; only our own is kept
	byLang := make(map[string]string)
	for lang, tr := range wire.TagTranslation[*wire.Tag] {
		byLang[lang] = tr
	}

	return &TagInfo{
		Name:         *wire.Tag,
		Word:         *wire.Word,
		Translations: byLang,
		Pixpedia: PixpediaEntry{
			ID:          wire.Pixpedia.ID,
			Description: wire.Pixpedia.Abstract,
			Image:       wire.Pixpedia.Image,
			Parent:      wire.Pixpedia.ParentTag,
			Children:    nonNil(wire.Pixpedia.ChildrenTags),
			Siblings:    nonNil(wire.Pixpedia.SiblingsTags),
			Yomigana:    wire.Pixpedia.Yomigana,
		},
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
