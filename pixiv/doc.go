// Package pixiv provides a client for pixiv's internal ajax JSON API.
//
// The endpoints are undocumented, so every response is decoded into a wire
// type mirroring the JSON exactly, validated, and only then translated into
// the domain types callers see (ArtworkImageSet, TagInfo). Field renames on
// pixiv's side stay contained in the wire layer.
//
// # Usage
//
//	client, err := pixiv.NewClient(
//		pixiv.WithLogger(logger),
//		pixiv.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	set, err := client.GetArtworkImages(ctx, "12345678", "en")
//	if errors.Is(err, pixiv.ErrArtworkNotFound) {
//		// deleted or private
//	}
//	data, err := client.GetImage(ctx, set.Page(0).Original)
//
// Run wraps the create/close pair:
//
//	err := pixiv.Run(func(c *pixiv.Client) error {
//		tag, err := c.GetTag(ctx, "猫", "en")
//		...
//	})
//
// # Error Handling
//
// Every failure is one of:
//
//   - ErrInvalidConfig: bad constructor input, e.g. a scheme other than http(s)
//   - ErrArtworkNotFound: pixiv flagged the artwork lookup as failed (*ArtworkError)
//   - ErrMalformedResponse: the JSON did not match the expected shape
//   - ErrForbidden, ErrNotFound: 403/404 on an image download (*StatusError)
//   - ErrInternal: any other image status; carries the code and body (*StatusError)
//   - ErrNotImplemented: Login
//   - ErrClientClosed: the client was already closed
//
// Transport errors, including context cancellation, are returned unchanged.
// Nothing is retried.
//
// # Lifecycle
//
// A Client owns one http.Client. Close releases it exactly once. A client that
// becomes unreachable without being closed is closed by a runtime cleanup as a
// last resort; that path only logs and should not be relied upon.
package pixiv
