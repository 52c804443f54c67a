package negotiate

import "context"

// mediaTypeKeyType is the context key type for the negotiated media type.
type mediaTypeKeyType struct{}

// mediaTypeKey is the context key for storing and retrieving the negotiated
// media type.
var mediaTypeKey = mediaTypeKeyType{}

// FromContext extracts the negotiated media type from the context.
// The second return value is false for requests that did not pass through
// the negotiation middleware.
func FromContext(ctx context.Context) (MediaType, bool) {
	mt, ok := ctx.Value(mediaTypeKey).(MediaType)
	return mt, ok
}

// ContextWithMediaType returns a new context carrying the negotiated media
// type. The middleware installs it on the request handed downstream; callers
// normally only need this to fabricate requests in tests.
func ContextWithMediaType(ctx context.Context, mt MediaType) context.Context {
	return context.WithValue(ctx, mediaTypeKey, mt)
}
