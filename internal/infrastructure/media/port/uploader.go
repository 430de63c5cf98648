package port

import "context"

// Uploader is the media collaborator consumed by the delivery coordinator.
// Upload stores the raw bytes and returns a reference URL. A failure here
// must abort the whole send: a message is never created without its media.
type Uploader interface {
	Upload(ctx context.Context, data []byte, kind string) (url string, err error)
}
