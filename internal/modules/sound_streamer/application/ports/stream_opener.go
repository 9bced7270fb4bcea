package ports

import "context"

// StreamOpener turns a link into a source the audio sink can play.
type StreamOpener interface {
	OpenStream(ctx context.Context, link string) (*AudioSource, error)
}
