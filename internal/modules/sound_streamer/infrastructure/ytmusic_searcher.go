package infrastructure

import (
	"context"
	"fmt"

	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/application/ports"
	"github.com/raitonoberu/ytmusic"
)

const youtubeMusicWatchURL = "https://music.youtube.com/watch?v="

// YouTubeMusicSearcher finds songs through the YouTube Music search API.
type YouTubeMusicSearcher struct{}

// NewYouTubeMusicSearcher creates a new YouTubeMusicSearcher.
func NewYouTubeMusicSearcher() *YouTubeMusicSearcher {
	return &YouTubeMusicSearcher{}
}

type ytmusicResult struct {
	link string
	err  error
}

// Search returns the watch link of the first track result.
// The underlying client has no context support, so the search runs in its own
// goroutine and is abandoned when ctx ends.
func (s *YouTubeMusicSearcher) Search(ctx context.Context, query string) (string, error) {
	done := make(chan ytmusicResult, 1)

	go func() {
		res, err := ytmusic.TrackSearch(query).Next()
		if err != nil {
			done <- ytmusicResult{err: err}
			return
		}
		for _, track := range res.Tracks {
			if track.VideoID != "" {
				done <- ytmusicResult{link: youtubeMusicWatchURL + track.VideoID}
				return
			}
		}
		done <- ytmusicResult{}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return "", fmt.Errorf("youtube music search failed: %w", r.err)
		}
		return r.link, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

var _ ports.TrackSearcher = (*YouTubeMusicSearcher)(nil)
