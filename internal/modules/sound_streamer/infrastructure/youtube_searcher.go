package infrastructure

import (
	"context"
	"fmt"

	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/application/ports"
	"github.com/ppalone/ytsearch"
)

const youtubeWatchURL = "https://www.youtube.com/watch?v="

// YouTubeSearcher finds videos by scraping YouTube search results.
type YouTubeSearcher struct {
	client *ytsearch.Client
}

// NewYouTubeSearcher creates a new YouTubeSearcher using the default HTTP client.
func NewYouTubeSearcher() *YouTubeSearcher {
	return &YouTubeSearcher{
		client: ytsearch.NewClient(nil),
	}
}

// Search returns the watch link of the first video result.
func (s *YouTubeSearcher) Search(ctx context.Context, query string) (string, error) {
	res, err := s.client.Search(ctx, query)
	if err != nil {
		return "", fmt.Errorf("youtube search failed: %w", err)
	}

	for _, result := range res.Results {
		if result.VideoID != "" {
			return youtubeWatchURL + result.VideoID, nil
		}
	}

	return "", nil
}

var _ ports.TrackSearcher = (*YouTubeSearcher)(nil)
