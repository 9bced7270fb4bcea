package infrastructure

import (
	"context"

	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/application/ports"
	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/domain"
)

// LavalinkSearcher delegates searches to the Lavalink node's source managers.
type LavalinkSearcher struct {
	adapter *LavalinkAdapter
	source  domain.SearchSource
}

// NewLavalinkSearcher creates a searcher that queries the given source.
func NewLavalinkSearcher(adapter *LavalinkAdapter, source domain.SearchSource) *LavalinkSearcher {
	return &LavalinkSearcher{
		adapter: adapter,
		source:  source,
	}
}

// Source returns the source manager queried for plain-text searches.
func (s *LavalinkSearcher) Source() domain.SearchSource {
	return s.source
}

// Search returns the URI of the first result that has one.
func (s *LavalinkSearcher) Search(ctx context.Context, query string) (string, error) {
	tracks, err := s.adapter.loadTracks(ctx, s.source.LavalinkQuery(query))
	if err != nil {
		return "", err
	}

	for _, track := range tracks {
		if track.Info.URI != nil && *track.Info.URI != "" {
			return *track.Info.URI, nil
		}
	}

	return "", nil
}

var _ ports.TrackSearcher = (*LavalinkSearcher)(nil)
