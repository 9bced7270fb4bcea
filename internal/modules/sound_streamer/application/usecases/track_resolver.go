package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/application/ports"
	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/domain"
)

// TrackResolver turns a free-text query into a playable link.
type TrackResolver struct {
	searcher ports.TrackSearcher
	timeout  time.Duration
}

// NewTrackResolver creates a new TrackResolver. A zero timeout leaves the
// lookup bounded only by the caller's context.
func NewTrackResolver(searcher ports.TrackSearcher, timeout time.Duration) *TrackResolver {
	return &TrackResolver{
		searcher: searcher,
		timeout:  timeout,
	}
}

// Resolve returns the link of the top search result for the query.
// Links are returned as-is without contacting the provider.
func (r *TrackResolver) Resolve(ctx context.Context, query string) (string, error) {
	if domain.IsLink(query) {
		return query, nil
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	link, err := r.searcher.Search(ctx, query)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrResolutionFailed, err)
	}
	if link == "" {
		return "", ErrNotFound
	}

	return link, nil
}
