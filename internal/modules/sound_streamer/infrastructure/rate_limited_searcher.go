package infrastructure

import (
	"context"
	"fmt"

	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/application/ports"
	"golang.org/x/time/rate"
)

// RateLimitedSearcher keeps search traffic to a provider under a steady rate.
type RateLimitedSearcher struct {
	next    ports.TrackSearcher
	limiter *rate.Limiter
}

// NewRateLimitedSearcher allows perSecond searches per second with the given burst.
func NewRateLimitedSearcher(next ports.TrackSearcher, perSecond float64, burst int) *RateLimitedSearcher {
	return &RateLimitedSearcher{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Search waits for a token and then delegates.
func (s *RateLimitedSearcher) Search(ctx context.Context, query string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("search rate limit: %w", err)
	}
	return s.next.Search(ctx, query)
}

var _ ports.TrackSearcher = (*RateLimitedSearcher)(nil)
