package ports

import "context"

// TrackSearcher looks up free text with a search provider.
type TrackSearcher interface {
	// Search returns the link of the top result, or "" when nothing matched.
	Search(ctx context.Context, query string) (string, error)
}
