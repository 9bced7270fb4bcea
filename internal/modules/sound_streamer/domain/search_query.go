package domain

import (
	"fmt"
	"strings"
)

// SearchSource represents a Lavalink search prefix.
type SearchSource string

const (
	// SourceYouTube searches YouTube.
	SourceYouTube SearchSource = "ytsearch"
	// SourceYouTubeMusic searches YouTube Music.
	SourceYouTubeMusic SearchSource = "ytmsearch"
	// SourceSoundCloud searches SoundCloud.
	SourceSoundCloud SearchSource = "scsearch"
)

// ParseSearchSource maps a provider name from configuration to its Lavalink prefix.
func ParseSearchSource(name string) (SearchSource, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "youtube", "ytsearch":
		return SourceYouTube, nil
	case "ytmusic", "ytmsearch":
		return SourceYouTubeMusic, nil
	case "soundcloud", "scsearch":
		return SourceSoundCloud, nil
	default:
		return "", fmt.Errorf("unknown search source %q", name)
	}
}

// LavalinkQuery returns the query string formatted for a Lavalink search.
// Links are passed through untouched.
func (s SearchSource) LavalinkQuery(query string) string {
	if IsLink(query) {
		return query
	}
	return string(s) + ":" + query
}

// IsLink reports whether the input starts with an http:// or https:// scheme.
func IsLink(input string) bool {
	return hasPrefixFold(input, "http://") || hasPrefixFold(input, "https://")
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
