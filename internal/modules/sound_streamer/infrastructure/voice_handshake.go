package infrastructure

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"
)

// voiceHandshake collects the voice state and voice server halves Lavalink
// needs to open a voice connection. Discord sends them in either order, and
// later sends lone server updates when the voice region moves.
type voiceHandshake struct {
	mu sync.Mutex

	hasState  bool
	channelID *snowflake.ID
	sessionID string

	hasServer bool
	token     string
	endpoint  string

	ready chan struct{}
}

func newVoiceHandshake() *voiceHandshake {
	return &voiceHandshake{
		ready: make(chan struct{}),
	}
}

// voiceCredentials is a complete handshake, ready to forward to Lavalink.
type voiceCredentials struct {
	channelID *snowflake.ID
	sessionID string
	token     string
	endpoint  string
}

// setState records the state half. It returns the credentials once both halves are known.
func (h *voiceHandshake) setState(channelID *snowflake.ID, sessionID string) (voiceCredentials, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.hasState = true
	h.channelID = channelID
	h.sessionID = sessionID
	return h.completeLocked()
}

// setServer records the server half. It returns the credentials once both halves are known.
func (h *voiceHandshake) setServer(token, endpoint string) (voiceCredentials, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.hasServer = true
	h.token = token
	h.endpoint = endpoint
	return h.completeLocked()
}

// complete reports whether both halves have arrived at least once.
func (h *voiceHandshake) complete() bool {
	select {
	case <-h.ready:
		return true
	default:
		return false
	}
}

func (h *voiceHandshake) completeLocked() (voiceCredentials, bool) {
	if !h.hasState || !h.hasServer {
		return voiceCredentials{}, false
	}

	select {
	case <-h.ready:
	default:
		close(h.ready)
	}

	return voiceCredentials{
		channelID: h.channelID,
		sessionID: h.sessionID,
		token:     h.token,
		endpoint:  h.endpoint,
	}, true
}
