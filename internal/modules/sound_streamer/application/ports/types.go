package ports

import "time"

// AudioSource is a playable stream as understood by the audio sink.
type AudioSource struct {
	// Encoded is the sink's opaque handle for the stream.
	Encoded  string
	Title    string
	Author   string
	URI      string
	Duration time.Duration
	IsStream bool
}
