package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/application/ports"
	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/domain"
	"github.com/disgoorg/snowflake/v2"
)

// DefaultEventBufferSize is the default number of events a guild lane holds before dropping.
const DefaultEventBufferSize = 100

var (
	// ErrEventLoopClosed is returned when publishing or subscribing after Close.
	ErrEventLoopClosed = errors.New("event loop is closed")
	// ErrEventDropped is returned when a guild lane is full.
	ErrEventDropped = errors.New("event buffer full, event dropped")
)

// Compile-time checks that SessionEventLoop implements ports interfaces.
var (
	_ ports.EventPublisher  = (*SessionEventLoop)(nil)
	_ ports.EventSubscriber = (*SessionEventLoop)(nil)
)

// guildLane holds the events of one guild that are waiting to be handled.
type guildLane struct {
	pending []domain.Event
}

// SessionEventLoop delivers events to subscribed handlers. Events of the same
// guild are handled one at a time in publish order; different guilds are
// handled concurrently. A lane goroutine exists only while its guild has work.
type SessionEventLoop struct {
	handlers   map[reflect.Type][]func(context.Context, domain.Event)
	lanes      map[snowflake.ID]*guildLane
	bufferSize int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed bool
	mu     sync.Mutex
}

// NewSessionEventLoop creates a new SessionEventLoop with the given per-guild buffer size.
func NewSessionEventLoop(bufferSize int) *SessionEventLoop {
	if bufferSize <= 0 {
		bufferSize = DefaultEventBufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &SessionEventLoop{
		handlers:   make(map[reflect.Type][]func(context.Context, domain.Event)),
		lanes:      make(map[snowflake.ID]*guildLane),
		bufferSize: bufferSize,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Subscribe registers a handler for events of the given concrete type.
func (l *SessionEventLoop) Subscribe(
	eventType reflect.Type,
	handler func(context.Context, domain.Event),
) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrEventLoopClosed
	}

	l.handlers[eventType] = append(l.handlers[eventType], handler)
	return nil
}

// Publish queues the event on its guild's lane. It never blocks on handlers.
func (l *SessionEventLoop) Publish(event domain.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	eventType := reflect.TypeOf(event)

	if l.closed {
		slog.Warn("attempted to publish to closed event loop", "type", eventType)
		return ErrEventLoopClosed
	}

	guildID := event.GetGuildID()
	lane, running := l.lanes[guildID]
	if !running {
		lane = &guildLane{}
		l.lanes[guildID] = lane
	}

	if len(lane.pending) >= l.bufferSize {
		slog.Warn("event buffer full, dropping event", "type", eventType, "guild", guildID)
		return ErrEventDropped
	}

	lane.pending = append(lane.pending, event)
	slog.Debug("published event", "type", eventType, "guild", guildID)

	if !running {
		l.wg.Add(1)
		go l.drain(guildID, lane)
	}

	return nil
}

// drain handles the lane's events until it is empty, then retires the lane.
func (l *SessionEventLoop) drain(guildID snowflake.ID, lane *guildLane) {
	defer l.wg.Done()

	for {
		l.mu.Lock()
		if len(lane.pending) == 0 || l.ctx.Err() != nil {
			delete(l.lanes, guildID)
			l.mu.Unlock()
			return
		}
		event := lane.pending[0]
		lane.pending[0] = nil
		lane.pending = lane.pending[1:]
		handlers := l.handlers[reflect.TypeOf(event)]
		l.mu.Unlock()

		for _, handler := range handlers {
			l.dispatch(handler, event)
		}
	}
}

func (l *SessionEventLoop) dispatch(handler func(context.Context, domain.Event), event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("event handler panicked",
				"type", reflect.TypeOf(event),
				"guild", event.GetGuildID(),
				"error", fmt.Sprint(r),
			)
		}
	}()

	handler(l.ctx, event)
}

// Close stops accepting events, cancels in-flight handlers and waits for every lane to finish.
// Events still pending are discarded.
func (l *SessionEventLoop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mu.Unlock()

	l.cancel()
	l.wg.Wait()

	slog.Debug("session event loop closed")
}
