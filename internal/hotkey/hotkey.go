// Package hotkey provides a global record-key listener using gohook.
// Holding the key combination emits EventDown once; releasing it emits
// EventUp. Terminals cannot report key releases, which is why the listener
// hooks the keyboard globally.
package hotkey

import (
	"sync"

	hook "github.com/robotn/gohook"
	"github.com/rs/zerolog"
)

// EventType indicates whether the record key went down or up.
type EventType int

const (
	// EventDown signals that the record key combination is now held.
	EventDown EventType = iota
	// EventUp signals that the record key combination was released.
	EventUp
)

func (t EventType) String() string {
	if t == EventUp {
		return "up"
	}
	return "down"
}

// Event is emitted on the channel returned by Events.
type Event struct {
	Type EventType
}

// Listener manages the global record key and emits down/up events.
type Listener struct {
	keys []string
	log  zerolog.Logger
	ch   chan Event
	done chan struct{}
	once sync.Once

	mu   sync.Mutex
	held bool
}

// NewListener creates a Listener for the given key combo.
// keys should be lowercase key names (e.g., ["space"] or ["ctrl", "shift", "r"]).
func NewListener(keys []string, log zerolog.Logger) *Listener {
	return &Listener{
		keys: keys,
		log:  log,
		ch:   make(chan Event, 16),
		done: make(chan struct{}),
	}
}

// Keys returns the record key combination.
func (l *Listener) Keys() []string {
	return l.keys
}

// Events returns the channel that receives record key events.
// The channel is closed when the listener stops.
func (l *Listener) Events() <-chan Event {
	return l.ch
}

// Start begins listening for the global hotkey.
// This function blocks until Stop is called. Run it in a goroutine.
func (l *Listener) Start() {
	hook.Register(hook.KeyDown, l.keys, func(hook.Event) { l.onDown() })
	hook.Register(hook.KeyUp, l.keys, func(hook.Event) { l.onUp() })

	evChan := hook.Start()
	go func() {
		<-l.done
		hook.End()
	}()
	<-hook.Process(evChan)
	close(l.ch)
}

// onDown emits EventDown unless the key is already held. Keyboard
// auto-repeat delivers KeyDown continuously while a key is held.
func (l *Listener) onDown() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held {
		return
	}
	l.held = true
	l.emit(Event{Type: EventDown})
}

// onUp emits EventUp if the key was held.
func (l *Listener) onUp() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.held {
		return
	}
	l.held = false
	l.emit(Event{Type: EventUp})
}

// emit never blocks the hook thread. A dropped EventUp leaves the consumer
// recording until the next down/up cycle.
func (l *Listener) emit(ev Event) {
	select {
	case l.ch <- ev:
	default:
		l.log.Debug().Stringer("event", ev.Type).Int("buffered", len(l.ch)).Msg("Record key event dropped, channel full")
	}
}

// Stop terminates the hotkey listener.
// It is safe to call multiple times.
func (l *Listener) Stop() {
	l.once.Do(func() {
		close(l.done)
	})
}
