package hotkey

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func drain(l *Listener) []EventType {
	var got []EventType
	for {
		select {
		case ev := <-l.Events():
			got = append(got, ev.Type)
		default:
			return got
		}
	}
}

func TestAutoRepeatEmitsSingleDown(t *testing.T) {
	l := NewListener([]string{"space"}, zerolog.Nop())

	l.onDown()
	l.onDown()
	l.onDown()
	l.onUp()

	assert.Equal(t, []EventType{EventDown, EventUp}, drain(l))
}

func TestUpWithoutDownIsIgnored(t *testing.T) {
	l := NewListener([]string{"space"}, zerolog.Nop())

	l.onUp()

	assert.Empty(t, drain(l))
}

func TestRepeatedSessions(t *testing.T) {
	l := NewListener([]string{"ctrl", "shift", "r"}, zerolog.Nop())

	for i := 0; i < 3; i++ {
		l.onDown()
		l.onUp()
	}

	assert.Equal(t, []EventType{EventDown, EventUp, EventDown, EventUp, EventDown, EventUp}, drain(l))
	assert.Equal(t, []string{"ctrl", "shift", "r"}, l.Keys())
}

func TestEmitDoesNotBlockWhenFull(t *testing.T) {
	l := NewListener([]string{"space"}, zerolog.Nop())

	for i := 0; i < 100; i++ {
		l.onDown()
		l.onUp()
	}

	assert.Len(t, drain(l), cap(l.ch))
}

func TestDroppedEventsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	l := NewListener([]string{"space"}, zerolog.New(&buf).Level(zerolog.DebugLevel))

	for i := 0; i < cap(l.ch)/2; i++ {
		l.onDown()
		l.onUp()
	}
	assert.Empty(t, buf.String())

	l.onDown()
	l.onUp()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"event":"down"`)
	assert.Contains(t, lines[1], `"event":"up"`)
	assert.Contains(t, lines[1], "channel full")
}

func TestStopIsIdempotent(t *testing.T) {
	l := NewListener([]string{"space"}, zerolog.Nop())
	l.Stop()
	l.Stop()

	select {
	case <-l.done:
	default:
		t.Fatal("done channel not closed")
	}
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "down", EventDown.String())
	assert.Equal(t, "up", EventUp.String())
}
