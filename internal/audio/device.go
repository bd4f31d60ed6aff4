package audio

import (
	"errors"
	"fmt"
)

// ErrNoDevices is returned when the backend reports no capture devices.
var ErrNoDevices = errors.New("audio: no capture devices")

// Device describes one capture device as enumerated by a Source.
// Index is the device's position in the Source's device list.
type Device struct {
	Index   int
	Name    string
	Default bool
}

// Stream is an open input stream. Stop must not return until the backend
// has been told to cease delivering chunks; Close releases the stream.
type Stream interface {
	Start() error
	Stop() error
	Close() error
}

// Source enumerates capture devices and opens mono 16-bit input streams.
type Source interface {
	// Devices returns the capture devices in index order.
	Devices() ([]Device, error)
	// Open prepares a stream on the device at index. onChunk is called from
	// the backend's audio thread with each delivered block of samples; the
	// slice is only valid for the duration of the call.
	Open(index int, sampleRate uint32, onChunk func([]int16)) (Stream, error)
	// Close releases the backend.
	Close() error
}

// NewSource creates the Source for the named backend ("malgo" or "portaudio").
func NewSource(backend string) (Source, error) {
	switch backend {
	case "malgo", "":
		return NewMalgoSource()
	case "portaudio":
		return NewPortAudioSource()
	default:
		return nil, fmt.Errorf("audio: unknown backend %q (supported: malgo, portaudio)", backend)
	}
}

// Selector tracks the currently selected capture device. The index always
// stays within [0, len(devices)-1].
type Selector struct {
	devices []Device
	index   int
}

// NewSelector returns a Selector over devices starting at index start.
// A negative start selects the backend's default device, or the first device
// when none is marked default. A start beyond the list is an error.
func NewSelector(devices []Device, start int) (*Selector, error) {
	if len(devices) == 0 {
		return nil, ErrNoDevices
	}
	if start >= len(devices) {
		return nil, fmt.Errorf("audio: device index %d out of range [0, %d]", start, len(devices)-1)
	}

	s := &Selector{devices: devices}
	if start >= 0 {
		s.index = start
		return s, nil
	}
	for i, d := range devices {
		if d.Default {
			s.index = i
			break
		}
	}
	return s, nil
}

// Up selects the next device. It reports whether the selection changed.
func (s *Selector) Up() bool {
	if s.index >= len(s.devices)-1 {
		return false
	}
	s.index++
	return true
}

// Down selects the previous device. It reports whether the selection changed.
func (s *Selector) Down() bool {
	if s.index <= 0 {
		return false
	}
	s.index--
	return true
}

// Index returns the selected device index.
func (s *Selector) Index() int {
	return s.index
}

// Current returns the selected device.
func (s *Selector) Current() Device {
	return s.devices[s.index]
}

// Len returns the number of selectable devices.
func (s *Selector) Len() int {
	return len(s.devices)
}

// Label renders the selection as "<index> - <name>".
func (s *Selector) Label() string {
	return fmt.Sprintf("%d - %s", s.index, s.devices[s.index].Name)
}
