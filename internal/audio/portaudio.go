package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// PortAudioSource captures audio through PortAudio. Only devices with at
// least one input channel are listed, so indices differ from PortAudio's
// global device numbering.
type PortAudioSource struct{}

// NewPortAudioSource initializes PortAudio. Call Close() when done.
func NewPortAudioSource() (*PortAudioSource, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audio: initializing portaudio: %w", err)
	}
	return &PortAudioSource{}, nil
}

func (s *PortAudioSource) inputs() ([]*portaudio.DeviceInfo, error) {
	all, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("audio: enumerating portaudio devices: %w", err)
	}
	inputs := make([]*portaudio.DeviceInfo, 0, len(all))
	for _, d := range all {
		if d.MaxInputChannels > 0 {
			inputs = append(inputs, d)
		}
	}
	return inputs, nil
}

// Devices lists PortAudio devices that can capture.
func (s *PortAudioSource) Devices() ([]Device, error) {
	inputs, err := s.inputs()
	if err != nil {
		return nil, err
	}
	def, _ := portaudio.DefaultInputDevice()

	devices := make([]Device, 0, len(inputs))
	for i, d := range inputs {
		devices = append(devices, Device{
			Index:   i,
			Name:    d.Name,
			Default: def != nil && d.Name == def.Name,
		})
	}
	return devices, nil
}

// Open prepares a callback-driven mono int16 input stream.
func (s *PortAudioSource) Open(index int, sampleRate uint32, onChunk func([]int16)) (Stream, error) {
	inputs, err := s.inputs()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(inputs) {
		return nil, fmt.Errorf("audio: device index %d out of range (%d devices)", index, len(inputs))
	}
	device := inputs[index]

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: 1,
			Latency:  device.DefaultLowInputLatency,
		},
		SampleRate:      float64(sampleRate),
		FramesPerBuffer: int(sampleRate / 100), // 10ms blocks
	}

	stream, err := portaudio.OpenStream(params, func(in []int16) {
		onChunk(in)
	})
	if err != nil {
		return nil, fmt.Errorf("audio: opening portaudio stream on %q: %w", device.Name, err)
	}
	return stream, nil
}

// Close terminates PortAudio.
func (s *PortAudioSource) Close() error {
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("audio: terminating portaudio: %w", err)
	}
	return nil
}
