package audio

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"
)

// MalgoSource captures audio through miniaudio. Call Close() when done.
type MalgoSource struct {
	ctx *malgo.AllocatedContext
}

// NewMalgoSource initializes a miniaudio context.
func NewMalgoSource() (*MalgoSource, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("audio: initializing malgo context: %w", err)
	}
	return &MalgoSource{ctx: ctx}, nil
}

// Devices lists the capture devices known to miniaudio.
func (s *MalgoSource) Devices() ([]Device, error) {
	infos, err := s.ctx.Devices(malgo.Capture)
	if err != nil {
		return nil, fmt.Errorf("audio: enumerating capture devices: %w", err)
	}

	devices := make([]Device, 0, len(infos))
	for i, info := range infos {
		devices = append(devices, Device{
			Index:   i,
			Name:    info.Name(),
			Default: info.IsDefault != 0,
		})
	}
	return devices, nil
}

// Open initializes a signed 16-bit mono capture device. The stream does not
// deliver chunks until Start is called.
func (s *MalgoSource) Open(index int, sampleRate uint32, onChunk func([]int16)) (Stream, error) {
	infos, err := s.ctx.Devices(malgo.Capture)
	if err != nil {
		return nil, fmt.Errorf("audio: enumerating capture devices: %w", err)
	}
	if index < 0 || index >= len(infos) {
		return nil, fmt.Errorf("audio: device index %d out of range (%d devices)", index, len(infos))
	}

	deviceCfg := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceCfg.Capture.Format = malgo.FormatS16
	deviceCfg.Capture.Channels = 1
	deviceCfg.Capture.DeviceID = infos[index].ID.Pointer()
	deviceCfg.SampleRate = sampleRate

	st := &malgoStream{onChunk: onChunk}
	device, err := malgo.InitDevice(s.ctx.Context, deviceCfg, malgo.DeviceCallbacks{
		Data: st.onData,
	})
	if err != nil {
		return nil, fmt.Errorf("audio: initializing capture device %q: %w", infos[index].Name(), err)
	}
	st.device = device
	return st, nil
}

// Close releases the miniaudio context.
func (s *MalgoSource) Close() error {
	if s.ctx == nil {
		return nil
	}
	if err := s.ctx.Uninit(); err != nil {
		return fmt.Errorf("audio: uninitializing malgo context: %w", err)
	}
	s.ctx.Free()
	s.ctx = nil
	return nil
}

type malgoStream struct {
	device  *malgo.Device
	onChunk func([]int16)

	// scratch is reused across callbacks; onChunk receivers copy.
	mu      sync.Mutex
	scratch []int16
	stopped bool
}

func (st *malgoStream) Start() error {
	st.mu.Lock()
	st.stopped = false
	st.mu.Unlock()

	if err := st.device.Start(); err != nil {
		return fmt.Errorf("audio: starting capture device: %w", err)
	}
	return nil
}

// Stop halts the device. Callbacks racing with Stop are discarded.
func (st *malgoStream) Stop() error {
	st.mu.Lock()
	st.stopped = true
	st.mu.Unlock()

	if err := st.device.Stop(); err != nil {
		return fmt.Errorf("audio: stopping capture device: %w", err)
	}
	return nil
}

func (st *malgoStream) Close() error {
	st.device.Uninit()
	return nil
}

// onData is the malgo callback. pInput holds frameCount little-endian int16
// frames (one channel).
func (st *malgoStream) onData(_, pInput []byte, frameCount uint32) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.stopped {
		return
	}
	st.scratch = bytesToInt16(st.scratch[:0], pInput, frameCount)
	st.onChunk(st.scratch)
}

// bytesToInt16 appends sampleCount little-endian int16 samples decoded from
// data to dst. A trailing partial sample is dropped.
func bytesToInt16(dst []int16, data []byte, sampleCount uint32) []int16 {
	for i := uint32(0); i < sampleCount; i++ {
		offset := i * 2
		if offset+2 > uint32(len(data)) {
			break
		}
		dst = append(dst, int16(binary.LittleEndian.Uint16(data[offset:offset+2])))
	}
	return dst
}
