// Package session implements the push-to-talk recording session: record key
// down opens an input stream feeding a CaptureBuffer, record key up stops it
// and hands the samples to a Consumer.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/chaz8081/holdscribe/internal/audio"
)

// ErrNoAudio is returned by Stop when the session captured no samples.
// It is an expected outcome, not a failure.
var ErrNoAudio = errors.New("session: no audio recorded")

// State is the controller state.
type State int

const (
	// Idle means no input stream is open.
	Idle State = iota
	// Recording means an input stream is delivering into the buffer.
	Recording
)

func (s State) String() string {
	switch s {
	case Recording:
		return "recording"
	default:
		return "idle"
	}
}

// Result is what a Consumer produced from one recording.
type Result struct {
	Text     string        // transcript, empty in WAV mode
	Path     string        // file written, empty in transcribe mode
	Samples  int           // number of samples consumed
	Duration time.Duration // recording length
	Elapsed  time.Duration // time spent in the consumer
}

// Consumer turns a finished recording into a Result. Implementations are
// the WAV writer and the transcriber.
type Consumer interface {
	Consume(ctx context.Context, samples []int16) (Result, error)
	Close() error
}

// Controller owns the capture buffer and the input stream for one device
// backend. It is safe for concurrent use.
type Controller struct {
	source     audio.Source
	consumer   Consumer
	sampleRate uint32
	log        zerolog.Logger

	mu     sync.Mutex
	buf    *audio.CaptureBuffer
	stream audio.Stream
	state  State
	device int
}

// New creates a Controller capturing from source at sampleRate and handing
// recordings to consumer.
func New(source audio.Source, consumer Consumer, sampleRate uint32, log zerolog.Logger) *Controller {
	return &Controller{
		source:     source,
		consumer:   consumer,
		sampleRate: sampleRate,
		log:        log,
		buf:        audio.NewCaptureBuffer(),
	}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start begins a recording on the device at index. It reports whether a new
// session was started; a Start while already recording (key auto-repeat) is
// ignored.
func (c *Controller) Start(device int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Recording {
		return false, nil
	}

	c.buf.Clear()

	stream, err := c.source.Open(device, c.sampleRate, c.buf.Append)
	if err != nil {
		return false, fmt.Errorf("session: open input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		return false, fmt.Errorf("session: start input stream: %w", err)
	}

	c.stream = stream
	c.device = device
	c.state = Recording
	c.log.Info().Int("device", device).Msg("Recording started")
	return true, nil
}

// Stop ends the recording and returns the captured samples. The stream is
// stopped and closed before the buffer is read, and the buffer is cleared
// before Stop returns. Stop while idle returns (nil, nil). An empty
// recording returns ErrNoAudio.
func (c *Controller) Stop() ([]int16, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Recording || c.stream == nil {
		return nil, nil
	}

	var stopErr error
	if err := c.stream.Stop(); err != nil {
		stopErr = fmt.Errorf("session: stop input stream: %w", err)
	}
	if err := c.stream.Close(); err != nil && stopErr == nil {
		stopErr = fmt.Errorf("session: close input stream: %w", err)
	}
	c.stream = nil
	c.state = Idle

	samples := c.buf.Retrieve()
	chunks := c.buf.Chunks()
	c.buf.Clear()

	if stopErr != nil {
		c.log.Warn().Err(stopErr).Msg("Input stream did not shut down cleanly")
	}

	if len(samples) == 0 {
		c.log.Info().Int("device", c.device).Msg("No audio recorded")
		return nil, ErrNoAudio
	}

	c.log.Info().
		Int("samples", len(samples)).
		Int("chunks", chunks).
		Dur("duration", audio.Duration(len(samples), c.sampleRate)).
		Msg("Recording stopped")
	return samples, nil
}

// Process hands samples to the consumer. Failures are returned, never
// panicked; the controller is already idle when Process runs, so a new
// session may start while a previous recording is still being processed.
func (c *Controller) Process(ctx context.Context, samples []int16) (Result, error) {
	start := time.Now()
	res, err := c.consumer.Consume(ctx, samples)
	elapsed := time.Since(start)
	if err != nil {
		c.log.Error().Err(err).Dur("elapsed", elapsed).Msg("Processing recording failed")
		return Result{}, err
	}

	res.Samples = len(samples)
	res.Duration = audio.Duration(len(samples), c.sampleRate)
	res.Elapsed = elapsed

	c.log.Info().
		Dur("elapsed", elapsed).
		Str("path", res.Path).
		Int("text_len", len(res.Text)).
		Msg("Recording processed")
	return res, nil
}

// Close stops any active recording and releases the consumer.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.stream != nil {
		_ = c.stream.Stop()
		_ = c.stream.Close()
		c.stream = nil
	}
	c.state = Idle
	c.buf.Clear()
	c.mu.Unlock()

	if err := c.consumer.Close(); err != nil {
		return fmt.Errorf("session: close consumer: %w", err)
	}
	return nil
}
