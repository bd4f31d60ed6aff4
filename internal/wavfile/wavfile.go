// Package wavfile writes captured samples as 16-bit mono RIFF WAV files.
package wavfile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/natefinch/atomic"
	"github.com/orcaman/writerseeker"

	"github.com/chaz8081/holdscribe/internal/session"
)

// Encode returns samples encoded as a 16-bit mono WAV file at sampleRate.
func Encode(samples []int16, sampleRate int) ([]byte, error) {
	ws := &writerseeker.WriterSeeker{}
	enc := wav.NewEncoder(ws, sampleRate, 16, 1, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	for i, s := range samples {
		buf.Data[i] = int(s)
	}

	if err := enc.Write(buf); err != nil {
		return nil, fmt.Errorf("wavfile: encoder write: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("wavfile: encoder close: %w", err)
	}

	data, err := io.ReadAll(ws.Reader())
	if err != nil {
		return nil, fmt.Errorf("wavfile: reading encoded data: %w", err)
	}
	return data, nil
}

// Writer replaces the file at Path with each recording it consumes.
type Writer struct {
	Path       string
	SampleRate int
}

// NewWriter returns a Writer for path at sampleRate.
func NewWriter(path string, sampleRate int) *Writer {
	return &Writer{Path: path, SampleRate: sampleRate}
}

// Write encodes samples and atomically replaces the file at w.Path.
func (w *Writer) Write(samples []int16) error {
	data, err := Encode(samples, w.SampleRate)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(w.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("wavfile: creating output dir: %w", err)
		}
	}

	if err := atomic.WriteFile(w.Path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("wavfile: writing %s: %w", w.Path, err)
	}
	return nil
}

// Consume writes the recording and reports where it went.
func (w *Writer) Consume(_ context.Context, samples []int16) (session.Result, error) {
	if err := w.Write(samples); err != nil {
		return session.Result{}, err
	}
	return session.Result{Path: w.Path}, nil
}

// Close is a no-op; Writer holds no resources between recordings.
func (w *Writer) Close() error {
	return nil
}
