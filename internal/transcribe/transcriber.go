// Package transcribe turns recorded audio into text with whisper.cpp.
// The model is loaded once at startup; language and timestamp rendering are
// fixed configuration.
package transcribe

import (
	"fmt"
	"strings"
	"time"

	"github.com/chaz8081/holdscribe/internal/config"
)

// Segment is one span of recognized speech.
type Segment struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Transcriber converts audio samples to text segments.
type Transcriber interface {
	// Transcribe recognizes mono 16kHz float32 audio samples.
	Transcribe(samples []float32) ([]Segment, error)
	// Close releases backend resources.
	Close() error
}

// New creates the whisper Transcriber described by cfg.
func New(cfg *config.TranscribeConfig) (Transcriber, error) {
	return NewWhisperTranscriber(cfg.ModelPath, Options{
		Language: cfg.Language,
		Threads:  cfg.Threads,
	})
}

// Render joins segments into display text. With timestamps each segment is
// put on its own line prefixed with "[start -> end]".
func Render(segments []Segment, timestamps bool) string {
	if !timestamps {
		parts := make([]string, 0, len(segments))
		for _, s := range segments {
			if t := strings.TrimSpace(s.Text); t != "" {
				parts = append(parts, t)
			}
		}
		return strings.Join(parts, " ")
	}

	var b strings.Builder
	for _, s := range segments {
		t := strings.TrimSpace(s.Text)
		if t == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "[%s -> %s] %s", formatTimestamp(s.Start), formatTimestamp(s.End), t)
	}
	return b.String()
}

// formatTimestamp renders d as mm:ss.cc.
func formatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	cs := d.Milliseconds() / 10
	return fmt.Sprintf("%02d:%02d.%02d", cs/6000, (cs/100)%60, cs%100)
}
