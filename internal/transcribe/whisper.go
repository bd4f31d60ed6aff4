package transcribe

import (
	"fmt"
	"io"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

// Options are the fixed whisper inference settings.
type Options struct {
	Language string // ISO code or "auto"
	Threads  uint   // 0 keeps the library default
}

// WhisperTranscriber wraps a whisper.cpp model for speech-to-text.
type WhisperTranscriber struct {
	model whisper.Model
	opts  Options
}

// NewWhisperTranscriber loads a whisper model from the given path.
// The caller must call Close() when done.
func NewWhisperTranscriber(modelPath string, opts Options) (*WhisperTranscriber, error) {
	model, err := whisper.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("transcribe: load whisper model %q: %w", modelPath, err)
	}
	if !model.IsMultilingual() && opts.Language != "" && opts.Language != "en" && opts.Language != "auto" {
		_ = model.Close()
		return nil, fmt.Errorf("transcribe: model %q is English-only, cannot transcribe %q", modelPath, opts.Language)
	}
	return &WhisperTranscriber{model: model, opts: opts}, nil
}

// Close releases the whisper model resources.
func (t *WhisperTranscriber) Close() error {
	if t.model != nil {
		return t.model.Close()
	}
	return nil
}

// Transcribe recognizes mono 16kHz float32 audio samples.
func (t *WhisperTranscriber) Transcribe(samples []float32) ([]Segment, error) {
	ctx, err := t.model.NewContext()
	if err != nil {
		return nil, fmt.Errorf("transcribe: create context: %w", err)
	}

	if t.opts.Language != "" && t.model.IsMultilingual() {
		if err := ctx.SetLanguage(t.opts.Language); err != nil {
			return nil, fmt.Errorf("transcribe: set language %q: %w", t.opts.Language, err)
		}
	}
	ctx.SetTranslate(false)
	if t.opts.Threads > 0 {
		ctx.SetThreads(t.opts.Threads)
	}

	if err := ctx.Process(samples, nil, nil, nil); err != nil {
		return nil, fmt.Errorf("transcribe: process: %w", err)
	}

	var segments []Segment
	for {
		seg, err := ctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("transcribe: next segment: %w", err)
		}
		segments = append(segments, Segment{Start: seg.Start, End: seg.End, Text: seg.Text})
	}

	return segments, nil
}
