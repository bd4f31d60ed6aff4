package transcribe

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/chaz8081/holdscribe/internal/audio"
	"github.com/chaz8081/holdscribe/internal/session"
)

// Injector sends finished transcripts to another application.
type Injector interface {
	Inject(text string) error
}

// Consumer adapts a Transcriber to session.Consumer.
type Consumer struct {
	t          Transcriber
	timestamps bool
	inj        Injector
	log        zerolog.Logger
}

// NewConsumer returns a Consumer rendering transcripts from t. inj may be
// nil; when set, every non-empty transcript is also injected.
func NewConsumer(t Transcriber, timestamps bool, inj Injector, log zerolog.Logger) *Consumer {
	return &Consumer{t: t, timestamps: timestamps, inj: inj, log: log}
}

// Consume transcribes int16 samples. A failed injection is logged and does
// not discard the transcript.
func (c *Consumer) Consume(ctx context.Context, samples []int16) (session.Result, error) {
	if err := ctx.Err(); err != nil {
		return session.Result{}, fmt.Errorf("transcribe: %w", err)
	}

	segments, err := c.t.Transcribe(audio.Int16ToFloat32(samples))
	if err != nil {
		return session.Result{}, err
	}

	text := Render(segments, c.timestamps)
	c.log.Debug().Int("segments", len(segments)).Msg("Transcription finished")

	if c.inj != nil && text != "" {
		plain := text
		if c.timestamps {
			plain = Render(segments, false)
		}
		if err := c.inj.Inject(plain); err != nil {
			c.log.Error().Err(err).Msg("Text injection failed")
		}
	}

	return session.Result{Text: text}, nil
}

// Close releases the underlying Transcriber.
func (c *Consumer) Close() error {
	return c.t.Close()
}
