package transcribe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 2500 * time.Millisecond, Text: " Hallo zusammen."},
		{Start: 2500 * time.Millisecond, End: 3 * time.Second, Text: "   "},
		{Start: 61 * time.Second, End: 62*time.Second + 40*time.Millisecond, Text: "Wie geht's? "},
	}

	tests := []struct {
		name       string
		timestamps bool
		want       string
	}{
		{"plain", false, "Hallo zusammen. Wie geht's?"},
		{"timestamps", true, "[00:00.00 -> 00:02.50] Hallo zusammen.\n[01:01.00 -> 01:02.04] Wie geht's?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(segments, tt.timestamps))
		})
	}
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "", Render(nil, false))
	assert.Equal(t, "", Render(nil, true))
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "00:00.00", formatTimestamp(0))
	assert.Equal(t, "00:00.00", formatTimestamp(-time.Second))
	assert.Equal(t, "00:09.99", formatTimestamp(9990*time.Millisecond))
	assert.Equal(t, "10:00.00", formatTimestamp(10*time.Minute))
}

type fakeTranscriber struct {
	got      []float32
	segments []Segment
	err      error
	closed   bool
}

func (f *fakeTranscriber) Transcribe(samples []float32) ([]Segment, error) {
	f.got = samples
	return f.segments, f.err
}

func (f *fakeTranscriber) Close() error {
	f.closed = true
	return nil
}

type fakeInjector struct {
	texts []string
	err   error
}

func (f *fakeInjector) Inject(text string) error {
	f.texts = append(f.texts, text)
	return f.err
}

func TestConsumerConvertsAndRenders(t *testing.T) {
	tr := &fakeTranscriber{segments: []Segment{{Start: 0, End: time.Second, Text: "eins"}}}
	c := NewConsumer(tr, true, nil, zerolog.Nop())

	res, err := c.Consume(context.Background(), []int16{16384, -32768})
	require.NoError(t, err)

	assert.Equal(t, "[00:00.00 -> 00:01.00] eins", res.Text)
	assert.Equal(t, []float32{0.5, -1}, tr.got)
}

func TestConsumerInjectsPlainText(t *testing.T) {
	tr := &fakeTranscriber{segments: []Segment{{Text: "eins"}, {Text: "zwei"}}}
	inj := &fakeInjector{}
	c := NewConsumer(tr, true, inj, zerolog.Nop())

	_, err := c.Consume(context.Background(), []int16{1})
	require.NoError(t, err)
	assert.Equal(t, []string{"eins zwei"}, inj.texts)
}

func TestConsumerInjectionFailureKeepsTranscript(t *testing.T) {
	tr := &fakeTranscriber{segments: []Segment{{Text: "eins"}}}
	inj := &fakeInjector{err: errors.New("no accessibility permission")}
	c := NewConsumer(tr, false, inj, zerolog.Nop())

	res, err := c.Consume(context.Background(), []int16{1})
	require.NoError(t, err)
	assert.Equal(t, "eins", res.Text)
}

func TestConsumerSkipsInjectingEmptyTranscript(t *testing.T) {
	inj := &fakeInjector{}
	c := NewConsumer(&fakeTranscriber{}, false, inj, zerolog.Nop())

	res, err := c.Consume(context.Background(), []int16{1})
	require.NoError(t, err)
	assert.Empty(t, res.Text)
	assert.Empty(t, inj.texts)
}

func TestConsumerTranscriberError(t *testing.T) {
	c := NewConsumer(&fakeTranscriber{err: errors.New("boom")}, false, nil, zerolog.Nop())

	_, err := c.Consume(context.Background(), []int16{1})
	require.Error(t, err)
}

func TestConsumerCanceledContext(t *testing.T) {
	tr := &fakeTranscriber{}
	c := NewConsumer(tr, false, nil, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Consume(ctx, []int16{1})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, tr.got)
}

func TestConsumerClose(t *testing.T) {
	tr := &fakeTranscriber{}
	require.NoError(t, NewConsumer(tr, false, nil, zerolog.Nop()).Close())
	assert.True(t, tr.closed)
}
