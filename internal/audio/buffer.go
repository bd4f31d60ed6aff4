package audio

import "sync"

// CaptureBuffer accumulates chunks of 16-bit mono samples delivered by an
// audio callback and hands them back as one contiguous slice.
//
// Append is called from the audio backend's thread while Retrieve and Clear
// are called from the session controller, so all access goes through mu.
// Backends are not trusted to stop invoking callbacks synchronously on Stop.
type CaptureBuffer struct {
	mu     sync.Mutex
	chunks [][]int16
	n      int
}

// NewCaptureBuffer returns an empty buffer.
func NewCaptureBuffer() *CaptureBuffer {
	return &CaptureBuffer{}
}

// Append copies chunk and stores it after every previously appended chunk.
// The caller may reuse chunk as soon as Append returns. Empty chunks are ignored.
func (b *CaptureBuffer) Append(chunk []int16) {
	if len(chunk) == 0 {
		return
	}
	c := make([]int16, len(chunk))
	copy(c, chunk)

	b.mu.Lock()
	b.chunks = append(b.chunks, c)
	b.n += len(c)
	b.mu.Unlock()
}

// Clear discards all stored chunks.
func (b *CaptureBuffer) Clear() {
	b.mu.Lock()
	b.chunks = nil
	b.n = 0
	b.mu.Unlock()
}

// Retrieve returns the stored chunks concatenated in arrival order.
// It never returns nil and does not modify the buffer.
func (b *CaptureBuffer) Retrieve() []int16 {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]int16, 0, b.n)
	for _, c := range b.chunks {
		out = append(out, c...)
	}
	return out
}

// Len returns the number of samples currently stored.
func (b *CaptureBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.n
}

// Chunks returns the number of chunks currently stored.
func (b *CaptureBuffer) Chunks() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.chunks)
}
