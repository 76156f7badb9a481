// Package pool provides two sync.Pool-backed growable byte buffers for the
// build pipeline's serialize phase: one for the postings blob (many small
// varint records), one for the records blob (fewer, larger records). The
// pipeline needs exactly these two long-lived buffers, so the pools are
// concrete rather than a generic registry of named buffer kinds.
package pool

import "sync"

// Default and max-retained sizes for the two buffers.
const (
	PostingsBufferDefaultSize  = 1024 * 16       // 16KiB
	PostingsBufferMaxThreshold = 1024 * 128      // 128KiB
	RecordsBufferDefaultSize   = 1024 * 1024     // 1MiB
	RecordsBufferMaxThreshold  = 1024 * 1024 * 8 // 8MiB
)

// Buffer is a reusable, growable byte slice. Growth is left to append's
// built-in doubling; Buffer only adds Reset and an io.Writer-compatible
// Write so it can serve as vellum.New's output sink.
type Buffer struct {
	B []byte
}

// Bytes returns the underlying byte slice.
func (b *Buffer) Bytes() []byte {
	return b.B
}

// Reset empties the buffer but retains its allocated memory for reuse.
func (b *Buffer) Reset() {
	b.B = b.B[:0]
}

// Len returns the length of the buffer.
func (b *Buffer) Len() int {
	return len(b.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (b *Buffer) MustWrite(data []byte) {
	b.B = append(b.B, data...)
}

// Write implements io.Writer so a Buffer can be passed directly to
// vellum.New as its output sink.
func (b *Buffer) Write(data []byte) (int, error) {
	b.B = append(b.B, data...)
	return len(data), nil
}

var postingsPool = sync.Pool{
	New: func() any { return &Buffer{B: make([]byte, 0, PostingsBufferDefaultSize)} },
}

var recordsPool = sync.Pool{
	New: func() any { return &Buffer{B: make([]byte, 0, RecordsBufferDefaultSize)} },
}

// GetPostingsBuffer retrieves a Buffer from the postings-blob pool.
func GetPostingsBuffer() *Buffer {
	return postingsPool.Get().(*Buffer)
}

// PutPostingsBuffer returns a Buffer to the postings-blob pool. Buffers that
// grew past PostingsBufferMaxThreshold are discarded instead of retained, so
// one oversized build doesn't bloat the pool for every build after it.
func PutPostingsBuffer(b *Buffer) {
	if b == nil {
		return
	}
	if cap(b.B) > PostingsBufferMaxThreshold {
		return
	}
	b.Reset()
	postingsPool.Put(b)
}

// GetRecordsBuffer retrieves a Buffer from the records-blob pool.
func GetRecordsBuffer() *Buffer {
	return recordsPool.Get().(*Buffer)
}

// PutRecordsBuffer returns a Buffer to the records-blob pool, subject to the
// same oversized-buffer discard as PutPostingsBuffer.
func PutRecordsBuffer(b *Buffer) {
	if b == nil {
		return
	}
	if cap(b.B) > RecordsBufferMaxThreshold {
		return
	}
	b.Reset()
	recordsPool.Put(b)
}
