package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferWriteAndBytes(t *testing.T) {
	b := &Buffer{B: make([]byte, 0, PostingsBufferDefaultSize)}

	n, err := b.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte("hello"), b.Bytes())
	assert.Equal(t, 5, b.Len())
}

func TestBufferMustWriteAppends(t *testing.T) {
	b := &Buffer{}
	b.MustWrite([]byte("ab"))
	b.MustWrite([]byte("cd"))
	assert.Equal(t, []byte("abcd"), b.Bytes())
	assert.Equal(t, 4, b.Len())
}

func TestBufferMustWriteEmptyData(t *testing.T) {
	b := &Buffer{}
	b.MustWrite([]byte{})
	assert.Equal(t, 0, b.Len())

	b.MustWrite([]byte("data"))
	b.MustWrite([]byte{})
	assert.Equal(t, []byte("data"), b.Bytes())
}

func TestBufferReset(t *testing.T) {
	b := &Buffer{}
	b.MustWrite([]byte("some data"))
	originalCap := cap(b.B)

	b.Reset()

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, originalCap, cap(b.B), "Reset should preserve capacity")
}

func TestGetPutPostingsBuffer(t *testing.T) {
	b := GetPostingsBuffer()
	require.NotNil(t, b)
	b.MustWrite([]byte("posting"))

	PutPostingsBuffer(b)

	b2 := GetPostingsBuffer()
	require.NotNil(t, b2)
	assert.Equal(t, 0, b2.Len(), "pooled buffer must come back reset")
}

func TestGetPutRecordsBuffer(t *testing.T) {
	b := GetRecordsBuffer()
	require.NotNil(t, b)
	b.MustWrite([]byte("record"))

	PutRecordsBuffer(b)

	b2 := GetRecordsBuffer()
	require.NotNil(t, b2)
	assert.Equal(t, 0, b2.Len(), "pooled buffer must come back reset")
}

func TestPutPostingsBufferDiscardsOversized(t *testing.T) {
	b := &Buffer{B: make([]byte, 0, PostingsBufferMaxThreshold+1)}
	PutPostingsBuffer(b) // must not panic; oversized buffers are simply dropped

	PutPostingsBuffer(nil) // must be a no-op, not a panic
}

func TestPutRecordsBufferDiscardsOversized(t *testing.T) {
	b := &Buffer{B: make([]byte, 0, RecordsBufferMaxThreshold+1)}
	PutRecordsBuffer(b)

	PutRecordsBuffer(nil)
}
