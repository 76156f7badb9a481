package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordRoundTrip(t *testing.T) {
	r := Record{
		ID:         101,
		Name:       "Paris",
		AsciiName:  "Paris",
		Country:    "FR",
		Admin1:     "A8",
		Admin2:     "75",
		FeatCode:   "PPLC",
		Lat:        48.8566,
		Lon:        2.3522,
		Population: 2140000,
		FeatClass:  'P',
	}

	buf := EncodeRecord(nil, r)
	got, n, err := DecodeRecord(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)

	// AsciiName never round-trips; compare everything else.
	got.AsciiName = r.AsciiName
	require.Equal(t, r, got)
}

func TestRecordRoundTripEmptyStringsAndUnknownFeatClass(t *testing.T) {
	r := Record{ID: 7, Name: "Foo", FeatClass: UnknownFeatureClass}
	buf := EncodeRecord(nil, r)
	got, _, err := DecodeRecord(buf)
	require.NoError(t, err)
	require.Equal(t, byte('?'), got.FeatClass)
	require.Empty(t, got.Country)
}

func TestDecodeRecordRejectsTruncatedBuffer(t *testing.T) {
	r := Record{ID: 1, Name: "Somewhere"}
	buf := EncodeRecord(nil, r)
	_, _, err := DecodeRecord(buf[:len(buf)-1])
	require.Error(t, err)
}

func TestDecodeRecordRejectsInvalidUTF8(t *testing.T) {
	r := Record{ID: 1, Name: "ok"}
	buf := EncodeRecord(nil, r)
	// Corrupt the first byte of the "Name" field's payload.
	idx := fixedHeaderSize + 1 // past the length-varint byte for "ok" (len=2, 1 byte varint)
	buf[idx] = 0xFF
	_, _, err := DecodeRecord(buf)
	require.Error(t, err)
}

func TestMultipleRecordsConcatenate(t *testing.T) {
	a := Record{ID: 1, Name: "A"}
	b := Record{ID: 2, Name: "B"}

	buf := EncodeRecord(nil, a)
	offB := len(buf)
	buf = EncodeRecord(buf, b)

	gotA, n, err := DecodeRecord(buf)
	require.NoError(t, err)
	require.Equal(t, offB, n)
	require.Equal(t, uint32(1), gotA.ID)

	gotB, _, err := DecodeRecord(buf[offB:])
	require.NoError(t, err)
	require.Equal(t, uint32(2), gotB.ID)
}
