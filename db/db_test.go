package db

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geodb-project/geodb/internal/errs"
)

// writeMinimalDB assembles a geodb file by hand from the given FST,
// postings and records sections and an offsets table built from ids and
// recOffs. It exists so db package tests do not depend on the build package.
func writeMinimalDB(t *testing.T, fst, postings, records []byte, ids []uint32, recOffs []uint64) string {
	t.Helper()

	var offsets []byte
	var nBuf [4]byte
	binary.LittleEndian.PutUint32(nBuf[:], uint32(len(ids)))
	offsets = append(offsets, nBuf[:]...)
	for _, id := range ids {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], id)
		offsets = append(offsets, b[:]...)
	}
	for _, o := range recOffs {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], o)
		offsets = append(offsets, b[:]...)
	}

	var header []byte
	header = append(header, Magic[:]...)
	var vBuf [4]byte
	binary.LittleEndian.PutUint32(vBuf[:], Version)
	header = append(header, vBuf[:]...)
	for _, n := range []int{len(fst), len(postings), len(records), len(offsets)} {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(n))
		header = append(header, b[:]...)
	}

	var all []byte
	all = append(all, header...)
	all = append(all, fst...)
	all = append(all, postings...)
	all = append(all, records...)
	all = append(all, offsets...)

	path := filepath.Join(t.TempDir(), "test.geodb")
	require.NoError(t, os.WriteFile(path, all, 0o644))
	return path
}

func TestOpenValidatesMagicAndVersion(t *testing.T) {
	path := writeMinimalDB(t, nil, nil, []byte("rec"), []uint32{1}, []uint64{0})

	d, err := Open(path)
	require.NoError(t, err)
	defer d.Close()

	require.Equal(t, []byte("rec"), d.Records)
}

func TestOpenRejectsBadMagic(t *testing.T) {
	path := writeMinimalDB(t, nil, nil, nil, nil, nil)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	b[0] = 'X'
	require.NoError(t, os.WriteFile(path, b, 0o644))

	_, err = Open(path)
	require.ErrorIs(t, err, errs.ErrBadMagic)
}

func TestOpenRejectsTruncatedHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.geodb")
	require.NoError(t, os.WriteFile(path, []byte("short"), 0o644))

	_, err := Open(path)
	require.Error(t, err)
}

func TestOpenRejectsInconsistentSectionLengths(t *testing.T) {
	path := writeMinimalDB(t, nil, nil, []byte("rec"), []uint32{1}, []uint64{0})
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	// Corrupt the records_len field to no longer match the actual payload.
	binary.LittleEndian.PutUint64(b[offRecordsLen:offRecordsLen+8], 999)
	require.NoError(t, os.WriteFile(path, b, 0o644))

	_, err = Open(path)
	require.Error(t, err)
}

func TestRecordOffsetBinarySearch(t *testing.T) {
	path := writeMinimalDB(t, nil, nil, []byte("aaabbbccc"),
		[]uint32{5, 9, 20}, []uint64{0, 3, 6})

	d, err := Open(path)
	require.NoError(t, err)
	defer d.Close()

	off, ok := d.RecordOffset(9)
	require.True(t, ok)
	require.Equal(t, uint64(3), off)

	_, ok = d.RecordOffset(7)
	require.False(t, ok)
}
