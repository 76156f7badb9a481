package httpapi

import (
	"encoding/binary"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/blevesearch/vellum"
	"github.com/stretchr/testify/require"

	"github.com/geodb-project/geodb/db"
	"github.com/geodb-project/geodb/geo"
	"github.com/geodb-project/geodb/internal/varint"
)

type byteWriter struct{ buf *[]byte }

func (w *byteWriter) Write(p []byte) (int, error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}

func buildTestDB(t *testing.T) *db.DB {
	t.Helper()

	var fstBuf, postingsBuf []byte
	builder, err := vellum.New(&byteWriter{buf: &fstBuf}, nil)
	require.NoError(t, err)

	encoded := varint.EncodeDeltaVarints([]uint32{101})
	postingsBuf = append(postingsBuf, varint.AppendVarUint32(nil, uint32(len(encoded)))...)
	postingsBuf = append(postingsBuf, encoded...)
	require.NoError(t, builder.Insert([]byte("paris"), 0))
	require.NoError(t, builder.Close())

	recordsBuf := geo.EncodeRecord(nil, geo.Record{ID: 101, Name: "Paris", Country: "FR", Population: 2140000, FeatClass: 'A'})

	var offsetsBuf []byte
	var nBuf [4]byte
	binary.LittleEndian.PutUint32(nBuf[:], 1)
	offsetsBuf = append(offsetsBuf, nBuf[:]...)
	var idBuf [4]byte
	binary.LittleEndian.PutUint32(idBuf[:], 101)
	offsetsBuf = append(offsetsBuf, idBuf[:]...)
	var offBuf [8]byte
	binary.LittleEndian.PutUint64(offBuf[:], 0)
	offsetsBuf = append(offsetsBuf, offBuf[:]...)

	var header []byte
	header = append(header, db.Magic[:]...)
	var vBuf [4]byte
	binary.LittleEndian.PutUint32(vBuf[:], db.Version)
	header = append(header, vBuf[:]...)
	for _, n := range []int{len(fstBuf), len(postingsBuf), len(recordsBuf), len(offsetsBuf)} {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(n))
		header = append(header, b[:]...)
	}

	var all []byte
	all = append(all, header...)
	all = append(all, fstBuf...)
	all = append(all, postingsBuf...)
	all = append(all, recordsBuf...)
	all = append(all, offsetsBuf...)

	path := filepath.Join(t.TempDir(), "test.geodb")
	require.NoError(t, os.WriteFile(path, all, 0o644))

	d, err := db.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestHealthReturnsOK(t *testing.T) {
	h := NewHandler(buildTestDB(t))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)

	require.Equal(t, http.StatusOK, rw.Code)
	require.Equal(t, "ok", rw.Body.String())
}

func TestQueryReturnsMatchingCandidate(t *testing.T) {
	h := NewHandler(buildTestDB(t))

	req := httptest.NewRequest(http.MethodGet, "/query?key=Paris", nil)
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)

	require.Equal(t, http.StatusOK, rw.Code)
	require.Contains(t, rw.Body.String(), `"geoname_id":101`)
}

func TestQueryRejectsInvalidLimit(t *testing.T) {
	h := NewHandler(buildTestDB(t))

	req := httptest.NewRequest(http.MethodGet, "/query?key=paris&limit=abc", nil)
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)

	require.Equal(t, http.StatusBadRequest, rw.Code)
	require.Contains(t, rw.Body.String(), "error")
}

func TestMetricsEndpointServesPrometheusFormat(t *testing.T) {
	h := NewHandler(buildTestDB(t))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)

	require.Equal(t, http.StatusOK, rw.Code)
}
