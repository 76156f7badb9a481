package geo

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/geodb-project/geodb/internal/errs"
	"github.com/geodb-project/geodb/internal/varint"
)

// EncodeRecord appends r's wire encoding to buf and returns the extended
// slice.
//
// Wire layout (all multi-byte fields little-endian):
//
//	u32 id | f32 lat | f32 lon | u32 population | u8 feat_class
//	lp_str name | lp_str country | lp_str admin1 | lp_str admin2 | lp_str feat_code
//
// lp_str is a varint length followed by raw UTF-8 bytes. AsciiName is not
// part of the wire format.
func EncodeRecord(buf []byte, r Record) []byte {
	var tmp [4]byte

	binary.LittleEndian.PutUint32(tmp[:], r.ID)
	buf = append(buf, tmp[:]...)

	binary.LittleEndian.PutUint32(tmp[:], math.Float32bits(r.Lat))
	buf = append(buf, tmp[:]...)

	binary.LittleEndian.PutUint32(tmp[:], math.Float32bits(r.Lon))
	buf = append(buf, tmp[:]...)

	binary.LittleEndian.PutUint32(tmp[:], r.Population)
	buf = append(buf, tmp[:]...)

	buf = append(buf, r.FeatClass)

	buf = appendLPString(buf, r.Name)
	buf = appendLPString(buf, r.Country)
	buf = appendLPString(buf, r.Admin1)
	buf = appendLPString(buf, r.Admin2)
	buf = appendLPString(buf, r.FeatCode)

	return buf
}

func appendLPString(buf []byte, s string) []byte {
	buf = varint.AppendVarUint32(buf, uint32(len(s)))
	return append(buf, s...)
}

// fixedHeaderSize is the byte length of the id|lat|lon|population|feat_class
// prefix, before the first length-prefixed string.
const fixedHeaderSize = 4 + 4 + 4 + 4 + 1

// DecodeRecord decodes one record from the front of buf, returning the
// record and the number of bytes consumed.
//
// Decoding is strictly sequential; a string field that is not valid UTF-8
// fails the whole record with errs.ErrCorrupt rather than substituting a
// replacement character, since a non-UTF-8 stored string indicates the
// database itself is corrupt, not that the input data was merely unusual.
func DecodeRecord(buf []byte) (Record, int, error) {
	if len(buf) < fixedHeaderSize {
		return Record{}, 0, errs.ErrCorrupt
	}

	var r Record
	r.ID = binary.LittleEndian.Uint32(buf[0:4])
	r.Lat = math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8]))
	r.Lon = math.Float32frombits(binary.LittleEndian.Uint32(buf[8:12]))
	r.Population = binary.LittleEndian.Uint32(buf[12:16])
	r.FeatClass = buf[16]

	off := fixedHeaderSize

	var err error
	r.Name, off, err = readLPString(buf, off)
	if err != nil {
		return Record{}, 0, err
	}
	r.Country, off, err = readLPString(buf, off)
	if err != nil {
		return Record{}, 0, err
	}
	r.Admin1, off, err = readLPString(buf, off)
	if err != nil {
		return Record{}, 0, err
	}
	r.Admin2, off, err = readLPString(buf, off)
	if err != nil {
		return Record{}, 0, err
	}
	r.FeatCode, off, err = readLPString(buf, off)
	if err != nil {
		return Record{}, 0, err
	}

	return r, off, nil
}

func readLPString(buf []byte, off int) (string, int, error) {
	if off > len(buf) {
		return "", 0, errs.ErrCorrupt
	}
	n, consumed, err := varint.ReadVarUint32(buf[off:])
	if err != nil {
		return "", 0, errs.ErrCorrupt
	}
	off += consumed

	end := off + int(n)
	if end < off || end > len(buf) {
		return "", 0, errs.ErrCorrupt
	}
	raw := buf[off:end]
	if !utf8.Valid(raw) {
		return "", 0, errs.ErrCorrupt
	}

	return string(raw), end, nil
}
