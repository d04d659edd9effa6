package memdb

import (
	"bytes"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/pauldmccarthy/porm"
)

// Checksum hashes a deterministic dump of every table. Two databases
// with the same tables, rows and cell values produce the same sum, so
// tests can prove a sequence of statements left the data untouched.
func (db *DB) Checksum() uint64 {
	buf := &bytes.Buffer{}
	db.dump(buf)
	return xxhash.Sum64(buf.Bytes())
}

func renderValue(v porm.Value) string {
	switch v.Kind() {
	case porm.KindInt:
		n, _ := v.Int()
		return "i:" + strconv.FormatInt(n, 10)
	case porm.KindFloat:
		f, _ := v.Float()
		return "f:" + strconv.FormatFloat(f, 'g', -1, 64)
	case porm.KindText:
		s, _ := v.Text()
		return "t:" + s
	default:
		return "null"
	}
}
