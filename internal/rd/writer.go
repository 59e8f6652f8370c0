package rd

import (
	"encoding/binary"
	"io"
)

// Writer emits raw rd records to an output stream. It imposes no ordering of
// its own; Encoder layers the ordering contract on top.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteRecord writes one (tag, length, payload) record. Sink errors are
// returned unmodified.
func (w *Writer) WriteRecord(tag Tag, payload []byte) error {
	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(tag))
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(payload)))
	if _, err := w.w.Write(hdr[:]); err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}
	_, err := w.w.Write(payload)
	return err
}

// WriteUint32Record writes a record whose payload is a sequence of 32-bit
// values, each little-endian.
func (w *Writer) WriteUint32Record(tag Tag, vals ...uint32) error {
	return w.WriteRecord(tag, packUint32(vals))
}

func packUint32(vals []uint32) []byte {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[4*i:], v)
	}
	return buf
}
