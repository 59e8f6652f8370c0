package rd

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/laanwj/freedreno/internal/dmesg"
)

// readRecord pulls one (tag, length, payload) record off r.
func readRecord(t *testing.T, r io.Reader) (Tag, []byte) {
	t.Helper()
	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		t.Fatalf("failed to read record header: %v", err)
	}
	tag := Tag(binary.LittleEndian.Uint32(hdr[0:4]))
	length := binary.LittleEndian.Uint32(hdr[4:8])
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		t.Fatalf("failed to read %d payload bytes: %v", length, err)
	}
	return tag, payload
}

func TestEncodeSingleBuffer(t *testing.T) {
	buf := &dmesg.Buffer{
		Addr:     0x1000,
		TopLevel: true,
		Words:    []uint32{0xdeadbeef, 0xcafef00d},
	}

	var out bytes.Buffer
	if err := NewEncoder(&out).Encode([]*dmesg.Buffer{buf}); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	want := []byte{
		// gpu id record
		0x0d, 0x00, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00,
		0xcd, 0x00, 0x00, 0x00,
		// gpu addr record
		0x03, 0x00, 0x00, 0x00, 0x08, 0x00, 0x00, 0x00,
		0x00, 0x10, 0x00, 0x00, 0x08, 0x00, 0x00, 0x00,
		// buffer contents record, words little-endian
		0x0c, 0x00, 0x00, 0x00, 0x08, 0x00, 0x00, 0x00,
		0xef, 0xbe, 0xad, 0xde, 0x0d, 0xf0, 0xfe, 0xca,
		// cmdstream addr record, length in dwords
		0x06, 0x00, 0x00, 0x00, 0x08, 0x00, 0x00, 0x00,
		0x00, 0x10, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00,
	}
	if !bytes.Equal(out.Bytes(), want) {
		t.Errorf("container mismatch\ngot  % x\nwant % x", out.Bytes(), want)
	}
}

func TestEncodeRecordOrdering(t *testing.T) {
	// Sub buffers get an addr/contents pair but no cmdstream record, and
	// every pair precedes every cmdstream record.
	bufs := []*dmesg.Buffer{
		{Addr: 0x1000, TopLevel: true, Words: []uint32{1}},
		{Addr: 0x2000, TopLevel: false, Words: []uint32{2, 3}},
		{Addr: 0x3000, TopLevel: true, Words: []uint32{4}},
	}

	var out bytes.Buffer
	if err := NewEncoder(&out).Encode(bufs); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	wantTags := []Tag{
		TagGpuID,
		TagGpuAddr, TagBufferContents,
		TagGpuAddr, TagBufferContents,
		TagGpuAddr, TagBufferContents,
		TagCmdstreamAddr, TagCmdstreamAddr,
	}
	r := bytes.NewReader(out.Bytes())
	var cmdstreamAddrs []uint32
	for i, want := range wantTags {
		tag, payload := readRecord(t, r)
		if tag != want {
			t.Fatalf("record %d: tag = %d, want %d", i, tag, want)
		}
		if tag == TagCmdstreamAddr {
			cmdstreamAddrs = append(cmdstreamAddrs, binary.LittleEndian.Uint32(payload[0:4]))
		}
	}
	if r.Len() != 0 {
		t.Errorf("%d trailing bytes after expected records", r.Len())
	}

	if len(cmdstreamAddrs) != 2 || cmdstreamAddrs[0] != 0x1000 || cmdstreamAddrs[1] != 0x3000 {
		t.Errorf("cmdstream records %08x, want [00001000 00003000]", cmdstreamAddrs)
	}
}

func TestEncodeEmptyCollection(t *testing.T) {
	var out bytes.Buffer
	if err := NewEncoder(&out).Encode(nil); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	r := bytes.NewReader(out.Bytes())
	tag, payload := readRecord(t, r)
	if tag != TagGpuID || binary.LittleEndian.Uint32(payload) != DefaultGPUID {
		t.Errorf("got tag=%d payload=% x, want gpu id record", tag, payload)
	}
	if r.Len() != 0 {
		t.Errorf("%d unexpected bytes after gpu id record", r.Len())
	}
}

func TestEncodeCustomGPUID(t *testing.T) {
	var out bytes.Buffer
	enc := NewEncoder(&out)
	enc.GPUID = 320
	if err := enc.Encode(nil); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	_, payload := readRecord(t, bytes.NewReader(out.Bytes()))
	if got := binary.LittleEndian.Uint32(payload); got != 320 {
		t.Errorf("gpu id payload = %d, want 320", got)
	}
}

// failingWriter fails every write after the first n.
type failingWriter struct {
	n   int
	err error
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n <= 0 {
		return 0, w.err
	}
	w.n--
	return len(p), nil
}

func TestEncodePropagatesSinkError(t *testing.T) {
	sinkErr := errors.New("disk full")
	bufs := []*dmesg.Buffer{{Addr: 0x1000, TopLevel: true, Words: []uint32{1}}}

	err := NewEncoder(&failingWriter{n: 3, err: sinkErr}).Encode(bufs)
	if !errors.Is(err, sinkErr) {
		t.Fatalf("Encode = %v, want sink error", err)
	}
}
