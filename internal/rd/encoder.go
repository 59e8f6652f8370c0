package rd

import (
	"io"

	"github.com/laanwj/freedreno/internal/dmesg"
)

// Encoder serializes a finalized buffer collection into the rd container.
//
// Encode performs exactly three passes and never interleaves them: one GPU id
// record, then one address/contents record pair per buffer in collection
// order, then one command stream pointer record per top-level buffer in
// collection order. Sub-submission buffers get no pointer record; the replay
// tools reach them through addresses inside the command streams themselves.
type Encoder struct {
	w *Writer

	// GPUID is the device identifier written in the leading record.
	GPUID uint32
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: NewWriter(w), GPUID: DefaultGPUID}
}

// Encode writes the whole container. Encoding a well-formed collection cannot
// fail; any error returned is a sink write error, propagated as is.
func (e *Encoder) Encode(bufs []*dmesg.Buffer) error {
	if err := e.w.WriteUint32Record(TagGpuID, e.GPUID); err != nil {
		return err
	}
	for _, b := range bufs {
		if err := e.writeBuffer(b); err != nil {
			return err
		}
	}
	for _, b := range bufs {
		if !b.TopLevel {
			continue
		}
		if err := e.w.WriteUint32Record(TagCmdstreamAddr, b.Addr, uint32(len(b.Words))); err != nil {
			return err
		}
	}
	return nil
}

// writeBuffer emits the address record and its contents record as a tight
// pair; nothing separates them.
func (e *Encoder) writeBuffer(b *dmesg.Buffer) error {
	if err := e.w.WriteUint32Record(TagGpuAddr, b.Addr, b.ByteLen()); err != nil {
		return err
	}
	return e.w.WriteUint32Record(TagBufferContents, b.Words...)
}
