package dmesg

// Buffer is one contiguous dump session: a command buffer captured at a
// device address. TopLevel marks buffers the host submitted directly;
// sub-submissions are referenced from within a top-level buffer's contents.
type Buffer struct {
	Addr     uint32
	TopLevel bool
	Words    []uint32
}

// ByteLen returns the accumulated size in bytes. Data lines declare their
// offset in bytes, so every incoming offset is checked against this.
func (b *Buffer) ByteLen() uint32 {
	return uint32(len(b.Words)) * 4
}

// Append adds one decoded word to the buffer contents.
func (b *Buffer) Append(w uint32) {
	b.Words = append(b.Words, w)
}
