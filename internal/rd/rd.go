// Package rd writes the freedreno .rd trace container: a flat stream of
// little-endian (tag, length, payload) records with no file header, footer or
// checksum. The downstream decoder is stateful, so record order is part of
// the format: the GPU id record comes first and every buffer's contents are
// established before any command stream pointer refers to them.
package rd

// Tag identifies the payload of one record.
type Tag uint32

// Record tags understood by cffdump and the other replay tools.
const (
	TagNone Tag = iota
	TagTest     // ascii text
	TagCmd      // ascii text
	TagGpuAddr  // u32 gpuaddr, u32 size
	TagContext  // raw dump
	TagCmdstream
	TagCmdstreamAddr // u32 gpuaddr, u32 dword count
	TagParam         // u32 param_type, u32 param_val, u32 bitlen
	TagFlush         // empty, clears previous params
	TagProgram
	TagVertShader
	TagFragShader
	TagBufferContents
	TagGpuID
)

// DefaultGPUID is the device identifier historically written by the mlog
// capture path.
const DefaultGPUID = 205
