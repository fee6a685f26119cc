package shader

import "github.com/cogentcore/webgpu/wgpu"

// vertexFormatInfo holds the wgpu vertex format and its byte size for offset calculation
type vertexFormatInfo struct {
	format wgpu.VertexFormat
	size   uint64
}

// wgslTypeLayout holds the byte size and alignment for a WGSL type.
type wgslTypeLayout struct {
	size  uint64
	align uint64
}

// StructLayout is the host-shareable memory layout of a WGSL struct.
type StructLayout struct {
	// Size is the struct size in bytes, rounded up to its alignment.
	Size uint64
	// Align is the struct alignment, the maximum of its members' alignments.
	Align uint64
	// Offsets maps member names to their byte offsets.
	Offsets map[string]uint64
}

// parsedField represents a single field extracted from a WGSL struct during parsing
type parsedField struct {
	name      string
	typeName  string
	location  int
	isBuiltin bool
}

// parsedStruct represents a WGSL struct block extracted during parsing
type parsedStruct struct {
	name   string
	fields []parsedField
}
