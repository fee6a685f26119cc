package ui

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

//go:embed assets/ui_params.wgsl
var UIParamsSource string

//go:embed assets/ui_vert.wgsl
var UIVertexSource string

//go:embed assets/ui_frag.wgsl
var UIFragmentSource string

const (
	// ParamsInclude is the include name of the UIParams struct.
	ParamsInclude = "ui_params"
	// ParamsBinding, TextureBinding and SamplerBinding are the group 0 bindings of the UI fragment stage.
	ParamsBinding  = 0
	TextureBinding = 1
	SamplerBinding = 2
)

// UIVertex is one corner of a textured, colored quad.
// Matches the WGSL UIVertex input: pos vec2<f32>, uv vec2<f32>, color vec4<f32>.
type UIVertex struct {
	Pos   [2]float32
	UV    [2]float32
	Color [4]float32
}

// UIVertexSize is the byte stride of UIVertex.
const UIVertexSize = 32

// UIParams mirrors the WGSL UIParams uniform.
type UIParams struct {
	// Tint multiplies every sampled texel.
	Tint mgl32.Vec4
}

// Marshal serializes the params into a 16-byte little-endian buffer.
func (p UIParams) Marshal() []byte {
	buf := make([]byte, 16)
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(p.Tint[i]))
	}
	return buf
}

// QuadIndices returns the triangle indices for quads consecutive quads of four vertices each.
//
// Parameters:
//   - quads: the number of quads
//
// Returns:
//   - []uint32: six indices per quad
func QuadIndices(quads int) []uint32 {
	indices := make([]uint32, 0, quads*6)
	for q := uint32(0); q < uint32(quads); q++ {
		base := q * 4
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return indices
}
