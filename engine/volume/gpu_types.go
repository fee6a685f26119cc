package volume

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/qm-go/common"
	"github.com/Carmen-Shannon/qm-go/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// VolumeUniformsSource is the WGSL definition of the VolumeUniforms struct shared by both volume shader stages.
//
//go:embed assets/volume_uniforms.wgsl
var VolumeUniformsSource string

// VolumeVertexSource is the WGSL template of the volume vertex stage.
//
//go:embed assets/volume_vert.wgsl
var VolumeVertexSource string

// VolumeFragmentSource is the WGSL template of the volume fragment stage. Its constants and the per-wave block
// are supplied by Assemble.
//
//go:embed assets/volume_frag.wgsl
var VolumeFragmentSource string

const (
	// UniformsStruct is the WGSL struct the uniform handles are reflected from.
	UniformsStruct = "VolumeUniforms"
	// UniformsInclude is the include name of VolumeUniformsSource.
	UniformsInclude = "volume_uniforms"
	// WaveBlock is the block name the per-wave statements are injected at.
	WaveBlock = "wavefunc"
)

// Uniforms are the per-frame values written to the volume program.
type Uniforms struct {
	// Transform places the camera: its translation is the ray origin and its rotation orients the rays.
	Transform mgl32.Mat4
	// Color is the emission color used when complex coloring is off.
	Color mgl32.Vec3
	// Time seeds the dither noise.
	Time float32
	// Phase drives time evolution when it is compiled in.
	Phase float32
	// RayLength is the length of every ray.
	RayLength float32
}

// UniformHandles are the byte offsets of the five volume uniforms inside the VolumeUniforms buffer.
type UniformHandles struct {
	Time      uint64
	Phase     uint64
	Color     uint64
	Transform uint64
	RayLength uint64
	// Size is the size of the uniform buffer in bytes.
	Size uint64
}

// uniformFields lists the WGSL field names every volume program must expose.
var uniformFields = []string{"time", "phase", "color", "transform", "ray_length"}

// reflectHandles reads the uniform handle table from a shader's VolumeUniforms struct layout.
//
// Parameters:
//   - s: the shader declaring VolumeUniforms
//
// Returns:
//   - UniformHandles: the offsets of the five uniforms
//   - error: an error if the struct or any field is missing
func reflectHandles(s shader.Shader) (UniformHandles, error) {
	layout, ok := s.StructLayout(UniformsStruct)
	if !ok {
		return UniformHandles{}, fmt.Errorf("shader %s does not declare %s", s.Key(), UniformsStruct)
	}
	for _, name := range uniformFields {
		if _, ok := layout.Offsets[name]; !ok {
			return UniformHandles{}, fmt.Errorf("shader %s: %s has no field %q", s.Key(), UniformsStruct, name)
		}
	}
	return UniformHandles{
		Time:      layout.Offsets["time"],
		Phase:     layout.Offsets["phase"],
		Color:     layout.Offsets["color"],
		Transform: layout.Offsets["transform"],
		RayLength: layout.Offsets["ray_length"],
		Size:      layout.Size,
	}, nil
}

// Marshal serializes the uniforms at the handle offsets.
//
// Parameters:
//   - u: the uniform values
//
// Returns:
//   - []byte: a buffer of h.Size bytes ready for GPU upload
func (h UniformHandles) Marshal(u Uniforms) []byte {
	buf := make([]byte, h.Size)
	putFloats(buf, h.Transform, u.Transform[:])
	putFloats(buf, h.Color, u.Color[:])
	putFloats(buf, h.Time, []float32{u.Time})
	putFloats(buf, h.Phase, []float32{u.Phase})
	putFloats(buf, h.RayLength, []float32{u.RayLength})
	return buf
}

func putFloats(buf []byte, offset uint64, values []float32) {
	for i, v := range values {
		o := offset + uint64(i)*4
		binary.LittleEndian.PutUint32(buf[o:o+4], math.Float32bits(v))
	}
}

// QuadVertex is a vertex of the fullscreen quad the volume is drawn on.
// Matches the WGSL QuadVertex struct: pos at offset 0, uv at offset 8, 16 bytes total.
type QuadVertex struct {
	Pos [2]float32
	UV  [2]float32
}

// QuadVertices returns the four corners of a quad covering clip space, with uv (0, 0) at the bottom left.
func QuadVertices() []QuadVertex {
	return []QuadVertex{
		{Pos: [2]float32{-1, -1}, UV: [2]float32{0, 0}},
		{Pos: [2]float32{1, -1}, UV: [2]float32{1, 0}},
		{Pos: [2]float32{1, 1}, UV: [2]float32{1, 1}},
		{Pos: [2]float32{-1, 1}, UV: [2]float32{0, 1}},
	}
}

// QuadIndices are the two counter-clockwise triangles of QuadVertices.
var QuadIndices = []uint32{0, 1, 2, 0, 2, 3}

// QuadBytes returns the vertex and index bytes of the fullscreen quad.
func QuadBytes() (vertices, indices []byte) {
	return common.SliceToBytes(QuadVertices()), common.SliceToBytes(QuadIndices)
}
