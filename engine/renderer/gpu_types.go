package renderer

import (
	"unsafe"
)

// maxLights is the fixed light array size in the frame uniform. The scene
// carries a key light, a moon light, the lightning source, and the gate glow.
const maxLights = 4

// GPUVertex is the GPU representation of a mesh vertex.
// Matches the WGSL VertexInput struct layout exactly (24-byte stride).
type GPUVertex struct {
	Position [3]float32 // offset  0
	Normal   [3]float32 // offset 12
}

// GPUInstance is one entry of the per-frame instance storage buffer.
// Size: 96 bytes (std430 aligned).
type GPUInstance struct {
	Model [16]float32 // offset  0: column-major model matrix
	Tint  [4]float32  // offset 64: RGBA color multiplier
	Glow  float32     // offset 80: emissive boost
	_     [3]float32  // offset 84: pad to 96
}

// GPULight is one entry of the frame uniform's light array.
// Size: 48 bytes (three vec4 slots).
type GPULight struct {
	PosType        [4]float32 // xyz = position, w = type (0 directional, 1 point)
	ColorIntensity [4]float32 // rgb = color, w = intensity
	DirRange       [4]float32 // xyz = direction, w = range
}

// GPUFrameUniform is the per-frame uniform block shared by every draw call.
// Field order and padding match the WGSL FrameData struct exactly.
type GPUFrameUniform struct {
	ViewProjection [16]float32           // offset   0
	CameraPos      [4]float32            // offset  64: xyz = position
	Ambient        [4]float32            // offset  80: rgb = color, w = intensity
	FogColor       [4]float32            // offset  96: rgb = color
	FogParams      [4]float32            // offset 112: x = near, y = far, z = flash overlay, w = stars opacity
	SkyTop         [4]float32            // offset 128: rgb = gradient top, w = background intensity
	SkyBottom      [4]float32            // offset 144: rgb = gradient bottom, w = bloom intensity
	Lights         [maxLights]GPULight   // offset 160
	Counts         [4]float32            // offset 352: x = light count
}

// Size constants for buffer allocation.
var (
	vertexStride  = int(unsafe.Sizeof(GPUVertex{}))
	instanceSize  = int(unsafe.Sizeof(GPUInstance{}))
	frameDataSize = uint64(unsafe.Sizeof(GPUFrameUniform{}))
)
