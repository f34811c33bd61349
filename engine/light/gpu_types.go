package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxGPULights is the number of light slots in the GPU uniform buffer. The
// reactor hall uses a fixed rig (one key light plus accent lamps), so the
// buffer is sized for the rig rather than an unbounded scene.
const MaxGPULights = 8

// GPULight is the GPU-aligned representation of a single light source.
// Matches the WGSL Light struct layout exactly.
// Size: 48 bytes (uniform / WGSL aligned).
type GPULight struct {
	Position   [3]float32 // offset  0: world-space position (point) or unused (directional)
	LightType  uint32     // offset 12: 0 = directional, 1 = point
	Color      [3]float32 // offset 16: RGB color
	Intensity  float32    // offset 28: scalar multiplier
	Direction  [3]float32 // offset 32: normalized direction (directional) or unused (point)
	LightRange float32    // offset 44: attenuation cutoff distance
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU
// upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, 48)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], g.LightType)
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Intensity))
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.Direction[0]))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(g.Direction[1]))
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(g.Direction[2]))
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(g.LightRange))
	return buf
}

// toGPU converts a Light into its GPU representation.
func toGPU(l Light) GPULight {
	var lightType uint32
	if l.Type() == LightTypePoint {
		lightType = 1
	}
	return GPULight{
		Position:   l.Position(),
		LightType:  lightType,
		Color:      l.Color(),
		Intensity:  l.Intensity(),
		Direction:  l.Direction(),
		LightRange: l.Range(),
	}
}

// MarshalLights packs the enabled lights from the rig into a fixed-size
// buffer for GPU upload: a 16-byte header holding the active light count
// followed by MaxGPULights GPULight slots. Disabled lights are skipped and
// lights beyond the slot budget are dropped.
//
// Parameters:
//   - lights: the light rig to marshal
//
// Returns:
//   - []byte: buffer of 16 + MaxGPULights*48 bytes ready for GPU upload
func MarshalLights(lights []Light) []byte {
	buf := make([]byte, 16+MaxGPULights*48)

	var count uint32
	for _, l := range lights {
		if l == nil || !l.Enabled() {
			continue
		}
		if count >= MaxGPULights {
			break
		}
		g := toGPU(l)
		copy(buf[16+int(count)*48:], g.Marshal())
		count++
	}
	binary.LittleEndian.PutUint32(buf[0:4], count)
	return buf
}
