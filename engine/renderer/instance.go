package renderer

import (
	"unsafe"

	"github.com/demireidel/Atucha-II-Max/common"
)

// Instance is the GPU-aligned per-instance record consumed by the lit and
// shadow vertex shaders. Matches the WGSL Instance struct layout exactly.
// Size: 96 bytes.
type Instance struct {
	// Model is the column-major world transform for this instance.
	Model [16]float32

	// Color multiplies the mesh vertex color.
	Color [4]float32

	// Emissive holds the emissive color in rgb and the current emissive
	// strength in w. Strength is recomputed per frame for pulsing
	// components.
	Emissive [4]float32
}

// InstanceStride is the size of one Instance in bytes.
const InstanceStride = int(unsafe.Sizeof(Instance{}))

// MarshalInstances serializes instances into a byte buffer for GPU upload.
//
// Parameters:
//   - instances: the instance records to serialize
//
// Returns:
//   - []byte: buffer of len(instances)*InstanceStride bytes
func MarshalInstances(instances []Instance) []byte {
	return common.SliceToBytes(instances)
}
