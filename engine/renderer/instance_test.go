package renderer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceStrideMatchesShaderLayout(t *testing.T) {
	// mat4x4 + two vec4s.
	assert.Equal(t, 96, InstanceStride)
}

func TestMarshalInstances(t *testing.T) {
	instances := []Instance{
		{
			Model:    [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 3, 4, 5, 1},
			Color:    [4]float32{0.5, 0.6, 0.7, 1},
			Emissive: [4]float32{0, 1, 0, 0.8},
		},
		{},
	}
	buf := MarshalInstances(instances)
	require.Len(t, buf, 2*InstanceStride)

	// Translation column of the first instance sits at float offsets 12-14.
	tx := math.Float32frombits(binary.LittleEndian.Uint32(buf[12*4 : 12*4+4]))
	assert.InDelta(t, 3, tx, 1e-6)

	// Emissive strength is the final float of the first record.
	strength := math.Float32frombits(binary.LittleEndian.Uint32(buf[InstanceStride-4 : InstanceStride]))
	assert.InDelta(t, 0.8, strength, 1e-6)
}

func TestUniformBufferSizes(t *testing.T) {
	assert.Equal(t, 160, globalsSize)
	// Header plus eight 48-byte light slots.
	assert.Equal(t, 16+8*48, lightBufferSize)
}
