package capability

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBackend is a fake probe backend for tests.
type stubBackend struct {
	limits     Limits
	extensions []string
	err        error
}

func (s *stubBackend) Limits() (Limits, error) {
	if s.err != nil {
		return Limits{}, s.err
	}
	return s.limits, nil
}

func (s *stubBackend) Extensions() []string {
	return s.extensions
}

func TestProbeSnapshot(t *testing.T) {
	backend := &stubBackend{
		limits: Limits{
			MaxTextureSize:      8192,
			MaxRenderbufferSize: 8192,
			MaxVertexUniforms:   4096,
			MaxFragmentUniforms: 4096,
		},
		extensions: []string{"depth32float-stencil8", "timestamp-query"},
	}

	caps, err := Probe(backend)
	require.NoError(t, err)
	assert.True(t, caps.SupportsBasicRendering)
	assert.True(t, caps.SupportsAdvancedRendering)
	assert.Equal(t, 8192, caps.MaxTextureSize)
	assert.True(t, caps.HasExtension(DepthTextureExtension))
	assert.True(t, caps.HasExtension("timestamp-query"))
	assert.False(t, caps.HasExtension("shader-f16"))
}

func TestProbeLowEndDevice(t *testing.T) {
	caps, err := Probe(&stubBackend{limits: Limits{MaxTextureSize: 1024}})
	require.NoError(t, err)
	assert.True(t, caps.SupportsBasicRendering)
	assert.False(t, caps.SupportsAdvancedRendering)
}

func TestProbeEmptyExtensionsIsValid(t *testing.T) {
	caps, err := Probe(&stubBackend{limits: Limits{MaxTextureSize: 4096}})
	require.NoError(t, err)
	assert.NotNil(t, caps.SupportedExtensions)
	assert.Empty(t, caps.SupportedExtensions)
}

func TestProbeUnsupported(t *testing.T) {
	_, err := Probe(&stubBackend{err: fmt.Errorf("no device")})
	assert.True(t, errors.Is(err, ErrUnsupported))

	_, err = Probe(nil)
	assert.True(t, errors.Is(err, ErrUnsupported))
}
