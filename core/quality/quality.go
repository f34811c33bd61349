// package quality derives a discrete rendering-quality tier from the probed
// device capabilities and maps that tier, through one explicit derivation
// table, to every performance-sensitive rendering parameter. A user override
// always wins over the capability-derived tier until cleared.
package quality

import (
	"sync"

	"github.com/demireidel/Atucha-II-Max/core/capability"
)

// Level is the ordered rendering-quality tier.
type Level int

const (
	// Low is the floor tier for constrained devices.
	Low Level = iota + 1
	// Medium enables antialiasing on capable render targets.
	Medium
	// High is the capability-derived ceiling.
	High
	// Ultra is reachable only through an explicit user override.
	Ultra
)

// String returns the tier name.
func (l Level) String() string {
	switch l {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	case Ultra:
		return "ultra"
	default:
		return "unknown"
	}
}

// Valid reports whether l is one of the defined tiers.
func (l Level) Valid() bool {
	return l >= Low && l <= Ultra
}

// RenderingParameters is the full derived set of performance-sensitive
// rendering settings. Recomputed on every change to level, capabilities,
// or user preferences; never mutated in place.
type RenderingParameters struct {
	// ShadowMapSize is the shadow depth texture dimension in texels.
	ShadowMapSize int

	// PixelRatio is the framebuffer scale relative to logical window size.
	PixelRatio float32

	// AntialiasingEnabled selects MSAA render targets.
	AntialiasingEnabled bool

	// ShadowsEnabled gates the shadow depth pass.
	ShadowsEnabled bool

	// PostProcessingEnabled gates the post-processing chain.
	PostProcessingEnabled bool
}

// tierSettings is one row of the quality derivation table.
type tierSettings struct {
	shadowBaseSize int
	pixelRatioCap  float32
	antialiasing   bool
}

// tierTable maps each tier to its base rendering settings. Capability clamps
// are applied uniformly afterward in Parameters, keeping the whole
// derivation an auditable pure mapping instead of nested conditionals.
var tierTable = map[Level]tierSettings{
	Low:    {shadowBaseSize: 512, pixelRatioCap: 1, antialiasing: false},
	Medium: {shadowBaseSize: 1024, pixelRatioCap: 1, antialiasing: true},
	High:   {shadowBaseSize: 2048, pixelRatioCap: 1, antialiasing: true},
	Ultra:  {shadowBaseSize: 2048, pixelRatioCap: 2, antialiasing: true},
}

// Threshold policy applied by Initialize: MaxTextureSize below mediumMinTexture
// maps to Low, below highMinTexture to Medium, anything above to High.
const (
	mediumMinTexture = 2048
	highMinTexture   = 4096
)

// minAntialiasingRenderbuffer is the smallest render target size for which
// MSAA is worth enabling.
const minAntialiasingRenderbuffer = 1024

// fallbackMaxTexture substitutes for a zero or negative MaxTextureSize so a
// degenerate probe value never propagates into the derived parameters. It
// yields the Low-tier shadow map default of 512.
const fallbackMaxTexture = 1024

// PixelRatioSource reports the current device pixel ratio. It is polled on
// demand each derivation — never cached permanently — because it changes
// when the window moves between monitors.
type PixelRatioSource func() float32

// Controller owns the quality tier and derives rendering parameters from it.
// Thread-safe: per-frame reads and occasional user-command writes share one
// exclusive lock.
type Controller interface {
	// Initialize applies the capability threshold policy once and stores the
	// snapshot for later derivations. Idempotent if capabilities do not
	// change. An active override is left in force.
	//
	// Parameters:
	//   - caps: the probed device capabilities
	//
	// Returns:
	//   - Level: the resulting tier
	Initialize(caps capability.DeviceCapabilities) Level

	// Level returns the current tier (override if active, derived otherwise).
	//
	// Returns:
	//   - Level: the current tier
	Level() Level

	// SetOverride forces the tier to the given level until ClearOverride.
	// Invalid levels are ignored, leaving state unchanged.
	//
	// Parameters:
	//   - level: the tier to force
	SetOverride(level Level)

	// ClearOverride removes an active override and reverts to the
	// capability-derived tier without re-probing hardware.
	ClearOverride()

	// OverrideActive reports whether a user override is in force.
	//
	// Returns:
	//   - bool: true if an override is active
	OverrideActive() bool

	// SetShadowPreference sets the user's shadow toggle.
	//
	// Parameters:
	//   - enabled: whether the user wants shadows
	SetShadowPreference(enabled bool)

	// SetPostProcessingPreference sets the user's post-processing toggle.
	//
	// Parameters:
	//   - enabled: whether the user wants post-processing
	SetPostProcessingPreference(enabled bool)

	// Parameters derives the full rendering parameter set from the current
	// tier, capabilities, and preferences. Pure with respect to stored
	// state; the device pixel ratio is re-polled on every call.
	//
	// Returns:
	//   - RenderingParameters: the derived parameters
	Parameters() RenderingParameters
}

// controller is the implementation of the Controller interface.
type controller struct {
	mu *sync.Mutex

	caps        capability.DeviceCapabilities
	initialized bool

	derived  Level
	override Level // 0 = no override

	shadowPreference         bool
	postProcessingPreference bool

	pixelRatio PixelRatioSource
}

var _ Controller = &controller{}

// NewController creates a quality controller with shadows enabled, post-
// processing disabled, and a device pixel ratio of 1 unless a source is
// provided.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerOption) Controller {
	c := &controller{
		mu:               &sync.Mutex{},
		derived:          Low,
		shadowPreference: true,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *controller) Initialize(caps capability.DeviceCapabilities) Level {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.caps = caps
	c.initialized = true
	c.derived = deriveLevel(caps.MaxTextureSize)
	return c.levelLocked()
}

func (c *controller) Level() Level {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.levelLocked()
}

func (c *controller) SetOverride(level Level) {
	if !level.Valid() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.override = level
}

func (c *controller) ClearOverride() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.override = 0
}

func (c *controller) OverrideActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.override != 0
}

func (c *controller) SetShadowPreference(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shadowPreference = enabled
}

func (c *controller) SetPostProcessingPreference(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.postProcessingPreference = enabled
}

func (c *controller) Parameters() RenderingParameters {
	c.mu.Lock()
	defer c.mu.Unlock()

	level := c.levelLocked()
	tier := tierTable[level]

	maxTexture := c.caps.MaxTextureSize
	if maxTexture <= 0 {
		maxTexture = fallbackMaxTexture
	}

	shadowMapSize := tier.shadowBaseSize
	if limit := maxTexture / 2; shadowMapSize > limit {
		shadowMapSize = limit
	}

	ratio := float32(1)
	if c.pixelRatio != nil {
		if polled := c.pixelRatio(); polled > 0 {
			ratio = polled
		}
	}
	if ratio > tier.pixelRatioCap {
		ratio = tier.pixelRatioCap
	}

	return RenderingParameters{
		ShadowMapSize:         shadowMapSize,
		PixelRatio:            ratio,
		AntialiasingEnabled:   tier.antialiasing && c.caps.MaxRenderbufferSize >= minAntialiasingRenderbuffer,
		ShadowsEnabled:        c.shadowPreference && c.caps.HasExtension(capability.DepthTextureExtension),
		PostProcessingEnabled: c.postProcessingPreference,
	}
}

// levelLocked resolves the effective tier. Caller must hold the mutex.
func (c *controller) levelLocked() Level {
	if c.override != 0 {
		return c.override
	}
	return c.derived
}

// deriveLevel applies the monotonic texture-size threshold policy.
func deriveLevel(maxTextureSize int) Level {
	switch {
	case maxTextureSize < mediumMinTexture:
		return Low
	case maxTextureSize < highMinTexture:
		return Medium
	default:
		return High
	}
}
