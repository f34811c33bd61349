// package plantcfg loads the viewer's TOML configuration: window size,
// quality preferences, and an optional custom tour route. Every field is
// optional; absent values fall back to the built-in defaults.
package plantcfg

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/demireidel/Atucha-II-Max/core/quality"
	"github.com/demireidel/Atucha-II-Max/core/tour"
)

// Config is the root of the viewer configuration file.
type Config struct {
	Window  WindowConfig  `toml:"window"`
	Quality QualityConfig `toml:"quality"`
	Tour    TourConfig    `toml:"tour"`
}

// WindowConfig sizes and titles the viewer window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// QualityConfig holds the user's quality preferences. Override is a tier
// name ("low", "medium", "high", "ultra") or empty for capability-derived.
type QualityConfig struct {
	Override       string `toml:"override"`
	Shadows        *bool  `toml:"shadows"`
	PostProcessing *bool  `toml:"post_processing"`
}

// TourConfig carries an optional replacement route for the guided tour.
type TourConfig struct {
	Waypoints []WaypointConfig `toml:"waypoints"`
}

// WaypointConfig is one tour station in file form.
type WaypointConfig struct {
	Name       string     `toml:"name"`
	Position   [3]float32 `toml:"position"`
	Target     [3]float32 `toml:"target"`
	Hold       float32    `toml:"hold"`
	Transition float32    `toml:"transition"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "Atucha II Reactor Viewer",
			Width:  1280,
			Height: 720,
		},
	}
}

// Load reads and decodes path on top of the defaults.
//
// Parameters:
//   - path: the TOML file to read
//
// Returns:
//   - Config: the decoded configuration
//   - error: an error if the file cannot be read or parsed
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Quality.Override != "" {
		if _, err := levelFromName(c.Quality.Override); err != nil {
			return err
		}
	}
	for i, w := range c.Tour.Waypoints {
		if w.Transition <= 0 {
			return fmt.Errorf("tour waypoint %d (%q): transition must be positive", i, w.Name)
		}
		if w.Hold < 0 {
			return fmt.Errorf("tour waypoint %d (%q): hold must not be negative", i, w.Name)
		}
	}
	return nil
}

// QualityOptions converts the quality section into controller options.
func (c Config) QualityOptions() []quality.ControllerOption {
	var opts []quality.ControllerOption
	if c.Quality.Override != "" {
		if level, err := levelFromName(c.Quality.Override); err == nil {
			opts = append(opts, quality.WithOverride(level))
		}
	}
	if c.Quality.Shadows != nil {
		opts = append(opts, quality.WithShadowPreference(*c.Quality.Shadows))
	}
	if c.Quality.PostProcessing != nil {
		opts = append(opts, quality.WithPostProcessingPreference(*c.Quality.PostProcessing))
	}
	return opts
}

// Controller builds a quality controller from the quality section: file
// override, shadow and post-processing preferences, and the supplied pixel
// ratio source.
//
// Parameters:
//   - source: the device pixel ratio source, typically the window's content
//     scale; may be nil
//
// Returns:
//   - quality.Controller: the configured controller
func (c Config) Controller(source quality.PixelRatioSource) quality.Controller {
	opts := c.QualityOptions()
	if source != nil {
		opts = append(opts, quality.WithPixelRatioSource(source))
	}
	return quality.NewController(opts...)
}

// TourRoute converts the tour section into waypoints, or nil when the file
// did not define any.
func (c Config) TourRoute() []tour.Waypoint {
	if len(c.Tour.Waypoints) == 0 {
		return nil
	}
	route := make([]tour.Waypoint, len(c.Tour.Waypoints))
	for i, w := range c.Tour.Waypoints {
		route[i] = tour.Waypoint{
			Name:       w.Name,
			Position:   w.Position,
			Target:     w.Target,
			Hold:       w.Hold,
			Transition: w.Transition,
		}
	}
	return route
}

func levelFromName(name string) (quality.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "low":
		return quality.Low, nil
	case "medium":
		return quality.Medium, nil
	case "high":
		return quality.High, nil
	case "ultra":
		return quality.Ultra, nil
	default:
		return 0, fmt.Errorf("unknown quality tier %q", name)
	}
}
