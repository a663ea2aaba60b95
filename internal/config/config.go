package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all game configuration values
type Config struct {
	Display     DisplayConfig     `yaml:"display"`
	Shooting    ShootingConfig    `yaml:"shooting"`
	Ships       []ShipConfig      `yaml:"ships"`
	Camera      CameraConfig      `yaml:"camera"`
	Float       FloatConfig       `yaml:"float"`
	Projectiles ProjectilesConfig `yaml:"projectiles"`
	Graphics    GraphicsConfig    `yaml:"graphics"`
	Terminal    TerminalConfig    `yaml:"terminal"`
	Debug       DebugConfig       `yaml:"debug"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	TPS          int    `yaml:"tps"`
}

// ShootingConfig holds the pattern scheduler tunables.
type ShootingConfig struct {
	BulletSpeed      float64 `yaml:"bullet_speed"`
	FireRate         float64 `yaml:"fire_rate"`       // Seconds between pattern invocations
	BulletLifetime   float64 `yaml:"bullet_lifetime"` // Seconds
	SpawnOffset      float64 `yaml:"spawn_offset"`
	PatternDuration  float64 `yaml:"pattern_duration"`
	PauseDuration    float64 `yaml:"pause_duration"`
	BulletsPerCircle int     `yaml:"bullets_per_circle"`
	StarPoints       int     `yaml:"star_points"`
	StarLength       float64 `yaml:"star_length"`
}

// ShipConfig places one shooting ship in the arena.
type ShipConfig struct {
	Name        string     `yaml:"name"`
	Position    [3]float64 `yaml:"position"`
	CameraOrder int        `yaml:"camera_order"`
	Color       [3]int     `yaml:"color"`
	// Shooting overrides the global shooting block when set
	Shooting *ShootingConfig `yaml:"shooting,omitempty"`
}

type CameraConfig struct {
	SwitchInterval float64 `yaml:"switch_interval"`
	Zoom           float64 `yaml:"zoom"`
}

type FloatConfig struct {
	FloatHeight   float64     `yaml:"float_height"`
	FloatForce    float64     `yaml:"float_force"`
	Damping       float64     `yaml:"damping"`
	BobbingSpeed  float64     `yaml:"bobbing_speed"`
	BobbingAmount float64     `yaml:"bobbing_amount"`
	Gravity       float64     `yaml:"gravity"`
	GroundHeight  float64     `yaml:"ground_height"`
	Pads          []PadConfig `yaml:"pads"`
}

// PadConfig is a raised rectangle the ships can hover over
type PadConfig struct {
	X      float64 `yaml:"x"`
	Z      float64 `yaml:"z"`
	Width  float64 `yaml:"width"`
	Depth  float64 `yaml:"depth"`
	Height float64 `yaml:"height"`
}

type ProjectilesConfig struct {
	ParallelThreshold int `yaml:"parallel_threshold"` // Below this count bullets are integrated inline
	MaxActive         int `yaml:"max_active"`
	BacklogAlert      int `yaml:"backlog_alert"` // Live bullets that raise an alert; 0 means 90% of max_active
}

type GraphicsConfig struct {
	Background  [3]int  `yaml:"background"`
	BulletColor [3]int  `yaml:"bullet_color"`
	BulletSize  float64 `yaml:"bullet_size"`
	ShipSize    float64 `yaml:"ship_size"`
	GridSpacing float64 `yaml:"grid_spacing"`
}

type TerminalConfig struct {
	CellsPerUnit float64 `yaml:"cells_per_unit"`
	FrameMillis  int     `yaml:"frame_millis"`
	Sound        bool    `yaml:"sound"`
}

type DebugConfig struct {
	PerfLog bool `yaml:"perf_log"`
}

var GlobalConfig *Config

// DefaultConfig returns the built-in defaults that config.yaml overrides.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  960,
			ScreenHeight: 720,
			WindowTitle:  "Bullet Hell",
			TPS:          60,
		},
		Shooting: DefaultShooting(),
		Ships: []ShipConfig{
			{Name: "Ship", CameraOrder: 0, Color: [3]int{80, 180, 255}},
		},
		Camera: CameraConfig{SwitchInterval: 5.0, Zoom: 12.0},
		Float: FloatConfig{
			FloatHeight:   2.0,
			FloatForce:    10.0,
			Damping:       5.0,
			BobbingSpeed:  2.0,
			BobbingAmount: 0.2,
			Gravity:       -9.81,
		},
		Projectiles: ProjectilesConfig{ParallelThreshold: 256, MaxActive: 20000},
		Graphics: GraphicsConfig{
			Background:  [3]int{10, 10, 24},
			BulletColor: [3]int{255, 220, 90},
			BulletSize:  3,
			ShipSize:    10,
			GridSpacing: 5,
		},
		Terminal: TerminalConfig{CellsPerUnit: 1.0, FrameMillis: 33},
	}
}

// DefaultShooting returns the default pattern scheduler tunables.
func DefaultShooting() ShootingConfig {
	return ShootingConfig{
		BulletSpeed:      20,
		FireRate:         0.4,
		BulletLifetime:   5,
		SpawnOffset:      1.0,
		PatternDuration:  10,
		PauseDuration:    2,
		BulletsPerCircle: 6,
		StarPoints:       5,
		StarLength:       5,
	}
}

// LoadConfig loads the configuration from a YAML file on top of DefaultConfig
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML bytes on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Set global config for easy access
	GlobalConfig = config

	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Validate rejects tunables the scheduler cannot run with.
func (c *Config) Validate() error {
	if err := c.Shooting.Validate(); err != nil {
		return fmt.Errorf("shooting: %w", err)
	}
	if len(c.Ships) == 0 {
		return fmt.Errorf("at least one ship is required")
	}
	seen := make(map[int]string, len(c.Ships))
	for i, ship := range c.Ships {
		if ship.Shooting != nil {
			if err := ship.Shooting.Validate(); err != nil {
				return fmt.Errorf("ships[%d].shooting: %w", i, err)
			}
		}
		if ship.CameraOrder < 0 || ship.CameraOrder >= len(c.Ships) {
			return fmt.Errorf("ships[%d]: camera_order %d out of range [0,%d)", i, ship.CameraOrder, len(c.Ships))
		}
		if other, dup := seen[ship.CameraOrder]; dup {
			return fmt.Errorf("ships[%d]: camera_order %d already used by %q", i, ship.CameraOrder, other)
		}
		seen[ship.CameraOrder] = ship.Name
	}
	if c.Camera.SwitchInterval <= 0 {
		return fmt.Errorf("camera: switch_interval must be positive")
	}
	if c.Projectiles.BacklogAlert < 0 {
		return fmt.Errorf("projectiles: backlog_alert must not be negative, got %d", c.Projectiles.BacklogAlert)
	}
	for i, pad := range c.Float.Pads {
		if pad.Width <= 0 || pad.Depth <= 0 {
			return fmt.Errorf("float.pads[%d]: width and depth must be positive", i)
		}
	}
	return nil
}

// Validate checks a single shooting block.
func (s ShootingConfig) Validate() error {
	switch {
	case s.BulletsPerCircle <= 0:
		return fmt.Errorf("bullets_per_circle must be positive, got %d", s.BulletsPerCircle)
	case s.StarPoints <= 0:
		return fmt.Errorf("star_points must be positive, got %d", s.StarPoints)
	case s.StarLength < 0:
		return fmt.Errorf("star_length must not be negative, got %v", s.StarLength)
	case s.FireRate < 0:
		return fmt.Errorf("fire_rate must not be negative, got %v", s.FireRate)
	case s.PatternDuration <= 0:
		return fmt.Errorf("pattern_duration must be positive, got %v", s.PatternDuration)
	case s.PauseDuration < 0:
		return fmt.Errorf("pause_duration must not be negative, got %v", s.PauseDuration)
	case s.BulletLifetime <= 0:
		return fmt.Errorf("bullet_lifetime must be positive, got %v", s.BulletLifetime)
	}
	return nil
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

// GetTPS returns the fixed update rate, falling back to ebiten's default of 60.
func (c *Config) GetTPS() int {
	if c.Display.TPS <= 0 {
		return 60
	}
	return c.Display.TPS
}

// GetShipShooting returns the shooting block for a ship, falling back to the global one.
func (c *Config) GetShipShooting(index int) ShootingConfig {
	if index >= 0 && index < len(c.Ships) && c.Ships[index].Shooting != nil {
		return *c.Ships[index].Shooting
	}
	return c.Shooting
}

// GetBacklogAlert returns the live bullet count that raises a backlog alert,
// or 0 to keep the monitor's default.
func (c *Config) GetBacklogAlert() int {
	if c.Projectiles.BacklogAlert > 0 {
		return c.Projectiles.BacklogAlert
	}
	if c.Projectiles.MaxActive > 0 {
		return max(1, c.Projectiles.MaxActive*9/10)
	}
	return 0
}

func (c *Config) GetCameraZoom() float64 {
	if c.Camera.Zoom <= 0 {
		return 12.0 // Default fallback
	}
	return c.Camera.Zoom
}
