package config

import (
	"fmt"
	"os"
	"time"

	"github.com/Versifine/quiver/internal/physics"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Frontend   FrontendConfig   `yaml:"frontend"`
	Player     PlayerConfig     `yaml:"player"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Target     TargetConfig     `yaml:"target"`
	Audio      AudioConfig      `yaml:"audio"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	File   string `yaml:"file"`
	Format string `yaml:"format"`
}

type FrontendConfig struct {
	UI           string        `yaml:"ui"`
	Title        string        `yaml:"title"`
	Width        int           `yaml:"width"`
	Height       int           `yaml:"height"`
	TPS          int           `yaml:"tps"`
	FOV          float64       `yaml:"fov"`
	TickInterval time.Duration `yaml:"tick_interval"`
	MaxDelta     float64       `yaml:"max_delta"`
}

// Vec3 is written as a YAML sequence: [x, y, z].
type Vec3 [3]float64

type PlayerConfig struct {
	Spawn            Vec3    `yaml:"spawn"`
	MoveSpeed        float64 `yaml:"move_speed"`
	SprintMultiplier float64 `yaml:"sprint_multiplier"`
	Gravity          float64 `yaml:"gravity"`
	JumpVelocity     float64 `yaml:"jump_velocity"`
	GroundHeight     float64 `yaml:"ground_height"`
	Damping          float64 `yaml:"damping"`
	RestThreshold    float64 `yaml:"rest_threshold"`
	Sensitivity      float64 `yaml:"sensitivity"`
}

type ProjectileConfig struct {
	Mode        string  `yaml:"mode"`
	Speed       float64 `yaml:"speed"`
	SpeedScale  float64 `yaml:"speed_scale"`
	Gravity     float64 `yaml:"gravity"`
	MaxDistance float64 `yaml:"max_distance"`
	FloorHeight float64 `yaml:"floor_height"`
	Damage      int     `yaml:"damage"`
}

type TargetConfig struct {
	Center    Vec3         `yaml:"center"`
	Normal    Vec3         `yaml:"normal"`
	SlideStep float64      `yaml:"slide_step"`
	MinX      float64      `yaml:"min_x"`
	MaxX      float64      `yaml:"max_x"`
	Zones     []ZoneConfig `yaml:"zones"`
}

type ZoneConfig struct {
	Name   string  `yaml:"name"`
	Radius float64 `yaml:"radius"`
	Score  int     `yaml:"score"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Frontend: FrontendConfig{
			UI:           "window",
			Title:        "Quiver",
			Width:        1280,
			Height:       720,
			TPS:          60,
			FOV:          75,
			TickInterval: 16 * time.Millisecond,
			MaxDelta:     0.1,
		},
		Player: PlayerConfig{
			Spawn:            Vec3{0, 1, 5},
			MoveSpeed:        0.01,
			SprintMultiplier: 2,
			Gravity:          0.02,
			JumpVelocity:     0.35,
			GroundHeight:     1,
			Damping:          0.9,
			RestThreshold:    0.001,
			Sensitivity:      0.002,
		},
		Projectile: ProjectileConfig{
			Mode:        "linear",
			Speed:       2,
			SpeedScale:  20,
			Gravity:     0.02,
			MaxDistance: 100,
			FloorHeight: 0,
			Damage:      10,
		},
		Target: TargetConfig{
			Center:    Vec3{0, 2, -20},
			Normal:    Vec3{0, 0, 1},
			SlideStep: 0.2,
			MinX:      -2,
			MaxX:      2,
			Zones: []ZoneConfig{
				{Name: "bullseye", Radius: 0.25, Score: 10},
				{Name: "inner", Radius: 0.6, Score: 8},
				{Name: "middle", Radius: 1.3, Score: 5},
				{Name: "outer", Radius: 2.0, Score: 2},
			},
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.4,
		},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Frontend.UI {
	case "window", "console":
	default:
		return fmt.Errorf("frontend.ui %q must be window or console", c.Frontend.UI)
	}
	if c.Frontend.TPS <= 0 {
		return fmt.Errorf("frontend.tps must be positive, got %d", c.Frontend.TPS)
	}
	if c.Frontend.TickInterval <= 0 {
		return fmt.Errorf("frontend.tick_interval must be positive, got %s", c.Frontend.TickInterval)
	}
	if c.Frontend.MaxDelta <= 0 || c.Frontend.MaxDelta > physics.MaxFrameDelta {
		return fmt.Errorf("frontend.max_delta must be in (0, %v], got %v", physics.MaxFrameDelta, c.Frontend.MaxDelta)
	}
	if c.Player.Sensitivity <= 0 {
		return fmt.Errorf("player.sensitivity must be positive, got %v", c.Player.Sensitivity)
	}
	if c.Player.Damping < 0 || c.Player.Damping >= 1 {
		return fmt.Errorf("player.damping must be in [0, 1), got %v", c.Player.Damping)
	}
	switch c.Projectile.Mode {
	case "linear", "ballistic":
	default:
		return fmt.Errorf("projectile.mode %q must be linear or ballistic", c.Projectile.Mode)
	}
	if c.Projectile.Speed <= 0 || c.Projectile.SpeedScale <= 0 {
		return fmt.Errorf("projectile speed and speed_scale must be positive")
	}
	if c.Projectile.MaxDistance <= 0 {
		return fmt.Errorf("projectile.max_distance must be positive, got %v", c.Projectile.MaxDistance)
	}
	if len(c.Target.Zones) == 0 {
		return fmt.Errorf("target.zones is empty")
	}
	return nil
}
