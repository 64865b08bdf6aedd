package session

import (
	"fmt"

	"github.com/Versifine/quiver/internal/config"
	"github.com/Versifine/quiver/internal/input"
	"github.com/Versifine/quiver/internal/physics"
	"github.com/Versifine/quiver/internal/projectile"
	"github.com/Versifine/quiver/internal/target"
)

type Settings struct {
	Spawn       physics.Vec3
	Tuning      physics.Tuning
	Sensitivity float64
	MaxDelta    float64
	ArrowSpeed  float64
	Mode        projectile.Mode
	Projectile  projectile.Config
	Target      target.Config
}

func DefaultSettings() Settings {
	return Settings{
		Spawn:       physics.Vec3{Y: physics.GroundHeight, Z: 5},
		Tuning:      physics.DefaultTuning(),
		Sensitivity: input.DefaultSensitivity,
		MaxDelta:    physics.MaxFrameDelta,
		ArrowSpeed:  2,
		Mode:        projectile.ModeLinear,
		Projectile:  projectile.DefaultConfig(),
		Target:      target.DefaultConfig(),
	}
}

func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	if cfg == nil {
		return Settings{}, fmt.Errorf("config is nil")
	}
	mode, err := projectile.ParseMode(cfg.Projectile.Mode)
	if err != nil {
		return Settings{}, err
	}

	zones := make(target.Zones, 0, len(cfg.Target.Zones))
	for _, z := range cfg.Target.Zones {
		zones = append(zones, target.Zone{Name: z.Name, Radius: z.Radius, Score: z.Score})
	}
	if err := zones.Validate(); err != nil {
		return Settings{}, fmt.Errorf("target zones: %w", err)
	}

	p := cfg.Player
	return Settings{
		Spawn: vec(p.Spawn),
		Tuning: physics.Tuning{
			MoveSpeed:        p.MoveSpeed,
			SprintMultiplier: p.SprintMultiplier,
			Gravity:          p.Gravity,
			JumpVelocity:     p.JumpVelocity,
			GroundHeight:     p.GroundHeight,
			Damping:          p.Damping,
			RestThreshold:    p.RestThreshold,
			ReferenceRate:    physics.ReferenceFrameRate,
		},
		Sensitivity: p.Sensitivity,
		MaxDelta:    cfg.Frontend.MaxDelta,
		ArrowSpeed:  cfg.Projectile.Speed,
		Mode:        mode,
		Projectile: projectile.Config{
			SpeedScale:       cfg.Projectile.SpeedScale,
			Gravity:          cfg.Projectile.Gravity,
			ReferenceRate:    physics.ReferenceFrameRate,
			MaxDistance:      cfg.Projectile.MaxDistance,
			FloorHeight:      cfg.Projectile.FloorHeight,
			MinOrientSpeedSq: projectile.DefaultMinOrientSpeedSq,
			Damage:           cfg.Projectile.Damage,
		},
		Target: target.Config{
			Zones:     zones,
			Center:    vec(cfg.Target.Center),
			Normal:    vec(cfg.Target.Normal),
			SlideStep: cfg.Target.SlideStep,
			MinX:      cfg.Target.MinX,
			MaxX:      cfg.Target.MaxX,
		},
	}, nil
}

func vec(v config.Vec3) physics.Vec3 {
	return physics.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
