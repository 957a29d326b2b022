package loop

import (
	"image/color"

	"github.com/tomz197/invasion/internal/loop/config"
)

// Settings holds the simulation parameters of one game.
// Screen bounds and sprite sizes are fixed at construction. The dynamic
// fields are restored to baseline on every new game and escalate after each
// cleared formation.
type Settings struct {
	ScreenWidth  int
	ScreenHeight int
	Background   color.RGBA

	ShipWidth  int
	ShipHeight int
	ShipLimit  int

	BulletWidth    int
	BulletHeight   int
	BulletsAllowed int

	AlienWidth  int
	AlienHeight int

	SpeedupScale  float64
	ScoreScale    float64
	HitPauseTicks int

	// Dynamic settings
	ShipSpeed      float64
	BulletSpeed    float64
	AlienSpeed     float64
	FleetDropSpeed float64
	FleetDirection float64
	AlienPoints    int

	baseline dynamicSettings
}

// dynamicSettings is the snapshot restored by InitializeDynamic.
type dynamicSettings struct {
	shipSpeed      float64
	bulletSpeed    float64
	alienSpeed     float64
	fleetDropSpeed float64
	fleetDirection float64
	alienPoints    int
}

// NewSettings creates settings for a width×height playfield with the
// default tuning from the config package.
func NewSettings(width, height int) *Settings {
	s := &Settings{
		ScreenWidth:  width,
		ScreenHeight: height,
		Background:   config.BackgroundColor,

		ShipWidth:  config.ShipWidth,
		ShipHeight: config.ShipHeight,
		ShipLimit:  config.ShipLimit,

		BulletWidth:    config.BulletWidth,
		BulletHeight:   config.BulletHeight,
		BulletsAllowed: config.BulletsAllowed,

		AlienWidth:  config.AlienWidth,
		AlienHeight: config.AlienHeight,

		SpeedupScale:  config.SpeedupScale,
		ScoreScale:    config.ScoreScale,
		HitPauseTicks: config.HitPauseTicks,

		baseline: dynamicSettings{
			shipSpeed:      config.ShipSpeed,
			bulletSpeed:    config.BulletSpeed,
			alienSpeed:     config.AlienSpeed,
			fleetDropSpeed: config.FleetDropSpeed,
			fleetDirection: config.FleetDirection,
			alienPoints:    config.AlienPoints,
		},
	}
	s.InitializeDynamic()
	return s
}

// SetBaseline replaces the baseline of the dynamic settings and applies it.
// direction is normalised to -1 or +1; negative speeds are treated as zero.
func (s *Settings) SetBaseline(shipSpeed, bulletSpeed, alienSpeed, dropSpeed, direction float64) {
	s.baseline.shipSpeed = max(shipSpeed, 0)
	s.baseline.bulletSpeed = max(bulletSpeed, 0)
	s.baseline.alienSpeed = max(alienSpeed, 0)
	s.baseline.fleetDropSpeed = max(dropSpeed, 0)
	s.baseline.fleetDirection = 1
	if direction < 0 {
		s.baseline.fleetDirection = -1
	}
	s.InitializeDynamic()
}

// InitializeDynamic restores every dynamic setting to its baseline.
func (s *Settings) InitializeDynamic() {
	s.ShipSpeed = s.baseline.shipSpeed
	s.BulletSpeed = s.baseline.bulletSpeed
	s.AlienSpeed = s.baseline.alienSpeed
	s.FleetDropSpeed = s.baseline.fleetDropSpeed
	s.FleetDirection = s.baseline.fleetDirection
	s.AlienPoints = s.baseline.alienPoints
}

// ResetFleetDirection restores the fleet direction to its baseline.
func (s *Settings) ResetFleetDirection() {
	s.FleetDirection = s.baseline.fleetDirection
}

// IncreaseSpeed escalates the speeds, the fleet drop and the alien score.
func (s *Settings) IncreaseSpeed() {
	s.ShipSpeed *= s.SpeedupScale
	s.BulletSpeed *= s.SpeedupScale
	s.AlienSpeed *= s.SpeedupScale
	s.FleetDropSpeed *= s.SpeedupScale
	s.AlienPoints = int(float64(s.AlienPoints) * s.ScoreScale)
}
