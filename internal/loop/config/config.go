// Package config centralizes all tunable game parameters.
package config

import (
	"image/color"
	"time"
)

// Logical playfield used by the terminal front ends.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 1200
	ViewHeight = 800
)

// Background colour of the playfield.
var BackgroundColor = color.RGBA{R: 230, G: 230, B: 230, A: 255}

// Ship
const (
	ShipWidth  = 60
	ShipHeight = 48
	ShipLimit  = 3   // Lives per game
	ShipSpeed  = 7.5 // Units per tick
)

// Projectiles
const (
	BulletWidth    = 3
	BulletHeight   = 15
	BulletSpeed    = 12.0 // Units per tick
	BulletsAllowed = 3    // Maximum projectiles in flight
)

// Fleet
const (
	AlienWidth     = 60
	AlienHeight    = 58
	AlienSpeed     = 2.0  // Units per tick
	FleetDropSpeed = 10.0 // Units dropped on edge contact
	FleetDirection = 1    // 1 moves right, -1 moves left
)

// Escalation after each cleared formation
const (
	SpeedupScale = 1.1
	ScoreScale   = 1.5
	AlienPoints  = 50
)

// Play button
const (
	ButtonWidth  = 200
	ButtonHeight = 50
	ButtonLabel  = "Play"
)

// Simulation tick rate
const (
	TickRate = 60
	TickTime = time.Second / TickRate
)

// Pause after the ship is hit
const (
	HitPause      = 500 * time.Millisecond
	HitPauseTicks = int(HitPause / TickTime)
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Terminal rendering
const (
	// Terminal cells are about twice as tall as wide and the canvas packs two
	// pixels per cell vertically, so the playfield aspect in cells is
	// ViewWidth : ViewHeight/2.
	MaxTermWidth  = 240
	MaxTermHeight = 80
)
