// Package coaster holds the track data model: the ordered point sequence,
// the editor session state, and the loop-insertion geometry.
package coaster

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Mode represents the editor session mode.
type Mode string

const (
	ModeBuild   Mode = "build"   // Free editing, camera orbit enabled
	ModeRide    Mode = "ride"    // Riding the track, camera locked to the train
	ModePreview Mode = "preview" // Read-only fly-through
)

// Constants for loop generation
const (
	// DefaultLoopRadius is the radius of an inserted vertical loop in track units
	DefaultLoopRadius = 8.0
	// DefaultLateralClearance is added to the loop radius to separate the
	// incoming and outgoing track sections horizontally
	DefaultLateralClearance = 2.0
	// MinForwardDistance is the minimum horizontal run between two points for
	// their direction to be usable as a loop entry heading
	MinForwardDistance = 0.1
	// DefaultArcPoints divides the loop circle; interior points are generated
	// at indices 1..DefaultArcPoints-1
	DefaultArcPoints = 8
)

// TrackPoint is a single control vertex of the coaster path.
type TrackPoint struct {
	// ID is assigned at creation and never reused or mutated.
	ID string
	// Position in world space. Y is up.
	Position r3.Vec
	// Tilt is the roll (radians) about the track's forward axis at this point.
	Tilt float64
}

// LoopConfig holds configuration parameters for loop insertion.
type LoopConfig struct {
	Radius             float64 // Loop circle radius (track units)
	LateralClearance   float64 // Extra horizontal separation beyond the radius
	MinForwardDistance float64 // Minimum run for a usable entry heading
	ArcPoints          int     // Circle subdivision; ArcPoints-1 points are generated
	DefaultForward     r3.Vec  // Heading used when no usable run exists
}

// DefaultLoopConfig returns default loop generation configuration.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		Radius:             DefaultLoopRadius,
		LateralClearance:   DefaultLateralClearance,
		MinForwardDistance: MinForwardDistance,
		ArcPoints:          DefaultArcPoints,
		DefaultForward:     r3.Vec{X: 1},
	}
}

// LateralOffset is the horizontal shift applied to the incoming and outgoing
// track sections on either side of an inserted loop.
func (c LoopConfig) LateralOffset() float64 {
	return c.Radius + c.LateralClearance
}
