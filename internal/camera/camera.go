// Package camera implements the orbit camera collaborator. It reads the
// editor's mode and camera target and never mutates track geometry.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Kazi584/roller-coaster-builder/internal/coaster"
	"github.com/Kazi584/roller-coaster-builder/internal/monitoring"
)

// Constants for rig limits
const (
	// MaxPitch keeps the orbit off the poles
	MaxPitch = math.Pi/2 - 0.01
	// MinDistance and MaxDistance bound the zoom range
	MinDistance = 2.0
	MaxDistance = 200.0
)

// Rig orbits around the editor's camera target at a yaw/pitch/distance.
// The rig is disabled entirely while the editor is in ride mode, and orbit
// input is ignored while a point drag is in progress so camera motion never
// fights a drag gesture.
type Rig struct {
	editor *coaster.Editor

	yaw      float64
	pitch    float64
	distance float64
}

// NewRig creates a rig with a mid-height, pulled-back default framing.
func NewRig(editor *coaster.Editor) *Rig {
	return &Rig{
		editor:   editor,
		pitch:    0.5,
		distance: 40,
	}
}

// Orbit applies a yaw/pitch delta. Ignored while a drag is in progress or
// the editor is in ride mode.
func (r *Rig) Orbit(dyaw, dpitch float64) {
	if r.editor.Mode() == coaster.ModeRide || r.editor.IsDraggingPoint() {
		return
	}

	r.yaw += dyaw
	r.pitch += dpitch
	if r.pitch > MaxPitch {
		r.pitch = MaxPitch
	}
	if r.pitch < -MaxPitch {
		r.pitch = -MaxPitch
	}
}

// Zoom moves the rig toward or away from the target, clamped to the
// distance bounds. Subject to the same gating as Orbit.
func (r *Rig) Zoom(delta float64) {
	if r.editor.Mode() == coaster.ModeRide || r.editor.IsDraggingPoint() {
		return
	}

	r.distance += delta
	if r.distance < MinDistance {
		r.distance = MinDistance
	}
	if r.distance > MaxDistance {
		r.distance = MaxDistance
	}
}

// Position returns the rig's world position, reporting false while the rig
// is disabled (ride mode) so the render collaborator can hand the camera to
// the train instead.
func (r *Rig) Position() (r3.Vec, bool) {
	if r.editor.Mode() == coaster.ModeRide {
		return r3.Vec{}, false
	}

	target, _ := r.editor.CameraTarget()
	offset := r3.Vec{
		X: r.distance * math.Cos(r.pitch) * math.Sin(r.yaw),
		Y: r.distance * math.Sin(r.pitch),
		Z: r.distance * math.Cos(r.pitch) * math.Cos(r.yaw),
	}
	return r3.Add(target, offset), true
}

// FocusSelected re-centers the camera target on the selected point. A stale
// or empty selection leaves the target untouched.
func (r *Rig) FocusSelected() {
	id := r.editor.SelectedPointID()
	if id == "" {
		return
	}
	p, ok := r.editor.Point(id)
	if !ok {
		monitoring.Logf("camera: selection %s no longer resolves, keeping target", id)
		return
	}
	r.editor.SetCameraTarget(p.Position)
}
