package coaster

import (
	"sync"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

// Editor is the single source of truth for track geometry and session flags.
// It is created once at application start and shared by reference with every
// collaborator (camera, input, ride loop, renderer).
//
// Every operation is atomic under the lock: no reader observes a partially
// applied mutation. Ill-formed requests (unknown id, ride start below the
// minimum point count, loop on an invalid target) are silent no-ops; invalid
// requests are transient UI states here, not programmer errors.
type Editor struct {
	points  []TrackPoint
	loopCfg LoopConfig

	mode            Mode
	selectedPointID string // empty means no selection

	isDraggingPoint bool
	isAddingPoints  bool

	isLooped         bool
	hasChainLift     bool
	showWoodSupports bool
	isNightMode      bool

	isRiding     bool
	rideProgress float64
	rideSpeed    float64

	cameraTarget    r3.Vec
	hasCameraTarget bool

	mu sync.RWMutex
}

// NewEditor creates an editor with an empty track and build-mode defaults.
func NewEditor(cfg LoopConfig) *Editor {
	return &Editor{
		loopCfg:   cfg,
		mode:      ModeBuild,
		rideSpeed: 1.0,
	}
}

// AddTrackPoint appends a new point with a fresh id and zero tilt at the end
// of the sequence. Always succeeds.
func (e *Editor) AddTrackPoint(position r3.Vec) TrackPoint {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := TrackPoint{
		ID:       uuid.New().String(),
		Position: position,
	}
	e.points = append(e.points, p)
	return p
}

// UpdateTrackPoint replaces the position of the point matching id.
// No-op if the id is not present.
func (e *Editor) UpdateTrackPoint(id string, position r3.Vec) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.points {
		if e.points[i].ID == id {
			e.points[i].Position = position
			return
		}
	}
}

// UpdateTrackPointTilt replaces the tilt of the point matching id.
// No-op if the id is not present.
func (e *Editor) UpdateTrackPointTilt(id string, tilt float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.points {
		if e.points[i].ID == id {
			e.points[i].Tilt = tilt
			return
		}
	}
}

// RemoveTrackPoint deletes the point matching id. If the removed point was
// selected, the selection is cleared. Other point ids are untouched.
// No-op if the id is not present.
func (e *Editor) RemoveTrackPoint(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.points {
		if e.points[i].ID == id {
			e.points = append(e.points[:i], e.points[i+1:]...)
			if e.selectedPointID == id {
				e.selectedPointID = ""
			}
			return
		}
	}
}

// SelectPoint sets the selection directly. An empty id clears the selection.
// The id is not validated against the sequence: a selection may reference an
// id that has since been removed, and callers are expected to tolerate that.
func (e *Editor) SelectPoint(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selectedPointID = id
}

// ClearTrack resets the track to empty and clears dependent state: selection,
// ride progress, and the riding flag.
func (e *Editor) ClearTrack() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.points = nil
	e.selectedPointID = ""
	e.rideProgress = 0
	e.isRiding = false
}

// CreateLoopAtPoint synthesizes a vertical loop at the point matching id and
// splices it into the sequence in one atomic update. No-op if the id is not
// present or resolves to the last point (no successor to connect to).
func (e *Editor) CreateLoopAtPoint(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i := range e.points {
		if e.points[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || idx >= len(e.points)-1 {
		return
	}
	e.points = buildLoop(e.points, idx, e.loopCfg)
}

// StartRide transitions to ride mode and resets ride progress. A track with
// fewer than two points cannot be ridden; the call is then a silent no-op.
func (e *Editor) StartRide() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.points) < 2 {
		return
	}
	e.mode = ModeRide
	e.isRiding = true
	e.rideProgress = 0
}

// StopRide transitions back to build mode and resets ride progress.
// Always succeeds.
func (e *Editor) StopRide() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.mode = ModeBuild
	e.isRiding = false
	e.rideProgress = 0
}

// Flag setters. Each is a direct unconditional field assignment.

func (e *Editor) SetMode(m Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = m
}

func (e *Editor) SetIsLooped(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.isLooped = v
}

func (e *Editor) SetHasChainLift(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hasChainLift = v
}

func (e *Editor) SetShowWoodSupports(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.showWoodSupports = v
}

func (e *Editor) SetIsNightMode(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.isNightMode = v
}

func (e *Editor) SetIsDraggingPoint(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.isDraggingPoint = v
}

func (e *Editor) SetIsAddingPoints(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.isAddingPoints = v
}

func (e *Editor) SetRideProgress(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rideProgress = v
}

func (e *Editor) SetRideSpeed(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rideSpeed = v
}

// SetCameraTarget sets the point the camera collaborator should look at.
func (e *Editor) SetCameraTarget(target r3.Vec) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cameraTarget = target
	e.hasCameraTarget = true
}

// ClearCameraTarget removes the camera target.
func (e *Editor) ClearCameraTarget() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cameraTarget = r3.Vec{}
	e.hasCameraTarget = false
}

// Read accessors. Positions are value types, so returned points never alias
// store memory.

// TrackPoints returns a copy of the ordered point sequence.
func (e *Editor) TrackPoints() []TrackPoint {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]TrackPoint, len(e.points))
	copy(out, e.points)
	return out
}

// PointCount returns the number of points in the sequence.
func (e *Editor) PointCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.points)
}

// Point returns the point matching id, reporting whether it exists.
func (e *Editor) Point(id string) (TrackPoint, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for i := range e.points {
		if e.points[i].ID == id {
			return e.points[i], true
		}
	}
	return TrackPoint{}, false
}

func (e *Editor) Mode() Mode {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.mode
}

// SelectedPointID returns the current selection, or the empty string when no
// point is selected. The returned id is not guaranteed to resolve.
func (e *Editor) SelectedPointID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selectedPointID
}

func (e *Editor) IsDraggingPoint() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.isDraggingPoint
}

func (e *Editor) IsAddingPoints() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.isAddingPoints
}

func (e *Editor) IsLooped() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.isLooped
}

func (e *Editor) HasChainLift() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.hasChainLift
}

func (e *Editor) ShowWoodSupports() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.showWoodSupports
}

func (e *Editor) IsNightMode() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.isNightMode
}

func (e *Editor) IsRiding() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.isRiding
}

func (e *Editor) RideProgress() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rideProgress
}

func (e *Editor) RideSpeed() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rideSpeed
}

// CameraTarget returns the camera target, reporting whether one is set.
func (e *Editor) CameraTarget() (r3.Vec, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cameraTarget, e.hasCameraTarget
}
