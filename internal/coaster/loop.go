package coaster

import (
	"math"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

// buildLoop splices a vertical circular loop into the sequence at target
// index idx, which must resolve to a point that has a successor.
//
// The incoming section (everything up to and including the target) and the
// outgoing section (everything after it) are first separated horizontally on
// either side of the loop plane, so the loop's entry and exit segments never
// overlap the straight track in the same horizontal line. The loop circle is
// then generated between the two shifted anchor points and the three pieces
// are concatenated into a fresh sequence.
//
// The function reads but never mutates the input slice.
func buildLoop(points []TrackPoint, idx int, cfg LoopConfig) []TrackPoint {
	target := points[idx]

	// Entry heading: the horizontal run from the preceding point into the
	// target. Falls back to the configured default when the target is the
	// first point or the run is too short to carry a direction.
	forward := cfg.DefaultForward
	if idx > 0 {
		if run, dist := horizontalRun(points[idx-1].Position, target.Position); dist >= cfg.MinForwardDistance {
			forward = run
		}
	}
	forward = r3.Unit(flatten(forward))
	left := leftOf(forward)

	shift := r3.Scale(cfg.LateralOffset(), left)

	out := make([]TrackPoint, 0, len(points)+cfg.ArcPoints-1)

	// Incoming section shifts toward the entry side of the loop. Only the
	// horizontal coordinates move; heights are preserved.
	for _, p := range points[:idx+1] {
		p.Position = r3.Add(p.Position, shift)
		out = append(out, p)
	}
	// Outgoing section shifts the same distance the other way.
	outgoing := make([]TrackPoint, 0, len(points)-idx-1)
	for _, p := range points[idx+1:] {
		p.Position = r3.Sub(p.Position, shift)
		outgoing = append(outgoing, p)
	}

	entry := out[len(out)-1].Position
	exit := outgoing[0].Position

	// Loop circle center: horizontal midpoint of the anchors, one radius
	// above the entry height.
	center := r3.Vec{
		X: (entry.X + exit.X) / 2,
		Y: entry.Y + cfg.Radius,
		Z: (entry.Z + exit.Z) / 2,
	}

	// Interior arc points sweep the open interval (0, 2π): up from the entry
	// side, over the top, and back down to the exit side. The anchors
	// themselves stand in for θ=0 and θ=2π.
	for i := 1; i < cfg.ArcPoints; i++ {
		theta := float64(i) / float64(cfg.ArcPoints) * 2 * math.Pi
		pos := r3.Add(center, r3.Scale(math.Cos(theta)*cfg.Radius, left))
		pos.Y += math.Sin(theta) * cfg.Radius
		out = append(out, TrackPoint{
			ID:       uuid.New().String(),
			Position: pos,
		})
	}

	return append(out, outgoing...)
}
