package coaster

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r3"
)

const geomTolerance = 1e-9

func vecNear(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

// straightEditor builds an editor with points along +X at the given spacing.
func straightEditor(t *testing.T, xs ...float64) (*Editor, []TrackPoint) {
	t.Helper()
	e := NewEditor(DefaultLoopConfig())
	for _, x := range xs {
		e.AddTrackPoint(r3.Vec{X: x})
	}
	return e, e.TrackPoints()
}

func TestCreateLoopAtPoint_UnknownIDIsNoOp(t *testing.T) {
	e, before := straightEditor(t, 0, 10, 20)

	e.CreateLoopAtPoint("not-a-point")

	if diff := cmp.Diff(before, e.TrackPoints()); diff != "" {
		t.Errorf("track changed on unknown id (-before +after):\n%s", diff)
	}
}

func TestCreateLoopAtPoint_LastPointIsNoOp(t *testing.T) {
	e, before := straightEditor(t, 0, 10, 20)

	e.CreateLoopAtPoint(before[len(before)-1].ID)

	if diff := cmp.Diff(before, e.TrackPoints()); diff != "" {
		t.Errorf("track changed on last-point target (-before +after):\n%s", diff)
	}
}

func TestCreateLoopAtPoint_EmptyTrackIsNoOp(t *testing.T) {
	e := NewEditor(DefaultLoopConfig())
	e.CreateLoopAtPoint("anything")
	if e.PointCount() != 0 {
		t.Errorf("expected empty track, got %d points", e.PointCount())
	}
}

// The canonical straight-track case: three points along +X, loop at the
// middle point. forward = +X, so left = up x forward = -Z, and the incoming
// and outgoing sections separate by the lateral offset (radius 8 + 2 = 10)
// on either side of the loop plane.
func TestCreateLoopAtPoint_StraightTrackGeometry(t *testing.T) {
	e, before := straightEditor(t, 0, 10, 20)
	cfg := DefaultLoopConfig()

	e.CreateLoopAtPoint(before[1].ID)
	after := e.TrackPoints()

	// 2 incoming + 7 generated + 1 outgoing.
	if len(after) != 10 {
		t.Fatalf("expected 10 points, got %d", len(after))
	}

	left := r3.Vec{Z: -1}
	offset := cfg.LateralOffset()

	// Incoming section shifted +left, heights untouched.
	wantIn := []r3.Vec{
		r3.Add(before[0].Position, r3.Scale(offset, left)),
		r3.Add(before[1].Position, r3.Scale(offset, left)),
	}
	for i, want := range wantIn {
		if !vecNear(after[i].Position, want, geomTolerance) {
			t.Errorf("incoming point %d: expected %v, got %v", i, want, after[i].Position)
		}
		if after[i].ID != before[i].ID {
			t.Errorf("incoming point %d: id must survive the shift", i)
		}
	}

	// Outgoing section shifted -left.
	wantOut := r3.Sub(before[2].Position, r3.Scale(offset, left))
	last := after[len(after)-1]
	if !vecNear(last.Position, wantOut, geomTolerance) {
		t.Errorf("outgoing point: expected %v, got %v", wantOut, last.Position)
	}
	if last.ID != before[2].ID {
		t.Error("outgoing point: id must survive the shift")
	}

	// Loop center: horizontal midpoint of the anchors, entry height + radius.
	entry := after[1].Position
	exit := last.Position
	center := r3.Vec{
		X: (entry.X + exit.X) / 2,
		Y: entry.Y + cfg.Radius,
		Z: (entry.Z + exit.Z) / 2,
	}
	if !vecNear(center, r3.Vec{X: 15, Y: 8, Z: 0}, geomTolerance) {
		t.Fatalf("unexpected loop center %v", center)
	}

	// Each interior point sits on the circle at theta = i/8 * 2pi.
	for i := 1; i < cfg.ArcPoints; i++ {
		theta := float64(i) / float64(cfg.ArcPoints) * 2 * math.Pi
		want := r3.Add(center, r3.Scale(math.Cos(theta)*cfg.Radius, left))
		want.Y += math.Sin(theta) * cfg.Radius

		got := after[1+i]
		if !vecNear(got.Position, want, geomTolerance) {
			t.Errorf("loop point %d: expected %v, got %v", i, want, got.Position)
		}
		if got.Tilt != 0 {
			t.Errorf("loop point %d: expected zero tilt, got %v", i, got.Tilt)
		}
	}

	// First generated point: 8*sin(2pi/8) ~ 5.657 above the center and
	// 8*cos(2pi/8) ~ 5.657 along left of it.
	first := after[2].Position
	if math.Abs((first.Y-center.Y)-8*math.Sin(math.Pi/4)) > 1e-9 {
		t.Errorf("expected vertical offset ~5.657, got %v", first.Y-center.Y)
	}
	lateral := r3.Dot(r3.Sub(first, center), left)
	if math.Abs(lateral-8*math.Cos(math.Pi/4)) > 1e-9 {
		t.Errorf("expected lateral offset ~5.657, got %v", lateral)
	}
}

func TestCreateLoopAtPoint_GeneratedIDsAreFresh(t *testing.T) {
	e, before := straightEditor(t, 0, 10, 20)

	existing := make(map[string]bool)
	for _, p := range before {
		existing[p.ID] = true
	}

	e.CreateLoopAtPoint(before[1].ID)

	seen := make(map[string]bool)
	for _, p := range e.TrackPoints()[2:9] {
		if existing[p.ID] {
			t.Errorf("loop point reused existing id %s", p.ID)
		}
		if seen[p.ID] {
			t.Errorf("duplicate loop point id %s", p.ID)
		}
		seen[p.ID] = true
	}
}

// A loop at the first point has no preceding run, so the entry heading falls
// back to +X.
func TestCreateLoopAtPoint_FirstPointUsesDefaultForward(t *testing.T) {
	e := NewEditor(DefaultLoopConfig())
	a := e.AddTrackPoint(r3.Vec{Z: 5})
	e.AddTrackPoint(r3.Vec{Z: 15})

	e.CreateLoopAtPoint(a.ID)
	after := e.TrackPoints()

	if len(after) != 9 {
		t.Fatalf("expected 9 points, got %d", len(after))
	}

	// Default forward +X gives left = -Z: the entry anchor shifts by -10 Z.
	want := r3.Vec{Z: 5 - 10}
	if !vecNear(after[0].Position, want, geomTolerance) {
		t.Errorf("expected entry anchor %v, got %v", want, after[0].Position)
	}
}

// A preceding run shorter than the threshold cannot carry a heading; the
// generator falls back to +X rather than normalizing noise.
func TestCreateLoopAtPoint_ShortRunFallsBack(t *testing.T) {
	e := NewEditor(DefaultLoopConfig())
	e.AddTrackPoint(r3.Vec{})
	b := e.AddTrackPoint(r3.Vec{X: 0.05})
	e.AddTrackPoint(r3.Vec{X: 10})

	e.CreateLoopAtPoint(b.ID)
	after := e.TrackPoints()

	// left = -Z under the fallback heading, so the incoming section moves -10 Z.
	if !vecNear(after[0].Position, r3.Vec{Z: -10}, geomTolerance) {
		t.Errorf("expected fallback shift, got %v", after[0].Position)
	}
}

// A purely vertical climb has zero horizontal run regardless of its length,
// which also triggers the fallback heading.
func TestCreateLoopAtPoint_VerticalRunFallsBack(t *testing.T) {
	e := NewEditor(DefaultLoopConfig())
	e.AddTrackPoint(r3.Vec{})
	b := e.AddTrackPoint(r3.Vec{Y: 20})
	e.AddTrackPoint(r3.Vec{Y: 20, X: 10})

	e.CreateLoopAtPoint(b.ID)
	after := e.TrackPoints()

	want := r3.Vec{Y: 20, Z: -10}
	if !vecNear(after[1].Position, want, geomTolerance) {
		t.Errorf("expected entry anchor %v, got %v", want, after[1].Position)
	}

	// Loop center rides on the entry height.
	if got := after[2].Position.Y; got <= 20 {
		t.Errorf("expected first loop point above entry height, got %v", got)
	}
}

// The lateral split moves the whole incoming and outgoing sections, including
// points far from the loop region.
func TestCreateLoopAtPoint_ShiftsEntireSections(t *testing.T) {
	e, before := straightEditor(t, 0, 10, 20, 30, 100, 500)

	e.CreateLoopAtPoint(before[1].ID)
	after := e.TrackPoints()

	if len(after) != 6+7 {
		t.Fatalf("expected 13 points, got %d", len(after))
	}

	// Far-away outgoing point shifted by the full lateral offset.
	far := after[len(after)-1]
	if far.ID != before[5].ID {
		t.Fatal("expected far point to keep its id")
	}
	want := r3.Vec{X: 500, Z: 10}
	if !vecNear(far.Position, want, geomTolerance) {
		t.Errorf("expected far point at %v, got %v", want, far.Position)
	}
}

// The loop entry heading follows the actual track direction, not an axis.
func TestCreateLoopAtPoint_DiagonalHeading(t *testing.T) {
	e := NewEditor(DefaultLoopConfig())
	e.AddTrackPoint(r3.Vec{})
	b := e.AddTrackPoint(r3.Vec{X: 10, Z: 10})
	e.AddTrackPoint(r3.Vec{X: 20, Z: 20})

	e.CreateLoopAtPoint(b.ID)
	after := e.TrackPoints()

	// forward = (1,0,1)/sqrt2, left = up x forward = (1,0,-1)/sqrt2.
	inv := 1 / math.Sqrt2
	left := r3.Vec{X: inv, Z: -inv}
	want := r3.Add(r3.Vec{X: 10, Z: 10}, r3.Scale(10, left))
	if !vecNear(after[1].Position, want, 1e-9) {
		t.Errorf("expected entry anchor %v, got %v", want, after[1].Position)
	}
}
