package coaster

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// up is the world vertical axis.
var up = r3.Vec{Y: 1}

// horizontalRun returns the height-ignored offset from a to b and its length.
func horizontalRun(a, b r3.Vec) (r3.Vec, float64) {
	d := r3.Vec{X: b.X - a.X, Z: b.Z - a.Z}
	return d, r3.Norm(d)
}

// leftOf returns the horizontal unit vector perpendicular to forward,
// right-handed about the up axis (up x forward).
func leftOf(forward r3.Vec) r3.Vec {
	return r3.Unit(r3.Cross(up, forward))
}

// flatten zeroes the vertical component of v.
func flatten(v r3.Vec) r3.Vec {
	v.Y = 0
	return v
}
