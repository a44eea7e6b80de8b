package model

import (
	gomath "math"

	"github.com/Faultbox/tinycollada/pkg/math"
)

// Cross computes the cross product of two 3D vectors.
func Cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Normalize returns a unit vector in the same direction as v, or +Y for a
// vector too short to have a direction.
func Normalize(v [3]float32) [3]float32 {
	length := sqrtf(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if length < 0.0001 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{v[0] / length, v[1] / length, v[2] / length}
}

// TransformBounds returns the box containing all eight corners of b under m.
func TransformBounds(m math.Mat4, b Bounds) Bounds {
	var out Bounds
	if !b.Valid() {
		return out
	}
	for i := 0; i < 8; i++ {
		corner := [3]float32{b.Min[0], b.Min[1], b.Min[2]}
		if i&1 != 0 {
			corner[0] = b.Max[0]
		}
		if i&2 != 0 {
			corner[1] = b.Max[1]
		}
		if i&4 != 0 {
			corner[2] = b.Max[2]
		}
		out.Add(m.TransformPoint(corner))
	}
	return out
}

func sqrtf(x float32) float32 {
	return float32(gomath.Sqrt(float64(x)))
}
