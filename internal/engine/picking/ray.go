// Package picking casts rays from the screen into the scene.
package picking

import (
	gomath "math"

	"github.com/Faultbox/tinycollada/pkg/math"
)

// Ray is a half-line with a unit direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// ScreenToRay returns the ray under pixel (x, y) of a width x height
// viewport, y growing downwards. invViewProj is the inverse of the
// view-projection matrix the frame was drawn with.
func ScreenToRay(x, y, width, height float32, invViewProj math.Mat4) Ray {
	ndcX := 2*x/width - 1
	ndcY := 1 - 2*y/height

	near := math.V3(invViewProj.Project([3]float32{ndcX, ndcY, -1}))
	far := math.V3(invViewProj.Project([3]float32{ndcX, ndcY, 1}))
	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// At returns the point t units along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectBox returns the distance at which r enters the box lo..hi, or
// where it leaves when the origin is inside. hit is false when the box is
// missed or lies behind the origin.
func (r Ray) IntersectBox(lo, hi [3]float32) (t float32, hit bool) {
	origin, dir := r.Origin.Array(), r.Direction.Array()

	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)
	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
