package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/tinycollada/pkg/math"
)

const epsilon = 1e-4

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < epsilon
}

func TestPosition(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 1, Y: 2, Z: 3}
	c.Distance = 10
	c.RotationX = 0
	c.RotationY = 0

	p := c.Position()
	if !near(p.X, 1) || !near(p.Y, 2) || !near(p.Z, 13) {
		t.Errorf("got %+v, want {1 2 13}", p)
	}

	// Distance from center is preserved at any angle.
	c.RotationX, c.RotationY = 0.7, -2.1
	if d := c.Position().Sub(c.Center).Length(); !near(d, 10) {
		t.Errorf("distance from center: got %v", d)
	}
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 1e6)
	if c.RotationX != c.MaxPitch {
		t.Errorf("pitch: got %v, want %v", c.RotationX, c.MaxPitch)
	}
	c.HandleDrag(0, -1e6)
	if c.RotationX != c.MinPitch {
		t.Errorf("pitch: got %v, want %v", c.RotationX, c.MinPitch)
	}

	yaw := c.RotationY
	c.HandleDrag(100, 0)
	if !near(c.RotationY, yaw-100*c.DragSensitivity) {
		t.Errorf("yaw: got %v", c.RotationY)
	}
}

func TestHandleZoom(t *testing.T) {
	tests := []struct {
		name  string
		delta float32
		want  float32
	}{
		{"in", 1, 4.5},
		{"out", -1, 5.5},
		{"clamped", -1e6, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewOrbitCamera()
			c.HandleZoom(tt.delta)
			if !near(c.Distance, tt.want) {
				t.Errorf("got %v, want %v", c.Distance, tt.want)
			}
		})
	}
}

func TestHandleMovement(t *testing.T) {
	c := NewOrbitCamera()
	c.Distance = 100
	c.RotationY = 0

	c.HandleMovement(1, 0, 0)
	if !near(c.Center.Z, -1) || !near(c.Center.X, 0) {
		t.Errorf("forward: got %+v", c.Center)
	}
	c.HandleMovement(0, 1, 1)
	if !near(c.Center.X, 1) || !near(c.Center.Y, 1) {
		t.Errorf("right/up: got %+v", c.Center)
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	lo := math.Vec3{X: -1, Y: -1, Z: -1}
	hi := math.Vec3{X: 3, Y: 1, Z: 1}
	fov := math.Radians(60)

	c.FitToBounds(lo, hi, fov)

	if !near(c.Center.X, 1) || !near(c.Center.Y, 0) || !near(c.Center.Z, 0) {
		t.Errorf("center: got %+v", c.Center)
	}
	radius := hi.Sub(lo).Length() / 2
	if !near(c.Distance, radius*2) {
		t.Errorf("distance: got %v, want %v", c.Distance, radius*2)
	}
	if c.MinDistance >= c.Distance || c.MaxDistance <= c.Distance {
		t.Errorf("limits %v..%v do not contain %v", c.MinDistance, c.MaxDistance, c.Distance)
	}

	n, f := c.NearFar()
	if n <= 0 || n >= c.Distance-radius || f <= c.Distance+radius {
		t.Errorf("clip planes %v..%v do not enclose the model", n, f)
	}
}

func TestFitToBoundsDegenerate(t *testing.T) {
	c := NewOrbitCamera()
	p := math.Vec3{X: 2, Y: 2, Z: 2}
	c.FitToBounds(p, p, 0)
	if c.Distance <= 0 || gomath.IsInf(float64(c.Distance), 0) {
		t.Errorf("degenerate box should still give a usable distance, got %v", c.Distance)
	}
}
