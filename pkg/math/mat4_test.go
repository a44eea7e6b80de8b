package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3, 4)

	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("Scale diagonal: got (%f, %f, %f), want (2, 3, 4)", m[0], m[5], m[10])
	}
}

func TestTransformPoint(t *testing.T) {
	// Translate by (10, 20, 30)
	m := Translate(10, 20, 30)
	p := [3]float32{1, 2, 3}
	result := m.TransformPoint(p)

	expected := [3]float32{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestTransformPointScale(t *testing.T) {
	m := Scale(2, 2, 2)
	p := [3]float32{1, 2, 3}
	result := m.TransformPoint(p)

	expected := [3]float32{2, 4, 6}
	if result != expected {
		t.Errorf("TransformPoint with scale: got %v, want %v", result, expected)
	}
}

func TestRotateAxisZ90(t *testing.T) {
	m := RotateAxis([3]float32{0, 0, 2}, Radians(90))
	result := m.TransformPoint([3]float32{1, 0, 0})

	// (1,0,0) rotated a quarter turn about +Z lands on +Y; the axis is normalized first
	if abs(result[0]) > 0.001 || abs(result[1]-1) > 0.001 || abs(result[2]) > 0.001 {
		t.Errorf("RotateAxis Z 90: got %v, want (0, 1, 0)", result)
	}
}

func TestRotateAxisZeroAxis(t *testing.T) {
	if got := RotateAxis([3]float32{}, 1); got != Identity() {
		t.Errorf("RotateAxis with zero axis: got %v, want identity", got)
	}
}

func TestPerspective(t *testing.T) {
	fov := float32(math.Pi / 4) // 45 degrees
	aspect := float32(1.0)
	near := float32(0.1)
	far := float32(100.0)

	m := Perspective(fov, aspect, near, far)

	// Should be a valid projection matrix (not identity)
	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	// Element [15] should be 0 for perspective projection
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	// Element [11] should be -1 for perspective projection
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 5}
	center := Vec3{0, 0, 0}
	up := Vec3{0, 1, 0}

	m := LookAt(eye, center, up)

	// Transform eye position - should result in origin (or close to it)
	// This is a simple sanity check
	if m[15] != 1 {
		t.Errorf("LookAt [15] should be 1, got %f", m[15])
	}
}

func TestTranspose(t *testing.T) {
	m := Mat4{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}
	got := m.Transpose()

	// Diagonal stays put
	for _, i := range []int{0, 5, 10, 15} {
		if got[i] != m[i] {
			t.Errorf("diagonal element %d moved: got %f, want %f", i, got[i], m[i])
		}
	}
	// (0,1) and (1,0) swap
	if got[1] != 5 || got[4] != 2 {
		t.Errorf("(0,1)/(1,0): got %f/%f, want 5/2", got[1], got[4])
	}
	if got[3] != 13 || got[12] != 4 {
		t.Errorf("(0,3)/(3,0): got %f/%f, want 13/4", got[3], got[12])
	}
	if got.Transpose() != m {
		t.Error("transposing twice should give the original matrix")
	}
}

func TestFromSlice(t *testing.T) {
	v := make([]float32, 16)
	for i := range v {
		v[i] = float32(i)
	}
	m, ok := FromSlice(v)
	if !ok {
		t.Fatal("FromSlice with 16 values should succeed")
	}
	if m[7] != 7 {
		t.Errorf("FromSlice [7]: got %f, want 7", m[7])
	}

	m, ok = FromSlice(v[:9])
	if ok {
		t.Error("FromSlice with 9 values should fail")
	}
	if m != Identity() {
		t.Error("FromSlice failure should return identity")
	}
}

func TestTranslation(t *testing.T) {
	m := Translate(1, 2, 3).Mul(Scale(2, 2, 2))
	if got := m.Translation(); got != (Vec3{1, 2, 3}) {
		t.Errorf("Translation: got %v, want (1, 2, 3)", got)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestInverse(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
	}{
		{"identity", Identity()},
		{"translate", Translate(1, -2, 3)},
		{"trs", Translate(4, 5, 6).Mul(RotateAxis([3]float32{1, 1, 0}, 0.7)).Mul(Scale(2, 3, 0.5))},
		{"perspective view", Perspective(Radians(45), 1.5, 1, 10).Mul(LookAt(Vec3{3, 4, 5}, Vec3{}, Vec3{0, 1, 0}))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := tt.m.Inverse()
			if !ok {
				t.Fatal("expected an invertible matrix")
			}
			got := tt.m.Mul(inv)
			want := Identity()
			for i := range got {
				if math.Abs(float64(got[i]-want[i])) > 1e-4 {
					t.Fatalf("M * M^-1 element %d: got %f, want %f", i, got[i], want[i])
				}
			}
		})
	}
}

func TestInverseSingular(t *testing.T) {
	inv, ok := Scale(1, 0, 1).Inverse()
	if ok {
		t.Error("zero scale should not invert")
	}
	if inv != Identity() {
		t.Error("singular inverse should return identity")
	}
}

func TestProject(t *testing.T) {
	if got := Translate(1, 2, 3).Project([3]float32{1, 1, 1}); got != [3]float32{2, 3, 4} {
		t.Errorf("affine: got %v", got)
	}

	// A point on the near plane straight ahead lands at NDC depth -1.
	p := Perspective(Radians(90), 1, 1, 10)
	got := p.Project([3]float32{0, 0, -1})
	if math.Abs(float64(got[2]+1)) > 1e-5 || got[0] != 0 || got[1] != 0 {
		t.Errorf("near plane: got %v", got)
	}
}
