package debug

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBoxLines(t *testing.T) {
	lo, hi := [3]float32{-1, 0, 2}, [3]float32{1, 3, 4}
	v := BoxLines(lo, hi)
	if len(v) != BoxLineVertices*3 {
		t.Fatalf("got %d floats, want %d", len(v), BoxLineVertices*3)
	}

	seen := make(map[[6]float32]bool)
	for i := 0; i < len(v); i += 6 {
		var edge [6]float32
		copy(edge[:], v[i:i+6])
		if seen[edge] {
			t.Errorf("edge %v emitted twice", edge)
		}
		seen[edge] = true

		// Every edge runs along exactly one axis.
		differ := 0
		for axis := 0; axis < 3; axis++ {
			a, b := edge[axis], edge[axis+3]
			if a != b {
				differ++
				if a != lo[axis] || b != hi[axis] {
					t.Errorf("edge %v does not span lo..hi on axis %d", edge, axis)
				}
			}
		}
		if differ != 1 {
			t.Errorf("edge %v changes %d axes", edge, differ)
		}
	}
}

func TestScreenshotsSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := NewScreenshots(dir, "cube")
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	// 1x2, bottom row red, top row blue.
	pixels := []byte{255, 0, 0, 255, 0, 0, 255, 255}
	path, err := s.Save(pixels, 1, 2)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if want := filepath.Join(dir, "cube_2024-05-01_12-30-00.000.png"); path != want {
		t.Errorf("path: got %q, want %q", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := color.RGBAModel.Convert(img.At(0, 0)); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("top pixel: got %v", got)
	}
	if got := color.RGBAModel.Convert(img.At(0, 1)); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("bottom pixel: got %v", got)
	}
}

func TestScreenshotsSave_SizeMismatch(t *testing.T) {
	s := NewScreenshots(t.TempDir(), "x")
	if _, err := s.Save(make([]byte, 7), 1, 2); err == nil {
		t.Error("expected a size error")
	}
}
