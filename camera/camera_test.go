package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func near(a, b r3.Vec, eps float64) bool {
	return r3.Norm(r3.Sub(a, b)) <= eps
}

func TestNewAtHome(t *testing.T) {
	home := r3.Vec{X: 15, Y: 15, Z: 10}
	cam := New(home, r3.Vec{}, 60)

	if got := cam.CameraPosition(); !near(got, home, 1e-9) {
		t.Errorf("expected camera at %v, got %v", home, got)
	}
	want := math.Sqrt(15*15 + 15*15 + 10*10)
	if math.Abs(cam.Distance-want) > 1e-9 {
		t.Errorf("expected distance %f, got %f", want, cam.Distance)
	}
}

func TestOrbitKeepsDistance(t *testing.T) {
	target := r3.Vec{X: 8, Y: 8, Z: 8}
	cam := New(r3.Vec{X: 30, Y: 8, Z: 8}, target, 60)

	for i := 0; i < 20; i++ {
		cam.Orbit(0.3, 0.05)
		d := r3.Norm(r3.Sub(cam.CameraPosition(), target))
		if math.Abs(d-22) > 1e-9 {
			t.Fatalf("orbit changed distance to %f", d)
		}
	}
}

func TestOrbitPitchClamp(t *testing.T) {
	cam := New(r3.Vec{X: 10}, r3.Vec{}, 60)

	cam.Orbit(0, 10)
	if cam.Pitch > maxPitch {
		t.Errorf("pitch %f exceeds %f", cam.Pitch, maxPitch)
	}
	cam.Orbit(0, -20)
	if cam.Pitch < -maxPitch {
		t.Errorf("pitch %f below %f", cam.Pitch, -maxPitch)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(r3.Vec{X: 10}, r3.Vec{}, 60)
	cam.MinDist = 2
	cam.MaxDist = 50

	cam.ZoomBy(100)
	if cam.Distance != 2 {
		t.Errorf("expected distance clamped to 2, got %f", cam.Distance)
	}

	cam.ZoomBy(0.001)
	if cam.Distance != 50 {
		t.Errorf("expected distance clamped to 50, got %f", cam.Distance)
	}

	cam.ZoomBy(0)
	if cam.Distance != 50 {
		t.Errorf("zero factor must be ignored, got %f", cam.Distance)
	}
}

func TestPanMovesTargetAndEye(t *testing.T) {
	cam := New(r3.Vec{X: 10}, r3.Vec{}, 60)
	before := cam.CameraPosition()

	cam.Pan(3, 0)

	moved := r3.Sub(cam.CameraPosition(), before)
	if math.Abs(r3.Norm(moved)-3) > 1e-9 {
		t.Errorf("expected eye to move 3 units, moved %f", r3.Norm(moved))
	}
	if math.Abs(r3.Norm(cam.Target)-3) > 1e-9 {
		t.Errorf("expected target to move 3 units, got %v", cam.Target)
	}
	// Panning sideways keeps height.
	if math.Abs(moved.Z) > 1e-9 {
		t.Errorf("horizontal pan changed height by %f", moved.Z)
	}
}

func TestReset(t *testing.T) {
	home := r3.Vec{X: 15, Y: 15, Z: 10}
	cam := New(home, r3.Vec{}, 60)
	cam.Orbit(1.2, 0.4)
	cam.ZoomBy(2)
	cam.Pan(5, 5)

	cam.Reset()

	if got := cam.CameraPosition(); !near(got, home, 1e-9) {
		t.Errorf("expected position %v after reset, got %v", home, got)
	}
	if cam.Target != (r3.Vec{}) {
		t.Errorf("expected target restored, got %v", cam.Target)
	}
}
