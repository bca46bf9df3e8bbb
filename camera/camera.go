// Package camera provides a 3D orbit camera for viewing the fog volume.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// maxPitch keeps the camera off the poles where the up vector degenerates.
const maxPitch = math.Pi/2 - 0.01

// Camera orbits a target point. The world is Z-up.
type Camera struct {
	// Target is the point the camera looks at
	Target r3.Vec

	// Spherical coordinates around the target
	Yaw, Pitch float64
	Distance   float64

	// Vertical field of view in degrees
	Fovy float32

	// Distance constraints
	MinDist, MaxDist float64

	home       r3.Vec
	homeTarget r3.Vec
}

// New creates a camera at home looking at target.
func New(home, target r3.Vec, fovy float32) *Camera {
	c := &Camera{
		Fovy:       fovy,
		MinDist:    1,
		MaxDist:    1000,
		home:       home,
		homeTarget: target,
	}
	c.Reset()
	return c
}

// Reset returns the camera to its home position and target.
func (c *Camera) Reset() {
	c.Target = c.homeTarget
	c.lookFrom(c.home)
}

// lookFrom places the camera at eye, keeping the current target.
func (c *Camera) lookFrom(eye r3.Vec) {
	d := r3.Sub(eye, c.Target)
	c.Distance = r3.Norm(d)
	if c.Distance == 0 {
		c.Yaw, c.Pitch = 0, 0
		return
	}
	c.Yaw = math.Atan2(d.Y, d.X)
	c.Pitch = math.Asin(d.Z / c.Distance)
}

// CameraPosition returns the eye position in world coordinates.
func (c *Camera) CameraPosition() r3.Vec {
	cp := math.Cos(c.Pitch)
	offset := r3.Vec{
		X: c.Distance * cp * math.Cos(c.Yaw),
		Y: c.Distance * cp * math.Sin(c.Yaw),
		Z: c.Distance * math.Sin(c.Pitch),
	}
	return r3.Add(c.Target, offset)
}

// Orbit rotates the camera around the target by the given angles in radians.
func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.Yaw = math.Mod(c.Yaw+dYaw, 2*math.Pi)
	c.Pitch = clamp(c.Pitch+dPitch, -maxPitch, maxPitch)
}

// Pan moves the target (and the camera with it) in the view plane.
// dx moves right, dy moves up, both in world units.
func (c *Camera) Pan(dx, dy float64) {
	forward := r3.Unit(r3.Sub(c.Target, c.CameraPosition()))
	right := r3.Unit(r3.Cross(forward, r3.Vec{Z: 1}))
	up := r3.Cross(right, forward)

	c.Target = r3.Add(c.Target, r3.Add(r3.Scale(dx, right), r3.Scale(dy, up)))
}

// SetDistance sets the orbit distance, clamped to min/max.
func (c *Camera) SetDistance(d float64) {
	c.Distance = clamp(d, c.MinDist, c.MaxDist)
}

// ZoomBy divides the distance by factor (factor > 1 moves closer).
func (c *Camera) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	c.SetDistance(c.Distance / factor)
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
