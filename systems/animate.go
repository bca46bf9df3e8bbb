package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Update advances the animation by one fixed time step and repositions and
// re-tints every visible cell. Completed creations are applied first so a
// cell is never animated before its origin is recorded.
func (g *VolumetricGrid) Update() {
	g.Drain()

	g.time += g.opts.TimeStep

	maxDisplacement := g.spacing * g.params.DisplacementFraction
	easedTime := math.Sin(g.time)

	// One camera sample per frame keeps depth cueing consistent across cells.
	var cameraPos r3.Vec
	if g.camera != nil {
		cameraPos = g.camera.CameraPosition()
	}

	query := g.cellFilter.Query()
	for query.Next() {
		origin, pos, elem, vis, tint, _ := query.Get()
		if !vis.Visible {
			continue
		}

		pos.Vec = displace(g.opts.Noise, origin.Vec, g.params.Frequency, easedTime, maxDisplacement)
		g.scene.SetPosition(elem.ID, pos.Vec)

		tint.A = float32(cellAlpha(g.opts.Noise, g.params, g.opts.DepthCueFalloff, g.time, origin.Vec, pos.Vec, cameraPos))
		g.scene.SetTranslucency(elem.ID, *tint)
	}
}

// displace offsets origin along each axis by noise scaled to maxDisplacement.
// Each axis offset is bounded by maxDisplacement and depends only on the
// origin and the eased time, so cells never drift.
func displace(noise Noise1D, origin r3.Vec, frequency, easedTime, maxDisplacement float64) r3.Vec {
	return r3.Vec{
		X: origin.X + maxDisplacement*noise.Sample(frequency*(easedTime+origin.X)),
		Y: origin.Y + maxDisplacement*noise.Sample(frequency*(easedTime+origin.Y)),
		Z: origin.Z + maxDisplacement*noise.Sample(frequency*(easedTime+origin.Z)),
	}
}

// cellAlpha interpolates between the alpha bounds with noise and fades with
// camera distance.
func cellAlpha(noise Noise1D, p Params, falloff, t float64, origin, pos, camera r3.Vec) float64 {
	distance := r3.Norm(r3.Sub(pos, camera))
	depthCue := 1 / (1 + falloff*distance)

	n := noise.Sample(p.Frequency * (t + origin.X + origin.Y + origin.Z))
	alpha := lerp(p.AlphaMin, p.AlphaMax, blendFactor(n))

	return alpha * math.Min(1, depthCue)
}

// blendFactor maps a noise sample in [-1, 1] onto [0, 1].
func blendFactor(n float64) float64 {
	f := (n + 1) / 2
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func lerp(start, end, t float64) float64 {
	return start + t*(end-start)
}
