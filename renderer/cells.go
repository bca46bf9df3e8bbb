package renderer

import (
	"log/slog"
	"os"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/fog/camera"
	"github.com/pthm-cable/fog/components"
	"github.com/pthm-cable/fog/systems"
)

// AssetCube is the asset ref for the generated cube mesh.
const AssetCube = "cube"

// CellRenderer is the raylib-backed scene for fog cells.
// Creations are queued and resolved by Service on the render thread, a
// bounded number per frame, so large rebuilds stream in over several frames.
type CellRenderer struct {
	elementStore

	baseSize      float32
	loadsPerFrame int
	models        map[string]rl.Model
	failed        map[string]bool

	// Scratch buffer for depth sorting
	order []drawItem
}

type drawItem struct {
	e    *Element
	dist float64
}

var _ systems.Scene = (*CellRenderer)(nil)
var _ systems.CreationCanceler = (*CellRenderer)(nil)

// NewCellRenderer creates a renderer. baseSize is the edge length of the
// generated cube at scale 1. Must be used after the raylib window is created.
func NewCellRenderer(baseSize float32, loadsPerFrame int) *CellRenderer {
	return &CellRenderer{
		elementStore:  newElementStore(),
		baseSize:      baseSize,
		loadsPerFrame: loadsPerFrame,
		models:        make(map[string]rl.Model),
		failed:        make(map[string]bool),
	}
}

// Service loads queued assets and resolves their creation futures.
func (r *CellRenderer) Service() int {
	return r.service(r.loadsPerFrame, r.loadModel)
}

// loadModel ensures the model for asset is cached.
func (r *CellRenderer) loadModel(asset string) bool {
	if _, ok := r.models[asset]; ok {
		return true
	}
	if r.failed[asset] {
		return false
	}

	var model rl.Model
	if asset == AssetCube {
		mesh := rl.GenMeshCube(r.baseSize, r.baseSize, r.baseSize)
		model = rl.LoadModelFromMesh(mesh)
	} else {
		if _, err := os.Stat(asset); err != nil {
			slog.Warn("cell asset unavailable", "asset", asset, "error", err)
			r.failed[asset] = true
			return false
		}
		model = rl.LoadModel(asset)
	}
	if model.MeshCount == 0 {
		slog.Warn("cell asset has no meshes", "asset", asset)
		r.failed[asset] = true
		return false
	}

	r.models[asset] = model
	return true
}

// Draw renders visible elements back to front with alpha blending.
func (r *CellRenderer) Draw(cam *camera.Camera) {
	eye := cam.CameraPosition()

	r.order = r.order[:0]
	for _, e := range r.elements {
		if !e.Visible || e.Tint.A <= 0 {
			continue
		}
		r.order = append(r.order, drawItem{e: e, dist: r3.Norm(r3.Sub(e.Position, eye))})
	}
	sort.Slice(r.order, func(i, j int) bool {
		return r.order[i].dist > r.order[j].dist
	})

	rl.BeginMode3D(Camera3D(cam))
	rl.BeginBlendMode(rl.BlendAlpha)
	for _, item := range r.order {
		e := item.e
		model, ok := r.models[e.Asset]
		if !ok {
			continue
		}
		pos := toVector3(e.Position)
		rl.DrawModel(model, pos, e.Scale, tintColor(e.Tint))

		if e.Finalized && e.Finish.Specular.A > 0 {
			size := r.baseSize * e.Scale
			rl.DrawCubeWiresV(pos, rl.NewVector3(size, size, size), rimColor(e.Finish, e.Tint.A))
		}
	}
	rl.EndBlendMode()
	rl.EndMode3D()
}

// Unload frees all cached models.
func (r *CellRenderer) Unload() {
	for asset, model := range r.models {
		rl.UnloadModel(model)
		delete(r.models, asset)
	}
}

// Camera3D converts the orbit camera into a raylib camera.
func Camera3D(cam *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   toVector3(cam.CameraPosition()),
		Target:     toVector3(cam.Target),
		Up:         rl.NewVector3(0, 0, 1),
		Fovy:       cam.Fovy,
		Projection: rl.CameraPerspective,
	}
}

func toVector3(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func tintColor(t components.Tint) rl.Color {
	return rl.ColorFromNormalized(rl.NewVector4(t.R, t.G, t.B, t.A))
}

// rimColor is the specular highlight edge, faded with the cell and sharpened
// by shininess.
func rimColor(f components.Finish, alpha float32) rl.Color {
	strength := f.Shininess / 128
	if strength > 1 {
		strength = 1
	}
	s := f.Specular
	return rl.ColorFromNormalized(rl.NewVector4(s.R, s.G, s.B, s.A*alpha*strength*0.25))
}
