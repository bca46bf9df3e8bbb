package systems

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/fog/components"
	"github.com/pthm-cable/fog/config"
)

// Scene is the rendering collaborator that owns the visual side of each cell.
// All calls happen on the render thread.
type Scene interface {
	// CreateElementAsync requests a new element. The returned future yields the
	// element handle once loading completes, or is closed without a value if the
	// load failed. It must be buffered so resolving it never blocks.
	CreateElementAsync(req ElementRequest) <-chan components.ElementID
	// DestroyElement removes the element from the scene. Idempotent.
	DestroyElement(id components.ElementID)
	SetPosition(id components.ElementID, pos r3.Vec)
	SetVisible(id components.ElementID, visible bool)
	SetTranslucency(id components.ElementID, tint components.Tint)
	FinalizeElement(id components.ElementID, finish components.Finish)
}

// CameraSource reports the viewer position used for depth cueing.
type CameraSource interface {
	CameraPosition() r3.Vec
}

// CreationCanceler is implemented by scenes that can drop creations which have
// not started loading. Dropped futures are closed without a value.
type CreationCanceler interface {
	CancelElementsAsync(futures []<-chan components.ElementID) int
}

// ElementRequest describes one asynchronous element creation.
type ElementRequest struct {
	Asset    string
	Scale    float64
	Position r3.Vec
}

// Options holds the fixed (non-reconfigurable) grid settings.
type Options struct {
	BaseCellSize    float64
	TimeStep        float64
	DepthCueFalloff float64
	FogTint         [3]float32
	Asset           string
	Finish          components.Finish
	Noise           Noise1D
	Logger          *slog.Logger
}

// DefaultOptions returns the stock fog look: 4-unit cubes, grey tint, shiny finish.
func DefaultOptions() Options {
	return Options{
		BaseCellSize:    4.0,
		TimeStep:        0.07,
		DepthCueFalloff: 0.1,
		FogTint:         [3]float32{0.5, 0.5, 0.5},
		Asset:           "cube",
		Finish: components.Finish{
			TexRepeats: 1,
			Specular:   components.Tint{R: 1, G: 1, B: 1, A: 1},
			Shininess:  100,
		},
		Noise: ValueNoise{},
	}
}

// OptionsFromConfig builds grid options and initial parameters from the loaded config.
func OptionsFromConfig(cfg *config.Config) (Options, Params, error) {
	noise, err := NewNoise(cfg.Noise)
	if err != nil {
		return Options{}, Params{}, err
	}
	a := cfg.Animation
	c := cfg.Cell
	opts := Options{
		BaseCellSize:    cfg.Grid.BaseCellSize,
		TimeStep:        a.TimeStep,
		DepthCueFalloff: a.DepthCueFalloff,
		FogTint:         [3]float32{float32(a.FogTint[0]), float32(a.FogTint[1]), float32(a.FogTint[2])},
		Asset:           c.Asset,
		Finish: components.Finish{
			TexRepeats: float32(c.TexRepeats),
			Specular: components.Tint{
				R: float32(c.Specular[0]), G: float32(c.Specular[1]),
				B: float32(c.Specular[2]), A: float32(c.Specular[3]),
			},
			Shininess: float32(c.Shininess),
		},
		Noise: noise,
	}
	params := Params{
		Length:               cfg.Grid.Length,
		Width:                cfg.Grid.Width,
		Depth:                cfg.Grid.Depth,
		CellScale:            cfg.Grid.CellScale,
		Gap:                  cfg.Grid.Gap,
		Frequency:            a.Frequency,
		DisplacementFraction: a.DisplacementFraction,
		AlphaMin:             a.AlphaMin,
		AlphaMax:             a.AlphaMax,
	}
	return opts, params, nil
}

// pendingCell is a creation request that has not completed yet.
type pendingCell struct {
	generation uint32
	origin     r3.Vec
	future     <-chan components.ElementID
}

// VolumetricGrid owns a lattice of translucent cells animated by a noise field.
// It is not safe for concurrent use; Update, Reconfigure and the accessors must
// all run on the render thread.
type VolumetricGrid struct {
	scene  Scene
	camera CameraSource
	opts   Options
	logger *slog.Logger

	params  Params
	spacing float64

	world      *ecs.World
	cellMapper *ecs.Map6[
		components.Origin,
		components.Position,
		components.Element,
		components.Visibility,
		components.Tint,
		components.Generation,
	]
	cellFilter *ecs.Filter6[
		components.Origin,
		components.Position,
		components.Element,
		components.Visibility,
		components.Tint,
		components.Generation,
	]
	originMap *ecs.Map[components.Origin]
	posMap    *ecs.Map[components.Position]
	elemMap   *ecs.Map[components.Element]
	visMap    *ecs.Map[components.Visibility]
	tintMap   *ecs.Map[components.Tint]

	pending    []pendingCell
	live       int
	hidden     int
	generation uint32
	rebuilds   int
	time       float64
	closed     bool
}

// NewVolumetricGrid creates the grid and requests its full initial population.
// Parameters come from trusted configuration and are not validated.
func NewVolumetricGrid(scene Scene, camera CameraSource, opts Options, params Params) *VolumetricGrid {
	if opts.Noise == nil {
		opts.Noise = ValueNoise{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	world := ecs.NewWorld()
	g := &VolumetricGrid{
		scene:  scene,
		camera: camera,
		opts:   opts,
		logger: logger,
		params: params,
		world:  world,
		cellMapper: ecs.NewMap6[
			components.Origin,
			components.Position,
			components.Element,
			components.Visibility,
			components.Tint,
			components.Generation,
		](world),
		cellFilter: ecs.NewFilter6[
			components.Origin,
			components.Position,
			components.Element,
			components.Visibility,
			components.Tint,
			components.Generation,
		](world),
		originMap: ecs.NewMap[components.Origin](world),
		posMap:    ecs.NewMap[components.Position](world),
		elemMap:   ecs.NewMap[components.Element](world),
		visMap:    ecs.NewMap[components.Visibility](world),
		tintMap:   ecs.NewMap[components.Tint](world),
	}
	g.spacing = params.Spacing(opts.BaseCellSize)

	g.build()

	g.logger.Info("volumetric grid created",
		"length", params.Length,
		"width", params.Width,
		"depth", params.Depth,
		"spacing", g.spacing,
		"requested", len(g.pending),
	)
	return g
}

// build requests one cell per lattice point under a fresh generation.
func (g *VolumetricGrid) build() {
	g.generation++
	p := g.params
	s := g.spacing

	for i := 0; i < p.Length; i++ {
		for j := 0; j < p.Width; j++ {
			for k := 0; k < p.Depth; k++ {
				origin := r3.Vec{X: float64(i) * s, Y: float64(j) * s, Z: float64(k) * s}
				future := g.scene.CreateElementAsync(ElementRequest{
					Asset:    g.opts.Asset,
					Scale:    p.CellScale,
					Position: origin,
				})
				if future == nil {
					g.logger.Debug("cell creation rejected", "origin", origin)
					continue
				}
				g.pending = append(g.pending, pendingCell{
					generation: g.generation,
					origin:     origin,
					future:     future,
				})
			}
		}
	}
}

// teardown hides and releases every tracked cell.
// Pending creations are untouched; the caller cancels them and bumps the
// generation so any that still resolve are discarded.
func (g *VolumetricGrid) teardown() {
	var toRemove []ecs.Entity
	query := g.cellFilter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}

	for _, e := range toRemove {
		elem := g.elemMap.Get(e)
		g.scene.SetVisible(elem.ID, false)
		g.scene.DestroyElement(elem.ID)
		g.world.RemoveEntity(e)
	}
	g.live = 0
	g.hidden = 0
}

// Drain applies every completed creation. Update calls it first; call it
// directly on frames where the animation is paused.
func (g *VolumetricGrid) Drain() {
	kept := g.pending[:0]
	for _, p := range g.pending {
		select {
		case id, ok := <-p.future:
			if !ok {
				if g.closed || p.generation != g.generation {
					g.logger.Debug("stale cell creation canceled", "origin", p.origin, "generation", p.generation)
				} else {
					g.logger.Debug("cell load failed", "origin", p.origin, "generation", p.generation)
				}
				continue
			}
			if g.closed || p.generation != g.generation {
				// Superseded: release the element so the scene keeps no orphan.
				g.scene.DestroyElement(id)
				g.logger.Debug("stale cell completion dropped",
					"element", id,
					"generation", p.generation,
					"current", g.generation,
				)
				continue
			}
			g.activate(id, p.origin)
		default:
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(g.pending); i++ {
		g.pending[i] = pendingCell{}
	}
	g.pending = kept
}

// activate finalizes a loaded element and starts tracking it.
func (g *VolumetricGrid) activate(id components.ElementID, origin r3.Vec) {
	g.scene.FinalizeElement(id, g.opts.Finish)

	tint := components.Tint{
		R: g.opts.FogTint[0],
		G: g.opts.FogTint[1],
		B: g.opts.FogTint[2],
		A: float32(g.params.AlphaMax),
	}
	g.cellMapper.NewEntity(
		&components.Origin{Vec: origin},
		&components.Position{Vec: origin},
		&components.Element{ID: id},
		&components.Visibility{Visible: true},
		&tint,
		&components.Generation{Value: g.generation},
	)
	g.live++
}

// Hide moves an Active cell to Hidden. It stays tracked but is no longer animated.
// Returns false if the cell is not tracked or already hidden.
func (g *VolumetricGrid) Hide(cell ecs.Entity) bool {
	if !g.world.Alive(cell) || !g.visMap.Has(cell) {
		return false
	}
	vis := g.visMap.Get(cell)
	if !vis.Visible {
		return false
	}
	vis.Visible = false
	g.hidden++
	g.scene.SetVisible(g.elemMap.Get(cell).ID, false)
	return true
}

// Rebuild tears down and recreates the population with the current parameters.
func (g *VolumetricGrid) Rebuild() {
	g.teardown()
	g.cancelPending()
	g.build()
	g.rebuilds++
	g.logger.Info("volumetric grid rebuilt",
		"generation", g.generation,
		"requested", g.params.Count(),
		"spacing", g.spacing,
	)
}

// Close releases every tracked cell and invalidates in-flight creations.
// Completions that arrive later are destroyed by Drain.
func (g *VolumetricGrid) Close() {
	if g.closed {
		return
	}
	g.teardown()
	g.cancelPending()
	g.generation++
	g.closed = true
	g.Drain()
}

// cancelPending asks the scene to drop every creation that has not loaded.
// The closed futures are cleared by the next Drain.
func (g *VolumetricGrid) cancelPending() {
	canceler, ok := g.scene.(CreationCanceler)
	if !ok || len(g.pending) == 0 {
		return
	}
	futures := make([]<-chan components.ElementID, len(g.pending))
	for i, p := range g.pending {
		futures[i] = p.future
	}
	if n := canceler.CancelElementsAsync(futures); n > 0 {
		g.logger.Debug("pending cell creations canceled", "count", n, "generation", g.generation)
	}
}

// Params returns a snapshot of the current parameters.
func (g *VolumetricGrid) Params() Params {
	return g.params
}

// Spacing returns the center-to-center distance for the current parameters.
func (g *VolumetricGrid) Spacing() float64 {
	return g.spacing
}

// Generation returns the tag of the current population build.
func (g *VolumetricGrid) Generation() uint32 {
	return g.generation
}

// Rebuilds returns how many times the population was rebuilt after construction.
func (g *VolumetricGrid) Rebuilds() int {
	return g.rebuilds
}

// Time returns the animation time accumulator.
func (g *VolumetricGrid) Time() float64 {
	return g.time
}

// Len returns the number of tracked (Active or Hidden) cells.
func (g *VolumetricGrid) Len() int {
	return g.live
}

// Hidden returns the number of tracked cells that are hidden.
func (g *VolumetricGrid) Hidden() int {
	return g.hidden
}

// Pending returns the number of creation requests not yet resolved,
// including superseded ones awaiting release.
func (g *VolumetricGrid) Pending() int {
	return len(g.pending)
}

// Cells returns the handles of all tracked cells.
func (g *VolumetricGrid) Cells() []ecs.Entity {
	cells := make([]ecs.Entity, 0, g.live)
	query := g.cellFilter.Query()
	for query.Next() {
		cells = append(cells, query.Entity())
	}
	return cells
}

// State returns the lifecycle state of a tracked cell handle.
// Handles that are no longer tracked report StateRemoved.
func (g *VolumetricGrid) State(cell ecs.Entity) components.CellState {
	if !g.world.Alive(cell) || !g.visMap.Has(cell) {
		return components.StateRemoved
	}
	if g.visMap.Get(cell).Visible {
		return components.StateActive
	}
	return components.StateHidden
}

// Origin returns the rest position of a tracked cell.
func (g *VolumetricGrid) Origin(cell ecs.Entity) (r3.Vec, bool) {
	if !g.world.Alive(cell) || !g.originMap.Has(cell) {
		return r3.Vec{}, false
	}
	return g.originMap.Get(cell).Vec, true
}

// Position returns the displaced position of a tracked cell as of the last update.
func (g *VolumetricGrid) Position(cell ecs.Entity) (r3.Vec, bool) {
	if !g.world.Alive(cell) || !g.posMap.Has(cell) {
		return r3.Vec{}, false
	}
	return g.posMap.Get(cell).Vec, true
}

// Element returns the scene element backing a tracked cell.
func (g *VolumetricGrid) Element(cell ecs.Entity) (components.ElementID, bool) {
	if !g.world.Alive(cell) || !g.elemMap.Has(cell) {
		return 0, false
	}
	return g.elemMap.Get(cell).ID, true
}

// Alpha returns the translucency applied to a tracked cell by the last update.
func (g *VolumetricGrid) Alpha(cell ecs.Entity) (float32, bool) {
	if !g.world.Alive(cell) || !g.tintMap.Has(cell) {
		return 0, false
	}
	return g.tintMap.Get(cell).A, true
}

// CellView is a read-only copy of one tracked cell.
type CellView struct {
	Cell       ecs.Entity
	Element    components.ElementID
	Origin     r3.Vec
	Position   r3.Vec
	Alpha      float32
	Visible    bool
	Generation uint32
}

// Visit calls fn for every tracked cell. fn must not call back into the grid.
func (g *VolumetricGrid) Visit(fn func(c CellView)) {
	query := g.cellFilter.Query()
	for query.Next() {
		origin, pos, elem, vis, tint, gen := query.Get()
		fn(CellView{
			Cell:       query.Entity(),
			Element:    elem.ID,
			Origin:     origin.Vec,
			Position:   pos.Vec,
			Alpha:      tint.A,
			Visible:    vis.Visible,
			Generation: gen.Value,
		})
	}
}
