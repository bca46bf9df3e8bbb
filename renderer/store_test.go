package renderer

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/fog/components"
	"github.com/pthm-cable/fog/systems"
)

func request(asset string, x float64) systems.ElementRequest {
	return systems.ElementRequest{Asset: asset, Scale: 4, Position: r3.Vec{X: x}}
}

func TestServiceResolvesFutures(t *testing.T) {
	h := NewHeadless(0)
	f1 := h.CreateElementAsync(request("cube", 1))
	f2 := h.CreateElementAsync(request("cube", 2))

	select {
	case <-f1:
		t.Fatal("future resolved before Service")
	default:
	}

	if n := h.Service(); n != 2 {
		t.Fatalf("expected 2 processed, got %d", n)
	}

	id1, ok1 := <-f1
	id2, ok2 := <-f2
	if !ok1 || !ok2 {
		t.Fatal("expected both futures to carry an id")
	}
	if id1 == id2 {
		t.Errorf("expected distinct ids, both %d", id1)
	}

	e, ok := h.Element(id2)
	if !ok {
		t.Fatalf("element %d missing", id2)
	}
	if e.Position.X != 2 || e.Scale != 4 || !e.Visible {
		t.Errorf("unexpected element record %+v", e)
	}
	if h.Queued() != 0 {
		t.Errorf("expected empty queue, got %d", h.Queued())
	}
}

func TestServiceBudget(t *testing.T) {
	h := NewHeadless(2)
	for i := 0; i < 5; i++ {
		h.CreateElementAsync(request("cube", float64(i)))
	}

	want := []int{2, 2, 1, 0}
	for frame, w := range want {
		if n := h.Service(); n != w {
			t.Errorf("frame %d: expected %d processed, got %d", frame, w, n)
		}
	}
	if h.Len() != 5 {
		t.Errorf("expected 5 elements, got %d", h.Len())
	}
}

func TestServicePreservesOrder(t *testing.T) {
	h := NewHeadless(1)
	futures := make([]<-chan components.ElementID, 3)
	for i := range futures {
		futures[i] = h.CreateElementAsync(request("cube", float64(i)))
	}

	for i := range futures {
		h.Service()
		id := <-futures[i]
		e, _ := h.Element(id)
		if e.Position.X != float64(i) {
			t.Errorf("request %d resolved out of order (x=%f)", i, e.Position.X)
		}
	}
}

func TestFailedLoadClosesFuture(t *testing.T) {
	h := NewHeadless(0)
	h.Missing["missing.obj"] = true

	f := h.CreateElementAsync(request("missing.obj", 0))
	h.Service()

	if id, ok := <-f; ok {
		t.Errorf("expected closed future, got id %d", id)
	}
	if h.Len() != 0 {
		t.Errorf("failed load created %d elements", h.Len())
	}
}

func TestDestroyIdempotent(t *testing.T) {
	h := NewHeadless(0)
	f := h.CreateElementAsync(request("cube", 0))
	h.Service()
	id := <-f

	h.DestroyElement(id)
	h.DestroyElement(id)
	h.DestroyElement(id + 100)

	if h.Len() != 0 {
		t.Errorf("expected no elements, got %d", h.Len())
	}
	// Mutators on a destroyed element are ignored.
	h.SetPosition(id, r3.Vec{X: 9})
	h.SetVisible(id, true)
	if _, ok := h.Element(id); ok {
		t.Error("destroyed element came back")
	}
}

func TestFinalizeOnce(t *testing.T) {
	h := NewHeadless(0)
	f := h.CreateElementAsync(request("cube", 0))
	h.Service()
	id := <-f

	first := components.Finish{TexRepeats: 1, Shininess: 100}
	second := components.Finish{TexRepeats: 8, Shininess: 5}
	h.FinalizeElement(id, first)
	h.FinalizeElement(id, second)

	e, _ := h.Element(id)
	if !e.Finalized {
		t.Fatal("expected element finalized")
	}
	if e.Finish != first {
		t.Errorf("expected first finish %+v kept, got %+v", first, e.Finish)
	}
}

func TestVisibleCount(t *testing.T) {
	h := NewHeadless(0)
	var ids []components.ElementID
	for i := 0; i < 3; i++ {
		f := h.CreateElementAsync(request("cube", float64(i)))
		h.Service()
		ids = append(ids, <-f)
	}

	h.SetVisible(ids[1], false)
	h.SetTranslucency(ids[0], components.Tint{R: 0.5, G: 0.5, B: 0.5, A: 0.9})

	if got := h.VisibleCount(); got != 2 {
		t.Errorf("expected 2 visible, got %d", got)
	}
	e, _ := h.Element(ids[0])
	if e.Tint.A != 0.9 {
		t.Errorf("expected alpha 0.9, got %f", e.Tint.A)
	}
}

// The headless scene drives the grid end to end.
func TestHeadlessWithGrid(t *testing.T) {
	h := NewHeadless(0)
	opts := systems.DefaultOptions()
	params := systems.Params{
		Length: 2, Width: 2, Depth: 2,
		CellScale: 1, Frequency: 0.15, DisplacementFraction: 0.04,
		AlphaMin: 0.95, AlphaMax: 1,
	}
	grid := systems.NewVolumetricGrid(h, nil, opts, params)

	if h.Queued() != 8 {
		t.Fatalf("expected 8 queued creations, got %d", h.Queued())
	}
	h.Service()
	grid.Update()

	if grid.Len() != 8 {
		t.Errorf("expected 8 live cells, got %d", grid.Len())
	}
	if h.VisibleCount() != 8 {
		t.Errorf("expected 8 visible elements, got %d", h.VisibleCount())
	}

	grid.Close()
	if h.Len() != 0 {
		t.Errorf("expected all elements released, got %d", h.Len())
	}
}

func TestCancelDropsQueued(t *testing.T) {
	h := NewHeadless(0)
	f1 := h.CreateElementAsync(request("cube", 1))
	f2 := h.CreateElementAsync(request("cube", 2))
	f3 := h.CreateElementAsync(request("cube", 3))

	if n := h.CancelElementsAsync([]<-chan components.ElementID{f1, f3}); n != 2 {
		t.Fatalf("expected 2 canceled, got %d", n)
	}
	if h.Queued() != 1 {
		t.Errorf("expected 1 queued creation, got %d", h.Queued())
	}
	for _, f := range []<-chan components.ElementID{f1, f3} {
		if _, ok := <-f; ok {
			t.Error("expected canceled future closed without a value")
		}
	}

	if n := h.Service(); n != 1 {
		t.Errorf("expected 1 processed, got %d", n)
	}
	if _, ok := <-f2; !ok {
		t.Error("expected surviving future resolved")
	}
	if h.Len() != 1 {
		t.Errorf("expected 1 element, got %d", h.Len())
	}
}

func TestCancelIgnoresResolved(t *testing.T) {
	h := NewHeadless(0)
	f := h.CreateElementAsync(request("cube", 1))
	h.Service()

	if n := h.CancelElementsAsync([]<-chan components.ElementID{f}); n != 0 {
		t.Errorf("expected nothing canceled, got %d", n)
	}
	if _, ok := <-f; !ok {
		t.Error("expected resolved future to keep its id")
	}
}

// A rebuild before the first load never loads the superseded population.
func TestRebuildSkipsSupersededLoads(t *testing.T) {
	h := NewHeadless(0)
	params := systems.Params{
		Length: 2, Width: 2, Depth: 2,
		CellScale: 1, Frequency: 0.15, DisplacementFraction: 0.04,
		AlphaMin: 0.95, AlphaMax: 1,
	}
	grid := systems.NewVolumetricGrid(h, nil, systems.DefaultOptions(), params)

	params.Depth = 1
	if !grid.Reconfigure(params) {
		t.Fatal("expected rebuild")
	}
	if h.Queued() != 4 {
		t.Fatalf("expected only the 4 new creations queued, got %d", h.Queued())
	}

	if n := h.Service(); n != 4 {
		t.Errorf("expected 4 loads, got %d", n)
	}
	grid.Update()

	if grid.Len() != 4 || h.Len() != 4 {
		t.Errorf("expected 4 cells and 4 elements, got %d and %d", grid.Len(), h.Len())
	}
	if grid.Pending() != 0 {
		t.Errorf("expected canceled creations cleared, %d pending", grid.Pending())
	}

	grid.Close()
	if h.Queued() != 0 || h.Len() != 0 {
		t.Errorf("expected nothing left after close, queued=%d elements=%d", h.Queued(), h.Len())
	}
}

func TestCloseCancelsQueued(t *testing.T) {
	h := NewHeadless(0)
	params := systems.Params{
		Length: 3, Width: 1, Depth: 1,
		CellScale: 1, Frequency: 0.15, DisplacementFraction: 0.04,
		AlphaMin: 0.95, AlphaMax: 1,
	}
	grid := systems.NewVolumetricGrid(h, nil, systems.DefaultOptions(), params)
	grid.Close()

	if h.Queued() != 0 {
		t.Errorf("expected queue emptied by close, got %d", h.Queued())
	}
	if grid.Pending() != 0 {
		t.Errorf("expected no pending creations, got %d", grid.Pending())
	}
	if h.Service() != 0 || h.Len() != 0 {
		t.Error("expected no loads after close")
	}
}
