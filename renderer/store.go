package renderer

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/fog/components"
	"github.com/pthm-cable/fog/systems"
)

// Element is the scene-side record of one cell.
type Element struct {
	Asset     string
	Scale     float32
	Position  r3.Vec
	Visible   bool
	Tint      components.Tint
	Finish    components.Finish
	Finalized bool
}

// loadRequest is a queued asynchronous creation.
type loadRequest struct {
	req    systems.ElementRequest
	future chan components.ElementID
}

// elementStore holds the scene elements and the creation queue shared by
// the raylib and headless scenes.
type elementStore struct {
	nextID   components.ElementID
	elements map[components.ElementID]*Element
	queue    []loadRequest
}

func newElementStore() elementStore {
	return elementStore{elements: make(map[components.ElementID]*Element)}
}

// CreateElementAsync queues a creation. The future is resolved by a later
// Service call on the render thread.
func (s *elementStore) CreateElementAsync(req systems.ElementRequest) <-chan components.ElementID {
	future := make(chan components.ElementID, 1)
	s.queue = append(s.queue, loadRequest{req: req, future: future})
	return future
}

// service resolves up to budget queued creations (0 = all). load reports
// whether the asset is available; a failed load closes the future.
func (s *elementStore) service(budget int, load func(asset string) bool) int {
	n := len(s.queue)
	if budget > 0 && budget < n {
		n = budget
	}

	for i := 0; i < n; i++ {
		r := s.queue[i]
		if !load(r.req.Asset) {
			close(r.future)
			continue
		}
		s.nextID++
		id := s.nextID
		s.elements[id] = &Element{
			Asset:    r.req.Asset,
			Scale:    float32(r.req.Scale),
			Position: r.req.Position,
			Visible:  true,
			Tint:     components.Tint{R: 1, G: 1, B: 1, A: 1},
		}
		r.future <- id
	}

	remaining := copy(s.queue, s.queue[n:])
	for i := remaining; i < len(s.queue); i++ {
		s.queue[i] = loadRequest{}
	}
	s.queue = s.queue[:remaining]
	return n
}

// CancelElementsAsync drops the queued creations for the given futures and
// closes them. Futures that already resolved are ignored. Returns how many
// creations were dropped.
func (s *elementStore) CancelElementsAsync(futures []<-chan components.ElementID) int {
	if len(s.queue) == 0 || len(futures) == 0 {
		return 0
	}
	drop := make(map[<-chan components.ElementID]bool, len(futures))
	for _, f := range futures {
		drop[f] = true
	}

	kept := s.queue[:0]
	for _, r := range s.queue {
		if drop[r.future] {
			close(r.future)
			continue
		}
		kept = append(kept, r)
	}
	n := len(s.queue) - len(kept)
	for i := len(kept); i < len(s.queue); i++ {
		s.queue[i] = loadRequest{}
	}
	s.queue = kept
	return n
}

// DestroyElement removes the element. Unknown ids are ignored.
func (s *elementStore) DestroyElement(id components.ElementID) {
	delete(s.elements, id)
}

func (s *elementStore) SetPosition(id components.ElementID, pos r3.Vec) {
	if e, ok := s.elements[id]; ok {
		e.Position = pos
	}
}

func (s *elementStore) SetVisible(id components.ElementID, visible bool) {
	if e, ok := s.elements[id]; ok {
		e.Visible = visible
	}
}

func (s *elementStore) SetTranslucency(id components.ElementID, tint components.Tint) {
	if e, ok := s.elements[id]; ok {
		e.Tint = tint
	}
}

// FinalizeElement applies the visual finish. Only the first call has effect.
func (s *elementStore) FinalizeElement(id components.ElementID, finish components.Finish) {
	e, ok := s.elements[id]
	if !ok || e.Finalized {
		return
	}
	e.Finish = finish
	e.Finalized = true
}

// Element returns a copy of the element record.
func (s *elementStore) Element(id components.ElementID) (Element, bool) {
	e, ok := s.elements[id]
	if !ok {
		return Element{}, false
	}
	return *e, true
}

// Len returns the number of live elements.
func (s *elementStore) Len() int {
	return len(s.elements)
}

// Queued returns the number of unresolved creations.
func (s *elementStore) Queued() int {
	return len(s.queue)
}
