package systems

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/fog/components"
)

// fakeRequest is one recorded creation request and its unresolved future.
type fakeRequest struct {
	req      ElementRequest
	future   chan components.ElementID
	resolved bool
}

// fakeScene records every collaborator call. Creations resolve only when the
// test says so, which lets tests interleave completions with rebuilds.
type fakeScene struct {
	nextID    components.ElementID
	requests  []*fakeRequest
	destroyed map[components.ElementID]int
	visible   map[components.ElementID]bool
	positions map[components.ElementID]r3.Vec
	tints     map[components.ElementID]components.Tint
	finishes  map[components.ElementID]components.Finish

	setPositionCalls int
	setTintCalls     int
}

func newFakeScene() *fakeScene {
	return &fakeScene{
		destroyed: make(map[components.ElementID]int),
		visible:   make(map[components.ElementID]bool),
		positions: make(map[components.ElementID]r3.Vec),
		tints:     make(map[components.ElementID]components.Tint),
		finishes:  make(map[components.ElementID]components.Finish),
	}
}

func (s *fakeScene) CreateElementAsync(req ElementRequest) <-chan components.ElementID {
	r := &fakeRequest{req: req, future: make(chan components.ElementID, 1)}
	s.requests = append(s.requests, r)
	return r.future
}

func (s *fakeScene) DestroyElement(id components.ElementID) {
	s.destroyed[id]++
	delete(s.visible, id)
}

func (s *fakeScene) SetPosition(id components.ElementID, pos r3.Vec) {
	s.setPositionCalls++
	s.positions[id] = pos
}

func (s *fakeScene) SetVisible(id components.ElementID, visible bool) {
	s.visible[id] = visible
}

func (s *fakeScene) SetTranslucency(id components.ElementID, tint components.Tint) {
	s.setTintCalls++
	s.tints[id] = tint
}

func (s *fakeScene) FinalizeElement(id components.ElementID, finish components.Finish) {
	s.finishes[id] = finish
}

// complete resolves request i with a fresh element handle.
func (s *fakeScene) complete(i int) components.ElementID {
	r := s.requests[i]
	if r.resolved {
		panic("request already resolved")
	}
	s.nextID++
	id := s.nextID
	s.visible[id] = true
	r.future <- id
	r.resolved = true
	return id
}

// fail closes request i without a value.
func (s *fakeScene) fail(i int) {
	r := s.requests[i]
	close(r.future)
	r.resolved = true
}

// completeAll resolves every outstanding request.
func (s *fakeScene) completeAll() {
	for i, r := range s.requests {
		if !r.resolved {
			s.complete(i)
		}
	}
}

func (s *fakeScene) totalDestroyed() int {
	n := 0
	for _, c := range s.destroyed {
		n += c
	}
	return n
}

// fakeCamera is a fixed camera that counts how often it is queried.
type fakeCamera struct {
	pos   r3.Vec
	calls int
}

func (c *fakeCamera) CameraPosition() r3.Vec {
	c.calls++
	return c.pos
}
