package renderer

import "github.com/pthm-cable/fog/systems"

// Headless is a GPU-free scene for batch runs. Every asset loads successfully
// unless listed in Missing.
type Headless struct {
	elementStore

	// Missing lists asset refs whose loads fail.
	Missing map[string]bool
	// LoadsPerFrame caps how many creations Service resolves (0 = all).
	LoadsPerFrame int
}

var _ systems.Scene = (*Headless)(nil)
var _ systems.CreationCanceler = (*Headless)(nil)

// NewHeadless creates an empty headless scene.
func NewHeadless(loadsPerFrame int) *Headless {
	return &Headless{
		elementStore:  newElementStore(),
		Missing:       make(map[string]bool),
		LoadsPerFrame: loadsPerFrame,
	}
}

// Service resolves queued creations. Returns how many were processed.
func (h *Headless) Service() int {
	return h.service(h.LoadsPerFrame, func(asset string) bool {
		return !h.Missing[asset]
	})
}

// VisibleCount returns the number of visible elements.
func (h *Headless) VisibleCount() int {
	n := 0
	for _, e := range h.elements {
		if e.Visible {
			n++
		}
	}
	return n
}
