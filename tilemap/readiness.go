package tilemap

import "sync"

// Gate is a one-shot latch. Opening it more than once is a no-op.
type Gate struct {
	once sync.Once
	ch   chan struct{}
}

func NewGate() *Gate {
	return &Gate{ch: make(chan struct{})}
}

func (g *Gate) Open() {
	g.once.Do(func() { close(g.ch) })
}

func (g *Gate) IsOpen() bool {
	select {
	case <-g.ch:
		return true
	default:
		return false
	}
}

func (g *Gate) Done() <-chan struct{} {
	return g.ch
}

// Readiness is the two-part load gate of a level: the map structure is parsed
// (JSON) and every tileset image is available (Images). Done is closed exactly
// once, when both are open.
type Readiness struct {
	JSON   *Gate
	Images *Gate
	both   *Gate
}

func NewReadiness() *Readiness {
	return &Readiness{
		JSON:   NewGate(),
		Images: NewGate(),
		both:   NewGate(),
	}
}

func (r *Readiness) MarkJSON() {
	r.JSON.Open()
	r.settle()
}

func (r *Readiness) MarkImages() {
	r.Images.Open()
	r.settle()
}

func (r *Readiness) Ready() bool {
	return r.both.IsOpen()
}

func (r *Readiness) Done() <-chan struct{} {
	return r.both.Done()
}

func (r *Readiness) settle() {
	if r.JSON.IsOpen() && r.Images.IsOpen() {
		r.both.Open()
	}
}
