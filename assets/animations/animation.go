package animations

// Animation steps through the frames First..Last, holding each one for
// FrameSeconds of simulated time.
type Animation struct {
	First            int
	Last             int
	FrameSeconds     float64
	elapsed          float64
	frame            int
	Looped           bool
	FreezeOnComplete bool // If true, stay on last frame instead of looping
}

func (a *Animation) Update(dt float64) {
	if a.FrameSeconds <= 0 || dt <= 0 {
		return
	}
	a.elapsed += dt
	for a.elapsed >= a.FrameSeconds {
		a.elapsed -= a.FrameSeconds
		a.frame++
		if a.frame > a.Last {
			a.Looped = true
			if a.FreezeOnComplete {
				a.frame = a.Last
				a.elapsed = 0
				return
			}
			a.frame = a.First
		}
	}
}

func (a *Animation) Frame() int {
	return a.frame
}

func (a *Animation) Restart() {
	a.frame = a.First
	a.elapsed = 0
	a.Looped = false
}

func NewAnimation(first, last int, frameSeconds float64) *Animation {
	return &Animation{
		First:        first,
		Last:         last,
		FrameSeconds: frameSeconds,
		frame:        first,
	}
}
