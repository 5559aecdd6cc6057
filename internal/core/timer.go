package core

import "time"

// FixedStep paces preview updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	fs := &FixedStep{}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the duration of one tick.
func (f *FixedStep) Step() time.Duration { return f.step }

// ShouldStep reports whether the preview should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	return f.advance(time.Now())
}

func (f *FixedStep) advance(now time.Time) bool {
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

// Clock is the animation time fed to the shaders as Frame.Time. It advances
// by a fixed amount per tick so renders are reproducible regardless of the
// wall clock.
type Clock struct {
	Time  float32
	Speed float32
	tick  float32
}

// NewClock returns a clock advancing speed seconds of shader time per second
// at the given tick rate.
func NewClock(tps int, speed float32) *Clock {
	if tps <= 0 {
		tps = 60
	}
	return &Clock{Speed: speed, tick: 1 / float32(tps)}
}

// Tick advances the clock by one tick.
func (c *Clock) Tick() { c.Time += c.tick * c.Speed }

// Set jumps to t.
func (c *Clock) Set(t float32) { c.Time = t }
