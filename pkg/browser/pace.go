package browser

import (
	"math/rand"
	"time"
)

// Pacer inserts randomized human-pacing delays between UI actions. Each delay
// is drawn uniformly from [min, max] and scaled by the speed factor, so the
// whole run can be sped up or slowed down with one knob.
type Pacer struct {
	min    time.Duration
	max    time.Duration
	factor float64

	rand  *rand.Rand
	sleep func(time.Duration)
}

// NewPacer builds a pacer over the [min, max] window with the given speed
// factor.
func NewPacer(min, max time.Duration, factor float64) *Pacer {
	return &Pacer{
		min:    min,
		max:    max,
		factor: factor,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:  time.Sleep,
	}
}

// Pause blocks for one sampled delay.
func (p *Pacer) Pause() {
	p.sleep(p.delay())
}

func (p *Pacer) delay() time.Duration {
	span := p.max - p.min
	d := p.min
	if span > 0 {
		d += time.Duration(p.rand.Int63n(int64(span) + 1))
	}
	return time.Duration(float64(d) * p.factor)
}
