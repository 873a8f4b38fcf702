package indicator

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats/scalar"
)

// DefaultEpsilon is the displacement and velocity below which the indicator
// is considered settled.
const DefaultEpsilon = 0.01

// Spring holds the parameters of a damped second-order system.
type Spring struct {
	Damping   float64
	Stiffness float64
	Mass      float64
}

// DefaultSpring is the tab bar's stock motion: damping 20, stiffness 120.
func DefaultSpring() Spring {
	return Spring{Damping: 20, Stiffness: 120, Mass: 1}
}

// CriticalDamping returns the damping coefficient at which the spring
// settles fastest without overshoot.
func (s Spring) CriticalDamping() float64 {
	return 2 * math.Sqrt(s.Stiffness*s.Mass)
}

// Ratio is the damping ratio; 1 is critical, below 1 oscillates.
func (s Spring) Ratio() float64 {
	return s.Damping / s.CriticalDamping()
}

func (s Spring) valid() bool {
	return s.Damping > 0 && s.Stiffness > 0 && s.Mass > 0
}

// Animator tracks a target position with spring motion. It is driven by
// Step from the host's frame callback and reports when it has settled so
// the host can stop scheduling frames.
type Animator struct {
	spring   Spring
	epsilon  float64
	position float64
	velocity float64
	target   float64
	settled  bool
}

// NewAnimator returns a settled animator at position 0. Invalid spring
// parameters fall back to DefaultSpring.
func NewAnimator(spring Spring, epsilon float64) *Animator {
	if !spring.valid() {
		spring = DefaultSpring()
	}
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	return &Animator{spring: spring, epsilon: epsilon, settled: true}
}

func (a *Animator) Position() float64 { return a.position }
func (a *Animator) Velocity() float64 { return a.velocity }
func (a *Animator) Target() float64   { return a.target }
func (a *Animator) Settled() bool     { return a.settled }
func (a *Animator) Spring() Spring    { return a.spring }

// SetTarget retargets the animation. Position and velocity carry over so
// an interrupted motion continues smoothly. It reports whether the
// animator needs frames.
func (a *Animator) SetTarget(x float64) bool {
	a.target = x
	a.settled = a.atRest()
	if a.settled {
		a.position = x
		a.velocity = 0
	}
	return !a.settled
}

// Jump moves the indicator to x immediately.
func (a *Animator) Jump(x float64) {
	a.position = x
	a.target = x
	a.velocity = 0
	a.settled = true
}

// Step advances the simulation by dt and reports whether the animator is
// settled afterwards.
func (a *Animator) Step(dt time.Duration) bool {
	if a.settled {
		return true
	}
	if dt > 0 {
		y, v := a.spring.advance(a.position-a.target, a.velocity, dt.Seconds())
		a.position = a.target + y
		a.velocity = v
	}
	if a.atRest() {
		a.position = a.target
		a.velocity = 0
		a.settled = true
	}
	return a.settled
}

func (a *Animator) atRest() bool {
	return scalar.EqualWithinAbs(a.position, a.target, a.epsilon) &&
		scalar.EqualWithinAbs(a.velocity, 0, a.epsilon)
}

// advance solves m*y'' + c*y' + k*y = 0 exactly over t seconds from
// displacement y0 and velocity v0.
func (s Spring) advance(y0, v0, t float64) (y, v float64) {
	w0 := math.Sqrt(s.Stiffness / s.Mass)
	zeta := s.Ratio()

	switch {
	case scalar.EqualWithinAbs(zeta, 1, 1e-9):
		b := v0 + w0*y0
		e := math.Exp(-w0 * t)
		return e * (y0 + b*t), e * (v0 - w0*b*t)
	case zeta < 1:
		decay := zeta * w0
		wd := w0 * math.Sqrt(1-zeta*zeta)
		b := (v0 + decay*y0) / wd
		e := math.Exp(-decay * t)
		cos, sin := math.Cos(wd*t), math.Sin(wd*t)
		return e * (y0*cos + b*sin), e * (v0*cos - (decay*b+y0*wd)*sin)
	default:
		root := math.Sqrt(zeta*zeta - 1)
		r1 := -w0 * (zeta - root)
		r2 := -w0 * (zeta + root)
		c1 := (v0 - r2*y0) / (r1 - r2)
		c2 := y0 - c1
		e1, e2 := math.Exp(r1*t), math.Exp(r2*t)
		return c1*e1 + c2*e2, c1*r1*e1 + c2*r2*e2
	}
}
