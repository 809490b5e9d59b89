// Package motion eases rotation speed and glow intensity toward targets
// chosen from hover, tap and reduced-motion state.
package motion

import (
	gomath "math"
)

// Eased is a scalar that moves toward Target by a fixed fraction per step.
type Eased struct {
	Current float32
	Target  float32
}

// Step applies one first-order low-pass step.
func (e *Eased) Step(damping float32) {
	e.Current += (e.Target - e.Current) * damping
}

// StepN applies the equivalent of n steps, n need not be whole.
func (e *Eased) StepN(damping, n float32) {
	if n <= 0 {
		return
	}
	if n == 1 {
		e.Step(damping)
		return
	}
	e.Step(1 - float32(gomath.Pow(float64(1-damping), float64(n))))
}
