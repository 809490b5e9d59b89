package model

import "github.com/Faultbox/hero3d/pkg/math"

// unitOrUp normalizes v, falling back to +Y when v is degenerate.
func unitOrUp(v [3]float32) [3]float32 {
	n := math.V3(v)
	l := n.Length()
	if l < 0.0001 {
		return [3]float32{0, 1, 0}
	}
	return n.Scale(1 / l).Array()
}

func cross(a, b [3]float32) [3]float32 {
	return math.V3(a).Cross(math.V3(b)).Array()
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func length(v [3]float32) float32 {
	return math.V3(v).Length()
}
