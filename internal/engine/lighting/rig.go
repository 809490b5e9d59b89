// Package lighting provides the hero light rig and its shading model.
package lighting

import (
	gomath "math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/hero3d/internal/engine/model"
	"github.com/Faultbox/hero3d/pkg/math"
)

// Hemisphere blends a sky color from above with a ground color from below.
type Hemisphere struct {
	Sky       colorful.Color
	Ground    colorful.Color
	Intensity float32
}

// Directional is a light infinitely far away in the direction of Position.
type Directional struct {
	Color     colorful.Color
	Intensity float32
	Position  math.Vec3
}

// Direction returns the unit vector pointing from the scene toward the light.
func (d Directional) Direction() math.Vec3 {
	return d.Position.Normalize()
}

// Rig is the fixed set of lights in the hero scene.
type Rig struct {
	Hemisphere  Hemisphere
	Directional Directional
}

// DefaultRig returns the hero lighting: a cool hemisphere fill and a key
// light from the upper right front.
func DefaultRig() Rig {
	white, _ := colorful.Hex("#ffffff")
	ground, _ := colorful.Hex("#333344")
	return Rig{
		Hemisphere: Hemisphere{
			Sky:       white,
			Ground:    ground,
			Intensity: 0.8,
		},
		Directional: Directional{
			Color:     white,
			Intensity: 1.0,
			Position:  math.Vec3{X: 2, Y: 3, Z: 4},
		},
	}
}

// Shade returns the lit surface color for a world-space normal and the unit
// vector from the surface toward the eye. Components may exceed 1.
func (r Rig) Shade(normal, toEye math.Vec3, mat model.Material) colorful.Color {
	n := normal.Normalize()

	// Hemisphere irradiance
	w := float64(n.Y)*0.5 + 0.5
	hemi := r.Hemisphere.Ground.BlendRgb(r.Hemisphere.Sky, w)
	hi := float64(r.Hemisphere.Intensity)

	// Key light
	l := r.Directional.Direction()
	ndl := gomath.Max(0, float64(n.Dot(l)))
	di := float64(r.Directional.Intensity) * ndl

	metal := float64(mat.Metalness)
	albedo := mat.Color
	diffuse := 1 - metal

	out := colorful.Color{
		R: albedo.R * diffuse * (hemi.R*hi + r.Directional.Color.R*di),
		G: albedo.G * diffuse * (hemi.G*hi + r.Directional.Color.G*di),
		B: albedo.B * diffuse * (hemi.B*hi + r.Directional.Color.B*di),
	}

	// Blinn-Phong highlight, tighter as roughness drops
	if ndl > 0 {
		h := l.Add(toEye.Normalize()).Normalize()
		ndh := gomath.Max(0, float64(n.Dot(h)))
		rough := gomath.Max(0.05, float64(mat.Roughness))
		shininess := 2/(rough*rough*rough*rough) - 2
		if shininess > 256 {
			shininess = 256
		}
		spec := gomath.Pow(ndh, shininess) * di * (1 - rough)
		f0 := colorful.Color{R: 0.04, G: 0.04, B: 0.04}.BlendRgb(albedo, metal)
		out.R += f0.R * spec * r.Directional.Color.R
		out.G += f0.G * spec * r.Directional.Color.G
		out.B += f0.B * spec * r.Directional.Color.B
	}

	return out
}
