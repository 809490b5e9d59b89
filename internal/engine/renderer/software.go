// Package renderer rasterizes the hero scene on the CPU with fauxgl.
package renderer

import (
	"errors"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/Faultbox/hero3d/internal/engine/camera"
	"github.com/Faultbox/hero3d/internal/engine/debug"
	"github.com/Faultbox/hero3d/internal/engine/lighting"
	"github.com/Faultbox/hero3d/internal/engine/model"
	"github.com/Faultbox/hero3d/internal/engine/scene"
	"github.com/Faultbox/hero3d/internal/logger"
	"github.com/Faultbox/hero3d/pkg/math"
)

// ErrSurfaceLost is returned when Render is called without a sized surface.
var ErrSurfaceLost = errors.New("render surface lost")

// Options configures the software renderer.
type Options struct {
	// Backdrop is tiled over the background before the models are drawn.
	Backdrop image.Image
	// ShowBounds draws each model's world bounding box.
	ShowBounds  bool
	BoundsColor colorful.Color
}

// Software renders a scene into an NRGBA pixel buffer.
type Software struct {
	opts   Options
	ctx    *fauxgl.Context
	width  int
	height int
	meshes map[*model.Mesh]*fauxgl.Mesh
	log    *zap.Logger
}

// NewSoftware creates a renderer with no surface. Call SetSize before Render.
func NewSoftware(opts Options) *Software {
	if opts.BoundsColor == (colorful.Color{}) {
		opts.BoundsColor = colorful.Color{R: 0.2, G: 1, B: 0.4}
	}
	return &Software{
		opts:   opts,
		meshes: make(map[*model.Mesh]*fauxgl.Mesh),
		log:    logger.Named("renderer"),
	}
}

// SetSize recreates the drawing surface in device pixels. Unchanged sizes are a no-op.
func (r *Software) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if r.ctx != nil && width == r.width && height == r.height {
		return
	}
	r.ctx = fauxgl.NewContext(width, height)
	r.width, r.height = width, height
	r.log.Debug("surface resized", zap.Int("width", width), zap.Int("height", height))
}

// Size returns the surface size in device pixels.
func (r *Software) Size() (int, int) {
	return r.width, r.height
}

// SetBackdrop replaces the tiled backdrop image.
func (r *Software) SetBackdrop(img image.Image) {
	r.opts.Backdrop = img
}

// Release drops the surface and cached meshes. Render fails until SetSize is called again.
func (r *Software) Release() {
	r.ctx = nil
	r.width, r.height = 0, 0
	clear(r.meshes)
}

// Render draws one frame of s seen through cam. The returned image is reused
// by the next call.
func (r *Software) Render(s *scene.Scene, cam *camera.Perspective) (*image.NRGBA, error) {
	if r.ctx == nil {
		return nil, ErrSurfaceLost
	}
	ctx := r.ctx

	bg := s.Background.Clamped()
	ctx.ClearColorBufferWith(fauxgl.Color{R: bg.R, G: bg.G, B: bg.B, A: s.BackgroundAlpha})
	if r.opts.Backdrop != nil {
		tile(ctx.ColorBuffer, r.opts.Backdrop)
	}
	ctx.ClearDepthBuffer()

	viewProj := cam.ViewProjection()
	eye := cam.Position()

	var transparent []*model.Model
	for _, m := range s.Models() {
		if m.Mesh == nil {
			continue
		}
		if m.Material.Transparent() {
			transparent = append(transparent, m)
			continue
		}
		ctx.Cull = fauxgl.CullNone
		ctx.AlphaBlend = false
		ctx.WriteDepth = true
		r.drawModel(m, viewProj, eye, s.Lights)
	}

	// Blended surfaces test against opaque depth but never occlude each other.
	for _, m := range transparent {
		ctx.Cull = fauxgl.CullBack
		ctx.AlphaBlend = true
		ctx.WriteDepth = false
		r.drawModel(m, viewProj, eye, s.Lights)
	}
	ctx.WriteDepth = true
	ctx.AlphaBlend = false

	if r.opts.ShowBounds {
		r.drawBounds(s.Models(), viewProj)
	}

	return ctx.ColorBuffer, nil
}

func (r *Software) drawModel(m *model.Model, viewProj math.Mat4, eye math.Vec3, rig lighting.Rig) {
	world := m.Matrix()
	r.ctx.Shader = &surfaceShader{
		mvp:   viewProj.Mul(world),
		world: world,
		eye:   eye,
		rig:   rig,
		mat:   m.Material,
	}
	r.ctx.DrawMesh(r.meshFor(m.Mesh))
}

func (r *Software) drawBounds(models []*model.Model, viewProj math.Mat4) {
	var lines []*fauxgl.Line
	for _, m := range models {
		for _, e := range debug.BoxEdges(m.WorldBounds(), debug.DefaultBoxPadding) {
			lines = append(lines, &fauxgl.Line{
				V1: fauxgl.Vertex{Position: toVector(e[0])},
				V2: fauxgl.Vertex{Position: toVector(e[1])},
			})
		}
	}
	if len(lines) == 0 {
		return
	}

	c := r.opts.BoundsColor
	r.ctx.Shader = &lineShader{
		mvp:   viewProj,
		color: fauxgl.Color{R: c.R, G: c.G, B: c.B, A: 1},
	}
	r.ctx.DrawMesh(fauxgl.NewLineMesh(lines))
}

// meshFor converts a model mesh once and caches the result.
func (r *Software) meshFor(m *model.Mesh) *fauxgl.Mesh {
	if fm, ok := r.meshes[m]; ok {
		return fm
	}

	triangles := make([]*fauxgl.Triangle, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		n := uint32(len(m.Vertices))
		if a >= n || b >= n || c >= n {
			continue
		}
		triangles = append(triangles, &fauxgl.Triangle{
			V1: toVertex(m.Vertices[a]),
			V2: toVertex(m.Vertices[b]),
			V3: toVertex(m.Vertices[c]),
		})
	}

	fm := fauxgl.NewTriangleMesh(triangles)
	r.meshes[m] = fm
	return fm
}

func toVertex(v model.Vertex) fauxgl.Vertex {
	return fauxgl.Vertex{
		Position: fauxgl.Vector{X: float64(v.Position[0]), Y: float64(v.Position[1]), Z: float64(v.Position[2])},
		Normal:   fauxgl.Vector{X: float64(v.Normal[0]), Y: float64(v.Normal[1]), Z: float64(v.Normal[2])},
		Color:    fauxgl.Gray(1),
	}
}

func toVector(v math.Vec3) fauxgl.Vector {
	return fauxgl.Vector{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

func fromVector(v fauxgl.Vector) math.Vec3 {
	return math.Vec3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// tile repeats src across dst, compositing over what is already there.
func tile(dst *image.NRGBA, src image.Image) {
	sb := src.Bounds()
	if sb.Dx() <= 0 || sb.Dy() <= 0 {
		return
	}
	db := dst.Bounds()
	for y := db.Min.Y; y < db.Max.Y; y += sb.Dy() {
		for x := db.Min.X; x < db.Max.X; x += sb.Dx() {
			rect := image.Rect(x, y, x+sb.Dx(), y+sb.Dy()).Intersect(db)
			draw.Draw(dst, rect, src, sb.Min, draw.Over)
		}
	}
}

// surfaceShader lights each fragment with the scene's light rig.
// Position and Normal leave the vertex stage in world space.
type surfaceShader struct {
	mvp   math.Mat4
	world math.Mat4
	eye   math.Vec3
	rig   lighting.Rig
	mat   model.Material
}

func (s *surfaceShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	p := fromVector(v.Position)
	clip := s.mvp.MulVec4(math.Vec4{p.X, p.Y, p.Z, 1})
	v.Output = fauxgl.VectorW{X: float64(clip[0]), Y: float64(clip[1]), Z: float64(clip[2]), W: float64(clip[3])}

	v.Position = toVector(s.world.TransformVec3(p))
	n := math.V3(s.world.TransformDirection(fromVector(v.Normal).Array())).Normalize()
	v.Normal = toVector(n)
	return v
}

func (s *surfaceShader) Fragment(v fauxgl.Vertex) fauxgl.Color {
	pos := fromVector(v.Position)
	toEye := s.eye.Sub(pos).Normalize()
	n := fromVector(v.Normal)
	if n.Dot(toEye) < 0 {
		n = n.Scale(-1)
	}

	c := s.rig.Shade(n, toEye, s.mat).Clamped()
	return fauxgl.Color{R: c.R, G: c.G, B: c.B, A: float64(s.mat.Opacity)}
}

type lineShader struct {
	mvp   math.Mat4
	color fauxgl.Color
}

func (s *lineShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	p := fromVector(v.Position)
	clip := s.mvp.MulVec4(math.Vec4{p.X, p.Y, p.Z, 1})
	v.Output = fauxgl.VectorW{X: float64(clip[0]), Y: float64(clip[1]), Z: float64(clip[2]), W: float64(clip[3])}
	return v
}

func (s *lineShader) Fragment(fauxgl.Vertex) fauxgl.Color {
	return s.color
}

