package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/fogleman/fauxgl"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/hero3d/internal/engine/model"
	"github.com/Faultbox/hero3d/pkg/math"
)

// ErrUnsupportedFormat is returned for asset extensions no parser handles.
var ErrUnsupportedFormat = errors.New("unsupported asset format")

// ErrNoGeometry is returned when a file parses but holds no triangles.
var ErrNoGeometry = errors.New("asset has no triangles")

// Format returns the lower-case extension of the URL path, e.g. ".glb".
func Format(rawURL string) string {
	p := rawURL
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return strings.ToLower(path.Ext(p))
}

// Parse decodes asset bytes by extension. fsys resolves external glTF
// buffers and may be nil.
func Parse(name string, data []byte, fsys fs.FS) (*model.Mesh, model.Material, error) {
	switch ext := Format(name); ext {
	case ".glb", ".gltf":
		return parseGLTF(data, fsys)
	case ".stl", ".obj", ".ply", ".3ds":
		mesh, err := parseFauxgl(ext, data)
		return mesh, model.DefaultMaterial(), err
	default:
		return nil, model.Material{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func parseGLTF(data []byte, fsys fs.FS) (*model.Mesh, model.Material, error) {
	var dec *gltf.Decoder
	if fsys != nil {
		dec = gltf.NewDecoderFS(bytes.NewReader(data), fsys)
	} else {
		dec = gltf.NewDecoder(bytes.NewReader(data))
	}

	doc := new(gltf.Document)
	if err := dec.Decode(doc); err != nil {
		return nil, model.Material{}, fmt.Errorf("decoding gltf: %w", err)
	}

	w := &gltfWalker{doc: doc, material: model.DefaultMaterial()}
	if err := w.walkScene(); err != nil {
		return nil, model.Material{}, err
	}

	mesh := model.Merge(w.parts...)
	if mesh == nil {
		return nil, model.Material{}, ErrNoGeometry
	}
	return mesh, w.material, nil
}

type gltfWalker struct {
	doc         *gltf.Document
	parts       []*model.Mesh
	material    model.Material
	hasMaterial bool
}

func (w *gltfWalker) walkScene() error {
	doc := w.doc
	if len(doc.Scenes) == 0 {
		// No scene graph: take every mesh untransformed.
		for i := range doc.Meshes {
			if err := w.addMesh(i, math.Identity()); err != nil {
				return err
			}
		}
		return nil
	}

	sceneIdx := 0
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		sceneIdx = *doc.Scene
	}
	for _, n := range doc.Scenes[sceneIdx].Nodes {
		if err := w.walkNode(n, math.Identity(), 0); err != nil {
			return err
		}
	}
	return nil
}

// maxNodeDepth guards against cyclic node graphs.
const maxNodeDepth = 64

func (w *gltfWalker) walkNode(idx int, parent math.Mat4, depth int) error {
	if idx < 0 || idx >= len(w.doc.Nodes) || depth > maxNodeDepth {
		return nil
	}
	node := w.doc.Nodes[idx]
	world := parent.Mul(nodeMatrix(node))

	if node.Mesh != nil {
		if err := w.addMesh(*node.Mesh, world); err != nil {
			return err
		}
	}
	for _, c := range node.Children {
		if err := w.walkNode(c, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func nodeMatrix(n *gltf.Node) math.Mat4 {
	if m := n.MatrixOrDefault(); m != gltf.DefaultMatrix {
		return math.FromColumns64(m)
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	return math.Compose(
		math.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])},
		math.QuatFrom64(r),
		math.Vec3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])},
	)
}

func (w *gltfWalker) addMesh(idx int, world math.Mat4) error {
	if idx < 0 || idx >= len(w.doc.Meshes) {
		return nil
	}
	opts := model.BuildOptions{Smooth: true, ReverseWinding: determinant3(world) < 0}

	for _, prim := range w.doc.Meshes[idx].Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok || posIdx >= len(w.doc.Accessors) {
			continue
		}

		positions, err := modeler.ReadPosition(w.doc, w.doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("reading positions: %w", err)
		}
		for i, p := range positions {
			positions[i] = world.TransformPoint(p)
		}

		var indices []uint32
		if prim.Indices != nil && *prim.Indices < len(w.doc.Accessors) {
			indices, err = modeler.ReadIndices(w.doc, w.doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("reading indices: %w", err)
			}
		}

		if part := model.BuildMesh(positions, indices, opts); part != nil {
			w.parts = append(w.parts, part)
			if !w.hasMaterial && prim.Material != nil {
				w.material = w.materialAt(*prim.Material)
				w.hasMaterial = true
			}
		}
	}
	return nil
}

// materialAt maps a glTF PBR material onto the model material.
func (w *gltfWalker) materialAt(idx int) model.Material {
	mat := model.DefaultMaterial()
	if idx < 0 || idx >= len(w.doc.Materials) {
		return mat
	}
	src := w.doc.Materials[idx]
	pbr := src.PBRMetallicRoughness
	if pbr == nil {
		return mat
	}

	mat.Metalness = 1
	if pbr.MetallicFactor != nil {
		mat.Metalness = float32(*pbr.MetallicFactor)
	}
	if pbr.RoughnessFactor != nil {
		mat.Roughness = float32(*pbr.RoughnessFactor)
	}
	if f := pbr.BaseColorFactor; f != nil {
		mat.Color = colorful.Color{R: f[0], G: f[1], B: f[2]}
		if src.AlphaMode == gltf.AlphaBlend {
			mat.Opacity = float32(f[3])
		}
	}
	return mat
}

func determinant3(m math.Mat4) float32 {
	return m[0]*(m[5]*m[10]-m[9]*m[6]) -
		m[4]*(m[1]*m[10]-m[9]*m[2]) +
		m[8]*(m[1]*m[6]-m[5]*m[2])
}

// parseFauxgl hands the bytes to fauxgl's loaders, which read from a path.
func parseFauxgl(ext string, data []byte) (*model.Mesh, error) {
	tmp, err := os.CreateTemp("", "hero3d-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("closing temp file: %w", err)
	}

	fm, err := fauxgl.LoadMesh(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", ext, err)
	}

	positions := make([][3]float32, 0, len(fm.Triangles)*3)
	for _, t := range fm.Triangles {
		for _, v := range []fauxgl.Vector{t.V1.Position, t.V2.Position, t.V3.Position} {
			positions = append(positions, [3]float32{float32(v.X), float32(v.Y), float32(v.Z)})
		}
	}

	mesh := model.BuildMesh(positions, nil, model.BuildOptions{Smooth: true})
	if mesh == nil {
		return nil, ErrNoGeometry
	}
	return mesh, nil
}
