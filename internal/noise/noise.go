// Package noise generates the grain tile laid over the hero background.
package noise

import (
	"image"
	"image/color"
	"math/rand/v2"

	"golang.org/x/image/draw"
)

const (
	// TileSize is the generated tile edge in pixels.
	TileSize = 160
	// DisplaySize is the edge the tile is drawn at.
	DisplaySize = 128

	alpha       = 0.5
	magentaProb = 0.008
)

// Magenta is the speckle color.
var Magenta = color.NRGBA{R: 139, G: 0, B: 139}

// Tile builds a TileSize square of half-transparent gray grain with rare
// magenta speckles. The same rng state always yields the same tile.
func Tile(rng *rand.Rand) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, TileSize, TileSize))

	aByte := uint8(alpha*255 + 0.5)
	aMagenta := uint8(min(255, float64(aByte)*1.1+0.5))

	for i := 0; i < len(img.Pix); i += 4 {
		if rng.Float64() < magentaProb {
			img.Pix[i] = Magenta.R
			img.Pix[i+1] = Magenta.G
			img.Pix[i+2] = Magenta.B
			img.Pix[i+3] = aMagenta
			continue
		}
		v := uint8(rng.Float64() * 255)
		img.Pix[i] = v
		img.Pix[i+1] = v
		img.Pix[i+2] = v
		img.Pix[i+3] = aByte
	}
	return img
}

// Backdrop scales tile to its display size at device pixel ratio dpr.
func Backdrop(tile *image.NRGBA, dpr float32) *image.NRGBA {
	if dpr <= 0 {
		dpr = 1
	}
	size := max(1, int(float32(DisplaySize)*dpr))

	if size == tile.Bounds().Dx() && size == tile.Bounds().Dy() {
		return tile
	}
	out := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.BiLinear.Scale(out, out.Bounds(), tile, tile.Bounds(), draw.Src, nil)
	return out
}

// NewRand returns a generator for seed. Zero seeds from the runtime source.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
