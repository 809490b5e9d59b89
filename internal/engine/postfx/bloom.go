package postfx

import (
	"fmt"
	"image"
	gomath "math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
)

// smoothWidth is the soft knee above the bright-pass threshold.
const smoothWidth = 0.01

// Bloom adds a soft glow around bright pixels.
type Bloom struct {
	// Strength weights the glow in the composite. Zero passes frames through.
	Strength float64
	// Radius widens the blur; 0 is a tight halo, 1 a broad one.
	Radius float64
	// Threshold is the luminance a pixel needs to contribute.
	Threshold float64
	Tint      colorful.Color

	width  int
	height int

	half *image.NRGBA
	glow *image.NRGBA
	out  *image.NRGBA
	buf  []float32
	tmp  []float32
}

// NewBloom creates a bloom stage. Call SetSize before Apply.
func NewBloom(strength, radius, threshold float64, tint colorful.Color) *Bloom {
	return &Bloom{
		Strength:  strength,
		Radius:    radius,
		Threshold: threshold,
		Tint:      tint,
	}
}

// SetSize allocates the full and half resolution buffers.
func (b *Bloom) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if width == b.width && height == b.height && b.out != nil {
		return
	}
	b.width, b.height = width, height

	hw, hh := max(1, width/2), max(1, height/2)
	b.half = image.NewNRGBA(image.Rect(0, 0, hw, hh))
	b.glow = image.NewNRGBA(image.Rect(0, 0, width, height))
	b.out = image.NewNRGBA(image.Rect(0, 0, width, height))
	b.buf = make([]float32, hw*hh*3)
	b.tmp = make([]float32, hw*hh*3)
}

// Apply composites the glow of src into a buffer owned by the stage.
func (b *Bloom) Apply(src *image.NRGBA) (*image.NRGBA, error) {
	sb := src.Bounds()
	if sb.Dx() != b.width || sb.Dy() != b.height {
		return nil, fmt.Errorf("bloom: frame %dx%d does not match stage %dx%d",
			sb.Dx(), sb.Dy(), b.width, b.height)
	}
	if b.Strength <= 0 {
		return src, nil
	}

	draw.BiLinear.Scale(b.half, b.half.Bounds(), src, sb, draw.Src, nil)
	b.brightPass()
	b.blur()
	b.storeHalf()
	draw.BiLinear.Scale(b.glow, b.glow.Bounds(), b.half, b.half.Bounds(), draw.Src, nil)
	b.composite(src)

	return b.out, nil
}

// brightPass keeps the color of pixels above the luminance threshold.
func (b *Bloom) brightPass() {
	pix := b.half.Pix
	lo, hi := b.Threshold, b.Threshold+smoothWidth
	for i, j := 0, 0; i < len(pix); i, j = i+4, j+3 {
		a := float64(pix[i+3]) / 255
		r := float64(pix[i]) / 255
		g := float64(pix[i+1]) / 255
		bl := float64(pix[i+2]) / 255
		lum := 0.2126*r + 0.7152*g + 0.0722*bl
		k := float32(smoothstep(lo, hi, lum) * a)
		b.buf[j] = float32(r) * k
		b.buf[j+1] = float32(g) * k
		b.buf[j+2] = float32(bl) * k
	}
}

// blur runs a separable gaussian over buf at half resolution.
func (b *Bloom) blur() {
	hw, hh := b.half.Bounds().Dx(), b.half.Bounds().Dy()
	kernel := gaussian(b.sigmaFor(hw, hh))
	r := len(kernel) / 2

	// Horizontal: buf -> tmp
	for y := 0; y < hh; y++ {
		row := y * hw
		for x := 0; x < hw; x++ {
			var sr, sg, sb float32
			for k := -r; k <= r; k++ {
				xx := clampInt(x+k, 0, hw-1)
				w := kernel[k+r]
				p := (row + xx) * 3
				sr += b.buf[p] * w
				sg += b.buf[p+1] * w
				sb += b.buf[p+2] * w
			}
			p := (row + x) * 3
			b.tmp[p], b.tmp[p+1], b.tmp[p+2] = sr, sg, sb
		}
	}

	// Vertical: tmp -> buf
	for x := 0; x < hw; x++ {
		for y := 0; y < hh; y++ {
			var sr, sg, sb float32
			for k := -r; k <= r; k++ {
				yy := clampInt(y+k, 0, hh-1)
				w := kernel[k+r]
				p := (yy*hw + x) * 3
				sr += b.tmp[p] * w
				sg += b.tmp[p+1] * w
				sb += b.tmp[p+2] * w
			}
			p := (y*hw + x) * 3
			b.buf[p], b.buf[p+1], b.buf[p+2] = sr, sg, sb
		}
	}
}

// sigmaFor scales the blur with the shorter side so the halo keeps its look
// across window sizes.
func (b *Bloom) sigmaFor(hw, hh int) float64 {
	side := float64(min(hw, hh))
	return 1 + b.Radius*side/24
}

func (b *Bloom) storeHalf() {
	pix := b.half.Pix
	for i, j := 0, 0; i < len(pix); i, j = i+4, j+3 {
		pix[i] = toByte(float64(b.buf[j]))
		pix[i+1] = toByte(float64(b.buf[j+1]))
		pix[i+2] = toByte(float64(b.buf[j+2]))
		pix[i+3] = 255
	}
}

// composite adds the tinted glow on top of src.
func (b *Bloom) composite(src *image.NRGBA) {
	tint := b.Tint
	s := b.Strength
	for y := 0; y < b.height; y++ {
		so := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		do := y * b.out.Stride
		for x := 0; x < b.width; x++ {
			sp := src.Pix[so+x*4 : so+x*4+4]
			dp := b.out.Pix[do+x*4 : do+x*4+4]
			gp := b.glow.Pix[do+x*4 : do+x*4+4]

			gr := float64(gp[0]) / 255 * s * tint.R
			gg := float64(gp[1]) / 255 * s * tint.G
			gb := float64(gp[2]) / 255 * s * tint.B

			dp[0] = toByte(float64(sp[0])/255 + gr)
			dp[1] = toByte(float64(sp[1])/255 + gg)
			dp[2] = toByte(float64(sp[2])/255 + gb)
			dp[3] = max(sp[3], toByte(gomath.Max(gr, gomath.Max(gg, gb))))
		}
	}
}

func gaussian(sigma float64) []float32 {
	r := int(gomath.Ceil(sigma * 3))
	kernel := make([]float32, 2*r+1)
	var sum float64
	for i := -r; i <= r; i++ {
		w := gomath.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+r] = float32(w)
		sum += w
	}
	for i := range kernel {
		kernel[i] = float32(float64(kernel[i]) / sum)
	}
	return kernel
}

func smoothstep(edge0, edge1, x float64) float64 {
	t := (x - edge0) / (edge1 - edge0)
	t = gomath.Max(0, gomath.Min(1, t))
	return t * t * (3 - 2*t)
}

func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
