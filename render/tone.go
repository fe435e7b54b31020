// Package render turns raw histogram hit counts into displayable RGBA
// pixels. Counts are normalized by the accumulation epoch before tone
// mapping, so average brightness stays stable while counts grow.
package render

import (
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/mossfall/nebula/sim"
)

// Mode selects the tone curve.
type Mode int

const (
	// ModeClassic is the plain log curve with a luminance glow.
	ModeClassic Mode = iota
	// ModeAesthetic is the softer nebula curve with color remapping,
	// bloom and a vertical warm/cool gradient.
	ModeAesthetic
)

// Classic curve constants.
const (
	classicGain  = 5.0
	classicGamma = 0.85
	glowStrength = 0.12
)

// Aesthetic curve constants.
const (
	aestheticGain  = 8.0
	aestheticGamma = 0.75
	bloomStrength  = 0.15
	gradientBias   = 0.08
)

// nebulaMix remaps the three orbit-length channels: short orbits toward
// warm tones, mid toward magenta, long toward cyan/blue.
var nebulaMix = mat.NewDense(3, 3, []float64{
	0.90, 0.50, 0.10,
	0.30, 0.20, 0.50,
	0.20, 0.60, 0.90,
})

// ToneMapper converts a histogram into an RGBA pixel buffer.
type ToneMapper struct {
	width, height int
	pix           []color.RGBA

	// Flattened copy of nebulaMix for the per-pixel loop.
	m [9]float64
}

// NewToneMapper allocates a mapper for the given output resolution.
func NewToneMapper(width, height int) *ToneMapper {
	t := &ToneMapper{
		width:  width,
		height: height,
		pix:    make([]color.RGBA, width*height),
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			t.m[r*3+c] = nebulaMix.At(r, c)
		}
	}
	return t
}

// Matrix returns the nebula color remap matrix.
func Matrix() mat.Matrix {
	return nebulaMix
}

// Map tone-maps the histogram into the mapper's pixel buffer and returns
// it. frames is the accumulation epoch count. Reads of the histogram must
// only happen between dispatch batches.
func (t *ToneMapper) Map(hist *sim.Histogram, frames int64, mode Mode) []color.RGBA {
	if frames < 1 {
		frames = 1
	}
	inv := 1.0 / float64(frames)

	invLogClassic := 1.0 / math.Log(20)
	invLogAesthetic := 1.0 / math.Log(50)

	n := t.width * t.height
	for i := 0; i < n; i++ {
		cr, cg, cb := hist.At(i)
		nr := float64(cr) * inv
		ng := float64(cg) * inv
		nb := float64(cb) * inv

		var r, g, b float64
		switch mode {
		case ModeAesthetic:
			sr := math.Sqrt(math.Log(aestheticGain*nr+1) * invLogAesthetic)
			sg := math.Sqrt(math.Log(aestheticGain*ng+1) * invLogAesthetic)
			sb := math.Sqrt(math.Log(aestheticGain*nb+1) * invLogAesthetic)

			r = t.m[0]*sr + t.m[1]*sg + t.m[2]*sb
			g = t.m[3]*sr + t.m[4]*sg + t.m[5]*sb
			b = t.m[6]*sr + t.m[7]*sg + t.m[8]*sb

			r = math.Pow(clamp01(r), aestheticGamma)
			g = math.Pow(clamp01(g), aestheticGamma)
			b = math.Pow(clamp01(b), aestheticGamma)

			lum := 0.2126*r + 0.7152*g + 0.0722*b
			bloom := lum * lum * bloomStrength
			r += bloom
			g += bloom
			b += bloom

			// Vertical gradient: warm toward the bottom, cool at the
			// top. Scaled by luminance so the background stays black.
			vf := (float64(i/t.width)/float64(t.height) - 0.5) * lum
			r += vf * gradientBias
			b -= vf * gradientBias

		default:
			r = math.Pow(clamp01(math.Log(classicGain*nr+1)*invLogClassic), classicGamma)
			g = math.Pow(clamp01(math.Log(classicGain*ng+1)*invLogClassic), classicGamma)
			b = math.Pow(clamp01(math.Log(classicGain*nb+1)*invLogClassic), classicGamma)

			lum := 0.2126*r + 0.7152*g + 0.0722*b
			glow := lum * lum * lum * glowStrength
			r += glow
			g += glow
			b += glow
		}

		t.pix[i] = color.RGBA{R: toByte(r), G: toByte(g), B: toByte(b), A: 0xff}
	}
	return t.pix
}

// Image copies the most recently mapped buffer into a new image, for PNG
// export.
func (t *ToneMapper) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	for i, c := range t.pix {
		o := i * 4
		img.Pix[o] = c.R
		img.Pix[o+1] = c.G
		img.Pix[o+2] = c.B
		img.Pix[o+3] = c.A
	}
	return img
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func toByte(x float64) byte {
	return byte(clamp01(x)*255 + 0.5)
}
