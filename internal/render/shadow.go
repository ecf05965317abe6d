package render

import (
	"image"
	"image/color"
	"image/draw"
)

// Shadow is a blurred drop shadow placed behind an exported board.
type Shadow struct {
	Radius  int
	Offset  image.Point
	Opacity float64 // 0 disables the shadow, values above 1 are clamped
}

// DefaultShadow frames an export with a soft shadow down and to the right.
func DefaultShadow() Shadow {
	return Shadow{Radius: 12, Offset: image.Pt(8, 8), Opacity: 0.5}
}

// Apply returns img on a transparent surface grown to hold the shadow. The
// board itself lands at the returned offset. With no opacity img is
// returned unchanged.
func (s Shadow) Apply(img *image.RGBA) (*image.RGBA, image.Point) {
	if img == nil || img.Bounds().Empty() || s.Opacity <= 0 {
		return img, image.Point{}
	}
	radius := max(s.Radius, 0)
	opacity := min(s.Opacity, 1)

	src := img.Bounds()
	spread := src.Inset(-radius).Add(s.Offset)
	all := src.Union(spread)
	shift := src.Min.Sub(all.Min)

	mask := image.NewAlpha(spread.Sub(spread.Min))
	draw.Draw(mask, src.Sub(src.Min).Add(image.Pt(radius, radius)), img, src.Min, draw.Src)
	mask = boxBlur(mask, radius)

	dst := image.NewRGBA(all.Sub(all.Min))
	shade := image.NewUniform(color.NRGBA{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(dst, mask.Bounds().Add(spread.Min.Sub(all.Min)), shade, image.Point{}, mask, image.Point{}, draw.Over)
	draw.Draw(dst, src.Sub(all.Min), img, src.Min, draw.Over)
	return dst, shift
}

// boxBlur averages each pixel with its neighbours within radius, first
// along rows and then along columns.
func boxBlur(src *image.Alpha, radius int) *image.Alpha {
	if radius <= 0 {
		return src
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	rows := image.NewAlpha(src.Bounds())
	for y := 0; y < h; y++ {
		blurLine(src.Pix[y*src.Stride:], rows.Pix[y*rows.Stride:], w, 1, radius)
	}
	out := image.NewAlpha(src.Bounds())
	for x := 0; x < w; x++ {
		blurLine(rows.Pix[x:], out.Pix[x:], h, rows.Stride, radius)
	}
	return out
}

// blurLine blurs n samples spaced step apart using a running sum.
func blurLine(in, out []uint8, n, step, radius int) {
	sum, count := 0, 0
	for i := 0; i < min(radius, n); i++ {
		sum += int(in[i*step])
		count++
	}
	for i := 0; i < n; i++ {
		if j := i + radius; j < n {
			sum += int(in[j*step])
			count++
		}
		if j := i - radius - 1; j >= 0 {
			sum -= int(in[j*step])
			count--
		}
		out[i*step] = uint8(sum / count)
	}
}
