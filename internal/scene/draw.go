package scene

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	xdraw "golang.org/x/image/draw"
)

// withOpacity premultiplies the color by the object opacity so it composes
// correctly with draw.Over.
func withOpacity(c color.RGBA, opacity float64) color.RGBA {
	opacity = clamp01(opacity)
	a := float64(c.A) * opacity

	return color.RGBA{
		R: uint8(float64(c.R) * opacity),
		G: uint8(float64(c.G) * opacity),
		B: uint8(float64(c.B) * opacity),
		A: uint8(a),
	}
}

func (b *Box) draw(dst *image.RGBA) {
	if b.Opacity <= 0 {
		return
	}

	x0 := int(b.Pos.X - b.W/2)
	y0 := int(b.Pos.Y - b.H/2)
	x1 := int(b.Pos.X + b.W/2)
	y1 := int(b.Pos.Y + b.H/2)

	rect := image.Rect(x0, y0, x1, y1)
	fill := withOpacity(b.Fill, b.Opacity)
	draw.Draw(dst, rect, &image.Uniform{fill}, image.Point{}, draw.Over)

	if b.StrokeWidth > 0 && b.Stroke.A > 0 {
		stroke := withOpacity(b.Stroke, b.Opacity)
		sw := int(b.StrokeWidth)
		if sw < 1 {
			sw = 1
		}
		// Four edge strips.
		draw.Draw(dst, image.Rect(x0, y0, x1, y0+sw), &image.Uniform{stroke}, image.Point{}, draw.Over)
		draw.Draw(dst, image.Rect(x0, y1-sw, x1, y1), &image.Uniform{stroke}, image.Point{}, draw.Over)
		draw.Draw(dst, image.Rect(x0, y0, x0+sw, y1), &image.Uniform{stroke}, image.Point{}, draw.Over)
		draw.Draw(dst, image.Rect(x1-sw, y0, x1, y1), &image.Uniform{stroke}, image.Point{}, draw.Over)
	}
}

func (c *Circle) draw(dst *image.RGBA) {
	if c.Opacity <= 0 {
		return
	}

	fill := withOpacity(c.Fill, c.Opacity)
	stroke := withOpacity(c.Stroke, c.Opacity)
	rOut := c.R
	rIn := c.R - c.StrokeWidth

	x0, x1 := int(c.Pos.X-rOut)-1, int(c.Pos.X+rOut)+1
	y0, y1 := int(c.Pos.Y-rOut)-1, int(c.Pos.Y+rOut)+1

	bounds := dst.Bounds()
	for y := max(y0, bounds.Min.Y); y < min(y1, bounds.Max.Y); y++ {
		for x := max(x0, bounds.Min.X); x < min(x1, bounds.Max.X); x++ {
			dx := float64(x) + 0.5 - c.Pos.X
			dy := float64(y) + 0.5 - c.Pos.Y
			dist := math.Sqrt(dx*dx + dy*dy)

			switch {
			case dist > rOut:
			case c.StrokeWidth > 0 && dist > rIn && stroke.A > 0:
				blend(dst, x, y, stroke)
			case fill.A > 0:
				blend(dst, x, y, fill)
			}
		}
	}
}

func (l *Line) draw(dst *image.RGBA) {
	if l.Opacity <= 0 {
		return
	}

	drawStroke(dst, l.From, l.To, withOpacity(l.Color, l.Opacity), l.Width)
}

func (a *Arrow) draw(dst *image.RGBA) {
	if a.Opacity <= 0 {
		return
	}

	c := withOpacity(a.Color, a.Opacity)
	drawStroke(dst, a.From, a.To, c, a.Width)

	// Head: two short strokes angled back from the tip.
	angle := math.Atan2(a.To.Y-a.From.Y, a.To.X-a.From.X)
	for _, side := range []float64{-1, 1} {
		wing := angle + math.Pi + side*math.Pi/6
		end := Pt(
			a.To.X+a.HeadSize*math.Cos(wing),
			a.To.Y+a.HeadSize*math.Sin(wing),
		)
		drawStroke(dst, a.To, end, c, a.Width)
	}
}

func (l *Label) draw(dst *image.RGBA) {
	if l.Opacity <= 0 || l.Text == "" {
		return
	}

	visible := l.visibleText()
	if visible == "" {
		return
	}

	face := basicfont.Face7x13
	lines := strings.Split(visible, "\n")
	allLines := strings.Split(l.Text, "\n")

	lineHeight := float64(face.Height) * l.LineSpacing
	totalH := lineHeight * float64(len(allLines))

	// Render at 1x into a scratch image, then scale by Size.
	scratchW, scratchH := 0, int(totalH)+4
	for _, line := range allLines {
		w := font.MeasureString(face, line).Ceil()
		if w > scratchW {
			scratchW = w
		}
	}
	if scratchW == 0 {
		return
	}

	scratch := image.NewRGBA(image.Rect(0, 0, scratchW+2, scratchH))
	col := withOpacity(l.Color, l.Opacity)

	for i, line := range lines {
		// Center each line against the full text width.
		w := font.MeasureString(face, line).Ceil()
		x := (scratchW - w) / 2
		y := face.Ascent + int(lineHeight*float64(i))

		drawer := font.Drawer{
			Dst:  scratch,
			Src:  &image.Uniform{col},
			Face: face,
			Dot:  fixed.P(x, y),
		}
		drawer.DrawString(line)
	}

	outW := scratch.Bounds().Dx() * l.Size
	outH := scratch.Bounds().Dy() * l.Size
	target := image.Rect(
		int(l.Pos.X)-outW/2,
		int(l.Pos.Y)-outH/2,
		int(l.Pos.X)+outW-outW/2,
		int(l.Pos.Y)+outH-outH/2,
	)

	xdraw.NearestNeighbor.Scale(dst, target, scratch, scratch.Bounds(), xdraw.Over, nil)
}

// Width returns the rendered pixel width of the label, for layout.
func (l *Label) Width() float64 {
	face := basicfont.Face7x13
	maxW := 0
	for _, line := range strings.Split(l.Text, "\n") {
		if w := font.MeasureString(face, line).Ceil(); w > maxW {
			maxW = w
		}
	}

	return float64((maxW + 2) * l.Size)
}

func (l *Label) visibleText() string {
	p := clamp01(l.Progress)
	if p >= 1 {
		return l.Text
	}

	runes := []rune(l.Text)

	return string(runes[:int(p*float64(len(runes)))])
}

func (s *Sprite) draw(dst *image.RGBA) {
	if s.Opacity <= 0 || s.Img == nil {
		return
	}

	b := s.Img.Bounds()
	target := image.Rect(
		int(s.Pos.X)-b.Dx()/2,
		int(s.Pos.Y)-b.Dy()/2,
		int(s.Pos.X)-b.Dx()/2+b.Dx(),
		int(s.Pos.Y)-b.Dy()/2+b.Dy(),
	)

	mask := &image.Uniform{color.Alpha{A: uint8(255 * clamp01(s.Opacity))}}
	draw.DrawMask(dst, target, s.Img, b.Min, mask, image.Point{}, draw.Over)
}

// drawStroke rasterizes a thick segment by stamping discs along it.
func drawStroke(dst *image.RGBA, from, to Point, c color.RGBA, width float64) {
	if c.A == 0 {
		return
	}

	if width < 1 {
		width = 1
	}

	dx := to.X - from.X
	dy := to.Y - from.Y
	length := math.Sqrt(dx*dx + dy*dy)
	steps := int(length) + 1
	r := width / 2

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		cx := from.X + dx*t
		cy := from.Y + dy*t
		stampDisc(dst, cx, cy, r, c)
	}
}

func stampDisc(dst *image.RGBA, cx, cy, r float64, c color.RGBA) {
	bounds := dst.Bounds()
	for y := max(int(cy-r)-1, bounds.Min.Y); y <= min(int(cy+r)+1, bounds.Max.Y-1); y++ {
		for x := max(int(cx-r)-1, bounds.Min.X); x <= min(int(cx+r)+1, bounds.Max.X-1); x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= r*r {
				blend(dst, x, y, c)
			}
		}
	}
}

func blend(dst *image.RGBA, x, y int, c color.RGBA) {
	dst.SetRGBA(x, y, blendRGBA(dst.RGBAAt(x, y), c))
}

// blendRGBA composes src over dst, both alpha-premultiplied.
func blendRGBA(dst, src color.RGBA) color.RGBA {
	inv := 255 - uint32(src.A)

	return color.RGBA{
		R: uint8(uint32(src.R) + uint32(dst.R)*inv/255),
		G: uint8(uint32(src.G) + uint32(dst.G)*inv/255),
		B: uint8(uint32(src.B) + uint32(dst.B)*inv/255),
		A: uint8(uint32(src.A) + uint32(dst.A)*inv/255),
	}
}
