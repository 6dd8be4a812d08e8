package scene

import (
	"image"
	"image/color"
)

// Point is a position on the canvas in pixels. Y grows downward.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for constructing a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p shifted by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

func lerpPoint(a, b Point, t float64) Point {
	return Point{X: lerp(a.X, b.X, t), Y: lerp(a.Y, b.Y, t)}
}

// Object is anything the scene can hold and rasterize. Objects carry their
// own mutable visual state; animations tween that state between frames.
type Object interface {
	draw(dst *image.RGBA)
	opacity() *float64
	position() *Point
}

// base holds the state shared by every concrete object.
type base struct {
	Pos     Point
	Opacity float64
}

func (b *base) opacity() *float64 { return &b.Opacity }
func (b *base) position() *Point  { return &b.Pos }

// Box is an axis-aligned rectangle with fill and stroke, the workhorse for
// array cells, panels and cards.
type Box struct {
	base
	W, H        float64
	Fill        color.RGBA
	Stroke      color.RGBA
	StrokeWidth float64
}

// NewBox creates a fully opaque box centered at pos.
func NewBox(pos Point, w, h float64, fill, stroke color.RGBA) *Box {
	return &Box{
		base:        base{Pos: pos, Opacity: 1},
		W:           w,
		H:           h,
		Fill:        fill,
		Stroke:      stroke,
		StrokeWidth: 2,
	}
}

// Circle is a filled disc with an optional stroke ring, used for graph nodes
// and the maze explorer.
type Circle struct {
	base
	R           float64
	Fill        color.RGBA
	Stroke      color.RGBA
	StrokeWidth float64
}

// NewCircle creates a fully opaque circle centered at pos.
func NewCircle(pos Point, r float64, fill, stroke color.RGBA) *Circle {
	return &Circle{
		base:        base{Pos: pos, Opacity: 1},
		R:           r,
		Fill:        fill,
		Stroke:      stroke,
		StrokeWidth: 2,
	}
}

// Line is a straight stroke between two absolute points. Pos is ignored for
// drawing and kept at the midpoint.
type Line struct {
	base
	From, To Point
	Color    color.RGBA
	Width    float64
}

// NewLine creates a line segment.
func NewLine(from, to Point, c color.RGBA, width float64) *Line {
	return &Line{
		base:  base{Pos: midpoint(from, to), Opacity: 1},
		From:  from,
		To:    to,
		Color: c,
		Width: width,
	}
}

// MoveBy shifts both endpoints; lines draw from From and To, so moving the
// midpoint alone would change nothing on screen.
func (l *Line) MoveBy(d Point) {
	l.Pos = l.Pos.Add(d)
	l.From = l.From.Add(d)
	l.To = l.To.Add(d)
}

// Arrow is a line with a V-shaped head at To.
type Arrow struct {
	Line
	HeadSize float64
}

// NewArrow creates an arrow pointing at to.
func NewArrow(from, to Point, c color.RGBA, width float64) *Arrow {
	return &Arrow{
		Line:     *NewLine(from, to, c, width),
		HeadSize: 10,
	}
}

// Label is text centered at Pos. Size is an integer scale factor over the
// base bitmap font. Progress below 1 reveals a prefix of the runes, which is
// what the Write animation drives.
type Label struct {
	base
	Text        string
	Size        int
	Color       color.RGBA
	Progress    float64
	LineSpacing float64
}

// NewLabel creates a label with fully revealed text.
func NewLabel(pos Point, text string, size int, c color.RGBA) *Label {
	if size < 1 {
		size = 1
	}

	return &Label{
		base:        base{Pos: pos, Opacity: 1},
		Text:        text,
		Size:        size,
		Color:       c,
		Progress:    1,
		LineSpacing: 1.2,
	}
}

// Sprite places a pre-rendered image (a QR code, a slide crop) centered at
// Pos.
type Sprite struct {
	base
	Img image.Image
}

// NewSprite wraps an image as a scene object.
func NewSprite(pos Point, img image.Image) *Sprite {
	return &Sprite{
		base: base{Pos: pos, Opacity: 1},
		Img:  img,
	}
}

// Group moves a set of objects as one. Drawing happens through the scene's
// object list, not through the group; the group only forwards position
// changes to its children.
type Group struct {
	base
	children []Object
}

// NewGroup collects objects under a shared handle. The group position starts
// at the centroid of its children.
func NewGroup(objs ...Object) *Group {
	g := &Group{base: base{Opacity: 1}, children: objs}
	if len(objs) > 0 {
		var cx, cy float64
		for _, o := range objs {
			cx += o.position().X
			cy += o.position().Y
		}
		g.Pos = Pt(cx/float64(len(objs)), cy/float64(len(objs)))
	}

	return g
}

// Children returns the grouped objects.
func (g *Group) Children() []Object {
	return g.children
}

func (g *Group) draw(_ *image.RGBA) {}

// MoveBy shifts the group anchor and every child by the same delta.
func (g *Group) MoveBy(d Point) {
	g.Pos = g.Pos.Add(d)
	for _, o := range g.children {
		p := o.position()
		*p = p.Add(d)
	}
}

func midpoint(a, b Point) Point {
	return Pt((a.X+b.X)/2, (a.Y+b.Y)/2)
}
