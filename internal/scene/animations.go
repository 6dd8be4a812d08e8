package scene

import "image/color"

// Animation tweens object state over the course of one Play call. start is
// invoked before the first frame, apply with eased progress in (0, 1], and
// finish after the last frame.
type Animation interface {
	start(s *Scene)
	apply(t float64)
	finish(s *Scene)
}

// expand flattens groups into their children.
func expand(objs []Object) []Object {
	var out []Object
	for _, o := range objs {
		if g, ok := o.(*Group); ok {
			out = append(out, expand(g.children)...)
			continue
		}
		out = append(out, o)
	}

	return out
}

// FadeIn adds the objects to the scene and ramps opacity from 0 to their
// current value.
func FadeIn(objs ...Object) Animation {
	return &fade{objs: expand(objs), in: true}
}

// FadeOut ramps opacity to 0 and removes the objects when done.
func FadeOut(objs ...Object) Animation {
	return &fade{objs: expand(objs)}
}

type fade struct {
	objs []Object
	from []float64
	in   bool
}

func (f *fade) start(s *Scene) {
	f.from = make([]float64, len(f.objs))
	for i, o := range f.objs {
		f.from[i] = *o.opacity()
		if f.in {
			if f.from[i] <= 0 {
				f.from[i] = 1
			}
			*o.opacity() = 0
			s.Add(o)
		}
	}
}

func (f *fade) apply(t float64) {
	for i, o := range f.objs {
		if f.in {
			*o.opacity() = lerp(0, f.from[i], t)
		} else {
			*o.opacity() = lerp(f.from[i], 0, t)
		}
	}
}

func (f *fade) finish(s *Scene) {
	if !f.in {
		s.Remove(f.objs...)
	}
}

// MoveTo slides an object (or group) to an absolute position.
func MoveTo(obj Object, to Point) Animation {
	return &move{obj: obj, to: to}
}

type move struct {
	obj  Object
	from Point
	to   Point
}

func (m *move) start(_ *Scene) {
	m.from = *m.obj.position()
}

// shiftable objects carry state beyond Pos that has to move with them
// (group children, line endpoints).
type shiftable interface {
	MoveBy(d Point)
}

func (m *move) apply(t float64) {
	target := lerpPoint(m.from, m.to, t)

	if sh, ok := m.obj.(shiftable); ok {
		cur := *m.obj.position()
		sh.MoveBy(Pt(target.X-cur.X, target.Y-cur.Y))

		return
	}

	*m.obj.position() = target
}

func (m *move) finish(_ *Scene) {}

// FillTo transitions a box fill color, the highlight primitive for array
// cells and graph nodes.
func FillTo(box *Box, c color.RGBA) Animation {
	return &fillTo{box: box, to: c}
}

type fillTo struct {
	box  *Box
	from color.RGBA
	to   color.RGBA
}

func (f *fillTo) start(_ *Scene) { f.from = f.box.Fill }
func (f *fillTo) apply(t float64) { f.box.Fill = lerpColor(f.from, f.to, t) }
func (f *fillTo) finish(_ *Scene) {}

// CircleFillTo transitions a circle fill color.
func CircleFillTo(c *Circle, to color.RGBA) Animation {
	return &circleFillTo{c: c, to: to}
}

type circleFillTo struct {
	c    *Circle
	from color.RGBA
	to   color.RGBA
}

func (f *circleFillTo) start(_ *Scene) { f.from = f.c.Fill }
func (f *circleFillTo) apply(t float64) { f.c.Fill = lerpColor(f.from, f.to, t) }
func (f *circleFillTo) finish(_ *Scene) {}

// LineColorTo transitions a line or edge color.
func LineColorTo(l *Line, to color.RGBA) Animation {
	return &lineColorTo{l: l, to: to}
}

type lineColorTo struct {
	l    *Line
	from color.RGBA
	to   color.RGBA
}

func (f *lineColorTo) start(_ *Scene) { f.from = f.l.Color }
func (f *lineColorTo) apply(t float64) { f.l.Color = lerpColor(f.from, f.to, t) }
func (f *lineColorTo) finish(_ *Scene) {}

// Write adds a label and reveals its text progressively.
func Write(l *Label) Animation {
	return &write{label: l}
}

type write struct {
	label *Label
}

func (w *write) start(s *Scene) {
	w.label.Progress = 0
	s.Add(w.label)
}

func (w *write) apply(t float64) { w.label.Progress = t }
func (w *write) finish(_ *Scene) { w.label.Progress = 1 }

// Transform cross-fades one object into another at the new object's
// position: the old object leaves the scene, the replacement enters.
func Transform(old, replacement Object) Animation {
	return &transform{out: &fade{objs: expand([]Object{old})}, in: &fade{objs: expand([]Object{replacement}), in: true}}
}

type transform struct {
	out *fade
	in  *fade
}

func (tr *transform) start(s *Scene) {
	tr.out.start(s)
	tr.in.start(s)
}

func (tr *transform) apply(t float64) {
	tr.out.apply(t)
	tr.in.apply(t)
}

func (tr *transform) finish(s *Scene) {
	tr.out.finish(s)
	tr.in.finish(s)
}
