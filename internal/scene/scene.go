// Package scene is a small frame-based animation engine: a flat list of
// drawable objects, tweened by animations, rasterized at a fixed frame rate
// into a FrameSink. The scene clock advances only when frames are emitted,
// so elapsed time always matches the rendered footage exactly.
package scene

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/ivlev/algo2video/internal/system"
)

// FrameSink consumes rendered frames in order. The sink takes ownership of
// the buffer and returns it to the image pool when done.
type FrameSink interface {
	WriteFrame(img *image.RGBA) error
}

// Scene owns the canvas, the object list and the frame clock.
type Scene struct {
	W, H int
	FPS  int

	Background color.RGBA
	Backdrop   image.Image // optional slide image behind everything

	objects []Object
	elapsed float64
	sink    FrameSink
}

// New creates a scene rendering into sink.
func New(w, h, fps int, sink FrameSink) *Scene {
	return &Scene{
		W:          w,
		H:          h,
		FPS:        fps,
		Background: color.RGBA{A: 255},
		sink:       sink,
	}
}

// Center returns the canvas center point.
func (s *Scene) Center() Point {
	return Pt(float64(s.W)/2, float64(s.H)/2)
}

// Add appends objects to the draw list; later objects draw on top. Groups
// contribute their children.
func (s *Scene) Add(objs ...Object) {
	for _, o := range objs {
		if g, ok := o.(*Group); ok {
			s.Add(g.children...)
			continue
		}
		s.objects = append(s.objects, o)
	}
}

// Remove drops objects from the draw list.
func (s *Scene) Remove(objs ...Object) {
	for _, o := range objs {
		if g, ok := o.(*Group); ok {
			s.Remove(g.children...)
			continue
		}
		for i, existing := range s.objects {
			if existing == o {
				s.objects = append(s.objects[:i], s.objects[i+1:]...)
				break
			}
		}
	}
}

// Clear empties the draw list between segments.
func (s *Scene) Clear() {
	s.objects = nil
}

// Elapsed reports the scene clock in seconds of emitted footage.
func (s *Scene) Elapsed() float64 {
	return s.elapsed
}

// Wait holds the current picture for d seconds.
func (s *Scene) Wait(d float64) error {
	if d <= 0 {
		return nil
	}

	frames := s.frameCount(d)
	for i := 0; i < frames; i++ {
		if err := s.emitFrame(); err != nil {
			return err
		}
	}

	// The clock advances by the footage actually emitted, not the requested
	// duration, so off-grid durations cannot drift it from the video.
	s.elapsed += float64(frames) / float64(s.FPS)

	return nil
}

// Play runs the animations together over runTime seconds with smooth
// easing, emitting frames as it goes. Animations that finish early simply
// hold their final state.
func (s *Scene) Play(runTime float64, anims ...Animation) error {
	if runTime <= 0 {
		runTime = 1.0 / float64(s.FPS)
	}

	for _, a := range anims {
		a.start(s)
	}

	frames := s.frameCount(runTime)
	for i := 1; i <= frames; i++ {
		t := easeInOutCubic(float64(i) / float64(frames))
		for _, a := range anims {
			a.apply(t)
		}
		if err := s.emitFrame(); err != nil {
			return err
		}
	}

	for _, a := range anims {
		a.apply(1)
		a.finish(s)
	}

	s.elapsed += float64(frames) / float64(s.FPS)

	return nil
}

func (s *Scene) frameCount(d float64) int {
	frames := int(math.Round(d * float64(s.FPS)))
	if frames < 1 {
		frames = 1
	}

	return frames
}

func (s *Scene) emitFrame() error {
	rect := image.Rect(0, 0, s.W, s.H)
	frame := system.GetImage(rect)

	draw.Draw(frame, rect, &image.Uniform{s.Background}, image.Point{}, draw.Src)
	if s.Backdrop != nil {
		draw.Draw(frame, rect, s.Backdrop, s.Backdrop.Bounds().Min, draw.Over)
	}

	for _, o := range s.objects {
		o.draw(frame)
	}

	return s.sink.WriteFrame(frame)
}
