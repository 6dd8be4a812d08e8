package shows

import (
	"image/color"
	"strconv"

	"github.com/ivlev/algo2video/internal/player"
	"github.com/ivlev/algo2video/internal/scene"
)

var binarySearchShow = &Show{
	Name:   "binary_search",
	Script: "binary_search",
	Build:  buildBinarySearch,
}

// cell is one array slot: the box, the value inside it and the small index
// underneath.
type cell struct {
	box   *scene.Box
	value *scene.Label
	index *scene.Label
}

func (c cell) group() *scene.Group {
	return scene.NewGroup(c.box, c.value, c.index)
}

func (c cell) fill(col color.RGBA) scene.Animation {
	return scene.FillTo(c.box, col)
}

func buildBinarySearch(s *scene.Scene) map[string]player.Action {
	values := []int{3, 7, 11, 15, 19, 23, 27, 31}

	cx := s.Center().X
	rowY := s.Center().Y + 20

	boxW, boxH, gap := 110.0, 90.0, 16.0
	rowW := float64(len(values))*boxW + float64(len(values)-1)*gap
	left := cx - rowW/2 + boxW/2

	cells := make([]cell, len(values))
	for i, v := range values {
		pos := scene.Pt(left+float64(i)*(boxW+gap), rowY)
		cells[i] = cell{
			box:   scene.NewBox(pos, boxW, boxH, colorPanel, colorStroke),
			value: scene.NewLabel(pos, strconv.Itoa(v), 3, colorText),
			index: scene.NewLabel(scene.Pt(pos.X, pos.Y+boxH/2+28), strconv.Itoa(i), 2, colorMuted),
		}
	}

	hook := scene.NewLabel(s.Center(), "How do you find\na word in a dictionary?", 3, colorText)
	title := scene.NewLabel(s.Center(), "Binary Search", 5, colorAccent)
	target := scene.NewLabel(scene.Pt(cx, rowY-boxH/2-70), "target = 23", 3, colorCurrent)
	caption := scene.NewLabel(scene.Pt(cx, rowY+boxH/2+90), "", 2, colorMuted)
	arrow := scene.NewArrow(
		scene.Pt(cx, rowY-boxH/2-40), scene.Pt(cx, rowY-boxH/2-8), colorCurrent, 5)

	captionTo := func(text string) scene.Animation {
		next := scene.NewLabel(caption.Pos, text, 2, colorMuted)
		prev := caption
		caption = next

		return scene.Transform(prev, next)
	}

	// pointTo aims the mid arrow at array slot i.
	pointTo := func(i int) scene.Animation {
		x := cells[i].box.Pos.X

		return scene.MoveTo(arrow, scene.Pt(x, arrow.Pos.Y))
	}

	fillRange := func(from, to int, col color.RGBA) []scene.Animation {
		anims := make([]scene.Animation, 0, to-from+1)
		for i := from; i <= to; i++ {
			anims = append(anims, cells[i].fill(col))
		}

		return anims
	}

	return map[string]player.Action{
		"01_hook": func() error {
			return s.Play(1.2, scene.Write(hook))
		},
		"02_answer": func() error {
			return s.Play(0.8, scene.Transform(hook, title))
		},
		"03_setup": func() error {
			groups := make([]scene.Object, len(cells))
			for i, c := range cells {
				groups[i] = c.group()
			}

			anims := []scene.Animation{
				scene.MoveTo(title, scene.Pt(cx, 80)),
				scene.FadeIn(groups...),
			}
			if err := s.Play(1.0, anims...); err != nil {
				return err
			}

			return s.Play(0.6, scene.FadeIn(target))
		},
		"04_naive": func() error {
			// A slow linear scan over the first slots.
			for i := 0; i < 3; i++ {
				if err := s.Play(0.35, cells[i].fill(colorCurrent)); err != nil {
					return err
				}
				if err := s.Play(0.25, cells[i].fill(colorPanel)); err != nil {
					return err
				}
			}

			return nil
		},
		"05_insight": func() error {
			if err := s.Play(0.8, fillRange(0, 3, colorDim)...); err != nil {
				return err
			}

			return s.Play(0.6, fillRange(0, 3, colorPanel)...)
		},
		"06_step1": func() error {
			mid := (len(cells) - 1) / 2

			anims := append(fillRange(mid, mid, colorCurrent), scene.FadeIn(arrow), pointTo(mid))

			return s.Play(0.8, anims...)
		},
		"07_step2": func() error {
			return s.Play(0.8, captionTo("greater: go right, less: go left"))
		},
		"08_step3": func() error {
			return s.Play(0.8, captionTo("each step halves the search space"))
		},
		"09_example": func() error {
			// Middle slot holds 15; 23 is greater, drop the left half.
			if err := s.Play(0.6, cells[3].fill(colorCurrent), pointTo(3)); err != nil {
				return err
			}

			anims := append(fillRange(0, 3, colorDim), captionTo("23 > 15: search the right half"))

			return s.Play(0.9, anims...)
		},
		"10_example2": func() error {
			// New middle holds 27; 23 is less, drop it and land on 23.
			if err := s.Play(0.6, cells[6].fill(colorCurrent), pointTo(6)); err != nil {
				return err
			}

			if err := s.Play(0.6, fillRange(6, 7, colorDim)...); err != nil {
				return err
			}

			return s.Play(0.7, cells[5].fill(colorGood), pointTo(5),
				captionTo("found 23!"))
		},
		"11_complexity": func() error {
			return s.Play(0.9, captionTo("16 elements: at most 4 steps. That is log n."))
		},
		"12_takeaway": func() error {
			out := make([]scene.Object, 0, len(cells)*3+2)
			for _, c := range cells {
				out = append(out, c.box, c.value, c.index)
			}
			out = append(out, target, arrow)

			takeaway := scene.NewLabel(s.Center(),
				"Divide and conquer:\nlinear search becomes logarithmic", 3, colorText)

			return s.Play(1.2,
				scene.FadeOut(out...),
				scene.Transform(caption, takeaway))
		},
	}
}
