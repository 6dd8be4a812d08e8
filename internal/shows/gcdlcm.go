package shows

import (
	"fmt"

	"github.com/ivlev/algo2video/internal/player"
	"github.com/ivlev/algo2video/internal/scene"
)

var gcdLCMShow = &Show{
	Name: "gcd_lcm",
	Run:  runGCDLCM,
}

// runGCDLCM animates the Euclidean algorithm on 48 and 18 as a rectangle
// being tiled with ever smaller squares. The side of the last square that
// tiles it exactly is the GCD. There is no narration; the steps free-run
// with a fixed pause between them.
func runGCDLCM(s *scene.Scene) error {
	const (
		a, b  = 48, 18
		unit  = 14.0 // pixels per number unit
		pause = 0.9
	)

	cx := s.Center().X
	rectW, rectH := a*unit, b*unit
	rectLeft := cx - rectW/2
	rectTop := s.Center().Y - rectH/2 + 60

	title := scene.NewLabel(s.Center(), "GCD and LCM", 5, colorAccent)
	outline := scene.NewBox(
		scene.Pt(rectLeft+rectW/2, rectTop+rectH/2), rectW, rectH, colorPanel, colorStroke)
	size := scene.NewLabel(scene.Pt(cx, rectTop-40), "48 x 18", 3, colorText)

	// square drops one side-length square into the rectangle at a grid
	// offset measured in number units from the rectangle's top left.
	square := func(offX, offY, side float64) *scene.Box {
		return scene.NewBox(
			scene.Pt(rectLeft+(offX+side/2)*unit, rectTop+(offY+side/2)*unit),
			side*unit, side*unit, colorDim, colorAccent)
	}

	equationY := rectTop + rectH + 70
	var equation *scene.Label

	step := func(text string, squares ...*scene.Box) player.Action {
		return func() error {
			next := scene.NewLabel(scene.Pt(cx, equationY), text, 3, colorText)

			anims := []scene.Animation{}
			if equation == nil {
				anims = append(anims, scene.FadeIn(next))
			} else {
				anims = append(anims, scene.Transform(equation, next))
			}
			equation = next

			for _, sq := range squares {
				anims = append(anims, scene.FadeIn(sq))
			}

			return s.Play(1.0, anims...)
		}
	}

	return player.FreeRun(s, pause,
		func() error {
			return s.Play(1.0, scene.Write(title))
		},
		func() error {
			return s.Play(1.0,
				scene.MoveTo(title, scene.Pt(cx, 70)),
				scene.FadeIn(outline, size))
		},
		// 48 = 18 * 2 + 12: two 18-squares fit, a 12 by 18 strip remains.
		step("48 = 18 x 2 + 12", square(0, 0, 18), square(18, 0, 18)),
		// 18 = 12 * 1 + 6: one 12-square fits in the strip.
		step("18 = 12 x 1 + 6", square(36, 0, 12)),
		// 12 = 6 * 2 + 0: the rest tiles exactly with 6-squares.
		step("12 = 6 x 2 + 0", square(36, 12, 6), square(42, 12, 6)),
		func() error {
			gcd := scene.NewLabel(scene.Pt(cx, equationY),
				fmt.Sprintf("gcd(%d, %d) = 6", a, b), 3, colorGood)

			err := s.Play(0.9, scene.Transform(equation, gcd))
			equation = gcd

			return err
		},
		func() error {
			lcm := scene.NewLabel(scene.Pt(cx, equationY+54),
				fmt.Sprintf("lcm(%d, %d) = %d x %d / 6 = %d", a, b, a, b, a*b/6), 3, colorText)

			if err := s.Play(0.9, scene.FadeIn(lcm)); err != nil {
				return err
			}

			return s.Wait(pause)
		},
	)
}
