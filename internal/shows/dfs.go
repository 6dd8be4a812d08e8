package shows

import (
	"github.com/ivlev/algo2video/internal/player"
	"github.com/ivlev/algo2video/internal/scene"
)

var dfsShow = &Show{
	Name:   "dfs",
	Script: "dfs",
	Build:  buildDFS,
}

// mazeNode is one junction in the maze graph.
type mazeNode struct {
	circle *scene.Circle
	label  *scene.Label
}

func newMazeNode(pos scene.Point, name string) mazeNode {
	return mazeNode{
		circle: scene.NewCircle(pos, 34, colorPanel, colorStroke),
		label:  scene.NewLabel(pos, name, 2, colorText),
	}
}

func buildDFS(s *scene.Scene) map[string]player.Action {
	cx := s.Center().X

	// A small maze as a tree: the entrance on top, two branches, the left
	// one a dead end, the exit at the bottom right.
	//
	//        S
	//       / \
	//      A   B
	//     /   / \
	//    X   C   D
	//            |
	//            G
	top := 180.0
	stepY := 110.0

	nodes := map[string]mazeNode{
		"S": newMazeNode(scene.Pt(cx, top), "S"),
		"A": newMazeNode(scene.Pt(cx-180, top+stepY), "A"),
		"B": newMazeNode(scene.Pt(cx+180, top+stepY), "B"),
		"X": newMazeNode(scene.Pt(cx-260, top+2*stepY), "X"),
		"C": newMazeNode(scene.Pt(cx+80, top+2*stepY), "C"),
		"D": newMazeNode(scene.Pt(cx+300, top+2*stepY), "D"),
		"G": newMazeNode(scene.Pt(cx+300, top+3*stepY), "G"),
	}

	edge := func(a, b string) *scene.Line {
		return scene.NewLine(nodes[a].circle.Pos, nodes[b].circle.Pos, colorStroke, 4)
	}

	edges := []*scene.Line{
		edge("S", "A"), edge("S", "B"),
		edge("A", "X"),
		edge("B", "C"), edge("B", "D"),
		edge("D", "G"),
	}

	explorer := scene.NewCircle(nodes["S"].circle.Pos, 16, colorCurrent, colorCurrent)

	// Stack panel on the left edge.
	stackTitle := scene.NewLabel(scene.Pt(150, top-40), "stack", 2, colorMuted)
	stackItems := []*scene.Label{}

	stackPush := func(name string) scene.Animation {
		item := scene.NewLabel(
			scene.Pt(150, top+float64(len(stackItems))*36), name, 2, colorAccent)
		stackItems = append(stackItems, item)

		return scene.FadeIn(item)
	}

	stackPop := func() scene.Animation {
		last := stackItems[len(stackItems)-1]
		stackItems = stackItems[:len(stackItems)-1]

		return scene.FadeOut(last)
	}

	visit := func(name string) []scene.Animation {
		return []scene.Animation{
			scene.MoveTo(explorer, nodes[name].circle.Pos),
			scene.CircleFillTo(nodes[name].circle, colorAccent),
			stackPush(name),
		}
	}

	hook := scene.NewLabel(s.Center(), "How do you escape a maze?", 3, colorText)
	subtitle := scene.NewLabel(s.Center(),
		"Go deep. Hit a wall? Backtrack.", 3, colorText)
	title := scene.NewLabel(s.Center(), "Depth-First Search", 5, colorAccent)

	return map[string]player.Action{
		"01_hook": func() error {
			return s.Play(1.0, scene.Write(hook))
		},
		"02_insight": func() error {
			return s.Play(0.8, scene.Transform(hook, subtitle))
		},
		"03_name": func() error {
			return s.Play(0.8, scene.Transform(subtitle, title))
		},
		"04_start": func() error {
			objs := make([]scene.Object, 0, len(edges)+len(nodes)*2+2)
			for _, e := range edges {
				objs = append(objs, e)
			}
			for _, n := range nodes {
				objs = append(objs, n.circle, n.label)
			}
			objs = append(objs, stackTitle)

			if err := s.Play(1.0,
				scene.MoveTo(title, scene.Pt(cx, 70)),
				scene.FadeIn(objs...)); err != nil {
				return err
			}

			anims := append(visit("S"), scene.FadeIn(explorer))

			return s.Play(0.7, anims...)
		},
		"05_deep": func() error {
			// Commit to the left branch.
			if err := s.Play(0.6, visit("A")...); err != nil {
				return err
			}

			return s.Play(0.6, visit("X")...)
		},
		"06_stuck": func() error {
			return s.Play(0.7, scene.CircleFillTo(nodes["X"].circle, colorBad))
		},
		"07_try": func() error {
			// Backtrack to S, then take the other branch.
			if err := s.Play(0.5, stackPop(),
				scene.MoveTo(explorer, nodes["A"].circle.Pos)); err != nil {
				return err
			}
			if err := s.Play(0.5, stackPop(),
				scene.MoveTo(explorer, nodes["S"].circle.Pos)); err != nil {
				return err
			}

			return s.Play(0.6, visit("B")...)
		},
		"08_found": func() error {
			if err := s.Play(0.6, visit("D")...); err != nil {
				return err
			}

			anims := append(visit("G"), scene.CircleFillTo(nodes["G"].circle, colorGood))

			return s.Play(0.7, anims...)
		},
		"09_takeaway": func() error {
			out := []scene.Object{explorer, stackTitle}
			for _, e := range edges {
				out = append(out, e)
			}
			for _, n := range nodes {
				out = append(out, n.circle, n.label)
			}
			for _, item := range stackItems {
				out = append(out, item)
			}

			takeaway := scene.NewLabel(s.Center(),
				"Dive deep, then retreat.\nThat's DFS.", 3, colorText)

			return s.Play(1.2, scene.FadeOut(out...), scene.Transform(title, takeaway))
		},
	}
}
