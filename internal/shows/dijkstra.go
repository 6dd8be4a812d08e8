package shows

import (
	"fmt"
	"image/color"

	"github.com/ivlev/algo2video/internal/player"
	"github.com/ivlev/algo2video/internal/scene"
)

var dijkstraShow = &Show{
	Name:   "dijkstra",
	Script: "dijkstra",
	Build:  buildDijkstra,
}

type graphNode struct {
	circle *scene.Circle
	label  *scene.Label
}

type graphEdge struct {
	line   *scene.Line
	weight *scene.Label
}

func buildDijkstra(s *scene.Scene) map[string]player.Action {
	cx := s.Center().X
	cy := s.Center().Y + 40

	newNode := func(pos scene.Point, name string) graphNode {
		return graphNode{
			circle: scene.NewCircle(pos, 38, colorPanel, colorStroke),
			label:  scene.NewLabel(pos, name, 3, colorText),
		}
	}

	nodes := map[string]graphNode{
		"A": newNode(scene.Pt(cx-380, cy), "A"),
		"B": newNode(scene.Pt(cx-100, cy-130), "B"),
		"C": newNode(scene.Pt(cx-100, cy+130), "C"),
		"D": newNode(scene.Pt(cx+180, cy), "D"),
		"E": newNode(scene.Pt(cx+420, cy), "E"),
	}

	newEdge := func(a, b string, w int) graphEdge {
		from, to := nodes[a].circle.Pos, nodes[b].circle.Pos
		mid := scene.Pt((from.X+to.X)/2, (from.Y+to.Y)/2)

		// Nudge the weight off the line so it stays readable.
		mid.Y -= 24

		return graphEdge{
			line:   scene.NewLine(from, to, colorStroke, 4),
			weight: scene.NewLabel(mid, fmt.Sprintf("%d", w), 2, colorMuted),
		}
	}

	edges := map[string]graphEdge{
		"AB": newEdge("A", "B", 4),
		"AC": newEdge("A", "C", 2),
		"CB": newEdge("C", "B", 1),
		"BD": newEdge("B", "D", 5),
		"CD": newEdge("C", "D", 10),
		"DE": newEdge("D", "E", 2),
	}

	// Distance table pinned to the top right corner.
	tableX := float64(s.W) - 170
	tableTop := 150.0
	order := []string{"A", "B", "C", "D", "E"}

	dist := make(map[string]*scene.Label, len(order))
	for i, name := range order {
		dist[name] = scene.NewLabel(
			scene.Pt(tableX, tableTop+40+float64(i)*36), name+": inf", 2, colorMuted)
	}

	tableTitle := scene.NewLabel(scene.Pt(tableX, tableTop), "distance", 2, colorMuted)

	setDist := func(name, value string, col color.RGBA) scene.Animation {
		prev := dist[name]
		next := scene.NewLabel(prev.Pos, name+": "+value, 2, col)
		dist[name] = next

		return scene.Transform(prev, next)
	}

	hook := scene.NewLabel(s.Center(), "How does your GPS\nfind the shortest route?", 3, colorText)
	title := scene.NewLabel(s.Center(), "Dijkstra's Algorithm", 5, colorAccent)
	caption := scene.NewLabel(scene.Pt(cx, float64(s.H)-80), "", 2, colorMuted)

	captionTo := func(text string) scene.Animation {
		prev := caption
		next := scene.NewLabel(prev.Pos, text, 2, colorMuted)
		caption = next

		return scene.Transform(prev, next)
	}

	var takeaway *scene.Label

	markDone := func(name string) scene.Animation {
		return scene.CircleFillTo(nodes[name].circle, colorGood)
	}

	lightEdge := func(key string) scene.Animation {
		return scene.LineColorTo(edges[key].line, colorCurrent)
	}

	return map[string]player.Action{
		"01_hook": func() error {
			return s.Play(1.2, scene.Write(hook))
		},
		"02_answer": func() error {
			return s.Play(0.8, scene.Transform(hook, title))
		},
		"03_graph": func() error {
			objs := make([]scene.Object, 0, len(edges)*2+len(nodes)*2)
			for _, e := range edges {
				objs = append(objs, e.line, e.weight)
			}
			for _, n := range nodes {
				objs = append(objs, n.circle, n.label)
			}

			return s.Play(1.2,
				scene.MoveTo(title, scene.Pt(cx, 70)),
				scene.FadeIn(objs...))
		},
		"04_problem": func() error {
			return s.Play(0.8,
				scene.CircleFillTo(nodes["A"].circle, colorAccent),
				captionTo("shortest path from A to every other node"))
		},
		"05_insight": func() error {
			return s.Play(0.8, captionTo("always visit the closest unvisited node first"))
		},
		"06_why": func() error {
			return s.Play(0.8, captionTo("if it's the closest, no other path can beat it"))
		},
		"07_init": func() error {
			if err := s.Play(0.8, scene.FadeIn(tableObjects(tableTitle, dist, order)...)); err != nil {
				return err
			}

			return s.Play(0.5, setDist("A", "0", colorAccent))
		},
		"08_begin": func() error {
			return s.Play(0.8, lightEdge("AB"), lightEdge("AC"))
		},
		"09_step1": func() error {
			return s.Play(0.8,
				setDist("B", "4", colorText),
				setDist("C", "2", colorText))
		},
		"10_pick_c": func() error {
			return s.Play(0.8, markDone("C"), captionTo("C is closest: visit it"))
		},
		"11_from_c": func() error {
			return s.Play(0.8, lightEdge("CB"), captionTo("reach B through C: 2 + 1 = 3"))
		},
		"12_update_b": func() error {
			return s.Play(0.8,
				setDist("B", "3", colorText),
				lightEdge("CD"),
				setDist("D", "10", colorText))
		},
		"13_visit_b": func() error {
			return s.Play(0.8, markDone("B"), captionTo("B is next closest: visit it"))
		},
		"14_from_b": func() error {
			return s.Play(0.8,
				lightEdge("BD"),
				setDist("D", "8", colorText),
				captionTo("reach D through B: 3 + 5 = 8"))
		},
		"15_visit_d": func() error {
			return s.Play(0.8,
				markDone("D"),
				lightEdge("DE"),
				setDist("E", "10", colorText),
				captionTo("reach E through D: 8 + 2 = 10"))
		},
		"16_visit_e": func() error {
			return s.Play(0.8, markDone("E"), captionTo("all nodes are done"))
		},
		"17_result": func() error {
			anims := []scene.Animation{captionTo("every distance from A is now final")}
			for _, name := range order {
				anims = append(anims, setDist(name, finalDistance(name), colorGood))
			}

			return s.Play(0.9, anims...)
		},
		"18_path": func() error {
			anims := []scene.Animation{
				captionTo("shortest path to E: A - C - B - D - E = 10"),
			}
			for _, key := range []string{"AC", "CB", "BD", "DE"} {
				anims = append(anims, scene.LineColorTo(edges[key].line, colorGood))
			}

			return s.Play(1.0, anims...)
		},
		"19_takeaway": func() error {
			out := []scene.Object{tableTitle, caption}
			for _, e := range edges {
				out = append(out, e.line, e.weight)
			}
			for _, n := range nodes {
				out = append(out, n.circle, n.label)
			}
			for _, name := range order {
				out = append(out, dist[name])
			}

			takeaway = scene.NewLabel(s.Center(),
				"Always pick the closest node\nand the path comes out optimal.", 3, colorText)

			return s.Play(1.2, scene.FadeOut(out...), scene.Transform(title, takeaway))
		},
		"20_complexity": func() error {
			complexity := scene.NewLabel(s.Center(),
				"O(V^2), or O(E log V)\nwith a priority queue", 3, colorText)

			return s.Play(0.9, scene.Transform(takeaway, complexity))
		},
	}
}

func tableObjects(title *scene.Label, dist map[string]*scene.Label, order []string) []scene.Object {
	objs := []scene.Object{title}
	for _, name := range order {
		objs = append(objs, dist[name])
	}

	return objs
}

func finalDistance(name string) string {
	switch name {
	case "A":
		return "0"
	case "B":
		return "3"
	case "C":
		return "2"
	case "D":
		return "8"
	case "E":
		return "10"
	}

	return "?"
}
