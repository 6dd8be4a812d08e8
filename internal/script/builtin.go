package script

import "fmt"

// DefaultVoice is the neural voice used when a script does not name one.
const DefaultVoice = "en-US-GuyNeural"

// Builtin returns one of the bundled narration scripts by name.
func Builtin(name string) (*Script, error) {
	for _, s := range builtins {
		if s.Name == name {
			clone := *s
			return &clone, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// Names lists the bundled scripts.
func Names() []string {
	names := make([]string, len(builtins))
	for i, s := range builtins {
		names[i] = s.Name
	}

	return names
}

var builtins = []*Script{binarySearch, dfs, dijkstra}

var binarySearch = &Script{
	Name:  "binary_search",
	Voice: DefaultVoice,
	Pause: 0.5,
	Segments: []Line{
		{ID: "01_hook", Text: "How do you find a word in a dictionary?"},
		{ID: "02_answer", Text: "Binary Search."},
		{ID: "03_setup", Text: "Imagine a sorted array of numbers. We want to find a target value."},
		{ID: "04_naive", Text: "We could check every element one by one. But that's slow."},
		{ID: "05_insight", Text: "The key insight: if the array is sorted, we can eliminate half the elements at once."},
		{ID: "06_step1", Text: "Start in the middle. Is our target greater or less than this value?"},
		{ID: "07_step2", Text: "If greater, search the right half. If less, search the left half."},
		{ID: "08_step3", Text: "Repeat. Each step cuts the search space in half."},
		{ID: "09_example", Text: "Let's find 23 in this array. Middle is 15. 23 is greater, so go right."},
		{ID: "10_example2", Text: "New middle is 27. 23 is less, so go left. Found it!"},
		{ID: "11_complexity", Text: "With 16 elements, we need at most 4 steps. That's log n."},
		{ID: "12_takeaway", Text: "Divide and conquer turns linear search into logarithmic search."},
	},
}

// Shorter pause for the punchy maze narration.
var dfs = &Script{
	Name:  "dfs",
	Voice: DefaultVoice,
	Pause: 0.4,
	Segments: []Line{
		{ID: "01_hook", Text: "How do you escape a maze?"},
		{ID: "02_insight", Text: "Go as deep as you can. Hit a wall? Backtrack and try another path."},
		{ID: "03_name", Text: "This is Depth-First Search."},
		{ID: "04_start", Text: "Start at the entrance. Pick a path and commit."},
		{ID: "05_deep", Text: "Keep going deeper. Don't look back."},
		{ID: "06_stuck", Text: "Dead end! Time to backtrack."},
		{ID: "07_try", Text: "Back up and try the next unexplored path."},
		{ID: "08_found", Text: "Keep exploring until you find the exit."},
		{ID: "09_takeaway", Text: "Depth-first: Dive deep, then retreat. That's DFS."},
	},
}

var dijkstra = &Script{
	Name:  "dijkstra",
	Voice: DefaultVoice,
	Pause: 0.5,
	Segments: []Line{
		{ID: "01_hook", Text: "How does your GPS find the shortest route?"},
		{ID: "02_answer", Text: "It uses Dijkstra's algorithm."},
		{ID: "03_graph", Text: "Imagine a map as a graph. Cities are nodes. Roads are edges with distances."},
		{ID: "04_problem", Text: "We want the shortest path from a starting city to all other cities."},
		{ID: "05_insight", Text: "Here's the key insight: always visit the closest unvisited city first."},
		{ID: "06_why", Text: "Why? Because if it's the closest, no other path can be shorter."},
		{ID: "07_init", Text: "Start by setting the distance to your starting point as zero, and everything else as infinity."},
		{ID: "08_begin", Text: "Now we begin. From A, we can reach B and C."},
		{ID: "09_step1", Text: "The distance to B through A is 4. The distance to C through A is 2."},
		{ID: "10_pick_c", Text: "C is closer. So we visit C first and mark it as done."},
		{ID: "11_from_c", Text: "From C, we can reach B in 2 plus 1 equals 3. That's better than 4!"},
		{ID: "12_update_b", Text: "We update B's distance to 3. We can also reach D through C in 10."},
		{ID: "13_visit_b", Text: "Now B is the closest unvisited. Visit B."},
		{ID: "14_from_b", Text: "From B, we can reach D in 3 plus 5 equals 8. That's better than 10!"},
		{ID: "15_visit_d", Text: "Visit D. From D, we reach E in 8 plus 2 equals 10."},
		{ID: "16_visit_e", Text: "Finally, visit E. All nodes are done."},
		{ID: "17_result", Text: "We now have the shortest distance from A to every other node."},
		{ID: "18_path", Text: "The shortest path to E is A to C to B to D to E, with total distance 10."},
		{ID: "19_takeaway", Text: "Dijkstra's algorithm: always pick the closest, and you'll find the optimal path."},
		{ID: "20_complexity", Text: "It runs in O of V squared, or O of E log V with a priority queue."},
	},
}
