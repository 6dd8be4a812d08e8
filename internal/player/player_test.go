package player

import (
	"errors"
	"math"
	"testing"

	"github.com/ivlev/algo2video/internal/timeline"
)

// fakeClock advances only when told to: actions tick it by a fixed cost,
// holds tick it by the requested amount.
type fakeClock struct {
	now   float64
	holds []float64
}

func (c *fakeClock) Elapsed() float64 { return c.now }

func (c *fakeClock) Wait(seconds float64) error {
	c.holds = append(c.holds, seconds)
	c.now += seconds

	return nil
}

func (c *fakeClock) action(cost float64) Action {
	return func() error {
		c.now += cost

		return nil
	}
}

func manifestOf(t *testing.T, pause float64, ids []string, durations []float64) *timeline.Manifest {
	t.Helper()

	entries := make([]timeline.Entry, len(ids))
	for i, id := range ids {
		entries[i] = timeline.Entry{ID: id, Text: id}
	}

	m, err := timeline.Builder{Pause: pause}.Build(entries, durations)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	return m
}

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPlayPadsShortAction(t *testing.T) {
	clock := &fakeClock{}
	m := manifestOf(t, 0, []string{"intro"}, []float64{5.0})

	actions := map[string]Action{"intro": clock.action(3.2)}

	if err := Play(clock, m, actions, Options{}); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if len(clock.holds) != 1 || !almost(clock.holds[0], 1.8) {
		t.Errorf("holds = %v, want [1.8]", clock.holds)
	}
}

func TestPlayOverrunSkipsHold(t *testing.T) {
	clock := &fakeClock{}
	m := manifestOf(t, 0, []string{"intro"}, []float64{5.0})

	actions := map[string]Action{"intro": clock.action(6.0)}

	if err := Play(clock, m, actions, Options{}); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if len(clock.holds) != 0 {
		t.Errorf("holds = %v, want none", clock.holds)
	}

	if !almost(clock.now, 6.0) {
		t.Errorf("elapsed = %v, want 6.0", clock.now)
	}
}

func TestPlayWindowIncludesPause(t *testing.T) {
	clock := &fakeClock{}
	m := manifestOf(t, 0.5, []string{"a", "b"}, []float64{2.0, 3.0})

	actions := map[string]Action{
		"a": clock.action(1.0),
		"b": clock.action(1.0),
	}

	if err := Play(clock, m, actions, Options{}); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	// Window of "a" is 2.5 (clip plus pause), of "b" 3.0 (no trailing
	// pause), so the holds are 1.5 and 2.0.
	want := []float64{1.5, 2.0}
	if len(clock.holds) != len(want) {
		t.Fatalf("holds = %v, want %v", clock.holds, want)
	}

	for i := range want {
		if !almost(clock.holds[i], want[i]) {
			t.Errorf("holds[%d] = %v, want %v", i, clock.holds[i], want[i])
		}
	}
}

func TestPlayWithoutCatchUpOverrunShiftsLaterSegments(t *testing.T) {
	clock := &fakeClock{}
	m := manifestOf(t, 0, []string{"a", "b"}, []float64{2.0, 2.0})

	actions := map[string]Action{
		"a": clock.action(3.0), // one second over
		"b": clock.action(1.0),
	}

	if err := Play(clock, m, actions, Options{}); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	// "b" still gets its full local window, so the whole run ends late.
	if len(clock.holds) != 1 || !almost(clock.holds[0], 1.0) {
		t.Errorf("holds = %v, want [1.0]", clock.holds)
	}

	if !almost(clock.now, 5.0) {
		t.Errorf("elapsed = %v, want 5.0", clock.now)
	}
}

func TestPlayCatchUpAbsorbsOverrun(t *testing.T) {
	clock := &fakeClock{}
	m := manifestOf(t, 0, []string{"a", "b"}, []float64{2.0, 2.0})

	actions := map[string]Action{
		"a": clock.action(3.0), // one second over
		"b": clock.action(1.0),
	}

	if err := Play(clock, m, actions, Options{CatchUp: true}); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	// The second hold shrinks so the run ends on the manifest total.
	if !almost(clock.now, 4.0) {
		t.Errorf("elapsed = %v, want 4.0", clock.now)
	}
}

func TestPlayCatchUpOnNonZeroClock(t *testing.T) {
	clock := &fakeClock{now: 10.0}
	m := manifestOf(t, 0, []string{"a"}, []float64{2.0})

	actions := map[string]Action{"a": clock.action(0.5)}

	if err := Play(clock, m, actions, Options{CatchUp: true}); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	// Deadlines are relative to the clock value Play started at.
	if !almost(clock.now, 12.0) {
		t.Errorf("elapsed = %v, want 12.0", clock.now)
	}
}

func TestPlayMissingAction(t *testing.T) {
	clock := &fakeClock{}
	m := manifestOf(t, 0, []string{"a", "b"}, []float64{1.0, 1.0})

	actions := map[string]Action{"a": clock.action(0.5)}

	err := Play(clock, m, actions, Options{})
	if !errors.Is(err, ErrMissingAction) {
		t.Fatalf("Play() error = %v, want ErrMissingAction", err)
	}
}

func TestPlayActionErrorNamesSegment(t *testing.T) {
	clock := &fakeClock{}
	m := manifestOf(t, 0, []string{"a"}, []float64{1.0})

	boom := errors.New("draw failed")
	actions := map[string]Action{"a": func() error { return boom }}

	err := Play(clock, m, actions, Options{})
	if !errors.Is(err, boom) {
		t.Fatalf("Play() error = %v, want wrapped draw error", err)
	}
}

func TestPlayNilManifest(t *testing.T) {
	if err := Play(&fakeClock{}, nil, nil, Options{}); !errors.Is(err, ErrNilManifest) {
		t.Fatalf("Play() error = %v, want ErrNilManifest", err)
	}
}

func TestFreeRun(t *testing.T) {
	clock := &fakeClock{}

	err := FreeRun(clock, 0.5, clock.action(1.0), clock.action(1.0))
	if err != nil {
		t.Fatalf("FreeRun() error = %v", err)
	}

	if !almost(clock.now, 3.0) {
		t.Errorf("elapsed = %v, want 3.0", clock.now)
	}

	if len(clock.holds) != 2 {
		t.Errorf("holds = %v, want two pauses", clock.holds)
	}
}
