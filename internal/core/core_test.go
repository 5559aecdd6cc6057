package core

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

func TestColorGridRowsShareStorage(t *testing.T) {
	g := NewColorGrid(4, 3)
	g.Row(1)[2] = mgl32.Vec3{1, 2, 3}
	if got := g.At(2, 1); got != (mgl32.Vec3{1, 2, 3}) {
		t.Fatalf("At(2,1) = %v", got)
	}
	g.Set(3, 2, mgl32.Vec3{4, 5, 6})
	if got := g.Cells()[len(g.Cells())-1]; got != (mgl32.Vec3{4, 5, 6}) {
		t.Fatalf("last cell = %v", got)
	}
	if empty := NewColorGrid(0, -1); empty.W != 1 || empty.H != 1 {
		t.Fatalf("degenerate grid = %dx%d, want 1x1", empty.W, empty.H)
	}
}

func TestClockAdvancesByTick(t *testing.T) {
	c := NewClock(20, 2)
	for i := 0; i < 20; i++ {
		c.Tick()
	}
	if diff := c.Time - 2; diff > 1e-4 || diff < -1e-4 {
		t.Fatalf("time after one second at speed 2 = %f", c.Time)
	}
	c.Set(7)
	if c.Time != 7 {
		t.Fatalf("Set: time = %f", c.Time)
	}
}

func TestFixedStepAccumulates(t *testing.T) {
	fs := NewFixedStep(10)
	start := time.Unix(100, 0)
	if !fs.advance(start) {
		t.Fatal("first call should step from the primed accumulator")
	}
	if fs.advance(start.Add(50 * time.Millisecond)) {
		t.Fatal("stepped after half a tick")
	}
	if !fs.advance(start.Add(100 * time.Millisecond)) {
		t.Fatal("did not step after a full tick")
	}
}

func TestControlClamp(t *testing.T) {
	c := ParameterControl{Min: 0, Max: 1, HasMin: true, HasMax: true}
	if c.Clamp(-2) != 0 || c.Clamp(3) != 1 || c.Clamp(0.5) != 0.5 {
		t.Fatal("bounded clamp wrong")
	}
	if open := (ParameterControl{}); open.Clamp(-5) != -5 {
		t.Fatal("unbounded control clamped")
	}
}

func TestSnapshotLookupAndMap(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "a", Params: []Parameter{{Key: "x", Value: "1"}}},
		{Name: "b", Params: []Parameter{{Key: "y", Value: "two"}}},
	}}
	if p, ok := snap.Lookup("y"); !ok || p.Value != "two" {
		t.Fatalf("Lookup(y) = %+v, %v", p, ok)
	}
	if _, ok := snap.Lookup("z"); ok {
		t.Fatal("Lookup found a missing key")
	}
	m := snap.Map()
	if len(m) != 2 || m["x"] != "1" {
		t.Fatalf("Map = %v", m)
	}
}

type stubScene struct{}

func (stubScene) Name() string { return "stub" }
func (stubScene) Size() Size { return Size{W: 1, H: 1} }
func (stubScene) Reset(int64) {}
func (stubScene) Step() {}
func (stubScene) Pixels() []byte { return make([]byte, 4) }

func TestRegisterIgnoresEmpty(t *testing.T) {
	Register("", func(map[string]string) (Scene, error) { return stubScene{}, nil })
	Register("nil-factory", nil)
	if _, ok := Scenes()[""]; ok {
		t.Fatal("registered an unnamed scene")
	}
	if _, ok := Scenes()["nil-factory"]; ok {
		t.Fatal("registered a nil factory")
	}
	Register("zz-stub", func(map[string]string) (Scene, error) { return stubScene{}, nil })
	names := SceneNames()
	if names[len(names)-1] != "zz-stub" {
		t.Fatalf("SceneNames not sorted: %v", names)
	}
}
