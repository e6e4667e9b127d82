package diagram

import (
	"testing"
	"time"

	"github.com/san-kum/molvib/internal/frame"
	"github.com/san-kum/molvib/internal/molecule"
	"github.com/san-kum/molvib/internal/photon"
	"github.com/san-kum/molvib/internal/scene"
)

func newCO(t *testing.T) (*Diagram, *frame.Scheduler, *scene.Scene) {
	t.Helper()
	s := frame.NewScheduler()
	sc := scene.New(800, 600)
	d := New(molecule.CO, s, molecule.DefaultMotionParams())
	if err := d.Build(sc); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return d, s, sc
}

func markerAt(k photon.Kind, x float64) *photon.Marker {
	e := photon.NewEmitter(photon.DefaultParams())
	m := e.Emit(k)
	m.X = x
	return m
}

func TestBuildAddsShapes(t *testing.T) {
	d, _, sc := newCO(t)
	circles, lines := sc.Counts()
	if circles != 2 || lines != 3 {
		t.Errorf("expected 2 circles and 3 lines, got %d and %d", circles, lines)
	}
	if len(d.Animators()) != 2 {
		t.Errorf("CO should carry stretch and rotate animators, got %d", len(d.Animators()))
	}
	for _, a := range d.Animators() {
		if a.State() != Idle {
			t.Errorf("%s should start idle", a.Motion())
		}
	}
}

func TestCollideActivatesOnce(t *testing.T) {
	d, s, _ := newCO(t)

	hits := d.Collide([]*photon.Marker{markerAt(photon.IR, 400)})
	if len(hits) != 1 || !hits[0].Activated {
		t.Fatalf("expected one activating hit, got %+v", hits)
	}
	stretch := d.Animator(molecule.Stretch)
	if stretch.State() != Active || s.Pending() != 1 {
		t.Fatalf("expected active stretch with one loop, state=%s pending=%d", stretch.State(), s.Pending())
	}

	hits = d.Collide([]*photon.Marker{markerAt(photon.IR, 390)})
	if len(hits) != 1 || hits[0].Activated {
		t.Errorf("second hit should be absorbed without reactivation, got %+v", hits)
	}
	if s.Pending() != 1 {
		t.Errorf("a second loop was started, pending=%d", s.Pending())
	}
}

func TestCollideFiltersKindAndRange(t *testing.T) {
	d, _, _ := newCO(t)

	misses := []*photon.Marker{
		markerAt(photon.Microwave, 400), // wrong kind for the stretch zone
		markerAt(photon.IR, 384),
		markerAt(photon.IR, 416),
		markerAt(photon.Broadband, 435),
	}
	if hits := d.Collide(misses); len(hits) != 0 {
		t.Errorf("expected no hits, got %d", len(hits))
	}

	hits := d.Collide([]*photon.Marker{markerAt(photon.Microwave, 445)})
	if len(hits) != 1 || hits[0].Zone.Motion != molecule.Rotate {
		t.Errorf("expected a rotate hit at the zone edge, got %+v", hits)
	}
}

func TestStretchThrottle(t *testing.T) {
	d, s, sc := newCO(t)
	d.Collide([]*photon.Marker{markerAt(photon.IR, 400)})
	oxygen := d.Shapes()[1]

	s.Tick(1000 * time.Millisecond)
	if oxygen.Center.X != 460 {
		t.Fatalf("first active frame should stretch, oxygen at %v", oxygen.Center.X)
	}

	s.Tick(1100 * time.Millisecond)
	if oxygen.Center.X != 460 {
		t.Errorf("throttled frame moved oxygen to %v", oxygen.Center.X)
	}

	s.Tick(1201 * time.Millisecond)
	if oxygen.Center.X != 450 {
		t.Errorf("expected contraction after the interval, oxygen at %v", oxygen.Center.X)
	}
	if got := d.Animator(molecule.Stretch).Fired(); got != 2 {
		t.Errorf("expected 2 firings, got %d", got)
	}

	var lines []*scene.Line
	for _, sh := range sc.Shapes() {
		if ln, ok := sh.(*scene.Line); ok {
			lines = append(lines, ln)
		}
	}
	for _, ln := range lines {
		if ln.From.X != 400 || ln.To.X != 450 {
			t.Errorf("bond line not synced: %v -> %v", ln.From, ln.To)
		}
	}
}

func TestBendEveryInterval(t *testing.T) {
	s := frame.NewScheduler()
	sc := scene.New(800, 600)
	d := New(molecule.H2O, s, molecule.DefaultMotionParams())
	if err := d.Build(sc); err != nil {
		t.Fatal(err)
	}

	if hits := d.Collide([]*photon.Marker{markerAt(photon.Broadband, 360)}); len(hits) != 1 {
		t.Fatalf("expected a hit on the left hydrogen zone, got %d", len(hits))
	}
	s.Tick(0)
	if y := d.Molecule().Atoms[1].Pos.Y; y != 310 {
		t.Errorf("expected hydrogen at y=310, got %v", y)
	}
	s.Tick(250 * time.Millisecond)
	if y := d.Molecule().Atoms[1].Pos.Y; y != 290 {
		t.Errorf("expected hydrogen at y=290, got %v", y)
	}
}

func TestClearStopsLoops(t *testing.T) {
	d, s, _ := newCO(t)
	d.Collide([]*photon.Marker{markerAt(photon.IR, 400), markerAt(photon.Microwave, 430)})
	if s.Pending() != 2 {
		t.Fatalf("expected 2 running loops, got %d", s.Pending())
	}

	d.Clear()
	if s.Pending() != 0 {
		t.Errorf("clear left %d loops pending", s.Pending())
	}
	if d.Built() || d.Active() {
		t.Error("cleared diagram should be empty and idle")
	}
	if hits := d.Collide([]*photon.Marker{markerAt(photon.IR, 400)}); hits != nil {
		t.Error("empty diagram should not report hits")
	}
}

func TestRebuildWhileActive(t *testing.T) {
	d, s, sc := newCO(t)
	d.Collide([]*photon.Marker{markerAt(photon.IR, 400)})
	s.Tick(time.Second)

	sc.Clear()
	if err := d.Build(sc); err != nil {
		t.Fatal(err)
	}
	if s.Pending() != 0 || d.Active() {
		t.Errorf("rebuild should stop the old loop, pending=%d", s.Pending())
	}
	if d.Molecule().Atoms[1].Pos.X != 450 {
		t.Errorf("rebuild should restore canonical layout, got %v", d.Molecule().Atoms[1].Pos)
	}

	d.Collide([]*photon.Marker{markerAt(photon.IR, 400)})
	if s.Pending() != 1 {
		t.Errorf("expected a single fresh loop, got %d", s.Pending())
	}
}

func TestTransparentSpecies(t *testing.T) {
	s := frame.NewScheduler()
	d := New(molecule.N2, s, molecule.DefaultMotionParams())
	if err := d.Build(scene.New(800, 600)); err != nil {
		t.Fatal(err)
	}
	for _, k := range photon.Kinds {
		if hits := d.Collide([]*photon.Marker{markerAt(k, 400)}); len(hits) != 0 {
			t.Errorf("N2 should not absorb %s", k)
		}
	}
}
