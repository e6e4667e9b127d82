// Package diagram draws one molecule species and animates it when photon
// markers reach its hit zones.
//
// A [Diagram] is built from the species' layout table. Each motion law the
// layout's zones can trigger gets one [Animator], a two-state machine
// (Idle, Active) that owns the frame loop it starts. Clearing or rebuilding
// the diagram stops exactly those loops.
package diagram

import (
	"time"

	"github.com/san-kum/molvib/internal/frame"
	"github.com/san-kum/molvib/internal/molecule"
	"github.com/san-kum/molvib/internal/photon"
	"github.com/san-kum/molvib/internal/scene"
)

// Hit records a marker that landed in a zone.
type Hit struct {
	Marker    *photon.Marker
	Zone      molecule.ZoneSpec
	Activated bool
}

type Diagram struct {
	species   molecule.Species
	params    molecule.MotionParams
	sched     *frame.Scheduler
	mol       *molecule.Molecule
	atoms     []*scene.Circle
	lines     [][]*scene.Line
	animators []*Animator
}

func New(s molecule.Species, sched *frame.Scheduler, p molecule.MotionParams) *Diagram {
	return &Diagram{species: s, params: p, sched: sched}
}

func (d *Diagram) Species() molecule.Species { return d.species }

// Built reports whether the diagram holds a molecule.
func (d *Diagram) Built() bool { return d.mol != nil }

func (d *Diagram) Molecule() *molecule.Molecule { return d.mol }

// Build stops any running animation, lays the molecule out at its canonical
// coordinates and adds its shapes to sc, bonds first so atoms draw on top.
func (d *Diagram) Build(sc *scene.Scene) error {
	mol, err := molecule.Build(d.species)
	if err != nil {
		return err
	}
	d.Clear()
	d.mol = mol

	d.lines = make([][]*scene.Line, len(mol.Bonds))
	for i, b := range mol.Bonds {
		for _, seg := range b.Segments(mol.Atoms) {
			ln := &scene.Line{From: seg.From, To: seg.To, Stroke: b.Color, Width: b.Width}
			d.lines[i] = append(d.lines[i], ln)
			sc.Add(ln)
		}
	}
	d.atoms = make([]*scene.Circle, len(mol.Atoms))
	for i, a := range mol.Atoms {
		c := &scene.Circle{Center: a.Pos, R: a.R, Fill: a.Color}
		d.atoms[i] = c
		sc.Add(c)
	}

	for _, m := range mol.Layout().Motions() {
		d.animators = append(d.animators, newAnimator(m, d.params))
	}
	return nil
}

// Clear stops every animator and returns the diagram to its empty form. The
// caller owns the scene and clears it separately.
func (d *Diagram) Clear() {
	for _, a := range d.animators {
		a.stop()
	}
	d.animators = nil
	d.mol = nil
	d.atoms = nil
	d.lines = nil
}

func (d *Diagram) Animators() []*Animator {
	out := make([]*Animator, len(d.animators))
	copy(out, d.animators)
	return out
}

// Animator returns the animator for m, or nil when the species has none.
func (d *Diagram) Animator(m molecule.Motion) *Animator {
	for _, a := range d.animators {
		if a.motion == m {
			return a
		}
	}
	return nil
}

// Active reports whether any animator is running.
func (d *Diagram) Active() bool {
	for _, a := range d.animators {
		if a.state == Active {
			return true
		}
	}
	return false
}

func (d *Diagram) ActiveMotions() []molecule.Motion {
	var out []molecule.Motion
	for _, a := range d.animators {
		if a.state == Active {
			out = append(out, a.motion)
		}
	}
	return out
}

// Collide tests each marker against the hit zones. Markers in a zone that
// accepts their kind are reported as hits; the caller removes them. The
// zone's animator is activated unless it is already running.
func (d *Diagram) Collide(markers []*photon.Marker) []Hit {
	if d.mol == nil {
		return nil
	}
	var hits []Hit
	for _, m := range markers {
		z, ok := d.zoneFor(m)
		if !ok {
			continue
		}
		h := Hit{Marker: m, Zone: z}
		if a := d.Animator(z.Motion); a != nil {
			h.Activated = a.activate(d.sched, d.step)
		}
		hits = append(hits, h)
	}
	return hits
}

func (d *Diagram) zoneFor(m *photon.Marker) (molecule.ZoneSpec, bool) {
	for _, z := range d.mol.Layout().Zones {
		if z.Contains(m.X) && z.Accepts(m.Kind) {
			return z, true
		}
	}
	return molecule.ZoneSpec{}, false
}

func (d *Diagram) step(a *Animator, now time.Duration) {
	if d.mol == nil || !a.due(now) {
		return
	}
	a.law.Apply(d.mol)
	d.sync()
}

// sync copies atom positions into the scene and recomputes every bond line.
func (d *Diagram) sync() {
	for i, a := range d.mol.Atoms {
		d.atoms[i].Center = a.Pos
	}
	for i, b := range d.mol.Bonds {
		for j, seg := range b.Segments(d.mol.Atoms) {
			d.lines[i][j].From = seg.From
			d.lines[i][j].To = seg.To
		}
	}
}

// Shapes returns the atom circles in atom order.
func (d *Diagram) Shapes() []*scene.Circle {
	out := make([]*scene.Circle, len(d.atoms))
	copy(out, d.atoms)
	return out
}
