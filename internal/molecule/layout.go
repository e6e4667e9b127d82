package molecule

import (
	"github.com/san-kum/molvib/internal/photon"
	"github.com/san-kum/molvib/internal/scene"
)

// HitWindow is the half width of the zone around the anchor atom.
const HitWindow = 15.0

type AtomSpec struct {
	Element string
	X, Y    float64
	R       float64
	Color   scene.Color
}

// BondSpec joins atoms A and B with Order parallel lines spaced Spacing apart.
type BondSpec struct {
	A, B    int
	Order   int
	Spacing float64
	Width   float64
	Color   scene.Color
}

// ZoneSpec is an inclusive x interval. A marker inside it whose kind is in
// Kinds (or any kind when Kinds is empty) activates Motion.
type ZoneSpec struct {
	Min, Max float64
	Kinds    []photon.Kind
	Motion   Motion
}

func (z ZoneSpec) Contains(x float64) bool { return x >= z.Min && x <= z.Max }

func (z ZoneSpec) Accepts(k photon.Kind) bool {
	if len(z.Kinds) == 0 {
		return true
	}
	for _, want := range z.Kinds {
		if want == k {
			return true
		}
	}
	return false
}

// Layout is the canonical drawing of one species. Atom 0 is the anchor.
type Layout struct {
	Species Species
	Name    string
	Atoms   []AtomSpec
	Bonds   []BondSpec
	Zones   []ZoneSpec
}

// Motions lists the distinct motion laws the zones can activate, in zone order.
func (l Layout) Motions() []Motion {
	var out []Motion
	seen := make(map[Motion]bool)
	for _, z := range l.Zones {
		if !seen[z.Motion] {
			seen[z.Motion] = true
			out = append(out, z.Motion)
		}
	}
	return out
}

// Lines counts the bond lines drawn for the layout.
func (l Layout) Lines() int {
	n := 0
	for _, b := range l.Bonds {
		n += b.Order
	}
	return n
}

func zone(center, half float64, m Motion, kinds ...photon.Kind) ZoneSpec {
	return ZoneSpec{Min: center - half, Max: center + half, Kinds: kinds, Motion: m}
}

// triZones covers the anchor and both neighbours of a triatomic molecule.
func triZones(m Motion, left, right, half float64) []ZoneSpec {
	return []ZoneSpec{
		zone(400, HitWindow, m),
		zone(left, half, m),
		zone(right, half, m),
	}
}

var layouts = map[Species]Layout{
	CO: {
		Species: CO, Name: "carbon monoxide",
		Atoms: []AtomSpec{
			{"C", 400, 300, 15, scene.Black},
			{"O", 450, 300, 15, scene.Red},
		},
		Bonds: []BondSpec{
			{A: 0, B: 1, Order: 3, Spacing: 3, Width: 4, Color: scene.Red},
		},
		Zones: []ZoneSpec{
			zone(400, HitWindow, Stretch, photon.IR),
			zone(435, 10, Rotate, photon.Microwave),
		},
	},
	CO2: {
		Species: CO2, Name: "carbon dioxide",
		Atoms: []AtomSpec{
			{"C", 400, 300, 15, scene.Black},
			{"O", 350, 300, 10, scene.Green},
			{"O", 450, 300, 10, scene.Green},
		},
		Bonds: []BondSpec{
			{A: 1, B: 0, Order: 1, Width: 7, Color: scene.Green},
			{A: 2, B: 0, Order: 1, Width: 8, Color: scene.Green},
		},
		Zones: triZones(Bend, 350, 450, HitWindow),
	},
	N2: {
		Species: N2, Name: "nitrogen",
		Atoms: []AtomSpec{
			{"N", 400, 300, 15, scene.Blue},
			{"N", 450, 300, 15, scene.Blue},
		},
		Bonds: []BondSpec{
			{A: 0, B: 1, Order: 3, Spacing: 3, Width: 4, Color: scene.Blue},
		},
	},
	O2: {
		Species: O2, Name: "oxygen",
		Atoms: []AtomSpec{
			{"O", 400, 300, 15, scene.Green},
			{"O", 450, 300, 15, scene.Green},
		},
		Bonds: []BondSpec{
			{A: 0, B: 1, Order: 2, Spacing: 8, Width: 4, Color: scene.Green},
		},
	},
	NO2: {
		Species: NO2, Name: "nitrogen dioxide",
		Atoms: []AtomSpec{
			{"N", 400, 300, 15, scene.Blue},
			{"O", 370, 300, 10, scene.Red},
			{"O", 430, 300, 10, scene.Red},
		},
		Bonds: []BondSpec{
			{A: 1, B: 0, Order: 1, Width: 8, Color: scene.Red},
			{A: 2, B: 0, Order: 1, Width: 5, Color: scene.Red},
		},
		Zones: triZones(Bend, 365, 435, 10),
	},
	H2O: {
		Species: H2O, Name: "water",
		Atoms: []AtomSpec{
			{"O", 400, 300, 15, scene.Red},
			{"H", 370, 300, 10, scene.Black},
			{"H", 430, 300, 10, scene.Black},
		},
		Bonds: []BondSpec{
			{A: 1, B: 0, Order: 1, Width: 5, Color: scene.Black},
			{A: 2, B: 0, Order: 1, Width: 5, Color: scene.Black},
		},
		Zones: triZones(Bend, 365, 435, 10),
	},
	NH3: {
		Species: NH3, Name: "ammonia",
		Atoms: []AtomSpec{
			{"N", 400, 300, 15, scene.Blue},
			{"H", 360, 340, 10, scene.Green},
			{"H", 400, 370, 10, scene.Green},
			{"H", 440, 340, 10, scene.Green},
		},
		Bonds: []BondSpec{
			{A: 1, B: 0, Order: 1, Width: 5, Color: scene.Green},
			{A: 2, B: 0, Order: 1, Width: 5, Color: scene.Green},
			{A: 3, B: 0, Order: 1, Width: 5, Color: scene.Green},
		},
		Zones: triZones(Breathe, 365, 435, 10),
	},
}

// LayoutOf returns the canonical layout for s.
func LayoutOf(s Species) (Layout, bool) {
	l, ok := layouts[s]
	return l, ok
}
