package scene

import "math"

type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(o Point) Point     { return Point{p.X + o.X, p.Y + o.Y} }
func (p Point) Sub(o Point) Point     { return Point{p.X - o.X, p.Y - o.Y} }
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }
func (p Point) Len() float64          { return math.Hypot(p.X, p.Y) }
func (p Point) Dist(o Point) float64  { return p.Sub(o).Len() }
func (p Point) Mid(o Point) Point     { return Point{(p.X + o.X) / 2, (p.Y + o.Y) / 2} }
func (p Point) Perp() Point           { return Point{-p.Y, p.X} }

// Near reports whether p and o differ by at most eps on both axes.
func (p Point) Near(o Point, eps float64) bool {
	return math.Abs(p.X-o.X) <= eps && math.Abs(p.Y-o.Y) <= eps
}

// Unit returns p scaled to length 1, or the zero point when p has no length.
func (p Point) Unit() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return p.Scale(1 / l)
}
