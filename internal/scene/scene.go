package scene

const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// Shape is implemented by *Circle and *Line.
type Shape interface {
	paint(p Painter)
}

type Circle struct {
	Center Point
	R      float64
	Fill   Color
}

type Line struct {
	From, To Point
	Stroke   Color
	Width    float64
}

func (c *Circle) paint(p Painter) { p.Circle(*c) }
func (l *Line) paint(p Painter)   { p.Line(*l) }

// Painter receives shapes in draw order.
type Painter interface {
	Circle(c Circle)
	Line(l Line)
}

type Scene struct {
	Width, Height float64
	shapes        []Shape
}

func New(width, height float64) *Scene {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Scene{Width: width, Height: height}
}

func (s *Scene) Add(sh Shape) {
	if sh == nil {
		return
	}
	s.shapes = append(s.shapes, sh)
}

// Remove drops sh from the scene and reports whether it was present.
func (s *Scene) Remove(sh Shape) bool {
	for i, cur := range s.shapes {
		if cur == sh {
			s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Scene) Clear() { s.shapes = s.shapes[:0] }

func (s *Scene) Len() int { return len(s.shapes) }

// Shapes returns a copy of the shape list in draw order.
func (s *Scene) Shapes() []Shape {
	out := make([]Shape, len(s.shapes))
	copy(out, s.shapes)
	return out
}

func (s *Scene) Paint(p Painter) {
	for _, sh := range s.shapes {
		sh.paint(p)
	}
}

// Counts reports how many circles and lines the scene holds.
func (s *Scene) Counts() (circles, lines int) {
	for _, sh := range s.shapes {
		switch sh.(type) {
		case *Circle:
			circles++
		case *Line:
			lines++
		}
	}
	return circles, lines
}
