package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/molvib/internal/scene"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(1, 3)

	if c.Grid[0][0] != blank|0x1|0x80 {
		t.Errorf("unexpected cell %U", c.Grid[0][0])
	}
	if !c.IsSet(1, 3) || c.IsSet(1, 2) {
		t.Error("IsSet disagrees with Set")
	}

	// out of range is ignored
	c.Set(-1, 0)
	c.Set(100, 100)

	c.Clear()
	if c.IsSet(0, 0) {
		t.Error("clear left a dot behind")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 2)
	c.DrawLine(0, 4, 19, 4)
	for x := 0; x < 20; x++ {
		if !c.IsSet(x, 4) {
			t.Fatalf("dot %d missing from horizontal line", x)
		}
	}
}

func TestCanvasCircles(t *testing.T) {
	c := NewCanvas(20, 10)
	c.FillCircle(20, 20, 5)
	if !c.IsSet(20, 20) || !c.IsSet(25, 20) || c.IsSet(26, 20) {
		t.Error("filled circle has the wrong extent")
	}

	c.Clear()
	c.DrawCircle(20, 20, 5)
	if c.IsSet(20, 20) {
		t.Error("outline should leave the centre empty")
	}
	for _, p := range [][2]int{{25, 20}, {15, 20}, {20, 25}, {20, 15}} {
		if !c.IsSet(p[0], p[1]) {
			t.Errorf("outline missing %v", p)
		}
	}
}

func TestRenderScene(t *testing.T) {
	sc := scene.New(800, 600)
	sc.Add(&scene.Circle{Center: scene.Pt(400, 300), R: 15, Fill: scene.Black})
	sc.Add(&scene.Line{From: scene.Pt(100, 300), To: scene.Pt(700, 300), Stroke: scene.Red, Width: 4})

	c := NewCanvas(40, 15)
	Render(c, sc)

	// 80x60 dots over 800x600 scene units
	if !c.IsSet(40, 30) {
		t.Error("circle centre not drawn")
	}
	if !c.IsSet(10, 30) || !c.IsSet(70, 30) {
		t.Error("line endpoints not drawn")
	}
	if c.IsSet(5, 5) {
		t.Error("corner should stay empty")
	}
	if lines := strings.Count(c.String(), "\n"); lines != 15 {
		t.Errorf("expected 15 rows, got %d", lines)
	}
}
