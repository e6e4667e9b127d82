package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/molvib/internal/scene"
)

// rlPainter maps scene units into the drawing area right of the HUD.
type rlPainter struct {
	a *App
}

func (p rlPainter) vec(pt scene.Point) rl.Vector2 {
	return rl.NewVector2(p.a.offX+float32(pt.X)*p.a.scale, p.a.offY+float32(pt.Y)*p.a.scale)
}

func toColor(c scene.Color) rl.Color {
	rgba := c.RGBA()
	return rl.NewColor(rgba.R, rgba.G, rgba.B, rgba.A)
}

func (p rlPainter) Circle(c scene.Circle) {
	rl.DrawCircleV(p.vec(c.Center), float32(c.R)*p.a.scale, toColor(c.Fill))
}

func (p rlPainter) Line(l scene.Line) {
	rl.DrawLineEx(p.vec(l.From), p.vec(l.To), float32(l.Width)*p.a.scale, toColor(l.Stroke))
}

func (a *App) drawScene() {
	sc := a.Lab.Scene()
	rl.DrawRectangleLines(int32(a.offX), int32(a.offY),
		int32(float32(sc.Width)*a.scale), int32(float32(sc.Height)*a.scale), a.pal.Dim)
	sc.Paint(rlPainter{a: a})
}
