package export

import (
	"io"

	"github.com/fogleman/gg"

	"github.com/san-kum/molvib/internal/scene"
)

// ggPainter draws scene shapes on a gg context scaled to the output size.
type ggPainter struct {
	dc *gg.Context
}

func (p ggPainter) Circle(c scene.Circle) {
	p.dc.DrawCircle(c.Center.X, c.Center.Y, c.R)
	p.dc.SetColor(c.Fill.RGBA())
	p.dc.Fill()
}

func (p ggPainter) Line(l scene.Line) {
	p.dc.SetColor(l.Stroke.RGBA())
	p.dc.SetLineWidth(l.Width)
	p.dc.DrawLine(l.From.X, l.From.Y, l.To.X, l.To.Y)
	p.dc.Stroke()
}

// RenderPNG rasterises sc at width x height pixels. Non-positive sizes mean
// the scene's own size.
func RenderPNG(sc *scene.Scene, width, height int) *gg.Context {
	if width <= 0 || height <= 0 {
		width, height = int(sc.Width), int(sc.Height)
	}
	dc := gg.NewContext(width, height)
	dc.SetHexColor(background)
	dc.Clear()

	dc.Scale(float64(width)/sc.Width, float64(height)/sc.Height)
	sc.Paint(ggPainter{dc: dc})
	return dc
}

// ScenePNG encodes sc as PNG to w.
func ScenePNG(w io.Writer, sc *scene.Scene, width, height int) error {
	return RenderPNG(sc, width, height).EncodePNG(w)
}

func SavePNG(path string, sc *scene.Scene, width, height int) error {
	return RenderPNG(sc, width, height).SavePNG(path)
}
