package viz

import (
	"math"

	"github.com/san-kum/molvib/internal/scene"
)

// Raster paints scene shapes onto a Canvas, scaling scene units to dots
// while keeping the aspect ratio.
type Raster struct {
	c          *Canvas
	scale      float64
	offX, offY float64
}

func NewRaster(c *Canvas, sceneW, sceneH float64) *Raster {
	dw, dh := c.Dots()
	scale := math.Min(float64(dw)/sceneW, float64(dh)/sceneH)
	return &Raster{
		c:     c,
		scale: scale,
		offX:  (float64(dw) - sceneW*scale) / 2,
		offY:  (float64(dh) - sceneH*scale) / 2,
	}
}

func (r *Raster) point(p scene.Point) (int, int) {
	return int(math.Round(p.X*r.scale + r.offX)), int(math.Round(p.Y*r.scale + r.offY))
}

func (r *Raster) Circle(c scene.Circle) {
	x, y := r.point(c.Center)
	r.c.FillCircle(x, y, int(math.Round(c.R*r.scale)))
}

// Line draws thick strokes as parallel passes one dot apart.
func (r *Raster) Line(l scene.Line) {
	x0, y0 := r.point(l.From)
	x1, y1 := r.point(l.To)
	passes := int(math.Round(l.Width * r.scale))
	if passes < 1 {
		passes = 1
	}
	dx, dy := 0, 1
	if absInt(y1-y0) > absInt(x1-x0) {
		dx, dy = 1, 0
	}
	for i := 0; i < passes; i++ {
		k := i - (passes-1)/2
		r.c.DrawLine(x0+k*dx, y0+k*dy, x1+k*dx, y1+k*dy)
	}
}

// Render clears c and paints sc onto it.
func Render(c *Canvas, sc *scene.Scene) {
	c.Clear()
	sc.Paint(NewRaster(c, sc.Width, sc.Height))
}
