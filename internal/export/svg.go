package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/molvib/internal/scene"
	"github.com/san-kum/molvib/internal/viz"
)

const background = "#ffffff"

// svgWriter emits one element per scene shape.
type svgWriter struct {
	sb *strings.Builder
}

func (w svgWriter) Circle(c scene.Circle) {
	fmt.Fprintf(w.sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, c.Center.X, c.Center.Y, c.R, c.Fill.Hex())
}

func (w svgWriter) Line(l scene.Line) {
	fmt.Fprintf(w.sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>
`, l.From.X, l.From.Y, l.To.X, l.To.Y, l.Stroke.Hex(), l.Width)
}

// SceneToSVG writes sc in paint order, so later shapes draw on top.
func SceneToSVG(sc *scene.Scene) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, sc.Width, sc.Height, sc.Width, sc.Height, background)

	sc.Paint(svgWriter{sb: &sb})

	sb.WriteString("</svg>\n")
	return sb.String()
}

// CanvasToSVG converts a Braille canvas to SVG, one circle per dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64, fill string) string {
	if canvas == nil {
		return ""
	}
	dw, dh := canvas.Dots()
	width := float64(dw) * scale
	height := float64(dh) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, width, height, width, height, fill)

	r := scale * 0.4
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, float64(x)*scale+scale/2, float64(y)*scale+scale/2, r)
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// SceneToBrailleSVG rasterises sc onto a cols x rows Braille canvas, the
// way the terminal lab draws it, and exports the dots.
func SceneToBrailleSVG(sc *scene.Scene, cols, rows int, scale float64, fill string) string {
	if cols < 1 || rows < 1 {
		return ""
	}
	c := viz.NewCanvas(cols, rows)
	viz.Render(c, sc)
	return CanvasToSVG(c, scale, fill)
}

// PathToSVG draws an atom's recorded path as a polyline in scene
// coordinates on a width x height canvas.
func PathToSVG(points []scene.Point, width, height float64, stroke string) string {
	if len(points) < 2 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, stroke)

	for i, p := range points {
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", p.X, p.Y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", p.X, p.Y)
		}
	}

	sb.WriteString(`"/>
</svg>
`)
	return sb.String()
}
