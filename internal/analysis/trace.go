package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/molvib/internal/scene"
)

// BondTrace pulls bond i out of a per-frame bond table. Frames without that
// bond are skipped.
func BondTrace(bonds [][]float64, i int) []float64 {
	out := make([]float64, 0, len(bonds))
	for _, row := range bonds {
		if i < len(row) {
			out = append(out, row[i])
		}
	}
	return out
}

// Amplitude is the largest distance of any sample from the first one.
func Amplitude(trace []float64) float64 {
	if len(trace) == 0 {
		return 0
	}
	amp := 0.0
	for _, v := range trace {
		amp = math.Max(amp, math.Abs(v-trace[0]))
	}
	return amp
}

// AtomPath pulls atom i out of a per-frame position table.
func AtomPath(atoms [][]scene.Point, i int) []scene.Point {
	out := make([]scene.Point, 0, len(atoms))
	for _, row := range atoms {
		if i < len(row) {
			out = append(out, row[i])
		}
	}
	return out
}

// PathToASCII plots points on a width x height character grid. Screen
// coordinates grow downwards, so y is not flipped.
func PathToASCII(points []scene.Point, width, height int) string {
	if len(points) == 0 || width < 1 || height < 1 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for i, p := range points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := int((p.Y - minY) / rangeY * float64(height-1))
		if row < 0 || row >= height || col < 0 || col >= width {
			continue
		}
		switch {
		case i == 0:
			canvas[row][col] = 'o'
		case canvas[row][col] == ' ':
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
