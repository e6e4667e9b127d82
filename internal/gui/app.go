package gui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/molvib/internal/audio"
	"github.com/san-kum/molvib/internal/diagram"
	"github.com/san-kum/molvib/internal/lab"
	"github.com/san-kum/molvib/internal/molecule"
	"github.com/san-kum/molvib/internal/viz"
)

const (
	windowWidth  = 1280
	windowHeight = 720
	maxTelemetry = 300
)

// ColBg fills the drawing area; atoms are drawn in their own colors on it.
var ColBg = rl.NewColor(245, 245, 240, 255)

// palette is the HUD coloring derived from a terminal theme.
type palette struct {
	Panel, Text, Dim, Accent, Active rl.Color
}

func toRL(c lipgloss.Color) rl.Color {
	r, g, b, _ := c.RGBA()
	return rl.NewColor(uint8(r>>8), uint8(g>>8), uint8(b>>8), 255)
}

func paletteOf(t viz.Theme) palette {
	return palette{
		Panel:  rl.NewColor(24, 24, 28, 255),
		Text:   toRL(t.Text),
		Dim:    toRL(t.Muted),
		Accent: toRL(t.Accent),
		Active: toRL(t.Active),
	}
}

// App hosts a lab in a raylib window, one lab frame per window frame.
type App struct {
	Lab       *lab.Lab
	Telemetry []float64
	ShowHelp  bool
	Font      rl.Font
	Audio     *audio.Player
	Theme     viz.Theme

	pal palette

	quit       bool
	scale      float32
	offX, offY float32
}

func initWindow(fps int) {
	rl.InitWindow(windowWidth, windowHeight, "molvib")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

func NewApp(l *lab.Lab, theme string) *App {
	sc := l.Scene()
	area := float64(windowHeight - 120)
	scale := math.Min(float64(windowWidth-320)/sc.Width, area/sc.Height)
	return &App{
		Lab:       l,
		Telemetry: make([]float64, 0, maxTelemetry),
		Font:      rl.GetFontDefault(),
		Theme:     viz.GetTheme(theme),
		pal:       paletteOf(viz.GetTheme(theme)),
		scale:     float32(scale),
		offX:      300,
		offY:      float32(60 + (area-sc.Height*scale)/2),
	}
}

// Run opens the window and blocks until it is closed. With sound set, every
// absorption also plays a chime; a missing audio device only disables that.
func Run(l *lab.Lab, theme string, sound bool) {
	initWindow(l.Config().FPS)
	defer rl.CloseWindow()
	app := NewApp(l, theme)
	if sound {
		synth := audio.NewSynth()
		synth.Attach(l)
		player := audio.NewPlayer(synth)
		if err := player.Start(); err != nil {
			rl.TraceLog(rl.LogWarning, "audio disabled: %v", err)
		} else {
			app.Audio = player
			defer player.Stop()
		}
	}
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

// apply runs one binding of the key map shared with the terminal lab.
func (a *App) apply(b viz.Binding) {
	switch b.Action {
	case viz.AddSpecies:
		a.Telemetry = a.Telemetry[:0]
		// every bound species has a layout, so Add cannot fail here
		_ = a.Lab.Add(b.Species)
	case viz.EmitPhoton:
		a.Lab.Emit(b.Photon)
	case viz.ResetLab:
		a.Telemetry = a.Telemetry[:0]
		a.Lab.Reset()
	case viz.CycleTheme:
		a.Theme = viz.NextTheme(a.Theme.Name)
		a.pal = paletteOf(a.Theme)
	case viz.ToggleHelp:
		a.ShowHelp = !a.ShowHelp
	case viz.Quit:
		a.quit = true
	}
}

func (a *App) Update() {
	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		if b, ok := viz.Lookup(string(rune(ch))); ok {
			a.apply(b)
		}
	}
	if a.quit {
		return
	}

	a.Lab.Step()
	snap := a.Lab.Snapshot()
	if len(snap.Bonds) > 0 {
		a.Telemetry = append(a.Telemetry, snap.Bonds[0])
		if len(a.Telemetry) > maxTelemetry {
			a.Telemetry = a.Telemetry[1:]
		}
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawScene()
	a.DrawHUD()
	a.DrawTelemetry()
	if a.ShowHelp {
		a.drawHelp()
	}

	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) DrawHUD() {
	rl.DrawRectangle(0, 0, 280, windowHeight, a.pal.Panel)
	a.drawText("molvib", 30, 30, 28, a.pal.Text)

	snap := a.Lab.Snapshot()
	y := 90
	if snap.Species == "" {
		a.drawText("press 1-7", 30, y, 18, a.pal.Dim)
	} else {
		name := string(snap.Species)
		if l, ok := molecule.LayoutOf(snap.Species); ok {
			name = l.Name
		}
		a.drawText(fmt.Sprintf("%s  %s", snap.Species, name), 30, y, 18, a.pal.Accent)
	}
	y += 40
	a.drawText(fmt.Sprintf("time      %.2fs", snap.Time.Seconds()), 30, y, 16, a.pal.Text)
	a.drawText(fmt.Sprintf("markers   %d", snap.Markers), 30, y+24, 16, a.pal.Text)
	a.drawText(fmt.Sprintf("absorbed  %d", snap.Absorbed), 30, y+48, 16, a.pal.Text)

	y += 96
	if d := a.Lab.Active(); d != nil {
		for _, an := range d.Animators() {
			col := a.pal.Dim
			if an.State() == diagram.Active {
				col = a.pal.Active
			}
			a.drawText(fmt.Sprintf("%-8s %s", an.Motion(), an.State()), 30, y, 16, col)
			y += 24
		}
	}

	a.drawText("[1-7] SPECIES  [I/M/P] PHOTON  [R] RESET  [T] THEME  [?] HELP  [Q] QUIT", 500, 690, 14, a.pal.Dim)
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, 690, 14, a.pal.Dim)
	if a.Audio != nil && a.Audio.Active() {
		a.drawText("audio on", 110, 690, 14, a.pal.Dim)
	}
}

func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 30, 560
	width, height := 220, 80

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, a.pal.Accent)
	a.drawText(fmt.Sprintf("bond %.1f", a.Telemetry[len(a.Telemetry)-1]), rectX, rectY-24, 14, a.pal.Text)
}

func (a *App) drawHelp() {
	lines := []string{
		"1-7  CO CO2 N2 O2 NO2 H2O NH3",
		"I    infrared photon",
		"M    microwave photon",
		"P    broadband photon",
		"R    reset",
		"T    cycle themes",
		"?    toggle help",
		"Q    quit",
	}
	rl.DrawRectangle(440, 200, 420, int32(40+len(lines)*26), rl.Fade(rl.Black, 0.8))
	for i, l := range lines {
		a.drawText(l, 460, 220+i*26, 18, rl.RayWhite)
	}
}
