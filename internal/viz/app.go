package viz

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/molvib/internal/config"
	"github.com/san-kum/molvib/internal/diagram"
	"github.com/san-kum/molvib/internal/lab"
	"github.com/san-kum/molvib/internal/molecule"
	"github.com/san-kum/molvib/internal/photon"
)

const (
	canvasWidth     = 60
	canvasHeight    = 20
	historyCapacity = 240
	recentEvents    = 5
)

type TickMsg time.Time

// feed collects lab events. The Model is copied on every Update, so the
// observer writes through a pointer.
type feed struct {
	events []lab.Event
}

func (f *feed) add(ev lab.Event) {
	f.events = append(f.events, ev)
	if len(f.events) > recentEvents {
		f.events = f.events[1:]
	}
}

// Model drives a lab from Bubble Tea ticks and key presses.
type Model struct {
	lab      *lab.Lab
	canvas   *Canvas
	theme    Theme
	st       styles
	feed     *feed
	bonds    []float64
	script   map[int][]photon.Kind
	scenario string
	frame    int
	showHelp bool
}

func NewModel(l *lab.Lab, theme string) Model {
	f := &feed{}
	l.Observe(f.add)
	t := GetTheme(theme)
	return Model{
		lab:    l,
		canvas: NewCanvas(canvasWidth, canvasHeight),
		theme:  t,
		st:     newStyles(t),
		feed:   f,
		bonds:  make([]float64, 0, historyCapacity),
	}
}

// Play resets the lab and scripts the scenario's emissions, counted in
// frames from now.
func (m *Model) Play(sc *config.Scenario) error {
	s, err := molecule.Parse(sc.Species)
	if err != nil {
		return err
	}
	script := make(map[int][]photon.Kind)
	for _, em := range sc.Emissions {
		k, err := photon.ParseKind(em.Kind)
		if err != nil {
			return err
		}
		script[em.Frame] = append(script[em.Frame], k)
	}
	m.reset()
	if err := m.lab.Add(s); err != nil {
		return err
	}
	m.script = script
	m.scenario = sc.Name
	return nil
}

func (m Model) Lab() *lab.Lab { return m.lab }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.lab.FrameDuration(), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		b, ok := Lookup(msg.String())
		if !ok {
			return m, nil
		}
		switch b.Action {
		case AddSpecies:
			m.script, m.scenario = nil, ""
			m.bonds = m.bonds[:0]
			// every bound species has a layout, so Add cannot fail here
			_ = m.lab.Add(b.Species)
		case EmitPhoton:
			m.lab.Emit(b.Photon)
		case Quit:
			return m, tea.Quit
		case ResetLab:
			m.reset()
		case CycleTheme:
			m.theme = NextTheme(m.theme.Name)
			m.st = newStyles(m.theme)
		case ToggleHelp:
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		w, h := msg.Width-58, msg.Height-4
		if w >= 20 && h >= 8 && (w != m.canvas.Width || h != m.canvas.Height) {
			m.canvas = NewCanvas(w, h)
		}
	case TickMsg:
		m.step()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	for _, k := range m.script[m.frame] {
		m.lab.Emit(k)
	}
	m.frame++
	m.lab.Step()

	snap := m.lab.Snapshot()
	if len(snap.Bonds) > 0 {
		m.bonds = append(m.bonds, snap.Bonds[0])
		if len(m.bonds) > historyCapacity {
			m.bonds = m.bonds[1:]
		}
	}
}

func (m *Model) reset() {
	m.lab.Reset()
	m.bonds = m.bonds[:0]
	m.feed.events = nil
	m.script, m.scenario = nil, ""
	m.frame = 0
}

func (m Model) View() string {
	Render(m.canvas, m.lab.Scene())
	canvasView := m.st.canvas.Render(m.canvas.String())

	snap := m.lab.Snapshot()
	var s strings.Builder

	title := "MOLVIB"
	if snap.Species != "" {
		if l, ok := molecule.LayoutOf(snap.Species); ok {
			title = fmt.Sprintf("%s  %s", snap.Species, strings.ToUpper(l.Name))
		}
	}
	s.WriteString(m.st.title.Render(title) + "\n")
	if m.scenario != "" {
		s.WriteString(m.st.label.Render("Scenario") + m.st.value.Render(m.scenario) + "\n")
	}
	s.WriteString(m.st.label.Render("Time") + m.st.value.Render(fmt.Sprintf("%.2fs", snap.Time.Seconds())) + "\n")
	s.WriteString(m.st.label.Render("Markers") + m.st.value.Render(strconv.Itoa(snap.Markers)) + "\n")
	s.WriteString(m.st.label.Render("Absorbed") + m.st.value.Render(strconv.Itoa(snap.Absorbed)) + "\n")

	if d := m.lab.Active(); d != nil {
		s.WriteString("\nMOTIONS\n")
		anims := d.Animators()
		if len(anims) == 0 {
			s.WriteString(m.st.idle.Render("  transparent") + "\n")
		}
		for _, a := range anims {
			line := fmt.Sprintf("%-8s %s", a.Motion(), a.State())
			if a.State() == diagram.Active {
				s.WriteString(m.st.active.Render(AnimatedSpinner(m.frame)+" "+line) + "\n")
			} else {
				s.WriteString(m.st.idle.Render("  "+line) + "\n")
			}
		}
	} else {
		s.WriteString("\n" + m.st.idle.Render("press 1-7 to add a molecule") + "\n")
	}

	if len(m.bonds) > 1 {
		chart := asciigraph.Plot(m.bonds, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("bond length"))
		s.WriteString(m.st.graph.Render(chart) + "\n")
	}

	if len(m.feed.events) > 0 {
		s.WriteString("\nABSORBED\n")
		for _, ev := range m.feed.events {
			s.WriteString(m.st.value.Render(fmt.Sprintf("  %-9s x=%3.0f  %s", ev.Kind, ev.X, ev.Motion)) + "\n")
		}
	}

	s.WriteString(m.st.hint.Render(Separator(30) + "\n1-7:Species i/m/p:Photon\nR:Reset T:Theme ?:Help Q:Quit"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.st.panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  1-7   CO CO2 N2 O2 NO2 H2O NH3      ║
║  I     Emit infrared photon          ║
║  M     Emit microwave photon         ║
║  P     Emit broadband photon         ║
║  R     Reset the lab                 ║
║  T     Cycle themes                  ║
║  ?     Toggle this help              ║
║  Q     Quit                          ║
╚══════════════════════════════════════╝`

// Run opens the live lab in the terminal.
func Run(l *lab.Lab, theme string) error {
	_, err := tea.NewProgram(NewModel(l, theme), tea.WithAltScreen()).Run()
	return err
}
