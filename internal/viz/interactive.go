package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/molvib/internal/config"
	"github.com/san-kum/molvib/internal/lab"
	"github.com/san-kum/molvib/internal/molecule"
)

const (
	stateMenu = iota
	stateLab
)

type menuItem struct {
	label, desc string
	species     molecule.Species
	scenario    *config.Scenario
}

// menu lists species and scenarios, then hands over to the live Model.
type menu struct {
	state  int
	cursor int
	items  []menuItem
	live   Model
	err    string
}

func menuItems() []menuItem {
	var items []menuItem
	for _, s := range molecule.All {
		l, _ := molecule.LayoutOf(s)
		items = append(items, menuItem{label: string(s), desc: l.Name, species: s})
	}
	for _, name := range config.ListScenarios() {
		sc := config.GetScenario(name)
		items = append(items, menuItem{label: name, desc: sc.Description, scenario: sc})
	}
	return items
}

func NewInteractiveApp(l *lab.Lab, theme string) menu {
	return menu{
		state: stateMenu,
		items: menuItems(),
		live:  NewModel(l, theme),
	}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateLab {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.open(m.items[m.cursor])
	}
	return m, nil
}

func (m menu) open(it menuItem) (menu, tea.Cmd) {
	var err error
	if it.scenario != nil {
		err = m.live.Play(it.scenario)
	} else {
		err = m.live.Lab().Add(it.species)
	}
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	m.state = stateLab
	return m, m.live.Init()
}

func (m menu) View() string {
	if m.state == stateLab {
		return m.live.View()
	}
	t := m.live.theme
	h := lipgloss.NewStyle().Foreground(t.Title).Bold(true)
	sub := lipgloss.NewStyle().Foreground(t.Muted)
	sel := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(t.Idle)

	var b strings.Builder
	b.WriteString("\n\n    " + h.Render("MOLVIB") + "\n    " + sub.Render("molecular vibrations under light") + "\n    " + sub.Render(Separator(32)) + "\n\n")
	for i, it := range m.items {
		if i == len(molecule.All) {
			b.WriteString("\n")
		}
		desc := it.desc
		if len(desc) > 40 {
			desc = desc[:37] + "..."
		}
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", sel.Render("▸"), sel.Render(fmt.Sprintf("%-16s", it.label)), sub.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", dim.Render(fmt.Sprintf("%-16s", it.label)), dim.Render(desc)))
		}
	}
	if m.err != "" {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(t.Active).Render(m.err) + "\n")
	}
	b.WriteString("\n    " + sel.Render("j/k") + sub.Render(" navigate  ") + sel.Render("enter") + sub.Render(" open  ") + sel.Render("q") + sub.Render(" quit") + "\n")
	return b.String()
}

// RunInteractive starts at the species and scenario menu.
func RunInteractive(l *lab.Lab, theme string) error {
	_, err := tea.NewProgram(NewInteractiveApp(l, theme), tea.WithAltScreen()).Run()
	return err
}
