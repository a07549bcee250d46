package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/capogreco/euclidean-seq/src/pattern"
	"github.com/capogreco/euclidean-seq/src/seq"
)

// paramRow is one editable line in the parameter list.
type paramRow struct {
	name    string
	numeric bool
}

type Model struct {
	Coord    *seq.Coordinator
	Presets  *seq.PresetManager
	updates  <-chan struct{}
	rows     []paramRow
	cursor   int
	status   string
	quitting bool
}

type UpdateMsg struct{}

func NewModel(coord *seq.Coordinator, presets *seq.PresetManager, updates <-chan struct{}) Model {
	rows := make([]paramRow, 0, len(seq.NumericSpecs)+len(seq.StringSpecs))
	for _, spec := range seq.StringSpecs {
		rows = append(rows, paramRow{name: spec.Name})
	}
	for _, spec := range seq.NumericSpecs {
		rows = append(rows, paramRow{name: spec.Name, numeric: true})
	}
	return Model{
		Coord:   coord,
		Presets: presets,
		updates: updates,
		rows:    rows,
	}
}

// ListenForUpdates wakes the view whenever a step event landed.
func ListenForUpdates(updates <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-updates
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.Coord.Stop()
			return m, tea.Quit

		case "p", " ":
			if m.Coord.Playing() {
				m.Coord.Stop()
			} else {
				m.Coord.Play()
			}

		case "j", "down":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}

		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}

		case "h", "left":
			m.adjust(-1)

		case "l", "right":
			m.adjust(1)

		case "s":
			if err := m.Presets.Save("default", m.Coord.Store()); err != nil {
				m.status = "save failed: " + err.Error()
			} else {
				m.status = "saved preset 'default'"
			}

		case "o":
			if err := m.Presets.Load("default", m.Coord.Store()); err != nil {
				m.status = "load failed: " + err.Error()
			} else {
				m.status = "loaded preset 'default'"
			}
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.updates)
	}

	return m, nil
}

// adjust moves the selected parameter by direction steps (numeric) or
// cycles its choices (string).
func (m *Model) adjust(direction int) {
	row := m.rows[m.cursor]
	store := m.Coord.Store()
	if row.numeric {
		spec := numericSpec(row.name)
		value := store.Float(row.name) + float64(direction)*spec.Step
		if value < spec.Min {
			value = spec.Min
		}
		if value > spec.Max {
			value = spec.Max
		}
		store.Set(row.name, value)
		return
	}
	spec := stringSpec(row.name)
	current := store.String(row.name)
	index := 0
	for i, choice := range spec.Choices {
		if choice == current {
			index = i
			break
		}
	}
	index = (index + direction + len(spec.Choices)) % len(spec.Choices)
	store.Set(row.name, spec.Choices[index])
}

func numericSpec(name string) seq.ParamSpec {
	for _, spec := range seq.NumericSpecs {
		if spec.Name == name {
			return spec
		}
	}
	return seq.ParamSpec{}
}

func stringSpec(name string) seq.StringSpec {
	for _, spec := range seq.StringSpecs {
		if spec.Name == name {
			return spec
		}
	}
	return seq.StringSpec{}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	view := m.Coord.Snapshot()
	store := m.Coord.Store()

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("14"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("13"))

	playState := "STOP"
	if view.Playing {
		playState = "PLAY"
	}
	header := headerStyle.Render(fmt.Sprintf("euclidean-seq  %s  %3.0fbpm x%d",
		playState, store.Float(seq.ParamBpm), store.Int(seq.ParamSubdivision)))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")

	for i, row := range m.rows {
		var value string
		if row.numeric {
			value = fmt.Sprintf("%g", store.Float(row.name))
		} else {
			value = store.String(row.name)
		}
		line := fmt.Sprintf("  %-20s %s", row.name, value)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		out.WriteString(line)
		out.WriteString("\n")
	}

	out.WriteString("\n")
	out.WriteString(renderNoteLane(view, activeStyle, dimStyle))
	out.WriteString("\n")
	out.WriteString(renderVowelLane(view, activeStyle))
	out.WriteString("\n\n")
	out.WriteString(dimStyle.Render("jk:select  hl:adjust  space:play/stop  s:save  o:load  q:quit"))

	if m.status != "" {
		out.WriteString("\n")
		out.WriteString(dimStyle.Render(m.status))
	}

	return out.String()
}

func renderNoteLane(view seq.View, active lipgloss.Style, dim lipgloss.Style) string {
	var cells []string
	for i, freq := range view.Steps {
		var cell string
		if freq == pattern.Rest {
			cell = "  ·  "
		} else {
			cell = fmt.Sprintf("%5.0f", freq)
		}
		if view.Portamento != nil && i < len(view.Portamento) && view.Portamento[i] {
			cell += "~"
		} else {
			cell += " "
		}
		if view.Playing && i == view.NoteStep {
			cell = active.Render(cell)
		}
		cells = append(cells, cell)
	}
	if len(cells) == 0 {
		return dim.Render("  (no notes)")
	}
	return "  " + strings.Join(cells, "")
}

func renderVowelLane(view seq.View, active lipgloss.Style) string {
	var cells []string
	for i, vowel := range view.Vowels {
		cell := fmt.Sprintf("  %c  ", vowel)
		if view.Playing && i == view.PhonemeStep {
			cell = active.Render(cell)
		}
		cells = append(cells, cell)
	}
	return "  " + strings.Join(cells, " ")
}
