// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package tui is the interactive picker behind the pick command.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AnirudhJM24/TechJacked/internal/menu"
)

// ErrCancelled is returned by Run when the user quits without choosing.
var ErrCancelled = errors.New("selection cancelled")

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f6be00"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00c8f0"))
	doneStyle     = lipgloss.NewStyle().Faint(true)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

type step int

const (
	stepHall step = iota
	stepMeal
	stepProtein
	stepCalories
	stepDone
)

// Selection is what the picker returns.
type Selection struct {
	Halls        []menu.Hall
	Meal         string
	ProteinGoal  float64
	CalorieLimit float64
}

// Model walks through hall, meal, protein goal and calorie limit.
type Model struct {
	halls    []menu.Hall
	defaults Selection

	step      step
	cursor    int
	input     textinput.Model
	errMsg    string
	sel       Selection
	cancelled bool
}

// NewModel builds a picker over halls. defaults seeds the meal and the
// numbers shown as placeholders.
func NewModel(halls []menu.Hall, defaults Selection) Model {
	return Model{halls: halls, defaults: defaults}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Selection returns the choices made so far.
func (m Model) Selection() Selection {
	return m.sel
}

// Done reports whether every choice has been made.
func (m Model) Done() bool {
	return m.step == stepDone
}

// Cancelled reports whether the user quit.
func (m Model) Cancelled() bool {
	return m.cancelled
}

func (m Model) hallChoices() []string {
	choices := []string{"All halls"}
	for _, h := range m.halls {
		choices = append(choices, h.Name)
	}
	return choices
}

func (m Model) choices() []string {
	if m.step == stepHall {
		return m.hallChoices()
	}
	return menu.MealTypes
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.step == stepProtein || m.step == stepCalories {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	}

	switch m.step {
	case stepHall, stepMeal:
		return m.updateList(key)
	case stepProtein, stepCalories:
		return m.updateInput(key)
	}
	return m, nil
}

func (m Model) updateList(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.choices())
	switch key.String() {
	case "q":
		m.cancelled = true
		return m, tea.Quit
	case "up", "k":
		m.cursor = (m.cursor - 1 + n) % n
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % n
	case "enter", " ":
		if m.step == stepHall {
			if m.cursor == 0 {
				m.sel.Halls = append([]menu.Hall(nil), m.halls...)
			} else {
				m.sel.Halls = []menu.Hall{m.halls[m.cursor-1]}
			}
			m.step = stepMeal
			m.cursor = 0
			for i, meal := range menu.MealTypes {
				if meal == m.defaults.Meal {
					m.cursor = i
				}
			}
			return m, nil
		}
		m.sel.Meal = menu.MealTypes[m.cursor]
		m.step = stepProtein
		cmd := m.newInput(m.defaults.ProteinGoal)
		return m, cmd
	}
	return m, nil
}

func (m *Model) newInput(def float64) tea.Cmd {
	m.input = textinput.New()
	m.input.Placeholder = strconv.FormatFloat(def, 'f', -1, 64)
	m.input.CharLimit = 6
	m.input.Width = 10
	m.errMsg = ""
	return m.input.Focus()
}

func (m Model) updateInput(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Type != tea.KeyEnter {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(key)
		return m, cmd
	}

	def := m.defaults.ProteinGoal
	if m.step == stepCalories {
		def = m.defaults.CalorieLimit
	}
	v, err := parsePositive(m.input.Value(), def)
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	if m.step == stepProtein {
		m.sel.ProteinGoal = v
		m.step = stepCalories
		cmd := m.newInput(m.defaults.CalorieLimit)
		return m, cmd
	}

	m.sel.CalorieLimit = v
	m.step = stepDone
	return m, tea.Quit
}

// parsePositive reads a number greater than zero. Blank input yields def.
func parsePositive(s string, def float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%q is not a positive number", s)
	}
	return v, nil
}

func (m Model) View() string {
	if m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("TechJacked meal picker"))
	b.WriteString("\n\n")

	if m.step > stepHall {
		names := make([]string, 0, len(m.sel.Halls))
		for _, h := range m.sel.Halls {
			names = append(names, h.Name)
		}
		b.WriteString(doneStyle.Render("Hall: " + strings.Join(names, ", ")))
		b.WriteString("\n")
	}
	if m.step > stepMeal {
		b.WriteString(doneStyle.Render("Meal: " + m.sel.Meal))
		b.WriteString("\n")
	}
	if m.step > stepProtein {
		b.WriteString(doneStyle.Render(fmt.Sprintf("Protein goal: %gg", m.sel.ProteinGoal)))
		b.WriteString("\n")
	}

	switch m.step {
	case stepHall, stepMeal:
		label := "Dining hall"
		if m.step == stepMeal {
			label = "Meal"
		}
		b.WriteString(label + ":\n")
		for i, c := range m.choices() {
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> " + c))
			} else {
				b.WriteString("  " + c)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("up/down to move, enter to choose, q to quit"))
	case stepProtein, stepCalories:
		label := "Protein goal (g)"
		if m.step == stepCalories {
			label = "Calorie limit"
		}
		b.WriteString(label + ": " + m.input.View() + "\n")
		if m.errMsg != "" {
			b.WriteString(errStyle.Render(m.errMsg) + "\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter to accept, esc to quit"))
	}

	b.WriteString("\n")
	return b.String()
}

// Run shows the picker and returns the selection.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) (Selection, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return Selection{}, fmt.Errorf("picker failed: %w", err)
	}

	fm, ok := final.(Model)
	if !ok || fm.Cancelled() || !fm.Done() {
		return Selection{}, ErrCancelled
	}
	return fm.Selection(), nil
}
