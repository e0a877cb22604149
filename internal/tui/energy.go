package tui

import (
	"fmt"

	"fitcalc/internal/analysis"
	"fitcalc/internal/config"
	"fitcalc/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Focus positions on the energy form
const (
	energyFocusSex = iota
	energyFocusWeight
	energyFocusHeight
	energyFocusAge
	energyFocusActivity
	energyFocusButton
	energyFocusCount
)

// EnergyModel is the BMR / TDEE screen
type EnergyModel struct {
	calc *service.Calculator

	sex      analysis.Sex
	weight   numericField
	height   numericField
	age      numericField
	activity analysis.ActivityLevel

	focus int

	result *service.EnergyResult
	table  []service.ActivityRow
	err    error
}

// NewEnergyModel creates the energy form with the configured defaults
func NewEnergyModel(calc *service.Calculator, sex analysis.Sex, activity analysis.ActivityLevel, d config.DefaultsConfig) EnergyModel {
	return EnergyModel{
		calc:     calc,
		sex:      sex,
		weight:   newNumericField(service.FormRanges[service.FieldWeight], d.WeightKG),
		height:   newNumericField(service.FormRanges[service.FieldHeight], d.HeightCM),
		age:      newNumericField(service.FormRanges[service.FieldAge], d.AgeYears),
		activity: activity,
	}
}

// Init initializes the screen
func (m EnergyModel) Init() tea.Cmd {
	return nil
}

func (m *EnergyModel) field(focus int) *numericField {
	switch focus {
	case energyFocusWeight:
		return &m.weight
	case energyFocusHeight:
		return &m.height
	case energyFocusAge:
		return &m.age
	}
	return nil
}

// Editing reports whether a number input has focus
func (m EnergyModel) Editing() bool {
	return m.field(m.focus) != nil
}

func (m *EnergyModel) setFocus(i int) tea.Cmd {
	m.focus = ((i % energyFocusCount) + energyFocusCount) % energyFocusCount

	m.weight.blur()
	m.height.blur()
	m.age.blur()
	if f := m.field(m.focus); f != nil {
		return f.focus()
	}
	return nil
}

// Update handles messages
func (m EnergyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "tab", "down":
		return m, m.setFocus(m.focus + 1)
	case "shift+tab", "up":
		return m, m.setFocus(m.focus - 1)
	case "enter":
		m.calculate()
		return m, nil
	}

	switch m.focus {
	case energyFocusSex:
		m.sex = sexFromKey(m.sex, key.String())
	case energyFocusActivity:
		m.activity = cycleActivity(m.activity, key.String())
	default:
		if f := m.field(m.focus); f != nil {
			var cmd tea.Cmd
			*f, cmd = f.update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func cycleActivity(level analysis.ActivityLevel, key string) analysis.ActivityLevel {
	n := len(analysis.ActivityLevels())
	switch key {
	case "right", "l", " ":
		return analysis.ActivityLevel((int(level) + 1) % n)
	case "left", "h":
		return analysis.ActivityLevel((int(level) - 1 + n) % n)
	}
	return level
}

// calculate reads the form and computes BMR and TDEE
func (m *EnergyModel) calculate() {
	m.result = nil
	m.table = nil
	m.err = nil

	weight, err := m.weight.Value()
	if err != nil {
		m.err = err
		return
	}
	height, err := m.height.Value()
	if err != nil {
		m.err = err
		return
	}
	age, err := m.age.Value()
	if err != nil {
		m.err = err
		return
	}

	m.result, m.err = m.calc.Energy(service.EnergyRequest{
		Sex:      m.sex,
		WeightKG: weight,
		HeightCM: height,
		AgeYears: age,
		Activity: m.activity,
	})
	if m.err == nil {
		m.table = m.calc.ActivityTable(m.result.BMR)
	}
}

// View renders the screen
func (m EnergyModel) View() string {
	var sections []string

	sections = append(sections, cardTitleStyle.Render("Kcal & TDEE Calculator (Mifflin-St Jeor)"))

	sexLabel := labelStyle
	if m.focus == energyFocusSex {
		sexLabel = focusedLabelStyle
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Left,
		sexLabel.Render("Geslacht"),
		renderOptions(sexOptions, sexIndex(m.sex)),
	))

	sections = append(sections, m.weight.view(m.focus == energyFocusWeight))
	sections = append(sections, m.height.view(m.focus == energyFocusHeight))
	sections = append(sections, m.age.view(m.focus == energyFocusAge))

	actLabel := labelStyle
	if m.focus == energyFocusActivity {
		actLabel = focusedLabelStyle
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Left,
		actLabel.Render("Activiteit"),
		optionActiveStyle.Render("‹ "+service.ActivityLabelNL(m.activity)+" ›"),
	))

	sections = append(sections, "")
	sections = append(sections, renderButton("Bereken caloriebehoefte", m.focus == energyFocusButton))

	if out := m.renderResult(); out != "" {
		sections = append(sections, "", out)
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m EnergyModel) renderResult() string {
	if m.err != nil {
		return errorStyle.Render(errorMessage(m.err))
	}
	if m.result == nil {
		return ""
	}

	lines := []string{
		successStyle.Render("BMR: " + m.result.BMRDisplay),
		successStyle.Render("TDEE (onderhoud): " + m.result.TDEEDisplay),
		"",
		m.renderActivityTable(),
	}
	if chart := m.renderChart(); chart != "" {
		lines = append(lines, "", chart)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m EnergyModel) renderActivityTable() string {
	rows := []string{cardTitleStyle.Render("TDEE per activiteitsniveau")}
	for _, row := range m.table {
		line := fmt.Sprintf("%-30s ×%-6s %s", row.LabelNL, formatNumber(row.Multiplier), service.FormatKcal(row.TDEE))
		if row.Level == m.result.Activity {
			rows = append(rows, tableSelectedStyle.Render(line))
		} else {
			rows = append(rows, tableRowStyle.Render(line))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m EnergyModel) renderChart() string {
	if len(m.table) < 2 {
		return ""
	}

	data := make([]float64, len(m.table))
	for i, row := range m.table {
		data[i] = row.TDEE
	}

	return asciigraph.Plot(data,
		asciigraph.Height(6),
		asciigraph.Width(40),
		asciigraph.Precision(0),
		asciigraph.Caption("kcal/dag, van weinig tot extreem actief"),
	)
}
