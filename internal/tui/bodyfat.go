package tui

import (
	"fitcalc/internal/analysis"
	"fitcalc/internal/config"
	"fitcalc/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// BodyFatModel is the US Navy body fat screen
type BodyFatModel struct {
	calc *service.Calculator

	sex    analysis.Sex
	height numericField
	neck   numericField
	waist  numericField
	hip    numericField

	// focus: 0 = sex selector, 1..len(fields) = inputs, then the button
	focus int

	result *service.BodyFatResult
	err    error
}

// NewBodyFatModel creates the body fat form with the configured defaults
func NewBodyFatModel(calc *service.Calculator, sex analysis.Sex, d config.DefaultsConfig) BodyFatModel {
	return BodyFatModel{
		calc:   calc,
		sex:    sex,
		height: newNumericField(service.FormRanges[service.FieldHeight], d.HeightCM),
		neck:   newNumericField(service.FormRanges[service.FieldNeck], d.NeckCM),
		waist:  newNumericField(service.FormRanges[service.FieldWaist], d.WaistCM),
		hip:    newNumericField(service.FormRanges[service.FieldHip], d.HipCM),
	}
}

// Init initializes the screen
func (m BodyFatModel) Init() tea.Cmd {
	return nil
}

// fields returns the inputs shown for the selected sex
func (m *BodyFatModel) fields() []*numericField {
	fields := []*numericField{&m.height, &m.neck, &m.waist}
	if m.sex == analysis.Female {
		fields = append(fields, &m.hip)
	}
	return fields
}

func (m *BodyFatModel) buttonIndex() int {
	return len(m.fields()) + 1
}

// Editing reports whether a number input has focus
func (m BodyFatModel) Editing() bool {
	return m.focus >= 1 && m.focus < m.buttonIndex()
}

func (m *BodyFatModel) setFocus(i int) tea.Cmd {
	n := m.buttonIndex() + 1
	m.focus = ((i % n) + n) % n

	var cmd tea.Cmd
	for idx, f := range []*numericField{&m.height, &m.neck, &m.waist, &m.hip} {
		f.blur()
		if m.focus == idx+1 && idx < len(m.fields()) {
			cmd = f.focus()
		}
	}
	return cmd
}

// Update handles messages
func (m BodyFatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	switch {
	case m.focus == 0:
		m.sex = sexFromKey(m.sex, key.String())
		m.result = nil
		m.err = nil
		return m, nil
	case m.Editing():
		f := m.fields()[m.focus-1]
		var cmd tea.Cmd
		*f, cmd = f.update(msg)
		return m, cmd
	}

	return m, nil
}

// calculate reads the form and runs the estimator
func (m *BodyFatModel) calculate() {
	m.result = nil
	m.err = nil

	values := make([]float64, 0, 4)
	for _, f := range m.fields() {
		v, err := f.Value()
		if err != nil {
			m.err = err
			return
		}
		values = append(values, v)
	}

	req := service.BodyFatRequest{
		Sex:      m.sex,
		HeightCM: values[0],
		NeckCM:   values[1],
		WaistCM:  values[2],
	}
	if m.sex == analysis.Female {
		req.HipCM = values[3]
	}

	m.result, m.err = m.calc.BodyFat(req)
}

// View renders the screen
func (m BodyFatModel) View() string {
	var sections []string

	sections = append(sections, cardTitleStyle.Render("Bodyfat Calculator (US Navy)"))
	sections = append(sections, helpDescStyle.Render("Input in centimeters • Automatische conversie naar inches • Formules per geslacht"))
	sections = append(sections, "")

	sexLabel := labelStyle
	if m.focus == 0 {
		sexLabel = focusedLabelStyle
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Left,
		sexLabel.Render("Geslacht"),
		renderOptions(sexOptions, sexIndex(m.sex)),
	))

	for i, f := range m.fields() {
		sections = append(sections, f.view(m.focus == i+1))
	}

	sections = append(sections, "")
	sections = append(sections, renderButton("Bereken vetpercentage", m.focus == m.buttonIndex()))

	if out := m.renderResult(); out != "" {
		sections = append(sections, "", out)
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m BodyFatModel) renderResult() string {
	if m.err != nil {
		return errorStyle.Render(errorMessage(m.err))
	}
	if m.result == nil {
		return ""
	}

	lines := []string{
		successStyle.Render("Geschat vetpercentage: " + m.result.Display),
		RenderMetric("Categorie", m.result.Category),
		infoStyle.Render(service.MsgMeasureTip),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
