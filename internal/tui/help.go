package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model. The text scrolls once the window size is known.
type HelpModel struct {
	viewport viewport.Model
	ready    bool
}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// setSize fits the scroll area to the space below the header and nav
func (m HelpModel) setSize(width, height int) HelpModel {
	if height < 1 {
		height = 1
	}
	if !m.ready {
		m.viewport = viewport.New(width, height)
		m.viewport.SetContent(m.content())
		m.ready = true
		return m
	}
	m.viewport.Width = width
	m.viewport.Height = height
	return m
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the help screen
func (m HelpModel) View() string {
	if !m.ready {
		return m.content()
	}
	return m.viewport.View()
}

func (m HelpModel) content() string {
	var sections []string

	sections = append(sections, cardTitleStyle.Render("Sneltoetsen"))

	sections = append(sections, m.renderSection("Navigatie", []keyHelp{
		{"1 / f1", "Vetpercentage"},
		{"2 / f2", "Kcal / TDEE"},
		{"?", "Help (dit scherm)"},
		{"esc", "Terug"},
		{"q / ctrl+c", "Afsluiten"},
	}))

	sections = append(sections, m.renderSection("Formulier", []keyHelp{
		{"tab / down", "Volgend veld"},
		{"shift+tab / up", "Vorig veld"},
		{"m / v", "Man / Vrouw"},
		{"left / right", "Geslacht of activiteit wisselen"},
		{"enter", "Berekenen"},
	}))

	sections = append(sections, m.renderSection("Help", []keyHelp{
		{"up / down", "Scrollen"},
	}))

	sections = append(sections, m.renderFormulas())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(secondaryColor).Render(title))

	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}

	return strings.Join(lines, "\n")
}

func (m HelpModel) renderFormulas() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(secondaryColor).Render("Formules"))
	lines = append(lines, "")

	formulas := []struct {
		name string
		desc string
	}{
		{"US Navy (man)", "86.010·log10(taille − nek) − 70.041·log10(lengte) + 36.76"},
		{"US Navy (vrouw)", "163.205·log10(taille + heup − nek) − 97.684·log10(lengte) − 78.387"},
		{"Mifflin-St Jeor", "10·gewicht + 6.25·lengte − 5·leeftijd, +5 (man) of −161 (vrouw)"},
		{"TDEE", "BMR × activiteitsfactor (1.2 – 1.9)"},
	}

	for _, f := range formulas {
		lines = append(lines, "  "+helpKeyStyle.Render(f.name))
		lines = append(lines, "  "+helpDescStyle.Render(f.desc))
		lines = append(lines, "")
	}

	lines = append(lines, helpDescStyle.Render("  Omtrekken worden in inches omgerekend; het resultaat wordt begrensd op 0–75%."))

	return strings.Join(lines, "\n")
}
