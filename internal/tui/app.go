package tui

import (
	"fitcalc/internal/analysis"
	"fitcalc/internal/config"
	"fitcalc/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen identifiers
type Screen int

const (
	ScreenBodyFat Screen = iota
	ScreenEnergy
	ScreenHelp
)

// chromeHeight is the number of lines taken by header, nav and footer
const chromeHeight = 6

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	bodyFat BodyFatModel
	energy  EnergyModel
	help    HelpModel

	// Window dimensions
	width  int
	height int
}

// NewApp creates a new App. Unparseable defaults fall back to man / sedentary.
func NewApp(calc *service.Calculator, defaults config.DefaultsConfig) *App {
	sex, err := analysis.ParseSex(defaults.Sex)
	if err != nil {
		sex = analysis.Male
	}
	activity, err := analysis.ParseActivityLevel(defaults.Activity)
	if err != nil {
		activity = analysis.ActivitySedentary
	}

	return &App{
		screen:  ScreenBodyFat,
		bodyFat: NewBodyFatModel(calc, sex, defaults),
		energy:  NewEnergyModel(calc, sex, activity, defaults),
		help:    NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.bodyFat.Init()
}

// editing reports whether keystrokes belong to a number input
func (a *App) editing() bool {
	switch a.screen {
	case ScreenBodyFat:
		return a.bodyFat.Editing()
	case ScreenEnergy:
		return a.energy.Editing()
	}
	return false
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Always available
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "f1":
			a.screen = ScreenBodyFat
			return a, nil
		case "f2":
			a.screen = ScreenEnergy
			return a, nil
		}

		// Single-key shortcuts would collide with typing digits
		if !a.editing() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "1":
				a.screen = ScreenBodyFat
				return a, nil
			case "2":
				a.screen = ScreenEnergy
				return a, nil
			case "?":
				if a.screen != ScreenHelp {
					a.prevScreen = a.screen
					a.screen = ScreenHelp
				}
				return a, nil
			case "esc":
				if a.screen == ScreenHelp {
					a.screen = a.prevScreen
					return a, nil
				}
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help = a.help.setSize(msg.Width, msg.Height-chromeHeight)
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenBodyFat:
		var m tea.Model
		m, cmd = a.bodyFat.Update(msg)
		a.bodyFat = m.(BodyFatModel)
	case ScreenEnergy:
		var m tea.Model
		m, cmd = a.energy.Update(msg)
		a.energy = m.(EnergyModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// View renders the app
func (a *App) View() string {
	header := a.renderHeader()
	nav := a.renderNav()

	var content string
	switch a.screen {
	case ScreenBodyFat:
		content = a.bodyFat.View()
	case ScreenEnergy:
		content = a.energy.View()
	case ScreenHelp:
		content = a.help.View()
	}

	footer := statusStyle.Render("tab: volgend veld  enter: berekenen  ctrl+c: afsluiten")

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content, footer)
}

func (a *App) renderHeader() string {
	return headerStyle.Render("Fitness Calculator")
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Vetpercentage", ScreenBodyFat},
		{"2", "Kcal / TDEE", ScreenEnergy},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[q] Afsluiten")

	return navStyle.Render(nav)
}
