package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fitcalc/internal/analysis"
	"fitcalc/internal/service"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// numericField is a text input restricted to decimal numbers within a form range
type numericField struct {
	rng   service.FieldRange
	input textinput.Model
}

func newNumericField(rng service.FieldRange, initial float64) numericField {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 8
	in.Width = 10
	in.Placeholder = formatNumber(rng.Min)
	in.SetValue(formatNumber(initial))
	return numericField{rng: rng, input: in}
}

// Value parses the input, accepting a decimal comma, and checks the form range
func (f numericField) Value() (float64, error) {
	raw := strings.TrimSpace(strings.ReplaceAll(f.input.Value(), ",", "."))
	if raw == "" {
		return 0, &service.ValidationError{
			Field:   f.rng.Field,
			Message: fmt.Sprintf("Vul %s in.", strings.ToLower(f.rng.Label)),
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &service.ValidationError{
			Field:   f.rng.Field,
			Message: fmt.Sprintf("%s is geen geldig getal.", f.rng.Label),
			Err:     err,
		}
	}

	if err := f.rng.Check(v); err != nil {
		return 0, err
	}
	return v, nil
}

func (f numericField) update(msg tea.Msg) (numericField, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyRunes {
		for _, r := range key.Runes {
			if !isNumericRune(r) {
				return f, nil
			}
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f *numericField) focus() tea.Cmd {
	return f.input.Focus()
}

func (f *numericField) blur() {
	f.input.Blur()
}

func (f numericField) view(focused bool) string {
	label := fmt.Sprintf("%s (%s)", f.rng.Label, f.rng.Unit)
	style := labelStyle
	if focused {
		style = focusedLabelStyle
	}
	hint := helpDescStyle.Render(fmt.Sprintf("  %s–%s", formatNumber(f.rng.Min), formatNumber(f.rng.Max)))
	return lipgloss.JoinHorizontal(lipgloss.Left, style.Render(label), f.input.View(), hint)
}

func isNumericRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.' || r == ','
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var sexOptions = []string{"Man", "Vrouw"}

func sexIndex(s analysis.Sex) int {
	if s == analysis.Female {
		return 1
	}
	return 0
}

func toggleSex(s analysis.Sex) analysis.Sex {
	if s == analysis.Female {
		return analysis.Male
	}
	return analysis.Female
}

// sexFromKey handles the shortcut keys of the sex selector
func sexFromKey(current analysis.Sex, key string) analysis.Sex {
	switch key {
	case "m":
		return analysis.Male
	case "v":
		return analysis.Female
	case "left", "right", " ", "h", "l":
		return toggleSex(current)
	}
	return current
}

// errorMessage returns the text shown for a failed calculation
func errorMessage(err error) string {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return service.MsgUnexpected
}
