package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/depot/internal/tui/styles"
)

// Register form field indexes
const (
	fieldName = iota
	fieldPath
	fieldURL
	fieldCount
)

// RegisterForm is the custom model registration dialog. Submission is
// blocked until name and path are non-empty; on a failed registration the
// form stays open with entered values preserved and the error displayed.
type RegisterForm struct {
	visible bool
	inputs  [fieldCount]textinput.Model
	focus   int
	errText string
	busy    bool
}

// NewRegisterForm creates the registration form
func NewRegisterForm() RegisterForm {
	var f RegisterForm

	labels := [fieldCount]string{"Model name", "Artifact path", "Reference URL (optional)"}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.CharLimit = 256
		ti.Width = 44
		ti.Prompt = ""
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		ti.PlaceholderStyle = styles.DimStyle
		f.inputs[i] = ti
	}

	return f
}

// Show opens the form with empty fields
func (f *RegisterForm) Show() {
	f.visible = true
	f.errText = ""
	f.busy = false
	f.focus = fieldName
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.inputs[fieldName].Focus()
}

// Hide dismisses the form
func (f *RegisterForm) Hide() {
	f.visible = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// IsVisible returns whether the form is shown
func (f *RegisterForm) IsVisible() bool {
	return f.visible
}

// Values returns the entered name, path and reference URL
func (f *RegisterForm) Values() (name, path, url string) {
	return strings.TrimSpace(f.inputs[fieldName].Value()),
		strings.TrimSpace(f.inputs[fieldPath].Value()),
		strings.TrimSpace(f.inputs[fieldURL].Value())
}

// SetPath fills the path field (from the native directory picker)
func (f *RegisterForm) SetPath(path string) {
	f.inputs[fieldPath].SetValue(path)
}

// CanSubmit reports whether the client-side preconditions hold
func (f *RegisterForm) CanSubmit() bool {
	name, path, _ := f.Values()
	return name != "" && path != ""
}

// SetError displays a failure and re-enables the form, keeping values
func (f *RegisterForm) SetError(msg string) {
	f.errText = msg
	f.busy = false
}

// SetBusy marks the form as waiting on the engine
func (f *RegisterForm) SetBusy() {
	f.busy = true
	f.errText = ""
}

// IsBusy returns whether a registration is in flight
func (f *RegisterForm) IsBusy() bool {
	return f.busy
}

// Update handles input events, returns (form, cmd, submitted)
func (f RegisterForm) Update(msg tea.Msg) (RegisterForm, tea.Cmd, bool) {
	if !f.visible || f.busy {
		return f, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if f.CanSubmit() {
				return f, nil, true
			}
			f.errText = "name and path are required"
			return f, nil, false
		case "esc":
			f.Hide()
			return f, nil, false
		case "tab", "down":
			f.setFocus((f.focus + 1) % fieldCount)
			return f, nil, false
		case "shift+tab", "up":
			f.setFocus((f.focus + fieldCount - 1) % fieldCount)
			return f, nil, false
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, false
}

func (f *RegisterForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

// View renders the registration form
func (f RegisterForm) View() string {
	if !f.visible {
		return ""
	}

	const modalWidth = 50

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.White).
		Bold(true).
		Width(modalWidth)

	labelStyle := styles.SubtitleStyle

	rows := []string{titleStyle.Render("Register custom model"), ""}
	labels := [fieldCount]string{"Name", "Path  (ctrl+o to browse)", "URL"}
	for i := range f.inputs {
		rows = append(rows, labelStyle.Render(labels[i]), f.inputs[i].View())
	}

	switch {
	case f.busy:
		rows = append(rows, "", styles.DimStyle.Render("Registering…"))
	case f.errText != "":
		rows = append(rows, "", styles.ErrorStyle.Render(f.errText))
	default:
		hint := "enter register · esc cancel"
		if !f.CanSubmit() {
			hint = "name and path required · esc cancel"
		}
		rows = append(rows, "", styles.DimStyle.Render(hint))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Amber).
		Padding(1, 2).
		Render(content)
}
