package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/depot/internal/domain"
	"github.com/mmcdole/depot/internal/tui/styles"
)

// ConfirmModal is the two-phase delete confirmation. It has no implicit
// timeout: the user must explicitly confirm or cancel. On a failed delete
// it stays open with the error shown.
type ConfirmModal struct {
	visible bool
	target  domain.Model
	errText string
	busy    bool
}

// NewConfirmModal creates the delete confirmation modal
func NewConfirmModal() ConfirmModal {
	return ConfirmModal{}
}

// Show opens the modal for a staged delete target
func (m *ConfirmModal) Show(target domain.Model) {
	m.visible = true
	m.target = target
	m.errText = ""
	m.busy = false
}

// Hide dismisses the modal
func (m *ConfirmModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m ConfirmModal) IsVisible() bool {
	return m.visible
}

// Target returns the staged model
func (m ConfirmModal) Target() domain.Model {
	return m.target
}

// SetError displays a failed delete, keeping the modal open
func (m *ConfirmModal) SetError(msg string) {
	m.errText = msg
	m.busy = false
}

// SetBusy marks the delete as in flight
func (m *ConfirmModal) SetBusy() {
	m.busy = true
	m.errText = ""
}

// Update handles input events, returns (modal, confirmed, cancelled)
func (m ConfirmModal) Update(msg tea.Msg) (ConfirmModal, bool, bool) {
	if !m.visible || m.busy {
		return m, false, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter", "y":
			return m, true, false
		case "esc", "n":
			m.Hide()
			return m, false, true
		}
	}
	return m, false, false
}

// View renders the confirmation modal
func (m ConfirmModal) View() string {
	if !m.visible {
		return ""
	}

	const modalWidth = 46

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.White).
		Bold(true).
		Width(modalWidth)

	rows := []string{
		titleStyle.Render("Delete model"),
		"",
		styles.SubtitleStyle.Render(m.target.Name),
		styles.DimStyle.Render(m.target.ID),
		"",
	}

	switch {
	case m.busy:
		rows = append(rows, styles.DimStyle.Render("Deleting…"))
	case m.errText != "":
		rows = append(rows, styles.ErrorStyle.Render(m.errText),
			styles.DimStyle.Render("enter retry · esc cancel"))
	default:
		rows = append(rows, styles.DimStyle.Render("enter/y delete · esc/n cancel"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Red).
		Padding(1, 2).
		Render(content)
}
