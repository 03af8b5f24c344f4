package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/depot/internal/domain"
	"github.com/mmcdole/depot/internal/tui/styles"
)

// Lines reserved around the row window: column header plus the two
// scroll indicator lines.
const tableChromeLines = 3

// ModelTable renders the model inventory as a selectable, scrollable list.
type ModelTable struct {
	models       []domain.Model
	downloading  map[string]bool // effective downloading state per id
	selected     int
	offset       int // first visible row
	maxVisible   int // rows shown at once; 0 until SetSize
	width        int
	height       int
	spinnerFrame int
}

// NewModelTable creates an empty model table
func NewModelTable() ModelTable {
	return ModelTable{downloading: make(map[string]bool)}
}

// SetSize updates layout dimensions
func (t *ModelTable) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.maxVisible = height - tableChromeLines
	if t.maxVisible < 1 {
		t.maxVisible = 1
	}
	t.ensureVisible()
}

// SetModels replaces the table contents, clamping the selection
func (t *ModelTable) SetModels(models []domain.Model, downloading map[string]bool) {
	t.models = models
	if downloading == nil {
		downloading = make(map[string]bool)
	}
	t.downloading = downloading
	if t.selected >= len(models) {
		t.selected = len(models) - 1
	}
	if t.selected < 0 {
		t.selected = 0
	}
	if t.offset > t.selected {
		t.offset = t.selected
	}
	t.ensureVisible()
}

// SetSpinnerFrame advances the in-flight animation
func (t *ModelTable) SetSpinnerFrame(frame int) {
	t.spinnerFrame = frame
}

// MoveUp moves the selection up one row
func (t *ModelTable) MoveUp() {
	if t.selected > 0 {
		t.selected--
	}
	t.ensureVisible()
}

// MoveDown moves the selection down one row
func (t *ModelTable) MoveDown() {
	if t.selected < len(t.models)-1 {
		t.selected++
	}
	t.ensureVisible()
}

// ensureVisible scrolls the row window so the selection stays inside it
func (t *ModelTable) ensureVisible() {
	if t.maxVisible <= 0 {
		return
	}
	if t.selected < t.offset {
		t.offset = t.selected
	}
	if t.selected >= t.offset+t.maxVisible {
		t.offset = t.selected - t.maxVisible + 1
	}
	if t.offset < 0 {
		t.offset = 0
	}
}

// Selected returns the currently selected model
func (t *ModelTable) Selected() (domain.Model, bool) {
	if len(t.models) == 0 || t.selected < 0 || t.selected >= len(t.models) {
		return domain.Model{}, false
	}
	return t.models[t.selected], true
}

// Len returns the number of rows
func (t *ModelTable) Len() int {
	return len(t.models)
}

// View renders the table
func (t *ModelTable) View() string {
	if len(t.models) == 0 {
		return styles.DimStyle.Render("  No models.")
	}

	nameWidth := 34
	familyWidth := 12
	sizeWidth := 10

	var b strings.Builder

	header := fmt.Sprintf("  %-2s %-*s %-*s %-*s %s",
		"", nameWidth, "NAME", familyWidth, "FAMILY", sizeWidth, "SIZE", "STATE")
	b.WriteString(styles.DimStyle.Render(header))
	b.WriteString("\n")

	visible := t.maxVisible
	if visible <= 0 {
		visible = len(t.models)
	}
	end := t.offset + visible
	if end > len(t.models) {
		end = len(t.models)
	}

	if t.offset > 0 {
		b.WriteString(styles.DimStyle.Render("  ↑ more"))
	}
	b.WriteString("\n")

	for i := t.offset; i < end; i++ {
		b.WriteString(t.renderRow(i, t.models[i], nameWidth, familyWidth, sizeWidth))
		b.WriteString("\n")
	}

	if end < len(t.models) {
		b.WriteString(styles.DimStyle.Render("  ↓ more"))
	}
	b.WriteString("\n")

	return b.String()
}

func (t *ModelTable) renderRow(i int, m domain.Model, nameWidth, familyWidth, sizeWidth int) string {
	indicator, state := t.stateCell(m)

	name := m.Name
	if m.IsCustom {
		name += " *"
	}
	name = truncate(name, nameWidth)

	row := fmt.Sprintf("%s %-*s %-*s %-*s %s",
		indicator,
		nameWidth, name,
		familyWidth, truncate(m.DisplayFamily(), familyWidth),
		sizeWidth, truncate(m.Size, sizeWidth),
		state)

	if i == t.selected {
		return "> " + lipgloss.NewStyle().Foreground(styles.White).Bold(true).Render(row)
	}
	return "  " + row
}

// stateCell returns the indicator glyph and state label for a row.
// Effective downloading state wins over the record's own flags so an
// optimistic request shows as downloading immediately.
func (t *ModelTable) stateCell(m domain.Model) (string, string) {
	if t.downloading[m.ID] {
		frame := styles.SpinnerFrames[t.spinnerFrame%len(styles.SpinnerFrames)]
		return styles.DownloadingStyle.Render(frame),
			styles.DownloadingStyle.Render("Downloading")
	}

	switch m.InstallState() {
	case domain.InstallStateInstalled:
		return styles.InstalledStyle.Render(styles.InstalledChar),
			styles.SuccessStyle.Render("Installed")
	default:
		return styles.AvailableStyle.Render(styles.AvailableChar),
			styles.DimStyle.Render("Available")
	}
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
