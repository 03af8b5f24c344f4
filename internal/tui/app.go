// Package tui implements the terminal control panel: an inventory table
// over the engine's model catalog with download, registration, and
// two-phase delete flows driven by the lifecycle controller.
package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/depot/internal/domain"
	"github.com/mmcdole/depot/internal/lifecycle"
	"github.com/mmcdole/depot/internal/search"
	"github.com/mmcdole/depot/internal/tui/components"
	"github.com/mmcdole/depot/internal/tui/styles"
)

// ApplicationState represents the current interaction mode
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateFiltering
	StateRegistering
	StateConfirmDelete
	StateHelp
)

// Model is the root Bubble Tea model for the panel
type Model struct {
	state ApplicationState

	ctrl     *lifecycle.Controller
	client   domain.EngineClient
	picker   domain.DirectoryPicker
	observer *ChannelObserver
	logger   *slog.Logger

	snap           lifecycle.Snapshot
	engineStatus   domain.EngineStatus
	engineStatusOK bool

	table   components.ModelTable
	form    components.RegisterForm
	confirm components.ConfirmModal
	filter  textinput.Model

	width        int
	height       int
	spinnerFrame int
	status       string
}

// NewModel constructs the root model and subscribes to controller state
func NewModel(
	ctrl *lifecycle.Controller,
	client domain.EngineClient,
	pick domain.DirectoryPicker,
	logger *slog.Logger,
) Model {
	obs := NewChannelObserver()
	ctrl.Subscribe(obs)

	filter := textinput.New()
	filter.Placeholder = "filter models"
	filter.Prompt = "/ "
	filter.CharLimit = 64

	return Model{
		state:    StateBrowsing,
		ctrl:     ctrl,
		client:   client,
		picker:   pick,
		observer: obs,
		logger:   logger,
		snap:     ctrl.Snapshot(),
		table:    components.NewModelTable(),
		form:     components.NewRegisterForm(),
		confirm:  components.NewConfirmModal(),
		filter:   filter,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForChangeCmd(m.observer),
		refreshCmd(m.ctrl),
		engineStatusCmd(m.client),
		spinnerTickCmd(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetSize(msg.Width, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case StateChangedMsg:
		m.snap = msg.Snapshot
		m.syncTable()
		return m, waitForChangeCmd(m.observer)

	case SpinnerTickMsg:
		m.spinnerFrame++
		m.table.SetSpinnerFrame(m.spinnerFrame)
		return m, spinnerTickCmd()

	case RefreshDoneMsg:
		// Failure detail already arrives through the snapshot.
		if msg.Err != nil {
			m.logger.Warn("refresh failed", "error", msg.Err)
		}
		return m, nil

	case DownloadRequestedMsg:
		if msg.Err == nil {
			m.status = "Download requested"
			return m, clearStatusCmd()
		}
		m.logger.Warn("download request failed", "model_id", msg.ModelID, "error", msg.Err)
		return m, nil

	case RegisterDoneMsg:
		if msg.Err != nil {
			m.form.SetError(registerErrText(msg.Err))
			return m, nil
		}
		m.form.Hide()
		m.state = StateBrowsing
		m.status = "Model registered"
		return m, clearStatusCmd()

	case DeleteDoneMsg:
		if msg.Err != nil {
			m.confirm.SetError(msg.Err.Error())
			return m, nil
		}
		m.confirm.Hide()
		m.state = StateBrowsing
		m.status = "Model deleted"
		return m, clearStatusCmd()

	case EngineStatusMsg:
		if msg.Err != nil {
			m.engineStatusOK = false
			m.logger.Warn("engine status fetch failed", "error", msg.Err)
			return m, nil
		}
		m.engineStatus = msg.Status
		m.engineStatusOK = true
		return m, nil

	case DirectoryPickedMsg:
		if msg.Err != nil {
			m.logger.Warn("directory picker failed", "error", msg.Err)
			return m, nil
		}
		if msg.OK {
			m.form.SetPath(msg.Path)
		}
		return m, nil

	case ClearStatusMsg:
		m.status = ""
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.state {
	case StateRegistering:
		return m.handleRegisterKey(msg)
	case StateConfirmDelete:
		return m.handleConfirmKey(msg)
	case StateFiltering:
		return m.handleFilterKey(msg)
	case StateHelp:
		m.state = StateBrowsing
		return m, nil
	}

	return m.handleBrowseKey(msg)
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		m.table.MoveUp()
	case "down", "j":
		m.table.MoveDown()

	case "/":
		m.state = StateFiltering
		m.filter.Focus()
		return m, textinput.Blink

	case "r":
		return m, refreshCmd(m.ctrl)

	case "s":
		return m, engineStatusCmd(m.client)

	case "enter", "d":
		selected, ok := m.table.Selected()
		if !ok {
			return m, nil
		}
		// Re-requesting an installed or in-flight model is a no-op.
		if selected.Downloaded {
			m.status = fmt.Sprintf("%s is already installed", selected.Name)
			return m, clearStatusCmd()
		}
		if m.snap.EffectiveDownloading(selected) {
			m.status = fmt.Sprintf("%s is already downloading", selected.Name)
			return m, clearStatusCmd()
		}
		return m, downloadCmd(m.ctrl, selected.ID)

	case "x", "backspace":
		selected, ok := m.table.Selected()
		if !ok {
			return m, nil
		}
		m.ctrl.ConfirmDelete(selected)
		m.confirm.Show(selected)
		m.state = StateConfirmDelete
		return m, nil

	case "a":
		m.form.Show()
		m.state = StateRegistering
		return m, textinput.Blink

	case "esc":
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.syncTable()
			return m, nil
		}
		if m.snap.Err != nil {
			m.ctrl.ClearError()
		}
		return m, nil

	case "?":
		m.state = StateHelp
		return m, nil
	}

	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filter.SetValue("")
		m.filter.Blur()
		m.state = StateBrowsing
		m.syncTable()
		return m, nil
	case "enter":
		m.filter.Blur()
		m.state = StateBrowsing
		return m, nil
	case "up", "down":
		if msg.String() == "up" {
			m.table.MoveUp()
		} else {
			m.table.MoveDown()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.syncTable()
	return m, cmd
}

func (m Model) handleRegisterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form.IsBusy() {
		return m, nil
	}

	if msg.String() == "ctrl+o" {
		return m, pickDirectoryCmd(m.picker)
	}

	form, cmd, submitted := m.form.Update(msg)
	m.form = form

	if submitted {
		name, path, url := m.form.Values()
		m.form.SetBusy()
		return m, registerCmd(m.ctrl, name, path, url)
	}
	if !m.form.IsVisible() {
		m.state = StateBrowsing
	}
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	confirm, confirmed, cancelled := m.confirm.Update(msg)
	m.confirm = confirm

	if confirmed {
		m.confirm.SetBusy()
		return m, commitDeleteCmd(m.ctrl)
	}
	if cancelled {
		m.ctrl.CancelDelete()
		m.state = StateBrowsing
	}
	return m, nil
}

// syncTable recomputes the visible rows from the snapshot and filter
func (m *Model) syncTable() {
	models := m.snap.Models
	if query := strings.TrimSpace(m.filter.Value()); query != "" {
		results := search.FilterModels(query, models)
		models = make([]domain.Model, len(results))
		for i, r := range results {
			models[i] = r.Model
		}
	}

	downloading := make(map[string]bool)
	for _, mod := range m.snap.Models {
		if m.snap.EffectiveDownloading(mod) {
			downloading[mod.ID] = true
		}
	}

	m.table.SetModels(models, downloading)
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading…"
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")

	switch {
	case m.state == StateHelp:
		b.WriteString(m.helpView())
	case m.form.IsVisible():
		b.WriteString(m.overlayView(m.form.View()))
	case m.confirm.IsVisible():
		b.WriteString(m.overlayView(m.confirm.View()))
	default:
		b.WriteString(m.table.View())
	}

	b.WriteString("\n")
	b.WriteString(m.footerView())
	return b.String()
}

func (m Model) headerView() string {
	title := styles.TitleStyle.Render("Depot")
	subtitle := styles.DimStyle.Render("model inventory")

	engine := styles.DimStyle.Render("engine: unknown")
	if m.engineStatusOK {
		if m.engineStatus.Active() {
			engine = styles.SuccessStyle.Render("engine: " + m.engineStatus.Engine)
		} else {
			engine = styles.ErrorStyle.Render("engine: inactive")
		}
	}

	left := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", subtitle)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(engine)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + engine
}

func (m Model) footerView() string {
	var parts []string

	if m.snap.Err != nil {
		parts = append(parts, styles.ErrorStyle.Render("✗ "+m.snap.Err.Error()+"  (esc to dismiss)"))
	} else if m.status != "" {
		parts = append(parts, styles.SuccessStyle.Render(m.status))
	}

	var line string
	switch m.state {
	case StateFiltering:
		line = m.filter.View()
	default:
		if m.filter.Value() != "" {
			line = styles.AccentStyle.Render("filter: "+m.filter.Value()) + "  "
		}
		line += styles.DimStyle.Render("↑/↓ move · enter download · x delete · a register · / filter · r refresh · ? help · q quit")
	}

	if m.snap.Loading {
		frame := styles.SpinnerFrames[m.spinnerFrame%len(styles.SpinnerFrames)]
		line += "  " + styles.AccentStyle.Render(frame+" refreshing")
	} else if m.snap.Polling {
		line += "  " + styles.DimStyle.Render("watching downloads")
	}

	parts = append(parts, line)
	return strings.Join(parts, "\n")
}

func (m Model) helpView() string {
	rows := []string{
		styles.TitleStyle.Render("Keys"),
		"",
		"  ↑/k ↓/j      move selection",
		"  enter, d     download selected model",
		"  x            delete selected model (asks first)",
		"  a            register a custom model",
		"  /            filter inventory",
		"  r            refresh from engine",
		"  s            re-check engine status",
		"  esc          clear filter / dismiss error",
		"  q, ctrl+c    quit",
		"",
		styles.DimStyle.Render("press any key to close"),
	}
	return m.overlayView(lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.SlateLight).
		Padding(1, 2).
		Render(strings.Join(rows, "\n")))
}

// overlayView centers modal content in the table area
func (m Model) overlayView(content string) string {
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, content)
}

// registerErrText renders a registration failure for the form, keeping
// validation messages short and service detail verbatim.
func registerErrText(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	return err.Error()
}
