package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/depot/internal/domain"
	"github.com/mmcdole/depot/internal/lifecycle"
)

const (
	opTimeout       = 30 * time.Second
	spinnerInterval = 120 * time.Millisecond
)

// waitForChangeCmd blocks until the controller publishes a new snapshot
func waitForChangeCmd(obs *ChannelObserver) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-obs.Changes()
		if !ok {
			return nil
		}
		return StateChangedMsg{Snapshot: snap}
	}
}

// refreshCmd triggers a blocking (loud) refresh
func refreshCmd(ctrl *lifecycle.Controller) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return RefreshDoneMsg{Err: ctrl.Refresh(ctx, false)}
	}
}

// downloadCmd requests a model download
func downloadCmd(ctrl *lifecycle.Controller, modelID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return DownloadRequestedMsg{
			ModelID: modelID,
			Err:     ctrl.RequestDownload(ctx, modelID),
		}
	}
}

// registerCmd registers a custom model from the form values
func registerCmd(ctrl *lifecycle.Controller, name, path, referenceURL string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return RegisterDoneMsg{Err: ctrl.Register(ctx, name, path, referenceURL)}
	}
}

// commitDeleteCmd deletes the staged model
func commitDeleteCmd(ctrl *lifecycle.Controller) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return DeleteDoneMsg{Err: ctrl.CommitDelete(ctx)}
	}
}

// engineStatusCmd fetches the backend status readout
func engineStatusCmd(client domain.EngineClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		status, err := client.EngineStatus(ctx)
		return EngineStatusMsg{Status: status, Err: err}
	}
}

// pickDirectoryCmd opens the native folder chooser
func pickDirectoryCmd(p domain.DirectoryPicker) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		path, ok, err := p.PickDirectory(ctx)
		return DirectoryPickedMsg{Path: path, OK: ok, Err: err}
	}
}

// spinnerTickCmd schedules the next spinner frame
func spinnerTickCmd() tea.Cmd {
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg {
		return SpinnerTickMsg{}
	})
}

// clearStatusCmd clears the footer status after a short delay
func clearStatusCmd() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
