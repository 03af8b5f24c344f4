package tui

import (
	"github.com/mmcdole/depot/internal/domain"
	"github.com/mmcdole/depot/internal/lifecycle"
)

// StateChangedMsg carries a fresh controller snapshot
type StateChangedMsg struct {
	Snapshot lifecycle.Snapshot
}

// RefreshDoneMsg signals a user-initiated refresh completed
type RefreshDoneMsg struct {
	Err error
}

// DownloadRequestedMsg signals a download request finished
type DownloadRequestedMsg struct {
	ModelID string
	Err     error
}

// RegisterDoneMsg signals a registration attempt finished
type RegisterDoneMsg struct {
	Err error
}

// DeleteDoneMsg signals a staged delete finished
type DeleteDoneMsg struct {
	Err error
}

// EngineStatusMsg carries the backend status readout
type EngineStatusMsg struct {
	Status domain.EngineStatus
	Err    error
}

// DirectoryPickedMsg carries the result of the native folder dialog
type DirectoryPickedMsg struct {
	Path string
	OK   bool
	Err  error
}

// SpinnerTickMsg advances the downloading spinner
type SpinnerTickMsg struct{}

// ClearStatusMsg clears a transient footer status line
type ClearStatusMsg struct{}
