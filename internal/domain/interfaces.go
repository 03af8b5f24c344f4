package domain

import "context"

// EngineClient is the stateless transport to the engine service.
// It carries no retry or coordination logic of its own.
type EngineClient interface {
	// Health gates initial availability.
	Health(ctx context.Context) error

	// EngineStatus reports the active engine and hardware capabilities.
	EngineStatus(ctx context.Context) (EngineStatus, error)

	// ListModels returns the full inventory snapshot.
	ListModels(ctx context.Context) ([]Model, error)

	// DownloadModel begins an asynchronous engine-side download.
	// It acknowledges acceptance; it does not block for completion.
	DownloadModel(ctx context.Context, id string) error

	// DeleteModel removes a downloaded model's artifacts.
	DeleteModel(ctx context.Context, id string) error

	// RegisterModel adds a custom model pointing at an existing local
	// artifact directory.
	RegisterModel(ctx context.Context, name, path, referenceURL string) (Model, error)
}

// SnapshotStore persists the last-known inventory across sessions.
// Saves use replace-all semantics; stale ids do not survive a save.
type SnapshotStore interface {
	GetModels() ([]Model, bool)
	SaveModels(models []Model) error
	Close() error
}

// DirectoryPicker delegates directory selection to a native dialog.
// ok is false when the user cancelled.
type DirectoryPicker interface {
	PickDirectory(ctx context.Context) (path string, ok bool, err error)
}
