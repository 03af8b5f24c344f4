package domain

// Model represents a model known to the engine, foundation or custom.
// The engine owns this data; the panel only caches it.
type Model struct {
	ID           string `json:"id"`           // Catalog identifier, or filesystem path for custom models
	Name         string `json:"name"`         // Display name
	Family       string `json:"family"`       // Classification tag ("Llama", "Custom", ...); may be empty
	Size         string `json:"size"`         // Human-readable size string, display only
	ReferenceURL string `json:"url"`          // Optional upstream reference
	IsCustom     bool   `json:"is_custom"`    // True for user-registered models
	Downloaded   bool   `json:"downloaded"`   // Engine-reported install state
	Downloading  bool   `json:"downloading"`  // Engine-reported in-progress state
	LocalPath    string `json:"local_path"`   // Where the weights live once downloaded
}

// DisplayFamily returns the classification tag for rendering.
// An absent family implies a generic classification.
func (m Model) DisplayFamily() string {
	if m.Family == "" {
		return "General"
	}
	return m.Family
}

// InstallState represents the engine-reported lifecycle position of a model.
// A model may transiently be neither downloaded nor downloading while the
// engine has accepted a request but not yet started it.
type InstallState int

const (
	InstallStateAbsent InstallState = iota
	InstallStateDownloading
	InstallStateInstalled
)

// InstallState returns the lifecycle position per the engine's last report.
func (m Model) InstallState() InstallState {
	switch {
	case m.Downloaded:
		return InstallStateInstalled
	case m.Downloading:
		return InstallStateDownloading
	default:
		return InstallStateAbsent
	}
}

// String returns a human-readable representation of the install state
func (s InstallState) String() string {
	switch s {
	case InstallStateInstalled:
		return "Installed"
	case InstallStateDownloading:
		return "Downloading"
	default:
		return "Available"
	}
}

// EngineStatus describes the engine the panel is connected to.
type EngineStatus struct {
	Engine       string          // Active engine ("mlx", "unsloth", "none")
	ConfigEngine string          // Engine selected in the engine's own config
	Hardware     map[string]bool // Capability flags ("cuda", "mlx")
}

// Active returns true if the engine has a backend selected and running.
func (s EngineStatus) Active() bool {
	return s.Engine != "" && s.Engine != "none"
}
