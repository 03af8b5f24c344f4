package backend

// Wire types for the engine's JSON API.

// modelPayload mirrors one entry of GET /api/engine/models.
type modelPayload struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Family       string `json:"family,omitempty"`
	Size         string `json:"size,omitempty"`
	URL          string `json:"url,omitempty"`
	External     bool   `json:"external,omitempty"`
	IsCustom     bool   `json:"is_custom,omitempty"`
	Downloaded   bool   `json:"downloaded"`
	Downloading  bool   `json:"downloading"`
	LocalPath    string `json:"local_path,omitempty"`
	IsFinetuned  bool   `json:"is_finetuned,omitempty"`
	EngineName   string `json:"engine,omitempty"`
}

// downloadRequest is the body for POST /api/engine/models/download
// and POST /api/engine/models/delete.
type downloadRequest struct {
	ModelID string `json:"model_id"`
}

// registerRequest is the body for POST /api/engine/models/register.
type registerRequest struct {
	Name string `json:"name"`
	Path string `json:"path"`
	URL  string `json:"url,omitempty"`
}

// healthPayload mirrors GET /health.
type healthPayload struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// statusPayload mirrors GET /api/engine/status.
type statusPayload struct {
	Engine       string          `json:"engine"`
	ConfigEngine string          `json:"config_engine"`
	Hardware     map[string]bool `json:"hardware"`
}

// errorPayload is the FastAPI-style error envelope on non-2xx responses.
type errorPayload struct {
	Detail string `json:"detail"`
}
