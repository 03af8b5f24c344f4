package backend

import "github.com/mmcdole/depot/internal/domain"

// MapModels converts engine payloads to domain models
func MapModels(payloads []modelPayload) []domain.Model {
	models := make([]domain.Model, 0, len(payloads))
	for _, p := range payloads {
		models = append(models, mapModel(p))
	}
	return models
}

// mapModel converts a single engine payload to a domain model
func mapModel(p modelPayload) domain.Model {
	name := p.Name
	if name == "" {
		name = p.ID
	}
	return domain.Model{
		ID:           p.ID,
		Name:         name,
		Family:       p.Family,
		Size:         p.Size,
		ReferenceURL: p.URL,
		IsCustom:     p.IsCustom,
		Downloaded:   p.Downloaded,
		Downloading:  p.Downloading,
		LocalPath:    p.LocalPath,
	}
}

// mapStatus converts the engine status payload to the domain type
func mapStatus(p statusPayload) domain.EngineStatus {
	return domain.EngineStatus{
		Engine:       p.Engine,
		ConfigEngine: p.ConfigEngine,
		Hardware:     p.Hardware,
	}
}
