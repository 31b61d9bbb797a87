package get_trainers

import "github.com/m04kA/SMC-TrainingPortal/internal/domain"

// TrainerResponse HTTP response model
type TrainerResponse struct {
	ID                     int64  `json:"id"`
	Name                   string `json:"name"`
	Specialty              string `json:"specialty,omitempty"`
	Location               string `json:"location,omitempty"`
	SessionDurationMinutes int    `json:"sessionDurationMinutes"`
}

// TrainerListResponse HTTP response model
type TrainerListResponse struct {
	Trainers []TrainerResponse `json:"trainers"`
	Degraded bool              `json:"degraded"`
}

// FromDomain конвертирует список тренеров
func FromDomain(trainers []domain.Trainer, degraded bool) *TrainerListResponse {
	resp := &TrainerListResponse{
		Trainers: make([]TrainerResponse, 0, len(trainers)),
		Degraded: degraded,
	}
	for _, t := range trainers {
		resp.Trainers = append(resp.Trainers, TrainerResponse{
			ID:                     t.ID,
			Name:                   t.Name,
			Specialty:              t.Specialty,
			Location:               t.Location,
			SessionDurationMinutes: t.SessionDurationMinutes,
		})
	}
	return resp
}
