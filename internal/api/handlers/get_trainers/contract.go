package get_trainers

import (
	"context"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
)

type CatalogService interface {
	Trainers(ctx context.Context) (trainers []domain.Trainer, degraded bool)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
