package catalog

import (
	"context"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
)

// StudioClient интерфейс клиента API студии
type StudioClient interface {
	ListTrainers(ctx context.Context) ([]domain.Trainer, error)
	ListPackages(ctx context.Context) ([]domain.Package, error)
}

// Cache интерфейс кэша справочников
type Cache interface {
	GetTrainers(ctx context.Context) ([]domain.Trainer, bool, error)
	SetTrainers(ctx context.Context, trainers []domain.Trainer) error
	GetPackages(ctx context.Context) ([]domain.Package, bool, error)
	SetPackages(ctx context.Context, packages []domain.Package) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
