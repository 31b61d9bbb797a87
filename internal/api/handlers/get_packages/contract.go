package get_packages

import (
	"context"

	"github.com/m04kA/SMC-TrainingPortal/internal/service/catalog"
)

type CatalogService interface {
	PackagesByCategory(ctx context.Context) (groups []catalog.CategoryGroup, degraded bool)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
