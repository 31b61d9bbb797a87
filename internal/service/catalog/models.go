package catalog

import "github.com/m04kA/SMC-TrainingPortal/internal/domain"

// DefaultCategory категория для пакетов без категории
const DefaultCategory = "other"

// CategoryGroup пакеты одной категории
type CategoryGroup struct {
	Category string
	Packages []domain.Package
}
