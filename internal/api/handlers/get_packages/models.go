package get_packages

import "github.com/m04kA/SMC-TrainingPortal/internal/service/catalog"

// PackageResponse HTTP response model
type PackageResponse struct {
	ID                     int64  `json:"id"`
	Title                  string `json:"title"`
	SessionCount           int    `json:"sessionCount"`
	SessionDurationMinutes int    `json:"sessionDurationMinutes"`
	Price                  string `json:"price"`
	Currency               string `json:"currency,omitempty"`
	ValidityDays           int    `json:"validityDays,omitempty"`
}

// CategoryResponse пакеты одной категории
type CategoryResponse struct {
	Category string            `json:"category"`
	Packages []PackageResponse `json:"packages"`
}

// PackageCatalogResponse HTTP response model
type PackageCatalogResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Degraded   bool               `json:"degraded"`
}

// FromCategoryGroups конвертирует сгруппированные пакеты
func FromCategoryGroups(groups []catalog.CategoryGroup, degraded bool) *PackageCatalogResponse {
	resp := &PackageCatalogResponse{
		Categories: make([]CategoryResponse, 0, len(groups)),
		Degraded:   degraded,
	}

	for _, g := range groups {
		category := CategoryResponse{
			Category: g.Category,
			Packages: make([]PackageResponse, 0, len(g.Packages)),
		}
		for _, p := range g.Packages {
			category.Packages = append(category.Packages, PackageResponse{
				ID:                     p.ID,
				Title:                  p.Title,
				SessionCount:           p.SessionCount,
				SessionDurationMinutes: p.SessionDurationMinutes,
				Price:                  p.Price,
				Currency:               p.Currency,
				ValidityDays:           p.ValidityDays,
			})
		}
		resp.Categories = append(resp.Categories, category)
	}

	return resp
}
