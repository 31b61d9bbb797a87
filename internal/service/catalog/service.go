package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
)

// Service отдает справочники студии. Кэш опционален.
type Service struct {
	client StudioClient
	cache  Cache
	logger Logger
}

// NewService создает новый экземпляр сервиса справочников. cache может быть nil.
func NewService(client StudioClient, cache Cache, logger Logger) *Service {
	return &Service{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// Trainers возвращает список тренеров. При ошибке загрузки возвращает пустой список и degraded=true.
func (s *Service) Trainers(ctx context.Context) (trainers []domain.Trainer, degraded bool) {
	if s.cache != nil {
		cached, found, err := s.cache.GetTrainers(ctx)
		if err != nil {
			s.logger.Warn("Trainers: cache read failed: %v", err)
		} else if found {
			return cached, false
		}
	}

	trainers, err := s.client.ListTrainers(ctx)
	if err != nil {
		s.logger.Warn("Trainers: failed to load trainers, treating as empty: %v", err)
		return []domain.Trainer{}, true
	}

	if s.cache != nil {
		if err := s.cache.SetTrainers(ctx, trainers); err != nil {
			s.logger.Warn("Trainers: cache write failed: %v", err)
		}
	}

	s.logger.Info("Trainers: loaded %d trainers", len(trainers))
	return trainers, false
}

// Packages возвращает все пакеты в порядке бэкенда
func (s *Service) Packages(ctx context.Context) (packages []domain.Package, degraded bool) {
	if s.cache != nil {
		cached, found, err := s.cache.GetPackages(ctx)
		if err != nil {
			s.logger.Warn("Packages: cache read failed: %v", err)
		} else if found {
			return cached, false
		}
	}

	packages, err := s.client.ListPackages(ctx)
	if err != nil {
		s.logger.Warn("Packages: failed to load packages, treating as empty: %v", err)
		return []domain.Package{}, true
	}

	if s.cache != nil {
		if err := s.cache.SetPackages(ctx, packages); err != nil {
			s.logger.Warn("Packages: cache write failed: %v", err)
		}
	}

	s.logger.Info("Packages: loaded %d packages", len(packages))
	return packages, false
}

// PackagesByCategory группирует пакеты по категории.
// Категории упорядочены по имени, пакеты внутри категории по числу занятий, затем по названию.
func (s *Service) PackagesByCategory(ctx context.Context) (groups []CategoryGroup, degraded bool) {
	packages, degraded := s.Packages(ctx)
	return GroupByCategory(packages), degraded
}

// GroupByCategory группирует пакеты; пустая категория попадает в DefaultCategory
func GroupByCategory(packages []domain.Package) []CategoryGroup {
	index := make(map[string]int)
	groups := make([]CategoryGroup, 0)

	for _, pkg := range packages {
		category := strings.TrimSpace(pkg.Category)
		if category == "" {
			category = DefaultCategory
		}

		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, CategoryGroup{Category: category})
		}
		groups[i].Packages = append(groups[i].Packages, pkg)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Category < groups[j].Category
	})
	for i := range groups {
		pkgs := groups[i].Packages
		sort.SliceStable(pkgs, func(a, b int) bool {
			if pkgs[a].SessionCount != pkgs[b].SessionCount {
				return pkgs[a].SessionCount < pkgs[b].SessionCount
			}
			return pkgs[a].Title < pkgs[b].Title
		})
	}

	return groups
}
