package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
)

// UseCase use case загрузки слотов тренера за месяц и расчета доступных дней
type UseCase struct {
	slotsClient  SlotsClient
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. location это зона пользователя, в которой считаются дни.
func NewUseCase(slotsClient SlotsClient, location *time.Location, logger Logger) *UseCase {
	if location == nil {
		location = time.Local
	}
	return &UseCase{
		slotsClient:  slotsClient,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Now возвращает текущее время в зоне пользователя
func (uc *UseCase) Now() time.Time {
	return uc.timeProvider.Now().In(uc.location)
}

// Location возвращает зону пользователя
func (uc *UseCase) Location() *time.Location {
	return uc.location
}

// Execute загружает слоты месяца и пересчитывает индекс целиком.
// Ошибка загрузки не пробрасывается: возвращается пустой месяц с Degraded.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: trainer=%d, month=%04d-%02d", req.TrainerID, req.Year, int(req.Month))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем слоты
	slots, err := uc.slotsClient.ListSlots(ctx, req.TrainerID, req.Year, req.Month)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to load slots for trainer=%d, showing empty month: %v", req.TrainerID, err)
		return &Response{
			Year:        req.Year,
			Month:       req.Month,
			Slots:       []domain.Slot{},
			EnabledDays: DaySet{},
			Degraded:    true,
		}, nil
	}

	// 3. Считаем доступные дни на текущий момент
	now := uc.Now()
	ordered := make([]domain.Slot, len(slots))
	copy(ordered, slots)
	sortByStart(ordered)

	days := EnabledDays(req.Year, req.Month, ordered, now)

	uc.logger.Info("GetAvailableSlots: trainer=%d, loaded %d slots, %d enabled days", req.TrainerID, len(ordered), len(days))

	return &Response{
		Year:        req.Year,
		Month:       req.Month,
		Slots:       ordered,
		EnabledDays: days,
	}, nil
}
