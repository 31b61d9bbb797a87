package sessions

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TrainingPortal/internal/integrations/studioapi"
	"github.com/m04kA/SMC-TrainingPortal/internal/wizard"
)

type session struct {
	controller *wizard.Controller
	owner      [sha256.Size]byte // хеш токена, с которым мастер был открыт
	lastSeen   time.Time
}

// ownerOf возвращает хеш токена пользователя из контекста
func ownerOf(ctx context.Context) [sha256.Size]byte {
	token, _ := studioapi.TokenFromContext(ctx)
	return sha256.Sum256([]byte(token))
}

func (sess *session) ownedBy(owner [sha256.Size]byte) bool {
	return subtle.ConstantTimeCompare(sess.owner[:], owner[:]) == 1
}

// Service реестр открытых мастеров записи. Хранится только в памяти процесса.
type Service struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session

	deps        wizard.Deps
	idleTTL     time.Duration
	maxSessions int

	metrics      Metrics
	logger       Logger
	timeProvider TimeProvider
}

// NewService создает реестр. maxSessions <= 0 означает отсутствие лимита.
func NewService(deps wizard.Deps, idleTTL time.Duration, maxSessions int, metrics Metrics, logger Logger) *Service {
	return &Service{
		sessions:     make(map[uuid.UUID]*session),
		deps:         deps,
		idleTTL:      idleTTL,
		maxSessions:  maxSessions,
		metrics:      metrics,
		logger:       logger,
		timeProvider: &RealTimeProvider{},
	}
}

// Start создает мастер, регистрирует его за владельцем токена из ctx и загружает стартовые данные
func (s *Service) Start(ctx context.Context, cfg wizard.Config) (uuid.UUID, wizard.View, error) {
	controller, err := wizard.NewController(cfg, s.deps)
	if err != nil {
		return uuid.Nil, wizard.View{}, err
	}

	id := uuid.New()

	s.mu.Lock()
	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		s.mu.Unlock()
		s.logger.Warn("StartWizard: limit of %d sessions reached", s.maxSessions)
		return uuid.Nil, wizard.View{}, ErrTooManySessions
	}
	s.sessions[id] = &session{controller: controller, owner: ownerOf(ctx), lastSeen: s.timeProvider.Now()}
	active := len(s.sessions)
	s.mu.Unlock()

	s.reportActive(active)

	view, err := controller.Open(ctx)
	if err != nil {
		s.logger.Warn("StartWizard: failed to open wizard %s: %v", id, err)
		s.remove(id)
		return uuid.Nil, wizard.View{}, fmt.Errorf("open wizard: %w", err)
	}

	s.logger.Info("StartWizard: wizard %s opened (mode=%s)", id, cfg.Mode)
	return id, view, nil
}

// Get возвращает мастер по идентификатору и продлевает его жизнь.
// Мастер другого пользователя не отличается от несуществующего.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*wizard.Controller, error) {
	owner := ownerOf(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || !sess.ownedBy(owner) || sess.controller.Closed() {
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = s.timeProvider.Now()
	return sess.controller, nil
}

// Close закрывает мастер владельца и удаляет его из реестра
func (s *Service) Close(ctx context.Context, id uuid.UUID) error {
	owner := ownerOf(ctx)

	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok || !sess.ownedBy(owner) {
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	s.mu.Unlock()

	s.remove(id)
	return nil
}

func (s *Service) remove(id uuid.UUID) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	active := len(s.sessions)
	s.mu.Unlock()

	if !ok {
		return
	}
	sess.controller.Close()
	s.reportActive(active)
}

// Sweep закрывает мастера, неактивные дольше idleTTL. Возвращает число закрытых.
func (s *Service) Sweep(now time.Time) int {
	var expired []*wizard.Controller

	s.mu.Lock()
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.idleTTL || sess.controller.Closed() {
			expired = append(expired, sess.controller)
			delete(s.sessions, id)
		}
	}
	active := len(s.sessions)
	s.mu.Unlock()

	for _, controller := range expired {
		controller.Close()
	}

	if len(expired) > 0 {
		s.logger.Info("SweepWizards: closed %d idle wizards, %d active", len(expired), active)
	}
	s.reportActive(active)
	return len(expired)
}

// Run периодически вызывает Sweep до отмены контекста
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(s.timeProvider.Now())
		}
	}
}

// CloseAll закрывает все мастера при остановке сервиса
func (s *Service) CloseAll() {
	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[uuid.UUID]*session)
	s.mu.Unlock()

	for _, sess := range all {
		sess.controller.Close()
	}
	s.reportActive(0)
}

// Count возвращает число открытых мастеров
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Service) reportActive(n int) {
	if s.metrics != nil {
		s.metrics.SetActiveWizards(n)
	}
}
