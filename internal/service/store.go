package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"zmart/internal/domain"
	"zmart/internal/events"
	"zmart/internal/metrics"
	"zmart/internal/state"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

// SnapshotRepository загрузка и сохранение снимка целиком
type SnapshotRepository interface {
	Load(ctx context.Context) (domain.AppState, error)
	Save(ctx context.Context, s domain.AppState) error
}

// Store держит текущий снимок и применяет к нему действия.
// После каждого изменения снимок пишется в репозиторий.
type Store struct {
	mu      sync.Mutex
	current domain.AppState
	snaps   SnapshotRepository
	events  events.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

type Option func(*Store)

func WithEvents(p events.Publisher) Option { return func(s *Store) { s.events = p } }

func WithMetrics(m *metrics.Metrics) Option { return func(s *Store) { s.metrics = m } }

func WithLogger(l *slog.Logger) Option { return func(s *Store) { s.logger = l } }

func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// OpenStore читает сохранённый снимок. Ошибка хранилища не фатальна:
// она пишется в лог, и стор стартует со снимка по умолчанию.
func OpenStore(ctx context.Context, snaps SnapshotRepository, opts ...Option) *Store {
	s := &Store{
		snaps:   snaps,
		events:  events.Nop{},
		metrics: metrics.New(),
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	current, err := snaps.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load state, starting from defaults", slog.String("error", err.Error()))
	}
	s.current = current
	s.metrics.Observe(len(current.Cart), len(current.Orders))
	return s
}

// Snapshot текущий снимок. Переходы не меняют срезы на месте, поэтому копия не нужна.
func (s *Store) Snapshot() domain.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Dispatch применяет одно действие
func (s *Store) Dispatch(ctx context.Context, a state.Action) (domain.AppState, error) {
	return s.Do(ctx, func(domain.AppState) (state.Action, error) { return a, nil })
}

// Do строит действие по текущему снимку и применяет его под одной блокировкой.
// Ошибка build возвращается без изменения состояния.
func (s *Store) Do(ctx context.Context, build func(cur domain.AppState) (state.Action, error)) (domain.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := build(s.current)
	if err != nil {
		return s.current, err
	}
	next, err := state.Apply(s.current, a)
	if err != nil {
		s.metrics.Intent(a.Name(), "noop")
		s.logger.Debug("intent ignored", slog.String("action", a.Name()), slog.String("reason", err.Error()))
		return s.current, err
	}
	s.metrics.Intent(a.Name(), "applied")
	// ошибка записи уже в логе, переход остаётся в силе
	_ = s.commit(ctx, a.Name(), next)
	return next, nil
}

// Reset возвращает снимок по умолчанию и сохраняет его.
// В отличие от Dispatch ошибка записи возвращается: для команды reset запись и есть результат.
func (s *Store) Reset(ctx context.Context) (domain.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.commit(ctx, "reset", domain.DefaultState()); err != nil {
		return s.current, fmt.Errorf("persist reset state: %w", err)
	}
	return s.current, nil
}

// commit requires s.mu held. Снимок применяется даже при ошибке записи.
func (s *Store) commit(ctx context.Context, action string, next domain.AppState) error {
	s.current = next
	saveErr := s.snaps.Save(ctx, next)
	s.metrics.Saved(saveErr)
	if saveErr != nil {
		s.logger.Warn("failed to persist state", slog.String("action", action), slog.String("error", saveErr.Error()))
	}
	s.metrics.Observe(len(next.Cart), len(next.Orders))
	ev := events.StateChanged{Action: action, CartLines: len(next.Cart), Orders: len(next.Orders), At: s.now().UTC()}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.logger.Warn("failed to publish state change", slog.String("action", action), slog.String("error", err.Error()))
	}
	return saveErr
}

// Metrics коллекторы стора для /metrics
func (s *Store) Metrics() *metrics.Metrics { return s.metrics }
