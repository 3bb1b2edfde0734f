package service

import (
	"context"
	"strings"

	"zmart/internal/domain"
	"zmart/internal/state"
)

// SessionService мок-вход: любая почта и роль принимаются без проверки
type SessionService struct {
	store *Store
	newID func() string
}

func NewSessionService(store *Store) *SessionService {
	return &SessionService{store: store, newID: func() string { return newID("") }}
}

// Login имя по умолчанию берётся из локальной части почты, id генерируется
func (s *SessionService) Login(ctx context.Context, email, name string, role domain.Role) (*domain.User, error) {
	return s.LoginAs(ctx, "", email, name, role)
}

// LoginAs вход с id, который прислал клиент (мок, не проверяется).
// Так продавец входит под id своих товаров. Пустой id генерируется.
func (s *SessionService) LoginAs(ctx context.Context, id, email, name string, role domain.Role) (*domain.User, error) {
	if name == "" {
		name, _, _ = strings.Cut(strings.TrimSpace(email), "@")
	}
	return s.enter(ctx, id, email, name, role)
}

// Signup имя по умолчанию "New User"
func (s *SessionService) Signup(ctx context.Context, email, name string, role domain.Role) (*domain.User, error) {
	if name == "" {
		name = "New User"
	}
	return s.enter(ctx, "", email, name, role)
}

func (s *SessionService) enter(ctx context.Context, id, email, name string, role domain.Role) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !role.Valid() {
		return nil, ErrInvalidInput
	}
	if id = strings.TrimSpace(id); id == "" {
		id = s.newID()
	}
	u := domain.User{ID: id, Name: name, Email: email, Role: role}
	if _, err := s.store.Dispatch(ctx, state.Login{User: u}); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *SessionService) Logout(ctx context.Context) error {
	_, err := s.store.Dispatch(ctx, state.Logout{})
	return err
}

// Current текущий пользователь или state.ErrNoUser
func (s *SessionService) Current() (*domain.User, error) {
	u := s.store.Snapshot().User
	if u == nil {
		return nil, state.ErrNoUser
	}
	cp := *u
	return &cp, nil
}

// requireSeller проверка роли на уровне представления, не безопасность
func requireSeller(st domain.AppState) (*domain.User, error) {
	if st.User == nil {
		return nil, state.ErrNoUser
	}
	if st.User.Role != domain.RoleSeller {
		return nil, ErrForbidden
	}
	return st.User, nil
}
