package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"medtrack/internal/domain"
	"medtrack/internal/repository"
)

var ErrNotSignedIn = errors.New("not signed in")

const (
	mockUserID   = "user-1"
	mockUserName = "João Silva"
)

// Session пользователь и выданный ему токен
type Session struct {
	User      domain.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// UserService локальный пользователь. Вход имитируется, пароль не проверяется.
type UserService struct {
	repo   repository.UserRepository
	tokens *Tokens
	now    func() time.Time
}

func NewUserService(repo repository.UserRepository, tokens *Tokens) *UserService {
	return &UserService{repo: repo, tokens: tokens, now: time.Now}
}

// Current nil, если никто не вошёл
func (s *UserService) Current(ctx context.Context) (*domain.User, error) {
	u, err := s.repo.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

// Authenticate пользователь по токену; токен должен принадлежать текущему пользователю
func (s *UserService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.tokens.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotSignedIn, err)
	}
	u, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil || u.ID != userID {
		return nil, ErrNotSignedIn
	}
	return u, nil
}

func (s *UserService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}
	return s.start(ctx, domain.User{
		ID:        mockUserID,
		Name:      mockUserName,
		Email:     email,
		CreatedAt: s.now().UTC(),
	})
}

func (s *UserService) SignUp(ctx context.Context, name, email, password string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrInvalidInput
	}
	return s.start(ctx, domain.User{
		ID:        "user-" + uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: s.now().UTC(),
	})
}

func (s *UserService) start(ctx context.Context, u domain.User) (*Session, error) {
	if err := s.repo.Save(ctx, &u); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	token, exp, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: u, Token: token, ExpiresAt: exp}, nil
}

func (s *UserService) SignOut(ctx context.Context) error {
	return s.repo.Remove(ctx)
}

// UserPatch изменяемые поля профиля, nil не меняет поле
type UserPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

func (s *UserService) Update(ctx context.Context, p UserPatch) (*domain.User, error) {
	return s.modify(ctx, func(u *domain.User) error {
		if p.Name != nil {
			v := strings.TrimSpace(*p.Name)
			if v == "" {
				return invalidInputf("name is empty")
			}
			u.Name = v
		}
		if p.Email != nil {
			v := strings.TrimSpace(*p.Email)
			if v == "" {
				return invalidInputf("email is empty")
			}
			u.Email = v
		}
		if p.Phone != nil {
			u.Phone = strings.TrimSpace(*p.Phone)
		}
		return nil
	})
}

// UpdateAddress основной адрес доставки
func (s *UserService) UpdateAddress(ctx context.Context, address string) (*domain.User, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrInvalidInput
	}
	return s.modify(ctx, func(u *domain.User) error {
		u.Address = address
		return nil
	})
}

// AddSavedAddress повторно тот же адрес не добавляется
func (s *UserService) AddSavedAddress(ctx context.Context, address string) (*domain.User, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrInvalidInput
	}
	return s.modify(ctx, func(u *domain.User) error {
		for _, a := range u.SavedAddresses {
			if a == address {
				return nil
			}
		}
		u.SavedAddresses = append(u.SavedAddresses, address)
		return nil
	})
}

func (s *UserService) SavedAddresses(ctx context.Context) ([]string, error) {
	u, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotSignedIn
	}
	if u.SavedAddresses == nil {
		return []string{}, nil
	}
	return u.SavedAddresses, nil
}

func (s *UserService) modify(ctx context.Context, fn func(u *domain.User) error) (*domain.User, error) {
	u, err := s.repo.Modify(ctx, fn)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotSignedIn
	}
	return u, err
}
