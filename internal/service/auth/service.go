package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"clickdeck/internal/model"
	"clickdeck/pkg/util"
)

// ErrInvalidCredentials covers both "no such user" and "wrong
// password". Callers must not distinguish the two outward.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserStore is the read-only credential store the login flow consults.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type Service struct {
	users     UserStore
	jwtSecret string
}

func NewService(users UserStore, jwtSecret string) *Service {
	return &Service{
		users:     users,
		jwtSecret: jwtSecret,
	}
}

// Login verifies an email/password pair and mints a session token
// carrying {id, name, role}, expiring one hour after issue. No session
// state is stored server-side. The returned user view is redacted.
func (s *Service) Login(ctx context.Context, email, password string) (string, *model.UserView, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !util.CheckPassword(password, u.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(u.ID, u.Name, u.Role, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	return token, u.View(), nil
}
