package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/freshbasket/api/internal/domain/entity"
	repo "github.com/freshbasket/api/internal/domain/repository"
	"github.com/freshbasket/api/pkg/helpers"
	"github.com/freshbasket/api/pkg/mailer"
)

// AuthService implements signup, login and profile lookup against the
// credential store. Tokens are issued by the JWT manager; the welcome email
// is enqueued best effort and never fails the signup.
type AuthService struct {
	Repo       repo.UserRepository
	JWT        *helpers.JWTManager
	Pub        *helpers.RabbitPublisher
	Logger     *logrus.Logger
	AdminEmail string
}

func NewAuthService(r repo.UserRepository, jwt *helpers.JWTManager, pub *helpers.RabbitPublisher, logger *logrus.Logger, adminEmail string) *AuthService {
	return &AuthService{Repo: r, JWT: jwt, Pub: pub, Logger: logger, AdminEmail: adminEmail}
}

// roleFor assigns the role at signup. Only the reserved admin email gets
// admin; everybody else is a customer. Client input never participates.
func (s *AuthService) roleFor(email string) string {
	if s.AdminEmail != "" && strings.EqualFold(email, s.AdminEmail) {
		return entity.RoleAdmin
	}
	return entity.RoleCustomer
}

func (s *AuthService) Signup(ctx context.Context, name, email, password string) (entity.SafeProjection, string, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return entity.SafeProjection{}, "", err
	}
	u := &entity.User{
		Name:     strings.TrimSpace(name),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: hash,
		Role:     s.roleFor(email),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return entity.SafeProjection{}, "", ErrEmailTaken
		}
		return entity.SafeProjection{}, "", err
	}

	token, _, err := s.JWT.Generate(u.ID, u.Role)
	if err != nil {
		return entity.SafeProjection{}, "", err
	}

	if s.Pub != nil {
		job := mailer.EmailJob{To: u.Email, Template: "welcome", Data: map[string]any{"Name": u.Name}}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Warn("enqueue welcome email failed")
		}
	}

	return u.Safe(), token, nil
}

// Login deliberately collapses "unknown email" and "wrong password" into a
// single invalid-credentials error.
func (s *AuthService) Login(ctx context.Context, email, password string) (entity.SafeProjection, string, error) {
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil || u == nil {
		return entity.SafeProjection{}, "", ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return entity.SafeProjection{}, "", ErrInvalidCredentials
	}
	token, _, err := s.JWT.Generate(u.ID, u.Role)
	if err != nil {
		return entity.SafeProjection{}, "", err
	}
	return u.Safe(), token, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (entity.SafeProjection, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return entity.SafeProjection{}, ErrUserNotFound
	}
	return u.Safe(), nil
}
