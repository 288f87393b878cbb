package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/networth/pkg/config"
	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/domain/user"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/repository"
	repouser "github.com/amirasaad/networth/pkg/repository/user"
	"github.com/amirasaad/networth/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// dummyHash is compared against when the identity is unknown so a failed
// login costs the same as a wrong password.
const dummyHash = "$2a$10$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

// ErrUnsupportedAlgorithm is returned for signing algorithms other than HMAC.
var ErrUnsupportedAlgorithm = errors.New("unsupported signing algorithm")

type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

func New(
	uow repository.UnitOfWork,
	cfg *config.Jwt,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger.With("service", "auth")}
}

// SigningMethod resolves the configured HMAC algorithm.
func (s *Service) SigningMethod() (jwt.SigningMethod, error) {
	switch s.cfg.Algorithm {
	case "", "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS384":
		return jwt.SigningMethodHS384, nil
	case "HS512":
		return jwt.SigningMethodHS512, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, s.cfg.Algorithm)
}

// Login verifies a username or email with its password.
func (s *Service) Login(
	ctx context.Context,
	identity, password string,
) (u *dto.UserRead, err error) {
	log := s.logger.With("identity", identity)
	log.Debug("Login called")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repouser.Repository](uow)
		if err != nil {
			return fmt.Errorf("failed to get user repository: %w", err)
		}
		if utils.IsEmail(identity) {
			u, err = repo.GetByEmail(ctx, identity)
		} else {
			u, err = repo.GetByUsername(ctx, identity)
		}
		if errors.Is(err, domain.ErrNotFound) {
			_ = utils.CheckPasswordHash(password, dummyHash)
			return domain.ErrUnauthorized
		}
		if err != nil {
			return err
		}
		if !utils.CheckPasswordHash(password, u.HashedPassword) {
			return domain.ErrUnauthorized
		}
		return nil
	})
	if err != nil {
		log.Warn("Login failed", "error", err)
		return nil, err
	}
	log.Info("Login successful", "user_id", u.ID)
	return u, nil
}

// GenerateToken issues a signed access token for u. The claims carry the
// username as sub, the user id, the role, and the expiry.
func (s *Service) GenerateToken(u *dto.UserRead) (string, error) {
	method, err := s.SigningMethod()
	if err != nil {
		return "", err
	}
	now := time.Now()
	token := jwt.NewWithClaims(method, jwt.MapClaims{
		"sub":     u.Username,
		"user_id": u.ID.String(),
		"role":    u.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(s.cfg.Expiry()).Unix(),
	})
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		s.logger.Error("GenerateToken failed", "user_id", u.ID, "error", err)
		return "", err
	}
	return signed, nil
}

// ParseToken verifies a signed token and its expiry.
func (s *Service) ParseToken(raw string) (*jwt.Token, error) {
	method, err := s.SigningMethod()
	if err != nil {
		return nil, err
	}
	token, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
		return []byte(s.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{method.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	return token, nil
}

// GetCurrentUserID reads the user id claim of a verified token.
func (s *Service) GetCurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	if token == nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return id, nil
}

// GetCurrentUser loads the user a verified token was issued to. Tokens of
// deleted users are rejected.
func (s *Service) GetCurrentUser(ctx context.Context, token *jwt.Token) (u *dto.UserRead, err error) {
	id, err := s.GetCurrentUserID(token)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repouser.Repository](uow)
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUnauthorized
		}
		return err
	})
	return
}

// RequireRole admits u when it holds required or is an admin.
func RequireRole(u *dto.UserRead, required user.Role) error {
	if u == nil {
		return domain.ErrUnauthorized
	}
	if !user.Role(u.Role).Admits(required) {
		return domain.ErrForbidden
	}
	return nil
}
