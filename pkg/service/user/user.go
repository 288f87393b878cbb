// Package user provides registration, profile updates and account removal.
// A user always owns exactly one summary; registration removes the user
// again when its summary cannot be created.
package user

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/domain/events"
	"github.com/amirasaad/networth/pkg/domain/user"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/eventbus"
	"github.com/amirasaad/networth/pkg/repository"
	assetrepo "github.com/amirasaad/networth/pkg/repository/asset"
	assettyperepo "github.com/amirasaad/networth/pkg/repository/assettype"
	categoryrepo "github.com/amirasaad/networth/pkg/repository/category"
	currencyrepo "github.com/amirasaad/networth/pkg/repository/currency"
	exchangerepo "github.com/amirasaad/networth/pkg/repository/exchange"
	summaryrepo "github.com/amirasaad/networth/pkg/repository/summary"
	transactionrepo "github.com/amirasaad/networth/pkg/repository/transaction"
	userrepo "github.com/amirasaad/networth/pkg/repository/user"
	walletrepo "github.com/amirasaad/networth/pkg/repository/wallet"
	"github.com/amirasaad/networth/pkg/utils"
	"github.com/google/uuid"
)

// DefaultBaseCurrency is used when registration names no base currency.
const DefaultBaseCurrency = "USD"

// Service provides business logic for user operations.
type Service struct {
	uow                 repository.UnitOfWork
	bus                 eventbus.Bus
	minPasswordStrength int
	logger              *slog.Logger
}

// New creates a user service. minPasswordStrength is the lowest accepted
// zxcvbn score; zero disables the check. bus may be nil.
func New(
	uow repository.UnitOfWork,
	bus eventbus.Bus,
	minPasswordStrength int,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:                 uow,
		bus:                 bus,
		minPasswordStrength: minPasswordStrength,
		logger:              logger.With("service", "user"),
	}
}

// Register creates a user with role USER and its summary in the predefined
// currency baseCode. When the summary cannot be created the user row is
// deleted and a *domain.RegistrationRollbackError wraps the cause.
func (s *Service) Register(
	ctx context.Context,
	username, email, password, baseCode string,
) (*dto.UserRead, error) {
	return s.register(ctx, username, email, password, baseCode, user.RoleUser)
}

// CreateAdmin registers a user with role ADMIN.
func (s *Service) CreateAdmin(
	ctx context.Context,
	username, email, password, baseCode string,
) (*dto.UserRead, error) {
	return s.register(ctx, username, email, password, baseCode, user.RoleAdmin)
}

func (s *Service) register(
	ctx context.Context,
	username, email, password, baseCode string,
	role user.Role,
) (read *dto.UserRead, err error) {
	log := s.logger.With("username", username)
	u, err := user.New(username, email, password)
	if err != nil {
		return nil, err
	}
	u.Role = role
	if err := user.CheckStrength(password, s.minPasswordStrength, u.Username, u.Email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(baseCode) == "" {
		baseCode = DefaultBaseCurrency
	}

	var baseID uuid.UUID
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := repository.Get[userrepo.Repository](uow)
		if err != nil {
			return err
		}
		currencies, err := repository.Get[currencyrepo.Repository](uow)
		if err != nil {
			return err
		}
		base, err := currencies.GetPredefinedByCode(ctx, strings.ToUpper(strings.TrimSpace(baseCode)))
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidationError("base_currency", "must be a predefined currency code")
		}
		if err != nil {
			return err
		}
		baseID = base.ID
		if err := checkUnique(ctx, users, u.Username, u.Email, uuid.Nil); err != nil {
			return err
		}
		return users.Create(ctx, &dto.UserCreate{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
			Password: u.Password,
			Role:     string(u.Role),
		})
	})
	if err != nil {
		log.Error("creating user failed", "error", err)
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		summaries, err := repository.Get[summaryrepo.Repository](uow)
		if err != nil {
			return err
		}
		return summaries.Create(ctx, &dto.SummaryCreate{
			ID:             uuid.New(),
			UserID:         u.ID,
			BaseCurrencyID: baseID,
		})
	})
	if err != nil {
		log.Error("creating user summary failed, removing user", "user_id", u.ID, "error", err)
		if rbErr := s.removeUser(context.WithoutCancel(ctx), u.ID); rbErr != nil {
			log.Error("removing user after failed registration failed", "user_id", u.ID, "error", rbErr)
		}
		return nil, &domain.RegistrationRollbackError{Cause: err}
	}

	read, err = s.Get(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	log.Info("user registered", "user_id", read.ID, "role", read.Role)
	if s.bus != nil {
		if err := s.bus.Emit(ctx, &events.UserRegistered{
			UserID:     read.ID,
			Username:   read.Username,
			OccurredAt: time.Now().UTC(),
		}); err != nil {
			log.Error("emitting user registered event failed", "error", err)
		}
	}
	return read, nil
}

func (s *Service) removeUser(ctx context.Context, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := repository.Get[userrepo.Repository](uow)
		if err != nil {
			return err
		}
		return users.Delete(ctx, id)
	})
}

// Get retrieves a user by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (read *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[userrepo.Repository](uow)
		if err != nil {
			return err
		}
		read, err = repo.Get(ctx, id)
		return err
	})
	return
}

// GetByUsername retrieves a user by username.
func (s *Service) GetByUsername(ctx context.Context, username string) (read *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[userrepo.Repository](uow)
		if err != nil {
			return err
		}
		read, err = repo.GetByUsername(ctx, username)
		return err
	})
	return
}

// Update applies the supplied fields. A new password is validated and
// hashed before it is stored; a role change must name a known role.
func (s *Service) Update(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) (read *dto.UserRead, err error) {
	changes := &dto.UserUpdate{}
	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		if err := user.ValidateUsername(username); err != nil {
			return nil, err
		}
		changes.Username = &username
	}
	if update.Email != nil {
		email := strings.TrimSpace(*update.Email)
		if err := user.ValidateEmail(email); err != nil {
			return nil, err
		}
		changes.Email = &email
	}
	if update.Password != nil {
		if err := user.ValidatePassword(*update.Password); err != nil {
			return nil, err
		}
		if err := user.CheckStrength(*update.Password, s.minPasswordStrength); err != nil {
			return nil, err
		}
		hash, err := utils.HashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		changes.Password = &hash
	}
	if update.Role != nil {
		role, err := user.ParseRole(*update.Role)
		if err != nil {
			return nil, err
		}
		r := string(role)
		changes.Role = &r
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[userrepo.Repository](uow)
		if err != nil {
			return err
		}
		if _, err := repo.Get(ctx, id); err != nil {
			return err
		}
		username, email := "", ""
		if changes.Username != nil {
			username = *changes.Username
		}
		if changes.Email != nil {
			email = *changes.Email
		}
		if err := checkUnique(ctx, repo, username, email, id); err != nil {
			return err
		}
		if err := repo.Update(ctx, id, changes); err != nil {
			return err
		}
		read, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		s.logger.Error("updating user failed", "user_id", id, "error", err)
		return nil, err
	}
	return read, nil
}

// Delete removes a user with everything the user owns. Rows that reference
// currencies, categories or asset types are removed before those.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := repository.Get[userrepo.Repository](uow)
		if err != nil {
			return err
		}
		if _, err := users.Get(ctx, id); err != nil {
			return err
		}
		steps := []func() error{
			func() error { return deleteByUser[transactionrepo.Repository](ctx, uow, id) },
			func() error { return deleteByUser[walletrepo.Repository](ctx, uow, id) },
			func() error { return deleteByUser[assetrepo.Repository](ctx, uow, id) },
			func() error { return deleteByUser[exchangerepo.Repository](ctx, uow, id) },
			func() error {
				summaries, err := repository.Get[summaryrepo.Repository](uow)
				if err != nil {
					return err
				}
				return summaries.Delete(ctx, id)
			},
			func() error { return deleteByUser[categoryrepo.Repository](ctx, uow, id) },
			func() error { return deleteByUser[assettyperepo.Repository](ctx, uow, id) },
			func() error { return deleteByUser[currencyrepo.Repository](ctx, uow, id) },
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}
		return users.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Error("deleting user failed", "user_id", id, "error", err)
		return err
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}

type userScoped interface {
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

func deleteByUser[R userScoped](ctx context.Context, uow repository.UnitOfWork, userID uuid.UUID) error {
	repo, err := repository.Get[R](uow)
	if err != nil {
		return err
	}
	return repo.DeleteByUser(ctx, userID)
}

// List returns a page of users and the total number of users.
func (s *Service) List(ctx context.Context, page, pageSize int) (rows []*dto.UserRead, total int64, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[userrepo.Repository](uow)
		if err != nil {
			return err
		}
		if total, err = repo.Count(ctx); err != nil {
			return err
		}
		rows, err = repo.List(ctx, page, pageSize)
		return err
	})
	return
}

func checkUnique(ctx context.Context, repo userrepo.Repository, username, email string, excludeID uuid.UUID) error {
	if username != "" {
		exists, err := repo.ExistsByUsername(ctx, username, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrAlreadyExists
		}
	}
	if email != "" {
		exists, err := repo.ExistsByEmail(ctx, email, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrAlreadyExists
		}
	}
	return nil
}
