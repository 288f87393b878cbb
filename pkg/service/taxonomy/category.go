package taxonomy

import (
	"context"

	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/domain/taxonomy"
	"github.com/amirasaad/networth/pkg/domain/transaction"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/repository"
	categoryrepo "github.com/amirasaad/networth/pkg/repository/category"
	transactionrepo "github.com/amirasaad/networth/pkg/repository/transaction"
	"github.com/google/uuid"
)

// CreateCategory adds a category owned by userID.
func (s *Service) CreateCategory(
	ctx context.Context,
	userID uuid.UUID,
	name, categoryType string,
) (read *dto.CategoryRead, err error) {
	t, err := transaction.ParseType("type", categoryType)
	if err != nil {
		return nil, err
	}
	c, err := taxonomy.NewCategory(domain.OwnedBy(userID), name, t)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[categoryrepo.Repository](uow)
		if err != nil {
			return err
		}
		exists, err := repo.ExistsByName(ctx, &userID, c.Name, uuid.Nil)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrAlreadyExists
		}
		if err := repo.Create(ctx, &dto.CategoryCreate{
			ID:     c.ID,
			UserID: &userID,
			Name:   c.Name,
			Type:   string(c.Type),
		}); err != nil {
			return err
		}
		read, err = repo.Get(ctx, c.ID)
		return err
	})
	if err != nil {
		s.logger.Error("creating category failed", "user_id", userID, "error", err)
		return nil, err
	}
	return read, nil
}

// GetCategory returns a category visible to userID.
func (s *Service) GetCategory(ctx context.Context, userID, id uuid.UUID) (read *dto.CategoryRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[categoryrepo.Repository](uow)
		if err != nil {
			return err
		}
		read, err = repo.GetVisible(ctx, userID, id)
		return err
	})
	return
}

func (s *Service) ListCategories(ctx context.Context, userID uuid.UUID) (rows []*dto.CategoryRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[categoryrepo.Repository](uow)
		if err != nil {
			return err
		}
		rows, err = repo.ListVisible(ctx, userID)
		return err
	})
	return
}

// UpdateCategory renames or retypes one of userID's categories.
func (s *Service) UpdateCategory(
	ctx context.Context,
	userID, id uuid.UUID,
	update *dto.CategoryUpdate,
) (read *dto.CategoryRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[categoryrepo.Repository](uow)
		if err != nil {
			return err
		}
		current, err := repo.GetVisible(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := domain.OwnerFrom(current.UserID).CheckWritable(userID); err != nil {
			return err
		}
		changes := &dto.CategoryUpdate{}
		if update.Name != nil {
			name, err := cleanName(*update.Name)
			if err != nil {
				return err
			}
			exists, err := repo.ExistsByName(ctx, &userID, name, id)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrAlreadyExists
			}
			changes.Name = &name
		}
		if update.Type != nil {
			t, err := transaction.ParseType("type", *update.Type)
			if err != nil {
				return err
			}
			typ := string(t)
			changes.Type = &typ
		}
		if err := repo.Update(ctx, id, changes); err != nil {
			return err
		}
		read, err = repo.Get(ctx, id)
		return err
	})
	return
}

// DeleteCategory removes one of userID's categories. Transactions keep
// existing without a category.
func (s *Service) DeleteCategory(ctx context.Context, userID, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[categoryrepo.Repository](uow)
		if err != nil {
			return err
		}
		transactions, err := repository.Get[transactionrepo.Repository](uow)
		if err != nil {
			return err
		}
		current, err := repo.GetVisible(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := domain.OwnerFrom(current.UserID).CheckWritable(userID); err != nil {
			return err
		}
		if err := transactions.ClearCategory(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}
