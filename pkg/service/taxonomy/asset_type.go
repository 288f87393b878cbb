package taxonomy

import (
	"context"

	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/domain/taxonomy"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/repository"
	assetrepo "github.com/amirasaad/networth/pkg/repository/asset"
	assettyperepo "github.com/amirasaad/networth/pkg/repository/assettype"
	"github.com/google/uuid"
)

// CreateAssetType adds an asset type owned by userID.
func (s *Service) CreateAssetType(ctx context.Context, userID uuid.UUID, name string) (read *dto.AssetTypeRead, err error) {
	at, err := taxonomy.NewAssetType(domain.OwnedBy(userID), name)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[assettyperepo.Repository](uow)
		if err != nil {
			return err
		}
		exists, err := repo.ExistsByName(ctx, &userID, at.Name, uuid.Nil)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrAlreadyExists
		}
		if err := repo.Create(ctx, &dto.AssetTypeCreate{
			ID:     at.ID,
			UserID: &userID,
			Name:   at.Name,
		}); err != nil {
			return err
		}
		read, err = repo.Get(ctx, at.ID)
		return err
	})
	if err != nil {
		s.logger.Error("creating asset type failed", "user_id", userID, "error", err)
		return nil, err
	}
	return read, nil
}

func (s *Service) GetAssetType(ctx context.Context, userID, id uuid.UUID) (read *dto.AssetTypeRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[assettyperepo.Repository](uow)
		if err != nil {
			return err
		}
		read, err = repo.GetVisible(ctx, userID, id)
		return err
	})
	return
}

func (s *Service) ListAssetTypes(ctx context.Context, userID uuid.UUID) (rows []*dto.AssetTypeRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[assettyperepo.Repository](uow)
		if err != nil {
			return err
		}
		rows, err = repo.ListVisible(ctx, userID)
		return err
	})
	return
}

// UpdateAssetType renames one of userID's asset types.
func (s *Service) UpdateAssetType(
	ctx context.Context,
	userID, id uuid.UUID,
	update *dto.AssetTypeUpdate,
) (read *dto.AssetTypeRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[assettyperepo.Repository](uow)
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
			if err := repo.Update(ctx, id, &dto.AssetTypeUpdate{Name: &name}); err != nil {
				return err
			}
		}
		read, err = repo.Get(ctx, id)
		return err
	})
	return
}

// DeleteAssetType removes one of userID's asset types and detaches it from
// the assets using it.
func (s *Service) DeleteAssetType(ctx context.Context, userID, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[assettyperepo.Repository](uow)
		if err != nil {
			return err
		}
		assets, err := repository.Get[assetrepo.Repository](uow)
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
		if err := assets.ClearAssetType(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}
