package repository

import (
	"context"
	"fmt"
)

// UnitOfWork defines the contract for transactional work and repository access.
//
// Do runs fn inside a transaction boundary: every repository obtained from the
// UnitOfWork passed to fn shares the same session, and returning an error
// rolls all of their writes back.
//
// GetRepository takes a nil pointer to the wanted repository interface:
//
//	repoAny, err := uow.GetRepository((*user.Repository)(nil))
//	repo := repoAny.(user.Repository)
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error
	GetRepository(repoType any) (any, error)
}

// Get resolves the repository interface R from uow.
func Get[R any](uow UnitOfWork) (R, error) {
	var zero R
	repoAny, err := uow.GetRepository((*R)(nil))
	if err != nil {
		return zero, err
	}
	repo, ok := repoAny.(R)
	if !ok {
		return zero, fmt.Errorf("unexpected repository type %T", repoAny)
	}
	return repo, nil
}
