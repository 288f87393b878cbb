// Package taxonomy manages categories and asset types. Both come in a
// predefined flavor visible to every user and a user-owned one.
package taxonomy

import (
	"log/slog"
	"strings"

	"github.com/amirasaad/networth/pkg/domain/taxonomy"
	"github.com/amirasaad/networth/pkg/repository"
)

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger.With("service", "taxonomy")}
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	return name, taxonomy.ValidateName(name)
}
