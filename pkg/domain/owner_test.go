package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/amirasaad/networth/pkg/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOwner(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()

	predefined := domain.OwnerFrom(nil)
	assert.True(t, predefined.IsPredefined())
	assert.True(t, predefined.VisibleTo(alice))
	assert.ErrorIs(t, predefined.CheckWritable(alice), domain.ErrImmutable)

	owned := domain.OwnedBy(alice)
	assert.False(t, owned.IsPredefined())
	assert.True(t, owned.VisibleTo(alice))
	assert.False(t, owned.VisibleTo(bob))
	assert.NoError(t, owned.CheckWritable(alice))
	assert.ErrorIs(t, owned.CheckWritable(bob), domain.ErrNotFound)
}

func TestErrors(t *testing.T) {
	assert.ErrorIs(t, domain.ErrInUse, domain.ErrValidation)
	assert.False(t, errors.Is(domain.ErrImmutable, domain.ErrValidation))

	err := fmt.Errorf("creating wallet: %w", domain.NewValidationError("name", "is required"))
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)
	assert.Equal(t, "validation error: name: is required", ve.Error())

	missing := &domain.ExchangeRateMissingError{From: "EUR", To: "USD"}
	assert.ErrorIs(t, missing, domain.ErrExchangeRateMissing)
	assert.Contains(t, missing.Error(), "EUR -> USD")

	cause := errors.New("boom")
	rollback := &domain.RegistrationRollbackError{Cause: cause}
	assert.ErrorIs(t, rollback, cause)
}
