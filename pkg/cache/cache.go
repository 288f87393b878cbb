package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/amirasaad/networth/pkg/dto"
	"github.com/google/uuid"
)

// RateCache stores resolved rate quotes. Get returns (nil, nil) on a miss.
type RateCache interface {
	Get(ctx context.Context, key string) (*dto.RateQuote, error)
	Set(ctx context.Context, key string, quote *dto.RateQuote, ttl time.Duration) error
	// DeleteByPrefix drops every entry whose key starts with prefix.
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// UserPrefix is the key prefix shared by every quote cached for userID.
func UserPrefix(userID uuid.UUID) string {
	return userID.String() + ":"
}

// QuoteKey identifies the quote from -> to for userID.
func QuoteKey(userID, from, to uuid.UUID) string {
	return fmt.Sprintf("%s%s:%s", UserPrefix(userID), from, to)
}
