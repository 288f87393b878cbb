package audit

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/amirasaad/networth/pkg/domain/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	h := HandleLogged(logger)
	userID := uuid.New()

	require.NoError(t, h(context.Background(), &events.UserRegistered{UserID: userID, Username: "alice"}))
	require.NoError(t, h(context.Background(), &events.BaseCurrencyChanged{UserID: userID}))

	out := buf.String()
	assert.Contains(t, out, "user registered")
	assert.Contains(t, out, "username=alice")
	assert.Contains(t, out, "event_type=BaseCurrency.Changed")
	assert.Contains(t, out, userID.String())
}
