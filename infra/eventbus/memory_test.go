package eventbus_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraeventbus "github.com/TeamSorcerers/app-financeiro-sub000/infra/eventbus"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/common"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/events"
	"github.com/google/uuid"
)

func newBus() *infraeventbus.MemoryEventBus {
	return infraeventbus.NewWithMemory(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEmit_DispatchesToAllHandlers(t *testing.T) {
	bus := newBus()
	var first, second int

	bus.Register(events.TransactionCreated{}.Type(), func(ctx context.Context, e common.Event) error {
		first++
		return nil
	})
	bus.Register(events.TransactionCreated{}.Type(), func(ctx context.Context, e common.Event) error {
		second++
		return nil
	})

	err := bus.Emit(context.Background(), events.TransactionCreated{TransactionID: uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestEmit_HandlerErrorDoesNotFailEmit(t *testing.T) {
	bus := newBus()
	var reached bool

	bus.Register(events.TransactionPaid{}.Type(), func(ctx context.Context, e common.Event) error {
		return errors.New("boom")
	})
	bus.Register(events.TransactionPaid{}.Type(), func(ctx context.Context, e common.Event) error {
		reached = true
		return nil
	})

	err := bus.Emit(context.Background(), events.TransactionPaid{TransactionID: uuid.New()})
	require.NoError(t, err)
	assert.True(t, reached)
}

func TestEmit_IgnoresUnregisteredTypes(t *testing.T) {
	bus := newBus()

	err := bus.Emit(context.Background(), events.GroupMemberAdded{GroupID: uuid.New()})
	require.NoError(t, err)
	assert.Len(t, bus.Published(), 1)

	bus.ClearPublished()
	assert.Empty(t, bus.Published())
}
