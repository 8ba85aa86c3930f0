// Package eventbus defines the contract for the in-process notification
// channel. Implementations live under infra/eventbus.
package eventbus

import (
	"context"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/common"
)

// HandlerFunc processes a single published event.
type HandlerFunc func(ctx context.Context, event common.Event) error

// Bus defines the contract for publishing and subscribing to domain events.
type Bus interface {
	Emit(ctx context.Context, event common.Event) error
	Register(eventType string, handler HandlerFunc)
}
