// Package notification turns domain events into user-facing notifications.
// The current sink is the structured log; a push channel can subscribe to the
// same events later without touching the write paths.
package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/common"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/events"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/eventbus"
)

// HandleTransactionCreated announces a new transaction to the group.
func HandleTransactionCreated(logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, event common.Event) error {
		e, ok := event.(events.TransactionCreated)
		if !ok {
			return fmt.Errorf("unexpected event payload for %s", event.Type())
		}
		logger.Info("transaction created",
			"transaction_id", e.TransactionID,
			"group_id", e.GroupID,
			"created_by", e.CreatedByID,
			"amount", e.Amount,
		)
		return nil
	}
}

// HandleTransactionPaid announces a completed payment.
func HandleTransactionPaid(logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, event common.Event) error {
		e, ok := event.(events.TransactionPaid)
		if !ok {
			return fmt.Errorf("unexpected event payload for %s", event.Type())
		}
		logger.Info("transaction paid",
			"transaction_id", e.TransactionID,
			"group_id", e.GroupID,
			"amount", e.Amount,
			"paid_at", e.PaidAt,
		)
		return nil
	}
}

// HandleGroupMemberAdded announces a new group member.
func HandleGroupMemberAdded(logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, event common.Event) error {
		e, ok := event.(events.GroupMemberAdded)
		if !ok {
			return fmt.Errorf("unexpected event payload for %s", event.Type())
		}
		logger.Info("group member added",
			"group_id", e.GroupID,
			"user_id", e.UserID,
			"added_by", e.AddedByID,
		)
		return nil
	}
}
