// Package app wires the services together and registers the event handlers
// that react to the write paths.
package app

import (
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/events"
	balancehandler "github.com/TeamSorcerers/app-financeiro-sub000/pkg/handler/balance"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/handler/notification"
)

// setupEventBus registers all event handlers with the provided event bus.
func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	uow := a.Deps.Uow
	logger := a.Deps.Logger

	bus.Register(
		events.TransactionCreated{}.Type(),
		balancehandler.HandleTransactionCreated(a.BalanceService, uow, logger),
	)
	bus.Register(
		events.TransactionPaid{}.Type(),
		balancehandler.HandleTransactionPaid(a.BalanceService, uow, logger),
	)
	bus.Register(
		events.GroupMemberAdded{}.Type(),
		balancehandler.HandleGroupMemberAdded(a.BalanceService, logger),
	)
	bus.Register(
		events.BankAccountChanged{}.Type(),
		balancehandler.HandleBankAccountChanged(a.BalanceService, logger),
	)
	bus.Register(
		events.CreditCardChanged{}.Type(),
		balancehandler.HandleCreditCardChanged(a.BalanceService, logger),
	)

	bus.Register(events.TransactionCreated{}.Type(), notification.HandleTransactionCreated(logger))
	bus.Register(events.TransactionPaid{}.Type(), notification.HandleTransactionPaid(logger))
	bus.Register(events.GroupMemberAdded{}.Type(), notification.HandleGroupMemberAdded(logger))
}
