package app

import (
	"log/slog"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/cache"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/config"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/eventbus"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/auth"
	balancesvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/balance"
	bankaccountsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/bankaccount"
	categorysvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/category"
	creditcardsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/creditcard"
	groupsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/group"
	paymentmethodsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/paymentmethod"
	reportsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/report"
	transactionsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/transaction"
	usersvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/user"
)

// Deps contains the infrastructure dependencies the services are built from.
type Deps struct {
	Uow      repository.UnitOfWork
	Cache    cache.Cache
	EventBus eventbus.Bus
	Logger   *slog.Logger
}

// App holds every wired service.
type App struct {
	Deps   *Deps
	Config *config.App

	AuthService          *auth.Service
	UserService          *usersvc.Service
	GroupService         *groupsvc.Service
	TransactionService   *transactionsvc.Service
	CategoryService      *categorysvc.Service
	BankAccountService   *bankaccountsvc.Service
	CreditCardService    *creditcardsvc.Service
	PaymentMethodService *paymentmethodsvc.Service
	BalanceService       *balancesvc.Service
	ReportService        *reportsvc.Service
}

// New wires all services from the given dependencies and registers the event
// handlers on the bus.
func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}

	authMap := map[string]func() *auth.Service{
		"jwt": func() *auth.Service {
			return auth.NewWithJWT(deps.Uow, cfg.Auth.Jwt, deps.Logger)
		},
	}
	if authFactory, ok := authMap[cfg.Auth.Strategy]; ok {
		app.AuthService = authFactory()
	} else {
		app.AuthService = auth.NewWithBasic(deps.Uow, deps.Logger)
	}
	app.UserService = usersvc.New(deps.Uow, deps.Logger)
	app.GroupService = groupsvc.New(deps.Uow, deps.EventBus, deps.Logger)
	app.TransactionService = transactionsvc.New(deps.Uow, deps.EventBus, deps.Logger)
	app.CategoryService = categorysvc.New(deps.Uow, deps.Logger)
	app.BankAccountService = bankaccountsvc.New(deps.Uow, deps.EventBus, deps.Logger)
	app.CreditCardService = creditcardsvc.New(deps.Uow, deps.EventBus, deps.Logger)
	app.PaymentMethodService = paymentmethodsvc.New(deps.Uow, deps.Logger)
	app.BalanceService = balancesvc.New(deps.Uow, deps.Cache, cfg.BalanceCache, deps.Logger)
	app.ReportService = reportsvc.New(deps.Uow, deps.Logger)

	app.setupEventBus()
	return app
}
