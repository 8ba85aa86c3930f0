// Package webapi provides the HTTP layer. It is organized into sub-packages
// per feature:
// - auth: login
// - user: registration and account management
// - group: financial groups and membership
// - transaction: income/expense entries and the pay operation
// - category, bankaccount, creditcard, paymentmethod: entity CRUD
// - balance: the consolidated balance snapshot
// - report: monthly and yearly reports
package webapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/app"
	authweb "github.com/TeamSorcerers/app-financeiro-sub000/webapi/auth"
	balanceweb "github.com/TeamSorcerers/app-financeiro-sub000/webapi/balance"
	bankaccountweb "github.com/TeamSorcerers/app-financeiro-sub000/webapi/bankaccount"
	categoryweb "github.com/TeamSorcerers/app-financeiro-sub000/webapi/category"
	"github.com/TeamSorcerers/app-financeiro-sub000/webapi/common"
	creditcardweb "github.com/TeamSorcerers/app-financeiro-sub000/webapi/creditcard"
	groupweb "github.com/TeamSorcerers/app-financeiro-sub000/webapi/group"
	paymentmethodweb "github.com/TeamSorcerers/app-financeiro-sub000/webapi/paymentmethod"
	reportweb "github.com/TeamSorcerers/app-financeiro-sub000/webapi/report"
	transactionweb "github.com/TeamSorcerers/app-financeiro-sub000/webapi/transaction"
	userweb "github.com/TeamSorcerers/app-financeiro-sub000/webapi/user"
)

// SetupApp initializes Fiber with middleware and every feature route.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, fiber.StatusInternalServerError)
		},
	})

	// Rate limiting keyed by client IP. Uses X-Forwarded-For behind a proxy,
	// falling back to X-Real-IP and then the direct IP.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	// Health check endpoint
	fiberApp.Get(
		"/",
		func(c *fiber.Ctx) error {
			return c.SendString("Financeiro API is running! 🚀")
		},
	)

	authweb.Routes(fiberApp, a.AuthService)
	userweb.Routes(fiberApp, a.UserService, a.AuthService, a.Config)
	groupweb.Routes(fiberApp, a.GroupService, a.AuthService, a.Config)
	categoryweb.Routes(fiberApp, a.CategoryService, a.AuthService, a.Config)
	transactionweb.Routes(fiberApp, a.TransactionService, a.AuthService, a.Config)
	bankaccountweb.Routes(fiberApp, a.BankAccountService, a.AuthService, a.Config)
	creditcardweb.Routes(fiberApp, a.CreditCardService, a.AuthService, a.Config)
	paymentmethodweb.Routes(fiberApp, a.PaymentMethodService, a.AuthService, a.Config)
	balanceweb.Routes(fiberApp, a.BalanceService, a.AuthService, a.Config)
	reportweb.Routes(fiberApp, a.ReportService, a.AuthService, a.Config)
	return fiberApp
}
