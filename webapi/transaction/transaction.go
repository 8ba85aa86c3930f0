package transaction

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/config"
	txdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/transaction"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/middleware"
	authsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/auth"
	txsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/transaction"
	"github.com/TeamSorcerers/app-financeiro-sub000/webapi/common"
)

func Routes(app *fiber.App, txSvc *txsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	t := app.Group("/api/transactions", middleware.JwtProtected(cfg.Auth.Jwt))
	t.Post("/", CreateTransaction(txSvc, authSvc))
	t.Get("/", ListTransactions(txSvc, authSvc))
	t.Get("/:id", GetTransaction(txSvc, authSvc))
	t.Put("/:id", UpdateTransaction(txSvc, authSvc))
	t.Delete("/:id", DeleteTransaction(txSvc, authSvc))
	t.Post("/:id/pay", PayTransaction(txSvc, authSvc))
}

// CreateTransaction creates an income or expense entry in a group the caller
// belongs to.
// @Summary Create transaction
// @Description Create an income or expense entry; bank account and credit card links are mutually exclusive
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body NewTransaction true "Transaction data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /api/transactions [post]
// @Security Bearer
func CreateTransaction(txSvc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[NewTransaction](c)
		if input == nil {
			return err // error response already written
		}
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		create, err := toCreateDTO(input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid request body", nil, err.Error(), fiber.StatusBadRequest)
		}
		created, err := txSvc.CreateTransaction(c.Context(), userID, *create)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created transaction", created)
	}
}

// ListTransactions lists transactions across the caller's accessible groups,
// narrowed by query filters.
// @Summary List transactions
// @Description List transactions with optional groupId, month, year, categoryId, accountId, cardId, status, type, and isPaid filters
// @Tags transactions
// @Produce json
// @Param groupId query string false "Group ID"
// @Param month query int false "Month (1-12, requires year)"
// @Param year query int false "Year"
// @Param categoryId query string false "Category ID"
// @Param accountId query string false "Bank account ID"
// @Param cardId query string false "Credit card ID"
// @Param status query string false "Payment status"
// @Param type query string false "INCOME or EXPENSE"
// @Param isPaid query bool false "Paid flag"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /api/transactions [get]
// @Security Bearer
func ListTransactions(txSvc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		filter, err := filterFromQuery(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query parameters", nil, err.Error(), fiber.StatusBadRequest)
		}
		list, err := txSvc.ListTransactions(c.Context(), userID, *filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions found", list)
	}
}

// GetTransaction retrieves a transaction in a group the caller belongs to.
// @Summary Get transaction by ID
// @Description Retrieve a transaction; the caller must be a member of its group
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/transactions/{id} [get]
// @Security Bearer
func GetTransaction(txSvc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, id, ok := callerAndTxID(c, authSvc)
		if !ok {
			return nil // error response already written
		}
		t, err := txSvc.GetTransaction(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't get transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction found", t)
	}
}

// UpdateTransaction updates a transaction's mutable fields.
// @Summary Update transaction
// @Description Update transaction fields; the account/card exclusivity rule is re-checked on the resulting state
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body UpdateTransactionInput true "Transaction update data"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /api/transactions/{id} [put]
// @Security Bearer
func UpdateTransaction(txSvc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateTransactionInput](c)
		if input == nil {
			return err // error response already written
		}
		userID, id, ok := callerAndTxID(c, authSvc)
		if !ok {
			return nil
		}
		update, err := toUpdateDTO(input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid request body", nil, err.Error(), fiber.StatusBadRequest)
		}
		if err := txSvc.UpdateTransaction(c.Context(), userID, id, *update); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update transaction", err)
		}
		t, err := txSvc.GetTransaction(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction updated", t)
	}
}

// DeleteTransaction deletes a transaction.
// @Summary Delete transaction
// @Description Delete a transaction in a group the caller belongs to
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 204 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/transactions/{id} [delete]
// @Security Bearer
func DeleteTransaction(txSvc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, id, ok := callerAndTxID(c, authSvc)
		if !ok {
			return nil
		}
		if err := txSvc.DeleteTransaction(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusNoContent, "Transaction deleted", nil)
	}
}

// PayTransaction marks a transaction paid and applies the amount to its
// linked bank account in the same database transaction.
// @Summary Pay transaction
// @Description Mark a transaction paid; a linked bank account balance is adjusted atomically
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /api/transactions/{id}/pay [post]
// @Security Bearer
func PayTransaction(txSvc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, id, ok := callerAndTxID(c, authSvc)
		if !ok {
			return nil
		}
		paid, err := txSvc.PayTransaction(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't pay transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction paid", paid)
	}
}

func toCreateDTO(input *NewTransaction) (*dto.TransactionCreate, error) {
	groupID, err := uuid.Parse(input.GroupID)
	if err != nil {
		return nil, err
	}
	create := &dto.TransactionCreate{
		GroupID:     groupID,
		Description: input.Description,
		Amount:      input.Amount,
		Type:        txdomain.Type(input.Type),
		Status:      txdomain.Status(input.Status),
		IsPaid:      input.IsPaid,
		DueDate:     input.DueDate,
	}
	if input.TransactionDate != nil {
		create.TransactionDate = *input.TransactionDate
	}
	if create.CategoryID, err = parseOptionalUUID(input.CategoryID); err != nil {
		return nil, err
	}
	if create.BankAccountID, err = parseOptionalUUID(input.BankAccountID); err != nil {
		return nil, err
	}
	if create.CreditCardID, err = parseOptionalUUID(input.CreditCardID); err != nil {
		return nil, err
	}
	if create.PaymentMethodID, err = parseOptionalUUID(input.PaymentMethodID); err != nil {
		return nil, err
	}
	return create, nil
}

func toUpdateDTO(input *UpdateTransactionInput) (*dto.TransactionUpdate, error) {
	update := &dto.TransactionUpdate{
		Description:     input.Description,
		Amount:          input.Amount,
		TransactionDate: input.TransactionDate,
		DueDate:         input.DueDate,
	}
	if input.Status != nil {
		status := txdomain.Status(*input.Status)
		update.Status = &status
	}
	var err error
	if update.CategoryID, err = parseOptionalUUID(input.CategoryID); err != nil {
		return nil, err
	}
	if update.BankAccountID, err = parseOptionalUUID(input.BankAccountID); err != nil {
		return nil, err
	}
	if update.CreditCardID, err = parseOptionalUUID(input.CreditCardID); err != nil {
		return nil, err
	}
	if update.PaymentMethodID, err = parseOptionalUUID(input.PaymentMethodID); err != nil {
		return nil, err
	}
	return update, nil
}

// filterFromQuery builds a listing filter from query parameters. A month
// without a year is interpreted against the current year.
func filterFromQuery(c *fiber.Ctx) (*dto.TransactionFilter, error) {
	filter := &dto.TransactionFilter{}
	if raw := c.Query("groupId"); raw != "" {
		groupID, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		filter.GroupIDs = []uuid.UUID{groupID}
	}
	month := c.QueryInt("month")
	year := c.QueryInt("year")
	if month >= 1 && month <= 12 {
		if year == 0 {
			year = time.Now().UTC().Year()
		}
		from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
		filter.DateFrom = &from
		filter.DateTo = &to
	} else if year != 0 {
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
		filter.DateFrom = &from
		filter.DateTo = &to
	}
	var err error
	if filter.CategoryID, err = parseQueryUUID(c, "categoryId"); err != nil {
		return nil, err
	}
	if filter.BankAccountID, err = parseQueryUUID(c, "accountId"); err != nil {
		return nil, err
	}
	if filter.CreditCardID, err = parseQueryUUID(c, "cardId"); err != nil {
		return nil, err
	}
	if raw := c.Query("status"); raw != "" {
		filter.Statuses = []txdomain.Status{txdomain.Status(raw)}
	}
	if raw := c.Query("type"); raw != "" {
		t := txdomain.Type(raw)
		filter.Type = &t
	}
	if raw := c.Query("isPaid"); raw != "" {
		isPaid := raw == "true" || raw == "1"
		filter.IsPaid = &isPaid
	}
	return filter, nil
}

func parseOptionalUUID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseQueryUUID(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func currentUserID(c *fiber.Ctx, authSvc *authsvc.Service) (uuid.UUID, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, false
	}
	id, err := authSvc.GetCurrentUserId(token)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func callerAndTxID(c *fiber.Ctx, authSvc *authsvc.Service) (userID, id uuid.UUID, ok bool) {
	userID, ok = currentUserID(c, authSvc)
	if !ok {
		_ = common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = common.ProblemDetailsJSON(c, "Invalid transaction ID", nil, "Transaction ID must be a valid UUID", fiber.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}
