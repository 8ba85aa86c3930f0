package report_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeamSorcerers/app-financeiro-sub000/internal/fixtures/memuow"
	groupdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/group"
	txdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/transaction"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	categoryrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/category"
	creditcardrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/creditcard"
	grouprepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/group"
	txrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/transaction"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/report"
	"github.com/google/uuid"
)

type env struct {
	svc    *report.Service
	uow    *memuow.MemUoW
	userID uuid.UUID
	group  uuid.UUID
}

func newEnv(t *testing.T) *env {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uow := memuow.New()

	userID := uuid.New()
	ctx := context.Background()
	repoAny, err := uow.GetRepository((*grouprepo.Repository)(nil))
	require.NoError(t, err)
	repo := repoAny.(grouprepo.Repository)
	groupID := uuid.New()
	require.NoError(t, repo.Create(ctx, dto.GroupCreate{
		ID:          groupID,
		Name:        "Pessoal",
		Type:        groupdomain.TypePersonal,
		CreatedByID: userID,
	}))
	require.NoError(t, repo.AddMember(ctx, groupID, userID, true))

	return &env{
		svc:    report.New(uow, logger),
		uow:    uow,
		userID: userID,
		group:  groupID,
	}
}

func (e *env) seedTransaction(t *testing.T, create dto.TransactionCreate) uuid.UUID {
	t.Helper()
	repoAny, err := e.uow.GetRepository((*txrepo.Repository)(nil))
	require.NoError(t, err)
	repo := repoAny.(txrepo.Repository)
	if create.ID == uuid.Nil {
		create.ID = uuid.New()
	}
	create.GroupID = e.group
	create.CreatedByID = e.userID
	if create.Status == "" {
		create.Status = txdomain.StatusPending
	}
	if create.IsPaid {
		create.Status = txdomain.StatusPaid
		paidAt := create.TransactionDate
		create.PaidAt = &paidAt
	}
	require.NoError(t, repo.Create(context.Background(), create))
	return create.ID
}

func (e *env) seedCategory(t *testing.T, name string) uuid.UUID {
	t.Helper()
	repoAny, err := e.uow.GetRepository((*categoryrepo.Repository)(nil))
	require.NoError(t, err)
	repo := repoAny.(categoryrepo.Repository)
	id := uuid.New()
	require.NoError(t, repo.Create(context.Background(), dto.CategoryCreate{
		ID:      id,
		GroupID: e.group,
		Name:    name,
	}))
	return id
}

func (e *env) seedCard(t *testing.T) uuid.UUID {
	t.Helper()
	repoAny, err := e.uow.GetRepository((*creditcardrepo.Repository)(nil))
	require.NoError(t, err)
	repo := repoAny.(creditcardrepo.Repository)
	id := uuid.New()
	limit := 1000.0
	require.NoError(t, repo.Create(context.Background(), dto.CreditCardCreate{
		ID:          id,
		UserID:      e.userID,
		Name:        "Platinum",
		Last4Digits: "4242",
		Brand:       "Visa",
		Type:        dto.CardTypeCredit,
		CreditLimit: &limit,
	}))
	return id
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func TestMonthlyReport(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	foodID := e.seedCategory(t, "Food")

	e.seedTransaction(t, dto.TransactionCreate{
		Amount: 3000, Type: txdomain.TypeIncome, IsPaid: true,
		TransactionDate: date(2025, time.March, 5),
	})
	e.seedTransaction(t, dto.TransactionCreate{
		Amount: 800, Type: txdomain.TypeExpense, IsPaid: true,
		CategoryID:      &foodID,
		TransactionDate: date(2025, time.March, 10),
	})
	e.seedTransaction(t, dto.TransactionCreate{
		Amount: 200, Type: txdomain.TypeExpense,
		TransactionDate: date(2025, time.March, 20),
	})
	// Outside the window.
	e.seedTransaction(t, dto.TransactionCreate{
		Amount: 9999, Type: txdomain.TypeExpense, IsPaid: true,
		TransactionDate: date(2025, time.April, 1),
	})

	r, err := e.svc.MonthlyReport(ctx, e.userID, 3, 2025, dto.ReportFilter{})
	require.NoError(t, err)

	assert.Equal(t, 3, r.Period.Month)
	assert.Equal(t, 2025, r.Period.Year)
	assert.Equal(t, 3000.0, r.Summary.TotalIncome)
	assert.Equal(t, 1000.0, r.Summary.TotalExpenses)
	assert.Equal(t, 2000.0, r.Summary.Balance)
	assert.Equal(t, 3, r.Summary.TransactionCount)

	assert.Equal(t, 3800.0, r.PaymentStatus.PaidAmount)
	assert.Equal(t, 2, r.PaymentStatus.PaidCount)
	assert.Equal(t, 200.0, r.PaymentStatus.PendingAmount)
	assert.Equal(t, 1, r.PaymentStatus.PendingCount)

	// The category breakdown re-adds to the summary totals.
	var income, expenses float64
	for _, cb := range r.Breakdown.ByCategory {
		income += cb.Income
		expenses += cb.Expenses
	}
	assert.Equal(t, r.Summary.TotalIncome, income)
	assert.Equal(t, r.Summary.TotalExpenses, expenses)

	food, ok := r.Breakdown.ByCategory[foodID.String()]
	require.True(t, ok)
	assert.Equal(t, "Food", food.Name)
	assert.Equal(t, 800.0, food.Expenses)

	uncategorized, ok := r.Breakdown.ByCategory[uuid.Nil.String()]
	require.True(t, ok)
	assert.Equal(t, 2, uncategorized.Count)
}

func TestMonthlyReport_ClampsInvalidPeriod(t *testing.T) {
	e := newEnv(t)
	now := time.Now().UTC()

	r, err := e.svc.MonthlyReport(context.Background(), e.userID, 0, 0, dto.ReportFilter{})
	require.NoError(t, err)
	assert.Equal(t, int(now.Month()), r.Period.Month)
	assert.Equal(t, now.Year(), r.Period.Year)

	r, err = e.svc.MonthlyReport(context.Background(), e.userID, 13, 99999, dto.ReportFilter{})
	require.NoError(t, err)
	assert.Equal(t, int(now.Month()), r.Period.Month)
	assert.Equal(t, now.Year(), r.Period.Year)
}

func TestMonthlyReport_OverdueDetection(t *testing.T) {
	e := newEnv(t)
	past := time.Now().UTC().AddDate(0, 0, -10)
	future := time.Now().UTC().AddDate(0, 0, 10)

	e.seedTransaction(t, dto.TransactionCreate{
		Amount: 100, Type: txdomain.TypeExpense,
		TransactionDate: time.Now().UTC(),
		DueDate:         &past,
	})
	e.seedTransaction(t, dto.TransactionCreate{
		Amount: 40, Type: txdomain.TypeExpense,
		TransactionDate: time.Now().UTC(),
		DueDate:         &future,
	})

	now := time.Now().UTC()
	r, err := e.svc.MonthlyReport(
		context.Background(), e.userID, int(now.Month()), now.Year(), dto.ReportFilter{},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, r.PaymentStatus.OverdueCount)
	assert.Equal(t, 100.0, r.PaymentStatus.OverdueAmount)
	assert.Equal(t, 2, r.PaymentStatus.PendingCount)
}

func TestMonthlyReport_FilterByCategory(t *testing.T) {
	e := newEnv(t)
	foodID := e.seedCategory(t, "Food")
	rentID := e.seedCategory(t, "Rent")

	e.seedTransaction(t, dto.TransactionCreate{
		Amount: 800, Type: txdomain.TypeExpense, CategoryID: &foodID,
		TransactionDate: date(2025, time.March, 1),
	})
	e.seedTransaction(t, dto.TransactionCreate{
		Amount: 1500, Type: txdomain.TypeExpense, CategoryID: &rentID,
		TransactionDate: date(2025, time.March, 2),
	})

	r, err := e.svc.MonthlyReport(context.Background(), e.userID, 3, 2025, dto.ReportFilter{
		CategoryID: &foodID,
	})
	require.NoError(t, err)
	assert.Equal(t, 800.0, r.Summary.TotalExpenses)
	assert.Equal(t, 1, r.Summary.TransactionCount)
}

func TestYearlyReport(t *testing.T) {
	e := newEnv(t)
	cardID := e.seedCard(t)

	e.seedTransaction(t, dto.TransactionCreate{
		Amount: 3000, Type: txdomain.TypeIncome, IsPaid: true,
		TransactionDate: date(2025, time.January, 5),
	})
	e.seedTransaction(t, dto.TransactionCreate{
		Amount: 1000, Type: txdomain.TypeExpense, IsPaid: true,
		TransactionDate: date(2025, time.January, 10),
	})
	e.seedTransaction(t, dto.TransactionCreate{
		Amount: 2500, Type: txdomain.TypeExpense, IsPaid: true, CreditCardID: &cardID,
		TransactionDate: date(2025, time.June, 15),
	})
	// Prior year, feeds the comparison only.
	e.seedTransaction(t, dto.TransactionCreate{
		Amount: 2000, Type: txdomain.TypeIncome, IsPaid: true,
		TransactionDate: date(2024, time.July, 1),
	})

	r, err := e.svc.YearlyReport(context.Background(), e.userID, 2025, dto.ReportFilter{})
	require.NoError(t, err)

	assert.Equal(t, 2025, r.Period.Year)
	assert.Equal(t, 3000.0, r.Summary.TotalIncome)
	assert.Equal(t, 3500.0, r.Summary.TotalExpenses)
	assert.Equal(t, -500.0, r.Summary.Balance)
	assert.Equal(t, 3, r.Summary.TransactionCount)

	// Month table.
	jan := r.MonthlyData["2025-01"]
	require.NotNil(t, jan)
	assert.Equal(t, 3000.0, jan.Income)
	assert.Equal(t, 1000.0, jan.Expenses)
	assert.Equal(t, 2000.0, jan.Balance)
	assert.Equal(t, "2025-06", r.Insights.MostExpensiveMonth)

	// Card usage histogram.
	usage := r.CreditCardAnalysis[cardID.String()]
	require.NotNil(t, usage)
	assert.Equal(t, 2500.0, usage.TotalSpent)
	assert.Equal(t, 1, usage.TransactionCount)
	assert.Equal(t, 2500.0, usage.MonthlySpend["2025-06"])
	require.Len(t, r.CreditCards, 1)
	assert.Equal(t, "4242", r.CreditCards[0].Last4Digits)

	// Year-over-year comparison.
	assert.Equal(t, 2000.0, r.Comparison.PreviousIncome)
	assert.Equal(t, 0.0, r.Comparison.PreviousExpenses)
	assert.InDelta(t, 50.0, r.Comparison.IncomeGrowth, 0.001)
	// Prior-year expenses were 0, so growth is reported as 0.
	assert.Zero(t, r.Comparison.ExpenseGrowth)

	// Insights.
	assert.InDelta(t, -500.0/3000.0*100, r.Insights.SavingsRate, 0.001)
	assert.InDelta(t, 3500.0/3000.0*100, r.Insights.ExpenseRatio, 0.001)
	assert.InDelta(t, 100.0, r.PaymentAnalysis.PaymentRate, 0.001)
}

func TestYearlyReport_ZeroPriorBalance(t *testing.T) {
	e := newEnv(t)

	e.seedTransaction(t, dto.TransactionCreate{
		Amount: 500, Type: txdomain.TypeIncome, IsPaid: true,
		TransactionDate: date(2025, time.March, 1),
	})
	// The prior year nets to exactly zero, so the relative improvement has no
	// base and is reported as 0.
	e.seedTransaction(t, dto.TransactionCreate{
		Amount: 300, Type: txdomain.TypeIncome, IsPaid: true,
		TransactionDate: date(2024, time.April, 1),
	})
	e.seedTransaction(t, dto.TransactionCreate{
		Amount: 300, Type: txdomain.TypeExpense, IsPaid: true,
		TransactionDate: date(2024, time.April, 2),
	})

	r, err := e.svc.YearlyReport(context.Background(), e.userID, 2025, dto.ReportFilter{})
	require.NoError(t, err)
	assert.Zero(t, r.Comparison.PreviousBalance)
	assert.Equal(t, 500.0, r.Comparison.BalanceImprovement)
	assert.Zero(t, r.Comparison.PercentageImprovement)
}

func TestYearlyReport_NoIncome(t *testing.T) {
	e := newEnv(t)

	e.seedTransaction(t, dto.TransactionCreate{
		Amount: 100, Type: txdomain.TypeExpense, IsPaid: true,
		TransactionDate: date(2025, time.May, 1),
	})

	r, err := e.svc.YearlyReport(context.Background(), e.userID, 2025, dto.ReportFilter{})
	require.NoError(t, err)
	assert.Zero(t, r.Insights.SavingsRate)
	assert.Zero(t, r.Insights.ExpenseRatio)
}

func TestYearlyReport_Empty(t *testing.T) {
	e := newEnv(t)

	r, err := e.svc.YearlyReport(context.Background(), e.userID, 2025, dto.ReportFilter{})
	require.NoError(t, err)
	assert.Zero(t, r.Summary.TransactionCount)
	assert.Empty(t, r.MonthlyData)
	assert.Empty(t, r.Insights.MostExpensiveMonth)
	assert.Empty(t, r.Transactions)
}
