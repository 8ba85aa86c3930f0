package dto

import (
	"github.com/google/uuid"
)

// ReportPeriod identifies the window a report covers. Month is zero for
// yearly reports.
type ReportPeriod struct {
	Month     int    `json:"month,omitempty"`
	Year      int    `json:"year"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// PaymentStatusSummary tallies paid, pending, and overdue amounts.
// A transaction is overdue when it is unpaid and its due date is strictly
// before the report's reference time.
type PaymentStatusSummary struct {
	PaidAmount    float64 `json:"paid_amount"`
	PaidCount     int     `json:"paid_count"`
	PendingAmount float64 `json:"pending_amount"`
	PendingCount  int     `json:"pending_count"`
	OverdueAmount float64 `json:"overdue_amount"`
	OverdueCount  int     `json:"overdue_count"`
}

// ReportSummary holds the period's headline totals.
type ReportSummary struct {
	TotalIncome      float64              `json:"total_income"`
	TotalExpenses    float64              `json:"total_expenses"`
	Balance          float64              `json:"balance"`
	TransactionCount int                  `json:"transaction_count"`
	PaymentStatus    PaymentStatusSummary `json:"payment_status"`
}

// CategoryBreakdown accumulates per-category totals. Keys in the enclosing
// map are stable category ids, with the display name carried here so equal
// fallback labels never collide.
type CategoryBreakdown struct {
	CategoryID    uuid.UUID `json:"category_id"`
	Name          string    `json:"name"`
	Income        float64   `json:"income"`
	Expenses      float64   `json:"expenses"`
	Count         int       `json:"count"`
	PaidAmount    float64   `json:"paid_amount"`
	PaidCount     int       `json:"paid_count"`
	PendingAmount float64   `json:"pending_amount"`
	PendingCount  int       `json:"pending_count"`
	Percentage    float64   `json:"percentage,omitempty"`
}

// AccountBreakdown accumulates per-bank-account totals.
type AccountBreakdown struct {
	AccountID uuid.UUID `json:"account_id"`
	Name      string    `json:"name"`
	Income    float64   `json:"income"`
	Expenses  float64   `json:"expenses"`
	Count     int       `json:"count"`
}

// CardBreakdown accumulates per-credit-card totals.
type CardBreakdown struct {
	CardID   uuid.UUID `json:"card_id"`
	Name     string    `json:"name"`
	Income   float64   `json:"income"`
	Expenses float64   `json:"expenses"`
	Count    int       `json:"count"`
}

// ReportBreakdown groups the period's transactions along three independent
// dimensions. Maps are keyed by entity id rendered as a string; the zero
// UUID keys the "no category"/"no account" bucket.
type ReportBreakdown struct {
	ByCategory map[string]*CategoryBreakdown `json:"by_category"`
	ByAccount  map[string]*AccountBreakdown  `json:"by_account"`
	ByCard     map[string]*CardBreakdown     `json:"by_card"`
}

// ReportCreditCard carries the display metadata of cards referenced in a
// report, fetched once instead of re-joined per transaction.
type ReportCreditCard struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Last4Digits string    `json:"last_4_digits"`
	Brand       string    `json:"brand"`
	CreditLimit *float64  `json:"credit_limit,omitempty"`
	ClosingDay  *int      `json:"closing_day,omitempty"`
	DueDay      *int      `json:"due_day,omitempty"`
}

// MonthlyReport is the full monthly analytics payload.
type MonthlyReport struct {
	Period        ReportPeriod         `json:"period"`
	Summary       ReportSummary        `json:"summary"`
	Breakdown     ReportBreakdown      `json:"breakdown"`
	PaymentStatus PaymentStatusSummary `json:"payment_status"`
	CreditCards   []ReportCreditCard   `json:"credit_cards"`
	Transactions  []TransactionRead    `json:"transactions"`
}

// PaymentAnalysis extends the status summary with the share of transactions
// already paid.
type PaymentAnalysis struct {
	PaymentStatusSummary
	PaymentRate float64 `json:"payment_rate"`
}

// CardUsage is a card's yearly spend profile with a month-keyed histogram
// (keys are YYYY-MM).
type CardUsage struct {
	CardID             uuid.UUID          `json:"card_id"`
	Name               string             `json:"name"`
	TotalSpent         float64            `json:"total_spent"`
	TransactionCount   int                `json:"transaction_count"`
	AverageTransaction float64            `json:"average_transaction"`
	MonthlySpend       map[string]float64 `json:"monthly_spend"`
}

// MonthTotals is one month's row in the yearly month-by-month table.
type MonthTotals struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
	Count    int     `json:"count"`
}

// Comparison holds year-over-year deltas against the prior calendar year.
// Growth figures are percentages; when the prior value is 0 the growth is
// reported as 0 rather than infinity.
type Comparison struct {
	PreviousIncome        float64 `json:"previous_income"`
	PreviousExpenses      float64 `json:"previous_expenses"`
	PreviousBalance       float64 `json:"previous_balance"`
	IncomeGrowth          float64 `json:"income_growth"`
	ExpenseGrowth         float64 `json:"expense_growth"`
	BalanceImprovement    float64 `json:"balance_improvement"`
	PercentageImprovement float64 `json:"percentage_improvement"`
}

// Insights carries derived ratios for the year. Both rates are 0 when the
// year had no income.
type Insights struct {
	SavingsRate        float64 `json:"savings_rate"`
	ExpenseRatio       float64 `json:"expense_ratio"`
	MostExpensiveMonth string  `json:"most_expensive_month"`
}

// YearlyReport is the full yearly analytics payload.
type YearlyReport struct {
	Period             ReportPeriod            `json:"period"`
	Summary            ReportSummary           `json:"summary"`
	Breakdown          ReportBreakdown         `json:"breakdown"`
	PaymentAnalysis    PaymentAnalysis         `json:"payment_analysis"`
	CreditCardAnalysis map[string]*CardUsage   `json:"credit_card_analysis"`
	MonthlyData        map[string]*MonthTotals `json:"monthly_data"`
	Comparison         Comparison              `json:"comparison"`
	Insights           Insights                `json:"insights"`
	CreditCards        []ReportCreditCard      `json:"credit_cards"`
	Transactions       []TransactionRead       `json:"transactions"`
}

// ReportFilter narrows a report to a category, account, or card.
type ReportFilter struct {
	CategoryID    *uuid.UUID
	BankAccountID *uuid.UUID
	CreditCardID  *uuid.UUID
}
