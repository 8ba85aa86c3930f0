package report

import (
	"context"
	"time"

	txdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/transaction"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository"
	"github.com/google/uuid"
)

// YearlyReport builds the report for a full calendar year, with
// month-by-month data, credit card usage profiles, a year-over-year
// comparison, and derived ratios.
func (s *Service) YearlyReport(
	ctx context.Context,
	userID uuid.UUID,
	year int,
	filter dto.ReportFilter,
) (report *dto.YearlyReport, err error) {
	now := s.now().UTC()
	if year < 1900 || year > now.Year()+1 {
		year = now.Year()
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := s.fetchWindow(ctx, uow, userID, start, end, filter)
		if err != nil {
			return err
		}

		summary, paymentStatus := summarize(transactions, now)
		breakdown := buildBreakdown(transactions)
		applyCategoryPercentages(breakdown.ByCategory, summary.TotalIncome+summary.TotalExpenses)

		monthlyData := buildMonthlyData(transactions)
		cardUsage := buildCardUsage(transactions)
		cards, err := fetchReferencedCards(ctx, uow, transactions)
		if err != nil {
			return err
		}

		// The prior-year query deliberately skips the category/account/card
		// filter; the comparison is against the whole prior year.
		comparison, err := s.buildComparison(ctx, uow, userID, year, summary)
		if err != nil {
			return err
		}

		report = &dto.YearlyReport{
			Period: dto.ReportPeriod{
				Year:      year,
				StartDate: start.Format(time.RFC3339),
				EndDate:   end.Format(time.RFC3339),
			},
			Summary:   summary,
			Breakdown: breakdown,
			PaymentAnalysis: dto.PaymentAnalysis{
				PaymentStatusSummary: paymentStatus,
				PaymentRate: percentage(
					float64(paymentStatus.PaidCount),
					float64(summary.TransactionCount),
				),
			},
			CreditCardAnalysis: cardUsage,
			MonthlyData:        monthlyData,
			Comparison:         comparison,
			Insights: dto.Insights{
				SavingsRate:        percentage(summary.Balance, summary.TotalIncome),
				ExpenseRatio:       percentage(summary.TotalExpenses, summary.TotalIncome),
				MostExpensiveMonth: mostExpensiveMonth(monthlyData),
			},
			CreditCards:  cards,
			Transactions: derefTransactions(transactions),
		}
		return nil
	})
	if err != nil {
		report = nil
	}
	return
}

// applyCategoryPercentages sets each category's share of the year's combined
// income and expense volume.
func applyCategoryPercentages(
	byCategory map[string]*dto.CategoryBreakdown,
	totalVolume float64,
) {
	for _, cb := range byCategory {
		cb.Percentage = percentage(cb.Income+cb.Expenses, totalVolume)
	}
}

// buildMonthlyData tabulates income, expenses, balance, and count per
// YYYY-MM month key.
func buildMonthlyData(transactions []*dto.TransactionRead) map[string]*dto.MonthTotals {
	data := make(map[string]*dto.MonthTotals)
	for _, t := range transactions {
		key := t.TransactionDate.UTC().Format("2006-01")
		m, ok := data[key]
		if !ok {
			m = &dto.MonthTotals{}
			data[key] = m
		}
		m.Count++
		if t.Type == txdomain.TypeIncome {
			m.Income += t.Amount
		} else {
			m.Expenses += t.Amount
		}
		m.Balance = m.Income - m.Expenses
	}
	return data
}

// buildCardUsage profiles each card's yearly spend with a month-keyed
// histogram. Only expense entries count as spend.
func buildCardUsage(transactions []*dto.TransactionRead) map[string]*dto.CardUsage {
	usage := make(map[string]*dto.CardUsage)
	for _, t := range transactions {
		if t.CreditCardID == nil || t.Type != txdomain.TypeExpense {
			continue
		}
		key := t.CreditCardID.String()
		u, ok := usage[key]
		if !ok {
			u = &dto.CardUsage{
				CardID:       *t.CreditCardID,
				Name:         t.CreditCardName + " (**** " + t.CreditCardLast4 + ")",
				MonthlySpend: make(map[string]float64),
			}
			usage[key] = u
		}
		u.TotalSpent += t.Amount
		u.TransactionCount++
		u.MonthlySpend[t.TransactionDate.UTC().Format("2006-01")] += t.Amount
	}
	for _, u := range usage {
		if u.TransactionCount > 0 {
			u.AverageTransaction = u.TotalSpent / float64(u.TransactionCount)
		}
	}
	return usage
}

// buildComparison fetches the prior year's totals and derives growth
// figures. When a prior figure is exactly 0 the growth is reported as 0.
func (s *Service) buildComparison(
	ctx context.Context,
	uow repository.UnitOfWork,
	userID uuid.UUID,
	year int,
	current dto.ReportSummary,
) (dto.Comparison, error) {
	prevStart := time.Date(year-1, time.January, 1, 0, 0, 0, 0, time.UTC)
	prevEnd := time.Date(year-1, time.December, 31, 23, 59, 59, 0, time.UTC)

	previous, err := s.fetchWindow(ctx, uow, userID, prevStart, prevEnd, dto.ReportFilter{})
	if err != nil {
		return dto.Comparison{}, err
	}

	var prevIncome, prevExpenses float64
	for _, t := range previous {
		if t.Type == txdomain.TypeIncome {
			prevIncome += t.Amount
		} else {
			prevExpenses += t.Amount
		}
	}
	prevBalance := prevIncome - prevExpenses
	improvement := current.Balance - prevBalance

	comparison := dto.Comparison{
		PreviousIncome:     prevIncome,
		PreviousExpenses:   prevExpenses,
		PreviousBalance:    prevBalance,
		IncomeGrowth:       percentage(current.TotalIncome-prevIncome, prevIncome),
		ExpenseGrowth:      percentage(current.TotalExpenses-prevExpenses, prevExpenses),
		BalanceImprovement: improvement,
	}
	if prevBalance != 0 {
		comparison.PercentageImprovement = improvement / abs(prevBalance) * 100
	}
	return comparison, nil
}

// mostExpensiveMonth returns the YYYY-MM key with the highest expenses,
// empty when the year has no data. Ties resolve to the earliest month so the
// answer is deterministic.
func mostExpensiveMonth(data map[string]*dto.MonthTotals) string {
	var best string
	var bestExpenses float64
	for key, m := range data {
		if best == "" ||
			m.Expenses > bestExpenses ||
			(m.Expenses == bestExpenses && key < best) {
			best = key
			bestExpenses = m.Expenses
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
