package report

import (
	"time"

	txdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/transaction"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/google/uuid"
)

// Fallback labels for transactions without a category or account. Breakdown
// maps are keyed by entity id, so equal labels never collide.
const (
	noCategoryLabel = "Sem categoria"
	noAccountLabel  = "Sem conta"
)

// summarize computes the headline totals and the paid/pending/overdue
// tallies in one pass. A transaction is overdue when it is unpaid and its
// due date is strictly before now.
func summarize(
	transactions []*dto.TransactionRead,
	now time.Time,
) (dto.ReportSummary, dto.PaymentStatusSummary) {
	var summary dto.ReportSummary
	var status dto.PaymentStatusSummary

	for _, t := range transactions {
		summary.TransactionCount++
		if t.Type == txdomain.TypeIncome {
			summary.TotalIncome += t.Amount
		} else {
			summary.TotalExpenses += t.Amount
		}

		if t.IsPaid {
			status.PaidAmount += t.Amount
			status.PaidCount++
			continue
		}
		status.PendingAmount += t.Amount
		status.PendingCount++
		if t.DueDate != nil && t.DueDate.Before(now) {
			status.OverdueAmount += t.Amount
			status.OverdueCount++
		}
	}
	summary.Balance = summary.TotalIncome - summary.TotalExpenses
	summary.PaymentStatus = status
	return summary, status
}

// buildBreakdown groups the same transaction list along three independent
// dimensions. The zero UUID keys the "no category"/"no account" bucket.
func buildBreakdown(transactions []*dto.TransactionRead) dto.ReportBreakdown {
	breakdown := dto.ReportBreakdown{
		ByCategory: make(map[string]*dto.CategoryBreakdown),
		ByAccount:  make(map[string]*dto.AccountBreakdown),
		ByCard:     make(map[string]*dto.CardBreakdown),
	}

	for _, t := range transactions {
		categoryID, categoryName := uuid.Nil, noCategoryLabel
		if t.CategoryID != nil {
			categoryID, categoryName = *t.CategoryID, t.CategoryName
		}
		cb, ok := breakdown.ByCategory[categoryID.String()]
		if !ok {
			cb = &dto.CategoryBreakdown{CategoryID: categoryID, Name: categoryName}
			breakdown.ByCategory[categoryID.String()] = cb
		}
		cb.Count++
		if t.Type == txdomain.TypeIncome {
			cb.Income += t.Amount
		} else {
			cb.Expenses += t.Amount
		}
		if t.IsPaid {
			cb.PaidAmount += t.Amount
			cb.PaidCount++
		} else {
			cb.PendingAmount += t.Amount
			cb.PendingCount++
		}

		accountID, accountName := uuid.Nil, noAccountLabel
		if t.BankAccountID != nil {
			accountID, accountName = *t.BankAccountID, t.BankAccountName
		}
		ab, ok := breakdown.ByAccount[accountID.String()]
		if !ok {
			ab = &dto.AccountBreakdown{AccountID: accountID, Name: accountName}
			breakdown.ByAccount[accountID.String()] = ab
		}
		ab.Count++
		if t.Type == txdomain.TypeIncome {
			ab.Income += t.Amount
		} else {
			ab.Expenses += t.Amount
		}

		if t.CreditCardID != nil {
			cardName := t.CreditCardName + " (**** " + t.CreditCardLast4 + ")"
			kb, ok := breakdown.ByCard[t.CreditCardID.String()]
			if !ok {
				kb = &dto.CardBreakdown{CardID: *t.CreditCardID, Name: cardName}
				breakdown.ByCard[t.CreditCardID.String()] = kb
			}
			kb.Count++
			if t.Type == txdomain.TypeIncome {
				kb.Income += t.Amount
			} else {
				kb.Expenses += t.Amount
			}
		}
	}
	return breakdown
}

// percentage is part over whole as a percentage, 0 when the whole is 0. The
// zero-division convention is uniform across every report figure.
func percentage(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}
