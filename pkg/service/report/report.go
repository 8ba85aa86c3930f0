// Package report builds the monthly and yearly analytics views over the
// caller's accessible groups.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository"
	creditcardrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/creditcard"
	grouprepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/group"
	txrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/transaction"
	"github.com/google/uuid"
)

// Service builds financial reports.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

// New creates a new Service.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, logger: logger, now: time.Now}
}

// MonthlyReport builds the report for one calendar month. Out-of-range month
// or year values are clamped to the current period instead of producing an
// invalid window.
func (s *Service) MonthlyReport(
	ctx context.Context,
	userID uuid.UUID,
	month, year int,
	filter dto.ReportFilter,
) (report *dto.MonthlyReport, err error) {
	now := s.now().UTC()
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	if year < 1900 || year > now.Year()+1 {
		year = now.Year()
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := s.fetchWindow(ctx, uow, userID, start, end, filter)
		if err != nil {
			return err
		}

		summary, paymentStatus := summarize(transactions, now)
		breakdown := buildBreakdown(transactions)
		cards, err := fetchReferencedCards(ctx, uow, transactions)
		if err != nil {
			return err
		}

		report = &dto.MonthlyReport{
			Period: dto.ReportPeriod{
				Month:     month,
				Year:      year,
				StartDate: start.Format(time.RFC3339),
				EndDate:   end.Format(time.RFC3339),
			},
			Summary:       summary,
			Breakdown:     breakdown,
			PaymentStatus: paymentStatus,
			CreditCards:   cards,
			Transactions:  derefTransactions(transactions),
		}
		return nil
	})
	if err != nil {
		report = nil
	}
	return
}

// fetchWindow lists the caller's transactions inside [start, end], narrowed
// by the optional category/account/card filter.
func (s *Service) fetchWindow(
	ctx context.Context,
	uow repository.UnitOfWork,
	userID uuid.UUID,
	start, end time.Time,
	filter dto.ReportFilter,
) ([]*dto.TransactionRead, error) {
	groupRepo, err := getGroupRepo(uow)
	if err != nil {
		return nil, err
	}
	accessible, err := groupRepo.AccessibleGroupIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(accessible) == 0 {
		return []*dto.TransactionRead{}, nil
	}

	repo, err := getTxRepo(uow)
	if err != nil {
		return nil, err
	}
	return repo.List(ctx, dto.TransactionFilter{
		GroupIDs:      accessible,
		DateFrom:      &start,
		DateTo:        &end,
		CategoryID:    filter.CategoryID,
		BankAccountID: filter.BankAccountID,
		CreditCardID:  filter.CreditCardID,
	})
}

// fetchReferencedCards resolves display metadata for every card the result
// set touches, one query instead of a per-row join.
func fetchReferencedCards(
	ctx context.Context,
	uow repository.UnitOfWork,
	transactions []*dto.TransactionRead,
) ([]dto.ReportCreditCard, error) {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for _, t := range transactions {
		if t.CreditCardID == nil {
			continue
		}
		if _, ok := seen[*t.CreditCardID]; ok {
			continue
		}
		seen[*t.CreditCardID] = struct{}{}
		ids = append(ids, *t.CreditCardID)
	}
	if len(ids) == 0 {
		return []dto.ReportCreditCard{}, nil
	}

	repoAny, err := uow.GetRepository((*creditcardrepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(creditcardrepo.Repository)
	if !ok {
		return nil, fmt.Errorf("unexpected repository type")
	}
	cards, err := repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReportCreditCard, 0, len(cards))
	for _, c := range cards {
		out = append(out, dto.ReportCreditCard{
			ID:          c.ID,
			Name:        c.Name,
			Last4Digits: c.Last4Digits,
			Brand:       c.Brand,
			CreditLimit: c.CreditLimit,
			ClosingDay:  c.ClosingDay,
			DueDay:      c.DueDay,
		})
	}
	return out, nil
}

func derefTransactions(transactions []*dto.TransactionRead) []dto.TransactionRead {
	out := make([]dto.TransactionRead, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, *t)
	}
	return out
}

func getGroupRepo(uow repository.UnitOfWork) (grouprepo.Repository, error) {
	repoAny, err := uow.GetRepository((*grouprepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(grouprepo.Repository)
	if !ok {
		return nil, fmt.Errorf("unexpected repository type")
	}
	return repo, nil
}

func getTxRepo(uow repository.UnitOfWork) (txrepo.Repository, error) {
	repoAny, err := uow.GetRepository((*txrepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(txrepo.Repository)
	if !ok {
		return nil, fmt.Errorf("unexpected repository type")
	}
	return repo, nil
}
