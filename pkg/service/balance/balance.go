// Package balance computes the consolidated financial snapshot: group cash
// flow, realized bank balances, and credit card exposure, joined into one
// read model.
package balance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/cache"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/config"
	txdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/transaction"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository"
	bankaccountrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/bankaccount"
	creditcardrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/creditcard"
	grouprepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/group"
	txrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/transaction"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Service computes balance snapshots. Snapshots are cached per user for a
// short TTL; writes invalidate through InvalidateForUser.
type Service struct {
	uow    repository.UnitOfWork
	cache  cache.Cache
	cfg    *config.BalanceCache
	logger *slog.Logger
	now    func() time.Time
}

// New creates a new Service.
func New(
	uow repository.UnitOfWork,
	snapshotCache cache.Cache,
	cfg *config.BalanceCache,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:    uow,
		cache:  snapshotCache,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// GetBalance produces the consolidated snapshot for one user. The three
// constituent reads are independent, so they fan out concurrently and join
// before the derived totals are computed. Any retrieval failure fails the
// whole request; no partial snapshot is ever returned.
func (s *Service) GetBalance(
	ctx context.Context,
	userID uuid.UUID,
) (*dto.BalanceSnapshot, error) {
	if cached := s.fromCache(ctx, userID); cached != nil {
		return cached, nil
	}

	var (
		groups   []dto.GroupBalance
		accounts []dto.BankAccountBalance
		cards    []dto.CreditCardSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		groups, err = s.groupBalances(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		accounts, err = s.bankBalances(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		cards, err = s.cardSummaries(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := &dto.BalanceSnapshot{
		Groups:       groups,
		BankAccounts: accounts,
		CreditCards:  cards,
	}
	for _, gb := range groups {
		snapshot.TotalBalance += gb.Balance
	}
	for _, ab := range accounts {
		snapshot.TotalBankBalance += ab.RealBalance
	}
	for _, cs := range cards {
		snapshot.TotalCreditDebt += cs.CurrentDebt
		snapshot.TotalCreditLimit += cs.CreditLimit
	}

	// AvailableCreditLimit may go negative when debt exceeds the limit; only
	// the spendable term is floored at zero.
	snapshot.AvailableCreditLimit = snapshot.TotalCreditLimit - snapshot.TotalCreditDebt
	spendableCredit := snapshot.AvailableCreditLimit
	if spendableCredit < 0 {
		spendableCredit = 0
	}
	snapshot.RealNetBalance = snapshot.TotalBalance + snapshot.TotalBankBalance - snapshot.TotalCreditDebt
	snapshot.TotalAvailableBalance = snapshot.TotalBalance + snapshot.TotalBankBalance + spendableCredit
	snapshot.ConsolidatedBalance = snapshot.TotalBalance + snapshot.TotalBankBalance

	snapshot.Summary = dto.BalanceSummary{
		GroupCount:         len(groups),
		BankAccountCount:   len(accounts),
		CreditCardCount:    len(cards),
		OverallUtilization: utilization(snapshot.TotalCreditDebt, snapshot.TotalCreditLimit),
		GeneratedAt:        s.now().UTC(),
	}

	s.toCache(ctx, userID, snapshot)
	return snapshot, nil
}

// InvalidateForUser drops the cached snapshot after a write.
func (s *Service) InvalidateForUser(ctx context.Context, userID uuid.UUID) {
	if err := s.cache.Delete(ctx, s.cfg.Prefix+userID.String()); err != nil {
		s.logger.Warn("failed to invalidate balance snapshot", "userID", userID, "error", err)
	}
}

// groupBalances sums paid, unlinked transactions per accessible group. Money
// linked to an account or card is excluded so it is never counted twice.
func (s *Service) groupBalances(
	ctx context.Context,
	userID uuid.UUID,
) (balances []dto.GroupBalance, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		groupRepo, err := getGroupRepo(uow)
		if err != nil {
			return err
		}
		accessible, err := groupRepo.AccessibleGroups(ctx, userID)
		if err != nil {
			return err
		}
		if len(accessible) == 0 {
			balances = []dto.GroupBalance{}
			return nil
		}

		ids := make([]uuid.UUID, 0, len(accessible))
		for _, g := range accessible {
			ids = append(ids, g.ID)
		}
		isPaid := true
		repo, err := getTxRepo(uow)
		if err != nil {
			return err
		}
		transactions, err := repo.List(ctx, dto.TransactionFilter{
			GroupIDs:     ids,
			IsPaid:       &isPaid,
			UnlinkedOnly: true,
		})
		if err != nil {
			return err
		}

		type bucket struct {
			balance float64
			count   int
		}
		byGroup := make(map[uuid.UUID]*bucket, len(accessible))
		for _, t := range transactions {
			b, ok := byGroup[t.GroupID]
			if !ok {
				b = &bucket{}
				byGroup[t.GroupID] = b
			}
			if t.Type == txdomain.TypeIncome {
				b.balance += t.Amount
			} else {
				b.balance -= t.Amount
			}
			b.count++
		}

		balances = make([]dto.GroupBalance, 0, len(accessible))
		for _, g := range accessible {
			entry := dto.GroupBalance{
				GroupID:   g.ID,
				GroupName: g.Name,
			}
			if b, ok := byGroup[g.ID]; ok {
				entry.Balance = b.balance
				entry.TransactionCount = b.count
			}
			balances = append(balances, entry)
		}
		return nil
	})
	return
}

// bankBalances enriches each active account's stored balance with the net
// effect of its paid transactions.
func (s *Service) bankBalances(
	ctx context.Context,
	userID uuid.UUID,
) (balances []dto.BankAccountBalance, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accountRepoAny, err := uow.GetRepository((*bankaccountrepo.Repository)(nil))
		if err != nil {
			return err
		}
		accountRepo, ok := accountRepoAny.(bankaccountrepo.Repository)
		if !ok {
			return fmt.Errorf("unexpected repository type")
		}
		accounts, err := accountRepo.ListActiveByUser(ctx, userID)
		if err != nil {
			return err
		}
		repo, err := getTxRepo(uow)
		if err != nil {
			return err
		}

		isPaid := true
		balances = make([]dto.BankAccountBalance, 0, len(accounts))
		for _, account := range accounts {
			accountID := account.ID
			transactions, err := repo.List(ctx, dto.TransactionFilter{
				BankAccountID:     &accountID,
				IsPaid:            &isPaid,
				WithoutCreditCard: true,
			})
			if err != nil {
				return err
			}
			var txBalance float64
			for _, t := range transactions {
				if t.Type == txdomain.TypeIncome {
					txBalance += t.Amount
				} else {
					txBalance -= t.Amount
				}
			}
			balances = append(balances, dto.BankAccountBalance{
				AccountID:          account.ID,
				Name:               account.Name,
				Bank:               account.Bank,
				StoredBalance:      account.Balance,
				TransactionBalance: txBalance,
				RealBalance:        account.Balance + txBalance,
			})
		}
		return nil
	})
	return
}

// cardSummaries derives each card's exposure from pending/paid expense
// transactions inside the trailing billing window. This predicate is
// intentionally different from the bank one: a paid card expense still
// counts as debt until the statement cycle rolls past it.
func (s *Service) cardSummaries(
	ctx context.Context,
	userID uuid.UUID,
) (summaries []dto.CreditCardSummary, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		cardRepoAny, err := uow.GetRepository((*creditcardrepo.Repository)(nil))
		if err != nil {
			return err
		}
		cardRepo, ok := cardRepoAny.(creditcardrepo.Repository)
		if !ok {
			return fmt.Errorf("unexpected repository type")
		}
		cards, err := cardRepo.ListActiveCreditByUser(ctx, userID)
		if err != nil {
			return err
		}
		repo, err := getTxRepo(uow)
		if err != nil {
			return err
		}

		expense := txdomain.TypeExpense
		windowStart := s.now().UTC().Add(-txdomain.CardDebtWindow)
		summaries = make([]dto.CreditCardSummary, 0, len(cards))
		for _, card := range cards {
			cardID := card.ID
			transactions, err := repo.List(ctx, dto.TransactionFilter{
				CreditCardID: &cardID,
				Type:         &expense,
				Statuses:     txdomain.CardDebtStatuses,
				DateFrom:     &windowStart,
			})
			if err != nil {
				return err
			}
			var debt float64
			for _, t := range transactions {
				debt += t.Amount
			}

			var limit float64
			if card.CreditLimit != nil {
				limit = *card.CreditLimit
			}
			available := limit - debt
			if available < 0 {
				available = 0
			}
			summaries = append(summaries, dto.CreditCardSummary{
				CardID:          card.ID,
				Name:            card.Name,
				Last4Digits:     card.Last4Digits,
				Brand:           card.Brand,
				CreditLimit:     limit,
				CurrentDebt:     debt,
				AvailableLimit:  available,
				UtilizationRate: utilization(debt, limit),
			})
		}
		return nil
	})
	return
}

func (s *Service) fromCache(ctx context.Context, userID uuid.UUID) *dto.BalanceSnapshot {
	raw, err := s.cache.Get(ctx, s.cfg.Prefix+userID.String())
	if err != nil {
		s.logger.Warn("balance snapshot cache read failed", "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}
	var snapshot dto.BalanceSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		s.logger.Warn("discarding malformed cached snapshot", "error", err)
		return nil
	}
	return &snapshot
}

func (s *Service) toCache(ctx context.Context, userID uuid.UUID, snapshot *dto.BalanceSnapshot) {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cfg.Prefix+userID.String(), raw, s.cfg.TTL); err != nil {
		s.logger.Warn("balance snapshot cache write failed", "error", err)
	}
}

// utilization is debt over limit as a percentage, 0 when there is no limit.
func utilization(debt, limit float64) float64 {
	if limit == 0 {
		return 0
	}
	return debt / limit * 100
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
