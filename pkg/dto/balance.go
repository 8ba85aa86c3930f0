package dto

import (
	"time"

	"github.com/google/uuid"
)

// GroupBalance is one group's contribution to the consolidated balance.
// Only paid transactions without a bank account or credit card link count
// here; linked money is already reflected in an account or card figure.
type GroupBalance struct {
	GroupID          uuid.UUID `json:"group_id"`
	GroupName        string    `json:"group_name"`
	Balance          float64   `json:"balance"`
	TransactionCount int       `json:"transaction_count"`
}

// BankAccountBalance enriches a stored account balance with the net effect
// of its paid transactions.
type BankAccountBalance struct {
	AccountID          uuid.UUID `json:"account_id"`
	Name               string    `json:"name"`
	Bank               string    `json:"bank"`
	StoredBalance      float64   `json:"stored_balance"`
	TransactionBalance float64   `json:"transaction_balance"`
	RealBalance        float64   `json:"real_balance"`
}

// CreditCardSummary reports a card's derived exposure over the open billing
// window.
type CreditCardSummary struct {
	CardID          uuid.UUID `json:"card_id"`
	Name            string    `json:"name"`
	Last4Digits     string    `json:"last_4_digits"`
	Brand           string    `json:"brand"`
	CreditLimit     float64   `json:"credit_limit"`
	CurrentDebt     float64   `json:"current_debt"`
	AvailableLimit  float64   `json:"available_limit"`
	UtilizationRate float64   `json:"utilization_rate"`
}

// BalanceSummary carries counts and the overall utilization percentage.
type BalanceSummary struct {
	GroupCount         int       `json:"group_count"`
	BankAccountCount   int       `json:"bank_account_count"`
	CreditCardCount    int       `json:"credit_card_count"`
	OverallUtilization float64   `json:"overall_utilization"`
	GeneratedAt        time.Time `json:"generated_at"`
}

// BalanceSnapshot is the consolidated financial picture for one user.
type BalanceSnapshot struct {
	TotalBalance          float64              `json:"total_balance"`
	TotalBankBalance      float64              `json:"total_bank_balance"`
	TotalCreditDebt       float64              `json:"total_credit_debt"`
	TotalCreditLimit      float64              `json:"total_credit_limit"`
	AvailableCreditLimit  float64              `json:"available_credit_limit"`
	RealNetBalance        float64              `json:"real_net_balance"`
	TotalAvailableBalance float64              `json:"total_available_balance"`
	ConsolidatedBalance   float64              `json:"consolidated_balance"`
	Groups                []GroupBalance       `json:"groups"`
	BankAccounts          []BankAccountBalance `json:"bank_accounts"`
	CreditCards           []CreditCardSummary  `json:"credit_cards"`
	Summary               BalanceSummary       `json:"summary"`
}
