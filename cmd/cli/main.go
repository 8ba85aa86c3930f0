// Command cli is a small operational tool for local administration: user
// registration, balance snapshots, and yearly reports without the HTTP layer.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/TeamSorcerers/app-financeiro-sub000/infra/initializer"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/app"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/config"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	cfg, err := config.Load(".env")
	if err != nil {
		color.Red("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		color.Red("Failed to initialize dependencies: %v", err)
		os.Exit(1)
	}
	a := app.New(deps, cfg)

	ctx := context.Background()
	switch os.Args[1] {
	case "register":
		register(ctx, a)
	case "balance":
		balance(ctx, a)
	case "report":
		report(ctx, a)
	default:
		color.Red("Unknown command: %s", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  register <username> <email>   create a user (password is prompted)")
	fmt.Println("  balance <user_id>             print the consolidated balance snapshot")
	fmt.Println("  report <user_id> [year]       print the yearly report summary")
}

func register(ctx context.Context, a *app.App) {
	if len(os.Args) < 4 {
		fmt.Println("Usage: register <username> <email>")
		os.Exit(1)
	}
	username, email := os.Args[2], os.Args[3]

	fmt.Print("Password: ")
	raw, err := term.ReadPassword(syscall.Stdin)
	fmt.Println()
	if err != nil {
		color.Red("Failed to read password: %v", err)
		os.Exit(1)
	}

	u, err := a.UserService.CreateUser(ctx, username, email, string(raw))
	if err != nil {
		color.Red("Failed to create user: %v", err)
		os.Exit(1)
	}
	color.Green("User created: %s (%s)", u.ID, u.Username)
}

func balance(ctx context.Context, a *app.App) {
	userID := mustUserID("balance <user_id>")
	snapshot, err := a.BalanceService.GetBalance(ctx, userID)
	if err != nil {
		color.Red("Failed to compute balance: %v", err)
		os.Exit(1)
	}

	bold := color.New(color.Bold)
	bold.Println("Consolidated balance")
	fmt.Printf("  Total balance:       %10.2f\n", snapshot.TotalBalance)
	fmt.Printf("  Bank balance:        %10.2f\n", snapshot.TotalBankBalance)
	fmt.Printf("  Credit debt:         %10.2f\n", snapshot.TotalCreditDebt)
	fmt.Printf("  Available limit:     %10.2f\n", snapshot.AvailableCreditLimit)
	fmt.Printf("  Real net balance:    %10.2f\n", snapshot.RealNetBalance)
	fmt.Printf("  Consolidated:        %10.2f\n", snapshot.ConsolidatedBalance)

	bold.Println("Groups")
	for _, g := range snapshot.Groups {
		fmt.Printf("  %-30s %10.2f (%d transactions)\n", g.GroupName, g.Balance, g.TransactionCount)
	}
	bold.Println("Bank accounts")
	for _, b := range snapshot.BankAccounts {
		fmt.Printf("  %-30s %10.2f (real %10.2f)\n", b.Name, b.StoredBalance, b.RealBalance)
	}
	bold.Println("Credit cards")
	for _, cc := range snapshot.CreditCards {
		fmt.Printf("  %-30s debt %10.2f / limit %10.2f\n", cc.Name, cc.CurrentDebt, cc.CreditLimit)
	}
}

func report(ctx context.Context, a *app.App) {
	userID := mustUserID("report <user_id> [year]")
	year := time.Now().Year()
	if len(os.Args) > 3 {
		parsed, err := strconv.Atoi(os.Args[3])
		if err != nil {
			color.Red("Invalid year: %v", err)
			os.Exit(1)
		}
		year = parsed
	}

	r, err := a.ReportService.YearlyReport(ctx, userID, year, dto.ReportFilter{})
	if err != nil {
		color.Red("Failed to build report: %v", err)
		os.Exit(1)
	}

	bold := color.New(color.Bold)
	bold.Printf("Yearly report %d\n", r.Period.Year)
	fmt.Printf("  Income:   %10.2f\n", r.Summary.TotalIncome)
	fmt.Printf("  Expenses: %10.2f\n", r.Summary.TotalExpenses)
	fmt.Printf("  Balance:  %10.2f\n", r.Summary.Balance)
	fmt.Printf("  Savings rate:  %6.2f%%\n", r.Insights.SavingsRate)
	fmt.Printf("  Expense ratio: %6.2f%%\n", r.Insights.ExpenseRatio)
	if r.Insights.MostExpensiveMonth != "" {
		fmt.Printf("  Most expensive month: %s\n", r.Insights.MostExpensiveMonth)
	}
}

func mustUserID(usageLine string) uuid.UUID {
	if len(os.Args) < 3 {
		fmt.Println("Usage:", usageLine)
		os.Exit(1)
	}
	userID, err := uuid.Parse(os.Args[2])
	if err != nil {
		color.Red("Invalid user id: %v", err)
		os.Exit(1)
	}
	return userID
}
