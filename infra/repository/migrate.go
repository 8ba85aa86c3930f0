package repository

import (
	"github.com/TeamSorcerers/app-financeiro-sub000/infra/repository/bankaccount"
	"github.com/TeamSorcerers/app-financeiro-sub000/infra/repository/category"
	"github.com/TeamSorcerers/app-financeiro-sub000/infra/repository/creditcard"
	"github.com/TeamSorcerers/app-financeiro-sub000/infra/repository/group"
	"github.com/TeamSorcerers/app-financeiro-sub000/infra/repository/paymentmethod"
	"github.com/TeamSorcerers/app-financeiro-sub000/infra/repository/transaction"
	"github.com/TeamSorcerers/app-financeiro-sub000/infra/repository/user"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every persisted model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&group.FinancialGroup{},
		&group.FinancialGroupMember{},
		&category.FinancialCategory{},
		&bankaccount.BankAccount{},
		&creditcard.CreditCard{},
		&paymentmethod.PaymentMethod{},
		&transaction.Transaction{},
	)
}
