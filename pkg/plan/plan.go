// Package plan expands a settlement row into the fixed sequence of four
// transfer orders the bank workflow executes.
package plan

import (
	"github.com/settleops/disburse/pkg/config"
	"github.com/settleops/disburse/pkg/models"
)

// Planner turns settlement rows into transfer orders using the four account
// pairs from configuration: IOLTA→Operating, Operating→Marketing,
// Operating→Cash-Loan, Operating→Building.
type Planner struct {
	accounts config.Accounts
}

// New builds a planner over the configured accounts.
func New(accounts config.Accounts) *Planner {
	return &Planner{accounts: accounts}
}

// Plan returns exactly four orders for the row, in execution order. Amounts
// pass through untouched; a zero leg is still submitted as a zero transfer.
func (p *Planner) Plan(row models.SettlementRow) []models.TransferOrder {
	a := p.accounts
	return []models.TransferOrder{
		{
			FromLabel:  a.Iolta.Label,
			FromNumber: a.Iolta.Number,
			ToLabel:    a.Operating.Label,
			ToNumber:   a.Operating.Number,
			Amount:     row.IoltaToOperating,
			Memo:       row.ClientName,
		},
		{
			FromLabel:  a.Operating.Label,
			FromNumber: a.Operating.Number,
			ToLabel:    a.Marketing.Label,
			ToNumber:   a.Marketing.Number,
			Amount:     row.OperatingToMarketing,
			Memo:       row.ClientName,
		},
		{
			FromLabel:  a.Operating.Label,
			FromNumber: a.Operating.Number,
			ToLabel:    a.CashLoan.Label,
			ToNumber:   a.CashLoan.Number,
			Amount:     row.OperatingToCashLoan,
			Memo:       row.ClientName,
		},
		{
			FromLabel:  a.Operating.Label,
			FromNumber: a.Operating.Number,
			ToLabel:    a.Building.Label,
			ToNumber:   a.Building.Number,
			Amount:     row.OperatingToBuildingBonus,
			Memo:       row.ClientName,
		},
	}
}
