package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SettlementRow is one client's disbursement record from the settlement
// spreadsheet. SourceRow is the 1-based row number in the original sheet,
// counting the header as row 1.
type SettlementRow struct {
	SourceRow                int
	ClientName               string
	IoltaToOperating         decimal.Decimal
	OperatingToMarketing     decimal.Decimal
	OperatingToCashLoan      decimal.Decimal
	OperatingToBuildingBonus decimal.Decimal
}

// ContentKey identifies a row by its content, ignoring where in the sheet it
// came from. Two rows with the same key are the same settlement and must not
// both be executed.
func (r SettlementRow) ContentKey() string {
	return strings.Join([]string{
		r.ClientName,
		r.IoltaToOperating.String(),
		r.OperatingToMarketing.String(),
		r.OperatingToCashLoan.String(),
		r.OperatingToBuildingBonus.String(),
	}, "|")
}

// TransferOrder is one concrete from/to/amount/memo instruction derived from
// a settlement row. Orders are consumed immediately by the executor and never
// persisted.
type TransferOrder struct {
	FromLabel  string
	FromNumber string
	ToLabel    string
	ToNumber   string
	Amount     decimal.Decimal
	Memo       string
}
