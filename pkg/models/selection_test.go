package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func row(source int, name string, amount int64) SettlementRow {
	return SettlementRow{
		SourceRow:                source,
		ClientName:               name,
		IoltaToOperating:         decimal.NewFromInt(amount),
		OperatingToMarketing:     decimal.NewFromInt(amount),
		OperatingToCashLoan:      decimal.NewFromInt(amount),
		OperatingToBuildingBonus: decimal.NewFromInt(amount),
	}
}

func TestSelectionKeepsOrderAndDropsRepeatedSourceRows(t *testing.T) {
	sel := NewSelection(row(4, "b", 1), row(2, "a", 1), row(4, "b", 1))

	rows := sel.Rows()
	assert.Equal(t, 2, sel.Len())
	assert.Equal(t, 4, rows[0].SourceRow)
	assert.Equal(t, 2, rows[1].SourceRow)
}

func TestSelectionAppendMerges(t *testing.T) {
	sel := NewSelection(row(2, "a", 1))
	sel.Append(row(3, "b", 2), row(2, "a", 1))

	assert.Equal(t, 2, sel.Len())
	assert.Equal(t, []int{2, 3}, []int{sel.Rows()[0].SourceRow, sel.Rows()[1].SourceRow})
}

func TestDeduplicateCollapsesIdenticalContent(t *testing.T) {
	// Same settlement appearing twice in the sheet must only execute once.
	sel := NewSelection(row(2, "Jane Roe", 100), row(5, "Jane Roe", 100), row(6, "Jane Roe", 200))
	sel.Deduplicate()

	assert.Equal(t, 2, sel.Len())
	assert.Equal(t, 2, sel.Rows()[0].SourceRow)
	assert.Equal(t, 6, sel.Rows()[1].SourceRow)
}

func TestContentKeyDistinguishesAmounts(t *testing.T) {
	a := row(2, "Jane Roe", 100)
	b := row(2, "Jane Roe", 100)
	c := row(2, "Jane Roe", 101)

	assert.Equal(t, a.ContentKey(), b.ContentKey())
	assert.NotEqual(t, a.ContentKey(), c.ContentKey())
}
