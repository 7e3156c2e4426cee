package sheet

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/settleops/disburse/pkg/models"
)

// Required column headers, matching the settlement spreadsheet the firm
// maintains. A row missing a value in any of these is not eligible for
// transfer.
const (
	ColName             = "NAME"
	ColIoltaToOperating = "IOLTA to Business"
	ColMarketing        = "MKT ACCT"
	ColCashLoan         = "CASH'S LOAN"
	ColBuildingBonus    = "BUILDING BONUS"
)

// RequiredColumns lists the headers that must exist for transfers to run.
var RequiredColumns = []string{
	ColName,
	ColIoltaToOperating,
	ColMarketing,
	ColCashLoan,
	ColBuildingBonus,
}

// SchemaError reports required columns absent from the selected sheet.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("columns missing from the spreadsheet: %s", strings.Join(e.Missing, ", "))
}

// RowUnavailableError reports requested spreadsheet row numbers that are not
// eligible for transfer (out of range, or dropped for blank required fields).
type RowUnavailableError struct {
	Numbers []int
}

func (e *RowUnavailableError) Error() string {
	parts := make([]string, len(e.Numbers))
	for i, n := range e.Numbers {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("row unavailable for transfer: %s", strings.Join(parts, ", "))
}

// Table holds the eligible settlement rows of one sheet, keyed by their
// original 1-based spreadsheet row numbers.
type Table struct {
	rows   []models.SettlementRow
	byRow  map[int]models.SettlementRow
	logger *log.Logger
}

// Load reads the named sheet from the workbook and builds a table: header
// whitespace is trimmed, fully-empty columns are ignored, and rows with any
// required field blank or unparseable are dropped. Returns a SchemaError when
// a required column is not present at all.
func Load(wb *Workbook, sheetName string, logger *log.Logger) (*Table, error) {
	raw, err := wb.Rows(sheetName)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheetName)
	}

	colIndex := headerIndex(raw)
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := colIndex[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	t := &Table{byRow: make(map[int]models.SettlementRow), logger: logger}
	for i, cells := range raw[1:] {
		// Header occupies spreadsheet row 1, so data row i is row i+2.
		rowNum := i + 2
		row, err := parseRow(rowNum, cells, colIndex)
		if err != nil {
			logger.Debug("skipping row", "row", rowNum, "error", err)
			continue
		}
		t.rows = append(t.rows, row)
		t.byRow[rowNum] = row
	}
	return t, nil
}

// headerIndex maps trimmed header names to column positions, skipping columns
// whose cells are empty all the way down.
func headerIndex(raw [][]string) map[string]int {
	index := make(map[string]int)
	for ci, name := range raw[0] {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		empty := true
		for _, cells := range raw[1:] {
			if ci < len(cells) && strings.TrimSpace(cells[ci]) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}
		index[name] = ci
	}
	return index
}

func parseRow(rowNum int, cells []string, colIndex map[string]int) (models.SettlementRow, error) {
	cell := func(col string) string {
		ci := colIndex[col]
		if ci >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[ci])
	}

	name := cell(ColName)
	if name == "" {
		return models.SettlementRow{}, fmt.Errorf("blank %s", ColName)
	}

	row := models.SettlementRow{SourceRow: rowNum, ClientName: name}
	for _, f := range []struct {
		col string
		dst *decimal.Decimal
	}{
		{ColIoltaToOperating, &row.IoltaToOperating},
		{ColMarketing, &row.OperatingToMarketing},
		{ColCashLoan, &row.OperatingToCashLoan},
		{ColBuildingBonus, &row.OperatingToBuildingBonus},
	} {
		amount, err := parseAmount(cell(f.col))
		if err != nil {
			return models.SettlementRow{}, fmt.Errorf("column %s: %w", f.col, err)
		}
		*f.dst = amount
	}
	return row, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("blank amount")
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("bad amount %q: %w", s, err)
	}
	return d, nil
}

// Rows returns every eligible row in sheet order.
func (t *Table) Rows() []models.SettlementRow {
	return t.rows
}

// RowsByNumber resolves 1-based spreadsheet row numbers to settlement rows,
// preserving the requested order. All unavailable numbers are reported
// together in a RowUnavailableError.
func (t *Table) RowsByNumber(numbers []int) ([]models.SettlementRow, error) {
	var rows []models.SettlementRow
	var unavailable []int
	for _, n := range numbers {
		row, ok := t.byRow[n]
		if !ok {
			unavailable = append(unavailable, n)
			continue
		}
		rows = append(rows, row)
	}
	if len(unavailable) > 0 {
		return nil, &RowUnavailableError{Numbers: unavailable}
	}
	return rows, nil
}
