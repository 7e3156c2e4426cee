// Package selection runs the operator conversation that picks which
// settlement rows to execute transfers for.
package selection

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/settleops/disburse/pkg/models"
	"github.com/settleops/disburse/pkg/prompt"
	"github.com/settleops/disburse/pkg/sheet"
)

// Selector builds a confirmed selection from a loaded table. Unavailable row
// numbers and rejected confirmations loop back to the operator instead of
// failing the run.
type Selector struct {
	logger  *log.Logger
	table   *sheet.Table
	prompts *prompt.Reader
	out     io.Writer
}

// New builds a selector over the given table.
func New(logger *log.Logger, table *sheet.Table, prompts *prompt.Reader, out io.Writer) *Selector {
	return &Selector{logger: logger, table: table, prompts: prompts, out: out}
}

// Select asks for row numbers until the operator confirms a set or gives up.
// Giving up returns an empty selection, not an error.
func (s *Selector) Select() (*models.Selection, error) {
	for {
		numbers, err := s.prompts.RowNumbers("Which row numbers would you like to perform a transfer for?")
		if err != nil {
			return nil, err
		}

		rows, err := s.table.RowsByNumber(numbers)
		if err != nil {
			var unavailable *sheet.RowUnavailableError
			if !errors.As(err, &unavailable) {
				return nil, err
			}
			s.logger.Debug("rows unavailable", "rows", unavailable.Numbers)
			fmt.Fprintf(s.out, "Row unavailable for transfer. Please ensure that the following required columns are filled out:\n%v\n", sheet.RequiredColumns)
			continue
		}

		fmt.Fprintln(s.out, Render(rows))
		confirmed, err := s.prompts.YesNo("Are these the correct rows? (yes/no)")
		if err != nil {
			return nil, err
		}
		if confirmed {
			return models.NewSelection(rows...), nil
		}

		again, err := s.prompts.YesNo("Would you like to try inputting the rows again? (yes/no)")
		if err != nil {
			return nil, err
		}
		if !again {
			fmt.Fprintln(s.out, "No rows selected")
			return models.NewSelection(), nil
		}
	}
}

// Append runs another selection pass and merges the result into sel after a
// final confirmation.
func (s *Selector) Append(sel *models.Selection) error {
	more, err := s.Select()
	if err != nil {
		return err
	}
	if more.Len() == 0 {
		fmt.Fprintln(s.out, "No additional settlements added")
		return nil
	}

	fmt.Fprintln(s.out, Render(more.Rows()))
	confirmed, err := s.prompts.YesNo("Would you like to add these rows to the transfer operation? (yes/no)")
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(s.out, "No additional settlements added")
		return nil
	}
	sel.Append(more.Rows()...)
	return nil
}
