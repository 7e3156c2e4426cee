// Package transfer drives the bank website through the fixed
// navigate→fill→submit→confirm cycle for each transfer order.
package transfer

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/settleops/disburse/pkg/browser"
	"github.com/settleops/disburse/pkg/config"
	"github.com/settleops/disburse/pkg/models"
	"github.com/settleops/disburse/pkg/plan"
	"github.com/settleops/disburse/pkg/prompt"
)

// Element ids on the bank site.
const (
	idUsernameField   = "username-field"
	idPasswordField   = "password-field"
	idFromAccountList = "from-account-list"
	idToAccountList   = "to-account-list"
	idAmountField     = "amount"
	idMemoField       = "memo"
	idNextButton      = "btn-next"
	idSubmitButton    = "btn-submit"
)

// LoginError means the browser did not land on the accounts page after
// submitting credentials. Fatal: wrong credentials will not self-correct.
type LoginError struct {
	Location string
}

func (e *LoginError) Error() string {
	return fmt.Sprintf("failed to login, landed on %q; check that username and password were entered correctly", e.Location)
}

// Executor replays the transfer workflow against one browser session. The run
// is strictly sequential: rows in selection order, each row's four orders in
// planner order, one page cycle per order.
type Executor struct {
	logger  *log.Logger
	cfg     *config.Config
	session browser.Session
	prompts *prompt.Reader
	planner *plan.Planner
	pacer   *browser.Pacer
	waiter  browser.Waiter
}

// New wires an executor over the given session. The caller owns the session
// and is responsible for closing it whether or not Run succeeds.
func New(logger *log.Logger, cfg *config.Config, session browser.Session, prompts *prompt.Reader) *Executor {
	return &Executor{
		logger:  logger,
		cfg:     cfg,
		session: session,
		prompts: prompts,
		planner: plan.New(cfg.Accounts),
		pacer:   browser.NewPacer(cfg.PaceMin, cfg.PaceMax, cfg.SpeedFactor),
		waiter:  browser.Waiter{Interval: cfg.PollInterval, MaxAttempts: cfg.PollMaxAttempts},
	}
}

// Run logs in and executes every transfer order for every selected row. Any
// error aborts the whole run; nothing is retried at this level.
func (e *Executor) Run(selection *models.Selection) error {
	if err := e.session.Navigate(e.cfg.HomeURL()); err != nil {
		return err
	}
	if err := e.waiter.Await(e.session, e.cfg.HomeURL()); err != nil {
		return err
	}
	e.pacer.Pause()

	if err := e.login(); err != nil {
		return err
	}
	e.pacer.Pause()

	if err := e.navigateToTransfers(); err != nil {
		return err
	}

	for _, row := range selection.Rows() {
		e.logger.Info("executing transfers", "client", row.ClientName, "row", row.SourceRow)
		for i, order := range e.planner.Plan(row) {
			e.logger.Debug("executing order",
				"leg", i+1,
				"from", order.FromLabel,
				"to", order.ToLabel,
				"amount", order.Amount.String(),
			)
			if err := e.executeOrder(order); err != nil {
				return fmt.Errorf("row %d (%s), leg %s to %s: %w",
					row.SourceRow, row.ClientName, order.FromLabel, order.ToLabel, err)
			}
		}
	}
	return nil
}

// login collects credentials interactively, submits them, and verifies the
// browser landed on the accounts page.
func (e *Executor) login() error {
	if err := e.session.Clear(idUsernameField); err != nil {
		return fmt.Errorf("unable to load main page: %w", err)
	}
	user, err := e.prompts.Line("Enter Username:")
	if err != nil {
		return err
	}
	e.pacer.Pause()
	if err := e.session.SendText(idUsernameField, user); err != nil {
		return err
	}
	e.pacer.Pause()

	if err := e.session.Clear(idPasswordField); err != nil {
		return err
	}
	password, err := e.prompts.Password("Enter Password:")
	if err != nil {
		return err
	}
	e.pacer.Pause()
	if err := e.session.SendText(idPasswordField, password); err != nil {
		return err
	}
	if err := e.session.SendEnter(idPasswordField); err != nil {
		return err
	}

	if err := e.waiter.Await(e.session, e.cfg.AccountsURL()); err != nil {
		loc, locErr := e.session.Location()
		if locErr != nil {
			loc = "unknown"
		}
		return &LoginError{Location: loc}
	}
	return nil
}

// navigateToTransfers reaches the transfers page from the accounts page the
// way an operator does: three tabs, arrow down, enter.
func (e *Executor) navigateToTransfers() error {
	return e.session.SendKeys(
		browser.KeyTab,
		browser.KeyTab,
		browser.KeyTab,
		browser.KeyDown,
		browser.KeyEnter,
	)
}

// executeOrder runs one full form cycle: land on the transfer page, fill the
// form, review, submit, and return via "make another transfer".
func (e *Executor) executeOrder(order models.TransferOrder) error {
	if err := e.waiter.Await(e.session, e.cfg.TransfersURL()); err != nil {
		return err
	}
	e.pacer.Pause()

	if err := e.fillForm(order); err != nil {
		return err
	}

	if err := e.session.Click(idNextButton); err != nil {
		return err
	}
	if err := e.waiter.Await(e.session, e.cfg.TransfersVerifyURL()); err != nil {
		return err
	}
	e.pacer.Pause()

	if err := e.session.Click(idSubmitButton); err != nil {
		return fmt.Errorf("unable to load confirmation page: %w", err)
	}
	if err := e.waiter.Await(e.session, e.cfg.TransfersConfirmURL()); err != nil {
		return err
	}
	e.pacer.Pause()

	// Same id as the submit button; this one returns to the transfer form.
	if err := e.session.Click(idSubmitButton); err != nil {
		return fmt.Errorf("unable to load completion page: %w", err)
	}
	return nil
}

func (e *Executor) fillForm(order models.TransferOrder) error {
	if err := e.session.Click(idFromAccountList); err != nil {
		return fmt.Errorf("unable to load transfers page: %w", err)
	}
	e.pacer.Pause()
	if err := e.session.ClickByText(order.FromNumber); err != nil {
		return err
	}
	e.pacer.Pause()

	if err := e.session.Click(idToAccountList); err != nil {
		return err
	}
	e.pacer.Pause()
	if err := e.session.ClickByText(order.ToNumber); err != nil {
		return err
	}
	e.pacer.Pause()

	if err := e.session.SendText(idAmountField, order.Amount.String()); err != nil {
		return err
	}
	e.pacer.Pause()

	if err := e.session.SendText(idMemoField, order.Memo); err != nil {
		return err
	}
	e.pacer.Pause()
	return nil
}
