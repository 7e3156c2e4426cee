package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"
)

// Account is one bank account involved in a transfer leg.
type Account struct {
	Label  string `yaml:"label"`
	Number string `yaml:"number"`
}

// Accounts holds the four fixed accounts the transfer legs move money between.
type Accounts struct {
	Iolta     Account `yaml:"iolta"`
	Operating Account `yaml:"operating"`
	Marketing Account `yaml:"marketing"`
	CashLoan  Account `yaml:"cash_loan"`
	Building  Account `yaml:"building"`
}

// Config carries everything the tool needs that is not in the spreadsheet:
// account numbers, the bank site, the browser binary, and pacing knobs.
type Config struct {
	BaseURL     string
	DriverPath  string
	SpeedFactor float64

	PaceMin time.Duration
	PaceMax time.Duration

	PollInterval    time.Duration
	PollMaxAttempts int

	Accounts Accounts
}

type accountsFile struct {
	Accounts Accounts `yaml:"accounts"`
}

// Build assembles configuration from, in increasing precedence: defaults, an
// optional YAML accounts file, a local .env file, environment variables
// (DISBURSE_ prefix), and command-line flags.
func Build(accountsPath string, flags *pflag.FlagSet) (*Config, error) {
	// A missing .env is fine; explicit env vars still apply.
	_ = gotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("disburse")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_url", "https://www.frostbank.com")
	v.SetDefault("driver_path", "")
	v.SetDefault("speed_factor", 1.0)
	v.SetDefault("pace_min_seconds", 2.0)
	v.SetDefault("pace_max_seconds", 5.0)
	v.SetDefault("poll_interval_seconds", 1.5)
	v.SetDefault("poll_max_attempts", 10)

	v.SetDefault("iolta_label", "Iolta")
	v.SetDefault("iolta_number", "")
	v.SetDefault("operating_label", "Operating")
	v.SetDefault("operating_number", "")
	v.SetDefault("marketing_label", "Marketing")
	v.SetDefault("marketing_number", "")
	v.SetDefault("cash_loan_label", "Cash Loan Repayment Fund")
	v.SetDefault("cash_loan_number", "")
	v.SetDefault("building_label", "Building")
	v.SetDefault("building_number", "")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	cfg := &Config{
		BaseURL:         strings.TrimRight(v.GetString("base_url"), "/"),
		DriverPath:      v.GetString("driver_path"),
		SpeedFactor:     v.GetFloat64("speed_factor"),
		PaceMin:         secondsToDuration(v.GetFloat64("pace_min_seconds")),
		PaceMax:         secondsToDuration(v.GetFloat64("pace_max_seconds")),
		PollInterval:    secondsToDuration(v.GetFloat64("poll_interval_seconds")),
		PollMaxAttempts: v.GetInt("poll_max_attempts"),
		Accounts: Accounts{
			Iolta:     Account{Label: v.GetString("iolta_label"), Number: v.GetString("iolta_number")},
			Operating: Account{Label: v.GetString("operating_label"), Number: v.GetString("operating_number")},
			Marketing: Account{Label: v.GetString("marketing_label"), Number: v.GetString("marketing_number")},
			CashLoan:  Account{Label: v.GetString("cash_loan_label"), Number: v.GetString("cash_loan_number")},
			Building:  Account{Label: v.GetString("building_label"), Number: v.GetString("building_number")},
		},
	}

	if accountsPath != "" {
		if err := cfg.loadAccountsFile(accountsPath); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadAccountsFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading accounts file: %w", err)
	}
	var f accountsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing accounts file: %w", err)
	}
	merge := func(dst *Account, src Account) {
		if src.Label != "" {
			dst.Label = src.Label
		}
		if src.Number != "" {
			dst.Number = src.Number
		}
	}
	merge(&c.Accounts.Iolta, f.Accounts.Iolta)
	merge(&c.Accounts.Operating, f.Accounts.Operating)
	merge(&c.Accounts.Marketing, f.Accounts.Marketing)
	merge(&c.Accounts.CashLoan, f.Accounts.CashLoan)
	merge(&c.Accounts.Building, f.Accounts.Building)
	return nil
}

func (c *Config) validate() error {
	var missing []string
	for _, a := range []struct {
		name string
		acct Account
	}{
		{"iolta", c.Accounts.Iolta},
		{"operating", c.Accounts.Operating},
		{"marketing", c.Accounts.Marketing},
		{"cash_loan", c.Accounts.CashLoan},
		{"building", c.Accounts.Building},
	} {
		if a.acct.Number == "" {
			missing = append(missing, a.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing account numbers for: %s (set DISBURSE_<NAME>_NUMBER or use an accounts file)", strings.Join(missing, ", "))
	}
	if c.SpeedFactor <= 0 {
		return fmt.Errorf("speed factor must be positive, got %v", c.SpeedFactor)
	}
	if c.PaceMax < c.PaceMin {
		return fmt.Errorf("pacing window inverted: min %v > max %v", c.PaceMin, c.PaceMax)
	}
	if c.PollMaxAttempts < 1 {
		return fmt.Errorf("poll max attempts must be at least 1, got %d", c.PollMaxAttempts)
	}
	return nil
}

// HomeURL is the bank landing page where login happens.
func (c *Config) HomeURL() string { return c.BaseURL + "/" }

// AccountsURL is the page the bank lands on after a successful login.
func (c *Config) AccountsURL() string { return c.BaseURL + "/mf/accounts/main" }

// TransfersURL is the transfer form page.
func (c *Config) TransfersURL() string { return c.BaseURL + "/mf/transfers/main" }

// TransfersVerifyURL is the review page shown after submitting the form.
func (c *Config) TransfersVerifyURL() string { return c.BaseURL + "/mf/transfers/verify" }

// TransfersConfirmURL is the page confirming a completed transfer.
func (c *Config) TransfersConfirmURL() string { return c.BaseURL + "/mf/transfers/confirm" }

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
