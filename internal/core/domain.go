package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Expense  TxType = "expense"
	Income   TxType = "income"
	Transfer TxType = "transfer"
)

const (
	Credit  AccountType = "credit"
	Debit   AccountType = "debit"
	Cash    AccountType = "cash"
	Account AccountType = "account"
)

// SettingsKey is the fixed key of the settings singleton row.
const SettingsKey = "settings"

type (
	TxType      string
	AccountType string

	// Transaction is a single ledger entry. Amount is the entered-currency
	// magnitude; direction is carried by Type, not by sign. AmountBase is a
	// snapshot taken at save time and is not re-derived if fx rates change.
	Transaction struct {
		ID            int64   `json:"id,omitempty"`
		Date          string  `json:"date"` // YYYY-MM-DD, lexicographically sortable
		Description   string  `json:"description"`
		Amount        float64 `json:"amount"`
		Currency      string  `json:"currency"`
		FxToBase      float64 `json:"fxToBase"`
		AmountBase    float64 `json:"amountBase"`
		Type          TxType  `json:"type"`
		CategoryID    int64   `json:"categoryId,omitempty"`
		SubcategoryID int64   `json:"subcategoryId,omitempty"`
		AccountID     int64   `json:"accountId,omitempty"`
		Notes         string  `json:"notes,omitempty"`
	}

	// Category is a single-level grouping. ParentID is reserved: it is stored
	// and round-tripped but never read anywhere.
	Category struct {
		ID       int64  `json:"id,omitempty"`
		Name     string `json:"name"`
		ParentID int64  `json:"parentId,omitempty"`
	}

	Subcategory struct {
		ID         int64  `json:"id,omitempty"`
		Name       string `json:"name"`
		CategoryID int64  `json:"categoryId"`
	}

	// BankAccount is a payment method (the UI calls these accounts).
	BankAccount struct {
		ID    int64       `json:"id,omitempty"`
		Name  string      `json:"name"`
		Type  AccountType `json:"type"`
		Last4 string      `json:"last4,omitempty"`
	}

	// Budget is a monthly spending ceiling for a category, in base currency.
	Budget struct {
		ID         int64   `json:"id,omitempty"`
		Month      string  `json:"month"` // YYYY-MM
		CategoryID int64   `json:"categoryId"`
		AmountBase float64 `json:"amountBase"`
	}

	// Settings is the singleton configuration row. FX maps a currency code to
	// its multiplier into the base currency.
	Settings struct {
		Key          string             `json:"key"`
		BaseCurrency string             `json:"baseCurrency"`
		FX           map[string]float64 `json:"fx"`
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date, want YYYY-MM-DD")
	ErrInvalidMonth     = errors.New("invalid month, want YYYY-MM")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidFx        = errors.New("fx multiplier must be positive")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyName        = errors.New("empty name")
	ErrMissingCategory  = errors.New("missing category")
	ErrBudgetExists     = errors.New("budget already exists for this category and month")
)

// ValidDate reports whether s is a real calendar day in YYYY-MM-DD form.
func ValidDate(s string) bool {
	if len(s) != 10 {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidMonth reports whether s is a YYYY-MM month key.
func ValidMonth(s string) bool {
	if len(s) != 7 {
		return false
	}
	_, err := time.Parse("2006-01", s)
	return err == nil
}

// MonthKey returns the YYYY-MM prefix of a date or timestamp string.
func MonthKey(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// CurrentMonth returns the current calendar month as YYYY-MM.
func CurrentMonth() string {
	return time.Now().UTC().Format("2006-01")
}

// Today returns the current calendar day as YYYY-MM-DD.
func Today() string {
	return time.Now().UTC().Format("2006-01-02")
}

func (t TxType) Valid() bool {
	switch t {
	case Expense, Income, Transfer:
		return true
	}
	return false
}

func (a AccountType) Valid() bool {
	switch a {
	case Credit, Debit, Cash, Account:
		return true
	}
	return false
}

func (t Transaction) Validate() error {
	if !ValidDate(t.Date) {
		return ErrInvalidDate
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if t.Amount == 0 {
		return ErrInvalidAmount
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if t.FxToBase <= 0 {
		return ErrInvalidFx
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (s Subcategory) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if s.CategoryID == 0 {
		return ErrMissingCategory
	}
	return nil
}

func (a BankAccount) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if !a.Type.Valid() {
		return errors.New("invalid account type")
	}
	return nil
}

func (b Budget) Validate() error {
	if !ValidMonth(b.Month) {
		return ErrInvalidMonth
	}
	if b.CategoryID == 0 {
		return ErrMissingCategory
	}
	if b.AmountBase < 0 {
		return ErrInvalidAmount
	}
	return nil
}
