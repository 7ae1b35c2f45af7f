package transaction

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category tags what a transaction was for
type Category string

const (
	CategoryIncome        Category = "income"
	CategoryHousing       Category = "housing"
	CategoryUtilities     Category = "utilities"
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryEducation     Category = "education"
	CategoryShopping      Category = "shopping"
	CategoryPersonal      Category = "personal"
	CategoryDebt          Category = "debt"
	CategorySavings       Category = "savings"
	CategoryInvestment    Category = "investment"
	CategoryOther         Category = "other"

	// Screening-only tags, accepted so that fraud screening can see them
	CategoryGambling       Category = "gambling"
	CategoryAdult          Category = "adult"
	CategoryCryptocurrency Category = "cryptocurrency"
	CategoryWireTransfer   Category = "wire_transfer"
)

var knownCategories = map[Category]struct{}{
	CategoryIncome: {}, CategoryHousing: {}, CategoryUtilities: {}, CategoryFood: {},
	CategoryTransport: {}, CategoryEntertainment: {}, CategoryHealth: {}, CategoryEducation: {},
	CategoryShopping: {}, CategoryPersonal: {}, CategoryDebt: {}, CategorySavings: {},
	CategoryInvestment: {}, CategoryOther: {}, CategoryGambling: {}, CategoryAdult: {},
	CategoryCryptocurrency: {}, CategoryWireTransfer: {},
}

// IsValid checks if the category is one of the supported tags
func (c Category) IsValid() bool {
	_, ok := knownCategories[c]
	return ok
}

// Normalize lowercases and trims a category
func (c Category) Normalize() Category {
	return Category(strings.ToLower(strings.TrimSpace(string(c))))
}

// Transaction is a single money movement recorded by a user.
// Amount is signed: positive is an inflow, negative is an outflow.
type Transaction struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	UserID       uuid.UUID       `json:"user_id" db:"user_id"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	Category     Category        `json:"category" db:"category"`
	Description  *string         `json:"description,omitempty" db:"description"`
	Timestamp    time.Time       `json:"timestamp" db:"timestamp"`
	IsFraudulent bool            `json:"is_fraudulent" db:"is_fraudulent"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// IsInflow reports whether the transaction adds money
func (t *Transaction) IsInflow() bool {
	return t.Amount.IsPositive()
}

// IsOutflow reports whether the transaction removes money
func (t *Transaction) IsOutflow() bool {
	return t.Amount.IsNegative()
}

// ValidateCreate validates transaction fields for creation
func (t *Transaction) ValidateCreate() error {
	if t.UserID == uuid.Nil {
		return ErrInvalidUserID
	}

	t.Category = t.Category.Normalize()
	if !t.Category.IsValid() {
		return ErrInvalidCategory
	}

	if t.Amount.IsZero() {
		return ErrZeroAmount
	}

	if t.Description != nil && len(*t.Description) > 500 {
		return ErrDescriptionTooLong
	}

	return nil
}

// Update holds the fields of a partial transaction update
type Update struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Category    *Category        `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	Timestamp   *time.Time       `json:"timestamp,omitempty"`
}

// Apply copies the set fields onto t
func (u *Update) Apply(t *Transaction) {
	if u.Amount != nil {
		t.Amount = *u.Amount
	}
	if u.Category != nil {
		t.Category = u.Category.Normalize()
	}
	if u.Description != nil {
		t.Description = u.Description
	}
	if u.Timestamp != nil {
		t.Timestamp = u.Timestamp.UTC()
	}
}

// Filter narrows a transaction listing
type Filter struct {
	Category       *Category
	StartDate      *time.Time
	EndDate        *time.Time
	FraudulentOnly bool
	Limit          int
	Offset         int
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// Normalize clamps pagination to the supported range
func (f *Filter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// Period is a stats window
type Period string

const (
	PeriodAll   Period = "all"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Since returns the window start relative to now, nil for all time
func (p Period) Since(now time.Time) (*time.Time, error) {
	var start time.Time
	switch p {
	case PeriodAll, "":
		return nil, nil
	case PeriodWeek:
		start = now.AddDate(0, 0, -7)
	case PeriodMonth:
		start = now.AddDate(0, 0, -30)
	case PeriodYear:
		start = now.AddDate(0, 0, -365)
	default:
		return nil, ErrInvalidPeriod
	}
	return &start, nil
}
