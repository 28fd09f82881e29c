package amount

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount occurs when a value does not parse as a decimal or
	// is negative.
	ErrInvalidAmount = errors.New("Invalid amount")

	// ErrAmountOutOfRange occurs when a transfer amount is outside the
	// permitted [1, 1e32) range.
	ErrAmountOutOfRange = errors.New("Amount out of range")

	// ErrNegativeResult occurs when a subtraction would produce a negative
	// balance.
	ErrNegativeResult = errors.New("Negative amount result")
)

// Transfer amounts must satisfy 1 <= amount < 1e32.
var (
	transferMin = decimal.New(1, 0)
	transferMax = decimal.New(1, 32)
)

// Amount is an exact, non-negative decimal value. Balances and transfer
// quantities are never represented in binary floating point.
type Amount struct {
	value decimal.Decimal
}

// Zero returns the zero amount.
func Zero() Amount {
	return Amount{}
}

// Parse returns the amount represented by a decimal string. Negative and
// unparseable values are rejected.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, errors.Wrap(ErrInvalidAmount, s)
	}
	if d.Sign() < 0 {
		return Amount{}, errors.Wrap(ErrInvalidAmount, s)
	}

	return Amount{value: d}, nil
}

// ParseTransfer parses a transfer quantity, enforcing the 1 <= amount < 1e32
// bound on top of Parse.
func ParseTransfer(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, errors.Wrap(ErrInvalidAmount, s)
	}
	if d.Cmp(transferMin) < 0 || d.Cmp(transferMax) >= 0 {
		return Amount{}, errors.Wrap(ErrAmountOutOfRange, s)
	}

	return Amount{value: d}, nil
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{value: a.value.Add(b.value)}
}

// Sub returns a - b, or ErrNegativeResult if b exceeds a.
func (a Amount) Sub(b Amount) (Amount, error) {
	result := a.value.Sub(b.value)
	if result.Sign() < 0 {
		return Amount{}, ErrNegativeResult
	}

	return Amount{value: result}, nil
}

// Cmp compares two amounts, returning -1, 0 or 1.
func (a Amount) Cmp(b Amount) int {
	return a.value.Cmp(b.value)
}

// LessThan returns true when a < b.
func (a Amount) LessThan(b Amount) bool {
	return a.value.Cmp(b.value) < 0
}

// IsZero returns true for the zero amount.
func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

// Equal returns true when the two amounts have the same value.
func (a Amount) Equal(b Amount) bool {
	return a.value.Cmp(b.value) == 0
}

func (a Amount) String() string {
	return a.value.String()
}

// MarshalJSON encodes the amount as a quoted decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte("\"" + a.value.String() + "\""), nil
}

// UnmarshalJSON decodes a quoted decimal string, rejecting negatives.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	parsed, err := Parse(s)
	if err != nil {
		return err
	}

	*a = parsed
	return nil
}
