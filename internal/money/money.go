// Package money represents currency amounts as whole cents so that balances
// can be compared for exact equality.
package money

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Amount is a currency amount in cents.
type Amount int64

var hundred = decimal.NewFromInt(100)

// ErrPrecision is returned when a value has more than two fractional digits.
var ErrPrecision = errors.New("amount has more than two decimal places")

func FromCents(cents int64) Amount {
	return Amount(cents)
}

// FromDecimal converts d to cents, rounding half away from zero.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount(d.Mul(hundred).Round(0).IntPart())
}

// Parse reads a plain decimal string such as "150" or "19.99".
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}

	return exact(d)
}

func exact(d decimal.Decimal) (Amount, error) {
	if !d.Equal(d.Round(2)) {
		return 0, ErrPrecision
	}

	return FromDecimal(d), nil
}

func (a Amount) Cents() int64 {
	return int64(a)
}

func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

// Times multiplies the amount by a whole quantity.
func (a Amount) Times(qty int64) Amount {
	return a * Amount(qty)
}

// ApplyRate returns a × rate rounded to the cent.
func (a Amount) ApplyRate(rate decimal.Decimal) Amount {
	return FromDecimal(a.Decimal().Mul(rate))
}

// String formats the amount for display, e.g. "$150.00".
func (a Amount) String() string {
	return "$" + a.Decimal().StringFixed(2)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal().StringFixed(2)), nil
}

// UnmarshalJSON accepts both JSON numbers and numeric strings.
func (a *Amount) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}

	v, err := exact(d)
	if err != nil {
		return err
	}

	*a = v

	return nil
}

func (a Amount) Value() (driver.Value, error) {
	return int64(a), nil
}

func (a *Amount) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*a = Amount(v)
	case int32:
		*a = Amount(v)
	case []byte:
		return a.scanString(string(v))
	case string:
		return a.scanString(v)
	case nil:
		*a = 0
	default:
		return fmt.Errorf("cannot scan %T into money.Amount", src)
	}

	return nil
}

func (a *Amount) scanString(s string) error {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("scanning amount: %w", err)
	}

	*a = Amount(n)

	return nil
}
