package money_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fieldwork/internal/money"
)

func TestAmount_String(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{cents: 15000, want: "$150.00"},
		{cents: 11000, want: "$110.00"},
		{cents: 6000, want: "$60.00"},
		{cents: 2040, want: "$20.40"},
		{cents: 5, want: "$0.05"},
		{cents: 0, want: "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, money.FromCents(tt.cents).String())
		})
	}
}

func TestParse(t *testing.T) {
	a, err := money.Parse("19.99")
	require.NoError(t, err)
	assert.Equal(t, int64(1999), a.Cents())

	a, err = money.Parse("150")
	require.NoError(t, err)
	assert.Equal(t, int64(15000), a.Cents())

	_, err = money.Parse("1.001")
	assert.ErrorIs(t, err, money.ErrPrecision)

	_, err = money.Parse("abc")
	assert.Error(t, err)
}

func TestAmount_ApplyRate(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		rate  string
		want  int64
	}{
		{name: "TenPercent", cents: 13000, rate: "0.1", want: 1300},
		{name: "EightPercent", cents: 25500, rate: "0.08", want: 2040},
		{name: "Zero", cents: 10000, rate: "0", want: 0},
		{name: "RoundsHalfUp", cents: 1050, rate: "0.05", want: 53},
		{name: "RoundsDown", cents: 1001, rate: "0.07", want: 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := money.FromCents(tt.cents).ApplyRate(decimal.RequireFromString(tt.rate))
			assert.Equal(t, tt.want, got.Cents())
		})
	}
}

func TestAmount_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Total money.Amount `json:"total"`
	}{Total: money.FromCents(14300)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":143.00}`, string(b))

	var in struct {
		Amount money.Amount `json:"amount"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"amount":70}`), &in))
	assert.Equal(t, int64(7000), in.Amount.Cents())

	require.NoError(t, json.Unmarshal([]byte(`{"amount":"12.5"}`), &in))
	assert.Equal(t, int64(1250), in.Amount.Cents())

	assert.Error(t, json.Unmarshal([]byte(`{"amount":0.001}`), &in))
}

func TestAmount_Scan(t *testing.T) {
	var a money.Amount

	require.NoError(t, a.Scan(int64(4200)))
	assert.Equal(t, money.FromCents(4200), a)

	require.NoError(t, a.Scan([]byte("99")))
	assert.Equal(t, money.FromCents(99), a)

	assert.Error(t, a.Scan(1.5))
}

func TestRepeatedSubtractionReachesZero(t *testing.T) {
	balance := money.FromCents(11000)
	for _, p := range []string{"30", "40", "40"} {
		amt, err := money.Parse(p)
		require.NoError(t, err)

		balance -= amt
	}

	assert.Equal(t, money.Amount(0), balance)
}
