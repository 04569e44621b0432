package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFeeForDistanceRoundsUpToStep(t *testing.T) {
	calc := NewCalculator(DefaultTariff())

	cases := []struct {
		km   string
		want int64
	}{
		{"0", 1000},
		{"0.08", 1500},
		{"1", 3500},
		{"1.2", 4000},
		{"2.5", 7500},
		{"3.33", 9500},
	}
	for _, tc := range cases {
		km, err := decimal.NewFromString(tc.km)
		if err != nil {
			t.Fatalf("parse %s: %v", tc.km, err)
		}
		got, err := calc.FeeForDistance(km)
		if err != nil {
			t.Fatalf("fee for %s km failed: %v", tc.km, err)
		}
		if got != tc.want {
			t.Fatalf("fee for %s km: expected %d, got %d", tc.km, tc.want, got)
		}
	}
}

func TestFeeForDistanceRejectsNegative(t *testing.T) {
	calc := NewCalculator(DefaultTariff())
	if _, err := calc.FeeForDistance(decimal.NewFromFloat(-0.5)); !errors.Is(err, ErrNegativeDistance) {
		t.Fatalf("expected ErrNegativeDistance, got %v", err)
	}
}

func TestDistanceForFeeInvertsLinearPart(t *testing.T) {
	calc := NewCalculator(DefaultTariff())

	cases := []struct {
		fee  int64
		want string
	}{
		{1000, "0"},
		{1200, "0.08"},
		{3500, "1"},
		{7500, "2.6"},
	}
	for _, tc := range cases {
		got, err := calc.DistanceForFee(tc.fee)
		if err != nil {
			t.Fatalf("distance for fee %d failed: %v", tc.fee, err)
		}
		want, _ := decimal.NewFromString(tc.want)
		if !got.Equal(want) {
			t.Fatalf("distance for fee %d: expected %s, got %s", tc.fee, want, got)
		}
	}
}

func TestDistanceForFeeBelowMinimum(t *testing.T) {
	calc := NewCalculator(DefaultTariff())
	if _, err := calc.DistanceForFee(999); !errors.Is(err, ErrBelowMinimumFee) {
		t.Fatalf("expected ErrBelowMinimumFee, got %v", err)
	}
}

// Recomputing the fee from a derived distance does not have to reproduce the
// original fee: rounding to the tariff step loses information.
func TestFeeDistanceRoundTripNotIdentity(t *testing.T) {
	calc := NewCalculator(DefaultTariff())

	km, err := calc.DistanceForFee(1200)
	if err != nil {
		t.Fatalf("distance for fee failed: %v", err)
	}
	fee, err := calc.FeeForDistance(km)
	if err != nil {
		t.Fatalf("fee for distance failed: %v", err)
	}
	if fee != 1500 {
		t.Fatalf("expected recomputed fee 1500, got %d", fee)
	}
}

func TestNormalizeMetersAppliesDetourAndFloor(t *testing.T) {
	calc := NewCalculator(DefaultTariff())

	cases := []struct {
		meters float64
		want   string
	}{
		{100, "1"},    // 0.1 + 0.3 under floor
		{700, "1"},    // exactly at floor
		{701, "1"},    // rounds to floor
		{1200, "1.5"}, // 1.2 + 0.3
		{4875, "5.18"},
	}
	for _, tc := range cases {
		got, err := calc.NormalizeMeters(tc.meters)
		if err != nil {
			t.Fatalf("normalize %v m failed: %v", tc.meters, err)
		}
		want, _ := decimal.NewFromString(tc.want)
		if !got.Equal(want) {
			t.Fatalf("normalize %v m: expected %s, got %s", tc.meters, want, got)
		}
	}
}

func TestNormalizeMetersRejectsInvalidInput(t *testing.T) {
	calc := NewCalculator(DefaultTariff())

	cases := []struct {
		name    string
		meters  float64
		wantErr error
	}{
		{"nan", math.NaN(), ErrNonFiniteDistance},
		{"positive infinity", math.Inf(1), ErrNonFiniteDistance},
		{"negative infinity", math.Inf(-1), ErrNonFiniteDistance},
		{"negative", -250, ErrNegativeDistance},
	}
	for _, tc := range cases {
		if _, err := calc.NormalizeMeters(tc.meters); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestNewCalculatorFillsZeroTariffFields(t *testing.T) {
	calc := NewCalculator(Tariff{})
	if calc.Tariff() != DefaultTariff() {
		t.Fatalf("expected default tariff, got %+v", calc.Tariff())
	}
}
