package pricing

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeDistance  = errors.New("distance must not be negative")
	ErrNonFiniteDistance = errors.New("distance must be a finite number")
	ErrBelowMinimumFee   = errors.New("fee is below the minimum charge")
)

// Tariff delivery fee parameters
type Tariff struct {
	BaseFee       int64   // minimum charge in currency units
	RatePerKm     int64   // charge per kilometer
	RoundingStep  int64   // fees round up to a multiple of this
	DetourFactor  float64 // km added to straight-line distance
	MinDistanceKm float64 // floor applied after detour adjustment
}

// DefaultTariff returns the standard pharmacy tariff.
func DefaultTariff() Tariff {
	return Tariff{
		BaseFee:       1000,
		RatePerKm:     2500,
		RoundingStep:  500,
		DetourFactor:  0.3,
		MinDistanceKm: 1.0,
	}
}

// Calculator converts between distances and delivery fees under a tariff.
type Calculator struct {
	tariff Tariff
}

// NewCalculator builds a calculator, falling back to defaults for
// non-positive tariff fields.
func NewCalculator(tariff Tariff) *Calculator {
	defaults := DefaultTariff()
	if tariff.BaseFee <= 0 {
		tariff.BaseFee = defaults.BaseFee
	}
	if tariff.RatePerKm <= 0 {
		tariff.RatePerKm = defaults.RatePerKm
	}
	if tariff.RoundingStep <= 0 {
		tariff.RoundingStep = defaults.RoundingStep
	}
	if tariff.DetourFactor <= 0 {
		tariff.DetourFactor = defaults.DetourFactor
	}
	if tariff.MinDistanceKm <= 0 {
		tariff.MinDistanceKm = defaults.MinDistanceKm
	}
	return &Calculator{tariff: tariff}
}

// Tariff returns the active tariff.
func (c *Calculator) Tariff() Tariff {
	return c.tariff
}

// FeeForDistance returns the charge for a distance in km, rounded up to
// the tariff's step. A zero distance still pays the base fee.
func (c *Calculator) FeeForDistance(km decimal.Decimal) (int64, error) {
	if km.IsNegative() {
		return 0, ErrNegativeDistance
	}
	step := decimal.NewFromInt(c.tariff.RoundingStep)
	raw := km.Mul(decimal.NewFromInt(c.tariff.RatePerKm)).
		Add(decimal.NewFromInt(c.tariff.BaseFee))
	return raw.Div(step).Ceil().Mul(step).IntPart(), nil
}

// DistanceForFee inverts the linear part of the tariff: the distance at
// which the unrounded charge equals the given fee, to 2 decimals.
func (c *Calculator) DistanceForFee(fee int64) (decimal.Decimal, error) {
	if fee < c.tariff.BaseFee {
		return decimal.Zero, ErrBelowMinimumFee
	}
	return decimal.NewFromInt(fee - c.tariff.BaseFee).
		Div(decimal.NewFromInt(c.tariff.RatePerKm)).
		Round(2), nil
}

// NormalizeMeters converts a straight-line distance in meters to a billable
// distance in km: detour factor added, minimum floor applied, 2 decimals.
// decimal.NewFromFloat panics on non-finite input, so meters is validated
// before conversion.
func (c *Calculator) NormalizeMeters(meters float64) (decimal.Decimal, error) {
	if math.IsNaN(meters) || math.IsInf(meters, 0) {
		return decimal.Zero, ErrNonFiniteDistance
	}
	if meters < 0 {
		return decimal.Zero, ErrNegativeDistance
	}
	km := decimal.NewFromFloat(meters).
		Div(decimal.NewFromInt(1000)).
		Add(decimal.NewFromFloat(c.tariff.DetourFactor))
	floor := decimal.NewFromFloat(c.tariff.MinDistanceKm)
	if km.LessThan(floor) {
		km = floor
	}
	return km.Round(2), nil
}
