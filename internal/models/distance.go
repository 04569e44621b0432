package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Distance kilometers with 2 decimal places
type Distance struct {
	decimal.Decimal
}

// NewDistanceFromDecimal creates a distance from a decimal
func NewDistanceFromDecimal(km decimal.Decimal) Distance {
	return Distance{Decimal: km.Round(2)}
}

// NewDistanceFromFloat creates a distance from a float
func NewDistanceFromFloat(km float64) Distance {
	return Distance{Decimal: decimal.NewFromFloat(km).Round(2)}
}

// MarshalJSON always renders 2 decimal places
func (d Distance) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Decimal.Round(2).StringFixed(2))
}

// UnmarshalJSON accepts a string or a number
func (d *Distance) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		d.Decimal = parsed.Round(2)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	d.Decimal = decimal.NewFromFloat(f).Round(2)
	return nil
}

// Value for database writes
func (d Distance) Value() (driver.Value, error) {
	return d.Decimal.Round(2).Value()
}

// Scan for database reads
func (d *Distance) Scan(value interface{}) error {
	if err := d.Decimal.Scan(value); err != nil {
		return err
	}
	d.Decimal = d.Decimal.Round(2)
	return nil
}

// String returns the 2-decimal representation
func (d Distance) String() string {
	return d.Decimal.Round(2).StringFixed(2)
}
