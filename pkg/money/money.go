package money

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cents is a money amount in minor currency units. All arithmetic in the
// system happens on Cents; floats only appear at parse and display boundaries.
type Cents int64

// FromFloat converts a decimal amount to cents, rounding half away from zero.
// 19.995 becomes 2000, not 1999.
func FromFloat(f float64) Cents {
	return Cents(math.Round(f * 100))
}

// Parse converts a user-typed decimal string ("20", "19.99", "19.995") to cents.
func Parse(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("money: empty amount")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("money: invalid amount %q", s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("money: invalid amount %q", s)
	}
	return FromFloat(f), nil
}

// ApplyPercent returns round(c * pct / 100), half away from zero.
func ApplyPercent(c Cents, pct float64) Cents {
	return Cents(math.Round(float64(c) * pct / 100))
}

// Float64 returns the decimal value of the amount.
func (c Cents) Float64() float64 {
	return float64(c) / 100
}

// String formats the amount with exactly two decimal places.
func (c Cents) String() string {
	return fmt.Sprintf("%.2f", c.Float64())
}

// MarshalJSON emits the decimal value so API responses carry "33.08",
// never raw cent counts.
func (c Cents) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Float64())
}

// UnmarshalJSON accepts a decimal number and stores it as cents.
func (c *Cents) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*c = FromFloat(f)
	return nil
}
