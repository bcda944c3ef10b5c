package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidAmount is returned when a monetary value cannot be parsed.
var ErrInvalidAmount = errors.New("invalid amount")

// Money is an amount of currency stored as integer cents.
// It is encoded in JSON as a decimal number with two fractional digits.
type Money int64

// Cents builds a Money value from a count of cents.
func Cents(c int64) Money {
	return Money(c)
}

// Float returns the amount in currency units.
func (m Money) Float() float64 {
	return float64(m) / 100
}

// String formats the amount as a plain decimal, e.g. "49.99" or "-0.50".
func (m Money) String() string {
	c := int64(m)
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// MarshalJSON encodes the amount as a JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := string(data)
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(data, &s); err != nil {
			return ErrInvalidAmount
		}
	}
	c, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = c
	return nil
}

// ParseMoney converts a decimal string to Money, rounding half-up on the
// third fractional digit. Exponent notation is accepted for JSON numbers.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.ContainsAny(s, "eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, ErrInvalidAmount
		}
		return moneyFromFloat(f)
	}

	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" {
		intPart = "0"
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return 0, ErrInvalidAmount
	}

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || units > (1<<63-1)/100-1 {
		return 0, ErrInvalidAmount
	}

	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
	}
	if len(fracPart) > 1 {
		frac += int64(fracPart[1] - '0')
	}
	if len(fracPart) > 2 && fracPart[2] >= '5' {
		frac++
	}

	c := units*100 + frac
	if neg {
		c = -c
	}
	return Money(c), nil
}

// moneyFromFloat rounds f to cents. Values whose cent count does not fit in
// an int64 are rejected.
func moneyFromFloat(f float64) (Money, error) {
	c := math.Abs(f)*100 + 0.5
	if math.IsNaN(c) || c >= 1<<63 {
		return 0, ErrInvalidAmount
	}
	if f < 0 {
		return -Money(int64(c)), nil
	}
	return Money(int64(c)), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
