package service

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in cents.
type Money int64

var errInvalidAmount = errors.New("invalid amount")

// ParseMoney accepts plain or formatted dollar amounts such as "1,250,000" or "$99.50".
func ParseMoney(raw string) (Money, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0, errInvalidAmount
	}
	dollars, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(dollars) || math.IsInf(dollars, 0) || dollars < 0 {
		return 0, errInvalidAmount
	}
	return Money(math.Round(dollars * 100)), nil
}

// String formats the amount as dollars with thousands separators.
func (m Money) String() string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	whole := strconv.FormatInt(int64(m)/100, 10)
	for i := len(whole) - 3; i > 0; i -= 3 {
		whole = whole[:i] + "," + whole[i:]
	}
	cents := int64(m) % 100
	if cents == 0 {
		return sign + "$" + whole
	}
	return sign + "$" + whole + "." + strconv.FormatInt(cents/10, 10) + strconv.FormatInt(cents%10, 10)
}
