package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatMoney keeps two decimals for export cells.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatRupees renders a rounded amount with Indian digit grouping,
// e.g. -123456.4 -> "-Rs. 1,23,456".
func FormatRupees(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return sign + "Rs. " + groupIndian(n)
}

// ParseRupees accepts "Rs. 1,200", "₹1200" or "1200.50".
func ParseRupees(s string) (float64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	for _, p := range []string{"rs.", "rs", "₹", "inr"} {
		s = strings.TrimPrefix(s, p)
	}
	s = strings.NewReplacer(",", "", " ", "").Replace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid rupee amount")
	}
	return strconv.ParseFloat(s, 64)
}

func groupIndian(n int64) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 {
		return str
	}
	head, tail := str[:len(str)-3], str[len(str)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}
