package forms

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	phonePattern = regexp.MustCompile(`^\+1 \(\d{3}\) \d{3}-\d{4}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

func (f *Form) validatePhone(name string) bool {
	if phonePattern.MatchString(f.fields[name].Value) {
		return true
	}
	f.markError(name)
	return false
}

func (f *Form) validateEmail(name string) bool {
	if emailPattern.MatchString(f.fields[name].Value) {
		return true
	}
	f.markError(name)
	return false
}

// Inventory status values. Seeded records may differ in capitalization, so
// comparisons go through statusIs.
const (
	StatusInStock    = "In Stock"
	StatusOutOfStock = "Out of Stock"
)

func statusIs(value, status string) bool {
	return strings.EqualFold(strings.TrimSpace(value), status)
}

// parsePositiveQuantity reports the parsed value and whether it is a whole
// number greater than zero.
func parsePositiveQuantity(value string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
