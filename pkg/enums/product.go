package enums

import "fmt"

// ProductKind is the closed set of product types sold by the shop. Order
// items and stock alerts reference products through this tag instead of a
// dynamic type lookup.
type ProductKind string

const (
	ProductKindSupplement ProductKind = "supplement"
	ProductKindProteinBar ProductKind = "protein_bar"
)

var validProductKinds = []ProductKind{
	ProductKindSupplement,
	ProductKindProteinBar,
}

// String implements fmt.Stringer.
func (k ProductKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known ProductKind.
func (k ProductKind) IsValid() bool {
	for _, candidate := range validProductKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseProductKind converts raw input into a ProductKind.
func ParseProductKind(value string) (ProductKind, error) {
	for _, candidate := range validProductKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product kind %q", value)
}
