package cart

import (
	"github.com/google/uuid"

	"github.com/nkhandel/dietplanner-backend/pkg/enums"
)

// Line is one cart entry. Lines are merged by (Type, ProductID); adding a
// product twice grows the quantity instead of appending a duplicate.
type Line struct {
	Type      enums.ProductKind `json:"type"`
	ProductID uuid.UUID         `json:"id"`
	Quantity  int               `json:"quantity"`
}

// Cart is the ordered list of lines held in the user's session. It is a
// plain value object; all mutation happens through the methods below and
// the result is persisted as one JSON document.
type Cart []Line

func (c Cart) indexOf(kind enums.ProductKind, productID uuid.UUID) int {
	for i, line := range c {
		if line.Type == kind && line.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add merges one unit into the cart, incrementing an existing line or
// appending a new one with quantity 1.
func (c Cart) Add(kind enums.ProductKind, productID uuid.UUID) Cart {
	if i := c.indexOf(kind, productID); i >= 0 {
		c[i].Quantity++
		return c
	}
	return append(c, Line{Type: kind, ProductID: productID, Quantity: 1})
}

// Remove drops the matching line. Removing an absent line is a no-op.
func (c Cart) Remove(kind enums.ProductKind, productID uuid.UUID) Cart {
	i := c.indexOf(kind, productID)
	if i < 0 {
		return c
	}
	return append(c[:i], c[i+1:]...)
}

// SetQuantity overwrites the line's quantity. A quantity of zero or less
// removes the line. Setting a quantity for an absent line appends it.
func (c Cart) SetQuantity(kind enums.ProductKind, productID uuid.UUID, quantity int) Cart {
	if quantity <= 0 {
		return c.Remove(kind, productID)
	}
	if i := c.indexOf(kind, productID); i >= 0 {
		c[i].Quantity = quantity
		return c
	}
	return append(c, Line{Type: kind, ProductID: productID, Quantity: quantity})
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c) == 0
}
