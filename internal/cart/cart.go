package cart

import "boltstore/internal/domain"

// Cart is an insertion-ordered collection of lines, at most one per
// product id. The zero value is an empty cart.
type Cart struct {
	lines []domain.CartLine
}

// New builds a cart from a line sequence, normalizing input that may
// come from an older persisted snapshot: lines with a quantity below
// one are dropped, and only the first line per product id is kept.
func New(lines []domain.CartLine) Cart {
	c := Cart{}
	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}
		if _, ok := c.Get(line.ProductID); ok {
			continue
		}
		c.lines = append(c.lines, line)
	}
	return c
}

// Lines returns the line sequence in insertion order. The slice is a
// copy; callers may not reach the cart's internal state through it.
func (c Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Get returns the line for a product id, if present.
func (c Cart) Get(productID string) (domain.CartLine, bool) {
	for _, line := range c.lines {
		if line.ProductID == productID {
			return line, true
		}
	}
	return domain.CartLine{}, false
}

// Len reports the number of lines.
func (c Cart) Len() int {
	return len(c.lines)
}

// TotalItemCount is the sum of all line quantities, recomputed on
// demand so it can never drift from the line data.
func (c Cart) TotalItemCount() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice is the sum of unit price times quantity over all lines.
func (c Cart) TotalPrice() float64 {
	total := 0.0
	for _, line := range c.lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return total
}

func (c Cart) append(line domain.CartLine) Cart {
	next := c.Lines()
	return Cart{lines: append(next, line)}
}

func (c Cart) replace(line domain.CartLine) Cart {
	next := c.Lines()
	for i := range next {
		if next[i].ProductID == line.ProductID {
			next[i] = line
			break
		}
	}
	return Cart{lines: next}
}

func (c Cart) remove(productID string) Cart {
	next := make([]domain.CartLine, 0, len(c.lines))
	for _, line := range c.lines {
		if line.ProductID != productID {
			next = append(next, line)
		}
	}
	return Cart{lines: next}
}
