package cart

import (
	"math"

	"boltstore/internal/domain"
)

// Command is the closed set of cart mutations. Keeping mutations as a
// tagged union consumed by a single pure transition keeps the state
// machine testable in isolation from storage.
type Command interface {
	isCommand()
}

// AddItem inserts a new line with quantity 1, or increments the
// quantity of an existing line. Descriptive fields are first-write-wins:
// on repeat adds the supplied title, price and image are ignored.
type AddItem struct {
	ProductID string
	Title     string
	UnitPrice float64
	ImageRef  string
}

// RemoveItem deletes a line. Removing an absent line is a no-op.
type RemoveItem struct {
	ProductID string
}

// SetCount sets a line's quantity. A count below one expresses intent
// to remove the line, not an invalid state to reject.
type SetCount struct {
	ProductID string
	Count     int
}

// Clear empties the cart.
type Clear struct{}

func (AddItem) isCommand()    {}
func (RemoveItem) isCommand() {}
func (SetCount) isCommand()   {}
func (Clear) isCommand()      {}

// Apply is the pure cart transition. It never mutates its input and
// performs no I/O; persistence and observer notification belong to the
// Store.
func Apply(c Cart, cmd Command) Cart {
	switch cmd := cmd.(type) {
	case AddItem:
		if line, ok := c.Get(cmd.ProductID); ok {
			line.Quantity++
			return c.replace(line)
		}
		return c.append(domain.CartLine{
			ProductID: cmd.ProductID,
			Title:     cmd.Title,
			UnitPrice: sanePrice(cmd.UnitPrice),
			ImageRef:  cmd.ImageRef,
			Quantity:  1,
		})
	case RemoveItem:
		return c.remove(cmd.ProductID)
	case SetCount:
		if cmd.Count < 1 {
			return c.remove(cmd.ProductID)
		}
		line, ok := c.Get(cmd.ProductID)
		if !ok {
			return c
		}
		line.Quantity = cmd.Count
		return c.replace(line)
	case Clear:
		return Cart{}
	}
	return c
}

func sanePrice(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0
	}
	return p
}
