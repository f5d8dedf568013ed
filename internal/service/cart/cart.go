// Package cart implements the session-scoped cart aggregator. A Cart is a
// plain value owned by one checkout attempt; nothing here is persisted.
package cart

import (
	"github.com/google/uuid"

	"github.com/cashewtrade/marketplace/internal/models"
)

type Cart struct {
	quantities map[uuid.UUID]int
}

// Line is a cart entry resolved against a catalog snapshot.
type Line struct {
	Product  models.Product
	Quantity int
}

func New() *Cart {
	return &Cart{quantities: make(map[uuid.UUID]int)}
}

// Add increments the quantity for a product (qty may be negative to step
// down). An entry whose quantity drops to zero or below is removed.
func (c *Cart) Add(productID uuid.UUID, qty int) {
	if qty == 0 {
		qty = 1
	}
	next := c.quantities[productID] + qty
	if next <= 0 {
		delete(c.quantities, productID)
		return
	}
	c.quantities[productID] = next
}

func (c *Cart) Remove(productID uuid.UUID) {
	delete(c.quantities, productID)
}

func (c *Cart) Quantity(productID uuid.UUID) int {
	return c.quantities[productID]
}

func (c *Cart) Len() int {
	return len(c.quantities)
}

func (c *Cart) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.quantities))
	for id := range c.quantities {
		ids = append(ids, id)
	}
	return ids
}

// Resolve joins cart entries with a catalog snapshot. Entries whose product
// is not in the snapshot are dropped silently: a listing pulled between
// browsing and checkout simply vanishes from the cart.
func (c *Cart) Resolve(catalog []models.Product) []Line {
	byID := make(map[uuid.UUID]models.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	lines := make([]Line, 0, len(c.quantities))
	for id, qty := range c.quantities {
		p, ok := byID[id]
		if !ok {
			continue
		}
		lines = append(lines, Line{Product: p, Quantity: qty})
	}
	return lines
}

// Total sums price*quantity over resolved lines.
func (c *Cart) Total(catalog []models.Product) float64 {
	var sum float64
	for _, line := range c.Resolve(catalog) {
		sum += line.Product.Price * float64(line.Quantity)
	}
	return models.Round2(sum)
}
