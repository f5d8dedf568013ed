package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/cashewtrade/marketplace/internal/models"
)

func TestAddAccumulates(t *testing.T) {
	c := New()
	id := uuid.New()

	c.Add(id, 2)
	c.Add(id, 3)
	require.Equal(t, 5, c.Quantity(id))
	require.Equal(t, 1, c.Len())
}

func TestAddDefaultsToOne(t *testing.T) {
	c := New()
	id := uuid.New()

	c.Add(id, 0)
	require.Equal(t, 1, c.Quantity(id))
}

func TestNegativeAddRemovesAtZero(t *testing.T) {
	c := New()
	id := uuid.New()

	c.Add(id, 2)
	c.Add(id, -1)
	require.Equal(t, 1, c.Quantity(id))

	c.Add(id, -1)
	require.Zero(t, c.Quantity(id))
	require.Zero(t, c.Len())

	// Stepping below zero never leaves a negative entry.
	c.Add(id, -5)
	require.Zero(t, c.Len())
}

func TestRemove(t *testing.T) {
	c := New()
	id := uuid.New()

	c.Add(id, 4)
	c.Remove(id)
	require.Zero(t, c.Len())
}

func TestResolveDropsUnknown(t *testing.T) {
	c := New()
	known := models.Product{ID: uuid.New(), Price: 10}
	c.Add(known.ID, 2)
	c.Add(uuid.New(), 7)

	lines := c.Resolve([]models.Product{known})
	require.Len(t, lines, 1)
	require.Equal(t, known.ID, lines[0].Product.ID)
	require.Equal(t, 2, lines[0].Quantity)
}

func TestTotal(t *testing.T) {
	c := New()
	a := models.Product{ID: uuid.New(), Price: 19.99}
	b := models.Product{ID: uuid.New(), Price: 5.5}

	c.Add(a.ID, 3)
	c.Add(b.ID, 2)

	require.Equal(t, 70.97, c.Total([]models.Product{a, b}))
}
