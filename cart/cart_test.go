package cart

import (
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/junaidrashid-git/smartcart-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, price string) models.Product {
	return models.Product{ID: id, Name: "Product " + id, Price: decimal.RequireFromString(price), StockQuantity: 10}
}

func assertConsistent(t *testing.T, a *Aggregator) {
	t.Helper()
	c := a.Cart()
	assert.True(t, Sum(c.Items).Equal(c.Total), "total %s diverges from lines", c.Total)
	for _, l := range c.Items {
		assert.GreaterOrEqual(t, l.Quantity, 1)
	}
}

func TestAdd_NewLine(t *testing.T) {
	a := New()
	require.NoError(t, a.Add(product("p1", "3.49"), 1))

	c := a.Cart()
	require.Len(t, c.Items, 1)
	assert.Equal(t, "3.49", c.Total.String())
}

func TestAdd_MergesSameProduct(t *testing.T) {
	a := New()
	p := product("p1", "2.99")
	require.NoError(t, a.Add(p, 2))
	require.NoError(t, a.Add(p, 3))

	c := a.Cart()
	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, "14.95", c.Total.String())
}

func TestAdd_KeepsInsertionOrder(t *testing.T) {
	a := New()
	require.NoError(t, a.Add(product("b", "1"), 1))
	require.NoError(t, a.Add(product("a", "1"), 1))
	require.NoError(t, a.Add(product("b", "1"), 1))

	c := a.Cart()
	require.Len(t, c.Items, 2)
	assert.Equal(t, "b", c.Items[0].Product.ID)
	assert.Equal(t, "a", c.Items[1].Product.ID)
}

func TestAdd_RejectsNonPositiveQuantity(t *testing.T) {
	a := New()
	require.NoError(t, a.Add(product("p1", "1.00"), 1))

	for _, q := range []int{0, -1, -100} {
		err := a.Add(product("p1", "1.00"), q)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
	assert.Equal(t, 1, a.Quantity("p1"))
	assertConsistent(t, a)
}

func TestAdd_RejectsInvalidProduct(t *testing.T) {
	a := New()
	assert.ErrorIs(t, a.Add(product("", "1.00"), 1), ErrInvalidProduct)
	assert.ErrorIs(t, a.Add(product("p1", "-1.00"), 1), ErrInvalidProduct)
	assert.Equal(t, 0, a.Len())
}

func TestAdd_OverflowIsRejected(t *testing.T) {
	a := New()
	p := product("p1", "1.00")
	require.NoError(t, a.Add(p, math.MaxInt))

	err := a.Add(p, 1)
	assert.ErrorIs(t, err, ErrInvariantViolation)
	assert.Equal(t, math.MaxInt, a.Quantity("p1"))
}

func TestRemove_Idempotent(t *testing.T) {
	a := New()
	require.NoError(t, a.Add(product("p1", "1.25"), 2))
	require.NoError(t, a.Add(product("p2", "4.00"), 1))

	require.NoError(t, a.Remove("p1"))
	once := a.Cart()
	require.NoError(t, a.Remove("p1"))
	twice := a.Cart()

	assert.Equal(t, once.Items, twice.Items)
	assert.True(t, once.Total.Equal(twice.Total))
	assert.Equal(t, "4", twice.Total.String())
}

func TestRemove_Absent(t *testing.T) {
	a := New()
	require.NoError(t, a.Add(product("p1", "1.00"), 1))
	require.NoError(t, a.Remove("nope"))
	assert.Equal(t, 1, a.Len())
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("sets absolute quantity", func(t *testing.T) {
		a := New()
		require.NoError(t, a.Add(product("p1", "2.50"), 4))
		require.NoError(t, a.UpdateQuantity("p1", 2))
		assert.Equal(t, 2, a.Quantity("p1"))
		assert.Equal(t, "5", a.Total().String())
	})

	t.Run("zero removes the line", func(t *testing.T) {
		a := New()
		require.NoError(t, a.Add(product("p1", "3.49"), 1))
		assert.Equal(t, "3.49", a.Total().String())

		require.NoError(t, a.UpdateQuantity("p1", 0))
		assert.Equal(t, 0, a.Len())
		assert.True(t, a.Total().IsZero())
	})

	t.Run("negative removes the line", func(t *testing.T) {
		a := New()
		require.NoError(t, a.Add(product("p1", "3.49"), 1))
		require.NoError(t, a.UpdateQuantity("p1", -3))
		assert.Equal(t, 0, a.Len())
	})

	t.Run("absent product is a no-op", func(t *testing.T) {
		a := New()
		require.NoError(t, a.Add(product("p1", "1.00"), 1))
		require.NoError(t, a.UpdateQuantity("p2", 7))
		assert.Equal(t, 1, a.Len())
		assert.Equal(t, 0, a.Quantity("p2"))
	})
}

func TestClear(t *testing.T) {
	a := New()
	require.NoError(t, a.Add(product("p1", "1.00"), 3))
	a.Clear()

	c := a.Cart()
	assert.True(t, c.Empty())
	assert.NotNil(t, c.Items)
	assert.True(t, c.Total.IsZero())
}

func TestCart_ReturnsCopy(t *testing.T) {
	a := New()
	require.NoError(t, a.Add(product("p1", "1.00"), 1))

	c := a.Cart()
	c.Items[0].Quantity = 99
	assert.Equal(t, 1, a.Quantity("p1"))
}

func TestRandomSequence_HoldsInvariants(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	prices := []string{"0.99", "2.49", "3.49", "4.99", "12.99", "0"}
	a := New()

	for i := 0; i < 2000; i++ {
		id := "p" + strconv.Itoa(rnd.Intn(len(prices)))
		idx, _ := strconv.Atoi(id[1:])
		switch rnd.Intn(4) {
		case 0, 1:
			_ = a.Add(product(id, prices[idx]), rnd.Intn(5)-1)
		case 2:
			require.NoError(t, a.UpdateQuantity(id, rnd.Intn(6)-2))
		case 3:
			require.NoError(t, a.Remove(id))
		}
		assertConsistent(t, a)
	}
}

func TestCart_ItemCount(t *testing.T) {
	a := New()
	require.NoError(t, a.Add(product("p1", "1.00"), 2))
	require.NoError(t, a.Add(product("p2", "1.00"), 3))
	assert.Equal(t, 5, a.Cart().ItemCount())
}
