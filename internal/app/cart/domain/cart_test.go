package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/pricing"
)

func snap(id string, price pricing.Price) Snapshot {
	return Snapshot{ProductID: id, Price: price, Image: "https://img/" + id + ".png"}
}

func TestCart_AddItem(t *testing.T) {
	t.Run("first add creates line with quantity 1", func(t *testing.T) {
		cart := NewCart("s1")
		require.NoError(t, cart.AddItem(snap("p1", pricing.FromNumber(100))))

		line, ok := cart.Line("p1")
		require.True(t, ok)
		assert.Equal(t, int64(1), line.Quantity)
		assert.Equal(t, "https://img/p1.png", line.Image)
	})

	t.Run("repeat adds accumulate quantity", func(t *testing.T) {
		cart := NewCart("s1")
		for i := 0; i < 5; i++ {
			require.NoError(t, cart.AddItem(snap("p1", pricing.FromNumber(100))))
		}

		line, _ := cart.Line("p1")
		assert.Equal(t, int64(5), line.Quantity)
		assert.Equal(t, 1, cart.Len())
	})

	t.Run("first snapshot wins on repeat adds", func(t *testing.T) {
		cart := NewCart("s1")
		require.NoError(t, cart.AddItem(snap("p1", pricing.FromString("$1,699"))))
		require.NoError(t, cart.AddItem(snap("p1", pricing.FromNumber(999))))

		line, _ := cart.Line("p1")
		assert.Equal(t, "$1,699", line.Price.Display())
	})

	t.Run("empty product id rejected", func(t *testing.T) {
		cart := NewCart("s1")
		err := cart.AddItem(Snapshot{})
		assert.ErrorIs(t, err, ErrEmptyProductID)
	})
}

func TestCart_ChangeQuantity(t *testing.T) {
	t.Run("absent product is a no-op", func(t *testing.T) {
		cart := NewCart("s1")
		assert.False(t, cart.ChangeQuantity("ghost", 1))
		assert.True(t, cart.IsEmpty())
	})

	t.Run("positive delta increments", func(t *testing.T) {
		cart := NewCart("s1")
		require.NoError(t, cart.AddItem(snap("p1", pricing.FromNumber(10))))
		assert.True(t, cart.ChangeQuantity("p1", 2))

		line, _ := cart.Line("p1")
		assert.Equal(t, int64(3), line.Quantity)
	})

	t.Run("reaching zero removes the line", func(t *testing.T) {
		cart := NewCart("s1")
		require.NoError(t, cart.AddItem(snap("p1", pricing.FromNumber(10))))
		assert.True(t, cart.ChangeQuantity("p1", -1))

		_, ok := cart.Line("p1")
		assert.False(t, ok)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("quantity never goes negative", func(t *testing.T) {
		cart := NewCart("s1")
		require.NoError(t, cart.AddItem(snap("p1", pricing.FromNumber(10))))
		assert.True(t, cart.ChangeQuantity("p1", -100))

		_, ok := cart.Line("p1")
		assert.False(t, ok)
	})
}

func TestCart_Total(t *testing.T) {
	t.Run("sums normalized price times quantity", func(t *testing.T) {
		cart := NewCart("s1")
		require.NoError(t, cart.AddItem(snap("p1", pricing.FromString("$1,699"))))
		require.NoError(t, cart.AddItem(snap("p1", pricing.FromString("$1,699"))))
		require.NoError(t, cart.AddItem(snap("p2", pricing.FromNumber(300))))

		assert.Equal(t, int64(1699*2+300), cart.Total())
	})

	t.Run("invariant under add ordering", func(t *testing.T) {
		forward := NewCart("s1")
		require.NoError(t, forward.AddItem(snap("a", pricing.FromNumber(5))))
		require.NoError(t, forward.AddItem(snap("b", pricing.FromString("$7"))))
		require.NoError(t, forward.AddItem(snap("a", pricing.FromNumber(5))))

		reverse := NewCart("s2")
		require.NoError(t, reverse.AddItem(snap("b", pricing.FromString("$7"))))
		require.NoError(t, reverse.AddItem(snap("a", pricing.FromNumber(5))))
		require.NoError(t, reverse.AddItem(snap("a", pricing.FromNumber(5))))

		assert.Equal(t, forward.Total(), reverse.Total())
	})

	t.Run("rounds to whole currency units", func(t *testing.T) {
		cart := NewCart("s1")
		require.NoError(t, cart.AddItem(snap("p1", pricing.FromString("$12.50"))))

		assert.Equal(t, int64(13), cart.Total())
	})

	t.Run("unparseable snapshot contributes nothing", func(t *testing.T) {
		cart := NewCart("s1")
		require.NoError(t, cart.AddItem(snap("p1", pricing.FromString("N/A"))))
		require.NoError(t, cart.AddItem(snap("p2", pricing.FromNumber(40))))

		assert.Equal(t, int64(40), cart.Total())
	})

	t.Run("empty cart totals zero", func(t *testing.T) {
		assert.Equal(t, int64(0), NewCart("s1").Total())
	})
}

func TestCart_Lines(t *testing.T) {
	t.Run("ordered by product id", func(t *testing.T) {
		cart := NewCart("s1")
		require.NoError(t, cart.AddItem(snap("zz", pricing.FromNumber(1))))
		require.NoError(t, cart.AddItem(snap("aa", pricing.FromNumber(2))))

		lines := cart.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, "aa", lines[0].ProductID)
		assert.Equal(t, "zz", lines[1].ProductID)
	})
}

func TestReconstructCart(t *testing.T) {
	t.Run("drops zero quantity lines", func(t *testing.T) {
		cart := ReconstructCart("s1", map[string]Line{
			"p1": {ProductID: "p1", Price: pricing.FromNumber(10), Quantity: 2},
			"p2": {ProductID: "p2", Price: pricing.FromNumber(10), Quantity: 0},
		})

		assert.Equal(t, 1, cart.Len())
		_, ok := cart.Line("p2")
		assert.False(t, ok)
	})
}
