package cart

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339Nano}).
		WithContext(context.Background())
}

var (
	zingerBurger = Item{ID: "item-1", Title: "Chicken Zinger Burger", UnitPrice: decimal.NewFromInt(100)}
	hotWings     = Item{ID: "item-2", Title: "Hot Wings (6 pcs)", UnitPrice: decimal.NewFromInt(50)}
)

func TestEngineAdd(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(e *Engine)
		expectedLines []Line
		expectedCount int
		expectedTotal decimal.Decimal
	}{
		{
			name:   "given same item added twice should hold one line with quantity 2",
			mutate: func(e *Engine) { e.Add(zingerBurger); e.Add(zingerBurger) },
			expectedLines: []Line{
				{ItemID: "item-1", Title: "Chicken Zinger Burger", UnitPrice: decimal.NewFromInt(100), Quantity: 2},
			},
			expectedCount: 2,
			expectedTotal: decimal.NewFromInt(200),
		},
		{
			name:   "given two distinct items should hold two lines",
			mutate: func(e *Engine) { e.Add(zingerBurger); e.Add(hotWings) },
			expectedLines: []Line{
				{ItemID: "item-1", Title: "Chicken Zinger Burger", UnitPrice: decimal.NewFromInt(100), Quantity: 1},
				{ItemID: "item-2", Title: "Hot Wings (6 pcs)", UnitPrice: decimal.NewFromInt(50), Quantity: 1},
			},
			expectedCount: 2,
			expectedTotal: decimal.NewFromInt(150),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := NewEngine(testContext(), NewMemoryStore())
			require.NoError(t, err)

			tt.mutate(engine)

			assertLinesEqual(t, tt.expectedLines, engine.Lines())
			assert.Equal(t, tt.expectedCount, engine.Count())
			assert.True(t, tt.expectedTotal.Equal(engine.Total()),
				"total should be %s got %s", tt.expectedTotal, engine.Total())
		})
	}
}

func TestEngineSetQuantity(t *testing.T) {
	tests := []struct {
		name             string
		itemId           string
		quantity         int
		expectedQuantity int
	}{
		{
			name:             "given quantity 5 should set quantity to 5",
			itemId:           "item-1",
			quantity:         5,
			expectedQuantity: 5,
		},
		{
			name:             "given quantity 0 should clamp quantity to 1",
			itemId:           "item-1",
			quantity:         0,
			expectedQuantity: 1,
		},
		{
			name:             "given negative quantity should clamp quantity to 1",
			itemId:           "item-1",
			quantity:         -3,
			expectedQuantity: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := NewEngine(testContext(), NewMemoryStore())
			require.NoError(t, err)
			engine.Add(zingerBurger)
			engine.Add(zingerBurger)

			engine.SetQuantity(tt.itemId, tt.quantity)

			lines := engine.Lines()
			require.Len(t, lines, 1)
			assert.Equal(t, tt.expectedQuantity, lines[0].Quantity)
		})
	}

	t.Run("given absent item should not add a line", func(t *testing.T) {
		engine, err := NewEngine(testContext(), NewMemoryStore())
		require.NoError(t, err)
		engine.Add(zingerBurger)

		engine.SetQuantity("item-missing", 4)

		assert.Len(t, engine.Lines(), 1)
		assert.Equal(t, 1, engine.Count())
	})
}

func TestEngineRemove(t *testing.T) {
	t.Run("given existing item should remove regardless of quantity", func(t *testing.T) {
		engine, err := NewEngine(testContext(), NewMemoryStore())
		require.NoError(t, err)
		engine.Add(zingerBurger)
		engine.SetQuantity(zingerBurger.ID, 7)
		engine.Add(hotWings)

		engine.Remove(zingerBurger.ID)

		lines := engine.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, hotWings.ID, lines[0].ItemID)
	})

	t.Run("given absent item should be a no-op", func(t *testing.T) {
		engine, err := NewEngine(testContext(), NewMemoryStore())
		require.NoError(t, err)
		engine.Add(zingerBurger)

		engine.Remove("item-missing")

		assert.Len(t, engine.Lines(), 1)
	})
}

func TestEngineClear(t *testing.T) {
	engine, err := NewEngine(testContext(), NewMemoryStore())
	require.NoError(t, err)
	engine.Add(zingerBurger)
	engine.Add(hotWings)

	engine.Clear()

	assert.Empty(t, engine.Lines())
	assert.Equal(t, 0, engine.Count())
	assert.True(t, engine.Total().IsZero())
}

func TestEngineLinesSnapshot(t *testing.T) {
	engine, err := NewEngine(testContext(), NewMemoryStore())
	require.NoError(t, err)
	engine.Add(zingerBurger)

	snapshot := engine.Lines()
	engine.SetQuantity(zingerBurger.ID, 9)
	engine.Add(hotWings)

	require.Len(t, snapshot, 1)
	assert.Equal(t, 1, snapshot[0].Quantity, "snapshot should be immune to later mutation")
}

func TestEnginePersistence(t *testing.T) {
	store := NewMemoryStore()

	engine, err := NewEngine(testContext(), store)
	require.NoError(t, err)
	engine.Add(zingerBurger)
	engine.Add(zingerBurger)
	engine.Add(hotWings)

	reloaded, err := NewEngine(testContext(), store)
	require.NoError(t, err)

	assertLinesEqual(t, engine.Lines(), reloaded.Lines())
	assert.Equal(t, 3, reloaded.Count())
	assert.True(t, decimal.NewFromInt(250).Equal(reloaded.Total()))
}

func TestEngineQuote(t *testing.T) {
	t.Run("given cart with items should charge gst and both fees", func(t *testing.T) {
		engine, err := NewEngine(testContext(), NewMemoryStore())
		require.NoError(t, err)
		engine.Add(zingerBurger)
		engine.Add(zingerBurger)
		engine.Add(hotWings)

		quote := engine.Quote()

		assert.True(t, decimal.NewFromInt(250).Equal(quote.Subtotal))
		assert.True(t, decimal.NewFromFloat(7.5).Equal(quote.Gst))
		assert.True(t, decimal.NewFromInt(20).Equal(quote.ConvenienceFee))
		assert.True(t, decimal.NewFromInt(40).Equal(quote.DeliveryFee))
		assert.True(t, decimal.NewFromFloat(317.5).Equal(quote.Total))
	})

	t.Run("given empty cart should waive delivery fee", func(t *testing.T) {
		engine, err := NewEngine(testContext(), NewMemoryStore())
		require.NoError(t, err)

		quote := engine.Quote()

		assert.True(t, quote.Subtotal.IsZero())
		assert.True(t, quote.DeliveryFee.IsZero())
		assert.True(t, decimal.NewFromInt(20).Equal(quote.Total))
	})
}

func assertLinesEqual(t *testing.T, expected, actual []Line) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		assert.Equal(t, expected[i].ItemID, actual[i].ItemID)
		assert.Equal(t, expected[i].Title, actual[i].Title)
		assert.Equal(t, expected[i].Quantity, actual[i].Quantity)
		assert.True(t, expected[i].UnitPrice.Equal(actual[i].UnitPrice),
			"unit price should be %s got %s", expected[i].UnitPrice, actual[i].UnitPrice)
	}
}
