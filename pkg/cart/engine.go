// Package cart implements the client-side cart: an ordered set of lines keyed
// by item identity, with totals computed from a snapshot-friendly state and
// persistence through an injected Store.
package cart

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Item identifies a purchasable menu item.
type Item struct {
	ID        string
	Title     string
	UnitPrice decimal.Decimal
}

// Line is one distinct item and its quantity within a cart.
type Line struct {
	ItemID    string          `json:"itemId"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// Store persists cart lines across sessions. It is the localStorage analog:
// a single slot owned by one session, written synchronously after every
// mutation.
type Store interface {
	Load() ([]Line, error)
	Save(lines []Line) error
}

// Engine holds the cart state for one session. All mutations are synchronous
// and immediately reflected in Total and Count; the engine is not safe for
// concurrent use, matching its single-session ownership.
type Engine struct {
	store  Store
	logger zerolog.Logger
	lines  []Line
}

// NewEngine loads any previously persisted lines from store.
func NewEngine(c context.Context, store Store) (*Engine, error) {
	logger := zerolog.Ctx(c).
		With().
		Str("tag", "cart Engine").
		Logger()

	lines, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed loading cart from store with error=%w", err)
	}
	return &Engine{store: store, logger: logger, lines: lines}, nil
}

// Add inserts a new line with quantity 1, or increments the quantity of an
// existing line for the same item.
func (e *Engine) Add(item Item) {
	for i := range e.lines {
		if e.lines[i].ItemID == item.ID {
			e.lines[i].Quantity++
			e.persist()
			return
		}
	}
	e.lines = append(e.lines, Line{
		ItemID:    item.ID,
		Title:     item.Title,
		UnitPrice: item.UnitPrice,
		Quantity:  1,
	})
	e.persist()
}

// SetQuantity sets the quantity of an existing line, clamping below-1 requests
// to 1. It is a no-op when the item is not in the cart.
func (e *Engine) SetQuantity(itemId string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range e.lines {
		if e.lines[i].ItemID == itemId {
			e.lines[i].Quantity = quantity
			e.persist()
			return
		}
	}
}

// Remove deletes the line unconditionally. It is a no-op when the item is not
// in the cart.
func (e *Engine) Remove(itemId string) {
	for i := range e.lines {
		if e.lines[i].ItemID == itemId {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
			e.persist()
			return
		}
	}
}

// Total returns the sum of unitPrice times quantity over all lines.
func (e *Engine) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Count returns the sum of quantities over all lines.
func (e *Engine) Count() int {
	count := 0
	for _, line := range e.lines {
		count += line.Quantity
	}
	return count
}

// Clear empties the cart.
func (e *Engine) Clear() {
	e.lines = nil
	e.persist()
}

// Lines returns a snapshot copy, immune to later cart mutation.
func (e *Engine) Lines() []Line {
	snapshot := make([]Line, len(e.lines))
	copy(snapshot, e.lines)
	return snapshot
}

func (e *Engine) persist() {
	if err := e.store.Save(e.lines); err != nil {
		// In-memory state stays authoritative; the next successful save
		// catches the store up.
		e.logger.Error().Err(err).Msgf("failed persisting cart with error=%s", err.Error())
	}
}
