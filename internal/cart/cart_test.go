package cart

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/shop-cart-simulator/internal/model"
	"github.com/fairyhunter13/shop-cart-simulator/internal/store"
)

func product(id string, price string, stock int64) model.Product {
	return model.Product{ID: id, Name: id, Price: decimal.RequireFromString(price), Stock: stock}
}

func TestAddRejectsNonPositive(t *testing.T) {
	c := NewCart()
	p := product("p1", "10.00", 5)
	for _, qty := range []int64{0, -1} {
		if err := c.Add(p, qty); !errors.Is(err, ErrNonPositiveQuantity) {
			t.Fatalf("qty %d: expected ErrNonPositiveQuantity, got %v", qty, err)
		}
	}
	if c.Len() != 0 {
		t.Fatalf("cart mutated on rejected add")
	}
}

func TestAddRejectsBeyondStock(t *testing.T) {
	c := NewCart()
	p := product("p1", "10.00", 5)
	if err := c.Add(p, 10); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if c.Len() != 0 || c.Quantity("p1") != 0 {
		t.Fatalf("cart mutated on rejected add")
	}
}

func TestAddIncrementsUpToStock(t *testing.T) {
	c := NewCart()
	p := product("p1", "10.00", 5)
	if err := c.Add(p, 3); err != nil {
		t.Fatalf("first add: %v", err)
	}
	// 3+3 exceeds stock 5; no partial increment
	if err := c.Add(p, 3); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if c.Quantity("p1") != 3 {
		t.Fatalf("expected quantity 3, got %d", c.Quantity("p1"))
	}
	if err := c.Add(p, 2); err != nil {
		t.Fatalf("add to limit: %v", err)
	}
	if c.Quantity("p1") != 5 {
		t.Fatalf("expected quantity 5, got %d", c.Quantity("p1"))
	}
}

func TestRemove(t *testing.T) {
	c := NewCart()
	p := product("p1", "10.00", 5)
	if err := c.Remove("p1", 1); !errors.Is(err, ErrNotInCart) {
		t.Fatalf("expected ErrNotInCart, got %v", err)
	}
	if err := c.Add(p, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.Remove("p1", 0); !errors.Is(err, ErrNonPositiveQuantity) {
		t.Fatalf("expected ErrNonPositiveQuantity, got %v", err)
	}
	if err := c.Remove("p1", 2); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if c.Quantity("p1") != 1 {
		t.Fatalf("expected quantity 1, got %d", c.Quantity("p1"))
	}
	// removing at least the held quantity deletes the entry
	if err := c.Remove("p1", 5); err != nil {
		t.Fatalf("remove all: %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty cart, got %d entries", c.Len())
	}
}

func TestNoZeroEntriesEverPersist(t *testing.T) {
	c := NewCart()
	a := product("a", "1.00", 100)
	b := product("b", "2.00", 100)
	ops := []struct {
		add bool
		p   model.Product
		qty int64
	}{
		{true, a, 3}, {true, b, 5}, {false, a, 3},
		{true, a, 1}, {false, b, 2}, {false, b, 10},
		{true, b, 4}, {false, a, 1},
	}
	for i, op := range ops {
		if op.add {
			_ = c.Add(op.p, op.qty)
		} else {
			_ = c.Remove(op.p.ID, op.qty)
		}
		for _, ln := range c.Lines() {
			if ln.Quantity <= 0 {
				t.Fatalf("op %d: entry %s has quantity %d", i, ln.ProductID, ln.Quantity)
			}
		}
	}
}

func TestLinesKeepAddOrder(t *testing.T) {
	c := NewCart()
	for _, id := range []string{"c", "a", "b"} {
		if err := c.Add(product(id, "1.00", 10), 1); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}
	lines := c.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, want := range []string{"c", "a", "b"} {
		if lines[i].ProductID != want {
			t.Fatalf("line %d: expected %s, got %s", i, want, lines[i].ProductID)
		}
	}
	if err := c.Remove("a", 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	lines = c.Lines()
	if lines[0].ProductID != "c" || lines[1].ProductID != "b" {
		t.Fatalf("order broken after remove: %s, %s", lines[0].ProductID, lines[1].ProductID)
	}
}

func TestSummary(t *testing.T) {
	cat := store.New()
	cat.Seed([]model.Product{
		product("p1", "25.99", 15),
		product("p2", "120.50", 5),
	})
	c := NewCart()
	p1, _ := cat.Get("p1")
	p2, _ := cat.Get("p2")
	if err := c.Add(p1, 2); err != nil {
		t.Fatalf("add p1: %v", err)
	}
	if err := c.Add(p2, 3); err != nil {
		t.Fatalf("add p2: %v", err)
	}
	sum := c.Summary(cat)
	if len(sum.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(sum.Lines))
	}
	if got := sum.Lines[0].Subtotal.StringFixed(2); got != "51.98" {
		t.Fatalf("expected subtotal 51.98, got %s", got)
	}
	if got := sum.Total.StringFixed(2); got != "413.48" {
		t.Fatalf("expected total 413.48, got %s", got)
	}
}

func TestSummarySkipsMissingProducts(t *testing.T) {
	cat := store.New()
	cat.Seed([]model.Product{product("p1", "10.00", 5)})
	c := NewCart()
	p1, _ := cat.Get("p1")
	if err := c.Add(p1, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	_ = c.Add(product("ghost", "1.00", 5), 1)
	sum := c.Summary(cat)
	if len(sum.Lines) != 1 {
		t.Fatalf("expected the missing product skipped, got %d lines", len(sum.Lines))
	}
	if got := sum.Total.StringFixed(2); got != "10.00" {
		t.Fatalf("expected total 10.00, got %s", got)
	}
}
