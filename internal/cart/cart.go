// Package cart implements the per-session shopping cart.
package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/shop-cart-simulator/internal/model"
	"github.com/fairyhunter13/shop-cart-simulator/internal/store"
)

var (
	ErrNonPositiveQuantity = errors.New("quantity must be positive")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrNotInCart           = errors.New("product not in cart")
)

// User is the single shopper of a session: a display name and the
// cart they own.
type User struct {
	Name string
	Cart *Cart
}

func NewUser(name string) *User {
	return &User{Name: name, Cart: NewCart()}
}

// Cart maps product ids to requested quantities. Every stored
// quantity is positive; entries that would reach zero are deleted.
// The ids slice keeps add order for stable display.
type Cart struct {
	qty map[string]int64
	ids []string
}

func NewCart() *Cart {
	return &Cart{qty: make(map[string]int64)}
}

// Add puts qty units of p into the cart. The requested quantity plus
// anything already held must not exceed the product's current stock;
// on any failure the cart is left unchanged.
func (c *Cart) Add(p model.Product, qty int64) error {
	if qty <= 0 {
		return ErrNonPositiveQuantity
	}
	if qty > p.Stock {
		return ErrInsufficientStock
	}
	held := c.qty[p.ID]
	if held+qty > p.Stock {
		return ErrInsufficientStock
	}
	if held == 0 {
		c.ids = append(c.ids, p.ID)
	}
	c.qty[p.ID] = held + qty
	return nil
}

// Remove takes qty units of the product out of the cart. Removing at
// least the held quantity deletes the entry; stock is never touched,
// since nothing was deducted when the item was added.
func (c *Cart) Remove(id string, qty int64) error {
	held, ok := c.qty[id]
	if !ok {
		return ErrNotInCart
	}
	if qty <= 0 {
		return ErrNonPositiveQuantity
	}
	if qty >= held {
		delete(c.qty, id)
		c.dropID(id)
		return nil
	}
	c.qty[id] = held - qty
	return nil
}

func (c *Cart) dropID(id string) {
	for i, v := range c.ids {
		if v == id {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			return
		}
	}
}

func (c *Cart) Quantity(id string) int64 { return c.qty[id] }

func (c *Cart) Len() int { return len(c.qty) }

func (c *Cart) Empty() bool { return len(c.qty) == 0 }

// Clear drops every entry. Used after a committed checkout.
func (c *Cart) Clear() {
	c.qty = make(map[string]int64)
	c.ids = nil
}

// Lines returns the cart entries in add order.
func (c *Cart) Lines() []model.CartLine {
	out := make([]model.CartLine, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, model.CartLine{ProductID: id, Quantity: c.qty[id]})
	}
	return out
}

// Summary joins the cart against the catalog, pricing each line and
// accumulating the grand total. Lines whose product is gone from the
// catalog are skipped; products are never deleted here, so this is a
// guard rather than a reachable path.
func (c *Cart) Summary(cat *store.Store) model.CartSummary {
	sum := model.CartSummary{Total: decimal.Zero}
	for _, ln := range c.Lines() {
		p, ok := cat.Get(ln.ProductID)
		if !ok {
			continue
		}
		subtotal := p.Price.Mul(decimal.NewFromInt(ln.Quantity))
		sum.Lines = append(sum.Lines, model.SummaryLine{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  ln.Quantity,
			UnitPrice: p.Price,
			Subtotal:  subtotal,
		})
		sum.Total = sum.Total.Add(subtotal)
	}
	return sum
}
