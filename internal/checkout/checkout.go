// Package checkout converts cart quantities into stock deductions.
package checkout

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fairyhunter13/shop-cart-simulator/internal/cart"
	"github.com/fairyhunter13/shop-cart-simulator/internal/model"
	"github.com/fairyhunter13/shop-cart-simulator/internal/obs"
	"github.com/fairyhunter13/shop-cart-simulator/internal/store"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
	ErrCancelled = errors.New("purchase cancelled")
)

// StockError reports a cart line whose product no longer has enough
// stock at validation time.
type StockError struct {
	ProductID string
	Name      string
	Remaining int64
}

func (e *StockError) Error() string {
	return fmt.Sprintf("%s stock has changed, only %d items left", e.Name, e.Remaining)
}

// ConfirmFunc is the interactive gate of a checkout: it receives the
// priced summary and reports whether the user confirmed the purchase.
type ConfirmFunc func(model.CartSummary) bool

// Service runs checkouts against a catalog.
type Service struct {
	cat *store.Store
}

func NewService(cat *store.Store) *Service {
	return &Service{cat: cat}
}

// Run performs a checkout in two phases. First every cart line is
// re-validated against current stock; any shortfall aborts the whole
// checkout with a *StockError and nothing changes. Then the summary is
// handed to confirm; a decline returns ErrCancelled with the cart
// intact. On confirmation each line's quantity is deducted from stock,
// the cart is cleared, and the receipt is returned.
//
// Stock is not re-checked between confirmation and commit: the session
// is the only writer, so nothing can change in between.
func (s *Service) Run(u *cart.User, confirm ConfirmFunc) (*model.Order, error) {
	if u.Cart.Empty() {
		return nil, ErrEmptyCart
	}
	for _, ln := range u.Cart.Lines() {
		p, ok := s.cat.Get(ln.ProductID)
		if !ok {
			return nil, &StockError{ProductID: ln.ProductID, Name: ln.ProductID, Remaining: 0}
		}
		if p.Stock < ln.Quantity {
			return nil, &StockError{ProductID: p.ID, Name: p.Name, Remaining: p.Stock}
		}
	}
	sum := u.Cart.Summary(s.cat)
	if !confirm(sum) {
		obs.Logger.Info("checkout_cancelled", "user", u.Name, "lines", len(sum.Lines))
		return nil, ErrCancelled
	}
	for _, ln := range u.Cart.Lines() {
		if err := s.cat.DeductStock(ln.ProductID, ln.Quantity); err != nil {
			return nil, fmt.Errorf("deduct %s: %w", ln.ProductID, err)
		}
	}
	u.Cart.Clear()
	order := &model.Order{
		ID:       uuid.NewString(),
		Lines:    sum.Lines,
		Total:    sum.Total,
		PlacedAt: time.Now(),
	}
	obs.Logger.Info("checkout_committed",
		"user", u.Name,
		"order_id", order.ID,
		"lines", len(order.Lines),
		"total", order.Total.StringFixed(2),
	)
	return order, nil
}
