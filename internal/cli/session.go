// Package cli runs the interactive shopping session over an
// injectable input/output pair, keeping the core packages free of any
// terminal dependency.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/fairyhunter13/shop-cart-simulator/internal/cart"
	"github.com/fairyhunter13/shop-cart-simulator/internal/checkout"
	"github.com/fairyhunter13/shop-cart-simulator/internal/config"
	"github.com/fairyhunter13/shop-cart-simulator/internal/model"
	"github.com/fairyhunter13/shop-cart-simulator/internal/obs"
	"github.com/fairyhunter13/shop-cart-simulator/internal/store"
)

// Session owns the menu loop and the pagination cursor. All state
// mutation goes through the cart and checkout packages; this layer
// only parses input and renders text.
type Session struct {
	cfg  config.Config
	cat  *store.Store
	co   *checkout.Service
	user *cart.User
	in   *bufio.Scanner
	out  io.Writer
	page int
}

func NewSession(cfg config.Config, cat *store.Store, in io.Reader, out io.Writer) *Session {
	return &Session{
		cfg:  cfg,
		cat:  cat,
		co:   checkout.NewService(cat),
		in:   bufio.NewScanner(in),
		out:  out,
		page: 1,
	}
}

// readLine returns the next input line, trimmed. ok is false once the
// input is exhausted, which callers treat as a request to exit.
func (s *Session) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// Run drives the whole session: username prompt, then the menu loop
// until the user exits or input ends.
func (s *Session) Run() {
	s.printf("Welcome to the %s!\n", s.cfg.StoreName)
	s.printf("Please enter your username to continue: ")
	name, ok := s.readLine()
	if !ok || name == "" {
		s.printf("Username cannot be empty. Exiting...\n")
		return
	}
	s.user = cart.NewUser(name)
	obs.Logger.Info("session_started", "session_id", uuid.NewString(), "username", name)
	s.printf("Hello, %s! Let's start shopping.\n", s.user.Name)

	for {
		s.printf("\nMenu Options:\n")
		s.printf("  1. Browse products\n")
		s.printf("  2. View cart\n")
		s.printf("  3. Add product to cart\n")
		s.printf("  4. Remove product from cart\n")
		s.printf("  5. Checkout\n")
		s.printf("  6. Exit\n")
		s.printf("Select an option (1-6): ")
		choice, ok := s.readLine()
		if !ok {
			s.goodbye()
			return
		}
		switch choice {
		case "1":
			if !s.browse() {
				s.goodbye()
				return
			}
		case "2":
			s.viewCart()
		case "3":
			if !s.addFlow() {
				s.goodbye()
				return
			}
		case "4":
			if !s.removeFlow() {
				s.goodbye()
				return
			}
		case "5":
			if !s.checkoutFlow() {
				s.goodbye()
				return
			}
		case "6":
			s.goodbye()
			return
		default:
			s.printf("Invalid option. Please choose 1-6.\n")
		}
	}
}

func (s *Session) goodbye() {
	if s.user != nil {
		s.printf("Goodbye, %s! Thanks for visiting.\n", s.user.Name)
	}
}

// browse pages through the catalog until the user goes back to the
// menu. Returns false when input ran out.
func (s *Session) browse() bool {
	for {
		s.renderPage()
		s.printf("\n(N)ext page | (P)revious page | (B)ack to menu\n")
		s.printf("Choose an option: ")
		nav, ok := s.readLine()
		if !ok {
			return false
		}
		_, totalPages, _ := s.cat.List(s.page, s.cfg.PageSize)
		switch strings.ToLower(nav) {
		case "n":
			if s.page < totalPages {
				s.page++
			} else {
				s.printf("Already at last page.\n")
			}
		case "p":
			if s.page > 1 {
				s.page--
			} else {
				s.printf("Already at first page.\n")
			}
		case "b":
			return true
		default:
			s.printf("Invalid option.\n")
		}
	}
}

func (s *Session) renderPage() {
	products, totalPages, err := s.cat.List(s.page, s.cfg.PageSize)
	if err != nil {
		s.printf("Invalid page number.\n")
		return
	}
	s.printf("\nProducts (Page %d/%d):\n", s.page, totalPages)
	for _, p := range products {
		s.printf("  %s: %s - $%s (Stock: %d)\n", p.ID, p.Name, p.Price.StringFixed(2), p.Stock)
	}
}

func (s *Session) viewCart() {
	if s.user.Cart.Empty() {
		s.printf("\nYour cart is empty.\n")
		return
	}
	sum := s.user.Cart.Summary(s.cat)
	s.printf("\nYour Cart:\n")
	for _, ln := range sum.Lines {
		s.printf(" - %s: %d x $%s = $%s\n", ln.Name, ln.Quantity, ln.UnitPrice.StringFixed(2), ln.Subtotal.StringFixed(2))
	}
	s.printf("Total amount: $%s\n", sum.Total.StringFixed(2))
}

// promptQuantity reads and validates an integer quantity. valid is
// false when the input was rejected and already reported; ok is false
// when input ran out.
func (s *Session) promptQuantity(prompt string) (qty int64, valid, ok bool) {
	s.printf("%s", prompt)
	raw, ok := s.readLine()
	if !ok {
		return 0, false, false
	}
	qty, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.printf("Invalid quantity.\n")
		return 0, false, true
	}
	if qty <= 0 {
		s.printf("Quantity must be positive.\n")
		return 0, false, true
	}
	return qty, true, true
}

func (s *Session) addFlow() bool {
	s.printf("Enter product ID to add: ")
	id, ok := s.readLine()
	if !ok {
		return false
	}
	p, found := s.cat.Get(id)
	if !found {
		s.printf("Product not found.\n")
		return true
	}
	s.printf("Selected %s - Price $%s, Stock: %d\n", p.Name, p.Price.StringFixed(2), p.Stock)
	qty, valid, ok := s.promptQuantity("Enter quantity to add: ")
	if !ok {
		return false
	}
	if !valid {
		return true
	}
	held := s.user.Cart.Quantity(p.ID)
	if err := s.user.Cart.Add(p, qty); err != nil {
		switch {
		case errors.Is(err, cart.ErrInsufficientStock) && held > 0:
			s.printf("Sorry, adding %d exceeds available stock.\n", qty)
		case errors.Is(err, cart.ErrInsufficientStock):
			s.printf("Sorry, only %d items are in stock.\n", p.Stock)
		case errors.Is(err, cart.ErrNonPositiveQuantity):
			s.printf("Quantity must be positive.\n")
		default:
			s.printf("Cannot add to cart: %v\n", err)
		}
		return true
	}
	obs.Logger.Info("cart_add", "user", s.user.Name, "product_id", p.ID, "quantity", qty)
	s.printf("Added %d x %s to your cart.\n", qty, p.Name)
	return true
}

func (s *Session) removeFlow() bool {
	if s.user.Cart.Empty() {
		s.printf("Your cart is empty.\n")
		return true
	}
	s.printf("Enter product ID to remove: ")
	id, ok := s.readLine()
	if !ok {
		return false
	}
	if s.user.Cart.Quantity(id) == 0 {
		s.printf("Product not in your cart.\n")
		return true
	}
	qty, valid, ok := s.promptQuantity("Enter quantity to remove: ")
	if !ok {
		return false
	}
	if !valid {
		return true
	}
	held := s.user.Cart.Quantity(id)
	if err := s.user.Cart.Remove(id, qty); err != nil {
		switch {
		case errors.Is(err, cart.ErrNotInCart):
			s.printf("Product not in your cart.\n")
		case errors.Is(err, cart.ErrNonPositiveQuantity):
			s.printf("Quantity must be positive.\n")
		default:
			s.printf("Cannot remove from cart: %v\n", err)
		}
		return true
	}
	obs.Logger.Info("cart_remove", "user", s.user.Name, "product_id", id, "quantity", qty)
	if qty >= held {
		s.printf("Removed the product from your cart.\n")
	} else {
		s.printf("Removed %d items from your cart.\n", qty)
	}
	return true
}

func (s *Session) checkoutFlow() bool {
	eof := false
	confirm := func(sum model.CartSummary) bool {
		s.printf("\nOrder Summary:\n")
		for _, ln := range sum.Lines {
			s.printf(" - %s: %d x $%s = $%s\n", ln.Name, ln.Quantity, ln.UnitPrice.StringFixed(2), ln.Subtotal.StringFixed(2))
		}
		s.printf("Total amount due: $%s\n", sum.Total.StringFixed(2))
		s.printf("Confirm purchase? (y/n): ")
		answer, ok := s.readLine()
		if !ok {
			eof = true
			return false
		}
		return strings.EqualFold(answer, "y")
	}
	order, err := s.co.Run(s.user, confirm)
	if eof {
		return false
	}
	var stockErr *checkout.StockError
	switch {
	case err == nil:
		s.printf("Purchase successful! Thank you for shopping.\n")
		s.printf("Order %s placed.\n", order.ID)
	case errors.Is(err, checkout.ErrEmptyCart):
		s.printf("Your cart is empty. Cannot checkout.\n")
	case errors.Is(err, checkout.ErrCancelled):
		s.printf("Purchase cancelled.\n")
	case errors.As(err, &stockErr):
		s.printf("Sorry, %s stock has changed. Only %d items left.\n", stockErr.Name, stockErr.Remaining)
	default:
		s.printf("Checkout failed: %v\n", err)
	}
	return true
}
