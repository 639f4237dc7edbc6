// Package store implements the in-memory product catalog.
package store

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/shop-cart-simulator/internal/model"
)

var (
	// ErrPageOutOfRange is returned by List for pages below 1 or past the end.
	ErrPageOutOfRange = errors.New("page out of range")
	// ErrUnknownProduct is returned when a product id is not in the catalog.
	ErrUnknownProduct = errors.New("unknown product")
)

// Store holds the catalog keyed by product id. Display order is the
// order products were seeded in; a map alone would not keep it.
type Store struct {
	mu  sync.RWMutex
	m   map[string]model.Product
	ids []string
}

func New() *Store {
	return &Store{m: make(map[string]model.Product)}
}

// Seed inserts products, preserving their order. Ids already present
// are overwritten in place without changing their position.
func (s *Store) Seed(products []model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		if p.ID == "" {
			continue
		}
		if _, ok := s.m[p.ID]; !ok {
			s.ids = append(s.ids, p.ID)
		}
		s.m[p.ID] = p
	}
}

func (s *Store) Get(id string) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[id]
	if !ok {
		return model.Product{}, false
	}
	return p, true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// List returns one page of the catalog in seed order along with the
// total page count. totalPages is ceil(len/pageSize); page numbers are
// 1-based, and an empty catalog has no valid page.
func (s *Store) List(page, pageSize int) ([]model.Product, int, error) {
	if pageSize < 1 {
		return nil, 0, ErrPageOutOfRange
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	totalPages := (len(s.ids) + pageSize - 1) / pageSize
	if page < 1 || page > totalPages {
		return nil, totalPages, ErrPageOutOfRange
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(s.ids) {
		end = len(s.ids)
	}
	out := make([]model.Product, 0, end-start)
	for _, id := range s.ids[start:end] {
		out = append(out, s.m[id])
	}
	return out, totalPages, nil
}

// DeductStock subtracts qty from the product's stock, flooring at
// zero. Stock never goes negative.
func (s *Store) DeductStock(id string, qty int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[id]
	if !ok {
		return ErrUnknownProduct
	}
	p.Stock -= qty
	if p.Stock < 0 {
		p.Stock = 0
	}
	s.m[id] = p
	return nil
}

// DefaultProducts returns the fixed seed catalog used on startup.
func DefaultProducts() []model.Product {
	price := decimal.RequireFromString
	return []model.Product{
		{ID: "P1001", Name: "Wireless Mouse", Price: price("25.99"), Stock: 15},
		{ID: "P1002", Name: "Mechanical Keyboard", Price: price("79.99"), Stock: 10},
		{ID: "P1003", Name: "HD Monitor 24 inch", Price: price("150.00"), Stock: 7},
		{ID: "P1004", Name: "USB-C Hub", Price: price("39.99"), Stock: 25},
		{ID: "P1005", Name: "External SSD 1TB", Price: price("120.50"), Stock: 5},
		{ID: "P1006", Name: "Gaming Headset", Price: price("49.99"), Stock: 12},
		{ID: "P1007", Name: "Webcam 1080p", Price: price("60.00"), Stock: 8},
		{ID: "P1008", Name: "Laptop Stand", Price: price("29.99"), Stock: 20},
		{ID: "P1009", Name: "Portable Charger", Price: price("35.00"), Stock: 30},
		{ID: "P1010", Name: "Smartwatch", Price: price("199.99"), Stock: 4},
	}
}
