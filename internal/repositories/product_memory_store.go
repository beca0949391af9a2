package repositories

import (
	"fmt"
	"sort"
	"sync"

	"inventorywidget/internal/models"
)

// MemoryProductStore is an in-memory implementation of ProductStore. It backs
// tests and runs the app without a database file.
type MemoryProductStore struct {
	mu       sync.RWMutex
	products map[int]models.Product

	listHub  *hub[[]models.Product]
	totalHub *hub[float64]
}

// NewMemoryProductStore creates a new instance of MemoryProductStore.
func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{
		products: make(map[int]models.Product),
		listHub:  newHub[[]models.Product](),
		totalHub: newHub[float64](),
	}
}

// GetByCode returns a product by its code.
func (s *MemoryProductStore) GetByCode(code int) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[code]
	if !ok {
		return nil, fmt.Errorf("product with code %d: %w", code, models.ErrProductNotFound)
	}
	return &product, nil
}

// Insert adds a new product, rejecting duplicate codes.
func (s *MemoryProductStore) Insert(product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[product.Code]; ok {
		return fmt.Errorf("insert of code %d: %w", product.Code, models.ErrDuplicateCode)
	}
	s.products[product.Code] = *product

	s.publishLocked()
	return nil
}

// Replace overwrites the mutable fields of an existing product.
func (s *MemoryProductStore) Replace(product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[product.Code]; !ok {
		return fmt.Errorf("replace of code %d: %w", product.Code, models.ErrProductNotFound)
	}
	s.products[product.Code] = *product

	s.publishLocked()
	return nil
}

// Delete removes a product by its code.
func (s *MemoryProductStore) Delete(code int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[code]; !ok {
		return fmt.Errorf("delete of code %d: %w", code, models.ErrProductNotFound)
	}
	delete(s.products, code)

	s.publishLocked()
	return nil
}

// DeleteAll clears the store.
func (s *MemoryProductStore) DeleteAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = make(map[int]models.Product)

	s.publishLocked()
	return nil
}

// ListByCode returns all products in ascending code order.
func (s *MemoryProductStore) ListByCode() ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked(), nil
}

// TotalValue returns the current inventory total.
func (s *MemoryProductStore) TotalValue() (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalLocked(), nil
}

// ObserveAll subscribes to code-ordered snapshots of the store. The lock is
// held across snapshot and registration so a mutation committing in between
// cannot leave the new subscriber primed with a stale snapshot it will never
// be notified about.
func (s *MemoryProductStore) ObserveAll() *ProductListSubscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listHub.Subscribe(s.listLocked())
}

// ObserveTotalValue subscribes to the running inventory total.
func (s *MemoryProductStore) ObserveTotalValue() *TotalValueSubscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalHub.Subscribe(s.totalLocked())
}

func (s *MemoryProductStore) listLocked() []models.Product {
	products := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].Code < products[j].Code
	})
	return products
}

func (s *MemoryProductStore) totalLocked() float64 {
	var total float64
	for _, p := range s.products {
		total += p.TotalValue()
	}
	return total
}

func (s *MemoryProductStore) publishLocked() {
	s.listHub.Publish(s.listLocked())
	s.totalHub.Publish(s.totalLocked())
}
