package repositories

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"inventorywidget/internal/models"
)

// totalValueQuery sums the worth of every row. COALESCE keeps an empty table
// at a defined zero instead of NULL. The quoted column name works on both
// SQLite and PostgreSQL.
const totalValueQuery = `SELECT COALESCE(SUM("unitPrice" * quantity), 0) FROM products`

// GORMProductStore is a GORM implementation of ProductStore.
//
// A single mutex serializes all mutations; change notifications are published
// while it is held, so subscribers see notifications in commit order.
type GORMProductStore struct {
	db       *gorm.DB
	validate *validator.Validate

	mu       sync.Mutex
	listHub  *hub[[]models.Product]
	totalHub *hub[float64]
}

// NewGORMProductStore creates a new instance of GORMProductStore.
func NewGORMProductStore(db *gorm.DB) *GORMProductStore {
	return &GORMProductStore{
		db:       db,
		validate: validator.New(),
		listHub:  newHub[[]models.Product](),
		totalHub: newHub[float64](),
	}
}

// GetByCode retrieves a single product by its code.
func (s *GORMProductStore) GetByCode(code int) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with code %d: %w", code, models.ErrProductNotFound)
		}
		return nil, models.NewStorageError("get", err)
	}
	return &product, nil
}

// Insert persists a new product. The existence check and the insert run under
// the mutation lock as one atomic unit, so two concurrent inserts for the same
// code cannot both pass the check.
func (s *GORMProductStore) Insert(product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		return fmt.Errorf("product failed constraint check: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var existing models.Product
	err := s.db.First(&existing, "code = ?", product.Code).Error
	if err == nil {
		return fmt.Errorf("insert of code %d: %w", product.Code, models.ErrDuplicateCode)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewStorageError("insert", err)
	}

	if err := s.db.Create(product).Error; err != nil {
		return models.NewStorageError("insert", err)
	}

	s.publishLocked()
	return nil
}

// Replace overwrites the mutable fields of an existing product.
func (s *GORMProductStore) Replace(product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		return fmt.Errorf("product failed constraint check: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.db.Model(&models.Product{}).Where("code = ?", product.Code).Updates(map[string]interface{}{
		"name":      product.Name,
		"unitPrice": product.UnitPrice,
		"quantity":  product.Quantity,
	})
	if res.Error != nil {
		return models.NewStorageError("replace", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("replace of code %d: %w", product.Code, models.ErrProductNotFound)
	}

	s.publishLocked()
	return nil
}

// Delete removes a product by its code.
func (s *GORMProductStore) Delete(code int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.db.Delete(&models.Product{}, "code = ?", code)
	if res.Error != nil {
		return models.NewStorageError("delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete of code %d: %w", code, models.ErrProductNotFound)
	}

	s.publishLocked()
	return nil
}

// DeleteAll clears the products table.
func (s *GORMProductStore) DeleteAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
		return models.NewStorageError("delete all", err)
	}

	s.publishLocked()
	return nil
}

// ListByCode retrieves all products in ascending code order.
func (s *GORMProductStore) ListByCode() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Order("code ASC").Find(&products).Error; err != nil {
		return nil, models.NewStorageError("list", err)
	}
	return products, nil
}

// TotalValue returns the current inventory total, 0 for an empty store.
func (s *GORMProductStore) TotalValue() (float64, error) {
	var total float64
	if err := s.db.Raw(totalValueQuery).Scan(&total).Error; err != nil {
		return 0, models.NewStorageError("total value", err)
	}
	return total, nil
}

// ObserveAll subscribes to code-ordered snapshots of the whole table. The
// mutation lock is held across snapshot and registration so a commit in
// between cannot leave the new subscriber primed with a stale snapshot it
// will never be notified about.
func (s *GORMProductStore) ObserveAll() *ProductListSubscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.ListByCode()
	if err != nil {
		current = []models.Product{}
	}
	return s.listHub.Subscribe(current)
}

// ObserveTotalValue subscribes to the running inventory total.
func (s *GORMProductStore) ObserveTotalValue() *TotalValueSubscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.TotalValue()
	if err != nil {
		current = 0
	}
	return s.totalHub.Subscribe(current)
}

// publishLocked pushes fresh snapshots to both hubs. Callers hold s.mu, which
// makes notification order equal commit order. A failed post-commit read is
// logged and the notification skipped; the next successful mutation republishes
// the full state.
func (s *GORMProductStore) publishLocked() {
	if products, err := s.ListByCode(); err == nil {
		s.listHub.Publish(products)
	} else {
		log.Printf("skipping product list notification, post-commit read failed: %v", err)
	}
	if total, err := s.TotalValue(); err == nil {
		s.totalHub.Publish(total)
	} else {
		log.Printf("skipping total value notification, post-commit read failed: %v", err)
	}
}
