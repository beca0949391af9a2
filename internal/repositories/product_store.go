package repositories

import (
	"inventorywidget/internal/models"
)

// ProductStore is the durable keyed table of products and the single source
// of truth for inventory state.
//
// Mutations (Insert, Replace, Delete, DeleteAll) are serialized against each
// other by the implementation: one mutation completes fully, including its
// invariant checks, before the next begins. Reads may run concurrently with
// each other and never observe a half-applied write.
type ProductStore interface {
	// GetByCode returns the product with the given code, or
	// models.ErrProductNotFound if no such row exists.
	GetByCode(code int) (*models.Product, error)

	// Insert persists a new product. It fails with models.ErrDuplicateCode if
	// a row with the same code already exists; the existing row is untouched.
	Insert(product *models.Product) error

	// Replace atomically overwrites the mutable fields (name, unit price,
	// quantity) of the row identified by product.Code. The code itself never
	// changes. Fails with models.ErrProductNotFound if the row is missing.
	Replace(product *models.Product) error

	// Delete removes the row with the given code, failing with
	// models.ErrProductNotFound if it is absent.
	Delete(code int) error

	// DeleteAll clears the table.
	DeleteAll() error

	// ListByCode returns all products in ascending code order.
	ListByCode() ([]models.Product, error)

	// TotalValue returns the sum of unitPrice*quantity over all rows,
	// 0 for an empty store.
	TotalValue() (float64, error)

	// ObserveAll returns a live subscription to code-ordered snapshots of the
	// whole table, re-emitted after every committed mutation.
	ObserveAll() *ProductListSubscription

	// ObserveTotalValue returns a live subscription to the running inventory
	// total, re-emitted after every committed mutation.
	ObserveTotalValue() *TotalValueSubscription
}
