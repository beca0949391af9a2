package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"inventorywidget/internal/models"
	"inventorywidget/internal/repositories"
	"inventorywidget/internal/validation"
	"inventorywidget/pkg/events"
)

// CreateInput carries the raw form fields for a new product, exactly as the
// user typed them.
type CreateInput struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  string `json:"quantity"`
}

// UpdateInput carries the raw form fields for an update. The code is not
// among them: identity is immutable.
type UpdateInput struct {
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  string `json:"quantity"`
}

// InventoryService mediates all access to the product store. It is the only
// component that calls the store's mutation operations: every write passes
// through field validation first, and creates get a duplicate-code pre-check
// so the user sees a specific conflict error instead of a bare store failure.
type InventoryService struct {
	store     repositories.ProductStore
	publisher events.Publisher // optional; nil disables event publication
}

// NewInventoryService creates a new InventoryService. publisher may be nil.
func NewInventoryService(store repositories.ProductStore, publisher events.Publisher) *InventoryService {
	return &InventoryService{
		store:     store,
		publisher: publisher,
	}
}

// Create validates the raw fields and inserts a new product.
//
// The duplicate check runs before the insert so that a taken code surfaces as
// models.ErrDuplicateCode; the store's own uniqueness check under its mutation
// lock is the backstop if two creates race past this pre-check.
func (s *InventoryService) Create(input CreateInput) (*models.Product, error) {
	fields, err := validation.ForCreate(input.Code, input.Name, input.UnitPrice, input.Quantity)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetByCode(fields.Code)
	if err != nil && !errors.Is(err, models.ErrProductNotFound) {
		return nil, fmt.Errorf("checking code %d before create: %w", fields.Code, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("create with code %d: %w", fields.Code, models.ErrDuplicateCode)
	}

	product := &models.Product{
		Code:      fields.Code,
		Name:      fields.Name,
		UnitPrice: fields.UnitPrice,
		Quantity:  fields.Quantity,
	}
	if err := s.store.Insert(product); err != nil {
		return nil, err
	}

	s.publishChange("created", product.Code)
	return product, nil
}

// Update validates the raw fields and replaces the mutable fields of the
// product with the given code. Fails with models.ErrProductNotFound if the
// product has disappeared, e.g. deleted by another screen in the meantime.
func (s *InventoryService) Update(code int, input UpdateInput) (*models.Product, error) {
	if _, err := s.store.GetByCode(code); err != nil {
		return nil, err
	}

	fields, err := validation.ForUpdate(input.Name, input.UnitPrice, input.Quantity)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Code:      code,
		Name:      fields.Name,
		UnitPrice: fields.UnitPrice,
		Quantity:  fields.Quantity,
	}
	if err := s.store.Replace(product); err != nil {
		return nil, err
	}

	s.publishChange("updated", code)
	return product, nil
}

// Delete removes the product with the given code.
func (s *InventoryService) Delete(code int) error {
	if err := s.store.Delete(code); err != nil {
		return err
	}
	s.publishChange("deleted", code)
	return nil
}

// GetByCode returns a single product.
func (s *InventoryService) GetByCode(code int) (*models.Product, error) {
	return s.store.GetByCode(code)
}

// ObserveAll is a passthrough of the store's live ordered product feed.
func (s *InventoryService) ObserveAll() *repositories.ProductListSubscription {
	return s.store.ObserveAll()
}

// ObserveTotalValue is a passthrough of the store's live inventory total.
func (s *InventoryService) ObserveTotalValue() *repositories.TotalValueSubscription {
	return s.store.ObserveTotalValue()
}

// SnapshotTotalValue reads the current inventory total once. The widget polls
// this instead of holding a standing subscription.
func (s *InventoryService) SnapshotTotalValue() (float64, error) {
	return s.store.TotalValue()
}

// publishChange emits an inventory change event if a publisher is attached.
// Failures are logged and never fail the mutation that triggered them.
func (s *InventoryService) publishChange(action string, code int) {
	if s.publisher == nil {
		return
	}

	total, err := s.store.TotalValue()
	if err != nil {
		log.Printf("warning: could not read total for %s event: %v", action, err)
	}

	event := events.InventoryChanged{
		Action:     action,
		Code:       code,
		TotalValue: total,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.PublishInventoryChanged(event); err != nil {
		log.Printf("warning: failed to publish inventory %s event: %v", action, err)
	}
}
