package controllers

import (
	"sync"

	"inventorywidget/internal/models"
	"inventorywidget/internal/services"
)

// EditController drives the edit-product form. It first loads the product
// being edited, then accepts updated fields for its mutable part; the code
// itself cannot be changed here.
type EditController struct {
	service *services.InventoryService

	mu      sync.Mutex
	product *models.Product
	state   FormState
	updates chan FormState
}

// NewEditController creates a controller in the FormEditable state.
func NewEditController(service *services.InventoryService) *EditController {
	return &EditController{
		service: service,
		state:   FormState{Kind: FormEditable},
		updates: make(chan FormState, 1),
	}
}

// Load fetches the product under edit so the form can prefill its fields.
func (c *EditController) Load(code int) error {
	product, err := c.service.GetByCode(code)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.product = product
	c.mu.Unlock()
	return nil
}

// Product returns the loaded product, or nil before Load succeeds.
func (c *EditController) Product() *models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.product
}

// CanSave reports whether the save button should be enabled: all three
// editable fields must be non-blank.
func (c *EditController) CanSave(name, price, quantity string) bool {
	return allFilled(name, price, quantity)
}

// Save validates and applies the update through the service. It refuses to
// leave FormEditable while any field is blank or no product is loaded.
func (c *EditController) Save(name, price, quantity string) {
	c.mu.Lock()
	kind := c.state.Kind
	product := c.product
	c.mu.Unlock()
	if kind == FormSaving || kind == FormSuccess {
		return
	}
	if product == nil {
		c.transition(FormState{Kind: FormError, Message: "no product loaded"})
		return
	}

	if !c.CanSave(name, price, quantity) {
		return
	}

	c.transition(FormState{Kind: FormSaving})

	updated, err := c.service.Update(product.Code, services.UpdateInput{
		Name:      name,
		UnitPrice: price,
		Quantity:  quantity,
	})
	if err != nil {
		c.transition(FormState{Kind: FormError, Message: saveFailureMessage(err)})
		return
	}

	c.mu.Lock()
	c.product = updated
	c.mu.Unlock()
	c.transition(FormState{Kind: FormSuccess})
}

// Reset returns an errored form to FormEditable.
func (c *EditController) Reset() {
	c.transition(FormState{Kind: FormEditable})
}

// State returns the current state.
func (c *EditController) State() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Updates delivers each state transition; the channel conflates.
func (c *EditController) Updates() <-chan FormState {
	return c.updates
}

func (c *EditController) transition(state FormState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
	emit(c.updates, state)
}
