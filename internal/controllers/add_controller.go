package controllers

import (
	"fmt"
	"strings"
	"sync"

	"inventorywidget/internal/services"
)

// FormState is the current state of an add or edit screen intent.
type FormState struct {
	Kind    FormStateKind
	Message string // set when Kind is FormError
}

// AddController drives the add-product form. Saving is entered only when
// every field is non-blank (a screen-level gate, separate from field
// validation); a failed save lands in FormError and the user may retry.
type AddController struct {
	service *services.InventoryService

	mu      sync.Mutex
	state   FormState
	updates chan FormState
}

// NewAddController creates a controller in the FormEditable state.
func NewAddController(service *services.InventoryService) *AddController {
	return &AddController{
		service: service,
		state:   FormState{Kind: FormEditable},
		updates: make(chan FormState, 1),
	}
}

// CanSave reports whether the save button should be enabled: all four fields
// must be non-blank.
func (c *AddController) CanSave(code, name, price, quantity string) bool {
	return allFilled(code, name, price, quantity)
}

// Save validates and persists a new product through the service. It refuses
// to leave FormEditable while any field is blank.
func (c *AddController) Save(code, name, price, quantity string) {
	c.mu.Lock()
	kind := c.state.Kind
	c.mu.Unlock()
	if kind == FormSaving || kind == FormSuccess {
		return
	}

	if !c.CanSave(code, name, price, quantity) {
		return
	}

	c.transition(FormState{Kind: FormSaving})

	if _, err := c.service.Create(services.CreateInput{
		Code:      code,
		Name:      name,
		UnitPrice: price,
		Quantity:  quantity,
	}); err != nil {
		c.transition(FormState{Kind: FormError, Message: saveFailureMessage(err)})
		return
	}

	c.transition(FormState{Kind: FormSuccess})
}

// Reset returns an errored form to FormEditable.
func (c *AddController) Reset() {
	c.transition(FormState{Kind: FormEditable})
}

// State returns the current state.
func (c *AddController) State() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Updates delivers each state transition; the channel conflates.
func (c *AddController) Updates() <-chan FormState {
	return c.updates
}

func (c *AddController) transition(state FormState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
	emit(c.updates, state)
}

func allFilled(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}

func saveFailureMessage(err error) string {
	return fmt.Sprintf("could not save product: %v", err)
}
