package controllers

import (
	"errors"
	"fmt"
	"sync"

	"inventorywidget/internal/models"
	"inventorywidget/internal/services"
)

// DetailState is the current state of the detail screen intent.
type DetailState struct {
	Kind    DetailStateKind
	Product *models.Product
}

// DetailController loads a single product and handles its deletion. Once the
// state reaches DetailDeleted the controller is done; the screen navigates
// away.
type DetailController struct {
	service *services.InventoryService

	mu      sync.Mutex
	state   DetailState
	updates chan DetailState
}

// NewDetailController creates a controller in the DetailLoading state.
func NewDetailController(service *services.InventoryService) *DetailController {
	return &DetailController{
		service: service,
		state:   DetailState{Kind: DetailLoading},
		updates: make(chan DetailState, 1),
	}
}

// Load fetches the product with the given code, landing in DetailFound or
// DetailNotFound.
func (c *DetailController) Load(code int) error {
	c.transition(DetailState{Kind: DetailLoading})

	product, err := c.service.GetByCode(code)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			c.transition(DetailState{Kind: DetailNotFound})
			return nil
		}
		return err
	}

	c.transition(DetailState{Kind: DetailFound, Product: product})
	return nil
}

// Delete removes the loaded product. On success the state becomes
// DetailDeleted (terminal). If the product vanished underneath us the state
// becomes DetailNotFound instead.
func (c *DetailController) Delete() error {
	c.mu.Lock()
	state := c.state
	c.mu.Unlock()

	if state.Kind != DetailFound || state.Product == nil {
		return fmt.Errorf("no product loaded to delete")
	}

	if err := c.service.Delete(state.Product.Code); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			c.transition(DetailState{Kind: DetailNotFound})
			return nil
		}
		return err
	}

	c.transition(DetailState{Kind: DetailDeleted})
	return nil
}

// State returns the current state.
func (c *DetailController) State() DetailState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Updates delivers each state transition; the channel conflates.
func (c *DetailController) Updates() <-chan DetailState {
	return c.updates
}

func (c *DetailController) transition(state DetailState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
	emit(c.updates, state)
}
