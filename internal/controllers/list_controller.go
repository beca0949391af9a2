package controllers

import (
	"sync"

	"inventorywidget/internal/models"
	"inventorywidget/internal/repositories"
	"inventorywidget/internal/services"
)

// ListState is what the product list screen renders: the ordered products and
// the running inventory total. An empty product slice is a valid state, not an
// error; the screen decides how to present "no products".
type ListState struct {
	Products   []models.Product
	TotalValue float64
}

// ListController keeps the list screen's state current by holding standing
// subscriptions to the product feed and the inventory total. It has no
// loading or error states of its own.
type ListController struct {
	mu    sync.Mutex
	state ListState

	updates chan ListState
	done    chan struct{}
	once    sync.Once

	productsSub *repositories.ProductListSubscription
	totalSub    *repositories.TotalValueSubscription
}

// NewListController subscribes to the service's live queries and starts
// tracking them. Callers must Close the controller when the screen goes away.
func NewListController(service *services.InventoryService) *ListController {
	products := service.ObserveAll()
	total := service.ObserveTotalValue()

	c := &ListController{
		updates:     make(chan ListState, 1),
		done:        make(chan struct{}),
		productsSub: products,
		totalSub:    total,
	}

	go func() {
		productCh := products.C
		totalCh := total.C
		for productCh != nil || totalCh != nil {
			select {
			case <-c.done:
				return
			case snapshot, ok := <-productCh:
				if !ok {
					productCh = nil
					continue
				}
				c.mu.Lock()
				c.state.Products = snapshot
				state := c.state
				c.mu.Unlock()
				emit(c.updates, state)
			case value, ok := <-totalCh:
				if !ok {
					totalCh = nil
					continue
				}
				c.mu.Lock()
				c.state.TotalValue = value
				state := c.state
				c.mu.Unlock()
				emit(c.updates, state)
			}
		}
	}()

	return c
}

// State returns the most recent list state.
func (c *ListController) State() ListState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Updates delivers a fresh state after every observed change. The channel
// conflates, so a slow renderer only ever sees the newest state.
func (c *ListController) Updates() <-chan ListState {
	return c.updates
}

// Close cancels both subscriptions. Idempotent.
func (c *ListController) Close() {
	c.once.Do(func() {
		close(c.done)
		c.productsSub.Cancel()
		c.totalSub.Cancel()
	})
}
