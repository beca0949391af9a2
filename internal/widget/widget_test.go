package widget_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"inventorywidget/internal/repositories"
	"inventorywidget/internal/services"
	"inventorywidget/internal/widget"
)

type failingSnapshotter struct{}

func (failingSnapshotter) SnapshotTotalValue() (float64, error) {
	return 0, errors.New("disk I/O error")
}

func newInventory(t *testing.T) *services.InventoryService {
	t.Helper()
	store := repositories.NewMemoryProductStore()
	service := services.NewInventoryService(store, nil)
	_, err := service.Create(services.CreateInput{
		Code: "12", Name: "Pen", UnitPrice: "3.50", Quantity: "10",
	})
	assert.NoError(t, err)
	return service
}

func TestPoller_RendersValueWhenVisible(t *testing.T) {
	service := newInventory(t)

	poller := widget.NewPoller(service, time.Minute)
	defer poller.Stop()

	assert.True(t, poller.Visible())
	assert.Equal(t, "$ 35.00", poller.Rendered())
}

func TestPoller_MasksWhenHidden(t *testing.T) {
	service := newInventory(t)

	poller := widget.NewPoller(service, time.Minute)
	defer poller.Stop()

	poller.ToggleVisibility()
	assert.False(t, poller.Visible())
	assert.Equal(t, "$ ******", poller.Rendered())

	poller.ToggleVisibility()
	assert.Equal(t, "$ 35.00", poller.Rendered())
}

func TestPoller_MasksEmptyInventory(t *testing.T) {
	store := repositories.NewMemoryProductStore()
	service := services.NewInventoryService(store, nil)

	poller := widget.NewPoller(service, time.Minute)
	defer poller.Stop()

	assert.Equal(t, "$ ******", poller.Rendered())
}

func TestPoller_MasksOnStorageFailure(t *testing.T) {
	poller := widget.NewPoller(failingSnapshotter{}, time.Minute)
	defer poller.Stop()

	assert.Equal(t, "$ ******", poller.Rendered())
}

func TestPoller_RefreshPicksUpChanges(t *testing.T) {
	service := newInventory(t)

	poller := widget.NewPoller(service, time.Minute)
	defer poller.Stop()
	assert.Equal(t, "$ 35.00", poller.Rendered())

	// The poller holds no subscription; it only sees the change on the next
	// poll or trigger.
	_, err := service.Update(12, services.UpdateInput{Name: "Pen", UnitPrice: "3.50", Quantity: "20"})
	assert.NoError(t, err)
	assert.Equal(t, "$ 35.00", poller.Rendered())

	poller.Refresh()
	assert.Equal(t, "$ 70.00", poller.Rendered())
}

func TestPoller_TimerDrivenRefresh(t *testing.T) {
	service := newInventory(t)

	poller := widget.NewPoller(service, 10*time.Millisecond)
	poller.Start()
	defer poller.Stop()

	_, err := service.Update(12, services.UpdateInput{Name: "Pen", UnitPrice: "3.50", Quantity: "0"})
	assert.NoError(t, err)

	assert.Eventually(t, func() bool {
		return poller.Rendered() == "$ ******"
	}, time.Second, 5*time.Millisecond)
}
