package controllers_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"inventorywidget/internal/controllers"
	"inventorywidget/internal/models"
	"inventorywidget/internal/repositories"
	"inventorywidget/internal/services"
)

func newService() (*services.InventoryService, *repositories.MemoryProductStore) {
	store := repositories.NewMemoryProductStore()
	return services.NewInventoryService(store, nil), store
}

func createPen(t *testing.T, service *services.InventoryService) *models.Product {
	t.Helper()
	product, err := service.Create(services.CreateInput{
		Code: "12", Name: "Pen", UnitPrice: "3.50", Quantity: "10",
	})
	assert.NoError(t, err)
	return product
}

func TestListController_TracksProductsAndTotal(t *testing.T) {
	service, _ := newService()

	list := controllers.NewListController(service)
	defer list.Close()

	// The empty store is a valid success state, not an error.
	assert.Eventually(t, func() bool {
		state := list.State()
		return len(state.Products) == 0 && state.TotalValue == 0
	}, time.Second, 5*time.Millisecond)

	createPen(t, service)

	assert.Eventually(t, func() bool {
		state := list.State()
		return len(state.Products) == 1 && state.TotalValue == 35.0
	}, time.Second, 5*time.Millisecond)

	assert.NoError(t, service.Delete(12))

	assert.Eventually(t, func() bool {
		state := list.State()
		return len(state.Products) == 0 && state.TotalValue == 0
	}, time.Second, 5*time.Millisecond)
}

func TestListController_UpdatesChannelDeliversNewestState(t *testing.T) {
	service, _ := newService()

	list := controllers.NewListController(service)
	defer list.Close()

	createPen(t, service)

	deadline := time.After(time.Second)
	for {
		select {
		case state := <-list.Updates():
			if len(state.Products) == 1 && state.TotalValue == 35.0 {
				return
			}
		case <-deadline:
			t.Fatal("never observed the post-create list state")
		}
	}
}

func TestListController_CloseIsIdempotent(t *testing.T) {
	service, _ := newService()
	list := controllers.NewListController(service)
	list.Close()
	list.Close()
}

func TestDetailController_LoadFound(t *testing.T) {
	service, _ := newService()
	createPen(t, service)

	detail := controllers.NewDetailController(service)
	assert.Equal(t, controllers.DetailLoading, detail.State().Kind)

	assert.NoError(t, detail.Load(12))
	state := detail.State()
	assert.Equal(t, controllers.DetailFound, state.Kind)
	assert.Equal(t, "Pen", state.Product.Name)
}

func TestDetailController_LoadMissing(t *testing.T) {
	service, _ := newService()

	detail := controllers.NewDetailController(service)
	assert.NoError(t, detail.Load(404))
	assert.Equal(t, controllers.DetailNotFound, detail.State().Kind)
}

func TestDetailController_DeleteIsTerminal(t *testing.T) {
	service, store := newService()
	createPen(t, service)

	detail := controllers.NewDetailController(service)
	assert.NoError(t, detail.Load(12))

	assert.NoError(t, detail.Delete())
	assert.Equal(t, controllers.DetailDeleted, detail.State().Kind)

	products, err := store.ListByCode()
	assert.NoError(t, err)
	assert.Empty(t, products)

	// A second delete has nothing loaded to act on.
	assert.Error(t, detail.Delete())
}

func TestDetailController_DeleteOfVanishedProduct(t *testing.T) {
	service, _ := newService()
	createPen(t, service)

	detail := controllers.NewDetailController(service)
	assert.NoError(t, detail.Load(12))

	// Another flow removed the product while the detail screen was open.
	assert.NoError(t, service.Delete(12))

	assert.NoError(t, detail.Delete())
	assert.Equal(t, controllers.DetailNotFound, detail.State().Kind)
}

func TestAddController_BlankFieldsKeepFormEditable(t *testing.T) {
	service, store := newService()

	add := controllers.NewAddController(service)
	assert.False(t, add.CanSave("12", "", "3.50", "10"))

	add.Save("12", "", "3.50", "10")
	assert.Equal(t, controllers.FormEditable, add.State().Kind)

	products, err := store.ListByCode()
	assert.NoError(t, err)
	assert.Empty(t, products)
}

func TestAddController_SaveSucceeds(t *testing.T) {
	service, _ := newService()

	add := controllers.NewAddController(service)
	assert.True(t, add.CanSave("12", "Pen", "3.50", "10"))

	add.Save("12", "Pen", "3.50", "10")
	assert.Equal(t, controllers.FormSuccess, add.State().Kind)

	product, err := service.GetByCode(12)
	assert.NoError(t, err)
	assert.Equal(t, "Pen", product.Name)
}

func TestAddController_ErrorAllowsRetry(t *testing.T) {
	service, _ := newService()
	createPen(t, service)

	add := controllers.NewAddController(service)

	// Duplicate code: the save fails with a user-visible message.
	add.Save("12", "Marker", "1.00", "1")
	state := add.State()
	assert.Equal(t, controllers.FormError, state.Kind)
	assert.NotEmpty(t, state.Message)

	// The error is not terminal; a corrected retry goes through.
	add.Save("13", "Marker", "1.00", "1")
	assert.Equal(t, controllers.FormSuccess, add.State().Kind)
}

func TestAddController_ValidationFailureMessage(t *testing.T) {
	service, _ := newService()

	add := controllers.NewAddController(service)
	add.Save("99999", "Pen", "3.50", "10")

	state := add.State()
	assert.Equal(t, controllers.FormError, state.Kind)
	assert.Contains(t, state.Message, "1 to 4 digits")
}

func TestEditController_LoadAndSave(t *testing.T) {
	service, _ := newService()
	createPen(t, service)

	edit := controllers.NewEditController(service)
	assert.NoError(t, edit.Load(12))
	assert.Equal(t, "Pen", edit.Product().Name)

	edit.Save("Pencil", "2.00", "4")
	assert.Equal(t, controllers.FormSuccess, edit.State().Kind)
	assert.Equal(t, "Pencil", edit.Product().Name)

	product, err := service.GetByCode(12)
	assert.NoError(t, err)
	assert.Equal(t, "Pencil", product.Name)
	assert.Equal(t, 12, product.Code)
}

func TestEditController_BlankFieldGate(t *testing.T) {
	service, _ := newService()
	createPen(t, service)

	edit := controllers.NewEditController(service)
	assert.NoError(t, edit.Load(12))

	edit.Save("", "2.00", "4")
	assert.Equal(t, controllers.FormEditable, edit.State().Kind)
}

func TestEditController_SaveWithoutLoad(t *testing.T) {
	service, _ := newService()

	edit := controllers.NewEditController(service)
	edit.Save("Pencil", "2.00", "4")
	assert.Equal(t, controllers.FormError, edit.State().Kind)
}
