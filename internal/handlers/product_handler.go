package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"inventorywidget/internal/models"
	"inventorywidget/internal/services"
)

// ProductHandler exposes the inventory over HTTP for the app's screens.
type ProductHandler struct {
	service *services.InventoryService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.InventoryService) *ProductHandler {
	return &ProductHandler{service: service}
}

// RegisterRoutes registers the product and inventory routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Get("/", h.HandleList)
	products.Get("/:code", h.HandleGet)
	products.Post("/", h.HandleCreate)
	products.Put("/:code", h.HandleUpdate)
	products.Delete("/:code", h.HandleDelete)

	router.Get("/inventory/value", h.HandleTotalValue)
}

// HandleList returns all products in code order plus the inventory total.
// The total is derived from the same delivered snapshot as the product list,
// so the two halves of the response can never disagree.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	sub := h.service.ObserveAll()
	defer sub.Cancel()
	products := <-sub.C

	var total float64
	for _, p := range products {
		total += p.TotalValue()
	}

	return c.JSON(fiber.Map{
		"products":    products,
		"total_value": total,
	})
}

// HandleGet returns a single product by code.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	code, err := parseCodeParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Product code must be numeric",
		})
	}

	product, err := h.service.GetByCode(code)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(product)
}

// HandleCreate creates a new product from raw form fields.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var input services.CreateInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing create request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.service.Create(input)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdate updates the mutable fields of an existing product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	code, err := parseCodeParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Product code must be numeric",
		})
	}

	var input services.UpdateInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.service.Update(code, input)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(product)
}

// HandleDelete removes a product by code.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	code, err := parseCodeParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Product code must be numeric",
		})
	}

	if err := h.service.Delete(code); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// HandleTotalValue returns a one-shot read of the inventory total.
func (h *ProductHandler) HandleTotalValue(c *fiber.Ctx) error {
	total, err := h.service.SnapshotTotalValue()
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"total_value": total})
}

// fail maps service errors onto HTTP responses: field validation and conflict
// errors stay specific and user-visible, storage failures stay opaque.
func (h *ProductHandler) fail(c *fiber.Ctx, err error) error {
	if verr, ok := models.AsValidationError(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"reason":  string(verr.Reason),
			"field":   verr.Field,
			"error":   verr.Message,
		})
	}
	if errors.Is(err, models.ErrDuplicateCode) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "A product with this code already exists",
		})
	}
	if errors.Is(err, models.ErrProductNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
		})
	}

	log.Printf("Inventory operation failed: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
	})
}

func parseCodeParam(c *fiber.Ctx) (int, error) {
	return strconv.Atoi(c.Params("code"))
}
