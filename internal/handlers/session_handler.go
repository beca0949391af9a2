package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"inventorywidget/internal/session"
)

// SessionHandler exposes the unlock and logout endpoints of the auth gate.
type SessionHandler struct {
	manager *session.Manager
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(manager *session.Manager) *SessionHandler {
	return &SessionHandler{manager: manager}
}

// RegisterRoutes registers the session routes.
func (h *SessionHandler) RegisterRoutes(router fiber.Router) {
	sessionRoutes := router.Group("/session")
	sessionRoutes.Post("/unlock", h.HandleUnlock)
	sessionRoutes.Post("/logout", h.HandleLogout)
}

// UnlockRequest represents the request body for unlocking a session.
type UnlockRequest struct {
	Pin      string `json:"pin"`
	UserName string `json:"user_name"`
}

// HandleUnlock opens a session and returns its token.
func (h *SessionHandler) HandleUnlock(c *fiber.Ctx) error {
	var req UnlockRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing unlock request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	token, err := h.manager.Unlock(req.Pin, req.UserName)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Session unlocked",
		"token":   token,
	})
}

// HandleLogout closes the current session.
func (h *SessionHandler) HandleLogout(c *fiber.Ctx) error {
	h.manager.Logout()
	return c.JSON(fiber.Map{"message": "Session locked"})
}
