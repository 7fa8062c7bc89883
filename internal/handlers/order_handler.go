package handlers

import (
	"log"

	"butik/internal/apperrors"
	"butik/internal/middleware"
	"butik/internal/models"
	"butik/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app. Every order
// route requires authentication; the status update additionally requires
// admin.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, authed fiber.Handler, admin []fiber.Handler) {
	orderRoutes := router.Group("/orders", authed)
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)

	adminRoutes := router.Group("/orders", admin...)
	adminRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// HandleGetOrders lists the caller's orders; admins see every order.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return apperrors.Respond(c, apperrors.ErrUnauthenticated)
	}

	var (
		orders []models.Order
		err    error
	)
	if identity.IsAdmin {
		orders, err = h.service.GetAllOrders()
	} else {
		orders, err = h.service.GetOrdersByUser(identity.ID)
	}
	if err != nil {
		log.Printf("Error getting orders: %v", err)
		return apperrors.Respond(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order. The ownership check runs after
// the load succeeds: a missing order is 404 for everyone, an existing order
// belonging to someone else is 403.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return apperrors.Respond(c, apperrors.ErrUnauthenticated)
	}

	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		return apperrors.Respond(c, err)
	}

	if !identity.CanAccess(order.UserID) {
		return apperrors.Respond(c, apperrors.ErrForbidden)
	}
	return c.JSON(order)
}

// HandleCreateOrder creates a new order owned by the authenticated caller.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return apperrors.Respond(c, apperrors.ErrUnauthenticated)
	}

	var orderRequest models.Order
	if err := c.BodyParser(&orderRequest); err != nil {
		log.Printf("Error parsing order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if len(orderRequest.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "At least one item is required for an order.",
		})
	}

	createdOrder, err := h.service.CreateOrder(identity.ID, orderRequest)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return apperrors.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(createdOrder)
}

// HandleUpdateOrderStatus updates the status of an existing order. Reached
// only through the admin chain.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var updateData struct {
		Status string `json:"status"`
	}

	if err := c.BodyParser(&updateData); err != nil {
		log.Printf("Error parsing request body for status update: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
		})
	}

	if updateData.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update.",
		})
	}

	if err := h.service.UpdateOrderStatus(orderID, updateData.Status); err != nil {
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		return apperrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Order status updated successfully",
	})
}
