package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"butik/internal/apperrors"
	"butik/internal/models"
	"butik/internal/repositories"

	"github.com/google/uuid"
)

// EventPublisher publishes domain events to the message broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	publisher   EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrdersByUser retrieves the orders placed by one user.
func (s *OrderService) GetOrdersByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// CreateOrder validates the requested items against the catalog, captures
// current prices, computes the total and persists the order for the given
// owner. The owner always comes from the authenticated identity, never from
// the request body.
func (s *OrderService) CreateOrder(ownerID string, orderRequest models.Order) (*models.Order, error) {
	var totalAmount float64
	var processedItems []models.OrderItem

	for _, item := range orderRequest.Items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", item.ProductID, err)
		}

		if product.Stock < item.Quantity {
			return nil, fmt.Errorf("insufficient stock for product %s (requested: %d, available: %d): %w", product.Name, item.Quantity, product.Stock, apperrors.ErrBadRequest)
		}

		itemPrice := product.Price // Price at the time of order creation
		processedItems = append(processedItems, models.OrderItem{
			ProductID: item.ProductID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			Price:     itemPrice,
		})
		totalAmount += itemPrice * float64(item.Quantity)
	}

	newOrder := &models.Order{
		ID:              uuid.New().String(),
		UserID:          ownerID,
		Items:           processedItems,
		ShippingAddress: orderRequest.ShippingAddress,
		PaymentMethod:   orderRequest.PaymentMethod,
		TotalAmount:     totalAmount,
		Status:          models.OrderStatusPending,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := s.orderRepo.Create(newOrder); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	// Publish an order.created event. Publish failure is logged, never
	// surfaced: the order is already committed.
	if s.publisher != nil {
		event := map[string]interface{}{
			"orderID": newOrder.ID,
			"userID":  newOrder.UserID,
			"status":  newOrder.Status,
			"total":   newOrder.TotalAmount,
		}
		messageBody, err := json.Marshal(event)
		if err != nil {
			log.Printf("Failed to marshal order event to JSON: %v", err)
		} else if err := s.publisher.Publish("order", "order.created", messageBody); err != nil {
			log.Printf("Warning: Failed to publish order created event for order %s: %v", newOrder.ID, err)
		} else {
			log.Printf("Successfully published order created event for order %s", newOrder.ID)
		}
	} else {
		log.Println("Event publisher is not initialized. Skipping message publication.")
	}

	return newOrder, nil
}

// UpdateOrderStatus updates the status of an existing order.
func (s *OrderService) UpdateOrderStatus(id string, status string) error {
	validStatuses := map[string]bool{
		models.OrderStatusPending:    true,
		models.OrderStatusProcessing: true,
		models.OrderStatusShipped:    true,
		models.OrderStatusDelivered:  true,
		models.OrderStatusCancelled:  true,
	}
	if _, ok := validStatuses[status]; !ok {
		return fmt.Errorf("invalid order status %s: %w", status, apperrors.ErrBadRequest)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	return nil
}
