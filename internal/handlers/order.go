package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/playmart/internal/cart"
	"github.com/example/playmart/internal/middleware"
	"github.com/example/playmart/internal/models"
	"github.com/example/playmart/internal/notify"
	"github.com/example/playmart/internal/rewards"
	"github.com/example/playmart/internal/utils"
)

// OrderHandler turns the server-side cart into orders and serves order
// history.
type OrderHandler struct {
	db       *gorm.DB
	carts    *cart.Store
	svc      *rewards.Service
	notifier notify.Notifier
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(db *gorm.DB, carts *cart.Store, svc *rewards.Service, notifier notify.Notifier) *OrderHandler {
	return &OrderHandler{db: db, carts: carts, svc: svc, notifier: notifier}
}

// Checkout creates an order from the current cart, clears the cart and
// feeds the order count into the rewards record.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	snap := h.carts.Snapshot(userID)
	if len(snap.Lines) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "cart is empty")
	}
	summary := h.carts.Summarize(userID)

	orderID := uuid.New()
	order := models.Order{
		BaseModel:   models.BaseModel{ID: orderID},
		UserID:      userID,
		OrderNumber: orderNumber(orderID),
		Status:      "pending",
		PlacedAt:    time.Now(),
		Subtotal:    summary.Subtotal,
		ShippingFee: summary.Shipping,
		Tax:         summary.Tax,
		TotalAmount: summary.Total,
		Currency:    "USD",
	}

	for _, line := range snap.Lines {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.UnitPrice * float64(line.Quantity),
		})
	}

	if err := h.db.Create(&order).Error; err != nil {
		return err
	}

	h.carts.Clear(userID)
	progress := h.svc.RecordOrder(userID)

	if h.notifier != nil {
		h.notifier.Notify(notify.Event{
			UserID:      userID,
			Kind:        notify.KindOrder,
			Title:       "Order Placed!",
			Description: fmt.Sprintf("Order %s for $%.2f is on its way.", order.OrderNumber, order.TotalAmount),
			CreatedAt:   time.Now(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":           order.ID,
			"order_number": order.OrderNumber,
			"status":       order.Status,
			"placed_at":    order.PlacedAt,
			"total":        order.TotalAmount,
			"currency":     order.Currency,
			"total_orders": progress.TotalOrders,
		},
	})
}

// ListOrders returns orders for the authenticated user.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)
	query := h.db.Where("user_id = ?", userID).Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").
		Order("placed_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetOrder returns a single order for the authenticated user.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("Items").
		First(&order, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

// orderNumber derives the customer-facing number from the order id, so
// it can never collide with the unique index on order_number.
func orderNumber(id uuid.UUID) string {
	return "#" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
}
