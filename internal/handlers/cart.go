package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/playmart/internal/cart"
	"github.com/example/playmart/internal/catalog"
	"github.com/example/playmart/internal/middleware"
)

// CartHandler manages the authenticated user's shopping cart.
type CartHandler struct {
	carts *cart.Store
	cat   *catalog.Catalog
}

// NewCartHandler constructs a CartHandler.
func NewCartHandler(carts *cart.Store, cat *catalog.Catalog) *CartHandler {
	return &CartHandler{carts: carts, cat: cat}
}

// GetCart returns the cart lines and recomputed total.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	return c.JSON(fiber.Map{"success": true, "data": h.carts.Snapshot(userID)})
}

// GetSummary returns the checkout summary for the current cart.
func (h *CartHandler) GetSummary(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	return c.JSON(fiber.Map{"success": true, "data": h.carts.Summarize(userID)})
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// AddItem puts a catalog product into the cart, merging quantities
// when the product is already there.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, found := h.cat.Product(req.ProductID)
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	err := h.carts.Add(userID, cart.Line{
		ProductID:     product.ID,
		Name:          product.Name,
		UnitPrice:     product.Price,
		OriginalPrice: product.OriginalPrice,
		Quantity:      req.Quantity,
	})
	if errors.Is(err, cart.ErrInvalidQuantity) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": h.carts.Snapshot(userID)})
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity sets the quantity of an existing cart line; zero or
// below removes the line.
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	err := h.carts.UpdateQuantity(userID, c.Params("id"), req.Quantity)
	if errors.Is(err, cart.ErrLineNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": h.carts.Snapshot(userID)})
}

// RemoveItem deletes a cart line; removing an absent line succeeds.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	h.carts.Remove(userID, c.Params("id"))
	return c.JSON(fiber.Map{"success": true, "data": h.carts.Snapshot(userID)})
}

// ClearCart empties the cart.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	h.carts.Clear(userID)
	return c.JSON(fiber.Map{"success": true, "data": h.carts.Snapshot(userID)})
}
