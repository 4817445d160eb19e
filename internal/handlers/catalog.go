package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/playmart/internal/catalog"
)

// CatalogHandler serves the static read-only catalogs.
type CatalogHandler struct {
	cat *catalog.Catalog
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{cat: cat}
}

// ListProducts returns the storefront products, filterable by category
// and search term. Quick-delivery essentials are listed via their own
// endpoint.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	category := c.Query("category")
	search := strings.ToLower(c.Query("search"))

	products := make([]catalog.Product, 0, len(h.cat.Products))
	for _, p := range h.cat.Products {
		if p.QuickDelivery {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		products = append(products, p)
	}

	return c.JSON(fiber.Map{"success": true, "data": products})
}

// ListQuickDelivery returns the quick-delivery essentials.
func (h *CatalogHandler) ListQuickDelivery(c *fiber.Ctx) error {
	products := make([]catalog.Product, 0)
	for _, p := range h.cat.Products {
		if p.QuickDelivery {
			products = append(products, p)
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": products})
}

// GetProduct returns a single product by id.
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	product, found := h.cat.Product(c.Params("id"))
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

// ListSpinRewards returns the wheel segments.
func (h *CatalogHandler) ListSpinRewards(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": h.cat.Rewards})
}

// ListBadges returns the badge definitions.
func (h *CatalogHandler) ListBadges(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": h.cat.Badges})
}

// GetQuizInfo describes today's quiz without revealing questions or
// answers: how many questions are drawn and the maximum points in the
// whole pool.
func (h *CatalogHandler) GetQuizInfo(c *fiber.Ctx) error {
	totalPoints := 0
	for _, q := range h.cat.Questions {
		totalPoints += q.Points
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"pool_size":   len(h.cat.Questions),
			"pool_points": totalPoints,
		},
	})
}
