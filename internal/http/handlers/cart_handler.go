package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"partscout/internal/domain"
	applog "partscout/internal/log"
	"partscout/internal/pricing"
	"partscout/internal/services"
	"partscout/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return c.Status(400).SendString("missing productId")
	}
	vendor, ok := validate.Vendor(c.FormValue("vendor"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "vendor"})
		return c.Status(400).SendString("invalid vendor")
	}

	line, err := h.Cart.Add(sid, productID, vendor)
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		return notFound(c, fiber.StatusNotFound, "This item is no longer available. Search again.")
	case errors.Is(err, services.ErrVendorNotFound):
		return notFound(c, fiber.StatusBadRequest, "That store does not list this item.")
	case errors.Is(err, services.ErrOutOfStock):
		return notFound(c, fiber.StatusConflict, "That store is out of stock.")
	case err != nil:
		applog.Error(c, "cart.add.fail", err, map[string]any{"product": productID, "vendor": vendor})
		return notFound(c, fiber.StatusInternalServerError, "Could not add item")
	}
	applog.Audit(c, "cart.add", map[string]any{"product": productID, "vendor": vendor, "price": line.Price.String()})
	return c.Redirect("/cart")
}

// AddCustom puts a hand-entered product in the cart.
func (h *CartHandler) AddCustom(c *fiber.Ctx) error {
	sid := ensureSID(c)
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return notFound(c, fiber.StatusBadRequest, "Enter a product name.")
	}
	price, ok := validate.Price(c.FormValue("price"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "price"})
		return notFound(c, fiber.StatusBadRequest, "Enter a price like 199.00.")
	}
	image, ok := validate.URL(c.FormValue("image"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "image"})
		return notFound(c, fiber.StatusBadRequest, "Image must be an http(s) link.")
	}
	link, ok := validate.URL(c.FormValue("url"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "url"})
		return notFound(c, fiber.StatusBadRequest, "Link must be an http(s) link.")
	}
	var vendor domain.Vendor
	if raw := c.FormValue("vendor"); raw != "" {
		if vendor, ok = validate.Vendor(raw); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "vendor"})
			return notFound(c, fiber.StatusBadRequest, "Unknown store.")
		}
	}

	line, err := h.Cart.AddCustom(sid, name, image, price.String(), link, vendor)
	if errors.Is(err, services.ErrInvalidProduct) {
		return notFound(c, fiber.StatusBadRequest, "Check the product details and try again.")
	}
	if err != nil {
		applog.Error(c, "cart.custom.fail", err, map[string]any{"vendor": vendor})
		return notFound(c, fiber.StatusInternalServerError, "Could not add item")
	}
	applog.Audit(c, "cart.custom", map[string]any{"name": line.Name, "vendor": line.Vendor, "price": line.Price.String()})
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return c.Status(400).SendString("missing name")
	}
	vendor, ok := validate.Vendor(c.FormValue("vendor"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "vendor"})
		return c.Status(400).SendString("invalid vendor")
	}
	err := h.Cart.Remove(sid, name, vendor)
	if errors.Is(err, services.ErrCartItemNotFound) {
		return notFound(c, fiber.StatusNotFound, "That item is not in your cart")
	}
	if err != nil {
		applog.Error(c, "cart.remove.fail", err, map[string]any{"vendor": vendor})
		return notFound(c, fiber.StatusInternalServerError, "Could not update cart")
	}
	applog.Audit(c, "cart.remove", map[string]any{"name": name, "vendor": vendor})
	return c.Redirect("/cart")
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Cart.Clear(sid); err != nil {
		applog.Error(c, "cart.clear.fail", err, nil)
		return notFound(c, fiber.StatusInternalServerError, "Could not update cart")
	}
	applog.Audit(c, "cart.clear", nil)
	return c.Redirect("/cart")
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cart, err := h.Cart.View(sid)
	if err != nil {
		applog.Error(c, "cart.view.fail", err, nil)
		return notFound(c, fiber.StatusInternalServerError, "Could not load cart")
	}
	snaps, err := h.Cart.Snapshots(sid)
	if err != nil {
		applog.Error(c, "cart.snapshots.fail", err, nil)
		snaps = nil
	}
	totals := make([]string, len(snaps))
	for i, s := range snaps {
		totals[i] = pricing.Format(s.Cart.Total)
	}
	return render(c, "cart", fiber.Map{
		"Cart":           cart,
		"Total":          pricing.Format(cart.Total),
		"Snapshots":      snaps,
		"SnapshotTotals": totals,
	})
}
