package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "partscout/internal/log"
	"partscout/internal/services"
	"partscout/internal/validate"
)

// SnapshotHandler saves the cart for later and brings saved carts back.
type SnapshotHandler struct {
	Cart *services.CartService
}

func (h *SnapshotHandler) Save(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Cart.SaveSnapshot(sid); err != nil {
		applog.Error(c, "snapshot.save.fail", err, nil)
		return notFound(c, fiber.StatusInternalServerError, "Could not save cart")
	}
	applog.Audit(c, "snapshot.save", nil)
	return c.Redirect("/cart")
}

func (h *SnapshotHandler) Restore(c *fiber.Ctx) error {
	return h.load(c, "snapshot.restore", h.Cart.RestoreSnapshot)
}

func (h *SnapshotHandler) Copy(c *fiber.Ctx) error {
	return h.load(c, "snapshot.copy", h.Cart.CopySnapshot)
}

func (h *SnapshotHandler) load(c *fiber.Ctx, action string, fn func(string, int) error) error {
	sid := ensureSID(c)
	idx, ok := validate.Index(c.Params("index"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "index"})
		return c.Status(400).SendString("invalid index")
	}
	err := fn(sid, idx)
	switch {
	case errors.Is(err, services.ErrNoSnapshots), errors.Is(err, services.ErrSnapshotIndex):
		return notFound(c, fiber.StatusNotFound, "That saved cart no longer exists")
	case err != nil:
		applog.Error(c, action+".fail", err, map[string]any{"index": idx})
		return notFound(c, fiber.StatusInternalServerError, "Could not load saved cart")
	}
	applog.Audit(c, action, map[string]any{"index": idx})
	return c.Redirect("/cart")
}
