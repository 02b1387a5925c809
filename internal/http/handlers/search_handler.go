package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"partscout/internal/domain"
	"partscout/internal/log"
	"partscout/internal/notify"
	"partscout/internal/pricing"
	"partscout/internal/search"
	"partscout/internal/services"
	"partscout/internal/validate"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

type productView struct {
	domain.Product
	Average string
}

func views(products []domain.Product) []productView {
	out := make([]productView, len(products))
	for i, p := range products {
		out[i] = productView{Product: p}
		if avg, ok := pricing.Average(p); ok {
			out[i].Average = pricing.Format(avg)
		}
	}
	return out
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	sid := ensureSID(c)
	rawQ := c.Query("q")
	if strings.TrimSpace(rawQ) == "" {
		// No query: show the session's last results, if any
		term, products, err := h.Catalog.Latest(sid)
		if err != nil {
			log.Error(c, "search.latest.fail", err, nil)
			products = []domain.Product{}
		}
		return render(c, "search", fiber.Map{"Q": term, "Products": views(products), "Count": len(products)})
	}
	q, ok := validate.Q(rawQ)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
		return c.Status(fiber.StatusBadRequest).Render("search", fiber.Map{
			"Q": "", "Products": []productView{}, "Count": 0, "Err": "Enter a valid part name or model number",
		})
	}

	var notices notify.Collector
	ctx := notify.WithPublisher(c.UserContext(), &notices)
	res, err := h.Catalog.Search(ctx, sid, q)
	if err != nil {
		log.Error(c, "search.error", err, map[string]any{"q": q})
		return notFound(c, fiber.StatusInternalServerError, "Could not load results. Please retry.")
	}
	log.Info(c, "search.ok", map[string]any{"q": q, "products": len(res.Products), "failed": res.Failures})

	return render(c, "search", fiber.Map{
		"Q":        q,
		"Products": views(res.Products),
		"Count":    len(res.Products),
		"Warnings": notices.Messages(),
	})
}

type outcomeJSON struct {
	Vendor     domain.Vendor `json:"vendor"`
	Listings   int           `json:"listings"`
	Cached     bool          `json:"cached"`
	DurationMs int64         `json:"durationMs"`
	Error      string        `json:"error,omitempty"`
}

// API is the JSON form of Search.
func (h *SearchHandler) API(c *fiber.Ctx) error {
	sid := ensureSID(c)
	q, ok := validate.Q(c.Query("q"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "q"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid query"})
	}
	var notices notify.Collector
	res, err := h.Catalog.Search(notify.WithPublisher(c.UserContext(), &notices), sid, q)
	if errors.Is(err, search.ErrEmptyTerm) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid query"})
	}
	if err != nil {
		log.Error(c, "search.api.error", err, map[string]any{"q": q})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "search failed, retry soon"})
	}

	outcomes := make([]outcomeJSON, len(res.Outcomes))
	for i, o := range res.Outcomes {
		outcomes[i] = outcomeJSON{
			Vendor:     o.Vendor,
			Listings:   len(o.Listings),
			Cached:     o.Cached,
			DurationMs: o.Duration.Milliseconds(),
		}
		if o.Err != nil {
			// vendor name only; upstream errors carry URLs
			outcomes[i].Error = "unavailable"
		}
	}
	return c.JSON(fiber.Map{
		"term":     res.Term,
		"products": res.Products,
		"failures": res.Failures,
		"outcomes": outcomes,
		"notices":  notices.Notices(),
	})
}
