package vendors

import (
	"context"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"partscout/internal/domain"
	"partscout/internal/pricing"
)

// PCCaseGear queries the Algolia index behind the storefront search.
type PCCaseGear struct {
	Client *Client
	// AlgoliaURL is the full multi-query endpoint including application id
	// and search-only api key.
	AlgoliaURL string
	Index      string
}

type algoliaRequest struct {
	Requests []algoliaQuery `json:"requests"`
}

type algoliaQuery struct {
	IndexName string `json:"indexName"`
	Params    string `json:"params"`
}

type algoliaResponse struct {
	Results []struct {
		Hits []pccgHit `json:"hits"`
	} `json:"results"`
}

type pccgHit struct {
	Name        string          `json:"products_name"`
	Price       decimal.Decimal `json:"products_price"`
	URL         string          `json:"Product_URL"`
	Description string          `json:"products_description"`
	Image       string          `json:"Image_URL"`
	Indicator   struct {
		Label string `json:"label"`
	} `json:"indicator"`
}

func (s *PCCaseGear) Vendor() domain.Vendor { return domain.VendorPCCaseGear }

func (s *PCCaseGear) Search(ctx context.Context, term string) ([]domain.Product, error) {
	index := s.Index
	if index == "" {
		index = "pccg_products"
	}
	req := algoliaRequest{Requests: []algoliaQuery{{
		IndexName: index,
		Params:    url.Values{"query": {term}}.Encode(),
	}}}
	var resp algoliaResponse
	if err := s.Client.postJSON(ctx, s.AlgoliaURL, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return []domain.Product{}, nil
	}
	hits := resp.Results[0].Hits
	out := make([]domain.Product, 0, len(hits))
	for _, h := range hits {
		if strings.TrimSpace(h.Name) == "" {
			out = append(out, fallback(domain.VendorPCCaseGear))
			continue
		}
		out = append(out, domain.Product{
			Name:  h.Name,
			Image: h.Image,
			Info: []domain.Offer{{
				Vendor:      domain.VendorPCCaseGear,
				Price:       pricing.Format(h.Price),
				InStock:     inStock(h.Indicator.Label),
				URL:         h.URL,
				Description: h.Description,
			}},
		})
	}
	return out, nil
}
