package vendors

import (
	"context"
	"errors"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"partscout/internal/domain"
	"partscout/internal/pricing"
)

var errNoTitle = errors.New("listing has no title")

type Scorptec struct {
	Client  *Client
	BaseURL string
}

func (s *Scorptec) Vendor() domain.Vendor { return domain.VendorScorptec }

func (s *Scorptec) Search(ctx context.Context, term string) ([]domain.Product, error) {
	doc, err := s.Client.getHTML(ctx, s.BaseURL+"/search", url.Values{"w": {term}})
	if err != nil {
		return nil, err
	}
	nodes := doc.Find(".content-wrapper").First().Find(".product-list-detail")
	out := make([]domain.Product, 0, nodes.Length())
	nodes.Each(func(_ int, n *goquery.Selection) {
		p, err := parseScorptec(n)
		if err != nil {
			p = fallback(domain.VendorScorptec)
		}
		out = append(out, p)
	})
	return out, nil
}

func parseScorptec(n *goquery.Selection) (domain.Product, error) {
	title := n.Find(".detail-product-title a").First()
	name := text(title)
	if name == "" {
		return domain.Product{}, errNoTitle
	}
	var original float64
	if d, err := pricing.Parse(text(n.Find(".detail-product-before-price"))); err == nil {
		original = d.InexactFloat64()
	}
	return domain.Product{
		Name:  name,
		Image: n.Find(".detail-image-wrapper img").First().AttrOr("src", ""),
		Info: []domain.Offer{{
			Vendor:        domain.VendorScorptec,
			Price:         text(n.Find(".detail-product-price")),
			OriginalPrice: original,
			InStock:       inStock(text(n.Find(".detail-product-stock"))),
			URL:           title.AttrOr("href", ""),
			Description:   text(n.Find(`a[data-tb-sid="st_description-link"]`)),
		}},
	}, nil
}
