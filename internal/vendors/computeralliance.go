package vendors

import (
	"context"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"partscout/internal/domain"
)

type ComputerAlliance struct {
	Client  *Client
	BaseURL string
}

func (s *ComputerAlliance) Vendor() domain.Vendor { return domain.VendorComputerAlliance }

func (s *ComputerAlliance) Search(ctx context.Context, term string) ([]domain.Product, error) {
	doc, err := s.Client.getHTML(ctx, s.BaseURL+"/search", url.Values{"search": {term}})
	if err != nil {
		return nil, err
	}
	nodes := doc.Find(".product")
	out := make([]domain.Product, 0, nodes.Length())
	nodes.Each(func(_ int, n *goquery.Selection) {
		p, err := s.parse(n)
		if err != nil {
			p = fallback(domain.VendorComputerAlliance)
		}
		out = append(out, p)
	})
	return out, nil
}

func (s *ComputerAlliance) parse(n *goquery.Selection) (domain.Product, error) {
	name := text(n.Find(".equalize"))
	if name == "" {
		return domain.Product{}, errNoTitle
	}
	return domain.Product{
		Name:  name,
		Image: n.Find(".img-container img").First().AttrOr("src", ""),
		Info: []domain.Offer{{
			Vendor:      domain.VendorComputerAlliance,
			Price:       text(n.Find(".price")),
			InStock:     inStock(text(n.Find(".instock"))),
			URL:         joinURL(s.BaseURL, n.Find("a").First().AttrOr("href", "")),
			Description: name,
		}},
	}, nil
}
