package vendors

import (
	"context"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"partscout/internal/domain"
)

type MSY struct {
	Client  *Client
	BaseURL string
}

func (s *MSY) Vendor() domain.Vendor { return domain.VendorMSY }

func (s *MSY) Search(ctx context.Context, term string) ([]domain.Product, error) {
	doc, err := s.Client.getHTML(ctx, s.BaseURL+"/search.php", url.Values{"cat_id": {""}, "keywords": {term}})
	if err != nil {
		return nil, err
	}
	nodes := doc.Find(".goods_info")
	out := make([]domain.Product, 0, nodes.Length())
	nodes.Each(func(_ int, n *goquery.Selection) {
		p, err := s.parse(n)
		if err != nil {
			p = fallback(domain.VendorMSY)
		}
		out = append(out, p)
	})
	return out, nil
}

func (s *MSY) parse(n *goquery.Selection) (domain.Product, error) {
	link := n.Find(".goods_name a").First()
	name := link.AttrOr("title", "")
	if name == "" {
		name = text(link)
	}
	if name == "" {
		return domain.Product{}, errNoTitle
	}
	return domain.Product{
		Name:  name,
		Image: n.Find(".goods_img img").First().AttrOr("src", ""),
		Info: []domain.Offer{{
			Vendor:      domain.VendorMSY,
			Price:       text(n.Find(".goods_price")),
			InStock:     inStock(text(n.Find(".goods_stock"))),
			URL:         joinURL(s.BaseURL, link.AttrOr("href", "")),
			Description: name,
		}},
	}, nil
}
