package vendors

import (
	"context"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"partscout/internal/domain"
	"partscout/internal/pricing"
)

// centrecomCategory is the catalogue-wide category id the storefront's own
// search box sends.
const centrecomCategory = "0ae1fd6a074947699fbe46df65ee5714"

type Centrecom struct {
	Client  *Client
	APIURL  string
	SiteURL string
}

type centrecomResponse struct {
	P []centrecomProduct `json:"p"`
}

type centrecomProduct struct {
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	SeName           string          `json:"seName"`
	StockQuantity    int             `json:"stockQuantity"`
	ShortDescription string          `json:"shortDescription"`
	ImgURL           string          `json:"imgUrl"`
}

func (s *Centrecom) Vendor() domain.Vendor { return domain.VendorCentrecom }

func (s *Centrecom) Search(ctx context.Context, term string) ([]domain.Product, error) {
	var resp centrecomResponse
	params := url.Values{"q": {term}, "cid": {centrecomCategory}, "ps": {"32"}}
	if err := s.Client.getJSON(ctx, strings.TrimRight(s.APIURL, "/")+"/api/search", params, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(resp.P))
	for _, p := range resp.P {
		if strings.TrimSpace(p.Name) == "" {
			out = append(out, fallback(domain.VendorCentrecom))
			continue
		}
		out = append(out, domain.Product{
			Name:  p.Name,
			Image: p.ImgURL,
			Info: []domain.Offer{{
				Vendor:      domain.VendorCentrecom,
				Price:       pricing.Format(p.Price),
				InStock:     p.StockQuantity > 0,
				URL:         strings.TrimRight(s.SiteURL, "/") + "/" + p.SeName,
				Description: p.ShortDescription,
			}},
		})
	}
	return out, nil
}
