package domain

import "github.com/shopspring/decimal"

type Vendor string

const (
	VendorScorptec         Vendor = "SCORPTEC"
	VendorMSY              Vendor = "MSY"
	VendorCentrecom        Vendor = "CENTRECOM"
	VendorPCCaseGear       Vendor = "PC_CASE_GEAR"
	VendorComputerAlliance Vendor = "COMPUTER_ALLIANCE"
	VendorCustom           Vendor = "CUSTOM"
)

// Vendors lists every known vendor in display order.
var Vendors = []Vendor{
	VendorScorptec,
	VendorMSY,
	VendorCentrecom,
	VendorPCCaseGear,
	VendorComputerAlliance,
	VendorCustom,
}

func (v Vendor) Valid() bool {
	for _, k := range Vendors {
		if k == v {
			return true
		}
	}
	return false
}

type Category string

const (
	CategoryCPU         Category = "cpu"
	CategoryGPU         Category = "gpu"
	CategoryMotherboard Category = "motherboard"
	CategoryRAM         Category = "ram"
	CategoryStorage     Category = "storage"
	CategoryOther       Category = "other"
)

// Offer is one vendor's price and availability for a product.
type Offer struct {
	Vendor        Vendor  `json:"vendor"`
	Price         string  `json:"price"` // "$1,299.00"
	OriginalPrice float64 `json:"originalPrice"`
	InStock       bool    `json:"inStock"`
	URL           string  `json:"url"`
	Description   string  `json:"description"`
}

// Product is either a raw listing (exactly one offer) or a merged product
// carrying at most one offer per vendor.
type Product struct {
	ID    string  `json:"id,omitempty"`
	Name  string  `json:"name"`
	Image string  `json:"image"`
	Info  []Offer `json:"info"`
}

// Offer returns the product's offer from vendor v.
func (p Product) Offer(v Vendor) (Offer, bool) {
	for _, o := range p.Info {
		if o.Vendor == v {
			return o, true
		}
	}
	return Offer{}, false
}

type CartProduct struct {
	Name     string          `db:"name" json:"name"`
	Image    string          `db:"image" json:"image"`
	Price    decimal.Decimal `db:"price" json:"price"`
	Vendor   Vendor          `db:"vendor" json:"vendor"`
	URL      string          `db:"url" json:"url"`
	Quantity int             `db:"qty" json:"quantity"`
}

type Cart struct {
	Products   []CartProduct   `json:"products"`
	Total      decimal.Decimal `json:"total"`
	TotalItems int             `json:"totalItems"`
}
