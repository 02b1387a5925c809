package vendors

// BaseURLs holds every storefront endpoint so tests and deployments can
// point sources elsewhere.
type BaseURLs struct {
	Scorptec         string
	MSY              string
	ComputerAlliance string
	CentrecomAPI     string
	CentrecomSite    string
	PCCaseGear       string
}

func DefaultBaseURLs() BaseURLs {
	return BaseURLs{
		Scorptec:         "https://computers.scorptec.com.au",
		MSY:              "https://www.msy.com.au",
		ComputerAlliance: "https://www.computeralliance.com.au",
		CentrecomAPI:     "https://computerparts.centrecom.com.au",
		CentrecomSite:    "https://www.centrecom.com.au",
		PCCaseGear:       "https://hpd3dbj2io-3.algolianet.com/1/indexes/*/queries?x-algolia-application-id=HPD3DBJ2IO&x-algolia-api-key=9559cf1a6c7521a30ba0832ec6c38499",
	}
}

// Default returns one source per storefront in display order.
func Default(c *Client, u BaseURLs) []Source {
	return []Source{
		&Scorptec{Client: c, BaseURL: u.Scorptec},
		&MSY{Client: c, BaseURL: u.MSY},
		&Centrecom{Client: c, APIURL: u.CentrecomAPI, SiteURL: u.CentrecomSite},
		&PCCaseGear{Client: c, AlgoliaURL: u.PCCaseGear},
		&ComputerAlliance{Client: c, BaseURL: u.ComputerAlliance},
	}
}
