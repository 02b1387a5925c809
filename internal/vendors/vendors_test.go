package vendors

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partscout/internal/domain"
)

const scorptecPage = `<html><body><div class="content-wrapper">
<div class="product-list-detail">
  <div class="detail-image-wrapper"><img src="https://img.scorptec/9950x3d.jpg"></div>
  <div class="detail-product-title"><a href="https://computers.scorptec.com.au/p/1">AMD Ryzen 9 9950X3D</a></div>
  <div class="detail-product-before-price">$1,299.00</div>
  <div class="detail-product-price">$1,199.00</div>
  <div class="detail-product-stock"> In Stock </div>
  <a data-tb-sid="st_description-link">16 cores, 32 threads</a>
</div>
<div class="product-list-detail">
  <div class="detail-product-title"><a href="#"></a></div>
</div>
</div></body></html>`

func TestScorptec_ParsesListings(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.Query().Get("w")
		io.WriteString(w, scorptecPage)
	}))
	defer srv.Close()

	s := &Scorptec{Client: NewClient("", time.Second), BaseURL: srv.URL}
	out, err := s.Search(context.Background(), "9950x3d")
	require.NoError(t, err)
	assert.Equal(t, "/search", gotPath)
	assert.Equal(t, "9950x3d", gotQuery)

	require.Len(t, out, 2)
	p := out[0]
	assert.Equal(t, "AMD Ryzen 9 9950X3D", p.Name)
	assert.Equal(t, "https://img.scorptec/9950x3d.jpg", p.Image)
	require.Len(t, p.Info, 1)
	o := p.Info[0]
	assert.Equal(t, domain.VendorScorptec, o.Vendor)
	assert.Equal(t, "$1,199.00", o.Price)
	assert.Equal(t, 1299.0, o.OriginalPrice)
	assert.True(t, o.InStock)
	assert.Equal(t, "https://computers.scorptec.com.au/p/1", o.URL)
	assert.Equal(t, "16 cores, 32 threads", o.Description)

	assert.Equal(t, fallback(domain.VendorScorptec), out[1])
}

func TestMSY_ParsesListings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.php", r.URL.Path)
		assert.Equal(t, "rtx 4090", r.URL.Query().Get("keywords"))
		io.WriteString(w, `<ul>
<li class="goods_info">
  <div class="goods_img"><img src="/img/4090.jpg"></div>
  <div class="goods_name"><a href="/msi-4090" title="MSI GeForce RTX 4090 SUPRIM X 24G">MSI GeForce RTX 4090...</a></div>
  <div class="goods_price">$3,859.00</div>
  <div class="goods_stock">Out of stock</div>
</li></ul>`)
	}))
	defer srv.Close()

	s := &MSY{Client: NewClient("", time.Second), BaseURL: srv.URL}
	out, err := s.Search(context.Background(), "rtx 4090")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "MSI GeForce RTX 4090 SUPRIM X 24G", out[0].Name)
	o := out[0].Info[0]
	assert.Equal(t, domain.VendorMSY, o.Vendor)
	assert.Equal(t, "$3,859.00", o.Price)
	assert.False(t, o.InStock)
	assert.Equal(t, srv.URL+"/msi-4090", o.URL)
}

func TestComputerAlliance_ParsesListings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ddr5", r.URL.Query().Get("search"))
		io.WriteString(w, `<div class="product">
  <a href="/corsair-32gb"><div class="img-container"><img src="https://ca/img.jpg"></div></a>
  <h2 class="equalize">Corsair Vengeance 32GB DDR5</h2>
  <div class="price">$189.00</div>
  <div class="instock">In Stock</div>
</div>`)
	}))
	defer srv.Close()

	s := &ComputerAlliance{Client: NewClient("", time.Second), BaseURL: srv.URL}
	out, err := s.Search(context.Background(), "ddr5")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Corsair Vengeance 32GB DDR5", out[0].Name)
	assert.Equal(t, "https://ca/img.jpg", out[0].Image)
	o := out[0].Info[0]
	assert.Equal(t, "$189.00", o.Price)
	assert.True(t, o.InStock)
	assert.Equal(t, srv.URL+"/corsair-32gb", o.URL)
}

func TestCentrecom_DecodesAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, centrecomCategory, r.URL.Query().Get("cid"))
		assert.Equal(t, "32", r.URL.Query().Get("ps"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"p":[
			{"name":"AMD Ryzen 9 9950X3D 16-Core Processor","price":1149,"seName":"amd-9950x3d","stockQuantity":3,"shortDescription":"AM5","imgUrl":"https://cc/img.jpg"},
			{"name":"","price":0,"seName":"","stockQuantity":0}
		]}`)
	}))
	defer srv.Close()

	s := &Centrecom{Client: NewClient("", time.Second), APIURL: srv.URL, SiteURL: "https://www.centrecom.com.au"}
	out, err := s.Search(context.Background(), "9950x3d")
	require.NoError(t, err)
	require.Len(t, out, 2)
	o := out[0].Info[0]
	assert.Equal(t, "$1,149.00", o.Price)
	assert.True(t, o.InStock)
	assert.Equal(t, "https://www.centrecom.com.au/amd-9950x3d", o.URL)
	assert.Equal(t, "AM5", o.Description)
	assert.Equal(t, "Error parsing product", out[1].Name)
}

func TestPCCaseGear_PostsAlgoliaQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body algoliaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Requests, 1)
		assert.Equal(t, "pccg_products", body.Requests[0].IndexName)
		assert.Equal(t, "query=rtx+4090", body.Requests[0].Params)
		io.WriteString(w, `{"results":[{"hits":[
			{"products_name":"MSI GeForce RTX 4090 SUPRIM X 24G","products_price":3849.5,"Product_URL":"https://pccg/p/1","products_description":"24GB","Image_URL":"https://pccg/i.jpg","indicator":{"label":"In stock"}}
		]}]}`)
	}))
	defer srv.Close()

	s := &PCCaseGear{Client: NewClient("", time.Second), AlgoliaURL: srv.URL}
	out, err := s.Search(context.Background(), "rtx 4090")
	require.NoError(t, err)
	require.Len(t, out, 1)
	o := out[0].Info[0]
	assert.Equal(t, domain.VendorPCCaseGear, o.Vendor)
	assert.Equal(t, "$3,849.50", o.Price)
	assert.True(t, o.InStock)
	assert.Equal(t, "https://pccg/p/1", o.URL)
}

func TestClient_NonSuccessStatusIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := &MSY{Client: NewClient("", time.Second), BaseURL: srv.URL}
	_, err := s.Search(context.Background(), "anything")
	require.ErrorIs(t, err, ErrUpstream)
}

func TestClient_ProxyPrefixesTarget(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.RequestURI()
		io.WriteString(w, `<html></html>`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second)
	s := &ComputerAlliance{Client: c, BaseURL: "https://www.computeralliance.com.au"}
	out, err := s.Search(context.Background(), "ssd")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.True(t, strings.HasPrefix(seen, "/https://www.computeralliance.com.au/search"), seen)
}

func TestDefault_OneSourcePerStorefront(t *testing.T) {
	srcs := Default(NewClient("", time.Second), DefaultBaseURLs())
	var got []domain.Vendor
	for _, s := range srcs {
		got = append(got, s.Vendor())
	}
	assert.Equal(t, []domain.Vendor{
		domain.VendorScorptec,
		domain.VendorMSY,
		domain.VendorCentrecom,
		domain.VendorPCCaseGear,
		domain.VendorComputerAlliance,
	}, got)
}

func TestJoinURL(t *testing.T) {
	cases := []struct{ base, path, want string }{
		{"https://a.au", "", "https://a.au"},
		{"https://a.au/", "/x", "https://a.au/x"},
		{"https://a.au", "x", "https://a.au/x"},
		{"https://a.au", "https://b.au/y", "https://b.au/y"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, joinURL(c.base, c.path))
	}
}
