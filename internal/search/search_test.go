package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partscout/internal/cache"
	"partscout/internal/domain"
	"partscout/internal/match"
	"partscout/internal/notify"
	"partscout/internal/vendors"
)

type fakeSource struct {
	vendor   domain.Vendor
	listings []domain.Product
	err      error
	block    bool
	mu       sync.Mutex
	calls    int
}

func (f *fakeSource) Vendor() domain.Vendor { return f.vendor }

func (f *fakeSource) Search(ctx context.Context, term string) ([]domain.Product, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.listings, f.err
}

func offer(name string, v domain.Vendor, price string) domain.Product {
	return domain.Product{Name: name, Info: []domain.Offer{{Vendor: v, Price: price, InStock: true}}}
}

func newService(srcs ...vendors.Source) (*Service, *notify.Collector) {
	rec := &notify.Collector{}
	s := NewService(srcs, match.NewMerger(match.NewClassifier(match.DefaultVocabulary())))
	s.Notifier = rec
	s.Timeout = 200 * time.Millisecond
	return s, rec
}

func TestSearch_EmptyTerm(t *testing.T) {
	s, _ := newService()
	_, err := s.Search(context.Background(), "   ")
	require.ErrorIs(t, err, ErrEmptyTerm)
}

func TestSearch_MergesAcrossVendors(t *testing.T) {
	s, rec := newService(
		&fakeSource{vendor: domain.VendorScorptec, listings: []domain.Product{
			offer("AMD Ryzen 9 9950X3D", domain.VendorScorptec, "$1,199.00"),
		}},
		&fakeSource{vendor: domain.VendorPCCaseGear, listings: []domain.Product{
			offer("AMD Ryzen 9 9950X3D 16-Core Processor", domain.VendorPCCaseGear, "$1,149.00"),
		}},
	)
	res, err := s.Search(context.Background(), "9950x3d")
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	assert.Len(t, res.Products[0].Info, 2)
	assert.Empty(t, res.Failures)
	assert.Empty(t, rec.Notices())
	require.Len(t, res.Outcomes, 2)
	assert.Equal(t, domain.VendorScorptec, res.Outcomes[0].Vendor)
	assert.Equal(t, domain.VendorPCCaseGear, res.Outcomes[1].Vendor)
}

func TestSearch_FailingVendorsAreSettledNotFatal(t *testing.T) {
	s, rec := newService(
		&fakeSource{vendor: domain.VendorScorptec, err: errors.New("boom")},
		&fakeSource{vendor: domain.VendorMSY, block: true},
		&fakeSource{vendor: domain.VendorCentrecom, listings: []domain.Product{
			offer("Corsair Vengeance 32GB DDR5", domain.VendorCentrecom, "$189.00"),
		}},
	)
	res, err := s.Search(context.Background(), "ddr5")
	require.NoError(t, err)

	require.Len(t, res.Products, 1)
	assert.Equal(t, "Corsair Vengeance 32GB DDR5", res.Products[0].Name)
	assert.Equal(t, []domain.Vendor{domain.VendorScorptec, domain.VendorMSY}, res.Failures)
	assert.ErrorIs(t, res.Outcomes[1].Err, context.DeadlineExceeded)

	notices := rec.Notices()
	require.Len(t, notices, 2)
	for _, n := range notices {
		assert.Equal(t, notify.LevelWarn, n.Level)
	}
	assert.Equal(t, domain.VendorScorptec, notices[0].Vendor)
	assert.Contains(t, notices[1].Message, "MSY")
}

func TestSearch_PublishesToRequestScopedPublisher(t *testing.T) {
	s, rec := newService(
		&fakeSource{vendor: domain.VendorMSY, err: vendors.ErrUpstream},
		&fakeSource{vendor: domain.VendorScorptec, listings: []domain.Product{
			offer("Corsair Vengeance 32GB DDR5", domain.VendorScorptec, "$189.00"),
		}},
	)
	var page notify.Collector
	ctx := notify.WithPublisher(context.Background(), &page)

	_, err := s.Search(ctx, "ddr5")
	require.NoError(t, err)
	assert.Equal(t, []string{"Could not load results from MSY"}, page.Messages())
	assert.Equal(t, page.Messages(), rec.Messages())

	var other notify.Collector
	_, err = s.Search(notify.WithPublisher(context.Background(), &other), "ram")
	require.NoError(t, err)
	assert.Len(t, page.Messages(), 1, "notices stay with the request that caused them")
	assert.Len(t, other.Messages(), 1)
}

func TestSearch_AllVendorsFailYieldsEmptyProducts(t *testing.T) {
	s, rec := newService(
		&fakeSource{vendor: domain.VendorScorptec, err: vendors.ErrUpstream},
		&fakeSource{vendor: domain.VendorMSY, err: vendors.ErrUpstream},
	)
	res, err := s.Search(context.Background(), "gpu")
	require.NoError(t, err)
	require.NotNil(t, res.Products)
	assert.Empty(t, res.Products)
	assert.Len(t, rec.Notices(), 2)
}

func TestSearch_SortsTermHitsAndCheaperFirst(t *testing.T) {
	s, _ := newService(&fakeSource{vendor: domain.VendorMSY, listings: []domain.Product{
		offer("Thermal Paste", domain.VendorMSY, "$9.00"),
		offer("Samsung 990 Pro 2TB NVMe SSD", domain.VendorMSY, "$299.00"),
		offer("Crucial T500 1TB NVMe SSD", domain.VendorMSY, "$129.00"),
	}})
	res, err := s.Search(context.Background(), "ssd")
	require.NoError(t, err)
	require.Len(t, res.Products, 3)
	assert.Equal(t, "Crucial T500 1TB NVMe SSD", res.Products[0].Name)
	assert.Equal(t, "Samsung 990 Pro 2TB NVMe SSD", res.Products[1].Name)
	assert.Equal(t, "Thermal Paste", res.Products[2].Name)
}

func TestSearch_UsesCache(t *testing.T) {
	src := &fakeSource{vendor: domain.VendorMSY, listings: []domain.Product{
		offer("Crucial T500 1TB NVMe SSD", domain.VendorMSY, "$129.00"),
	}}
	s, _ := newService(src)
	s.Cache = cache.NewMemoryClient()

	first, err := s.Search(context.Background(), "SSD")
	require.NoError(t, err)
	assert.False(t, first.Outcomes[0].Cached)

	second, err := s.Search(context.Background(), "ssd")
	require.NoError(t, err)
	assert.True(t, second.Outcomes[0].Cached)
	assert.Equal(t, first.Products, second.Products)
	assert.Equal(t, 1, src.calls)
}

func TestSearch_FailuresAreNotCached(t *testing.T) {
	src := &fakeSource{vendor: domain.VendorMSY, err: errors.New("down")}
	s, _ := newService(src)
	s.Cache = cache.NewMemoryClient()

	_, err := s.Search(context.Background(), "ssd")
	require.NoError(t, err)
	_, err = s.Search(context.Background(), "ssd")
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}
