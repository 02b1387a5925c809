// Package search fans a query out to every vendor, tolerates the ones that
// fail, and merges what came back into cross-vendor products.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"partscout/internal/cache"
	"partscout/internal/domain"
	applog "partscout/internal/log"
	"partscout/internal/match"
	"partscout/internal/notify"
	"partscout/internal/pricing"
	"partscout/internal/vendors"
)

var ErrEmptyTerm = errors.New("search term is empty")

// Outcome is what one vendor returned for a search. Exactly one of
// Listings or Err is meaningful.
type Outcome struct {
	Vendor   domain.Vendor    `json:"vendor"`
	Listings []domain.Product `json:"-"`
	Err      error            `json:"-"`
	Cached   bool             `json:"cached"`
	Duration time.Duration    `json:"duration"`
}

type Result struct {
	Term     string           `json:"term"`
	Products []domain.Product `json:"products"`
	Outcomes []Outcome        `json:"outcomes"`
	// Failures lists the vendors whose listings are missing from Products.
	Failures []domain.Vendor `json:"failures"`
}

type Service struct {
	Sources  []vendors.Source
	Cache    cache.Client // optional
	CacheTTL time.Duration
	Notifier notify.Publisher // optional
	Merger   *match.Merger
	// Timeout bounds each vendor separately; zero means no limit beyond ctx.
	Timeout time.Duration
}

func NewService(sources []vendors.Source, merger *match.Merger) *Service {
	return &Service{
		Sources:  sources,
		Notifier: notify.Discard,
		Merger:   merger,
		Timeout:  10 * time.Second,
		CacheTTL: 5 * time.Minute,
	}
}

func cacheKey(v domain.Vendor, term string) string {
	return "listings:" + string(v) + ":" + strings.ToLower(term)
}

// Search queries every source concurrently and waits for all of them. A
// vendor that errors or times out is reported in Outcomes and Failures and
// contributes nothing; the rest are merged and sorted by average price.
func (s *Service) Search(ctx context.Context, term string) (Result, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return Result{}, ErrEmptyTerm
	}

	outcomes := make([]Outcome, len(s.Sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range s.Sources {
		g.Go(func() error {
			outcomes[i] = s.fetch(gctx, src, term)
			return nil
		})
	}
	_ = g.Wait()

	res := Result{Term: term, Outcomes: outcomes, Failures: []domain.Vendor{}}
	var listings []domain.Product
	for _, o := range outcomes {
		if o.Err != nil {
			res.Failures = append(res.Failures, o.Vendor)
			s.publish(ctx, o)
			continue
		}
		listings = append(listings, o.Listings...)
	}

	merger := s.Merger
	if merger == nil {
		merger = match.NewMerger(match.NewClassifier(match.DefaultVocabulary()))
	}
	res.Products = merger.Combine(listings)
	pricing.SortByAveragePrice(res.Products, term)

	applog.Event("search.done", map[string]any{
		"term":     term,
		"listings": len(listings),
		"products": len(res.Products),
		"failures": len(res.Failures),
	})
	return res, nil
}

func (s *Service) fetch(ctx context.Context, src vendors.Source, term string) Outcome {
	start := time.Now()
	o := Outcome{Vendor: src.Vendor()}

	key := cacheKey(o.Vendor, term)
	if s.Cache != nil {
		if b, err := s.Cache.Get(ctx, key); err == nil {
			var cached []domain.Product
			if err := json.Unmarshal(b, &cached); err == nil {
				o.Listings, o.Cached = cached, true
				o.Duration = time.Since(start)
				return o
			}
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			applog.Warn("search.cache_get", err, map[string]any{"key": key})
		}
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	listings, err := src.Search(ctx, term)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		o.Err = fmt.Errorf("%s: %w", o.Vendor, err)
		o.Duration = time.Since(start)
		return o
	}
	if listings == nil {
		listings = []domain.Product{}
	}
	o.Listings = listings

	if s.Cache != nil {
		if b, err := json.Marshal(listings); err == nil {
			if err := s.Cache.Set(ctx, key, b, s.CacheTTL); err != nil {
				applog.Warn("search.cache_set", err, map[string]any{"key": key})
			}
		}
	}
	o.Duration = time.Since(start)
	return o
}

// publish reports a failed vendor to the service-wide Notifier and to the
// publisher scoped to ctx, if any.
func (s *Service) publish(ctx context.Context, o Outcome) {
	applog.Warn("search.vendor_failed", o.Err, map[string]any{
		"vendor":      o.Vendor,
		"duration_ms": o.Duration.Milliseconds(),
	})
	n := notify.Notice{
		Level:   notify.LevelWarn,
		Vendor:  o.Vendor,
		Message: fmt.Sprintf("Could not load results from %s", Label(o.Vendor)),
		At:      time.Now().UTC(),
	}
	if s.Notifier != nil {
		s.Notifier.Publish(n)
	}
	notify.FromContext(ctx).Publish(n)
}

// Label is the storefront's display name.
func Label(v domain.Vendor) string {
	switch v {
	case domain.VendorScorptec:
		return "Scorptec"
	case domain.VendorMSY:
		return "MSY"
	case domain.VendorCentrecom:
		return "Centre Com"
	case domain.VendorPCCaseGear:
		return "PC Case Gear"
	case domain.VendorComputerAlliance:
		return "Computer Alliance"
	default:
		return string(v)
	}
}
