package services

import (
	"context"
	"errors"

	"partscout/internal/domain"
	"partscout/internal/repos"
	"partscout/internal/search"
)

type CatalogService struct {
	Engine   *search.Service
	Searches *repos.SearchRepo
}

func NewCatalogService(s *search.Service, searches *repos.SearchRepo) *CatalogService {
	return &CatalogService{Engine: s, Searches: searches}
}

// Search runs a cross-vendor search and stores the merged products for the
// session so the cart can refer to them by id.
func (s *CatalogService) Search(ctx context.Context, sessionID, term string) (search.Result, error) {
	res, err := s.Engine.Search(ctx, term)
	if err != nil {
		return search.Result{}, err
	}
	saved, err := s.Searches.Save(sessionID, res.Term, res.Products)
	if err != nil {
		return search.Result{}, err
	}
	res.Products = saved
	return res, nil
}

// Latest returns the session's last stored search. A session that never
// searched gets an empty result.
func (s *CatalogService) Latest(sessionID string) (string, []domain.Product, error) {
	saved, err := s.Searches.Latest(sessionID)
	if errors.Is(err, repos.ErrNotFound) {
		return "", []domain.Product{}, nil
	}
	if err != nil {
		return "", nil, err
	}
	return saved.Term, saved.Products, nil
}
