package handlers

import (
	"github.com/jmoiron/sqlx"

	"partscout/internal/repos"
	"partscout/internal/search"
	"partscout/internal/services"
)

type Deps struct {
	SearchHandler   *SearchHandler
	CartHandler     *CartHandler
	SnapshotHandler *SnapshotHandler
}

func NewDeps(db *sqlx.DB, engine *search.Service) *Deps {
	searchRepo := repos.NewSearchRepo(db)
	cartRepo := repos.NewCartRepo(db)
	snapRepo := repos.NewSnapshotRepo(db)

	catalogSvc := services.NewCatalogService(engine, searchRepo)
	cartSvc := services.NewCartService(cartRepo, searchRepo, snapRepo)

	return &Deps{
		SearchHandler:   &SearchHandler{Catalog: catalogSvc},
		CartHandler:     &CartHandler{Cart: cartSvc},
		SnapshotHandler: &SnapshotHandler{Cart: cartSvc},
	}
}
