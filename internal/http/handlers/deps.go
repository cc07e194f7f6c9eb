package handlers

import (
	"shopapi/internal/config"
	"shopapi/internal/pricelist"
	"shopapi/internal/repos"
	"shopapi/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	ShopHandler        *ShopHandler
	CategoryHandler    *CategoryHandler
	ParameterHandler   *ParameterHandler
	ProductHandler     *ProductHandler
	ProductInfoHandler *ProductInfoHandler
	ContactsHandler    *ContactsHandler
	OrderHandler       *OrderHandler
	ImportHandler      *ImportHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	shopRepo := repos.NewShopRepo(db)
	catRepo := repos.NewCategoryRepo(db)
	paramRepo := repos.NewParameterRepo(db)
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	contactsRepo := repos.NewContactsRepo(db)

	shopSvc := services.NewShopService(shopRepo)
	catalogSvc := services.NewCatalogService(catRepo, paramRepo, prodRepo, shopRepo)
	orderSvc := services.NewOrderService(orderRepo)

	fetcher := pricelist.NewFetcher(cfg.LinkAPIBase, cfg.DownloadTimeout)
	importSvc := services.NewImportService(fetcher, shopRepo, catRepo, paramRepo, prodRepo, cfg.MediaDir)

	return &Deps{
		ShopHandler:        &ShopHandler{Shops: shopSvc},
		CategoryHandler:    &CategoryHandler{Catalog: catalogSvc},
		ParameterHandler:   &ParameterHandler{Catalog: catalogSvc},
		ProductHandler:     &ProductHandler{Catalog: catalogSvc},
		ProductInfoHandler: &ProductInfoHandler{Catalog: catalogSvc},
		ContactsHandler:    &ContactsHandler{Contacts: contactsRepo},
		OrderHandler:       &OrderHandler{Orders: orderSvc},
		ImportHandler:      &ImportHandler{Importer: importSvc},
	}
}
