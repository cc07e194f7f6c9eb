package services

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"shopapi/internal/domain"
	"shopapi/internal/pricelist"
	"shopapi/internal/repos"
	"shopapi/internal/validate"

	"github.com/google/uuid"
)

// ImportService runs the catalog import pipeline: resolve the public
// share link, download the document, persist it under the media dir,
// parse it and load every record into the catalog in one transaction.
type ImportService struct {
	Fetcher  *pricelist.Fetcher
	Shops    *repos.ShopRepo
	Cats     *repos.CategoryRepo
	Params   *repos.ParameterRepo
	Prods    *repos.ProductRepo
	MediaDir string
}

func NewImportService(f *pricelist.Fetcher, shops *repos.ShopRepo, cats *repos.CategoryRepo,
	params *repos.ParameterRepo, prods *repos.ProductRepo, mediaDir string) *ImportService {
	return &ImportService{Fetcher: f, Shops: shops, Cats: cats, Params: params,
		Prods: prods, MediaDir: mediaDir}
}

// Result summarizes a finished import.
type Result struct {
	ShopID   string `json:"shop_id"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Products int    `json:"products"`
}

// Import loads a shop's catalog from a publicly shared document. The
// whole document lands or none of it does; the shop's source URL and
// stored filename are overwritten on success.
func (s *ImportService) Import(ctx context.Context, userID, publicURL string) (Result, error) {
	shop, err := s.Shops.ByUser(userID)
	if err == sql.ErrNoRows {
		return Result{}, domain.ErrNoShop
	} else if err != nil {
		return Result{}, err
	}

	direct, err := s.Fetcher.ResolveLink(ctx, publicURL)
	if err != nil {
		return Result{}, err
	}
	data, err := s.Fetcher.Download(ctx, direct)
	if err != nil {
		return Result{}, err
	}

	filename := pricelist.Filename(direct)
	dir := filepath.Join(s.MediaDir, "product_files")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, domain.ErrFileWrite
	}
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return Result{}, domain.ErrFileWrite
	}

	records, err := pricelist.Parse(data)
	if err != nil {
		return Result{}, err
	}

	listings, err := s.resolve(shop, records)
	if err != nil {
		return Result{}, err
	}
	if err := s.Prods.ImportCatalog(shop.ID, publicURL, filename, listings); err != nil {
		return Result{}, err
	}

	return Result{ShopID: shop.ID, URL: publicURL, Filename: filename, Products: len(listings)}, nil
}

// resolve maps records to listings, failing the whole import on the
// first unknown category or parameter name. On import price_rrc is
// always the shop's price, matching the source pricelist semantics.
func (s *ImportService) resolve(shop domain.Shop, records []pricelist.Record) ([]repos.Listing, error) {
	listings := make([]repos.Listing, 0, len(records))
	for _, rec := range records {
		cat, err := s.Cats.ByName(validate.Canonical(rec.Category.Name))
		if err == sql.ErrNoRows {
			return nil, &domain.UnknownCategoryError{Name: rec.Category.Name}
		} else if err != nil {
			return nil, err
		}

		infoID := uuid.NewString()
		params := make([]domain.ProductParameter, 0, len(rec.Parameters))
		for _, p := range rec.Parameters {
			par, err := s.Params.ByName(validate.Canonical(p.Parameter.Name))
			if err == sql.ErrNoRows {
				return nil, &domain.UnknownParameterError{Name: p.Parameter.Name}
			} else if err != nil {
				return nil, err
			}
			params = append(params, domain.ProductParameter{
				ProductInfoID: infoID,
				ParameterID:   par.ID,
				Name:          par.Name,
				Value:         p.Value,
			})
		}

		listings = append(listings, repos.Listing{
			Product: domain.Product{ID: uuid.NewString(), Name: rec.Name, CategoryID: cat.ID},
			Info: domain.ProductInfo{
				ID:       infoID,
				ShopID:   shop.ID,
				Quantity: rec.Info.Quantity,
				Price:    rec.Info.Price,
				PriceRRC: rec.Info.Price,
			},
			Params: params,
		})
	}
	return listings, nil
}
