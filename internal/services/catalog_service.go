package services

import (
	"database/sql"

	"shopapi/internal/domain"
	"shopapi/internal/repos"
	"shopapi/internal/validate"

	"github.com/google/uuid"
)

type CatalogService struct {
	Cats   *repos.CategoryRepo
	Params *repos.ParameterRepo
	Prods  *repos.ProductRepo
	Shops  *repos.ShopRepo
}

func NewCatalogService(cats *repos.CategoryRepo, params *repos.ParameterRepo,
	prods *repos.ProductRepo, shops *repos.ShopRepo) *CatalogService {
	return &CatalogService{Cats: cats, Params: params, Prods: prods, Shops: shops}
}

func (s *CatalogService) ListCategories(nameFilter string) ([]domain.Category, error) {
	return s.Cats.List(nameFilter)
}

// CreateCategory stores the name in canonical capitalized form.
func (s *CatalogService) CreateCategory(name string) (domain.Category, error) {
	id := uuid.NewString()
	canon := validate.Canonical(name)
	if err := s.Cats.Create(id, canon); err != nil {
		return domain.Category{}, err
	}
	return domain.Category{ID: id, Name: canon}, nil
}

func (s *CatalogService) ListParameters() ([]domain.Parameter, error) {
	return s.Params.List()
}

func (s *CatalogService) CreateParameter(name string) (domain.Parameter, error) {
	id := uuid.NewString()
	canon := validate.Canonical(name)
	if err := s.Params.Create(id, canon); err != nil {
		return domain.Parameter{}, err
	}
	return domain.Parameter{ID: id, Name: canon}, nil
}

// ParamInput is one attribute pair of a product create request.
type ParamInput struct {
	Name  string
	Value string
}

// ProductInput is the nested product create payload after request
// validation: one listing for the caller's shop.
type ProductInput struct {
	Name         string
	CategoryName string
	Quantity     int
	Price        int
	PriceRRC     int // caller-supplied here, unlike import
	Params       []ParamInput
}

// InfoView is a listing with its attribute table.
type InfoView struct {
	domain.ProductInfo
	Parameters []domain.ProductParameter `json:"product_parameter"`
}

// ProductView is a product with its category and listings.
type ProductView struct {
	domain.Product
	Category domain.Category `json:"category"`
	Info     []InfoView      `json:"product_info"`
}

// CreateProduct creates a product with one listing for the shop owned
// by the caller. Category and every parameter must already exist by
// exact canonical name; nothing is created implicitly.
func (s *CatalogService) CreateProduct(u *domain.User, in ProductInput) (ProductView, error) {
	shop, err := s.Shops.ByUser(u.ID)
	if err == sql.ErrNoRows {
		return ProductView{}, domain.ErrNoShop
	} else if err != nil {
		return ProductView{}, err
	}

	catName := validate.Canonical(in.CategoryName)
	cat, err := s.Cats.ByName(catName)
	if err == sql.ErrNoRows {
		return ProductView{}, &domain.UnknownCategoryError{Name: in.CategoryName}
	} else if err != nil {
		return ProductView{}, err
	}

	infoID := uuid.NewString()
	params := make([]domain.ProductParameter, 0, len(in.Params))
	for _, p := range in.Params {
		par, err := s.Params.ByName(validate.Canonical(p.Name))
		if err == sql.ErrNoRows {
			return ProductView{}, &domain.UnknownParameterError{Name: p.Name}
		} else if err != nil {
			return ProductView{}, err
		}
		params = append(params, domain.ProductParameter{
			ProductInfoID: infoID,
			ParameterID:   par.ID,
			Name:          par.Name,
			Value:         p.Value,
		})
	}

	listing := repos.Listing{
		Product: domain.Product{ID: uuid.NewString(), Name: in.Name, CategoryID: cat.ID},
		Info: domain.ProductInfo{
			ID: infoID, ShopID: shop.ID,
			Quantity: in.Quantity, Price: in.Price, PriceRRC: in.PriceRRC,
		},
		Params: params,
	}
	if err := s.Prods.CreateListing(listing); err != nil {
		return ProductView{}, err
	}
	return s.GetProduct(listing.Product.ID)
}

func (s *CatalogService) GetProduct(id string) (ProductView, error) {
	p, err := s.Prods.Get(id)
	if err != nil {
		return ProductView{}, err
	}
	cat, err := s.Cats.Get(p.CategoryID)
	if err != nil {
		return ProductView{}, err
	}
	infos, err := s.Prods.ListInfo(p.ID, "")
	if err != nil {
		return ProductView{}, err
	}
	views := make([]InfoView, 0, len(infos))
	for _, pi := range infos {
		pp, err := s.Prods.Parameters(pi.ID)
		if err != nil {
			return ProductView{}, err
		}
		if pp == nil {
			pp = []domain.ProductParameter{}
		}
		views = append(views, InfoView{ProductInfo: pi, Parameters: pp})
	}
	return ProductView{Product: p, Category: cat, Info: views}, nil
}

func (s *CatalogService) ListProducts(name, categoryID string, page, pageSize int) ([]ProductView, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	prods, err := s.Prods.List(name, categoryID, pageSize, offset)
	if err != nil {
		return nil, err
	}
	out := make([]ProductView, 0, len(prods))
	for _, p := range prods {
		v, err := s.GetProduct(p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *CatalogService) ListInfo(productID, shopID string) ([]domain.ProductInfo, error) {
	return s.Prods.ListInfo(productID, shopID)
}

func (s *CatalogService) GetInfo(id string) (InfoView, error) {
	pi, err := s.Prods.GetInfo(id)
	if err != nil {
		return InfoView{}, err
	}
	pp, err := s.Prods.Parameters(pi.ID)
	if err != nil {
		return InfoView{}, err
	}
	if pp == nil {
		pp = []domain.ProductParameter{}
	}
	return InfoView{ProductInfo: pi, Parameters: pp}, nil
}

// Availability maps a listing's quantity to a coarse stock status.
func (s *CatalogService) Availability(productInfoID string) (domain.ProductInfo, string, error) {
	pi, err := s.Prods.GetInfo(productInfoID)
	if err == sql.ErrNoRows {
		return domain.ProductInfo{}, "OUT_OF_STOCK", nil
	} else if err != nil {
		return domain.ProductInfo{}, "", err
	}
	status := "OUT_OF_STOCK"
	switch {
	case pi.Quantity >= 5:
		status = "IN_STOCK"
	case pi.Quantity > 0:
		status = "LOW_STOCK"
	}
	return pi, status, nil
}
