package services_test

import (
	"errors"
	"testing"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"shopapi/internal/domain"
	"shopapi/internal/repos"
	"shopapi/internal/services"
)

func newCatalogSvc(t *testing.T) (*services.CatalogService, func() int) {
	t.Helper()
	db := memdbOrders(t)
	svc := services.NewCatalogService(
		repos.NewCategoryRepo(db), repos.NewParameterRepo(db),
		repos.NewProductRepo(db), repos.NewShopRepo(db))
	count := func() int {
		var n int
		if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
			t.Fatal(err)
		}
		return n
	}
	return svc, count
}

func TestCreateProduct_Nested(t *testing.T) {
	svc, _ := newCatalogSvc(t)

	seller := &domain.User{ID: "u-demo-seller", Type: domain.UserTypeSeller}
	v, err := svc.CreateProduct(seller, services.ProductInput{
		Name:         "Bookshelf",
		CategoryName: "furniture", // lookup canonicalizes the case
		Quantity:     3,
		Price:        2000,
		PriceRRC:     2500, // caller-supplied, may differ from price
		Params:       []services.ParamInput{{Name: "color", Value: "Brown"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if v.Category.Name != "Furniture" {
		t.Fatalf("bad category: %+v", v.Category)
	}
	if len(v.Info) != 1 || v.Info[0].Quantity != 3 || v.Info[0].PriceRRC != 2500 {
		t.Fatalf("bad info: %+v", v.Info)
	}
	if len(v.Info[0].Parameters) != 1 || v.Info[0].Parameters[0].Name != "Color" {
		t.Fatalf("bad parameters: %+v", v.Info[0].Parameters)
	}
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	svc, count := newCatalogSvc(t)
	before := count()

	seller := &domain.User{ID: "u-demo-seller", Type: domain.UserTypeSeller}
	_, err := svc.CreateProduct(seller, services.ProductInput{
		Name: "Kayak", CategoryName: "Watercraft", Quantity: 1, Price: 100, PriceRRC: 100,
	})
	var catErr *domain.UnknownCategoryError
	if !errors.As(err, &catErr) {
		t.Fatalf("want UnknownCategoryError, got %v", err)
	}
	if count() != before {
		t.Fatal("product must not be created")
	}
}

func TestCreateProduct_UnknownParameter(t *testing.T) {
	svc, count := newCatalogSvc(t)
	before := count()

	seller := &domain.User{ID: "u-demo-seller", Type: domain.UserTypeSeller}
	_, err := svc.CreateProduct(seller, services.ProductInput{
		Name: "Stool", CategoryName: "Furniture", Quantity: 1, Price: 100, PriceRRC: 100,
		Params: []services.ParamInput{{Name: "Wingspan", Value: "wide"}},
	})
	var parErr *domain.UnknownParameterError
	if !errors.As(err, &parErr) {
		t.Fatalf("want UnknownParameterError, got %v", err)
	}
	if count() != before {
		t.Fatal("product must not be created")
	}
}

func TestCreateProduct_RequiresShop(t *testing.T) {
	svc, _ := newCatalogSvc(t)

	buyer := &domain.User{ID: "u-demo-buyer", Type: domain.UserTypeBuyer}
	_, err := svc.CreateProduct(buyer, services.ProductInput{
		Name: "Chair", CategoryName: "Furniture", Quantity: 1, Price: 1, PriceRRC: 1,
	})
	if !errors.Is(err, domain.ErrNoShop) {
		t.Fatalf("want ErrNoShop, got %v", err)
	}
}

func TestAvailability(t *testing.T) {
	svc, _ := newCatalogSvc(t)

	// pi-chair: 5 units, pi-lamp: 12 units
	if _, status, _ := svc.Availability("pi-chair"); status != "IN_STOCK" {
		t.Fatalf("want IN_STOCK, got %s", status)
	}
	if _, status, _ := svc.Availability("pi-missing"); status != "OUT_OF_STOCK" {
		t.Fatalf("want OUT_OF_STOCK, got %s", status)
	}
}

func TestCreateCategory_Canonicalizes(t *testing.T) {
	svc, _ := newCatalogSvc(t)

	cat, err := svc.CreateCategory("gARDEN tools")
	if err != nil {
		t.Fatal(err)
	}
	if cat.Name != "Garden tools" {
		t.Fatalf("want canonical name, got %q", cat.Name)
	}
}
