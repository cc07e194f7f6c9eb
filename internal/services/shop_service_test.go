package services_test

import (
	"errors"
	"testing"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"shopapi/internal/domain"
	"shopapi/internal/repos"
	"shopapi/internal/services"
)

func TestShopCreate_Rules(t *testing.T) {
	db := memdbOrders(t)
	svc := services.NewShopService(repos.NewShopRepo(db))

	buyer := &domain.User{ID: "u-demo-buyer", Type: domain.UserTypeBuyer}
	if _, err := svc.Create(buyer, "Buyer Shop", true); !errors.Is(err, domain.ErrWrongUserType) {
		t.Fatalf("want ErrWrongUserType, got %v", err)
	}

	seller := &domain.User{ID: "u-demo-seller", Type: domain.UserTypeSeller}
	// the demo seller already owns the seeded shop
	if _, err := svc.Create(seller, "Second Shop", true); !errors.Is(err, domain.ErrDuplicateShop) {
		t.Fatalf("want ErrDuplicateShop, got %v", err)
	}
}

func TestShopUpdate_OwnerOnly(t *testing.T) {
	db := memdbOrders(t)
	svc := services.NewShopService(repos.NewShopRepo(db))

	stranger := &domain.User{ID: "u-demo-buyer", Type: domain.UserTypeBuyer}
	if _, err := svc.Update(stranger, "shop-demo", "Hijacked", false); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("want ErrNotOwner, got %v", err)
	}
	if err := svc.Delete(stranger, "shop-demo"); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("want ErrNotOwner, got %v", err)
	}

	// admins may update any shop
	admin := &domain.User{ID: "u-demo-admin", Type: domain.UserTypeAdmin}
	v, err := svc.Update(admin, "shop-demo", "Renamed", false)
	if err != nil {
		t.Fatal(err)
	}
	if v.Name != "Renamed" || v.State {
		t.Fatalf("update not applied: %+v", v.Shop)
	}
}

func TestShopOwnerUpdate(t *testing.T) {
	db := memdbOrders(t)
	svc := services.NewShopService(repos.NewShopRepo(db))

	owner := &domain.User{ID: "u-demo-seller", Type: domain.UserTypeSeller}
	v, err := svc.Update(owner, "shop-demo", "Demo Shop 2", true)
	if err != nil {
		t.Fatal(err)
	}
	if v.Name != "Demo Shop 2" {
		t.Fatalf("update not applied: %+v", v.Shop)
	}
}
