package services

import (
	"database/sql"

	"shopapi/internal/domain"
	"shopapi/internal/repos"

	"github.com/google/uuid"
)

type ShopService struct {
	Shops *repos.ShopRepo
}

func NewShopService(shops *repos.ShopRepo) *ShopService {
	return &ShopService{Shops: shops}
}

// ShopView is a shop with its linked categories.
type ShopView struct {
	domain.Shop
	Categories []domain.Category `json:"categories"`
}

func (s *ShopService) view(shop domain.Shop) (ShopView, error) {
	cats, err := s.Shops.Categories(shop.ID)
	if err != nil {
		return ShopView{}, err
	}
	if cats == nil {
		cats = []domain.Category{}
	}
	return ShopView{Shop: shop, Categories: cats}, nil
}

func (s *ShopService) List() ([]ShopView, error) {
	shops, err := s.Shops.List()
	if err != nil {
		return nil, err
	}
	out := make([]ShopView, 0, len(shops))
	for _, sh := range shops {
		v, err := s.view(sh)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *ShopService) Get(id string) (ShopView, error) {
	sh, err := s.Shops.Get(id)
	if err != nil {
		return ShopView{}, err
	}
	return s.view(sh)
}

// Create enforces the original rules: sellers only, one shop a user.
func (s *ShopService) Create(u *domain.User, name string, state bool) (ShopView, error) {
	if !u.IsSeller() {
		return ShopView{}, domain.ErrWrongUserType
	}
	if _, err := s.Shops.ByUser(u.ID); err == nil {
		return ShopView{}, domain.ErrDuplicateShop
	} else if err != sql.ErrNoRows {
		return ShopView{}, err
	}

	id := uuid.NewString()
	if err := s.Shops.Create(id, name, u.ID, state); err != nil {
		return ShopView{}, err
	}
	return s.Get(id)
}

func (s *ShopService) Update(u *domain.User, id, name string, state bool) (ShopView, error) {
	sh, err := s.Shops.Get(id)
	if err != nil {
		return ShopView{}, err
	}
	if sh.UserID != u.ID && !u.IsAdmin() {
		return ShopView{}, domain.ErrNotOwner
	}
	if err := s.Shops.Update(id, name, state); err != nil {
		return ShopView{}, err
	}
	return s.Get(id)
}

func (s *ShopService) Delete(u *domain.User, id string) error {
	sh, err := s.Shops.Get(id)
	if err != nil {
		return err
	}
	if sh.UserID != u.ID && !u.IsAdmin() {
		return domain.ErrNotOwner
	}
	return s.Shops.Delete(id)
}
