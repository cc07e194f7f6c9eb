package services

import (
	"shopapi/internal/domain"
	"shopapi/internal/repos"

	"github.com/google/uuid"
)

type OrderService struct {
	Orders *repos.OrderRepo
}

func NewOrderService(orders *repos.OrderRepo) *OrderService {
	return &OrderService{Orders: orders}
}

// ContactsInput is the address snapshot submitted with an order.
type ContactsInput struct {
	City     string
	District string
	Street   string
	House    string
	Building string
	Phone    string
}

// Position is one requested order line.
type Position struct {
	ProductInfoID string
	Quantity      int
}

// OrderView is the created order as returned to the caller.
type OrderView struct {
	domain.Order
	Positions []domain.OrderItem `json:"positions"`
	Contacts  domain.Contacts    `json:"contacts"`
}

// Place validates the request, reserves stock and assembles the order
// in one transaction. The contacts row is always created fresh, even
// when an identical one exists: the order keeps a durable snapshot.
func (s *OrderService) Place(userID string, contacts ContactsInput, positions []Position) (OrderView, error) {
	if len(positions) == 0 {
		return OrderView{}, domain.ErrEmptyOrder
	}

	items := make([]domain.OrderItem, 0, len(positions))
	for _, p := range positions {
		items = append(items, domain.OrderItem{
			ProductInfoID: p.ProductInfoID,
			Quantity:      p.Quantity,
		})
	}

	order := domain.Order{
		ID:     uuid.NewString(),
		UserID: userID,
		State:  domain.OrderStateNew,
	}
	row := domain.Contacts{
		ID:       uuid.NewString(),
		UserID:   userID,
		City:     contacts.City,
		District: contacts.District,
		Street:   contacts.Street,
		House:    contacts.House,
		Building: contacts.Building,
		Phone:    contacts.Phone,
	}

	if err := s.Orders.Place(order, row, items); err != nil {
		return OrderView{}, err
	}
	return s.Get(order.ID)
}

func (s *OrderService) Get(id string) (OrderView, error) {
	o, err := s.Orders.Get(id)
	if err != nil {
		return OrderView{}, err
	}
	items, err := s.Orders.Items(o.ID)
	if err != nil {
		return OrderView{}, err
	}
	contacts, err := s.Orders.Contacts(o.ContactsID)
	if err != nil {
		return OrderView{}, err
	}
	return OrderView{Order: o, Positions: items, Contacts: contacts}, nil
}

// List returns the caller's orders; admins see everything.
func (s *OrderService) List(u *domain.User) ([]OrderView, error) {
	var orders []domain.Order
	var err error
	if u.IsAdmin() {
		orders, err = s.Orders.ListAll()
	} else {
		orders, err = s.Orders.ListByUser(u.ID)
	}
	if err != nil {
		return nil, err
	}
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		v, err := s.Get(o.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// UpdateState moves an order through its lifecycle (admin operation).
func (s *OrderService) UpdateState(id, state string) (OrderView, error) {
	if _, err := s.Orders.Get(id); err != nil {
		return OrderView{}, err
	}
	if err := s.Orders.UpdateState(id, state); err != nil {
		return OrderView{}, err
	}
	return s.Get(id)
}
