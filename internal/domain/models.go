package domain

type Shop struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	UserID   string `db:"user_id" json:"-"`
	State    bool   `db:"state" json:"state"` // accepting orders
	URL      string `db:"url" json:"url,omitempty"`
	Filename string `db:"filename" json:"filename,omitempty"`
}

type Category struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type Product struct {
	ID         string `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	CategoryID string `db:"category_id" json:"-"`
}

// ProductInfo is one shop's listing of one product: stock on hand plus
// the shop's internal price and the recommended retail price, both in
// integer minor units.
type ProductInfo struct {
	ID        string `db:"id" json:"id"`
	ProductID string `db:"product_id" json:"product_id"`
	ShopID    string `db:"shop_id" json:"shop_id"`
	Quantity  int    `db:"quantity" json:"quantity"`
	Price     int    `db:"price" json:"price"`
	PriceRRC  int    `db:"price_rrc" json:"price_rrc"`
}

type Parameter struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type ProductParameter struct {
	ProductInfoID string `db:"product_info_id" json:"-"`
	ParameterID   string `db:"parameter_id" json:"-"`
	Name          string `db:"name" json:"name"`
	Value         string `db:"value" json:"value"`
}

type Contacts struct {
	ID       string `db:"id" json:"id"`
	UserID   string `db:"user_id" json:"-"`
	City     string `db:"city" json:"city"`
	District string `db:"district" json:"district"`
	Street   string `db:"street" json:"street"`
	House    string `db:"house" json:"house"`
	Building string `db:"building" json:"building"`
	Phone    string `db:"phone" json:"phone"`
}

// Order states, in lifecycle order.
const (
	OrderStateNew       = "new"
	OrderStateConfirmed = "confirmed"
	OrderStateAssembled = "assembled"
	OrderStateSent      = "sent"
	OrderStateDelivered = "delivered"
	OrderStateCanceled  = "canceled"
)

func ValidOrderState(s string) bool {
	switch s {
	case OrderStateNew, OrderStateConfirmed, OrderStateAssembled,
		OrderStateSent, OrderStateDelivered, OrderStateCanceled:
		return true
	}
	return false
}

type Order struct {
	ID          string `db:"id" json:"id"`
	UserID      string `db:"user_id" json:"-"`
	CreatedDate string `db:"created_date" json:"created_date"`
	State       string `db:"state" json:"state"`
	ContactsID  string `db:"contacts_id" json:"-"`
}

type OrderItem struct {
	OrderID       string `db:"order_id" json:"-"`
	ProductInfoID string `db:"product_info_id" json:"product_info_id"`
	Quantity      int    `db:"quantity" json:"quantity"`
}
