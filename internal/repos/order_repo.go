package repos

import (
	"database/sql"

	"shopapi/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// Place runs the whole order transaction: reserve stock for every
// line, snapshot the contacts, insert the order header and its items.
// Any failure rolls everything back, including earlier decrements.
func (r *OrderRepo) Place(o domain.Order, contacts domain.Contacts, items []domain.OrderItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Stock reservation: the floor-checked UPDATE is atomic against
	// concurrent placements, so a fresh read-decrement-write cannot
	// oversell. Zero rows affected means the line cannot be filled.
	for _, it := range items {
		res, err := tx.Exec(`
			UPDATE product_info
			SET quantity = quantity - ?
			WHERE id = ? AND quantity >= ?`,
			it.Quantity, it.ProductInfoID, it.Quantity)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			avail := 0
			if err := tx.Get(&avail, `SELECT quantity FROM product_info WHERE id=?`, it.ProductInfoID); err != nil && err != sql.ErrNoRows {
				return err
			}
			return &domain.InsufficientStockError{
				ProductInfoID: it.ProductInfoID,
				Requested:     it.Quantity,
				Available:     avail,
			}
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO contacts(id,user_id,city,district,street,house,building,phone)
		VALUES(?,?,?,?,?,?,?,?)`,
		contacts.ID, contacts.UserID, contacts.City, contacts.District,
		contacts.Street, contacts.House, contacts.Building, contacts.Phone); err != nil {
		return err
	}

	if _, err := tx.Exec(`
		INSERT INTO orders(id,user_id,created_date,state,contacts_id)
		VALUES(?,?,CURRENT_TIMESTAMP,?,?)`,
		o.ID, o.UserID, o.State, contacts.ID); err != nil {
		return err
	}

	for _, it := range items {
		if _, err := tx.Exec(`
			INSERT INTO order_items(order_id,product_info_id,quantity)
			VALUES(?,?,?)`,
			o.ID, it.ProductInfoID, it.Quantity); err != nil {
			return err
		}
	}

	return tx.Commit()
}

const orderCols = `id, user_id, created_date, state, contacts_id`

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id=?`, id)
	return o, err
}

func (r *OrderRepo) Items(orderID string) ([]domain.OrderItem, error) {
	var out []domain.OrderItem
	err := r.db.Select(&out, `
		SELECT order_id, product_info_id, quantity
		FROM order_items WHERE order_id=?`, orderID)
	return out, err
}

func (r *OrderRepo) Contacts(contactsID string) (domain.Contacts, error) {
	var c domain.Contacts
	err := r.db.Get(&c, `
		SELECT id,user_id,city,district,street,house,building,phone
		FROM contacts WHERE id=?`, contactsID)
	return c, err
}

func (r *OrderRepo) ListByUser(userID string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
		SELECT `+orderCols+` FROM orders
		WHERE user_id=?
		ORDER BY datetime(created_date) DESC`, userID)
	return out, err
}

func (r *OrderRepo) ListAll() ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
		SELECT `+orderCols+` FROM orders
		ORDER BY datetime(created_date) DESC`)
	return out, err
}

func (r *OrderRepo) UpdateState(id, state string) error {
	_, err := r.db.Exec(`UPDATE orders SET state=? WHERE id=?`, state, id)
	return err
}
