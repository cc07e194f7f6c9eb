package repos

import (
	"shopapi/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ContactsRepo struct{ db *sqlx.DB }

func NewContactsRepo(db *sqlx.DB) *ContactsRepo { return &ContactsRepo{db: db} }

const contactsCols = `id, user_id, city, district, street, house, building, phone`

func (r *ContactsRepo) ListByUser(userID string) ([]domain.Contacts, error) {
	var out []domain.Contacts
	err := r.db.Select(&out, `SELECT `+contactsCols+` FROM contacts WHERE user_id=? ORDER BY city`, userID)
	return out, err
}

func (r *ContactsRepo) Get(id string) (domain.Contacts, error) {
	var c domain.Contacts
	err := r.db.Get(&c, `SELECT `+contactsCols+` FROM contacts WHERE id=?`, id)
	return c, err
}

func (r *ContactsRepo) Create(c domain.Contacts) error {
	_, err := r.db.Exec(`
		INSERT INTO contacts(id,user_id,city,district,street,house,building,phone)
		VALUES(?,?,?,?,?,?,?,?)`,
		c.ID, c.UserID, c.City, c.District, c.Street, c.House, c.Building, c.Phone)
	return err
}

func (r *ContactsRepo) Update(c domain.Contacts) error {
	_, err := r.db.Exec(`
		UPDATE contacts SET city=?, district=?, street=?, house=?, building=?, phone=?
		WHERE id=?`,
		c.City, c.District, c.Street, c.House, c.Building, c.Phone, c.ID)
	return err
}
