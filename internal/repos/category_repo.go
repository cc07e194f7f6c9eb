package repos

import (
	"shopapi/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List(nameFilter string) ([]domain.Category, error) {
	var out []domain.Category
	if nameFilter != "" {
		err := r.db.Select(&out, `
		  SELECT id, name FROM categories
		  WHERE LOWER(name) LIKE ?
		  ORDER BY name`, "%"+nameFilter+"%")
		return out, err
	}
	err := r.db.Select(&out, `SELECT id, name FROM categories ORDER BY name`)
	return out, err
}

func (r *CategoryRepo) Get(id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `SELECT id, name FROM categories WHERE id=?`, id)
	return c, err
}

// ByName looks a category up by its stored canonical name.
// sql.ErrNoRows means the category does not exist.
func (r *CategoryRepo) ByName(name string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `SELECT id, name FROM categories WHERE name=?`, name)
	return c, err
}

func (r *CategoryRepo) Create(id, name string) error {
	_, err := r.db.Exec(`INSERT INTO categories(id,name) VALUES(?,?)`, id, name)
	return err
}

func (r *CategoryRepo) Rename(id, name string) error {
	_, err := r.db.Exec(`UPDATE categories SET name=? WHERE id=?`, name, id)
	return err
}
