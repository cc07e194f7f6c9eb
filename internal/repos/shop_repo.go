package repos

import (
	"shopapi/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ShopRepo struct{ db *sqlx.DB }

func NewShopRepo(db *sqlx.DB) *ShopRepo { return &ShopRepo{db: db} }

const shopCols = `id, name, user_id, state, url, filename`

func (r *ShopRepo) List() ([]domain.Shop, error) {
	var out []domain.Shop
	err := r.db.Select(&out, `SELECT `+shopCols+` FROM shops ORDER BY name`)
	return out, err
}

func (r *ShopRepo) Get(id string) (domain.Shop, error) {
	var s domain.Shop
	err := r.db.Get(&s, `SELECT `+shopCols+` FROM shops WHERE id=?`, id)
	return s, err
}

// ByUser returns the user's shop. sql.ErrNoRows means no shop yet.
func (r *ShopRepo) ByUser(userID string) (domain.Shop, error) {
	var s domain.Shop
	err := r.db.Get(&s, `SELECT `+shopCols+` FROM shops WHERE user_id=?`, userID)
	return s, err
}

func (r *ShopRepo) Create(id, name, userID string, state bool) error {
	_, err := r.db.Exec(`INSERT INTO shops(id,name,user_id,state) VALUES(?,?,?,?)`,
		id, name, userID, state)
	return err
}

func (r *ShopRepo) Update(id, name string, state bool) error {
	_, err := r.db.Exec(`UPDATE shops SET name=?, state=? WHERE id=?`, name, state, id)
	return err
}

func (r *ShopRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM shops WHERE id=?`, id)
	return err
}

// Categories returns the categories a shop is linked to.
func (r *ShopRepo) Categories(shopID string) ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
		SELECT c.id, c.name
		FROM shop_categories sc
		JOIN categories c ON c.id = sc.category_id
		WHERE sc.shop_id = ?
		ORDER BY c.name`, shopID)
	return out, err
}

func (r *ShopRepo) LinkCategory(shopID, categoryID string) error {
	_, err := r.db.Exec(`
		INSERT INTO shop_categories(shop_id,category_id) VALUES(?,?)
		ON CONFLICT(shop_id,category_id) DO NOTHING`, shopID, categoryID)
	return err
}
