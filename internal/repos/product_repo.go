package repos

import (
	"shopapi/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) List(name, categoryID string, limit, offset int) ([]domain.Product, error) {
	where := `1=1`
	args := []any{}
	if name != "" {
		where += ` AND LOWER(name) LIKE ?`
		args = append(args, "%"+name+"%")
	}
	if categoryID != "" {
		where += ` AND category_id = ?`
		args = append(args, categoryID)
	}
	args = append(args, limit, offset)

	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT id, name, category_id
	  FROM products
	  WHERE `+where+`
	  ORDER BY name
	  LIMIT ? OFFSET ?`, args...)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT id, name, category_id FROM products WHERE id=?`, id)
	return p, err
}

const infoCols = `id, product_id, shop_id, quantity, price, price_rrc`

func (r *ProductRepo) ListInfo(productID, shopID string) ([]domain.ProductInfo, error) {
	where := `1=1`
	args := []any{}
	if productID != "" {
		where += ` AND product_id = ?`
		args = append(args, productID)
	}
	if shopID != "" {
		where += ` AND shop_id = ?`
		args = append(args, shopID)
	}
	var out []domain.ProductInfo
	err := r.db.Select(&out, `SELECT `+infoCols+` FROM product_info WHERE `+where, args...)
	return out, err
}

func (r *ProductRepo) GetInfo(id string) (domain.ProductInfo, error) {
	var pi domain.ProductInfo
	err := r.db.Get(&pi, `SELECT `+infoCols+` FROM product_info WHERE id=?`, id)
	return pi, err
}

// Parameters returns the attribute table of a listing, joined with
// parameter names.
func (r *ProductRepo) Parameters(productInfoID string) ([]domain.ProductParameter, error) {
	var out []domain.ProductParameter
	err := r.db.Select(&out, `
	  SELECT pp.product_info_id, pp.parameter_id, par.name, pp.value
	  FROM product_parameters pp
	  JOIN parameters par ON par.id = pp.parameter_id
	  WHERE pp.product_info_id = ?
	  ORDER BY par.name`, productInfoID)
	return out, err
}

// Listing bundles one product with its per-shop info and attributes
// for transactional creation (direct create and catalog import).
type Listing struct {
	Product domain.Product
	Info    domain.ProductInfo
	Params  []domain.ProductParameter
}

// CreateListing inserts a product, its product_info and its parameter
// links in one transaction.
func (r *ProductRepo) CreateListing(l Listing) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertListing(tx, l); err != nil {
		return err
	}
	return tx.Commit()
}

// ImportCatalog creates every listing and records the shop's catalog
// source in one transaction: either the whole document lands or none
// of it does.
func (r *ProductRepo) ImportCatalog(shopID, url, filename string, listings []Listing) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, l := range listings {
		if err := insertListing(tx, l); err != nil {
			return err
		}
		// Keep the shop's category links in step with what it sells.
		if _, err := tx.Exec(`
			INSERT INTO shop_categories(shop_id,category_id) VALUES(?,?)
			ON CONFLICT(shop_id,category_id) DO NOTHING`,
			shopID, l.Product.CategoryID); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`UPDATE shops SET url=?, filename=? WHERE id=?`,
		url, filename, shopID); err != nil {
		return err
	}
	return tx.Commit()
}

func insertListing(tx *sqlx.Tx, l Listing) error {
	if _, err := tx.Exec(`INSERT INTO products(id,name,category_id) VALUES(?,?,?)`,
		l.Product.ID, l.Product.Name, l.Product.CategoryID); err != nil {
		return err
	}
	if _, err := tx.Exec(`
		INSERT INTO product_info(id,product_id,shop_id,quantity,price,price_rrc)
		VALUES(?,?,?,?,?,?)`,
		l.Info.ID, l.Product.ID, l.Info.ShopID, l.Info.Quantity, l.Info.Price, l.Info.PriceRRC); err != nil {
		return err
	}
	for _, pp := range l.Params {
		if _, err := tx.Exec(`
			INSERT INTO product_parameters(product_info_id,parameter_id,value)
			VALUES(?,?,?)`,
			l.Info.ID, pp.ParameterID, pp.Value); err != nil {
			return err
		}
	}
	return nil
}
