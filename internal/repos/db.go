package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline data if DB is empty (users/categories/parameters/demo shop)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  user_type TEXT NOT NULL CHECK (user_type IN ('SELLER','BUYER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Shops (one per seller)
CREATE TABLE IF NOT EXISTS shops(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  user_id TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
  state INTEGER NOT NULL DEFAULT 1,
  url TEXT NOT NULL DEFAULT '',
  filename TEXT NOT NULL DEFAULT ''
);

-- Categories (canonical-cased name is the natural key)
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name ON categories(name);

CREATE TABLE IF NOT EXISTS shop_categories(
  shop_id     TEXT NOT NULL REFERENCES shops(id) ON DELETE CASCADE,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
  PRIMARY KEY(shop_id, category_id)
);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));

-- Per-shop listing: stock + prices in integer minor units
CREATE TABLE IF NOT EXISTS product_info(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  shop_id    TEXT NOT NULL REFERENCES shops(id) ON DELETE CASCADE,
  quantity INTEGER NOT NULL CHECK (quantity >= 0),
  price     INTEGER NOT NULL CHECK (price >= 0),
  price_rrc INTEGER NOT NULL CHECK (price_rrc >= 0)
);
CREATE INDEX IF NOT EXISTS idx_product_info_product ON product_info(product_id);
CREATE INDEX IF NOT EXISTS idx_product_info_shop    ON product_info(shop_id);

-- Parameters (canonical-cased name is the natural key)
CREATE TABLE IF NOT EXISTS parameters(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_parameters_name ON parameters(name);

CREATE TABLE IF NOT EXISTS product_parameters(
  product_info_id TEXT NOT NULL REFERENCES product_info(id) ON DELETE CASCADE,
  parameter_id    TEXT NOT NULL REFERENCES parameters(id) ON DELETE CASCADE,
  value TEXT NOT NULL,
  PRIMARY KEY(product_info_id, parameter_id)
);

-- Contacts: one fresh row per order, never reused
CREATE TABLE IF NOT EXISTS contacts(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  city TEXT NOT NULL,
  district TEXT NOT NULL DEFAULT '',
  street TEXT NOT NULL,
  house TEXT NOT NULL,
  building TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_contacts_user ON contacts(user_id);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id),
  created_date TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  state TEXT NOT NULL DEFAULT 'new'
    CHECK (state IN ('new','confirmed','assembled','sent','delivered','canceled')),
  contacts_id TEXT NOT NULL REFERENCES contacts(id)
);
CREATE INDEX IF NOT EXISTS idx_orders_user    ON orders(user_id);
CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_date);

CREATE TABLE IF NOT EXISTS order_items(
  order_id        TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_info_id TEXT NOT NULL REFERENCES product_info(id),
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  PRIMARY KEY (order_id, product_info_id)
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/parameters/shop/products")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name) VALUES
	  ('cat-furniture','Furniture'),
	  ('cat-electronics','Electronics'),
	  ('cat-stationery','Stationery')`)

	tx.MustExec(`INSERT INTO parameters(id,name) VALUES
	  ('par-color','Color'),
	  ('par-weight','Weight'),
	  ('par-material','Material')`)

	tx.MustExec(`INSERT INTO users(id,email,name,password_hash,user_type) VALUES
	  ('u-demo-seller','seller@shopapi.test','Demo Seller','*seed*','SELLER')
	  ON CONFLICT(email) DO NOTHING`)

	tx.MustExec(`INSERT INTO shops(id,name,user_id,state) VALUES
	  ('shop-demo','Demo Shop','u-demo-seller',1)`)

	tx.MustExec(`INSERT INTO products(id,name,category_id) VALUES
	  ('prod-chair','Chair','cat-furniture'),
	  ('prod-lamp','Desk Lamp','cat-electronics')`)

	tx.MustExec(`INSERT INTO product_info(id,product_id,shop_id,quantity,price,price_rrc) VALUES
	  ('pi-chair','prod-chair','shop-demo',5,100000,120000),
	  ('pi-lamp','prod-lamp','shop-demo',12,45000,45000)`)

	tx.MustExec(`INSERT INTO product_parameters(product_info_id,parameter_id,value) VALUES
	  ('pi-chair','par-color','Red'),
	  ('pi-chair','par-material','Oak'),
	  ('pi-lamp','par-color','White')`)

	return tx.Commit()
}

// seedUsers ensures a seller, a buyer and an admin exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Type, Hash string
	}
	mk := func(id, email, name, utype, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Type: utype, Hash: string(h)}
	}

	users := []u{
		mk("u-demo-seller", "seller@shopapi.test", "Demo Seller", "SELLER", "Passw0rd!"),
		mk("u-demo-buyer", "buyer@shopapi.test", "Demo Buyer", "BUYER", "Passw0rd!"),
		mk("u-demo-admin", "admin@shopapi.test", "Admin", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,user_type)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO UPDATE SET password_hash=excluded.password_hash
		`, x.ID, x.Email, x.Name, x.Hash, x.Type); err != nil {
			return err
		}
	}

	return tx.Commit()
}
