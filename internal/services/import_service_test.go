package services_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"shopapi/internal/domain"
	"shopapi/internal/pricelist"
	"shopapi/internal/repos"
	"shopapi/internal/services"
)

const chairDoc = `
- name: Chair
  category:
    name: Furniture
  product_info:
    quantity: 5
    price: 1000
    price_rrc: 1200
  product_parameter:
    - parameter:
        name: Color
      value: Red
`

// importFixture wires an ImportService against httptest stand-ins for
// the link-resolver and the file host.
type importFixture struct {
	db  *sqlx.DB
	svc *services.ImportService
	dir string
}

func newImportFixture(t *testing.T, doc string, resolveOK, downloadOK bool) importFixture {
	t.Helper()

	files := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !downloadOK {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(doc))
	}))
	t.Cleanup(files.Close)

	resolver := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !resolveOK || r.URL.Query().Get("public_key") == "" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"href":"` + files.URL + `/download?filename=pricelist.yml"}`))
	}))
	t.Cleanup(resolver.Close)

	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	// drop the seeded demo listings so counts start from zero
	db.MustExec(`DELETE FROM product_parameters; DELETE FROM product_info; DELETE FROM products;`)

	dir := t.TempDir()
	fetcher := pricelist.NewFetcher(resolver.URL, 5*time.Second)
	svc := services.NewImportService(fetcher,
		repos.NewShopRepo(db), repos.NewCategoryRepo(db),
		repos.NewParameterRepo(db), repos.NewProductRepo(db), dir)

	return importFixture{db: db, svc: svc, dir: dir}
}

func countRows(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM `+table))
	return n
}

func TestImport_CreatesCatalog(t *testing.T) {
	f := newImportFixture(t, chairDoc, true, true)

	res, err := f.svc.Import(context.Background(), "u-demo-seller", "https://disk.example/public/abc")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Products)
	assert.Equal(t, "pricelist.yml", res.Filename)

	var prod domain.Product
	require.NoError(t, f.db.Get(&prod, `SELECT id,name,category_id FROM products WHERE name='Chair'`))
	assert.Equal(t, "cat-furniture", prod.CategoryID)

	var info domain.ProductInfo
	require.NoError(t, f.db.Get(&info, `SELECT id,product_id,shop_id,quantity,price,price_rrc FROM product_info WHERE product_id=?`, prod.ID))
	assert.Equal(t, 5, info.Quantity)
	assert.Equal(t, 1000, info.Price)
	// on import price_rrc always tracks price, whatever the document says
	assert.Equal(t, 1000, info.PriceRRC)

	var value string
	require.NoError(t, f.db.Get(&value, `
		SELECT pp.value FROM product_parameters pp
		JOIN parameters par ON par.id = pp.parameter_id
		WHERE pp.product_info_id=? AND par.name='Color'`, info.ID))
	assert.Equal(t, "Red", value)

	// side effect: shop source url and filename recorded
	var shop domain.Shop
	require.NoError(t, f.db.Get(&shop, `SELECT id,name,user_id,state,url,filename FROM shops WHERE id='shop-demo'`))
	assert.Equal(t, "https://disk.example/public/abc", shop.URL)
	assert.Equal(t, "pricelist.yml", shop.Filename)

	// the raw document is persisted under the media dir
	data, err := os.ReadFile(filepath.Join(f.dir, "product_files", "pricelist.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Chair")
}

func TestImport_UnknownCategoryRejectsWholeDocument(t *testing.T) {
	doc := chairDoc + `
- name: Skis
  category:
    name: Sporting Goods
  product_info:
    quantity: 3
    price: 500
`
	f := newImportFixture(t, doc, true, true)

	_, err := f.svc.Import(context.Background(), "u-demo-seller", "https://disk.example/public/abc")
	var catErr *domain.UnknownCategoryError
	require.ErrorAs(t, err, &catErr)
	assert.Equal(t, "Sporting Goods", catErr.Name)

	// strict atomicity: the valid Chair record must not land either
	assert.Equal(t, 0, countRows(t, f.db, "products"))
	assert.Equal(t, 0, countRows(t, f.db, "product_info"))
}

func TestImport_UnknownParameterRejectsWholeDocument(t *testing.T) {
	doc := `
- name: Chair
  category:
    name: Furniture
  product_info:
    quantity: 5
    price: 1000
  product_parameter:
    - parameter:
        name: Wingspan
      value: wide
`
	f := newImportFixture(t, doc, true, true)

	_, err := f.svc.Import(context.Background(), "u-demo-seller", "https://disk.example/public/abc")
	var parErr *domain.UnknownParameterError
	require.ErrorAs(t, err, &parErr)
	assert.Equal(t, "Wingspan", parErr.Name)
	assert.Equal(t, 0, countRows(t, f.db, "products"))
}

func TestImport_LinkResolutionFailed(t *testing.T) {
	f := newImportFixture(t, chairDoc, false, true)

	_, err := f.svc.Import(context.Background(), "u-demo-seller", "https://disk.example/public/missing")
	assert.True(t, errors.Is(err, domain.ErrLinkResolution), "got %v", err)
}

func TestImport_DownloadFailed(t *testing.T) {
	f := newImportFixture(t, chairDoc, true, false)

	_, err := f.svc.Import(context.Background(), "u-demo-seller", "https://disk.example/public/abc")
	assert.True(t, errors.Is(err, domain.ErrDownload), "got %v", err)
}

func TestImport_MalformedDocument(t *testing.T) {
	f := newImportFixture(t, "{not yaml: [", true, true)

	_, err := f.svc.Import(context.Background(), "u-demo-seller", "https://disk.example/public/abc")
	var parseErr *domain.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestImport_RequiresShop(t *testing.T) {
	f := newImportFixture(t, chairDoc, true, true)

	_, err := f.svc.Import(context.Background(), "u-demo-buyer", "https://disk.example/public/abc")
	assert.True(t, errors.Is(err, domain.ErrNoShop), "got %v", err)
}
