package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"shopapi/internal/config"
	"shopapi/internal/http/handlers"
	"shopapi/internal/repos"
	"shopapi/internal/services"
)

// newAPIApp wires a minimal app with the same route layout as main.
func newAPIApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	cfg := config.Config{DBDSN: ":memory:", MediaDir: t.TempDir()}
	deps := handlers.NewDeps(db, cfg)

	app := fiber.New()
	app.Use(requestid.New())

	api := app.Group("/api/v1")
	api.Post("/login", authH.Login)
	api.Post("/logout", authH.Logout)

	authed := api.Group("", handlers.RequireUser(authSvc))
	authed.Get("/product-info", deps.ProductInfoHandler.List)
	authed.Get("/availability", deps.ProductInfoHandler.Availability)
	authed.Post("/product-info", handlers.NotAllowed("product info cannot be created on its own"))
	authed.Delete("/product-info/:id", handlers.NotAllowed("product info cannot be deleted on its own"))
	authed.Get("/orders/:id", deps.OrderHandler.Get)
	authed.Post("/orders", deps.OrderHandler.Place)
	authed.Put("/import", handlers.NotAllowed("the imported file link cannot be updated"))
	authed.Delete("/import", handlers.NotAllowed("the imported file link cannot be deleted"))

	return app, db
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/login",
		strings.NewReader(`{"email":"`+email+`","password":"Passw0rd!"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == "sid" {
			return c.Value
		}
	}
	t.Fatal("no sid cookie set")
	return ""
}

func TestAPI_RequiresAuth(t *testing.T) {
	app, _ := newAPIApp(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/product-info", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_ProductInfoReadOnly(t *testing.T) {
	app, _ := newAPIApp(t)
	sid := login(t, app, "buyer@shopapi.test")

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/product-info"},
		{http.MethodDelete, "/api/v1/product-info/pi-chair"},
		{http.MethodPut, "/api/v1/import"},
		{http.MethodDelete, "/api/v1/import"},
	} {
		req, _ := http.NewRequest(tc.method, tc.path, nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, "%s %s", tc.method, tc.path)
	}
}

func TestAPI_PlaceOrder(t *testing.T) {
	app, db := newAPIApp(t)
	sid := login(t, app, "buyer@shopapi.test")

	body := `{
	  "contacts": {"city":"Springfield","district":"Downtown","street":"Main St","house":"7","building":"2","phone":"+1 555 0100"},
	  "positions": [{"product_info_id":"pi-chair","quantity":2}]
	}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID        string `json:"id"`
		State     string `json:"state"`
		Positions []struct {
			ProductInfoID string `json:"product_info_id"`
			Quantity      int    `json:"quantity"`
		} `json:"positions"`
	}
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "new", created.State)
	require.Len(t, created.Positions, 1)
	assert.Equal(t, 2, created.Positions[0].Quantity)

	var qty int
	require.NoError(t, db.Get(&qty, `SELECT quantity FROM product_info WHERE id='pi-chair'`))
	assert.Equal(t, 3, qty)
}

func TestAPI_PlaceOrder_InsufficientStock(t *testing.T) {
	app, db := newAPIApp(t)
	sid := login(t, app, "buyer@shopapi.test")

	body := `{
	  "contacts": {"city":"Springfield","street":"Main St","house":"7","phone":"+1 555 0100"},
	  "positions": [{"product_info_id":"pi-chair","quantity":6}]
	}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var payload struct {
		Requested int `json:"requested"`
		Available int `json:"available"`
	}
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, 6, payload.Requested)
	assert.Equal(t, 5, payload.Available)

	var qty int
	require.NoError(t, db.Get(&qty, `SELECT quantity FROM product_info WHERE id='pi-chair'`))
	assert.Equal(t, 5, qty)
}

func TestAPI_OrderVisibleToOwnerOnly(t *testing.T) {
	app, _ := newAPIApp(t)
	buyerSID := login(t, app, "buyer@shopapi.test")

	body := `{
	  "contacts": {"city":"Springfield","street":"Main St","house":"7","phone":"+1 555 0100"},
	  "positions": [{"product_info_id":"pi-lamp","quantity":1}]
	}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "sid", Value: buyerSID})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID string `json:"id"`
	}
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &created))

	// another (non-admin) user cannot see the order
	sellerSID := login(t, app, "seller@shopapi.test")
	req, _ = http.NewRequest(http.MethodGet, "/api/v1/orders/"+created.ID, nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sellerSID})
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// an admin can
	adminSID := login(t, app, "admin@shopapi.test")
	req, _ = http.NewRequest(http.MethodGet, "/api/v1/orders/"+created.ID, nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: adminSID})
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
