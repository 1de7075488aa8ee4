package order

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/fresh-meat-hub/internal/interface/http/httperr"
	"github.com/wichananm65/fresh-meat-hub/internal/logger"
)

const checkoutBody = `{
	"customerName": "Asha",
	"phone": "9876543210",
	"address": "12 Market Road",
	"pincode": "144411",
	"items": [
		{"productId": "p1", "productName": "Chicken Breast", "quantity": 1, "price": 250, "weight": "500g"},
		{"productId": "p2", "productName": "Wings", "quantity": 2, "price": 125, "weight": "500g"}
	],
	"totalPrice": 500
}`

func newTestApp(t *testing.T, guard fiber.Handler) *fiber.App {
	t.Helper()
	svc := NewService(NewInMemoryRepository(), testPincodes,
		WithAuditLog(NewFileAuditLog(filepath.Join(t.TempDir(), "orders.txt"))),
		WithLogger(logger.Discard()),
	)
	h := NewHandler(svc)

	app := fiber.New(fiber.Config{ErrorHandler: httperr.Handler(logger.Discard())})
	api := app.Group("/api")
	h.RegisterPublicRoutes(api)
	h.RegisterProtectedRoutes(api, guard)
	return app
}

func pass(c *fiber.Ctx) error { return c.Next() }

func call(t *testing.T, app *fiber.App, method, path, body string) (int, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(b)
}

func TestCheckoutAndStatusFlow(t *testing.T) {
	app := newTestApp(t, pass)

	status, body := call(t, app, "POST", "/api/orders", checkoutBody)
	require.Equal(t, fiber.StatusCreated, status, body)

	var o Order
	require.NoError(t, json.Unmarshal([]byte(body), &o))
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, "Cash on Delivery", o.PaymentMode)

	status, body = call(t, app, "PUT", "/api/orders/"+o.ID+"/status", `{"status":"PACKED"}`)
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Contains(t, body, `"status":"PACKED"`)

	status, body = call(t, app, "PUT", "/api/orders/"+o.ID+"/status", `{"status":"SHIPPED"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"detail":"Invalid status. Must be one of: PENDING, PACKED, OUT FOR DELIVERY, COMPLETED"}`, body)

	status, body = call(t, app, "GET", "/api/orders/"+o.ID, "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, `"status":"PACKED"`)

	status, body = call(t, app, "GET", "/api/orders", "")
	assert.Equal(t, fiber.StatusOK, status)
	var list []Order
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	assert.Len(t, list, 1)
}

func TestCheckoutUnserviceablePincode(t *testing.T) {
	app := newTestApp(t, pass)

	body := strings.Replace(checkoutBody, "144411", "560001", 1)
	status, got := call(t, app, "POST", "/api/orders", body)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"detail":"Pincode not serviceable"}`, got)

	_, got = call(t, app, "GET", "/api/orders", "")
	assert.JSONEq(t, `[]`, got)
}

func TestUnknownOrderIs404(t *testing.T) {
	app := newTestApp(t, pass)

	status, body := call(t, app, "PUT", "/api/orders/nope/status", `{"status":"COMPLETED"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.JSONEq(t, `{"detail":"Order not found"}`, body)
}

func TestOrderManagementIsGuarded(t *testing.T) {
	deny := func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Unauthorized"})
	}
	app := newTestApp(t, deny)

	status, _ := call(t, app, "GET", "/api/orders", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	// checkout stays public
	status, _ = call(t, app, "POST", "/api/orders", checkoutBody)
	assert.Equal(t, fiber.StatusCreated, status)
}
