package handlers_test

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderColumns = []string{
	"id", "customer_id", "dress_type", "price", "paid_amount",
	"trial_date", "delivery_date", "status", "payment_mode", "payment_date",
	"created_at", "customer_name", "customer_phone",
}

func validOrderBody() map[string]interface{} {
	return map[string]interface{}{
		"customer_id":   1,
		"dress_type":    "Kurta",
		"price":         1200,
		"paid_amount":   200,
		"delivery_date": "2026-09-15",
	}
}

func expectCustomerCount(mock sqlmock.Sqlmock, n int) {
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `customers`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(n))
}

func TestAddOrder_Valid(t *testing.T) {
	mock := setupMockDB(t)
	r := newRouter()

	expectCustomerCount(mock, 1)
	mock.ExpectExec("INSERT INTO `orders`").
		WillReturnResult(sqlmock.NewResult(7, 1))

	w := doJSON(t, r, "POST", "/orders", validOrderBody())
	requireStatus(t, w, 201)

	body := decodeBody(t, w)
	assert.Equal(t, float64(7), body["id"])
	require.NoError(t, mock.ExpectationsWereMet())
}

// Validation runs before anything touches the store.
func TestAddOrder_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"paid greater than price", func(b map[string]interface{}) { b["paid_amount"] = 1500 }},
		{"negative paid", func(b map[string]interface{}) { b["paid_amount"] = -1 }},
		{"negative price", func(b map[string]interface{}) { b["price"] = -10 }},
		{"missing price", func(b map[string]interface{}) { delete(b, "price") }},
		{"missing delivery date", func(b map[string]interface{}) { b["delivery_date"] = "" }},
		{"missing dress type", func(b map[string]interface{}) { b["dress_type"] = "  " }},
		{"missing customer", func(b map[string]interface{}) { b["customer_id"] = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := setupMockDB(t)
			r := newRouter()

			body := validOrderBody()
			tc.mutate(body)

			w := doJSON(t, r, "POST", "/orders", body)
			requireStatus(t, w, 400)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAddOrder_UnknownCustomer(t *testing.T) {
	mock := setupMockDB(t)
	r := newRouter()

	expectCustomerCount(mock, 0)

	w := doJSON(t, r, "POST", "/orders", validOrderBody())
	requireStatus(t, w, 400)

	body := decodeBody(t, w)
	assert.Contains(t, body["message"], "customer_id")
}

// A paid amount equal to the price is the boundary and is allowed.
func TestAddOrder_FullyPaid(t *testing.T) {
	mock := setupMockDB(t)
	r := newRouter()

	expectCustomerCount(mock, 1)
	mock.ExpectExec("INSERT INTO `orders`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	body := validOrderBody()
	body["paid_amount"] = 1200

	w := doJSON(t, r, "POST", "/orders", body)
	requireStatus(t, w, 201)
}

func expectOrderCount(mock sqlmock.Sqlmock, n int) {
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `orders`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(n))
}

func TestUpdateOrder_NotFound(t *testing.T) {
	mock := setupMockDB(t)
	r := newRouter()

	expectCustomerCount(mock, 1)
	expectOrderCount(mock, 0)

	w := doJSON(t, r, "PUT", "/orders/99", validOrderBody())
	requireStatus(t, w, 404)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Resubmitting an edit form with identical values makes MySQL report
// zero changed rows. That is still a successful update of an existing
// order, not a missing one.
func TestUpdateOrder_NoChange(t *testing.T) {
	mock := setupMockDB(t)
	r := newRouter()

	expectCustomerCount(mock, 1)
	expectOrderCount(mock, 1)
	mock.ExpectExec("UPDATE `orders` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := doJSON(t, r, "PUT", "/orders/7", validOrderBody())
	requireStatus(t, w, 200)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrder_BadID(t *testing.T) {
	r := newRouter()
	w := doJSON(t, r, "PUT", "/orders/abc", validOrderBody())
	requireStatus(t, w, 400)
}

func TestDeleteOrder(t *testing.T) {
	mock := setupMockDB(t)
	r := newRouter()

	mock.ExpectExec("DELETE FROM `orders`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := doJSON(t, r, "DELETE", "/orders/7", nil)
	requireStatus(t, w, 200)

	mock.ExpectExec("DELETE FROM `orders`").
		WillReturnResult(sqlmock.NewResult(0, 0))

	w = doJSON(t, r, "DELETE", "/orders/7", nil)
	requireStatus(t, w, 404)
}

func TestGetOrders_ComputesDue(t *testing.T) {
	mock := setupMockDB(t)
	r := newRouter()

	mock.ExpectQuery("SELECT orders\\.\\*, customers\\.name AS customer_name").
		WillReturnRows(sqlmock.NewRows(orderColumns).
			AddRow(2, 1, "Kurta", 1200.0, 200.0, "", "2026-09-15", "Pending", "", "", time.Now(), "Ramesh", "98765").
			AddRow(1, 1, "Blouse", 500.0, 700.0, "", "2026-09-10", "Delivered", "Cash", "2026-08-01", time.Now(), "Ramesh", "98765"))

	w := doJSON(t, r, "GET", "/orders", nil)
	requireStatus(t, w, 200)

	var rows []map[string]interface{}
	require.NoError(t, jsonDecode(w, &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, float64(1000), rows[0]["due_amount"])
	assert.Equal(t, "Ramesh", rows[0]["customer_name"])
	// Overpaid orders floor at zero.
	assert.Equal(t, float64(0), rows[1]["due_amount"])
}

func TestGetOrders_BadCustomerFilter(t *testing.T) {
	r := newRouter()
	w := doJSON(t, r, "GET", "/orders?customer_id=abc", nil)
	requireStatus(t, w, 400)
}
