package midtrans_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhivlux/storefront/config"
	"github.com/zhivlux/storefront/internal/domain"
	"github.com/zhivlux/storefront/internal/gateway/midtrans"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func testGateway(t *testing.T, handler http.HandlerFunc) *midtrans.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return midtrans.NewWithAPI(config.Midtrans{
		ServerKey: "SB-server-key",
		ClientKey: "SB-client-key",
		Timeout:   2 * time.Second,
	}, srv.URL, noopLogger{})
}

func chargeRequest() *domain.ChargeRequest {
	return &domain.ChargeRequest{
		OrderID:     "ZLX-1756400000000-AB12CD",
		Amount:      22500,
		PaymentType: "echannel",
		Customer:    domain.CustomerDetails{FirstName: "12345678", Email: "user@example.com"},
		Items: []domain.LineItem{
			{ID: "item-1", Price: 20000, Quantity: 1, Name: "86 Diamonds"},
			{ID: "admin-fee", Price: 2500, Quantity: 1, Name: "Biaya Admin"},
		},
	}
}

func TestCreateToken(t *testing.T) {
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/charge", r.URL.Path)

		wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("SB-server-key:"))
		assert.Equal(t, wantAuth, r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "echannel", body["payment_type"])

		td := body["transaction_details"].(map[string]any)
		assert.Equal(t, "ZLX-1756400000000-AB12CD", td["order_id"])
		assert.EqualValues(t, 22500, td["gross_amount"])

		items := body["item_details"].([]any)
		require.Len(t, items, 2)
		fee := items[1].(map[string]any)
		assert.Equal(t, "Biaya Admin", fee["name"])
		assert.EqualValues(t, 2500, fee["price"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status_code":"201","token":"tok_123","redirect_url":"https://pay.example/tok_123"}`))
	})

	token, err := gw.CreateToken(context.Background(), chargeRequest())
	require.NoError(t, err)
	assert.Equal(t, "tok_123", token.Token)
	assert.Equal(t, "https://pay.example/tok_123", token.RedirectURL)
}

func TestCreateToken_DeclinedInBody(t *testing.T) {
	gw := testGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status_code":"406","status_message":"duplicate order_id"}`))
	})

	_, err := gw.CreateToken(context.Background(), chargeRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declined")
}

func TestStatus(t *testing.T) {
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ZLX-1756400000000-AB12CD/status", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status_code":"200","transaction_status":"settlement","fraud_status":"accept"}`))
	})

	status, err := gw.Status(context.Background(), "ZLX-1756400000000-AB12CD")
	require.NoError(t, err)
	assert.Equal(t, "settlement", status.TransactionStatus)
	assert.Equal(t, "accept", status.FraudStatus)
}

func TestPaymentTypeFor(t *testing.T) {
	gw := midtrans.New(config.Midtrans{Timeout: time.Second}, noopLogger{})

	cases := map[string]string{
		"dana":      "dana",
		"gopay":     "gopay",
		"ovo":       "ovo",
		"bca":       "bank_transfer",
		"bni":       "bank_transfer",
		"bri":       "bank_transfer",
		"mandiri":   "echannel",
		"alfamart":  "cstore",
		"indomaret": "cstore",
		"unknown":   "bank_transfer",
	}
	for methodID, want := range cases {
		assert.Equal(t, want, gw.PaymentTypeFor(methodID), methodID)
	}
}
