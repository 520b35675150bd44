// Package midtrans — клиент платёжного шлюза (Core API).
package midtrans

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/zhivlux/storefront/config"
	"github.com/zhivlux/storefront/internal/domain"
	"github.com/zhivlux/storefront/internal/ports"
)

var _ ports.PaymentGateway = (*Client)(nil)

const (
	sandboxAPI    = "https://api.sandbox.midtrans.com/v2"
	productionAPI = "https://api.midtrans.com/v2"
)

// paymentTypes — отображение способа оплаты витрины в платёжный код шлюза.
// Неизвестный способ уходит в generic bank transfer.
var paymentTypes = map[string]string{
	"dana":      "dana",
	"gopay":     "gopay",
	"ovo":       "ovo",
	"bca":       "bank_transfer",
	"bni":       "bank_transfer",
	"bri":       "bank_transfer",
	"mandiri":   "echannel",
	"alfamart":  "cstore",
	"indomaret": "cstore",
}

const defaultPaymentType = "bank_transfer"

// Client — HTTP-клиент шлюза с basic-auth серверным ключом.
type Client struct {
	apiURL    string
	serverKey string
	http      *http.Client
	log       ports.Logger
}

// New — клиент по настройкам Midtrans-секции. Переопределение apiURL —
// только для тестов через NewWithAPI.
func New(cfg config.Midtrans, log ports.Logger) *Client {
	api := sandboxAPI
	if cfg.Production {
		api = productionAPI
	}
	return NewWithAPI(cfg, api, log)
}

// NewWithAPI — вариант с явным адресом API.
func NewWithAPI(cfg config.Midtrans, apiURL string, log ports.Logger) *Client {
	return &Client{
		apiURL:    apiURL,
		serverKey: cfg.ServerKey,
		http:      &http.Client{Timeout: cfg.Timeout},
		log:       log,
	}
}

// PaymentTypeFor — платёжный код шлюза для способа оплаты.
func (c *Client) PaymentTypeFor(methodID string) string {
	if t, ok := paymentTypes[methodID]; ok {
		return t
	}
	return defaultPaymentType
}

// chargeBody — тело запроса /charge в формате Core API.
type chargeBody struct {
	PaymentType        string             `json:"payment_type"`
	TransactionDetails transactionDetails `json:"transaction_details"`
	CustomerDetails    customerDetails    `json:"customer_details"`
	ItemDetails        []itemDetails      `json:"item_details"`
}

type transactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

type customerDetails struct {
	FirstName string `json:"first_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type itemDetails struct {
	ID       string `json:"id"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
}

type chargeResponse struct {
	StatusCode    string `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Token         string `json:"token"`
	RedirectURL   string `json:"redirect_url"`
}

// CreateToken — синхронный запрос токена оплаты.
func (c *Client) CreateToken(ctx context.Context, req *domain.ChargeRequest) (*domain.ChargeToken, error) {
	items := make([]itemDetails, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, itemDetails{ID: it.ID, Price: it.Price, Quantity: it.Quantity, Name: it.Name})
	}
	body := chargeBody{
		PaymentType: req.PaymentType,
		TransactionDetails: transactionDetails{
			OrderID:     req.OrderID,
			GrossAmount: req.Amount,
		},
		CustomerDetails: customerDetails{
			FirstName: req.Customer.FirstName,
			Email:     req.Customer.Email,
			Phone:     req.Customer.Phone,
		},
		ItemDetails: items,
	}

	var resp chargeResponse
	if err := c.do(ctx, http.MethodPost, c.apiURL+"/charge", body, &resp); err != nil {
		return nil, fmt.Errorf("charge %s: %w", req.OrderID, err)
	}
	// Шлюз отвечает 200 и на отклонённые запросы; смотрим status_code тела.
	if resp.StatusCode != "200" && resp.StatusCode != "201" {
		c.log.Warnf(ctx, "midtrans: charge %s declined: %s %s", req.OrderID, resp.StatusCode, resp.StatusMessage)
		return nil, fmt.Errorf("charge %s: gateway declined: %s %s", req.OrderID, resp.StatusCode, resp.StatusMessage)
	}
	return &domain.ChargeToken{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

// Status — опрос статуса транзакции.
func (c *Client) Status(ctx context.Context, orderID string) (*domain.GatewayStatus, error) {
	var status domain.GatewayStatus
	if err := c.do(ctx, http.MethodGet, c.apiURL+"/"+orderID+"/status", nil, &status); err != nil {
		return nil, fmt.Errorf("status %s: %w", orderID, err)
	}
	return &status, nil
}

func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Basic "+basicAuth(c.serverKey))
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, payload)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// basicAuth — серверный ключ с пустым паролем, как требует шлюз.
func basicAuth(serverKey string) string {
	return base64.StdEncoding.EncodeToString([]byte(serverKey + ":"))
}
