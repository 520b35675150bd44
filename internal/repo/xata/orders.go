package xata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/zhivlux/storefront/internal/domain"
	"github.com/zhivlux/storefront/internal/ports"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

const transactionsTable = "transactions"

// transactionRecord — строка журнала покупок. Журнал append-only:
// записи не удаляются, колбэки шлюза лишь переводят status.
type transactionRecord struct {
	ID            string `json:"id,omitempty"`
	TrxID         string `json:"trx_id"`
	ProductName   string `json:"product_name"`
	VariantName   string `json:"variant_name"`
	Amount        int64  `json:"amount"`
	Status        string `json:"status"`
	UserEmail     string `json:"user_email,omitempty"`
	UserID        string `json:"user_id"`
	ZoneID        string `json:"zone_id,omitempty"`
	PaymentMethod string `json:"payment_method"`
	CreatedAt     string `json:"created_at"`
}

// OrderRepository — журнал заказов поверх таблицы transactions.
type OrderRepository struct {
	client *Client
	log    ports.Logger
}

func NewOrderRepository(client *Client, log ports.Logger) *OrderRepository {
	return &OrderRepository{client: client, log: log}
}

// Save — добавить запись о попытке покупки.
func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) error {
	_, err := r.client.Create(ctx, transactionsTable, transactionRecord{
		TrxID:         order.OrderID,
		ProductName:   order.ProductName,
		VariantName:   order.VariantName,
		Amount:        order.Amount,
		Status:        string(order.Status),
		UserEmail:     order.UserEmail,
		UserID:        order.UserID,
		ZoneID:        order.ZoneID,
		PaymentMethod: order.PaymentMethod,
		CreatedAt:     order.CreatedAt.UTC().Format(time.RFC3339),
	})
	return err
}

// SetStatus — перевести статус заказа. Запись ищется по человеку видимому
// trx_id, обновляется по внутреннему id записи.
func (r *OrderRepository) SetStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	rec, err := r.byTrxID(ctx, orderID)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("order %s: not found", orderID)
	}
	return r.client.Patch(ctx, transactionsTable, rec.ID, map[string]any{"status": string(status)})
}

// ByID — заказ по trx_id; (nil, nil) при отсутствии.
func (r *OrderRepository) ByID(ctx context.Context, orderID string) (*domain.Order, error) {
	rec, err := r.byTrxID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	createdAt, err := time.Parse(time.RFC3339, rec.CreatedAt)
	if err != nil {
		r.log.Warnf(ctx, "orders: %s: unusable created_at %q", orderID, rec.CreatedAt)
	}
	return &domain.Order{
		OrderID:       rec.TrxID,
		ProductName:   rec.ProductName,
		VariantName:   rec.VariantName,
		Amount:        rec.Amount,
		Status:        domain.OrderStatus(rec.Status),
		UserEmail:     rec.UserEmail,
		UserID:        rec.UserID,
		ZoneID:        rec.ZoneID,
		PaymentMethod: rec.PaymentMethod,
		CreatedAt:     createdAt,
	}, nil
}

func (r *OrderRepository) byTrxID(ctx context.Context, orderID string) (*transactionRecord, error) {
	records, err := r.client.Query(ctx, transactionsTable, query{
		Filter: map[string]any{"trx_id": orderID},
		Page:   &page{Size: 1},
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	var rec transactionRecord
	if err := json.Unmarshal(records[0], &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
