package ports

import (
	"context"

	"github.com/zhivlux/storefront/internal/domain"
)

// OrderRepository — журнал попыток покупки. Append-only: записи не
// удаляются, колбэки шлюза лишь переводят статус.
type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) error
	SetStatus(ctx context.Context, orderID string, status domain.OrderStatus) error

	// ByID — (nil, nil), если заказа с таким id нет.
	ByID(ctx context.Context, orderID string) (*domain.Order, error)
}
