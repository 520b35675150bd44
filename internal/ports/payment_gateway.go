package ports

import (
	"context"

	"github.com/zhivlux/storefront/internal/domain"
)

// PaymentGateway — клиент внешнего платёжного шлюза.
type PaymentGateway interface {
	// CreateToken — синхронный запрос токена оплаты (basic-auth серверным ключом).
	CreateToken(ctx context.Context, req *domain.ChargeRequest) (*domain.ChargeToken, error)

	// Status — опрос статуса транзакции по id заказа.
	Status(ctx context.Context, orderID string) (*domain.GatewayStatus, error)

	// PaymentTypeFor — платёжный код шлюза для способа оплаты;
	// неизвестный способ отображается в generic bank transfer.
	PaymentTypeFor(methodID string) string
}
