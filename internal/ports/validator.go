package ports

import (
	"context"

	"github.com/zhivlux/storefront/internal/domain"
)

// PaymentValidator — валидация запроса на оплату.
type PaymentValidator interface {
	Validate(ctx context.Context, req *domain.PaymentRequest) error
}
