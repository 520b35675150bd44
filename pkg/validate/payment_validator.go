package validate

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/zhivlux/storefront/internal/domain"
	"github.com/zhivlux/storefront/internal/ports"
)

// Проверка, что PaymentValidator удовлетворяет порту.
var _ ports.PaymentValidator = (*PaymentValidator)(nil)

// ErrInvalidPayment — базовая (sentinel error) ошибка валидации платежа.
var ErrInvalidPayment = errors.New("payment validation failed")

// PaymentValidator — валидация запроса на оплату до обращения к шлюзу.
type PaymentValidator struct{}

func NewPaymentValidator() *PaymentValidator { return &PaymentValidator{} }

// Validate — проверяет корректность запроса на оплату.
// Возвращает ErrInvalidPayment (с обёрнутой причиной) при любой проблеме.
func (v *PaymentValidator) Validate(_ context.Context, req *domain.PaymentRequest) error {
	if req == nil {
		return fmt.Errorf("%w: запрос не может быть nil", ErrInvalidPayment)
	}
	if req.ProductName == "" {
		return fmt.Errorf("%w: productName обязателен", ErrInvalidPayment)
	}
	if req.UserID == "" {
		return fmt.Errorf("%w: userId обязателен", ErrInvalidPayment)
	}
	if req.Variant.Name == "" {
		return fmt.Errorf("%w: variant.name обязателен", ErrInvalidPayment)
	}
	if req.Variant.Price <= 0 {
		return fmt.Errorf("%w: variant.price должен быть положительным", ErrInvalidPayment)
	}
	if req.Method.ID == "" {
		return fmt.Errorf("%w: method.id обязателен", ErrInvalidPayment)
	}
	if req.Method.Fee < 0 {
		return fmt.Errorf("%w: method.fee должен быть неотрицательным", ErrInvalidPayment)
	}
	if req.UserEmail != "" {
		if _, err := mail.ParseAddress(req.UserEmail); err != nil {
			return fmt.Errorf("%w: userEmail некорректен", ErrInvalidPayment)
		}
	}
	return nil
}
