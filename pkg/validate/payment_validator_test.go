package validate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/zhivlux/storefront/internal/domain"
	"github.com/zhivlux/storefront/pkg/validate"
)

func validPayment() *domain.PaymentRequest {
	return &domain.PaymentRequest{
		ProductName: "Mobile Legends",
		UserID:      "12345678",
		UserEmail:   "user@example.com",
		Variant:     domain.Variant{Name: "86 Diamonds", Price: 20000},
		Method:      domain.PaymentMethod{ID: "dana", Name: "DANA", Fee: 0},
	}
}

func TestPaymentValidator_OK(t *testing.T) {
	t.Parallel()

	v := validate.NewPaymentValidator()
	if err := v.Validate(context.Background(), validPayment()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPaymentValidator_Errors(t *testing.T) {
	t.Parallel()

	v := validate.NewPaymentValidator()

	cases := map[string]func(*domain.PaymentRequest){
		"nil product":    func(r *domain.PaymentRequest) { r.ProductName = "" },
		"no user":        func(r *domain.PaymentRequest) { r.UserID = "" },
		"no variant":     func(r *domain.PaymentRequest) { r.Variant.Name = "" },
		"zero price":     func(r *domain.PaymentRequest) { r.Variant.Price = 0 },
		"negative price": func(r *domain.PaymentRequest) { r.Variant.Price = -100 },
		"no method":      func(r *domain.PaymentRequest) { r.Method.ID = "" },
		"negative fee":   func(r *domain.PaymentRequest) { r.Method.Fee = -1 },
		"bad email":      func(r *domain.PaymentRequest) { r.UserEmail = "not-an-email" },
	}

	for name, mutate := range cases {
		req := validPayment()
		mutate(req)
		if err := v.Validate(context.Background(), req); !errors.Is(err, validate.ErrInvalidPayment) {
			t.Fatalf("%s: want ErrInvalidPayment, got %v", name, err)
		}
	}

	if err := v.Validate(context.Background(), nil); !errors.Is(err, validate.ErrInvalidPayment) {
		t.Fatalf("nil request: want ErrInvalidPayment, got %v", err)
	}
}

func TestPaymentValidator_EmailOptional(t *testing.T) {
	t.Parallel()

	req := validPayment()
	req.UserEmail = ""
	if err := validate.NewPaymentValidator().Validate(context.Background(), req); err != nil {
		t.Fatalf("empty email must be allowed: %v", err)
	}
}
