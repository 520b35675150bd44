package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/zhivlux/storefront/config"
	"github.com/zhivlux/storefront/internal/domain"
	"github.com/zhivlux/storefront/internal/ports/mocks"
)

var orderIDPattern = regexp.MustCompile(`^ZLX-\d{13}-[A-Z0-9]{6}$`)

func paymentRequest(fee int64) *domain.PaymentRequest {
	return &domain.PaymentRequest{
		ProductName: "Mobile Legends",
		UserID:      "12345678",
		UserEmail:   "user@example.com",
		Variant:     domain.Variant{Name: "86 Diamonds", Price: 20000},
		Method:      domain.PaymentMethod{ID: "mandiri", Name: "Mandiri VA", Fee: fee},
	}
}

func unconfiguredMidtrans() config.Midtrans {
	return config.Midtrans{MockDelay: 2 * time.Second, Timeout: time.Second}
}

func configuredMidtrans() config.Midtrans {
	return config.Midtrans{
		ServerKey: "SB-Mid-server-abc", ClientKey: "SB-Mid-client-abc",
		MockDelay: 2 * time.Second, Timeout: time.Second,
	}
}

func newPaymentFixture(t *testing.T, cfg config.Midtrans) (*PaymentService, *mocks.MockOrderRepository, *mocks.MockPaymentGateway, *mocks.MockPaymentValidator) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	orders := mocks.NewMockOrderRepository(ctrl)
	gateway := mocks.NewMockPaymentGateway(ctrl)
	validator := mocks.NewMockPaymentValidator(ctrl)
	svc := NewPaymentService(orders, gateway, validator, cfg, noopLogger{})
	return svc, orders, gateway, validator
}

func TestProcess_MockPath(t *testing.T) {
	svc, orders, _, validator := newPaymentFixture(t, unconfiguredMidtrans())

	var slept time.Duration
	svc.sleep = func(d time.Duration) { slept = d }

	req := paymentRequest(0)
	validator.EXPECT().Validate(gomock.Any(), req).Return(nil)

	var saved *domain.Order
	orders.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o *domain.Order) error {
			saved = o
			return nil
		})
	orders.EXPECT().SetStatus(gomock.Any(), gomock.Any(), domain.OrderSuccess).Return(nil)

	res, err := svc.Process(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Mock || res.Status != domain.OrderSuccess {
		t.Fatalf("mock path must report synthesized success, got %+v", res)
	}
	if !orderIDPattern.MatchString(res.OrderID) {
		t.Fatalf("unexpected order id %q", res.OrderID)
	}
	if slept != 2*time.Second {
		t.Fatalf("mock path must simulate the processing delay, slept %v", slept)
	}
	if saved == nil || saved.Status != domain.OrderPending {
		t.Fatalf("pending must be persisted before the mock delay, got %+v", saved)
	}
	if saved.Amount != 20000 {
		t.Fatalf("fee 0: want amount 20000, got %d", saved.Amount)
	}
}

func TestProcess_PendingPersistFailureDoesNotBlock(t *testing.T) {
	svc, orders, _, validator := newPaymentFixture(t, unconfiguredMidtrans())
	svc.sleep = func(time.Duration) {}

	req := paymentRequest(0)
	validator.EXPECT().Validate(gomock.Any(), req).Return(nil)
	orders.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("backend down"))
	orders.EXPECT().SetStatus(gomock.Any(), gomock.Any(), domain.OrderSuccess).Return(errors.New("backend down"))

	res, err := svc.Process(context.Background(), req)
	if err != nil {
		t.Fatalf("persistence failures must not block the attempt: %v", err)
	}
	if res.Status != domain.OrderSuccess {
		t.Fatalf("want success, got %+v", res)
	}
}

func TestProcess_RealPathWithAdminFee(t *testing.T) {
	svc, orders, gateway, validator := newPaymentFixture(t, configuredMidtrans())

	req := paymentRequest(2500)
	validator.EXPECT().Validate(gomock.Any(), req).Return(nil)
	orders.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	gateway.EXPECT().PaymentTypeFor("mandiri").Return("echannel")

	var charged *domain.ChargeRequest
	gateway.EXPECT().CreateToken(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cr *domain.ChargeRequest) (*domain.ChargeToken, error) {
			charged = cr
			return &domain.ChargeToken{Token: "tok_1", RedirectURL: "https://pay.example/tok_1"}, nil
		})

	res, err := svc.Process(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != domain.OrderPending || res.Token != "tok_1" {
		t.Fatalf("token grant must leave the order pending with a token, got %+v", res)
	}

	if charged.Amount != 22500 {
		t.Fatalf("fee 2500: want gross amount 22500, got %d", charged.Amount)
	}
	if charged.PaymentType != "echannel" {
		t.Fatalf("want payment type echannel, got %q", charged.PaymentType)
	}
	if len(charged.Items) != 2 {
		t.Fatalf("want variant + admin fee items, got %+v", charged.Items)
	}
	fee := charged.Items[1]
	if fee.Name != "Biaya Admin" || fee.Price != 2500 {
		t.Fatalf("unexpected admin fee item: %+v", fee)
	}
}

func TestProcess_ZeroFeeHasSingleLineItem(t *testing.T) {
	svc, orders, gateway, validator := newPaymentFixture(t, configuredMidtrans())

	req := paymentRequest(0)
	validator.EXPECT().Validate(gomock.Any(), req).Return(nil)
	orders.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	gateway.EXPECT().PaymentTypeFor("mandiri").Return("echannel")
	gateway.EXPECT().CreateToken(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cr *domain.ChargeRequest) (*domain.ChargeToken, error) {
			if cr.Amount != 20000 {
				t.Fatalf("fee 0: want gross amount 20000, got %d", cr.Amount)
			}
			if len(cr.Items) != 1 {
				t.Fatalf("fee 0: want a single line item, got %+v", cr.Items)
			}
			return &domain.ChargeToken{Token: "tok_2"}, nil
		})

	if _, err := svc.Process(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestProcess_TokenDenialIsTerminalFailure(t *testing.T) {
	svc, orders, gateway, validator := newPaymentFixture(t, configuredMidtrans())

	req := paymentRequest(0)
	validator.EXPECT().Validate(gomock.Any(), req).Return(nil)
	orders.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	gateway.EXPECT().PaymentTypeFor("mandiri").Return("echannel")
	gateway.EXPECT().CreateToken(gomock.Any(), gomock.Any()).Return(nil, errors.New("declined"))
	orders.EXPECT().SetStatus(gomock.Any(), gomock.Any(), domain.OrderFailed).Return(nil)

	_, err := svc.Process(context.Background(), req)
	if err == nil {
		t.Fatal("token denial must surface an error")
	}
}

func TestProcess_ValidationErrorSkipsEverything(t *testing.T) {
	svc, _, _, validator := newPaymentFixture(t, configuredMidtrans())

	req := paymentRequest(0)
	validator.EXPECT().Validate(gomock.Any(), req).Return(errors.New("bad request"))

	if _, err := svc.Process(context.Background(), req); err == nil {
		t.Fatal("validation error must be surfaced")
	}
}

func TestHandleNotification(t *testing.T) {
	cases := []struct {
		transaction string
		want        domain.OrderStatus
	}{
		{"capture", domain.OrderSuccess},
		{"settlement", domain.OrderSuccess},
		{"pending", domain.OrderPending},
		{"deny", domain.OrderFailed},
		{"cancel", domain.OrderFailed},
		{"expire", domain.OrderFailed},
	}
	for _, tc := range cases {
		svc, orders, _, _ := newPaymentFixture(t, configuredMidtrans())
		orders.EXPECT().SetStatus(gomock.Any(), "ZLX-1-ABCDEF", tc.want).Return(nil)

		got, err := svc.HandleNotification(context.Background(), "ZLX-1-ABCDEF", tc.transaction)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.transaction, err)
		}
		if got != tc.want {
			t.Fatalf("%s: want %s, got %s", tc.transaction, tc.want, got)
		}
	}
}

func TestHandleNotification_UnknownStatus(t *testing.T) {
	svc, _, _, _ := newPaymentFixture(t, configuredMidtrans())

	_, err := svc.HandleNotification(context.Background(), "ZLX-1-ABCDEF", "teleported")
	if !errors.Is(err, ErrUnknownTransactionStatus) {
		t.Fatalf("want ErrUnknownTransactionStatus, got %v", err)
	}
}

func TestOnError_ReturnsUserMessage(t *testing.T) {
	svc, orders, _, _ := newPaymentFixture(t, configuredMidtrans())
	orders.EXPECT().SetStatus(gomock.Any(), "ZLX-1-ABCDEF", domain.OrderFailed).Return(nil)

	msg, err := svc.OnError(context.Background(), "ZLX-1-ABCDEF")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg == "" {
		t.Fatal("onError must produce a non-empty user-visible message")
	}
}

func TestOnClose_NoPersistenceChange(t *testing.T) {
	// Репозиторий без ожиданий: закрытие попапа не трогает журнал.
	svc, _, _, _ := newPaymentFixture(t, configuredMidtrans())
	svc.OnClose(context.Background(), "ZLX-1-ABCDEF")
}

func TestTrack(t *testing.T) {
	svc, orders, gateway, _ := newPaymentFixture(t, configuredMidtrans())

	stored := &domain.Order{OrderID: "ZLX-1-ABCDEF", Status: domain.OrderPending}
	orders.EXPECT().ByID(gomock.Any(), "ZLX-1-ABCDEF").Return(stored, nil)
	gateway.EXPECT().Status(gomock.Any(), "ZLX-1-ABCDEF").
		Return(&domain.GatewayStatus{TransactionStatus: "settlement"}, nil)

	order, status, err := svc.Track(context.Background(), "ZLX-1-ABCDEF")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order != stored || status.TransactionStatus != "settlement" {
		t.Fatalf("unexpected track result: %+v %+v", order, status)
	}
}

func TestTrack_NotFound(t *testing.T) {
	svc, orders, _, _ := newPaymentFixture(t, configuredMidtrans())
	orders.EXPECT().ByID(gomock.Any(), "ZLX-missing").Return(nil, nil)

	_, _, err := svc.Track(context.Background(), "ZLX-missing")
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound, got %v", err)
	}
}

func TestTrack_GatewayPollFailureIsNotFatal(t *testing.T) {
	svc, orders, gateway, _ := newPaymentFixture(t, configuredMidtrans())

	stored := &domain.Order{OrderID: "ZLX-1-ABCDEF", Status: domain.OrderPending}
	orders.EXPECT().ByID(gomock.Any(), "ZLX-1-ABCDEF").Return(stored, nil)
	gateway.EXPECT().Status(gomock.Any(), "ZLX-1-ABCDEF").Return(nil, errors.New("gateway down"))

	order, status, err := svc.Track(context.Background(), "ZLX-1-ABCDEF")
	if err != nil || order == nil || status != nil {
		t.Fatalf("poll failure must not hide the order: %+v %+v %v", order, status, err)
	}
}
